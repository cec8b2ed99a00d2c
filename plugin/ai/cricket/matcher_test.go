package cricket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todaysStages() []Stage {
	return []Stage{
		{
			Name: "ICC T20 World Cup",
			Records: []MatchRecord{
				{
					StageName:      "ICC T20 World Cup",
					MatchName:      "India vs Australia, Final",
					Team1Name:      "India",
					Team1ShortName: "IND",
					Team2Name:      "Australia",
					Team2ShortName: "AUS",
					Score1:         "185/4 (18.2)",
					Score2:         "184/7 (20)",
					Status:         "India won",
				},
				{
					StageName:      "ICC T20 World Cup",
					MatchName:      "Pakistan vs England, 3rd Place",
					Team1Name:      "Pakistan",
					Team1ShortName: "PAK",
					Team2Name:      "England",
					Team2ShortName: "ENG",
					Score1:         "150/8 (20)",
					Score2:         "151/4 (18)",
					Status:         "England won",
				},
			},
		},
		{
			Name: "County Championship",
			Records: []MatchRecord{
				{
					StageName:      "County Championship",
					MatchName:      "Surrey vs Yorkshire",
					Team1Name:      "Surrey",
					Team2Name:      "Yorkshire",
					Score1:         "302/8 (90)",
					Score2:         "?/? (?)",
					Status:         "Day 1",
				},
			},
		},
	}
}

func TestBestMatch_Deterministic(t *testing.T) {
	stages := todaysStages()

	first := BestMatch("pakistan latest score", stages)
	require.True(t, first.Found())

	for i := 0; i < 10; i++ {
		result := BestMatch("pakistan latest score", stages)
		require.True(t, result.Found())
		assert.Equal(t, first.Record.MatchName, result.Record.MatchName)
		assert.Equal(t, first.Score, result.Score)
	}
	assert.Equal(t, "Pakistan", first.Record.Team1Name)
}

func TestBestMatch_ShortFormResolvesAmbiguity(t *testing.T) {
	stages := todaysStages()

	result := BestMatch("pak vs eng", stages)
	require.True(t, result.Found())
	assert.Equal(t, "Pakistan", result.Record.Team1Name)
	assert.Equal(t, "England", result.Record.Team2Name)
}

func TestBestMatch_BelowThreshold(t *testing.T) {
	stages := todaysStages()

	result := BestMatch("zimbabwe scorecard", stages)
	assert.False(t, result.Found())
}

func TestBestMatch_EmptyInputs(t *testing.T) {
	assert.False(t, BestMatch("", todaysStages()).Found())
	assert.False(t, BestMatch("india", nil).Found())
	assert.False(t, BestMatch("   !!! ", todaysStages()).Found())
}

func TestBestMatch_TieKeepsFirstSeen(t *testing.T) {
	stages := []Stage{
		{Name: "A", Records: []MatchRecord{
			{MatchName: "First Semi Final", Team1Name: "Alpha", Team2Name: "Beta"},
		}},
		{Name: "B", Records: []MatchRecord{
			{MatchName: "Second Semi Final", Team1Name: "Gamma", Team2Name: "Delta"},
		}},
	}

	// "semi" scores 4 on both records; the first-seen record must win.
	result := BestMatch("semi final", stages)
	require.True(t, result.Found())
	assert.Equal(t, "First Semi Final", result.Record.MatchName)
}

func TestScoreRecord_AliasOutweighsLiteral(t *testing.T) {
	rec := &MatchRecord{
		MatchName:      "Pakistan vs England",
		Team1Name:      "Pakistan",
		Team1ShortName: "PAK",
		Team2Name:      "England",
		Team2ShortName: "ENG",
	}

	// "pk" is a known Pakistan alias but not a substring of the combined
	// text, so it contributes the alias weight only.
	aliasOnly := scoreRecord([]string{"pk"}, rec)
	assert.Equal(t, aliasWordScore, aliasOnly)

	// "vs" appears literally but belongs to no alias family.
	literalOnly := scoreRecord([]string{"vs"}, rec)
	assert.Equal(t, literalWordScore, literalOnly)

	assert.Greater(t, aliasOnly, literalOnly)

	// "pak" hits both ways: literal substring of "pakistan" plus alias.
	both := scoreRecord([]string{"pak"}, rec)
	assert.Equal(t, literalWordScore+aliasWordScore, both)
}

func TestScoreRecord_AliasCountedOncePerWord(t *testing.T) {
	// "in" is an alias of india; the family loop must break after the
	// first family hit so the word cannot double-count.
	rec := &MatchRecord{
		MatchName: "India vs West Indies",
		Team1Name: "India",
		Team2Name: "West Indies",
	}

	score := scoreRecord([]string{"in"}, rec)
	assert.Equal(t, literalWordScore+aliasWordScore, score)
}

func TestIsTeamWord(t *testing.T) {
	assert.True(t, IsTeamWord("pak"))
	assert.True(t, IsTeamWord("india"))
	assert.True(t, IsTeamWord("nz"))
	assert.False(t, IsTeamWord("score"))
	assert.False(t, IsTeamWord("today"))
}
