package cricket

// AliasFamily maps a canonical team name to the short forms fans use for it.
// Static reference data consumed only by the matcher; safe for concurrent
// reads.
type AliasFamily struct {
	Canonical string
	Aliases   []string
}

// aliasFamilies covers the major sides plus women's variants. Order matters:
// a query word is credited against the first family it hits.
var aliasFamilies = []AliasFamily{
	{"australia", []string{"aus", "au", "australia"}},
	{"india", []string{"ind", "in", "india"}},
	{"pakistan", []string{"pak", "pk", "pakistan"}},
	{"england", []string{"eng", "en", "england"}},
	{"south africa", []string{"sa", "rsa", "south africa"}},
	{"new zealand", []string{"nz", "new zealand"}},
	{"sri lanka", []string{"sl", "sri lanka"}},
	{"west indies", []string{"wi", "west indies"}},
	{"bangladesh", []string{"ban", "bd", "bangladesh"}},
	{"afghanistan", []string{"afg", "afghanistan"}},
	{"australia women", []string{"aus w", "australia w", "aus women"}},
	{"india women", []string{"ind w", "india w", "ind women"}},
	{"pakistan women", []string{"pak w", "pakistan w"}},
	{"england women", []string{"eng w", "england w"}},
}

// AliasFamilies returns the static team alias table.
func AliasFamilies() []AliasFamily {
	return aliasFamilies
}

// IsTeamWord reports whether a lowercase word is a canonical team name or
// one of its known short forms. Used by the query router to spot named-team
// queries.
func IsTeamWord(word string) bool {
	for _, family := range aliasFamilies {
		if family.Canonical == word {
			return true
		}
		for _, alias := range family.Aliases {
			if alias == word {
				return true
			}
		}
	}
	return false
}
