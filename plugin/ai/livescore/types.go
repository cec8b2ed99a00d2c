// Package livescore is the client for the live-score provider. It exposes
// the day's match list and the live-only list as domain records; only the
// wire fields this assistant consumes are modeled, every one of them
// optional with a defined default.
package livescore

import (
	"encoding/json"

	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

// listResponse is the provider envelope for both the by-date and live lists.
type listResponse struct {
	Stages []wireStage `json:"Stages"`
}

type wireStage struct {
	Name   string      `json:"name"`
	Events []wireEvent `json:"Events"`
}

// wireEvent models one match. Score fields are json.Number so integers and
// decimal overs both come through; an absent field decodes to "" and renders
// as the "?" placeholder.
type wireEvent struct {
	MatchName   string      `json:"Esnm"`
	SeriesName  string      `json:"Sn"`
	StatusLabel string      `json:"EpsL"`
	ResultText  string      `json:"ECo"`
	Team1       []wireTeam  `json:"T1"`
	Team2       []wireTeam  `json:"T2"`
	T1Runs      json.Number `json:"Tr1C1"`
	T1Wickets   json.Number `json:"Tr1CW1"`
	T1Overs     json.Number `json:"Tr1CO1"`
	T2Runs      json.Number `json:"Tr2C1"`
	T2Wickets   json.Number `json:"Tr2CW1"`
	T2Overs     json.Number `json:"Tr2CO1"`
}

type wireTeam struct {
	Name      string `json:"Nm"`
	ShortName string `json:"Snm"`
}

// toStages converts the wire response into domain stages, preserving
// provider order.
func (r *listResponse) toStages() []cricket.Stage {
	stages := make([]cricket.Stage, 0, len(r.Stages))
	for _, ws := range r.Stages {
		stage := cricket.Stage{Name: ws.Name}
		for _, ev := range ws.Events {
			stage.Records = append(stage.Records, ev.toRecord(ws.Name))
		}
		stages = append(stages, stage)
	}
	return stages
}

func (ev *wireEvent) toRecord(stageName string) cricket.MatchRecord {
	rec := cricket.MatchRecord{
		StageName:  stageName,
		SeriesName: ev.SeriesName,
		MatchName:  ev.MatchName,
		Status:     ev.StatusLabel,
		ResultText: ev.ResultText,
		Score1:     cricket.FormatScore(ev.T1Runs.String(), ev.T1Wickets.String(), ev.T1Overs.String()),
		Score2:     cricket.FormatScore(ev.T2Runs.String(), ev.T2Wickets.String(), ev.T2Overs.String()),
	}
	if len(ev.Team1) > 0 {
		rec.Team1Name = ev.Team1[0].Name
		rec.Team1ShortName = ev.Team1[0].ShortName
	}
	if len(ev.Team2) > 0 {
		rec.Team2Name = ev.Team2[0].Name
		rec.Team2ShortName = ev.Team2[0].ShortName
	}
	return rec
}
