/* models.go
 * This file contains the serializable view structs handed to api consumers such as the web
 * server, plus the converters that build them from the in-memory model
 */

package api

import (
	"bracket-bot/api/matchgroup"
)

// OpponentView is the outward-facing form of one match participant
type OpponentView struct {
	Type       string `json:"type,omitempty"`
	Name       string `json:"name,omitempty"`
	Template   string `json:"template,omitempty"`
	Score      *int   `json:"score,omitempty"`
	Score2     *int   `json:"score2,omitempty"`
	Status     string `json:"status,omitempty"`
	Placement  *int   `json:"placement,omitempty"`
	Placement2 *int   `json:"placement2,omitempty"`
}

// GameView is the outward-facing form of one played map
type GameView struct {
	Map    string `json:"map,omitempty"`
	Winner string `json:"winner,omitempty"`
	Scores []int  `json:"scores,omitempty"`
}

// MatchView is the outward-facing form of one match
type MatchView struct {
	MatchID   string         `json:"matchId"`
	Date      string         `json:"date,omitempty"`
	Finished  *bool          `json:"finished,omitempty"`
	Winner    string         `json:"winner,omitempty"`
	BestOf    int            `json:"bestOf,omitempty"`
	Comment   string         `json:"comment,omitempty"`
	Opponents []OpponentView `json:"opponents"`
	Games     []GameView     `json:"games,omitempty"`
}

// GroupView is the outward-facing form of one whole group. Rounds and Sections are only
// populated for brackets
type GroupView struct {
	GroupID      string      `json:"groupId"`
	Type         string      `json:"type"`
	RootMatchIDs []string    `json:"rootMatchIds,omitempty"`
	Rounds       [][]string  `json:"rounds,omitempty"`
	Sections     [][]string  `json:"sections,omitempty"`
	Matches      []MatchView `json:"matches"`
}

// NewMatchView converts one typed match to its view form
func NewMatchView(match *matchgroup.Match) MatchView {
	view := MatchView{
		MatchID:   match.MatchID,
		Date:      match.Date,
		Finished:  match.Finished,
		Winner:    match.Winner,
		BestOf:    match.BestOf,
		Comment:   match.Comment,
		Opponents: make([]OpponentView, 0, len(match.Opponents)),
	}
	for _, opponent := range match.Opponents {
		view.Opponents = append(view.Opponents, OpponentView{
			Type:       opponent.Type,
			Name:       opponent.Name,
			Template:   opponent.Template,
			Score:      opponent.Score,
			Score2:     opponent.Score2,
			Status:     opponent.Status,
			Placement:  opponent.Placement,
			Placement2: opponent.Placement2,
		})
	}
	for _, game := range match.Games {
		view.Games = append(view.Games, GameView{
			Map:    game.Map,
			Winner: game.Winner,
			Scores: game.Scores,
		})
	}
	return view
}

// NewGroupView converts one typed group to its view form
func NewGroupView(group matchgroup.Group) GroupView {
	view := GroupView{
		GroupID: group.GroupID(),
		Type:    group.Kind(),
		Matches: make([]MatchView, 0, len(group.AllMatches())),
	}
	for _, match := range group.AllMatches() {
		view.Matches = append(view.Matches, NewMatchView(match))
	}
	if bracket, ok := group.(*matchgroup.Bracket); ok {
		view.RootMatchIDs = bracket.RootMatchIDs
		view.Rounds = bracket.Rounds
		view.Sections = bracket.Sections
	}
	return view
}
