/* api.go
 * This file contains the public methods for interacting with this package. For consistent
 * results, functions should only be called from this file, not the sub packages for
 * matchgroup and store
 */

package api

import (
	"errors"
	"fmt"
	"strings"

	"bracket-bot/api/logic"
	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"
)

// API provides methods for interacting with the bracket bot data layer
type API struct {
	Store store.Interface
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, page string, params string, fetcher store.Fetcher) (*API, error) {
	if dbName == "" || page == "" {
		return nil, fmt.Errorf("dbName and page are required")
	}

	s, err := store.NewStore(dbName, mongoURI, page, params, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
	}, nil
}

// GetGroup builds the typed group for one bracket id. Every call builds fresh from the
// store's records; there is no cross-call memoization in this layer
func (a *API) GetGroup(groupID string) (matchgroup.Group, error) {
	return matchgroup.NewBuildCache().Get(groupID, matchgroup.Options{}, func() ([]matchgroup.Record, error) {
		return a.Store.FetchMatchRecords(groupID)
	})
}

// GetMatchForDisplay resolves one match of a group in its display form: the grand final is
// returned merged with its bracket reset when one exists
func (a *API) GetMatchForDisplay(groupID string, matchID string) (*matchgroup.Match, error) {
	group, err := a.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	return matchgroup.ResolveMatchForDisplay(group, matchID)
}

// GetTeamTemplate resolves a team template name through the store-backed lookup. The
// literal "tbd" resolves to the fixed placeholder without touching the store
func (a *API) GetTeamTemplate(name string) (*shared.TeamTemplate, error) {
	return logic.ResolveTeamTemplate(name, func(exact string) (*shared.TeamTemplate, error) {
		template, err := a.Store.FetchTeamTemplate(exact)
		if err != nil {
			if errors.Is(err, store.ErrTeamTemplateMissing) {
				return nil, fmt.Errorf("%w: %q", logic.ErrTemplateNotFound, exact)
			}
			return nil, err
		}
		return template, nil
	})
}

// ListGroups discovers the bracket groups declared on the configured tournament page.
// It returns one line per group suitable for a help response
func (a *API) ListGroups() ([]string, error) {
	refs, err := a.Store.FetchGroupRefs()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, ref := range refs {
		lines = append(lines, fmt.Sprintf("- %s (%s)", ref.ID, ref.Type))
	}
	return lines, nil
}

// BracketSummary renders a text summary of one group: round by round for a bracket, a flat
// list for a matchlist
func (a *API) BracketSummary(groupID string) (string, error) {
	group, err := a.GetGroup(groupID)
	if err != nil {
		return "", err
	}

	var response strings.Builder
	switch g := group.(type) {
	case *matchgroup.Bracket:
		response.WriteString(fmt.Sprintf("Bracket %s:\n", groupID))
		for roundIndex, round := range g.Rounds {
			response.WriteString(fmt.Sprintf("Round %d:\n", roundIndex+1))
			for _, matchID := range round {
				response.WriteString(a.matchLine(g.Match(matchID)))
			}
		}
	case *matchgroup.Matchlist:
		title := matchlistTitle(g)
		response.WriteString(fmt.Sprintf("%s:\n", title))
		for _, match := range g.Matches {
			response.WriteString(a.matchLine(match))
		}
	default:
		return "", fmt.Errorf("unknown group kind %q", group.Kind())
	}
	return response.String(), nil
}

// MatchSummary renders a text summary of one match, including the reset-merged second
// series when the match is a grand final with a played reset
func (a *API) MatchSummary(groupID string, matchID string) (string, error) {
	match, err := a.GetMatchForDisplay(groupID, matchID)
	if err != nil {
		return "", err
	}

	var response strings.Builder
	response.WriteString(fmt.Sprintf("Match %s", match.MatchID))
	if match.BestOf > 0 {
		response.WriteString(fmt.Sprintf(" (bo%d)", match.BestOf))
	}
	if match.Date != "" {
		response.WriteString(fmt.Sprintf(", %s", match.Date))
	}
	response.WriteString("\n")

	for i, opponent := range match.Opponents {
		marker := ""
		if match.Winner == fmt.Sprintf("%d", i+1) {
			marker = " (winner)"
		}
		response.WriteString(fmt.Sprintf("%s: %s%s\n", a.opponentName(opponent), opponentScore(opponent), marker))
	}

	for _, game := range match.Games {
		if game.Map == "" {
			continue
		}
		response.WriteString(fmt.Sprintf("- %s\n", game.Map))
	}

	if match.Comment != "" {
		response.WriteString(match.Comment + "\n")
	}
	return response.String(), nil
}

// matchLine renders the one-line form of a match used in group summaries
func (a *API) matchLine(match *matchgroup.Match) string {
	if match == nil {
		return ""
	}
	if len(match.Opponents) < 2 {
		return fmt.Sprintf("- %s\n", match.MatchID)
	}
	return fmt.Sprintf("- %s: %s %s VS %s %s\n",
		match.MatchID,
		a.opponentName(match.Opponents[0]), opponentScore(match.Opponents[0]),
		opponentScore(match.Opponents[1]), a.opponentName(match.Opponents[1]))
}

// opponentName resolves an opponent's display name, preferring its team template. A
// template miss falls back to the raw name rather than failing the render
func (a *API) opponentName(opponent *matchgroup.Opponent) string {
	name := opponent.Name
	if opponent.Template != "" {
		name = opponent.Template
	}
	if name == "" {
		return "TBD"
	}

	template, err := a.GetTeamTemplate(name)
	if err != nil {
		return name
	}
	return template.DisplayName
}

// opponentScore formats an opponent's score, appending the reset series score when present
func opponentScore(opponent *matchgroup.Opponent) string {
	if opponent.Score == nil {
		if opponent.Status != "" {
			return opponent.Status
		}
		return "-"
	}
	if opponent.Score2 != nil {
		return fmt.Sprintf("%d+%d", *opponent.Score, *opponent.Score2)
	}
	return fmt.Sprintf("%d", *opponent.Score)
}

// matchlistTitle picks the display title of a matchlist from its first match
func matchlistTitle(g *matchgroup.Matchlist) string {
	for _, match := range g.Matches {
		data, ok := match.BracketData.(*matchgroup.MatchlistData)
		if !ok {
			continue
		}
		if data.Title != "" {
			return data.Title
		}
	}
	return "Matches"
}
