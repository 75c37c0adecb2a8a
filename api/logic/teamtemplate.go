/* teamtemplate.go
 * Contains the logic for resolving team template names to display records. The actual
 * lookup is injected so callers can back it with the db, the LiquipediaDB api, or a fixture
 */

package logic

import (
	"errors"
	"fmt"
	"strings"

	"bracket-bot/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrTemplateNotFound is returned for a lookup miss. Callers may downgrade it to a
// placeholder; it is not fatal at this layer
var ErrTemplateNotFound = errors.New("team template not found")

// TemplateLookup resolves an exact template name. A miss is reported as
// ErrTemplateNotFound
type TemplateLookup func(name string) (*shared.TeamTemplate, error)

// tbdTemplate is the fixed placeholder for the literal "tbd" template
var tbdTemplate = shared.TeamTemplate{
	BracketName: "To Be Decided",
	DisplayName: "To Be Decided",
	ShortName:   "TBD",
}

// ResolveTeamTemplate resolves a team template name to its display record. The literal
// name "tbd" (case insensitive) resolves to the fixed placeholder without invoking the
// lookup at all
func ResolveTeamTemplate(name string, lookup TemplateLookup) (*shared.TeamTemplate, error) {
	if strings.EqualFold(strings.TrimSpace(name), "tbd") {
		placeholder := tbdTemplate
		return &placeholder, nil
	}
	if lookup == nil {
		return nil, fmt.Errorf("%w: %q (no lookup configured)", ErrTemplateNotFound, name)
	}
	template, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return template, nil
}

// MatchTemplateName fuzzy-matches user input against the known template names and returns
// the canonical name. An exact (case insensitive) hit wins over the fuzzy ranking
func MatchTemplateName(input string, known []string) (string, bool) {
	lookup := make(map[string]string, len(known))
	lower := make([]string, 0, len(known))
	for _, name := range known {
		l := strings.ToLower(name)
		lookup[l] = name
		lower = append(lower, l)
	}

	inputLower := strings.ToLower(strings.TrimSpace(input))
	results := fuzzy.RankFind(inputLower, lower)
	if len(results) == 0 {
		return "", false
	}
	for _, result := range results {
		if result.Target == inputLower {
			return lookup[result.Target], true
		}
	}
	return lookup[results[0].Target], true
}
