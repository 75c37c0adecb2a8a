/* group.go
 * Contains the construction entry point that turns a raw record list into one Matchlist or
 * Bracket aggregate, the request-scoped build cache, and the display-facing match query
 */

package matchgroup

import "fmt"

// ConvertRecord converts one raw record into a typed match. The default is NormalizeMatch;
// callers with wiki-specific record shapes can inject their own
type ConvertRecord func(groupID string, rec Record) (*Match, error)

// Options configures one group construction
type Options struct {
	// ForceType coerces the record set to the given bracket type before building.
	// Empty means the records' own type discriminators decide
	ForceType string
	// ConvertRecord overrides the record-to-match conversion strategy. Nil uses
	// NormalizeMatch. Resolved once at construction entry
	ConvertRecord ConvertRecord
}

// BuildGroup constructs one bracket or matchlist aggregate from an ordered record list.
// An empty record list is a valid terminal state and produces an empty group. The group is
// a bracket when any record carries bracket-typed bracket data, a matchlist otherwise
func BuildGroup(groupID string, records []Record, opts Options) (Group, error) {
	convert := opts.ConvertRecord
	if convert == nil {
		convert = NormalizeMatch
	}
	if opts.ForceType != "" {
		var err error
		records, err = CoerceRecordsToType(groupID, records, opts.ForceType)
		if err != nil {
			return nil, err
		}
	}

	matches := make([]*Match, 0, len(records))
	isBracket := false
	for _, rec := range records {
		match, err := convert(groupID, rec)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
		if match.BracketData != nil && match.BracketData.Kind() == TypeBracket {
			isBracket = true
		}
	}

	matchesByID := make(map[string]*Match, len(matches))
	for _, match := range matches {
		matchesByID[match.MatchID] = match
	}

	if !isBracket {
		return &Matchlist{ID: groupID, Matches: matches, MatchesByID: matchesByID}, nil
	}

	b := &Bracket{
		ID:                   groupID,
		Matches:              matches,
		MatchesByID:          matchesByID,
		BracketDatasByID:     map[string]*BracketMatchData{},
		CoordinatesByMatchID: map[string]*Coordinates{},
	}
	for _, match := range matches {
		if bd, ok := match.BracketData.(*BracketMatchData); ok {
			b.BracketDatasByID[match.MatchID] = bd
		}
	}

	buildBracketTopology(b)
	resolveBracketAdvanceSpots(b)
	assignMissingChildEdges(b)

	return b, nil
}

// resolveBracketAdvanceSpots runs the advance spot layers in precedence order: per-match
// defaults, legacy targets and qualification flags first, then the group-wide third place
// back-fill, then the per-position background overrides last
func resolveBracketAdvanceSpots(b *Bracket) {
	spots := make(map[string]*[2]*AdvanceSpot, len(b.BracketDatasByID))
	for id, bd := range b.BracketDatasByID {
		resolved := computeAdvanceSpots(bd)
		spots[id] = &resolved
	}

	applyThirdPlaceSpots(b, spots)

	for id, bd := range b.BracketDatasByID {
		if match := b.MatchesByID[id]; match != nil {
			applyBackgroundOverrides(match, spots[id])
		}
		// Spots given explicitly on the record win over the computed defaults wholesale
		if len(bd.AdvanceSpots) == 0 {
			bd.AdvanceSpots = trimAdvanceSpots(*spots[id])
		}
	}
}

// assignMissingChildEdges computes connector edges for every bracket match that has child
// matches but no explicit edges on its record
func assignMissingChildEdges(b *Bracket) {
	for id, bd := range b.BracketDatasByID {
		if len(bd.ChildEdges) > 0 || len(bd.ChildMatchIDs) == 0 {
			continue
		}
		match := b.MatchesByID[id]
		if match == nil || len(match.Opponents) == 0 {
			continue
		}
		bd.ChildEdges = ComputeChildEdges(len(bd.ChildMatchIDs), len(match.Opponents))
	}
}

// BuildCache memoizes built groups for the duration of one render/query context. It is an
// explicit object owned by the caller, never a process-wide singleton, so independent
// queries cannot observe each other's state
type BuildCache struct {
	groups map[string]Group
}

// NewBuildCache creates an empty request-scoped cache
func NewBuildCache() *BuildCache {
	return &BuildCache{groups: map[string]Group{}}
}

// Get returns the cached group for groupID, building it on first use from the records
// supplied by fetch. fetch is the only call here that may block
func (c *BuildCache) Get(groupID string, opts Options, fetch func() ([]Record, error)) (Group, error) {
	if group, ok := c.groups[groupID]; ok {
		return group, nil
	}
	records, err := fetch()
	if err != nil {
		return nil, err
	}
	group, err := BuildGroup(groupID, records, opts)
	if err != nil {
		return nil, err
	}
	c.groups[groupID] = group
	return group, nil
}

// ResolveMatchForDisplay returns the match with the given base id, merged with its bracket
// reset rematch when one exists in the group
func ResolveMatchForDisplay(group Group, baseID string) (*Match, error) {
	match := group.Match(baseID)
	if match == nil {
		return nil, fmt.Errorf("%w: %s in group %s", ErrMatchNotFound, baseID, group.GroupID())
	}
	bd, ok := match.BracketData.(*BracketMatchData)
	if !ok || bd.BracketResetMatchID == "" {
		return match, nil
	}
	reset := group.Match(bd.BracketResetMatchID)
	if reset == nil {
		return match, nil
	}
	return MergeBracketReset(match, reset)
}
