/* topology.go
 * Contains the topology builder for bracket groups: parent/child link back-fill, coordinate
 * derivation, root match ordering, and the partition of matches into rounds and sections
 */

package matchgroup

import "sort"

// buildBracketTopology resolves the structural layer of a bracket group. When every bracket
// match already carries coordinates the forward path just groups and sorts; otherwise the
// back-fill path first infers parent links from the child references and derives
// coordinates for the whole graph
func buildBracketTopology(b *Bracket) {
	if !allCoordinatesPresent(b) {
		backfillParents(b)
		backfillCoordinates(b)
	}
	b.CoordinatesByMatchID = map[string]*Coordinates{}
	for id, bd := range b.BracketDatasByID {
		if bd.Coordinates != nil {
			b.CoordinatesByMatchID[id] = bd.Coordinates
		}
	}
	b.RootMatchIDs = computeRootMatchIDs(b)
	b.Rounds, b.Sections = groupRoundsAndSections(b)
}

func allCoordinatesPresent(b *Bracket) bool {
	for _, bd := range b.BracketDatasByID {
		if bd.Coordinates == nil {
			return false
		}
	}
	return len(b.BracketDatasByID) > 0
}

// backfillParents infers the parent link of every child referenced by a childMatchIds list.
// Explicit parent links already present are kept
func backfillParents(b *Bracket) {
	for parentID, bd := range b.BracketDatasByID {
		for _, childID := range bd.ChildMatchIDs {
			child := b.BracketDatasByID[childID]
			if child != nil && child.ParentMatchID == "" {
				child.ParentMatchID = parentID
			}
		}
	}
}

// backfillCoordinates derives coordinates for every match that lacks them, from the
// now-complete parent/child graph. Coordinates supplied on a record are authoritative and
// are never overwritten. Each root subtree becomes one section; within a subtree the round
// of a match is its height above the deepest leaf, so every root sits in the highest round
// of its section
func backfillCoordinates(b *Bracket) {
	roots := collectRootIDs(b)
	// The coordinate set is incomplete here, so root order falls back to the plain string
	// comparison of the match ids, matching the final root ordering rule
	sort.Strings(roots)

	filled := map[string]bool{}
	roundCount := 0
	for sectionIndex, rootID := range roots {
		depths := map[string]int{}
		maxDepth := 0
		var walk func(id string, depth int)
		walk = func(id string, depth int) {
			bd := b.BracketDatasByID[id]
			if bd == nil {
				return
			}
			depths[id] = depth
			if depth > maxDepth {
				maxDepth = depth
			}
			for _, childID := range bd.ChildMatchIDs {
				walk(childID, depth+1)
			}
		}
		walk(rootID, 0)

		perRound := map[int]int{}
		var assign func(id string)
		assign = func(id string) {
			bd := b.BracketDatasByID[id]
			if bd == nil {
				return
			}
			if bd.Coordinates == nil {
				round := maxDepth - depths[id] + 1
				perRound[round]++
				bd.Coordinates = &Coordinates{
					Depth:             depths[id] + 1,
					Round:             round,
					Section:           sectionIndex + 1,
					MatchIndexInRound: perRound[round],
					RootIndex:         sectionIndex + 1,
				}
				filled[id] = true
			}
			for _, childID := range bd.ChildMatchIDs {
				assign(childID)
			}
		}
		assign(rootID)

		if maxDepth+1 > roundCount {
			roundCount = maxDepth + 1
		}
	}

	for id, bd := range b.BracketDatasByID {
		if !filled[id] {
			continue
		}
		bd.Coordinates.RoundCount = roundCount
		bd.Coordinates.SectionCount = len(roots)
	}
}

// collectRootIDs returns the ids of all matches with no parent, excluding bracket reset
// matches, in match list order
func collectRootIDs(b *Bracket) []string {
	var roots []string
	for _, match := range b.Matches {
		bd := b.BracketDatasByID[match.MatchID]
		if bd == nil || bd.ParentMatchID != "" {
			continue
		}
		if IsBracketResetID(match.MatchID) {
			continue
		}
		roots = append(roots, match.MatchID)
	}
	return roots
}

// computeRootMatchIDs orders the root matches for display: ascending by rootIndex where
// coordinates exist, with coordinate-less roots sorting before all others and among
// themselves by plain string comparison of their match ids. The string comparison is
// deliberate legacy behavior and is not numerically monotonic for multi-digit ids
func computeRootMatchIDs(b *Bracket) []string {
	roots := collectRootIDs(b)
	sort.SliceStable(roots, func(i, j int) bool {
		ci := b.CoordinatesByMatchID[roots[i]]
		cj := b.CoordinatesByMatchID[roots[j]]
		switch {
		case ci == nil && cj == nil:
			return roots[i] < roots[j]
		case ci == nil:
			return true
		case cj == nil:
			return false
		default:
			return ci.RootIndex < cj.RootIndex
		}
	})
	return roots
}

// groupRoundsAndSections partitions all matches with coordinates into ordered rounds and
// ordered sections. Bracket reset matches are excluded from both. Within a round matches
// are ordered by their index in that round; within a section by round, then index
func groupRoundsAndSections(b *Bracket) (rounds [][]string, sections [][]string) {
	byRound := map[int][]string{}
	bySection := map[int][]string{}
	for _, match := range b.Matches {
		coords := b.CoordinatesByMatchID[match.MatchID]
		if coords == nil || IsBracketResetID(match.MatchID) {
			continue
		}
		byRound[coords.Round] = append(byRound[coords.Round], match.MatchID)
		bySection[coords.Section] = append(bySection[coords.Section], match.MatchID)
	}

	for _, round := range sortedKeys(byRound) {
		ids := byRound[round]
		sort.SliceStable(ids, func(i, j int) bool {
			ci, cj := b.CoordinatesByMatchID[ids[i]], b.CoordinatesByMatchID[ids[j]]
			if ci.Section != cj.Section {
				return ci.Section < cj.Section
			}
			return ci.MatchIndexInRound < cj.MatchIndexInRound
		})
		rounds = append(rounds, ids)
	}

	for _, section := range sortedKeys(bySection) {
		ids := bySection[section]
		sort.SliceStable(ids, func(i, j int) bool {
			ci, cj := b.CoordinatesByMatchID[ids[i]], b.CoordinatesByMatchID[ids[j]]
			if ci.Round != cj.Round {
				return ci.Round < cj.Round
			}
			return ci.MatchIndexInRound < cj.MatchIndexInRound
		})
		sections = append(sections, ids)
	}
	return rounds, sections
}

func sortedKeys(m map[int][]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
