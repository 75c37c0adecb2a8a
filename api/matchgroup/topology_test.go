/* topology_test.go
 * Contains unit tests for the topology builder: parent back-fill, coordinate derivation,
 * root ordering and the rounds/sections partition
 */

package matchgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bracketMatch builds a bracket-typed match for topology tests
func bracketMatch(id string, bd *BracketMatchData) *Match {
	return &Match{
		MatchID:     id,
		Opponents:   []*Opponent{{Type: "team"}, {Type: "team"}},
		BracketData: bd,
	}
}

// newTestBracket wires matches into a Bracket aggregate without running the builder
func newTestBracket(matches ...*Match) *Bracket {
	b := &Bracket{
		ID:                   "grp",
		Matches:              matches,
		MatchesByID:          map[string]*Match{},
		BracketDatasByID:     map[string]*BracketMatchData{},
		CoordinatesByMatchID: map[string]*Coordinates{},
	}
	for _, match := range matches {
		b.MatchesByID[match.MatchID] = match
		if bd, ok := match.BracketData.(*BracketMatchData); ok {
			b.BracketDatasByID[match.MatchID] = bd
		}
	}
	return b
}

// TestBuildBracketTopology_ForwardPath tests grouping when every match already carries
// coordinates
func TestBuildBracketTopology_ForwardPath(t *testing.T) {
	final := bracketMatch("R02-M001", &BracketMatchData{
		ChildMatchIDs: []string{"R01-M001", "R01-M002"},
		Coordinates:   &Coordinates{Depth: 1, Round: 2, RoundCount: 2, Section: 1, SectionCount: 1, MatchIndexInRound: 1, RootIndex: 1},
	})
	semi1 := bracketMatch("R01-M001", &BracketMatchData{
		ParentMatchID: "R02-M001",
		Coordinates:   &Coordinates{Depth: 2, Round: 1, RoundCount: 2, Section: 1, SectionCount: 1, MatchIndexInRound: 1},
	})
	semi2 := bracketMatch("R01-M002", &BracketMatchData{
		ParentMatchID: "R02-M001",
		Coordinates:   &Coordinates{Depth: 2, Round: 1, RoundCount: 2, Section: 1, SectionCount: 1, MatchIndexInRound: 2},
	})

	b := newTestBracket(final, semi1, semi2)
	buildBracketTopology(b)

	assert.Equal(t, []string{"R02-M001"}, b.RootMatchIDs)
	require.Len(t, b.Rounds, 2)
	assert.Equal(t, []string{"R01-M001", "R01-M002"}, b.Rounds[0])
	assert.Equal(t, []string{"R02-M001"}, b.Rounds[1])
	require.Len(t, b.Sections, 1)
	assert.Equal(t, []string{"R01-M001", "R01-M002", "R02-M001"}, b.Sections[0])
}

// TestBuildBracketTopology_BackfillParents tests that missing parent links are inferred
// from the child references
func TestBuildBracketTopology_BackfillParents(t *testing.T) {
	final := bracketMatch("R02-M001", &BracketMatchData{ChildMatchIDs: []string{"R01-M001", "R01-M002"}})
	semi1 := bracketMatch("R01-M001", &BracketMatchData{})
	semi2 := bracketMatch("R01-M002", &BracketMatchData{})

	b := newTestBracket(final, semi1, semi2)
	buildBracketTopology(b)

	assert.Equal(t, "R02-M001", b.BracketDatasByID["R01-M001"].ParentMatchID)
	assert.Equal(t, "R02-M001", b.BracketDatasByID["R01-M002"].ParentMatchID)
}

// TestBuildBracketTopology_BackfillCoordinates tests coordinate derivation from the
// parent/child graph when the input has none
func TestBuildBracketTopology_BackfillCoordinates(t *testing.T) {
	final := bracketMatch("R02-M001", &BracketMatchData{ChildMatchIDs: []string{"R01-M001", "R01-M002"}})
	semi1 := bracketMatch("R01-M001", &BracketMatchData{})
	semi2 := bracketMatch("R01-M002", &BracketMatchData{})

	b := newTestBracket(final, semi1, semi2)
	buildBracketTopology(b)

	finalCoords := b.CoordinatesByMatchID["R02-M001"]
	require.NotNil(t, finalCoords)
	assert.Equal(t, 2, finalCoords.Round)
	assert.Equal(t, 1, finalCoords.Depth)
	assert.Equal(t, 1, finalCoords.Section)
	assert.Equal(t, 2, finalCoords.RoundCount)
	assert.Equal(t, 1, finalCoords.SectionCount)

	semiCoords := b.CoordinatesByMatchID["R01-M001"]
	require.NotNil(t, semiCoords)
	assert.Equal(t, 1, semiCoords.Round)
	assert.Equal(t, 2, semiCoords.Depth)
	assert.Equal(t, 1, semiCoords.MatchIndexInRound)
	assert.Equal(t, 2, b.CoordinatesByMatchID["R01-M002"].MatchIndexInRound)

	assert.Equal(t, []string{"R02-M001"}, b.RootMatchIDs)
	require.Len(t, b.Rounds, 2)
	assert.Equal(t, []string{"R01-M001", "R01-M002"}, b.Rounds[0])
}

// TestBuildBracketTopology_BackfillKeepsSuppliedCoordinates tests that when only some
// matches carry coordinates, the back-fill fills the gaps without touching the supplied ones
func TestBuildBracketTopology_BackfillKeepsSuppliedCoordinates(t *testing.T) {
	supplied := &Coordinates{Depth: 1, Round: 2, RoundCount: 2, Section: 1, SectionCount: 1, MatchIndexInRound: 1, RootIndex: 1}
	final := bracketMatch("R02-M001", &BracketMatchData{
		ChildMatchIDs: []string{"R01-M001", "R01-M002"},
		Coordinates:   supplied,
	})
	semi1 := bracketMatch("R01-M001", &BracketMatchData{})
	semi2 := bracketMatch("R01-M002", &BracketMatchData{})

	b := newTestBracket(final, semi1, semi2)
	buildBracketTopology(b)

	assert.Same(t, supplied, b.CoordinatesByMatchID["R02-M001"])
	assert.Equal(t, &Coordinates{Depth: 1, Round: 2, RoundCount: 2, Section: 1, SectionCount: 1, MatchIndexInRound: 1, RootIndex: 1}, supplied)

	semiCoords := b.CoordinatesByMatchID["R01-M001"]
	require.NotNil(t, semiCoords)
	assert.Equal(t, 1, semiCoords.Round)
	assert.Equal(t, 2, semiCoords.Depth)
	assert.Equal(t, 2, semiCoords.RoundCount)
	require.NotNil(t, b.CoordinatesByMatchID["R01-M002"])
}

// TestComputeRootMatchIDs_OrderByRootIndex tests ascending rootIndex ordering
func TestComputeRootMatchIDs_OrderByRootIndex(t *testing.T) {
	second := bracketMatch("R01-M001", &BracketMatchData{Coordinates: &Coordinates{RootIndex: 2}})
	first := bracketMatch("R03-M001", &BracketMatchData{Coordinates: &Coordinates{RootIndex: 1}})

	b := newTestBracket(second, first)
	buildBracketTopology(b)

	assert.Equal(t, []string{"R03-M001", "R01-M001"}, b.RootMatchIDs)
}

// TestComputeRootMatchIDs_MissingCoordinatesSortFirst tests that coordinate-less roots sort
// before all others, tie-broken by plain string comparison of their ids. The string
// comparison is preserved legacy behavior: "10" sorts before "2"
func TestComputeRootMatchIDs_MissingCoordinatesSortFirst(t *testing.T) {
	withCoords := bracketMatch("0001", &BracketMatchData{Coordinates: &Coordinates{RootIndex: 1}})
	bare10 := bracketMatch("0010", &BracketMatchData{})
	bare2 := bracketMatch("0002", &BracketMatchData{})

	b := newTestBracket(withCoords, bare10, bare2)
	b.CoordinatesByMatchID["0001"] = withCoords.BracketData.(*BracketMatchData).Coordinates
	roots := computeRootMatchIDs(b)

	assert.Equal(t, []string{"0002", "0010", "0001"}, roots)
}

// TestComputeRootMatchIDs_LexicographicTieBreak pins the non-numeric string ordering for
// multi-digit ids
func TestComputeRootMatchIDs_LexicographicTieBreak(t *testing.T) {
	ten := bracketMatch("10", &BracketMatchData{})
	two := bracketMatch("2", &BracketMatchData{})

	b := newTestBracket(two, ten)
	roots := computeRootMatchIDs(b)

	assert.Equal(t, []string{"10", "2"}, roots)
}

// TestBuildBracketTopology_ExcludesBracketReset tests that the reset rematch is excluded
// from roots, rounds and sections
func TestBuildBracketTopology_ExcludesBracketReset(t *testing.T) {
	final := bracketMatch("R03-M001", &BracketMatchData{
		BracketResetMatchID: BracketResetToken,
		Coordinates:         &Coordinates{Round: 1, RoundCount: 1, Section: 1, SectionCount: 1, MatchIndexInRound: 1, RootIndex: 1, Depth: 1},
	})
	reset := bracketMatch(BracketResetToken, &BracketMatchData{
		Coordinates: &Coordinates{Round: 1, RoundCount: 1, Section: 1, SectionCount: 1, MatchIndexInRound: 2, RootIndex: 2, Depth: 1},
	})

	b := newTestBracket(final, reset)
	buildBracketTopology(b)

	assert.Equal(t, []string{"R03-M001"}, b.RootMatchIDs)
	require.Len(t, b.Rounds, 1)
	assert.Equal(t, []string{"R03-M001"}, b.Rounds[0])
	require.Len(t, b.Sections, 1)
	assert.Equal(t, []string{"R03-M001"}, b.Sections[0])
}

// TestBuildBracketTopology_TwoSectionsFromTwoRoots tests the back-fill section partition:
// each root subtree becomes one section
func TestBuildBracketTopology_TwoSectionsFromTwoRoots(t *testing.T) {
	upperFinal := bracketMatch("R02-M001", &BracketMatchData{ChildMatchIDs: []string{"R01-M001"}})
	upperSemi := bracketMatch("R01-M001", &BracketMatchData{})
	lowerFinal := bracketMatch("R02-M002", &BracketMatchData{})

	b := newTestBracket(upperFinal, upperSemi, lowerFinal)
	buildBracketTopology(b)

	require.Len(t, b.RootMatchIDs, 2)
	assert.Equal(t, []string{"R02-M001", "R02-M002"}, b.RootMatchIDs)
	require.Len(t, b.Sections, 2)
	assert.ElementsMatch(t, []string{"R01-M001", "R02-M001"}, b.Sections[0])
	assert.Equal(t, []string{"R02-M002"}, b.Sections[1])
	assert.Equal(t, 2, b.CoordinatesByMatchID["R02-M001"].SectionCount)
}
