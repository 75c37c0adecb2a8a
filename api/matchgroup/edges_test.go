/* edges_test.go
 * Contains unit tests for the child edge assignment rule
 */

package matchgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeChildEdges_FewerChildrenCentered tests the centering branch: two children in
// four opponent slots get skip 1
func TestComputeChildEdges_FewerChildrenCentered(t *testing.T) {
	edges := ComputeChildEdges(2, 4)
	assert.Equal(t, []ChildEdge{
		{ChildMatchIndex: 1, OpponentIndex: 2},
		{ChildMatchIndex: 2, OpponentIndex: 3},
	}, edges)
}

// TestComputeChildEdges_MoreChildrenClamped tests the clamping branch: excess children all
// map onto the last opponent slot
func TestComputeChildEdges_MoreChildrenClamped(t *testing.T) {
	edges := ComputeChildEdges(4, 2)
	assert.Equal(t, []ChildEdge{
		{ChildMatchIndex: 1, OpponentIndex: 1},
		{ChildMatchIndex: 2, OpponentIndex: 2},
		{ChildMatchIndex: 3, OpponentIndex: 2},
		{ChildMatchIndex: 4, OpponentIndex: 2},
	}, edges)
}

// TestComputeChildEdges_EqualCounts tests the one-to-one case
func TestComputeChildEdges_EqualCounts(t *testing.T) {
	edges := ComputeChildEdges(2, 2)
	assert.Equal(t, []ChildEdge{
		{ChildMatchIndex: 1, OpponentIndex: 1},
		{ChildMatchIndex: 2, OpponentIndex: 2},
	}, edges)
}

// TestComputeChildEdges_OddGapUsesCeiling tests the ceiling rounding: one child in four
// slots gives skip ceil(3/2) = 2
func TestComputeChildEdges_OddGapUsesCeiling(t *testing.T) {
	edges := ComputeChildEdges(1, 4)
	assert.Equal(t, []ChildEdge{{ChildMatchIndex: 1, OpponentIndex: 3}}, edges)
}

// TestComputeChildEdges_WithinOpponentCount tests the invariant that every opponent index
// stays inside the parent's opponent slots
func TestComputeChildEdges_WithinOpponentCount(t *testing.T) {
	for children := 1; children <= 6; children++ {
		for opponents := 1; opponents <= 6; opponents++ {
			for _, edge := range ComputeChildEdges(children, opponents) {
				assert.GreaterOrEqual(t, edge.OpponentIndex, 1)
				assert.LessOrEqual(t, edge.OpponentIndex, opponents,
					"edge %+v out of range for K=%d N=%d", edge, children, opponents)
			}
		}
	}
}

// TestComputeChildEdges_NoSlots tests degenerate inputs
func TestComputeChildEdges_NoSlots(t *testing.T) {
	assert.Nil(t, ComputeChildEdges(0, 2))
	assert.Nil(t, ComputeChildEdges(2, 0))
}
