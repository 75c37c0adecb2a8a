/* edges.go
 * Contains the child edge assignment used when a bracket match does not declare explicit
 * connector edges to its child matches
 */

package matchgroup

// ComputeChildEdges derives the connector edges for a parent match with childCount child
// slots and opponentCount opponent slots. With fewer children than opponents the children
// are centered within the opponent slots (skip = ceil((N-K)/2)); with more children than
// opponents, excess children all clamp onto the last opponent slot. The asymmetry between
// the two branches matters for connector-line placement
func ComputeChildEdges(childCount int, opponentCount int) []ChildEdge {
	if childCount <= 0 || opponentCount <= 0 {
		return nil
	}

	edges := make([]ChildEdge, 0, childCount)
	if childCount <= opponentCount {
		skip := (opponentCount - childCount + 1) / 2 // ceil((N-K)/2)
		for i := 1; i <= childCount; i++ {
			edges = append(edges, ChildEdge{ChildMatchIndex: i, OpponentIndex: i + skip})
		}
		return edges
	}

	for i := 1; i <= childCount; i++ {
		opponent := i
		if opponent > opponentCount {
			opponent = opponentCount
		}
		edges = append(edges, ChildEdge{ChildMatchIndex: i, OpponentIndex: opponent})
	}
	return edges
}
