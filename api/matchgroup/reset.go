/* reset.go
 * Contains the merge of a grand final match with its bracket reset rematch into one
 * display-ready match
 */

package matchgroup

import "fmt"

// MergeBracketReset combines primary with its reset rematch. The merged match keeps all of
// the primary's fields; each opponent's secondary score/status/placement is filled
// positionally from the reset match's opponent at the same index, and the reset games are
// appended after the primary's own games. A nil reset returns the primary unmodified.
// Opponent count or ordering disagreements are a fatal shape mismatch, never a partial zip
func MergeBracketReset(primary *Match, reset *Match) (*Match, error) {
	if reset == nil {
		return primary, nil
	}
	if len(primary.Opponents) != len(reset.Opponents) {
		return nil, fmt.Errorf("%w: match %s has %d opponents, reset %s has %d",
			ErrShapeMismatch, primary.MatchID, len(primary.Opponents), reset.MatchID, len(reset.Opponents))
	}
	for i := range primary.Opponents {
		p, r := primary.Opponents[i], reset.Opponents[i]
		if p.Name != "" && r.Name != "" && p.Name != r.Name {
			return nil, fmt.Errorf("%w: opponent %d is %q in match %s but %q in reset %s",
				ErrShapeMismatch, i+1, p.Name, primary.MatchID, r.Name, reset.MatchID)
		}
	}

	merged := *primary
	merged.Opponents = make([]*Opponent, len(primary.Opponents))
	for i := range primary.Opponents {
		opponent := *primary.Opponents[i]
		fromReset := reset.Opponents[i]
		opponent.Score2 = fromReset.Score
		opponent.Status2 = fromReset.Status
		opponent.Placement2 = fromReset.Placement
		merged.Opponents[i] = &opponent
	}

	merged.Games = make([]*Game, 0, len(primary.Games)+len(reset.Games))
	merged.Games = append(merged.Games, primary.Games...)
	merged.Games = append(merged.Games, reset.Games...)

	return &merged, nil
}
