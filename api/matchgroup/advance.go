/* advance.go
 * Contains the advance spot resolution for bracket matches. Slot 1 is the winner's
 * destination and slot 2 the loser's. Resolution is layered: defaults from the parent link,
 * legacy explicit target fields, qualification flags, the third place special case, and
 * per-position background overrides, in that order, with each layer overriding only the
 * fields it sets
 */

package matchgroup

// computeAdvanceSpots applies the per-match layers (default, legacy targets, qualification
// flags) and returns the two slots, nil where absent. The third place back-fill and the
// position background overrides are applied separately by the group builder because they
// need group context and must come last
func computeAdvanceSpots(bd *BracketMatchData) [2]*AdvanceSpot {
	var slots [2]*AdvanceSpot

	// Default: a match with a parent sends its winner up to that parent
	if bd.ParentMatchID != "" {
		slots[0] = &AdvanceSpot{Bg: BgUp, Kind: AdvanceKindAdvance, MatchID: bd.ParentMatchID}
	}

	// Legacy explicit targets override the slot target and mark the spot custom
	if bd.WinnerTo != "" {
		if slots[0] == nil {
			slots[0] = &AdvanceSpot{Bg: BgUp}
		}
		slots[0].MatchID = bd.WinnerTo
		slots[0].Kind = AdvanceKindCustom
	}
	if bd.LoserTo != "" {
		if slots[1] == nil {
			slots[1] = &AdvanceSpot{Bg: BgDown}
		}
		slots[1].MatchID = bd.LoserTo
		slots[1].Kind = AdvanceKindCustom
	}

	// Qualification flags upgrade the kind only; background and target from the earlier
	// layers are retained
	if bd.QualWin {
		if slots[0] == nil {
			slots[0] = &AdvanceSpot{Bg: BgUp}
		}
		slots[0].Kind = AdvanceKindQualify
	}
	if bd.QualLose {
		if slots[1] == nil {
			slots[1] = &AdvanceSpot{Bg: BgDown}
		}
		slots[1].Kind = AdvanceKindQualify
	}

	return slots
}

// applyThirdPlaceSpots back-fills slot 2 on every direct child of a root that declares a
// third place match. Children that already resolved a loser destination keep it
func applyThirdPlaceSpots(b *Bracket, spots map[string]*[2]*AdvanceSpot) {
	for _, rootID := range b.RootMatchIDs {
		rootData := b.BracketDatasByID[rootID]
		if rootData == nil || rootData.ThirdPlaceMatchID == "" {
			continue
		}
		if b.MatchesByID[rootData.ThirdPlaceMatchID] == nil {
			continue
		}
		for _, childID := range rootData.ChildMatchIDs {
			childSpots := spots[childID]
			if childSpots == nil || childSpots[1] != nil {
				continue
			}
			childSpots[1] = &AdvanceSpot{
				Bg:      BgStayUp,
				Kind:    AdvanceKindAdvance,
				MatchID: rootData.ThirdPlaceMatchID,
			}
		}
	}
}

// applyBackgroundOverrides applies the per-position background list lifted from the match
// extradata. These have the highest precedence but only touch the background (and kind for
// a spot created here); an existing target is left alone
func applyBackgroundOverrides(match *Match, slots *[2]*AdvanceSpot) {
	for i, bg := range match.PositionBackgrounds {
		if i >= len(slots) {
			break
		}
		if bg == "" {
			continue
		}
		if slots[i] != nil {
			slots[i].Bg = bg
			continue
		}
		slots[i] = &AdvanceSpot{Bg: bg, Kind: AdvanceKindCustom}
	}
}

// trimAdvanceSpots converts the fixed slot pair to the stored list form, dropping trailing
// absent slots so the list length is 0, 1 or 2
func trimAdvanceSpots(slots [2]*AdvanceSpot) []*AdvanceSpot {
	if slots[1] != nil {
		return []*AdvanceSpot{slots[0], slots[1]}
	}
	if slots[0] != nil {
		return []*AdvanceSpot{slots[0]}
	}
	return nil
}
