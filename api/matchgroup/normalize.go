/* normalize.go
 * Contains the record normalizer: converts loosely-typed stored match2 rows (fields may be
 * JSON-encoded strings, already-structured containers, or absent) into fully-typed Match
 * structures with defaults filled and empty strings canonicalized to absence
 */

package matchgroup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseTriBool parses the stored boolean-ish encodings ('true'/'false', 1/0, "1"/"0",
// native bool, absent) into a tri-state boolean. Absent, empty or unrecognized values
// yield nil
func ParseTriBool(v interface{}) *bool {
	switch t := v.(type) {
	case bool:
		b := t
		return &b
	case float64:
		if t == 1 {
			b := true
			return &b
		}
		if t == 0 {
			b := false
			return &b
		}
	case int:
		if t == 1 {
			b := true
			return &b
		}
		if t == 0 {
			b := false
			return &b
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			b := true
			return &b
		case "false", "0":
			b := false
			return &b
		}
	}
	return nil
}

// stringValue canonicalizes a scalar record field to a string, with numbers rendered
// without a float artifact. Absent and empty values both come back as ""
func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// intValue parses a scalar record field as an integer. The second return is false for
// absent, empty or non-numeric values
func intValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// optionalInt is intValue for optional fields, treating negative sentinel values as absent
func optionalInt(v interface{}) *int {
	n, ok := intValue(v)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

// structuredMap resolves a field that may be a JSON-encoded string or an already-structured
// object. The result is always a fresh map the caller can mutate freely: absent or empty
// values give an empty map, structured values are copied, and strings are parsed. A string
// that fails to parse is a fatal decode error naming the field and its match
func structuredMap(groupID string, matchID string, field string, v interface{}) (map[string]interface{}, error) {
	switch t := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return map[string]interface{}{}, nil
		}
		var out map[string]interface{}
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return nil, &FieldDecodeError{GroupID: groupID, MatchID: matchID, Field: field, Err: err}
		}
		return out, nil
	}
	return nil, &FieldDecodeError{GroupID: groupID, MatchID: matchID, Field: field,
		Err: fmt.Errorf("unsupported type %T", v)}
}

// structuredList is structuredMap for list-valued fields
func structuredList(groupID string, matchID string, field string, v interface{}) ([]interface{}, error) {
	switch t := v.(type) {
	case nil:
		return []interface{}{}, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		copy(out, t)
		return out, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return []interface{}{}, nil
		}
		var out []interface{}
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return nil, &FieldDecodeError{GroupID: groupID, MatchID: matchID, Field: field, Err: err}
		}
		return out, nil
	}
	return nil, &FieldDecodeError{GroupID: groupID, MatchID: matchID, Field: field,
		Err: fmt.Errorf("unsupported type %T", v)}
}

// liftPositionBackgrounds pulls the pbg1..pbgN custom background fields out of extradata
// into an ordered list, removing them from the map afterwards
func liftPositionBackgrounds(extradata map[string]interface{}) []string {
	var backgrounds []string
	for i := 1; ; i++ {
		key := fmt.Sprintf("pbg%d", i)
		v, ok := extradata[key]
		if !ok {
			break
		}
		backgrounds = append(backgrounds, stringValue(v))
		delete(extradata, key)
	}
	return backgrounds
}

// liftComment pulls the free-text comment field out of extradata
func liftComment(extradata map[string]interface{}) string {
	comment := stringValue(extradata["comment"])
	delete(extradata, "comment")
	return comment
}

// NormalizeMatch converts one raw match2 record into a fully-typed, independently-mutable
// Match. This is the default record conversion strategy; callers can inject their own via
// Options.ConvertRecord
func NormalizeMatch(groupID string, rec Record) (*Match, error) {
	matchID := stringValue(rec["matchid"])
	if matchID == "" {
		if full := stringValue(rec["match2id"]); full != "" {
			if _, base, ok := SplitMatchID(full); ok {
				matchID = base
			} else {
				matchID = full
			}
		}
	}

	extradata, err := structuredMap(groupID, matchID, "extradata", rec["extradata"])
	if err != nil {
		return nil, err
	}
	links, err := structuredMap(groupID, matchID, "links", rec["links"])
	if err != nil {
		return nil, err
	}
	stream, err := structuredMap(groupID, matchID, "stream", rec["stream"])
	if err != nil {
		return nil, err
	}

	match := &Match{
		MatchID:   matchID,
		Date:      stringValue(rec["date"]),
		DateExact: ParseTriBool(rec["dateexact"]),
		Finished:  ParseTriBool(rec["finished"]),
		Winner:    stringValue(rec["winner"]),
		Extradata: extradata,
		Links:     links,
		Stream:    stream,
	}
	if bestOf, ok := intValue(rec["bestof"]); ok {
		match.BestOf = bestOf
	}
	match.PositionBackgrounds = liftPositionBackgrounds(match.Extradata)
	match.Comment = liftComment(match.Extradata)

	rawOpponents, err := structuredList(groupID, matchID, "match2opponents", rec["match2opponents"])
	if err != nil {
		return nil, err
	}
	for i, rawOpponent := range rawOpponents {
		opponent, err := normalizeOpponent(groupID, matchID, i, rawOpponent)
		if err != nil {
			return nil, err
		}
		match.Opponents = append(match.Opponents, opponent)
	}

	rawGames, err := structuredList(groupID, matchID, "match2games", rec["match2games"])
	if err != nil {
		return nil, err
	}
	for i, rawGame := range rawGames {
		game, err := normalizeGame(groupID, matchID, i, rawGame)
		if err != nil {
			return nil, err
		}
		match.Games = append(match.Games, game)
	}

	bracketData, err := normalizeBracketData(groupID, matchID, rec["match2bracketdata"])
	if err != nil {
		return nil, err
	}
	match.BracketData = bracketData

	return match, nil
}

func normalizeOpponent(groupID string, matchID string, index int, v interface{}) (*Opponent, error) {
	field := fmt.Sprintf("match2opponents[%d]", index)
	raw, err := structuredMap(groupID, matchID, field, v)
	if err != nil {
		return nil, err
	}

	extradata, err := structuredMap(groupID, matchID, field+".extradata", raw["extradata"])
	if err != nil {
		return nil, err
	}

	opponent := &Opponent{
		Type:       stringValue(raw["type"]),
		Name:       stringValue(raw["name"]),
		Template:   stringValue(raw["template"]),
		Score:      optionalInt(raw["score"]),
		Status:     stringValue(raw["status"]),
		Placement:  optionalInt(raw["placement"]),
		Score2:     optionalInt(extradata["score2"]),
		Status2:    stringValue(extradata["status2"]),
		Placement2: optionalInt(extradata["placement2"]),
		Advances:   ParseTriBool(extradata["advances"]),
		AdvanceBg:  stringValue(extradata["bg"]),
		Extradata:  extradata,
	}
	delete(extradata, "score2")
	delete(extradata, "status2")
	delete(extradata, "placement2")
	delete(extradata, "advances")
	delete(extradata, "bg")

	rawPlayers, err := structuredList(groupID, matchID, field+".match2players", raw["match2players"])
	if err != nil {
		return nil, err
	}
	for i, rawPlayer := range rawPlayers {
		playerField := fmt.Sprintf("%s.match2players[%d]", field, i)
		playerMap, err := structuredMap(groupID, matchID, playerField, rawPlayer)
		if err != nil {
			return nil, err
		}
		playerExtra, err := structuredMap(groupID, matchID, playerField+".extradata", playerMap["extradata"])
		if err != nil {
			return nil, err
		}
		opponent.Players = append(opponent.Players, &Player{
			Name:        stringValue(playerMap["name"]),
			DisplayName: stringValue(playerMap["displayname"]),
			Flag:        stringValue(playerMap["flag"]),
			Extradata:   playerExtra,
		})
	}

	return opponent, nil
}

func normalizeGame(groupID string, matchID string, index int, v interface{}) (*Game, error) {
	field := fmt.Sprintf("match2games[%d]", index)
	raw, err := structuredMap(groupID, matchID, field, v)
	if err != nil {
		return nil, err
	}

	extradata, err := structuredMap(groupID, matchID, field+".extradata", raw["extradata"])
	if err != nil {
		return nil, err
	}
	participants, err := structuredMap(groupID, matchID, field+".participants", raw["participants"])
	if err != nil {
		return nil, err
	}
	rawScores, err := structuredList(groupID, matchID, field+".scores", raw["scores"])
	if err != nil {
		return nil, err
	}

	game := &Game{
		Date:         stringValue(raw["date"]),
		Finished:     ParseTriBool(raw["finished"]),
		Map:          stringValue(raw["map"]),
		Mode:         stringValue(raw["mode"]),
		Winner:       stringValue(raw["winner"]),
		Participants: participants,
		Extradata:    extradata,
	}
	for _, rawScore := range rawScores {
		if n, ok := intValue(rawScore); ok {
			game.Scores = append(game.Scores, n)
		}
	}

	return game, nil
}

// normalizeBracketData converts the match2bracketdata record field into the in-memory
// tagged union. A missing or unrecognized type discriminator defaults to matchlist rather
// than failing. All coordinate and edge indices are converted from the 0-based record
// encoding to the 1-based in-memory one
func normalizeBracketData(groupID string, matchID string, v interface{}) (BracketData, error) {
	raw, err := structuredMap(groupID, matchID, "match2bracketdata", v)
	if err != nil {
		return nil, err
	}

	if stringValue(raw["type"]) != TypeBracket {
		return &MatchlistData{
			Header: stringValue(raw["header"]),
			Title:  stringValue(raw["title"]),
		}, nil
	}

	bd := &BracketMatchData{
		Header:              stringValue(raw["header"]),
		ParentMatchID:       stringValue(raw["parentmatchid"]),
		BracketResetMatchID: stringValue(raw["bracketreset"]),
		ThirdPlaceMatchID:   stringValue(raw["thirdplace"]),
		WinnerTo:            stringValue(raw["winnerto"]),
		LoserTo:             stringValue(raw["loserto"]),
		QualWinLiteral:      stringValue(raw["qualwinliteral"]),
		QualLoseLiteral:     stringValue(raw["qualloseliteral"]),
	}
	if b := ParseTriBool(raw["qualwin"]); b != nil {
		bd.QualWin = *b
	}
	if b := ParseTriBool(raw["quallose"]); b != nil {
		bd.QualLose = *b
	}
	if n, ok := intValue(raw["qualskip"]); ok {
		bd.QualSkip = n
	}
	if n, ok := intValue(raw["skipround"]); ok {
		bd.SkipRound = n
	}

	rawChildren, err := structuredList(groupID, matchID, "match2bracketdata.childmatchids", raw["childmatchids"])
	if err != nil {
		return nil, err
	}
	for _, child := range rawChildren {
		if id := stringValue(child); id != "" {
			bd.ChildMatchIDs = append(bd.ChildMatchIDs, id)
		}
	}
	// Legacy upper/lower child references used before childmatchids existed
	if len(bd.ChildMatchIDs) == 0 {
		for _, key := range []string{"toupper", "tolower"} {
			if id := stringValue(raw[key]); id != "" {
				bd.ChildMatchIDs = append(bd.ChildMatchIDs, id)
			}
		}
	}

	rawEdges, err := structuredList(groupID, matchID, "match2bracketdata.childedges", raw["childedges"])
	if err != nil {
		return nil, err
	}
	for i, rawEdge := range rawEdges {
		edgeField := fmt.Sprintf("match2bracketdata.childedges[%d]", i)
		edgeMap, err := structuredMap(groupID, matchID, edgeField, rawEdge)
		if err != nil {
			return nil, err
		}
		childIndex, _ := intValue(edgeMap["childmatchindex"])
		opponentIndex, _ := intValue(edgeMap["opponentindex"])
		bd.ChildEdges = append(bd.ChildEdges, ChildEdge{
			ChildMatchIndex: indexFromRecord(childIndex),
			OpponentIndex:   indexFromRecord(opponentIndex),
		})
	}

	rawSpots, err := structuredList(groupID, matchID, "match2bracketdata.advancespots", raw["advancespots"])
	if err != nil {
		return nil, err
	}
	for i, rawSpot := range rawSpots {
		if i >= 2 {
			break
		}
		spotField := fmt.Sprintf("match2bracketdata.advancespots[%d]", i)
		spotMap, err := structuredMap(groupID, matchID, spotField, rawSpot)
		if err != nil {
			return nil, err
		}
		spot := &AdvanceSpot{
			Bg:      stringValue(spotMap["bg"]),
			Kind:    stringValue(spotMap["type"]),
			MatchID: stringValue(spotMap["matchid"]),
		}
		// An empty entry holds the position of an absent slot. Slot order is semantic:
		// slot 1 is the winner destination, slot 2 the loser one
		if spot.Bg == "" && spot.Kind == "" && spot.MatchID == "" {
			bd.AdvanceSpots = append(bd.AdvanceSpots, nil)
			continue
		}
		bd.AdvanceSpots = append(bd.AdvanceSpots, spot)
	}

	if rawCoords, ok := raw["coordinates"]; ok {
		coordsMap, err := structuredMap(groupID, matchID, "match2bracketdata.coordinates", rawCoords)
		if err != nil {
			return nil, err
		}
		if len(coordsMap) > 0 {
			bd.Coordinates = coordinatesFromRecord(coordsMap)
		}
	}

	return bd, nil
}

// coordinatesFromRecord converts the 0-based record coordinate encoding to the 1-based
// in-memory one. Counts are plain totals and pass through unchanged
func coordinatesFromRecord(raw map[string]interface{}) *Coordinates {
	coords := &Coordinates{}
	if n, ok := intValue(raw["depth"]); ok {
		coords.Depth = indexFromRecord(n)
	}
	if n, ok := intValue(raw["roundindex"]); ok {
		coords.Round = indexFromRecord(n)
	}
	if n, ok := intValue(raw["roundcount"]); ok {
		coords.RoundCount = n
	}
	if n, ok := intValue(raw["sectionindex"]); ok {
		coords.Section = indexFromRecord(n)
	}
	if n, ok := intValue(raw["sectioncount"]); ok {
		coords.SectionCount = n
	}
	if n, ok := intValue(raw["matchindexinround"]); ok {
		coords.MatchIndexInRound = indexFromRecord(n)
	}
	if n, ok := intValue(raw["rootindex"]); ok {
		coords.RootIndex = indexFromRecord(n)
	}
	return coords
}

// CoordinatesToRecord converts in-memory coordinates back to the 0-based record encoding
func CoordinatesToRecord(coords *Coordinates) map[string]interface{} {
	return map[string]interface{}{
		"depth":             indexToRecord(coords.Depth),
		"roundindex":        indexToRecord(coords.Round),
		"roundcount":        coords.RoundCount,
		"sectionindex":      indexToRecord(coords.Section),
		"sectioncount":      coords.SectionCount,
		"matchindexinround": indexToRecord(coords.MatchIndexInRound),
		"rootindex":         indexToRecord(coords.RootIndex),
	}
}

// BracketDataToRecord converts in-memory bracket data back to the on-wire record shape,
// including the deprecated string-valued fields older consumers still read: the three-way
// bracketsection label derived from the section position, and the legacy toupper/tolower
// child references derived from the child edges
func BracketDataToRecord(bd *BracketMatchData) map[string]interface{} {
	record := map[string]interface{}{
		"type":   TypeBracket,
		"header": bd.Header,
	}
	setIfPresent := func(key string, value string) {
		if value != "" {
			record[key] = value
		}
	}
	setIfPresent("parentmatchid", bd.ParentMatchID)
	setIfPresent("bracketreset", bd.BracketResetMatchID)
	setIfPresent("thirdplace", bd.ThirdPlaceMatchID)
	setIfPresent("winnerto", bd.WinnerTo)
	setIfPresent("loserto", bd.LoserTo)
	setIfPresent("qualwinliteral", bd.QualWinLiteral)
	setIfPresent("qualloseliteral", bd.QualLoseLiteral)
	if bd.QualWin {
		record["qualwin"] = "true"
	}
	if bd.QualLose {
		record["quallose"] = "true"
	}
	if bd.QualSkip != 0 {
		record["qualskip"] = bd.QualSkip
	}
	if bd.SkipRound != 0 {
		record["skipround"] = bd.SkipRound
	}

	if len(bd.ChildMatchIDs) > 0 {
		children := make([]interface{}, len(bd.ChildMatchIDs))
		for i, id := range bd.ChildMatchIDs {
			children[i] = id
		}
		record["childmatchids"] = children
	}
	if len(bd.ChildEdges) > 0 {
		edges := make([]interface{}, len(bd.ChildEdges))
		for i, edge := range bd.ChildEdges {
			edges[i] = map[string]interface{}{
				"childmatchindex": indexToRecord(edge.ChildMatchIndex),
				"opponentindex":   indexToRecord(edge.OpponentIndex),
			}
		}
		record["childedges"] = edges
	}
	if len(bd.AdvanceSpots) > 0 {
		spots := make([]interface{}, 0, len(bd.AdvanceSpots))
		for _, spot := range bd.AdvanceSpots {
			if spot == nil {
				// Keep the absent slot as an empty entry so a lone loser destination
				// stays in slot 2 when the record is read back
				spots = append(spots, map[string]interface{}{})
				continue
			}
			spots = append(spots, map[string]interface{}{
				"bg":      spot.Bg,
				"type":    spot.Kind,
				"matchid": spot.MatchID,
			})
		}
		record["advancespots"] = spots
	}
	if bd.Coordinates != nil {
		record["coordinates"] = CoordinatesToRecord(bd.Coordinates)
		record["bracketsection"] = bracketSectionLabel(bd.Coordinates)
	}

	// Legacy upper/lower child references: the child feeding the first opponent slot is
	// the upper one, the child feeding the last is the lower one
	for _, edge := range bd.ChildEdges {
		i := edge.ChildMatchIndex - 1
		if i < 0 || i >= len(bd.ChildMatchIDs) {
			continue
		}
		if edge.OpponentIndex == 1 && record["toupper"] == nil {
			record["toupper"] = bd.ChildMatchIDs[i]
		}
		if edge.OpponentIndex == 2 && record["tolower"] == nil {
			record["tolower"] = bd.ChildMatchIDs[i]
		}
	}

	return record
}

// bracketSectionLabel derives the deprecated three-way section label from the section
// position: the first section is 'upper', the last of several is 'lower', anything between
// is 'mid'
func bracketSectionLabel(coords *Coordinates) string {
	switch {
	case coords.Section <= 1:
		return "upper"
	case coords.Section == coords.SectionCount:
		return "lower"
	default:
		return "mid"
	}
}

// CoerceRecordsToType rewrites a record set in place to the given bracket type, renaming
// or adding only the minimal header fields the target shape requires. A header is
// synthesized only on the group's logical first match. The operation is idempotent:
// coercing twice yields the same records as coercing once
func CoerceRecordsToType(groupID string, records []Record, target string) ([]Record, error) {
	if target != TypeMatchlist && target != TypeBracket {
		return nil, fmt.Errorf("unknown bracket type %q", target)
	}
	for i, rec := range records {
		matchID := stringValue(rec["matchid"])
		raw, err := structuredMap(groupID, matchID, "match2bracketdata", rec["match2bracketdata"])
		if err != nil {
			return nil, err
		}
		raw["type"] = target
		if target == TypeMatchlist && i == 0 && stringValue(raw["title"]) == "" {
			if header := stringValue(raw["header"]); header != "" {
				raw["title"] = header
			} else {
				raw["title"] = "Matches"
			}
		}
		rec["match2bracketdata"] = raw
	}
	return records, nil
}
