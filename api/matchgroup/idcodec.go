/* idcodec.go
 * Contains the bidirectional conversion between the two match id encodings used by match2
 * records. The record form is "R01-M003" for brackets and a 4-digit zero-padded number for
 * matchlists; the key form is "R1M3" and "M5". Special literal tokens pass through unchanged
 * in both directions
 */

package matchgroup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BracketResetToken is the literal base id suffix of a grand final's reset rematch.
// ThirdPlaceToken identifies a third place match. Both are preserved verbatim by the codec
const (
	BracketResetToken = "RxMBR"
	ThirdPlaceToken   = "RxMTP"
)

var (
	recordIDPattern    = regexp.MustCompile(`^R(\d+)-M(\d+)$`)
	matchlistIDPattern = regexp.MustCompile(`^(\d+)$`)
	keyIDPattern       = regexp.MustCompile(`^R(\d+)M(\d+)$`)
	matchlistKeyPattern = regexp.MustCompile(`^M(\d+)$`)
	baseIDPattern      = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// IsLiteralMatchID reports whether id is one of the special pass-through tokens
func IsLiteralMatchID(id string) bool {
	return id == BracketResetToken || id == ThirdPlaceToken
}

// IsBracketResetID reports whether a base match id refers to a bracket reset match
func IsBracketResetID(id string) bool {
	return strings.HasSuffix(id, BracketResetToken)
}

// MatchIDToKey converts a record-form base match id to its compact key form.
// "R01-M003" becomes "R1M3" and "0005" becomes "M5"; literal tokens are returned unchanged
func MatchIDToKey(matchID string) (string, error) {
	if IsLiteralMatchID(matchID) {
		return matchID, nil
	}
	if m := recordIDPattern.FindStringSubmatch(matchID); m != nil {
		round, _ := strconv.Atoi(m[1])
		match, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("R%dM%d", round, match), nil
	}
	if m := matchlistIDPattern.FindStringSubmatch(matchID); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("M%d", n), nil
	}
	return "", fmt.Errorf("invalid record-form match id: %q", matchID)
}

// MatchIDFromKey converts a key-form match id back to its zero-padded record form.
// "R1M3" becomes "R01-M003" and "M5" becomes "0005"; literal tokens are returned unchanged.
// Numeric components round-trip exactly
func MatchIDFromKey(key string) (string, error) {
	if IsLiteralMatchID(key) {
		return key, nil
	}
	if m := keyIDPattern.FindStringSubmatch(key); m != nil {
		round, _ := strconv.Atoi(m[1])
		match, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("R%02d-M%03d", round, match), nil
	}
	if m := matchlistKeyPattern.FindStringSubmatch(key); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%04d", n), nil
	}
	return "", fmt.Errorf("invalid key-form match id: %q", key)
}

// SplitMatchID splits a fully-qualified match id of shape "<groupId>_<baseId>" on the last
// underscore. The base id must be alphanumeric/dash only; anything else is not a split
func SplitMatchID(fullID string) (groupID string, baseID string, ok bool) {
	idx := strings.LastIndex(fullID, "_")
	if idx <= 0 || idx == len(fullID)-1 {
		return "", "", false
	}
	group, base := fullID[:idx], fullID[idx+1:]
	if !baseIDPattern.MatchString(base) {
		return "", "", false
	}
	return group, base, true
}

// JoinMatchID is the inverse of SplitMatchID
func JoinMatchID(groupID string, baseID string) string {
	return groupID + "_" + baseID
}

// indexToRecord converts a 1-based in-memory index to the 0-based stored-record encoding
func indexToRecord(i int) int {
	if i <= 0 {
		return 0
	}
	return i - 1
}

// indexFromRecord converts a 0-based stored-record index to the 1-based in-memory encoding
func indexFromRecord(i int) int {
	return i + 1
}
