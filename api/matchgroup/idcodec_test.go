/* idcodec_test.go
 * Contains unit tests for the match id codec
 */

package matchgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchIDToKey_Bracket tests compacting a bracket record id
func TestMatchIDToKey_Bracket(t *testing.T) {
	key, err := MatchIDToKey("R01-M003")
	require.NoError(t, err)
	assert.Equal(t, "R1M3", key)
}

// TestMatchIDToKey_Matchlist tests compacting a zero-padded matchlist id
func TestMatchIDToKey_Matchlist(t *testing.T) {
	key, err := MatchIDToKey("0005")
	require.NoError(t, err)
	assert.Equal(t, "M5", key)
}

// TestMatchIDToKey_Literal tests that special tokens pass through unchanged
func TestMatchIDToKey_Literal(t *testing.T) {
	for _, token := range []string{BracketResetToken, ThirdPlaceToken} {
		key, err := MatchIDToKey(token)
		require.NoError(t, err)
		assert.Equal(t, token, key)
	}
}

// TestMatchIDFromKey_Bracket tests expanding a bracket key back to record form
func TestMatchIDFromKey_Bracket(t *testing.T) {
	id, err := MatchIDFromKey("R1M3")
	require.NoError(t, err)
	assert.Equal(t, "R01-M003", id)
}

// TestMatchIDFromKey_Matchlist tests expanding a matchlist key back to record form
func TestMatchIDFromKey_Matchlist(t *testing.T) {
	id, err := MatchIDFromKey("M5")
	require.NoError(t, err)
	assert.Equal(t, "0005", id)
}

// TestMatchIDRoundTrip tests that well-formed ids survive both conversion directions with
// no leading-zero artifacts
func TestMatchIDRoundTrip(t *testing.T) {
	recordIDs := []string{"R01-M001", "R02-M003", "R10-M015", "R99-M999", "0001", "0042", "9999", BracketResetToken, ThirdPlaceToken}
	for _, id := range recordIDs {
		key, err := MatchIDToKey(id)
		require.NoError(t, err)
		back, err := MatchIDFromKey(key)
		require.NoError(t, err)
		assert.Equal(t, id, back, "record id %q did not round trip (key %q)", id, key)
	}

	keyIDs := []string{"R1M1", "R12M345", "M1", "M77", BracketResetToken}
	for _, key := range keyIDs {
		id, err := MatchIDFromKey(key)
		require.NoError(t, err)
		back, err := MatchIDToKey(id)
		require.NoError(t, err)
		assert.Equal(t, key, back, "key %q did not round trip (record form %q)", key, id)
	}
}

// TestMatchIDToKey_Invalid tests that malformed ids are rejected
func TestMatchIDToKey_Invalid(t *testing.T) {
	for _, id := range []string{"", "R1M3", "M-1", "match one"} {
		_, err := MatchIDToKey(id)
		assert.Error(t, err, "expected error for %q", id)
	}
}

// TestSplitMatchID tests splitting a fully-qualified id on its last underscore
func TestSplitMatchID(t *testing.T) {
	group, base, ok := SplitMatchID("RSTxQ88PoQ_R03-M001")
	require.True(t, ok)
	assert.Equal(t, "RSTxQ88PoQ", group)
	assert.Equal(t, "R03-M001", base)
}

// TestSplitMatchID_GroupWithUnderscores tests that only the last underscore separates
func TestSplitMatchID_GroupWithUnderscores(t *testing.T) {
	group, base, ok := SplitMatchID("Major_2025_Austin_0001")
	require.True(t, ok)
	assert.Equal(t, "Major_2025_Austin", group)
	assert.Equal(t, "0001", base)
}

// TestSplitMatchID_Invalid tests rejection of ids without a valid base part
func TestSplitMatchID_Invalid(t *testing.T) {
	for _, id := range []string{"nobase_", "_R01-M001", "plainid", "group_bad base"} {
		_, _, ok := SplitMatchID(id)
		assert.False(t, ok, "expected split to fail for %q", id)
	}
}

// TestJoinMatchID tests the inverse of SplitMatchID
func TestJoinMatchID(t *testing.T) {
	full := JoinMatchID("RSTxQ88PoQ", "R03-M001")
	assert.Equal(t, "RSTxQ88PoQ_R03-M001", full)

	group, base, ok := SplitMatchID(full)
	require.True(t, ok)
	assert.Equal(t, "RSTxQ88PoQ", group)
	assert.Equal(t, "R03-M001", base)
}

// TestIsBracketResetID tests the reset suffix check
func TestIsBracketResetID(t *testing.T) {
	assert.True(t, IsBracketResetID(BracketResetToken))
	assert.False(t, IsBracketResetID("R01-M001"))
	assert.False(t, IsBracketResetID(ThirdPlaceToken))
}
