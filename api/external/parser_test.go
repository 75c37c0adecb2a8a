/* parser_test.go
 * Contains unit tests for the wikitext group discovery and api response parsing
 */

package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractGroupRefs_MatchlistAndBracket tests discovery of both template kinds
func TestExtractGroupRefs_MatchlistAndBracket(t *testing.T) {
	wikitext := `
==Group A==
{{Matchlist|id=abcDEF1234|M1={{Match|...}}}}
==Playoffs==
{{Bracket|Bracket/8|id=xyzGHI5678
|R1M1={{Match|...}}
}}
`
	refs, err := ExtractGroupRefs(wikitext)
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, GroupRef{ID: "abcDEF1234", Type: "matchlist"}, refs[0])
	assert.Equal(t, GroupRef{ID: "xyzGHI5678", Type: "bracket"}, refs[1])
}

// TestExtractGroupRefs_StripsHtmlComments tests ids followed by inline editor comments
func TestExtractGroupRefs_StripsHtmlComments(t *testing.T) {
	wikitext := `{{Matchlist|id=abcDEF1234 <!-- do not change -->|title=Group A}}`

	refs, err := ExtractGroupRefs(wikitext)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "abcDEF1234", refs[0].ID)
}

// TestExtractGroupRefs_NoTemplates tests the miss path
func TestExtractGroupRefs_NoTemplates(t *testing.T) {
	_, err := ExtractGroupRefs("==Results==\nNothing here yet.")
	assert.Error(t, err)
}

// TestRecordsFromJSON tests parsing a LiquipediaDB result payload into raw records
func TestRecordsFromJSON(t *testing.T) {
	payload := `{
		"result": [
			{"match2id": "Major_2025_abcDEF1234_R01-M001", "winner": "1"},
			{"match2id": "Major_2025_abcDEF1234_R01-M002", "winner": "2"}
		]
	}`

	records, err := RecordsFromJSON(payload)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Major_2025_abcDEF1234_R01-M001", records[0]["match2id"])
	assert.Equal(t, "2", records[1]["winner"])
}

// TestRecordsFromJSON_MissingResult tests a payload without the result field
func TestRecordsFromJSON_MissingResult(t *testing.T) {
	_, err := RecordsFromJSON(`{"error": "unauthorized"}`)
	assert.Error(t, err)
}

// TestRecordsFromJSON_MalformedJSON tests a payload that is not valid JSON
func TestRecordsFromJSON_MalformedJSON(t *testing.T) {
	_, err := RecordsFromJSON(`{"result": [`)
	assert.Error(t, err)
}

// TestTeamTemplateFromJSON tests parsing a teamtemplate payload
func TestTeamTemplateFromJSON(t *testing.T) {
	payload := `{
		"result": [
			{"name": "navi", "bracketname": "Natus Vincere", "displayname": "Natus Vincere", "page": "Natus_Vincere", "shortname": "NAVI"}
		]
	}`

	template, err := TeamTemplateFromJSON(payload)
	require.NoError(t, err)
	require.NotNil(t, template)
	assert.Equal(t, "Natus Vincere", template.DisplayName)
	assert.Equal(t, "NAVI", template.ShortName)
}

// TestTeamTemplateFromJSON_EmptyResult tests that an empty result is a nil miss, not an error
func TestTeamTemplateFromJSON_EmptyResult(t *testing.T) {
	template, err := TeamTemplateFromJSON(`{"result": []}`)
	require.NoError(t, err)
	assert.Nil(t, template)
}
