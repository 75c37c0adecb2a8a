/* test_helpers.go
 * Contains test helper functions and mock structures for store package tests
 */

package store

import (
	"context"
	"fmt"

	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"
)

// FakeFetcher is a Fetcher backed by canned data, for tests that must not reach the api
type FakeFetcher struct {
	Records      map[string][]matchgroup.Record
	Templates    map[string]*shared.TeamTemplate
	Wikitext     string
	RecordCalls  int
	WikitextErr  error
	RecordsErr   error
	TemplatesErr error
}

func (f *FakeFetcher) FetchMatchRecords(groupIDs []string) ([]matchgroup.Record, error) {
	f.RecordCalls++
	if f.RecordsErr != nil {
		return nil, f.RecordsErr
	}
	var all []matchgroup.Record
	for _, id := range groupIDs {
		all = append(all, f.Records[id]...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no records for groups %v", groupIDs)
	}
	return all, nil
}

func (f *FakeFetcher) FetchTeamTemplate(name string) (*shared.TeamTemplate, error) {
	if f.TemplatesErr != nil {
		return nil, f.TemplatesErr
	}
	return f.Templates[name], nil
}

func (f *FakeFetcher) GetWikitext(page string, optionalParams string) (string, error) {
	if f.WikitextErr != nil {
		return "", f.WikitextErr
	}
	return f.Wikitext, nil
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string, fetcher Fetcher) (*Store, func(), error) {
	store, err := NewStore("test_bracketbot", mongoURI, "Test/Tournament/2025", "", fetcher)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			store.Database.Drop(context.TODO())
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleRecords creates a small finished bracket group for testing.
func CreateSampleRecords(groupID string) []matchgroup.Record {
	return []matchgroup.Record{
		{
			"match2id": "Test_2025_" + groupID + "_R01-M001",
			"date":     "2025-06-01 12:00:00",
			"finished": "1",
			"winner":   "1",
		},
		{
			"match2id": "Test_2025_" + groupID + "_R01-M002",
			"date":     "2025-06-01 15:00:00",
			"finished": "1",
			"winner":   "2",
		},
	}
}
