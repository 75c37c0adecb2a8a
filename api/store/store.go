/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split
 * into two files: match_records and team_templates. Each of these files contain methods for
 * interacting with that part of the database
 */

package store

import (
	"context"
	"fmt"

	"bracket-bot/api/external"
	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher is the slice of the external client the store needs for TTL refreshes. It is an
// interface so tests can substitute a fixture-backed fetcher
type Fetcher interface {
	FetchMatchRecords(groupIDs []string) ([]matchgroup.Record, error)
	FetchTeamTemplate(name string) (*shared.TeamTemplate, error)
	GetWikitext(page string, optionalParams string) (string, error)
}

type Store struct {
	Client         *mongo.Client
	Database       *mongo.Database
	Page           string
	OptionalParams string
	External       Fetcher
	Collections    struct {
		MatchRecords  *mongo.Collection
		TeamTemplates *mongo.Collection
	}
}

// Function for initialising Store. Sets up the db connection and collection handles
// Preconditions: Receives strings containing dbName, mongoURI, page and params, plus the
// external fetcher used when cached data is stale
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, page string, params string, fetcher Fetcher) (*Store, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	if page == "" {
		return nil, fmt.Errorf("page cannot be empty")
	}

	store := &Store{
		Client:         client,
		Database:       db,
		Page:           page,
		OptionalParams: params,
		External:       fetcher,
	}
	store.Collections.MatchRecords = db.Collection("match_records")
	store.Collections.TeamTemplates = db.Collection("team_templates")
	return store, nil
}

// FetchGroupRefs fetches the tournament page wikitext and extracts the bracket group ids
// declared on it. Group refs are not cached; the call is rate limited upstream
func (s *Store) FetchGroupRefs() ([]external.GroupRef, error) {
	wikitext, err := s.External.GetWikitext(s.Page, s.OptionalParams)
	if err != nil {
		return nil, fmt.Errorf("error fetching page wikitext: %w", err)
	}
	return external.ExtractGroupRefs(wikitext)
}
