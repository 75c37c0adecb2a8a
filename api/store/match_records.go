/* match_records.go
 * Contains the methods for interacting with the match_records collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bracket-bot/api/matchgroup"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Function used to fetch the raw match records for one bracket group from db
// Preconditions: Receives receiver pointer for Store which contains DB information, and the
// group id to fetch
// Postconditions: Returns the group's raw records, refreshing them from the LiquipediaDB
// api first when the cached copy is missing or its TTL has expired, or error message if the
// operation was unsuccessful
func (s *Store) FetchMatchRecords(groupID string) ([]matchgroup.Record, error) {
	if groupID == "" {
		return nil, fmt.Errorf("group id cannot be empty")
	}

	var res MatchRecordsDoc
	var shouldRefresh bool
	err := s.Collections.MatchRecords.FindOne(context.TODO(), bson.D{{Key: "groupid", Value: groupID}}).Decode(&res)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("error fetching records from db: %w", err)
		}
		shouldRefresh = true
	} else if res.TTL < time.Now().Unix() {
		shouldRefresh = true
	}

	// Run if we need to refresh the data stored in the db (either there is no data stored
	// or the TTL has expired)
	if shouldRefresh {
		externalRecords, err := s.External.FetchMatchRecords([]string{groupID})
		if err != nil {
			// A stale copy is better than nothing when the api is unreachable
			if res.Records != nil {
				return res.Records, nil
			}
			return nil, err
		}
		if err := s.StoreMatchRecords(groupID, externalRecords); err != nil {
			return nil, err
		}
		return externalRecords, nil
	}

	return res.Records, nil
}

// Function to store the raw records of one bracket group
// Preconditions: Receives pointer for Store which contains DB information, the group id and
// the raw records to be stored
// Postconditions: Updates the data stored in the db, returns error message if the operation
// was unsuccessful
func (s *Store) StoreMatchRecords(groupID string, records []matchgroup.Record) error {
	if groupID == "" {
		return fmt.Errorf("group id cannot be empty")
	}
	if len(records) == 0 {
		return fmt.Errorf("records input has length 0, requires at least 1")
	}

	// Attempt to find an existing document
	var raw bson.M
	err := s.Collections.MatchRecords.FindOne(context.TODO(), bson.M{"groupid": groupID}).Decode(&raw)
	notFound := err == mongo.ErrNoDocuments

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	doc := MatchRecordsDoc{
		GroupID: groupID,
		Records: records,
		TTL:     DetermineRecordsTTL(records),
	}

	// Perform insert or update
	if notFound {
		_, err := s.Collections.MatchRecords.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert match records: %w", err)
		}
		return nil
	}
	_, err = s.Collections.MatchRecords.UpdateOne(context.TODO(), bson.M{"groupid": groupID}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update match records: %w", err)
	}

	return nil
}

// Function to drop the cached records of one group so the next fetch refetches from the
// api. Used by the edit webhook
// Preconditions: Receives receiver pointer for Store and the group id to invalidate
// Postconditions: Removes the group's cached document; a missing document is not an error
func (s *Store) InvalidateGroup(groupID string) error {
	if groupID == "" {
		return fmt.Errorf("group id cannot be empty")
	}
	_, err := s.Collections.MatchRecords.DeleteOne(context.TODO(), bson.M{"groupid": groupID})
	if err != nil {
		return fmt.Errorf("failed to invalidate group %s: %w", groupID, err)
	}
	return nil
}
