/* models.go
 * This file contains the structs and helper functions that relate to DB objects
 */

package store

import (
	"time"

	"bracket-bot/api/matchgroup"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchRecordsDoc stores the raw record list for one bracket group, with a TTL governing
// when the cached copy goes stale
type MatchRecordsDoc struct {
	Id      primitive.ObjectID  `bson:"_id,omitempty"`
	GroupID string              `bson:"groupid,omitempty"`
	Records []matchgroup.Record `bson:"records,omitempty"`
	TTL     int64               `bson:"ttl,omitempty"`
}

// TeamTemplateDoc stores one resolved team template under its lowercased template name
type TeamTemplateDoc struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name,omitempty"`
	BracketName string             `bson:"bracketname,omitempty"`
	DisplayName string             `bson:"displayname,omitempty"`
	PageName    string             `bson:"pagename,omitempty"`
	ShortName   string             `bson:"shortname,omitempty"`
	TTL         int64              `bson:"ttl,omitempty"`
}

const (
	recordDateLayout = "2006-01-02 15:04:05"

	liveRefreshInterval = 5 * time.Minute
	idleRefreshInterval = time.Hour
	doneRefreshInterval = 24 * time.Hour
	templateTTL         = 7 * 24 * time.Hour
)

// Function to determine the TTL for a group's cached records based on its match states
// Preconditions: Receives the raw records of one group
// Postconditions: Returns the unix time after which the cache should be refreshed: soon if
// any match is live, at the next start time if matches are pending, or a day out when the
// whole group is finished
func DetermineRecordsTTL(records []matchgroup.Record) int64 {
	now := time.Now()

	allFinished := len(records) > 0
	var nextStart int64
	for _, rec := range records {
		finished := matchgroup.ParseTriBool(rec["finished"])
		if finished != nil && *finished {
			continue
		}
		allFinished = false

		start, ok := recordStartTime(rec)
		if !ok {
			continue
		}
		if start <= now.Unix() {
			// Started but not finished: the group is live
			return now.Add(liveRefreshInterval).Unix()
		}
		if nextStart == 0 || start < nextStart {
			nextStart = start
		}
	}

	if allFinished {
		return now.Add(doneRefreshInterval).Unix()
	}
	if nextStart > 0 {
		return nextStart
	}
	return now.Add(idleRefreshInterval).Unix()
}

// recordStartTime parses a record's stored date into a unix timestamp
func recordStartTime(rec matchgroup.Record) (int64, bool) {
	raw, ok := rec["date"].(string)
	if !ok || raw == "" {
		return 0, false
	}
	parsed, err := time.Parse(recordDateLayout, raw)
	if err != nil {
		return 0, false
	}
	return parsed.Unix(), true
}
