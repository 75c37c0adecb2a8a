/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"bracket-bot/api/external"
	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	FetchGroupRefs() ([]external.GroupRef, error)
	FetchMatchRecords(groupID string) ([]matchgroup.Record, error)
	StoreMatchRecords(groupID string, records []matchgroup.Record) error
	InvalidateGroup(groupID string) error
	FetchTeamTemplate(name string) (*shared.TeamTemplate, error)
	StoreTeamTemplate(name string, template *shared.TeamTemplate) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetPage() string
	GetOptionalParams() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetPage returns the Liquipedia page path
func (s *Store) GetPage() string {
	return s.Page
}

// GetOptionalParams returns optional query parameters
func (s *Store) GetOptionalParams() string {
	return s.OptionalParams
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
