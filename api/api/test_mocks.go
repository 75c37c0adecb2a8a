/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"
	"fmt"
	"strings"

	"bracket-bot/api/external"
	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Records   map[string][]matchgroup.Record
	Templates map[string]*shared.TeamTemplate
	GroupRefs []external.GroupRef

	// Error injection for testing error paths
	FetchGroupRefsError    error
	FetchMatchRecordsError error
	FetchTeamTemplateError error

	// Call tracking
	RecordFetches   int
	TemplateFetches int
	Invalidated     []string
}

// NewMockStore creates a new MockStore with empty storage
func NewMockStore() *MockStore {
	return &MockStore{
		Records:   make(map[string][]matchgroup.Record),
		Templates: make(map[string]*shared.TeamTemplate),
	}
}

func (m *MockStore) FetchGroupRefs() ([]external.GroupRef, error) {
	if m.FetchGroupRefsError != nil {
		return nil, m.FetchGroupRefsError
	}
	return m.GroupRefs, nil
}

func (m *MockStore) FetchMatchRecords(groupID string) ([]matchgroup.Record, error) {
	m.RecordFetches++
	if m.FetchMatchRecordsError != nil {
		return nil, m.FetchMatchRecordsError
	}
	records, ok := m.Records[groupID]
	if !ok {
		return nil, fmt.Errorf("no records for group %s", groupID)
	}
	return records, nil
}

func (m *MockStore) StoreMatchRecords(groupID string, records []matchgroup.Record) error {
	m.Records[groupID] = records
	return nil
}

func (m *MockStore) InvalidateGroup(groupID string) error {
	delete(m.Records, groupID)
	m.Invalidated = append(m.Invalidated, groupID)
	return nil
}

func (m *MockStore) FetchTeamTemplate(name string) (*shared.TeamTemplate, error) {
	m.TemplateFetches++
	if m.FetchTeamTemplateError != nil {
		return nil, m.FetchTeamTemplateError
	}
	template, ok := m.Templates[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrTeamTemplateMissing, name)
	}
	return template, nil
}

func (m *MockStore) StoreTeamTemplate(name string, template *shared.TeamTemplate) error {
	m.Templates[strings.ToLower(name)] = template
	return nil
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// Implement getter methods for store.Interface
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: "test_db"}
}

func (m *MockStore) GetPage() string {
	return "Test/Tournament/2025"
}

func (m *MockStore) GetOptionalParams() string {
	return ""
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)
