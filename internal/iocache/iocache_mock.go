package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// MockRunLogManager is a mock implementation of RunLogManager for testing.
type MockRunLogManager struct {
	mock.Mock
}

var _ contract.RunLogManager = &MockRunLogManager{} // Compile-time check

// GetRunStore implements the RunLogManager interface.
func (m *MockRunLogManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, source schema.RunSource, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, source, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordReports implements the RunStore interface.
func (m *MockRunStore) RecordReports(runID int64, reports []schema.RunReportRecord) error {
	args := m.Called(runID, reports)
	return args.Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, counts contract.RunCounts) error {
	args := m.Called(runID, endTime, counts)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunLogStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunLogStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllRunReports implements the RunStore interface.
func (m *MockRunStore) GetAllRunReports() ([]schema.RunReportRecord, error) {
	args := m.Called()
	reports, _ := args.Get(0).([]schema.RunReportRecord)
	return reports, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
