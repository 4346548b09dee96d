package factory

import (
	"time"

	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/mocks"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage/memory"
	"github.com/danielrhuynh/cs-446-ece-452/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with in-memory
// storage and mocked clock/randomness
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, nil, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
