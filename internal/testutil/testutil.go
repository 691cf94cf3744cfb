// Package testutil provides shared test helpers for engine configuration, config files and in-memory stores.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/repository/memory"
)

// EngineConfig returns the defaults of the configuration loader without interval jitter.
func EngineConfig() config.EngineConfig {
	return config.EngineConfig{
		Scheduler:   config.SchedulerConfig{JitterMin: 1, JitterMax: 1},
		Grading:     config.GradingConfig{CorrectQuality: 4, IncorrectQuality: 1},
		Practice:    config.PracticeConfig{DefaultQuestionCount: 10, MasteryThreshold: 3},
		Adaptive:    config.AdaptiveConfig{DueDays: 7, MaxSimilarQuestions: 5},
		Concurrency: 2,
	}
}

// SetupTestConfig creates a config file selecting the memory store, followed by extra YAML.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, extra string) string {
	t.Helper()

	configContent := "store:\n  driver: memory\n" + extra
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewStore returns a memory store holding questions.
func NewStore(t *testing.T, questions ...*model.Question) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	if len(questions) > 0 {
		require.NoError(t, store.Questions().BatchCreate(context.Background(), questions))
	}
	return store
}

// NewFixtureStore returns a memory store seeded from the fixture file at path.
func NewFixtureStore(t *testing.T, path string) *memory.Store {
	t.Helper()
	fixture, err := memory.ReadFixture(path)
	require.NoError(t, err)
	store := memory.NewStore()
	require.NoError(t, store.Load(fixture))
	return store
}

// SequentialIDs returns an id generator yielding prefix001, prefix002 and so on.
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%03d", prefix, n.Add(1))
	}
}

func BoolPtr(b bool) *bool { return &b }
