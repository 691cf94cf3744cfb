package main

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/adaptlearn/internal/bootstrap"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	"github.com/at-ishikawa/adaptlearn/internal/server"
	"github.com/at-ishikawa/adaptlearn/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "adaptlearn", cmd.Use)
	for _, flag := range []string{"config", "debug", "remote", "store", "fixture"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{
		"migrate", "import", "issue", "start", "submit", "retake", "grade-essay",
		"assignments", "review", "due", "missed", "practice",
	}, names)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(append([]string{"--config", testutil.SetupTestConfig(t, t.TempDir(), "")}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCommands_LocalStore(t *testing.T) {
	fixture := []string{"--store", "memory", "--fixture", "testdata/fixture.yaml"}

	tests := []struct {
		name         string
		args         []string
		wantContains []string
		wantErr      string
	}{
		{
			name:         "start an issued assignment",
			args:         []string{"start", "sa1"},
			wantContains: []string{"sa1", "IN_PROGRESS", "assignment as1"},
		},
		{
			name:         "submit grades right away",
			args:         []string{"submit", "sa2", "testdata/answers.yaml"},
			wantContains: []string{"q1: correct", "q2: correct", "Score: 100.0 (2/2 correct)", "Status: GRADED, attempt 1"},
		},
		{
			name:         "issue an assignment",
			args:         []string{"issue", "as1", "s2"},
			wantContains: []string{"ASSIGNED (assignment as1)"},
		},
		{
			name:         "list assignments",
			args:         []string{"assignments", "s1"},
			wantContains: []string{"ASSIGNMENT", "sa1", "sa2", "IN_PROGRESS"},
		},
		{
			name:         "review a question",
			args:         []string{"review", "s1", "q1", "4"},
			wantContains: []string{"q1: next review", "repetitions 0"},
		},
		{
			name:         "due questions",
			args:         []string{"due", "s1"},
			wantContains: []string{"Due questions: q2"},
		},
		{
			name:         "missed questions",
			args:         []string{"missed", "s1"},
			wantContains: []string{"Frequently missed questions", "1. [q1] What is 1/2 + 1/4?"},
		},
		{
			name:         "practice worksheet with answer key",
			args:         []string{"practice", "s1", "--answer-key"},
			wantContains: []string{"# Practice for s1", "# Answer key"},
		},
		{
			name:         "import a file",
			args:         []string{"import", "testdata/fixture.yaml"},
			wantErr:      "already exists",
		},
		{
			name:    "unknown student assignment",
			args:    []string{"start", "missing"},
			wantErr: "not found",
		},
		{
			name:    "retake before grading",
			args:    []string{"retake", "sa1"},
			wantErr: "invalid state",
		},
		{
			name:    "invalid quality",
			args:    []string{"review", "s1", "q1", "six"},
			wantErr: "invalid quality",
		},
		{
			name:    "invalid score",
			args:    []string{"grade-essay", "a1", "high"},
			wantErr: "invalid score",
		},
		{
			name:    "interactive practice cannot write a pdf",
			args:    []string{"practice", "s1", "--interactive", "--pdf", "out.pdf"},
			wantErr: "cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, append(fixture, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestImportCommand(t *testing.T) {
	got, err := execute(t, "--store", "memory", "import", "testdata/fixture.yaml")
	require.NoError(t, err)
	assert.Contains(t, got, "Imported 2 questions")
	assert.Contains(t, got, "as1")
	assert.Contains(t, got, "ASSIGNED")
}

func TestImportCommand_Remote(t *testing.T) {
	_, err := execute(t, "--remote", "http://localhost:1", "import", "testdata/fixture.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support --remote")
}

func TestCommands_Remote(t *testing.T) {
	store := testutil.NewFixtureStore(t, "testdata/fixture.yaml")
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	e := engine.New(bootstrap.MemoryRepositories(store), testutil.EngineConfig(), engine.WithMetrics(m))
	ts := httptest.NewServer(server.NewHTTPHandler(e, config.ServerConfig{}, m, registry))
	defer ts.Close()

	got, err := execute(t, "--remote", ts.URL, "assignments", "s1")
	require.NoError(t, err)
	assert.Contains(t, got, "sa1")
	assert.Contains(t, got, "sa2")

	got, err = execute(t, "--remote", ts.URL, "submit", "sa2", "testdata/answers.yaml")
	require.NoError(t, err)
	assert.Contains(t, got, "Score: 100.0 (2/2 correct)")

	_, err = execute(t, "--remote", ts.URL, "start", "sa2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed_precondition")
}
