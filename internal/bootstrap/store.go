package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/database"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
	"github.com/at-ishikawa/adaptlearn/internal/repository/memory"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// StoreFlags defines the flags overriding the store section of the configuration.
func StoreFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("store", pflag.ContinueOnError)
	flags.String("store", "", "store driver, mysql or memory (overrides store.driver)")
	flags.String("fixture", "", "YAML fixture loaded into the memory store (overrides store.fixture_file)")
	return flags
}

// ApplyStoreFlags copies the store flags set on the command line into cfg.
func ApplyStoreFlags(flags *pflag.FlagSet, cfg *config.StoreConfig) error {
	if f := flags.Lookup("store"); f != nil && f.Changed {
		cfg.Driver = f.Value.String()
	}
	if f := flags.Lookup("fixture"); f != nil && f.Changed {
		cfg.FixtureFile = f.Value.String()
	}
	if cfg.Driver != DriverMySQL && cfg.Driver != DriverMemory {
		return fmt.Errorf("unknown store driver %q, want %s or %s", cfg.Driver, DriverMySQL, DriverMemory)
	}
	return nil
}

// OpenRepositories opens the configured store. The returned function releases it.
func OpenRepositories(cfg *config.Config) (engine.Repositories, func() error, error) {
	switch cfg.Store.Driver {
	case DriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return engine.Repositories{}, nil, fmt.Errorf("database.Open() > %w", err)
		}
		return engine.Repositories{
			Questions:          repository.NewDBQuestionRepository(db),
			Answers:            repository.NewDBAnswerRepository(db),
			Assignments:        repository.NewDBAssignmentRepository(db),
			StudentAssignments: repository.NewDBStudentAssignmentRepository(db),
			SchedulingRecords:  repository.NewDBSchedulingRecordRepository(db),
		}, db.Close, nil

	case DriverMemory:
		store := memory.NewStore()
		if cfg.Store.FixtureFile != "" {
			fixture, err := memory.ReadFixture(cfg.Store.FixtureFile)
			if err != nil {
				return engine.Repositories{}, nil, err
			}
			if err := store.Load(fixture); err != nil {
				return engine.Repositories{}, nil, fmt.Errorf("load fixture %s: %w", cfg.Store.FixtureFile, err)
			}
		}
		return MemoryRepositories(store), func() error { return nil }, nil
	}
	return engine.Repositories{}, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// MemoryRepositories exposes every repository of store.
func MemoryRepositories(store *memory.Store) engine.Repositories {
	return engine.Repositories{
		Questions:          store.Questions(),
		Answers:            store.Answers(),
		Assignments:        store.Assignments(),
		StudentAssignments: store.StudentAssignments(),
		SchedulingRecords:  store.SchedulingRecords(),
	}
}
