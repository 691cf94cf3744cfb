package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/bootstrap"
)

var (
	configFile string
	remoteURL  string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "adaptlearn",
		Short:         "Assignments, grading and spaced repetition for students",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("godotenv.Load() > %w", err)
			}
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCommand.PersistentFlags().StringVar(&remoteURL, "remote", "", "base URL of an adaptlearn server; the local store is used when empty")
	rootCommand.PersistentFlags().AddFlagSet(bootstrap.StoreFlags())

	rootCommand.AddCommand(
		newMigrateCommand(),
		newImportCommand(),
		newIssueCommand(),
		newStartCommand(),
		newSubmitCommand(),
		newRetakeCommand(),
		newGradeEssayCommand(),
		newAssignmentsCommand(),
		newReviewCommand(),
		newDueCommand(),
		newMissedCommand(),
		newPracticeCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
