package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/cli"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/repository/memory"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import questions and assignments from a YAML file",
		Long: "Import questions, assignments and issued student assignments from a YAML file.\n" +
			"Answers and scheduling records in the file are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := memory.ReadFixture(args[0])
			if err != nil {
				return err
			}
			return runLocal(cmd, func(ctx context.Context, repos engine.Repositories, cfg *config.Config, r *cli.Renderer) error {
				return importFixture(ctx, engine.New(repos, cfg.Engine), repos, fixture, r)
			})
		},
	}
}

func importFixture(ctx context.Context, service *engine.Service, repos engine.Repositories, fixture *memory.Fixture, r *cli.Renderer) error {
	if len(fixture.Answers) > 0 || len(fixture.SchedulingRecords) > 0 {
		slog.Default().Warn("ignoring answers and scheduling records of the import file",
			"answers", len(fixture.Answers),
			"scheduling_records", len(fixture.SchedulingRecords))
	}

	questions := make([]*model.Question, 0, len(fixture.Questions))
	for i := range fixture.Questions {
		q := &fixture.Questions[i]
		if q.ID == "" || !q.Type.IsValid() {
			return fmt.Errorf("question #%d has no id or an unknown type %q: %w", i+1, q.Type, model.ErrInvalidInput)
		}
		questions = append(questions, q)
	}
	if len(questions) > 0 {
		if err := repos.Questions.BatchCreate(ctx, questions); err != nil {
			return fmt.Errorf("import questions: %w", err)
		}
	}

	for i := range fixture.Assignments {
		if err := service.CreateAssignment(ctx, &fixture.Assignments[i]); err != nil {
			return fmt.Errorf("import assignment %s: %w", fixture.Assignments[i].ID, err)
		}
	}

	issued := make([]model.StudentAssignment, 0, len(fixture.StudentAssignments))
	for _, sa := range fixture.StudentAssignments {
		created, err := service.IssueAssignment(ctx, sa.AssignmentID, sa.StudentID)
		if err != nil {
			return fmt.Errorf("issue assignment %s: %w", sa.AssignmentID, err)
		}
		issued = append(issued, *created)
	}

	if err := r.Questions(fmt.Sprintf("Imported %d questions", len(questions)), fixture.Questions); err != nil {
		return err
	}
	if len(issued) == 0 {
		return nil
	}
	return r.StudentAssignments(issued)
}
