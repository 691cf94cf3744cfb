package memory

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

// Fixture is the YAML document a store can be seeded from.
type Fixture struct {
	Questions          []model.Question          `yaml:"questions"`
	Assignments        []model.Assignment        `yaml:"assignments"`
	StudentAssignments []model.StudentAssignment `yaml:"student_assignments"`
	Answers            []model.Answer            `yaml:"answers"`
	SchedulingRecords  []model.SchedulingRecord  `yaml:"scheduling_records"`
}

// ReadFixture decodes a fixture file. Unknown keys are rejected.
func ReadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var fixture Fixture
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// Load seeds the store with every entity of the fixture.
func (s *Store) Load(f *Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, q := range f.Questions {
		if !q.Type.IsValid() {
			return fmt.Errorf("question %s has unknown type %q: %w", q.ID, q.Type, model.ErrInvalidInput)
		}
		q = cloneQuestion(q)
		q.CreatedAt, q.UpdatedAt = now, now
		s.questions[q.ID] = q
	}
	for i := range f.Assignments {
		if err := f.Assignments[i].Validate(); err != nil {
			return fmt.Errorf("assignment %s: %w", f.Assignments[i].ID, err)
		}
		if err := s.insertAssignment(&f.Assignments[i]); err != nil {
			return err
		}
	}
	for i := range f.StudentAssignments {
		if err := s.insertStudentAssignment(&f.StudentAssignments[i]); err != nil {
			return err
		}
	}
	for _, a := range f.Answers {
		s.answers = append(s.answers, cloneAnswer(a))
	}
	for _, rec := range f.SchedulingRecords {
		s.records[recordKey{rec.StudentID, rec.QuestionID}] = cloneRecord(rec)
	}
	return nil
}
