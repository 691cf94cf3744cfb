// Package memory provides in-process implementations of the repository
// interfaces, used by the local CLI and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
)

// Store holds every entity behind one mutex, so multi-entity writes are atomic.
type Store struct {
	mu                 sync.Mutex
	now                func() time.Time
	questions          map[string]model.Question
	answers            []model.Answer
	assignments        map[string]model.Assignment
	studentAssignments map[string]model.StudentAssignment
	records            map[recordKey]model.SchedulingRecord
}

type recordKey struct {
	studentID  string
	questionID string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:                func() time.Time { return model.Timestamp(time.Now()) },
		questions:          make(map[string]model.Question),
		assignments:        make(map[string]model.Assignment),
		studentAssignments: make(map[string]model.StudentAssignment),
		records:            make(map[recordKey]model.SchedulingRecord),
	}
}

func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{s: s} }

func (s *Store) Answers() *AnswerRepository { return &AnswerRepository{s: s} }

func (s *Store) Assignments() *AssignmentRepository { return &AssignmentRepository{s: s} }

func (s *Store) StudentAssignments() *StudentAssignmentRepository {
	return &StudentAssignmentRepository{s: s}
}

func (s *Store) SchedulingRecords() *SchedulingRecordRepository {
	return &SchedulingRecordRepository{s: s}
}

var (
	_ repository.QuestionRepository          = (*QuestionRepository)(nil)
	_ repository.AnswerRepository            = (*AnswerRepository)(nil)
	_ repository.AssignmentRepository        = (*AssignmentRepository)(nil)
	_ repository.StudentAssignmentRepository = (*StudentAssignmentRepository)(nil)
	_ repository.SchedulingRecordRepository  = (*SchedulingRecordRepository)(nil)
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
}

// QuestionRepository implements repository.QuestionRepository.
type QuestionRepository struct {
	s *Store
}

func (r *QuestionRepository) FindByID(_ context.Context, id string) (*model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.questions[id]
	if !ok {
		return nil, notFound("question", id)
	}
	q = cloneQuestion(q)
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(_ context.Context, ids []string) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.selectQuestions(func(q model.Question) bool {
		return slices.Contains(ids, q.ID)
	}), nil
}

func (r *QuestionRepository) FindByTags(_ context.Context, tags []string) ([]model.Question, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.selectQuestions(func(q model.Question) bool {
		return q.SharesTag(tags)
	}), nil
}

func (r *QuestionRepository) FindAll(_ context.Context) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.selectQuestions(func(model.Question) bool { return true }), nil
}

func (r *QuestionRepository) BatchCreate(_ context.Context, questions []*model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, q := range questions {
		if _, ok := r.s.questions[q.ID]; ok {
			return fmt.Errorf("question %s already exists", q.ID)
		}
	}
	now := r.s.now()
	for _, q := range questions {
		stored := cloneQuestion(*q)
		stored.CreatedAt, stored.UpdatedAt = now, now
		r.s.questions[q.ID] = stored
	}
	return nil
}

// selectQuestions returns matching questions ordered by id. Callers hold mu.
func (s *Store) selectQuestions(match func(model.Question) bool) []model.Question {
	var result []model.Question
	for _, q := range s.questions {
		if match(q) {
			result = append(result, cloneQuestion(q))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func cloneQuestion(q model.Question) model.Question {
	q.Tags = slices.Clone(q.Tags)
	q.Key.Options = slices.Clone(q.Key.Options)
	q.Key.AcceptedAnswers = slices.Clone(q.Key.AcceptedAnswers)
	q.Key.Pairs = slices.Clone(q.Key.Pairs)
	return q
}

// AnswerRepository implements repository.AnswerRepository.
// Answers are kept in insertion order.
type AnswerRepository struct {
	s *Store
}

func (r *AnswerRepository) FindByID(_ context.Context, id string) (*model.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.answers {
		if a.ID == id {
			a = cloneAnswer(a)
			return &a, nil
		}
	}
	return nil, notFound("answer", id)
}

func (r *AnswerRepository) FindByStudentID(_ context.Context, studentID string) ([]model.Answer, error) {
	return r.filter(func(a model.Answer) bool { return a.StudentID == studentID }), nil
}

func (r *AnswerRepository) FindIncorrectByStudentID(_ context.Context, studentID string) ([]model.Answer, error) {
	return r.filter(func(a model.Answer) bool { return a.StudentID == studentID && a.IsIncorrect() }), nil
}

func (r *AnswerRepository) FindByStudentAssignmentID(_ context.Context, studentAssignmentID string) ([]model.Answer, error) {
	answers := r.filter(func(a model.Answer) bool { return a.StudentAssignmentID == studentAssignmentID })
	sort.SliceStable(answers, func(i, j int) bool { return answers[i].AttemptNumber < answers[j].AttemptNumber })
	return answers, nil
}

func (r *AnswerRepository) BatchCreate(_ context.Context, answers []*model.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.insertAnswers(answers)
}

// insertAnswers stores all answers or none of them.
func (s *Store) insertAnswers(answers []*model.Answer) error {
	ids := make(map[string]struct{}, len(s.answers)+len(answers))
	for _, a := range s.answers {
		ids[a.ID] = struct{}{}
	}
	for _, a := range answers {
		if _, ok := ids[a.ID]; ok {
			return fmt.Errorf("answer %s already exists", a.ID)
		}
		ids[a.ID] = struct{}{}
	}

	for _, a := range answers {
		stored := cloneAnswer(*a)
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = s.now()
		}
		s.answers = append(s.answers, stored)
	}
	return nil
}

func (r *AnswerRepository) UpdateEssayGrade(_ context.Context, id string, isCorrect bool, score float64, feedback string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.answers {
		if r.s.answers[i].ID != id {
			continue
		}
		r.s.answers[i].IsCorrect = &isCorrect
		r.s.answers[i].EssayScore = &score
		r.s.answers[i].Feedback = feedback
		return nil
	}
	return notFound("answer", id)
}

func (r *AnswerRepository) filter(match func(model.Answer) bool) []model.Answer {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []model.Answer
	for _, a := range r.s.answers {
		if match(a) {
			result = append(result, cloneAnswer(a))
		}
	}
	return result
}

func cloneAnswer(a model.Answer) model.Answer {
	if a.IsCorrect != nil {
		v := *a.IsCorrect
		a.IsCorrect = &v
	}
	if a.EssayScore != nil {
		v := *a.EssayScore
		a.EssayScore = &v
	}
	if a.Payload.BoolAnswer != nil {
		v := *a.Payload.BoolAnswer
		a.Payload.BoolAnswer = &v
	}
	a.Payload.Matches = slices.Clone(a.Payload.Matches)
	return a
}

// AssignmentRepository implements repository.AssignmentRepository.
type AssignmentRepository struct {
	s *Store
}

func (r *AssignmentRepository) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.assignments[id]
	if !ok {
		return nil, notFound("assignment", id)
	}
	a.QuestionIDs = slices.Clone(a.QuestionIDs)
	return &a, nil
}

func (r *AssignmentRepository) Create(_ context.Context, a *model.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.insertAssignment(a)
}

func (r *AssignmentRepository) CreateWithStudentAssignment(_ context.Context, a *model.Assignment, sa *model.StudentAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.studentAssignments[sa.ID]; ok {
		return fmt.Errorf("student assignment %s already exists", sa.ID)
	}
	if err := r.s.insertAssignment(a); err != nil {
		return err
	}
	return r.s.insertStudentAssignment(sa)
}

func (s *Store) insertAssignment(a *model.Assignment) error {
	if _, ok := s.assignments[a.ID]; ok {
		return fmt.Errorf("assignment %s already exists", a.ID)
	}
	stored := *a
	stored.QuestionIDs = slices.Clone(a.QuestionIDs)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	s.assignments[a.ID] = stored
	return nil
}

// StudentAssignmentRepository implements repository.StudentAssignmentRepository.
type StudentAssignmentRepository struct {
	s *Store
}

func (r *StudentAssignmentRepository) FindByID(_ context.Context, id string) (*model.StudentAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sa, ok := r.s.studentAssignments[id]
	if !ok {
		return nil, notFound("student assignment", id)
	}
	return &sa, nil
}

func (r *StudentAssignmentRepository) FindByStudentID(_ context.Context, studentID string) ([]model.StudentAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []model.StudentAssignment
	for _, sa := range r.s.studentAssignments {
		if sa.StudentID == studentID {
			result = append(result, sa)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *StudentAssignmentRepository) Create(_ context.Context, sa *model.StudentAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.insertStudentAssignment(sa)
}

func (r *StudentAssignmentRepository) UpdateStatus(_ context.Context, id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sa, err := r.s.updatedStudentAssignment(id, from, fn)
	if err != nil {
		return nil, err
	}
	r.s.studentAssignments[id] = *sa
	return sa, nil
}

func (r *StudentAssignmentRepository) Submit(_ context.Context, id string, fn func(sa *model.StudentAssignment) ([]*model.Answer, error)) (*model.StudentAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var answers []*model.Answer
	sa, err := r.s.updatedStudentAssignment(id, model.StatusInProgress, func(sa *model.StudentAssignment) error {
		var err error
		answers, err = fn(sa)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := r.s.insertAnswers(answers); err != nil {
		return nil, fmt.Errorf("store answers of %s attempt %d: %w", id, sa.Attempts, err)
	}
	r.s.studentAssignments[id] = *sa
	return sa, nil
}

// updatedStudentAssignment applies fn to a copy of the stored student
// assignment. The caller holds s.mu and decides whether to write the copy back.
func (s *Store) updatedStudentAssignment(id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error) {
	sa, ok := s.studentAssignments[id]
	if !ok {
		return nil, notFound("student assignment", id)
	}
	if sa.Status != from {
		return nil, fmt.Errorf("student assignment %s is %s, not %s: %w", id, sa.Status, from, model.ErrInvalidState)
	}
	if err := fn(&sa); err != nil {
		return nil, err
	}
	sa.UpdatedAt = s.now()
	return &sa, nil
}

func (s *Store) insertStudentAssignment(sa *model.StudentAssignment) error {
	if _, ok := s.studentAssignments[sa.ID]; ok {
		return fmt.Errorf("student assignment %s already exists", sa.ID)
	}
	stored := *sa
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.UpdatedAt = stored.CreatedAt
	s.studentAssignments[sa.ID] = stored
	return nil
}

// SchedulingRecordRepository implements repository.SchedulingRecordRepository.
type SchedulingRecordRepository struct {
	s *Store
}

func (r *SchedulingRecordRepository) Get(_ context.Context, studentID, questionID string) (*model.SchedulingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[recordKey{studentID, questionID}]
	if !ok {
		return nil, nil
	}
	rec = cloneRecord(rec)
	return &rec, nil
}

func (r *SchedulingRecordRepository) Save(_ context.Context, record *model.SchedulingRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.records[recordKey{record.StudentID, record.QuestionID}] = cloneRecord(*record)
	return nil
}

func (r *SchedulingRecordRepository) GetDue(_ context.Context, studentID string, before time.Time, limit int) ([]model.SchedulingRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var due []model.SchedulingRecord
	for key, rec := range r.s.records {
		if key.studentID == studentID && !rec.NextReviewDate.After(before) {
			due = append(due, cloneRecord(rec))
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewDate.Equal(due[j].NextReviewDate) {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		}
		return due[i].QuestionID < due[j].QuestionID
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *SchedulingRecordRepository) GetStudentQuestionIDs(_ context.Context, studentID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []string
	for key := range r.s.records {
		if key.studentID == studentID {
			ids = append(ids, key.questionID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *SchedulingRecordRepository) Update(_ context.Context, studentID, questionID string, fn func(current *model.SchedulingRecord) (*model.SchedulingRecord, error)) (*model.SchedulingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := recordKey{studentID, questionID}
	var current *model.SchedulingRecord
	if rec, ok := r.s.records[key]; ok {
		rec = cloneRecord(rec)
		current = &rec
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	r.s.records[key] = cloneRecord(*next)
	saved := cloneRecord(*next)
	return &saved, nil
}

func cloneRecord(rec model.SchedulingRecord) model.SchedulingRecord {
	if rec.LastReviewDate != nil {
		v := *rec.LastReviewDate
		rec.LastReviewDate = &v
	}
	return rec
}
