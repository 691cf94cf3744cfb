// Package server exposes the engine over Connect unary procedures with JSON bodies.
package server

import (
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/practice"
)

const ServiceName = "adaptlearn.v1.EngineService"

const (
	CreateAssignmentProcedure             = "/" + ServiceName + "/CreateAssignment"
	IssueAssignmentProcedure              = "/" + ServiceName + "/IssueAssignment"
	StartAssignmentProcedure              = "/" + ServiceName + "/StartAssignment"
	SubmitAssignmentProcedure             = "/" + ServiceName + "/SubmitAssignment"
	RetakeAssignmentProcedure             = "/" + ServiceName + "/RetakeAssignment"
	GradeEssayProcedure                   = "/" + ServiceName + "/GradeEssay"
	ReviewQuestionProcedure               = "/" + ServiceName + "/ReviewQuestion"
	GetDueQuestionsProcedure              = "/" + ServiceName + "/GetDueQuestions"
	GetFrequentlyMissedQuestionsProcedure = "/" + ServiceName + "/GetFrequentlyMissedQuestions"
	GeneratePracticeSessionProcedure      = "/" + ServiceName + "/GeneratePracticeSession"
	ListStudentAssignmentsProcedure       = "/" + ServiceName + "/ListStudentAssignments"
)

type CreateAssignmentRequest struct {
	Assignment model.Assignment `json:"assignment"`
}

type CreateAssignmentResponse struct {
	Assignment *model.Assignment `json:"assignment"`
}

type IssueAssignmentRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	StudentID    string `json:"student_id" validate:"required"`
}

// StudentAssignmentRequest addresses one student assignment.
type StudentAssignmentRequest struct {
	StudentAssignmentID string `json:"student_assignment_id" validate:"required"`
}

type StudentAssignmentResponse struct {
	StudentAssignment *model.StudentAssignment `json:"student_assignment"`
}

type SubmitAssignmentRequest struct {
	StudentAssignmentID string               `json:"student_assignment_id" validate:"required"`
	Answers             []engine.AnswerInput `json:"answers" validate:"dive"`
}

type SubmitAssignmentResponse struct {
	Result *engine.GradeResult `json:"result"`
}

type GradeEssayRequest struct {
	AnswerID  string  `json:"answer_id" validate:"required"`
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

type GradeEssayResponse struct {
	Answer *model.Answer `json:"answer"`
}

type ReviewQuestionRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
	Quality    int    `json:"quality"`
}

type ReviewQuestionResponse struct {
	Record *model.SchedulingRecord `json:"record"`
}

type GetDueQuestionsRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	Limit      int    `json:"limit"`
	IncludeNew bool   `json:"include_new"`
}

type GetDueQuestionsResponse struct {
	QuestionIDs []string `json:"question_ids"`
}

// StudentRequest addresses one student.
type StudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

type GetFrequentlyMissedQuestionsResponse struct {
	Questions []model.Question `json:"questions"`
}

type GeneratePracticeSessionRequest struct {
	StudentID     string `json:"student_id" validate:"required"`
	QuestionCount int    `json:"question_count"`
}

type GeneratePracticeSessionResponse struct {
	Session *practice.Session `json:"session"`
}

type ListStudentAssignmentsResponse struct {
	StudentAssignments []model.StudentAssignment `json:"student_assignments"`
}
