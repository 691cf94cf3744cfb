package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/practice"
)

// Engine is the part of the engine service the handlers expose.
type Engine interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	IssueAssignment(ctx context.Context, assignmentID, studentID string) (*model.StudentAssignment, error)
	StartAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error)
	SubmitAssignment(ctx context.Context, studentAssignmentID string, answers []engine.AnswerInput) (*engine.GradeResult, error)
	RetakeAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error)
	GradeEssay(ctx context.Context, answerID string, isCorrect bool, score float64, feedback string) (*model.Answer, error)
	ReviewQuestion(ctx context.Context, studentID, questionID string, quality int) (*model.SchedulingRecord, error)
	DueQuestions(ctx context.Context, studentID string, limit int, includeNew bool) ([]string, error)
	FrequentlyMissedQuestions(ctx context.Context, studentID string) ([]model.Question, error)
	GeneratePracticeSession(ctx context.Context, studentID string, questionCount int) (*practice.Session, error)
	StudentAssignments(ctx context.Context, studentID string) ([]model.StudentAssignment, error)
}

// Handler serves every procedure of the engine service.
type Handler struct {
	engine   Engine
	validate *validator.Validate
}

func NewHandler(e Engine) *Handler {
	return &Handler{
		engine:   e,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Mount registers every procedure on mux.
func (h *Handler) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{WithJSONCodec()}, opts...)

	mux.Handle(unary(h, CreateAssignmentProcedure, h.createAssignment, opts...))
	mux.Handle(unary(h, IssueAssignmentProcedure, h.issueAssignment, opts...))
	mux.Handle(unary(h, StartAssignmentProcedure, h.startAssignment, opts...))
	mux.Handle(unary(h, SubmitAssignmentProcedure, h.submitAssignment, opts...))
	mux.Handle(unary(h, RetakeAssignmentProcedure, h.retakeAssignment, opts...))
	mux.Handle(unary(h, GradeEssayProcedure, h.gradeEssay, opts...))
	mux.Handle(unary(h, ReviewQuestionProcedure, h.reviewQuestion, opts...))
	mux.Handle(unary(h, GetDueQuestionsProcedure, h.getDueQuestions, opts...))
	mux.Handle(unary(h, GetFrequentlyMissedQuestionsProcedure, h.getFrequentlyMissedQuestions, opts...))
	mux.Handle(unary(h, GeneratePracticeSessionProcedure, h.generatePracticeSession, opts...))
	mux.Handle(unary(h, ListStudentAssignmentsProcedure, h.listStudentAssignments, opts...))
}

func unary[Req, Res any](
	h *Handler,
	procedure string,
	fn func(ctx context.Context, req *Req) (*Res, error),
	opts ...connect.HandlerOption,
) (string, http.Handler) {
	return procedure, connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			if err := h.validate.Struct(req.Msg); err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			res, err := fn(ctx, req.Msg)
			if err != nil {
				return nil, toConnectError(procedure, err)
			}
			return connect.NewResponse(res), nil
		}, opts...)
}

// toConnectError maps the engine error taxonomy onto Connect codes.
func toConnectError(procedure string, err error) *connect.Error {
	var code connect.Code
	switch {
	case errors.Is(err, model.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, model.ErrInvalidState):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, model.ErrInvalidInput):
		code = connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		slog.Default().Error("procedure failed",
			"procedure", procedure,
			"error", err)
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}

func (h *Handler) createAssignment(ctx context.Context, req *CreateAssignmentRequest) (*CreateAssignmentResponse, error) {
	a := req.Assignment
	if err := h.engine.CreateAssignment(ctx, &a); err != nil {
		return nil, err
	}
	return &CreateAssignmentResponse{Assignment: &a}, nil
}

func (h *Handler) issueAssignment(ctx context.Context, req *IssueAssignmentRequest) (*StudentAssignmentResponse, error) {
	sa, err := h.engine.IssueAssignment(ctx, req.AssignmentID, req.StudentID)
	if err != nil {
		return nil, err
	}
	return &StudentAssignmentResponse{StudentAssignment: sa}, nil
}

func (h *Handler) startAssignment(ctx context.Context, req *StudentAssignmentRequest) (*StudentAssignmentResponse, error) {
	sa, err := h.engine.StartAssignment(ctx, req.StudentAssignmentID)
	if err != nil {
		return nil, err
	}
	return &StudentAssignmentResponse{StudentAssignment: sa}, nil
}

func (h *Handler) submitAssignment(ctx context.Context, req *SubmitAssignmentRequest) (*SubmitAssignmentResponse, error) {
	result, err := h.engine.SubmitAssignment(ctx, req.StudentAssignmentID, req.Answers)
	if err != nil {
		return nil, err
	}
	return &SubmitAssignmentResponse{Result: result}, nil
}

func (h *Handler) retakeAssignment(ctx context.Context, req *StudentAssignmentRequest) (*StudentAssignmentResponse, error) {
	sa, err := h.engine.RetakeAssignment(ctx, req.StudentAssignmentID)
	if err != nil {
		return nil, err
	}
	return &StudentAssignmentResponse{StudentAssignment: sa}, nil
}

func (h *Handler) gradeEssay(ctx context.Context, req *GradeEssayRequest) (*GradeEssayResponse, error) {
	answer, err := h.engine.GradeEssay(ctx, req.AnswerID, req.IsCorrect, req.Score, req.Feedback)
	if err != nil {
		return nil, err
	}
	return &GradeEssayResponse{Answer: answer}, nil
}

func (h *Handler) reviewQuestion(ctx context.Context, req *ReviewQuestionRequest) (*ReviewQuestionResponse, error) {
	record, err := h.engine.ReviewQuestion(ctx, req.StudentID, req.QuestionID, req.Quality)
	if err != nil {
		return nil, err
	}
	return &ReviewQuestionResponse{Record: record}, nil
}

func (h *Handler) getDueQuestions(ctx context.Context, req *GetDueQuestionsRequest) (*GetDueQuestionsResponse, error) {
	ids, err := h.engine.DueQuestions(ctx, req.StudentID, req.Limit, req.IncludeNew)
	if err != nil {
		return nil, err
	}
	return &GetDueQuestionsResponse{QuestionIDs: ids}, nil
}

func (h *Handler) getFrequentlyMissedQuestions(ctx context.Context, req *StudentRequest) (*GetFrequentlyMissedQuestionsResponse, error) {
	questions, err := h.engine.FrequentlyMissedQuestions(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	return &GetFrequentlyMissedQuestionsResponse{Questions: questions}, nil
}

func (h *Handler) generatePracticeSession(ctx context.Context, req *GeneratePracticeSessionRequest) (*GeneratePracticeSessionResponse, error) {
	session, err := h.engine.GeneratePracticeSession(ctx, req.StudentID, req.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("generate practice session for %s: %w", req.StudentID, err)
	}
	return &GeneratePracticeSessionResponse{Session: session}, nil
}

func (h *Handler) listStudentAssignments(ctx context.Context, req *StudentRequest) (*ListStudentAssignmentsResponse, error) {
	list, err := h.engine.StudentAssignments(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	return &ListStudentAssignmentsResponse{StudentAssignments: list}, nil
}
