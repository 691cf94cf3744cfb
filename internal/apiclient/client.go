// Package apiclient calls a remote adaptlearn server over the Connect
// protocol with JSON bodies.
package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/practice"
	"github.com/at-ishikawa/adaptlearn/internal/server"
)

const defaultTimeout = 30 * time.Second

var _ server.Engine = (*Client)(nil)

// Client mirrors the engine service over HTTP.
type Client struct {
	httpClient *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func New(baseURL string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Connect-Protocol-Version", "1")
	for _, opt := range opts {
		opt(httpClient)
	}
	return &Client{httpClient: httpClient}
}

func (c *Client) call(ctx context.Context, procedure string, req, res any) error {
	var body errorBody
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(res).
		SetError(&body).
		Post(procedure)
	if err != nil {
		return fmt.Errorf("call %s: %w", procedure, err)
	}
	if resp.IsError() {
		if body.Code == "" {
			return fmt.Errorf("call %s: status code: %d, body: %s", procedure, resp.StatusCode(), string(resp.Body()))
		}
		return &Error{Procedure: procedure, Code: body.Code, Message: body.Message}
	}
	return nil
}

func (c *Client) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	var res server.CreateAssignmentResponse
	if err := c.call(ctx, server.CreateAssignmentProcedure, &server.CreateAssignmentRequest{Assignment: *a}, &res); err != nil {
		return err
	}
	*a = *res.Assignment
	return nil
}

func (c *Client) IssueAssignment(ctx context.Context, assignmentID, studentID string) (*model.StudentAssignment, error) {
	var res server.StudentAssignmentResponse
	err := c.call(ctx, server.IssueAssignmentProcedure, &server.IssueAssignmentRequest{
		AssignmentID: assignmentID,
		StudentID:    studentID,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.StudentAssignment, nil
}

func (c *Client) StartAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error) {
	return c.transition(ctx, server.StartAssignmentProcedure, studentAssignmentID)
}

func (c *Client) RetakeAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error) {
	return c.transition(ctx, server.RetakeAssignmentProcedure, studentAssignmentID)
}

func (c *Client) transition(ctx context.Context, procedure, studentAssignmentID string) (*model.StudentAssignment, error) {
	var res server.StudentAssignmentResponse
	err := c.call(ctx, procedure, &server.StudentAssignmentRequest{StudentAssignmentID: studentAssignmentID}, &res)
	if err != nil {
		return nil, err
	}
	return res.StudentAssignment, nil
}

func (c *Client) SubmitAssignment(ctx context.Context, studentAssignmentID string, answers []engine.AnswerInput) (*engine.GradeResult, error) {
	var res server.SubmitAssignmentResponse
	err := c.call(ctx, server.SubmitAssignmentProcedure, &server.SubmitAssignmentRequest{
		StudentAssignmentID: studentAssignmentID,
		Answers:             answers,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Result, nil
}

func (c *Client) GradeEssay(ctx context.Context, answerID string, isCorrect bool, score float64, feedback string) (*model.Answer, error) {
	var res server.GradeEssayResponse
	err := c.call(ctx, server.GradeEssayProcedure, &server.GradeEssayRequest{
		AnswerID:  answerID,
		IsCorrect: isCorrect,
		Score:     score,
		Feedback:  feedback,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Answer, nil
}

func (c *Client) ReviewQuestion(ctx context.Context, studentID, questionID string, quality int) (*model.SchedulingRecord, error) {
	var res server.ReviewQuestionResponse
	err := c.call(ctx, server.ReviewQuestionProcedure, &server.ReviewQuestionRequest{
		StudentID:  studentID,
		QuestionID: questionID,
		Quality:    quality,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

func (c *Client) DueQuestions(ctx context.Context, studentID string, limit int, includeNew bool) ([]string, error) {
	var res server.GetDueQuestionsResponse
	err := c.call(ctx, server.GetDueQuestionsProcedure, &server.GetDueQuestionsRequest{
		StudentID:  studentID,
		Limit:      limit,
		IncludeNew: includeNew,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.QuestionIDs, nil
}

func (c *Client) FrequentlyMissedQuestions(ctx context.Context, studentID string) ([]model.Question, error) {
	var res server.GetFrequentlyMissedQuestionsResponse
	if err := c.call(ctx, server.GetFrequentlyMissedQuestionsProcedure, &server.StudentRequest{StudentID: studentID}, &res); err != nil {
		return nil, err
	}
	return res.Questions, nil
}

func (c *Client) GeneratePracticeSession(ctx context.Context, studentID string, questionCount int) (*practice.Session, error) {
	var res server.GeneratePracticeSessionResponse
	err := c.call(ctx, server.GeneratePracticeSessionProcedure, &server.GeneratePracticeSessionRequest{
		StudentID:     studentID,
		QuestionCount: questionCount,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Session, nil
}

func (c *Client) StudentAssignments(ctx context.Context, studentID string) ([]model.StudentAssignment, error) {
	var res server.ListStudentAssignmentsResponse
	if err := c.call(ctx, server.ListStudentAssignmentsProcedure, &server.StudentRequest{StudentID: studentID}, &res); err != nil {
		return nil, err
	}
	return res.StudentAssignments, nil
}
