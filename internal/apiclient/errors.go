package apiclient

import (
	"fmt"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

// errorBody is the JSON error of the Connect protocol.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is a failed procedure call. It unwraps to the model error matching its code.
type Error struct {
	Procedure string
	Code      string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Procedure, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case "not_found":
		return model.ErrNotFound
	case "failed_precondition":
		return model.ErrInvalidState
	case "invalid_argument":
		return model.ErrInvalidInput
	}
	return nil
}
