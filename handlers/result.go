package handlers

import (
	"errors"
	"net/http"
)

type Handler func(http.ResponseWriter, *http.Request) Result

// Result with Code 0 means the handler wrote the response itself (file
// downloads); the wrapper skips encoding in that case.
type Result struct {
	Error error
	Code  int
	Body  interface{}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatedResponse struct {
	ID interface{} `json:"id"`
}

func BadRequest(message string) Result {
	return Result{
		Code: http.StatusBadRequest,
		Body: ErrorResponse{message},
	}
}

func InternalError(error error, message string) Result {
	return Result{
		Error: errors.Join(errors.New(message), error),
		Code:  http.StatusInternalServerError,
	}
}

// BadGateway surfaces an upstream reddit failure to the caller unmodified.
func BadGateway(err error) Result {
	return Result{
		Code: http.StatusBadGateway,
		Body: ErrorResponse{err.Error()},
	}
}

func NotFound(message string) Result {
	return Result{
		Code: http.StatusNotFound,
		Body: ErrorResponse{message},
	}
}

func Ok(body interface{}) Result {
	return Result{
		Code: http.StatusOK,
		Body: body,
	}
}

func Created(id interface{}) Result {
	return Result{
		Code: http.StatusCreated,
		Body: CreatedResponse{id},
	}
}

func Raw() Result {
	return Result{}
}
