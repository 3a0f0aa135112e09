package errno

import (
	"context"
	"errors"
	"net/http"

	"batch-sender/pkg/batch"
)

// Errno defines the error code logic
type Errno struct {
	Code       int
	HTTPStatus int
	Message    string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage 复制一个 Errno 并替换 Message
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode maps an error to (http status, business code, message).
// 领域错误通过 errors.Is 识别，消息保留原始 error 文本
func Decode(err error) (int, int, string) {
	if err == nil {
		return OK.HTTPStatus, OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.HTTPStatus, typed.Code, typed.Message
	}
	var typedPtr *Errno
	if errors.As(err, &typedPtr) && typedPtr != nil {
		return typedPtr.HTTPStatus, typedPtr.Code, typedPtr.Message
	}

	switch {
	case errors.Is(err, batch.ErrInvalidInput):
		return ErrInvalidInput.HTTPStatus, ErrInvalidInput.Code, err.Error()
	case errors.Is(err, batch.ErrResolution):
		return ErrResolution.HTTPStatus, ErrResolution.Code, err.Error()
	case errors.Is(err, batch.ErrEncoding):
		return ErrEncoding.HTTPStatus, ErrEncoding.Code, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout.HTTPStatus, ErrTimeout.Code, err.Error()
	default:
		return InternalServerError.HTTPStatus, InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, HTTPStatus: http.StatusOK, Message: "Success"}
	InternalServerError = Errno{Code: 10001, HTTPStatus: http.StatusInternalServerError, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, HTTPStatus: http.StatusBadRequest, Message: "Error occurred while binding the request body to the struct"}
	ErrTooManyRequests  = Errno{Code: 10003, HTTPStatus: http.StatusTooManyRequests, Message: "Too many requests, please try again later"}
	ErrTimeout          = Errno{Code: 10004, HTTPStatus: http.StatusInternalServerError, Message: "Request timed out"}
)

// Business Errors (20000+)
var (
	ErrInvalidInput  = Errno{Code: 20101, HTTPStatus: http.StatusBadRequest, Message: "Invalid input"}
	ErrResolution    = Errno{Code: 20201, HTTPStatus: http.StatusInternalServerError, Message: "Jetton wallet resolution failed"}
	ErrEncoding      = Errno{Code: 20202, HTTPStatus: http.StatusInternalServerError, Message: "Payload encoding failed"}
	ErrUploadMissing = Errno{Code: 20301, HTTPStatus: http.StatusBadRequest, Message: "No CSV file uploaded"}
	ErrUploadInvalid = Errno{Code: 20302, HTTPStatus: http.StatusBadRequest, Message: "Invalid CSV file"}
)
