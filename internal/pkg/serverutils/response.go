package serverutils

import (
	"time"

	"habit-tracker-be/internal/dto"
)

// BaseResponse always serializes data so clients can index it directly.
type BaseResponse[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    T              `json:"data"`
	Error   *dto.ErrorBody `json:"error,omitempty"`
	Meta    dto.Meta       `json:"meta"`
}

// StatusResponse is an envelope without a data payload.
type StatusResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   *dto.ErrorBody `json:"error,omitempty"`
	Meta    dto.Meta       `json:"meta"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    dto.Meta{Timestamp: time.Now().UTC()},
	}
}

// PaginatedResponse renders an empty page as [] rather than null.
func PaginatedResponse[T any](message string, data []T, pagination *dto.Pagination) *BaseResponse[[]T] {
	if data == nil {
		data = make([]T, 0)
	}
	res := SuccessResponse(message, data)
	res.Meta.Pagination = pagination
	return res
}

func MessageResponse(message string) *StatusResponse {
	return &StatusResponse{
		Success: true,
		Message: message,
		Meta:    dto.Meta{Timestamp: time.Now().UTC()},
	}
}

// ErrorResponse builds the failure envelope; code is the HTTP status and is
// used as the machine readable code only when no better one is known.
func ErrorResponse(code int, message string) *StatusResponse {
	return ErrorResponseWithCode(message, statusCode(code), nil)
}

func ErrorResponseWithCode(message, code string, details interface{}) *StatusResponse {
	return &StatusResponse{
		Success: false,
		Error: &dto.ErrorBody{
			Message: message,
			Code:    code,
			Details: details,
		},
		Meta: dto.Meta{Timestamp: time.Now().UTC()},
	}
}
