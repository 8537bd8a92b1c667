package ws

import (
	"errors"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// MsgResult is the message name of result responses.
const MsgResult = "result"

// Result codes sent in ResultMsgData.
const (
	ResultBadRequest    = "BAD_REQUEST"
	ResultUnauthorized  = "UNAUTHORIZED"
	ResultForbidden     = "FORBIDDEN"
	ResultNotFound      = "NOT_FOUND"
	ResultConflict      = "CONFLICT"
	ResultValidation    = "VALIDATION_ERROR"
	ResultInternalError = "INTERNAL_ERROR"
)

// ResultMsgData is the payload of a result response.
type ResultMsgData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromError turns a decode or validation failure of the request with the
// given id into the matching result response. Other errors become a 500.
func FromError(reqID uint32, err error) Response {
	var de *codec.DecodeError
	if errors.As(err, &de) && errors.Is(de, codec.ErrMissingRequiredField) {
		return MissingField(reqID, de.Field)
	}

	switch {
	case errors.Is(err, validate.ErrInvalid):
		return NewErrorResponse(reqID, 422, ResultMsgData{Code: ResultValidation, Message: err.Error()})
	case errors.Is(err, codec.ErrUnknownField),
		errors.Is(err, codec.ErrInvalidValue),
		errors.Is(err, codec.ErrMalformed):
		return NewErrorResponse(reqID, 400, ResultMsgData{Code: ResultBadRequest, Message: err.Error()})
	default:
		return NewErrorResponse(reqID, 500, ResultMsgData{Code: ResultInternalError, Message: err.Error()})
	}
}
