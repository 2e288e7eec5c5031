package response

import "net/http"

// ServerErrorMessage is the only detail a client sees for an internal failure.
const ServerErrorMessage = "server error"

// Error is the JSON body written for every failed request.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e Error) Error() string {
	return e.Message
}

func NewError(code int, message string) Error {
	return Error{
		Code:    code,
		Message: message,
	}
}

// ErrServer is the canonical 500 body.
var ErrServer = NewError(http.StatusInternalServerError, ServerErrorMessage)
