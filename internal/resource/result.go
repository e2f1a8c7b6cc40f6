// Package resource gives every entity of the remote API a narrow typed
// surface over the gateway. Operations never return Go errors: each one
// reports its outcome as a Result.
package resource

import (
	"encoding/json"

	"repairs/internal/gateway"
)

// Result is the outcome of one wrapper operation. Exactly one of Data or Error
// is meaningful, selected by Success.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
	// Status is the HTTP status of a failed call the server answered; zero
	// when the server was never reached. Not part of the JSON form.
	Status int
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Fail[T any](msg string) Result[T] {
	return Result[T]{Error: msg}
}

// FromError converts a failure into a Result, passing the message through
// verbatim.
func FromError[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), Status: gateway.StatusOf(err)}
}

// Rejected reports a failure the server answered with a 4xx status.
func (r Result[T]) Rejected() bool {
	return !r.Success && r.Status >= 400 && r.Status < 500
}

// Unwrap returns the data and a nil error, or the zero value and an error
// carrying the failure message.
func (r Result[T]) Unwrap() (T, error) {
	if !r.Success {
		var zero T
		return zero, failure(r.Error)
	}
	return r.Data, nil
}

// MarshalJSON renders {"success":true,"data":…} or {"success":false,"error":…}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    T    `json:"data"`
		}{true, r.Data})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, r.Error})
}

type failure string

func (f failure) Error() string { return string(f) }
