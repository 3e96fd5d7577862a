// Package httpx is a convenience wrapper around the http.ServeMux type that
// allows us to return errors from our handlers.
// see https://blog.questionable.services/article/http-handler-error-handling-revisited/ for more details.
package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-json-experiment/json"
)

// Error is a convenience function for returning an error with an associated HTTP status code.
func Error(code int, err error) error {
	return &StatusError{code, err}
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

// Allows StatusError to satisfy the error interface.
func (se *StatusError) Error() string {
	return se.Err.Error()
}

// Returns our HTTP status code.
func (se *StatusError) Status() int {
	return se.Code
}

// Code is a convenience function for returning an error with a stable
// machine-readable error code alongside its HTTP status. Clients dispatch on
// the code, not the message.
func Code(status int, code string, err error) error {
	return &CodedError{status, code, err}
}

// CodedError represents a domain failure with a stable error code that is
// part of the API contract.
type CodedError struct {
	StatusCode int
	ErrorCode  string
	Err        error
}

// Allows CodedError to satisfy the error interface.
func (ce *CodedError) Error() string {
	return ce.Err.Error()
}

// HandlerFunc adapts a function that returns an error to an http.HandlerFunc.
func HandlerFunc[E any](envFn func(r *http.Request) *E, fn func(*E, http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := envFn(r)
		err := fn(env, w, r)
		if err == nil {
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if ce := new(CodedError); errors.As(err, &ce) {
			log.Printf("HTTP: method: %s, path: %s, status: %d, code: %s, error: %s", r.Method, r.URL.Path, ce.StatusCode, ce.ErrorCode, err)
			w.WriteHeader(ce.StatusCode)
			json.MarshalFull(w, map[string]any{
				"error_code": ce.ErrorCode,
				"message":    ce.Error(),
			})
			return
		}
		if se := new(StatusError); errors.As(err, &se) {
			log.Printf("HTTP: method: %s, path: %s, status: %d, error: %s", r.Method, r.URL.Path, se.Status(), err)
			w.WriteHeader(se.Status())
			json.MarshalFull(w, map[string]any{
				"error": se.Error(),
			})
			return
		}
		log.Printf("HTTP: method: %s, path: %s, status: %d, error: %s", r.Method, r.URL.Path, http.StatusInternalServerError, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.MarshalFull(w, map[string]any{
			"error": http.StatusInternalServerError,
		})
	}
}
