// package to contains functions for writing values to HTTP responses.
package to

import (
	"net/http"

	"github.com/go-json-experiment/json"
)

// JSON writes the given object to the response body as JSON.
// If obj is a nil slice, an empty JSON array is written.
// If obj is a nil map, an empty JSON object is written.
// If obj is a nil pointer, a null is written.
func JSON(w http.ResponseWriter, obj any) error {
	return JSONStatus(w, http.StatusOK, obj)
}

// JSONStatus writes the given object as JSON with the given HTTP status code.
func JSONStatus(w http.ResponseWriter, status int, obj any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.MarshalOptions{}.MarshalFull(json.EncodeOptions{
		Indent: "  ",
	}, w, obj)
}
