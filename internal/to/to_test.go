package to_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chtnnhfndn/contacts-backend/internal/to"
)

// mockResponseWriter is an io.Writer that satisfies the http.ResponseWriter
// interface.
type mockResponseWriter struct {
	bytes.Buffer
	status int
}

func (w *mockResponseWriter) Header() http.Header {
	return http.Header{}
}

func (w *mockResponseWriter) WriteHeader(status int) {
	w.status = status
}

func TestToJSONReturnsEmptyArrayForNilSlice(t *testing.T) {
	require := require.New(t)

	var s []string = nil
	var out mockResponseWriter
	err := to.JSON(&out, s)
	require.NoError(err)
	require.Equal("[]", out.String())
}

func TestToJSONReturnsEmptyObjectForNilMap(t *testing.T) {
	require := require.New(t)

	var m map[string]string = nil
	var out mockResponseWriter
	err := to.JSON(&out, m)
	require.NoError(err)
	require.Equal("{}", out.String())
}

func TestToJSONReturnsNullForNilPointerValue(t *testing.T) {
	require := require.New(t)

	m := map[string]interface{}{
		"profile": (*struct{})(nil),
	}
	var out mockResponseWriter
	err := to.JSON(&out, m)
	require.NoError(err)
	require.Equal("{\n  \"profile\": null\n}", out.String())
}

func TestToJSONStatusSetsTheStatusCode(t *testing.T) {
	require := require.New(t)

	var out mockResponseWriter
	err := to.JSONStatus(&out, http.StatusCreated, map[string]string{"name": "dad"})
	require.NoError(err)
	require.Equal(http.StatusCreated, out.status)
	require.Equal("{\n  \"name\": \"dad\"\n}", out.String())
}
