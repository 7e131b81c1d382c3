package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPaths(t *testing.T) {
	assert.Equal(t, "/api/str", joinPaths("/api/", "/str"))
	assert.Equal(t, "/api/str", joinPaths("/api", "str"))
	assert.Equal(t, "/api/str", joinPaths("/api/", "str"))
	assert.Equal(t, "/api", joinPaths("/api", ""))
	assert.Equal(t, "str", joinPaths("", "str"))
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) MiddlewareFunc {
		return func(next Handler) Handler {
			return HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	r.Use(tag("global"))
	api := r.Group("/api")
	api.Use(tag("group"))
	api.Group("/str").RegisterFunc("/echo", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/str/echo", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"global", "group", "handler"}, order)
	assert.Equal(t, []string{"/api/str/echo"}, r.Routes())
}

func TestMethodAndRecovery(t *testing.T) {
	r := New()
	r.Use(RecoveryMiddleware())
	r.Use(MethodMiddleware(http.MethodGet))
	r.RegisterFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/boom", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "boom")
}
