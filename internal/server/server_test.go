package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/AdrianWangs/go-jstring/config"
	"github.com/AdrianWangs/go-jstring/internal/intern"
)

func get(t *testing.T, h http.Handler, path string, params url.Values) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	target := path
	if params != nil {
		target += "?" + params.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == contentTypeJSON {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, _ := get(t, New("").Handler(), "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStringRoutes(t *testing.T) {
	h := New("").Handler()

	cases := []struct {
		path   string
		params url.Values
		key    string
		want   interface{}
	}{
		{"/api/str/concat", url.Values{"a": {"abc"}, "b": {"def"}}, "value", "abcdef"},
		{"/api/str/substring", url.Values{"s": {"abcdef"}, "start": {"2"}}, "value", "cdef"},
		{"/api/str/substring", url.Values{"s": {"abcdef"}, "start": {"0"}, "end": {"3"}}, "value", "abc"},
		{"/api/str/indexof", url.Values{"s": {"abcdef"}, "needle": {"def"}}, "index", float64(3)},
		{"/api/str/indexof", url.Values{"s": {"abc"}, "needle": {""}, "from": {"4"}}, "index", float64(3)},
		{"/api/str/fromint", url.Values{"i": {"-7"}}, "value", "-7"},
		{"/api/str/parsefloat", url.Values{"s": {"-2e4f"}}, "float", float64(-20000)},
		{"/api/str/parsefloat", url.Values{"s": {"1e400"}}, "float", "+Inf"},
		{"/api/str/hash", url.Values{"s": {"abc"}}, "hash", float64(126145)},
	}
	for _, c := range cases {
		rec, body := get(t, h, c.path, c.params)
		require.Equal(t, http.StatusOK, rec.Code, "%s?%s: %s", c.path, c.params.Encode(), rec.Body.String())
		assert.Equal(t, c.want, body[c.key], "%s?%s", c.path, c.params.Encode())
	}
}

func TestStringRouteErrors(t *testing.T) {
	h := New("").Handler()

	cases := []struct {
		path   string
		params url.Values
	}{
		{"/api/str/substring", url.Values{"s": {"abcdef"}, "start": {"5"}, "end": {"2"}}},
		{"/api/str/substring", url.Values{"s": {"abcdef"}, "start": {"0"}, "end": {"7"}}},
		{"/api/str/substring", url.Values{"s": {"abcdef"}}},
		{"/api/str/substring", url.Values{"s": {"abcdef"}, "start": {"x"}}},
		{"/api/str/fromint", nil},
		{"/api/str/parsefloat", url.Values{"s": {"abc"}}},
		{"/api/str/parsefloat", nil},
	}
	for _, c := range cases {
		rec, body := get(t, h, c.path, c.params)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s?%s", c.path, c.params.Encode())
		assert.NotEmpty(t, body["error"])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/str/concat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResultsAreInterned(t *testing.T) {
	pool := intern.New(0, 0)
	h := New("", WithPool(pool)).Handler()

	_, first := get(t, h, "/api/str/concat", url.Values{"a": {"ab"}, "b": {"cd"}})
	_, second := get(t, h, "/api/str/substring", url.Values{"s": {"xabcd"}, "start": {"1"}})
	assert.Equal(t, false, first["shared"])
	assert.Equal(t, true, second["shared"])

	_, stats := get(t, h, "/api/intern/stats", nil)
	assert.Equal(t, float64(2), stats["lookups"])
	assert.Equal(t, float64(1), stats["hits"])
	assert.Equal(t, float64(1), stats["size"])
}

func TestProtobufResponses(t *testing.T) {
	decode := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
		t.Helper()
		require.Equal(t, contentTypeProtobuf, rec.Header().Get("Content-Type"))
		msg := &structpb.Struct{}
		require.NoError(t, proto.Unmarshal(rec.Body.Bytes(), msg))
		return msg.AsMap()
	}

	// negotiated per request
	h := New("").Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/str/fromint?i=1234567", nil)
	req.Header.Set("Accept", contentTypeProtobuf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "1234567", decode(t, rec)["value"])

	// server default
	h = New("", WithProtocol(config.ProtocolProtobuf), WithBasePath("/v1/")).Handler()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/str/parsefloat?s=5E-3F", nil))
	assert.InDelta(t, 0.005, decode(t, rec)["float"], 1e-12)
}

func TestStartStop(t *testing.T) {
	s := New("127.0.0.1:0")
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	assert.Error(t, s.Start())

	addr := s.Addr()
	resp, err := http.Get("http://" + addr + "/api/str/concat?a=x&b=y")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"value":"xy","length":2,"shared":false}`, string(body))

	s.Stop()
	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BasePath = "/v2/"
	cfg.InternCapacity = 8

	s := NewFromConfig(cfg)
	assert.Equal(t, "localhost:9999", s.Addr())

	rec, body := get(t, s.Handler(), "/v2/str/fromint", url.Values{"i": {"0"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", body["value"])
	assert.Contains(t, s.router.Routes(), "/v2/intern/stats")
}
