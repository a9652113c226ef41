// FILE: loggen/src/internal/status/server_test.go
package status

import (
	"encoding/json"
	"testing"
	"time"

	"loggen/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type fakeProvider struct{}

func (fakeProvider) GetGlobalStats() map[string]any {
	return map[string]any{"total_generators": 4}
}

func (fakeProvider) InstanceID() string { return "test-instance" }

func (fakeProvider) Uptime() time.Duration { return 90 * time.Second }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(config.Defaults().Status, fakeProvider{}, log.NewLogger())
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	s.requestHandler(ctx)
	return ctx
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(nil, fakeProvider{}, log.NewLogger())
	assert.Error(t, err)

	_, err = NewServer(config.Defaults().Status, nil, log.NewLogger())
	assert.Error(t, err)
}

func TestRequestHandler(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		path     string
		wantCode int
		check    func(t *testing.T, body map[string]any)
	}{
		{
			name:     "Status",
			method:   fasthttp.MethodGet,
			path:     "/status",
			wantCode: fasthttp.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "loggen", body["service"])
				assert.Equal(t, "test-instance", body["instance_id"])
				assert.Equal(t, float64(90), body["uptime_seconds"])
				gens, ok := body["generators"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(4), gens["total_generators"])
			},
		},
		{
			name:     "Health",
			method:   fasthttp.MethodGet,
			path:     "/health",
			wantCode: fasthttp.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "ok", body["status"])
			},
		},
		{
			name:     "NotFound",
			method:   fasthttp.MethodGet,
			path:     "/missing",
			wantCode: fasthttp.StatusNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "/missing", body["requested_path"])
			},
		},
		{
			name:     "MethodNotAllowed",
			method:   fasthttp.MethodPost,
			path:     "/status",
			wantCode: fasthttp.StatusMethodNotAllowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			ctx := doRequest(s, tc.method, tc.path)

			assert.Equal(t, tc.wantCode, ctx.Response.StatusCode())
			assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

			var body map[string]any
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestRequestCounters(t *testing.T) {
	s := newTestServer(t)
	doRequest(s, fasthttp.MethodGet, "/health")
	doRequest(s, fasthttp.MethodGet, "/nope")

	assert.Equal(t, uint64(2), s.totalRequests.Load())
	assert.Equal(t, uint64(1), s.failedRequests.Load())
}
