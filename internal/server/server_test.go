// internal/server/server_test.go
package server_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	toy := biopaxtest.NewToy()
	s := server.New(toy.Model, nil, idfetch.NewConfigurable(idfetch.DefaultOptions()),
		server.WithConcurrency(2), server.WithLogger(zaptest.NewLogger(t)))
	return s.Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// -- Test Cases --

func TestHealth(t *testing.T) {
	w := do(t, newRouter(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","elements":12,"blacklisted":0}`, w.Body.String())
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestTypes(t *testing.T) {
	w := do(t, newRouter(t), http.MethodGet, "/types", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Types []server.TypeInfo `json:"types"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Types, 14)
	assert.Equal(t, "controls-state-change-of", body.Types[0].Tag)
	assert.True(t, body.Types[0].Directed)
	assert.Len(t, body.Types[0].Miners, 5)
}

func TestSearch(t *testing.T) {
	h := newRouter(t)

	t.Run("sif format", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"types":["controls-state-change-of"],"format":"sif"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "KINK\tcontrols-state-change-of\tPROTA\n", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/tab-separated-values")
	})

	t.Run("json is the default format", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"types":["CONTROLS_PRODUCTION_OF"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			RequestID    string             `json:"request_id"`
			Interactions []reporting.Record `json:"interactions"`
		}
		require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.RequestID)
		require.Len(t, body.Interactions, 1)
		assert.Equal(t, "KINK", body.Interactions[0].Source)
		assert.Equal(t, "CHEBI:16761", body.Interactions[0].Target)
	})

	t.Run("extended format", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"types":["neighbor-of"],"format":"extended"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "PARTICIPANT_A\tINTERACTION_TYPE\tPARTICIPANT_B\t"))
		assert.Contains(t, w.Body.String(), "\n\nPARTICIPANT\tPARTICIPANT_TYPE")
	})

	t.Run("all types when none are given", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/search", `{"format":"sif"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 6, strings.Count(w.Body.String(), "\n"))
	})

	for name, body := range map[string]string{
		"malformed body": `{"types":`,
		"unknown type":   `{"types":["controls-everything"]}`,
		"unknown format": `{"format":"sarif"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/search", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	toy := biopaxtest.NewToy()
	s := server.New(toy.Model, nil, idfetch.NewConfigurable(idfetch.DefaultOptions()))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	http.DefaultClient.CloseIdleConnections()
}
