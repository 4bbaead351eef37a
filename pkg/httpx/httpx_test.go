package httpx_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "Endpoint not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"success":false,"message":"Endpoint not found"}`, rec.Body.String())
}

func TestRecover(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	t.Run("production hides detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.Chain(boom, httpx.Recover(false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"An unexpected error occurred"}`, rec.Body.String())
	})

	t.Run("development exposes detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.Chain(boom, httpx.Recover(true)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var body httpx.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "kaboom", body.Error)
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		body    io.Reader
		wantErr bool
		want    string
	}{
		{"valid", strings.NewReader(`{"email":"a@b.co"}`), false, "a@b.co"},
		{"empty body", strings.NewReader(""), false, ""},
		{"unknown fields ignored", strings.NewReader(`{"email":"a@b.co","x":1}`), false, "a@b.co"},
		{"truncated", strings.NewReader(`{"email":`), true, ""},
		{"trailing garbage", strings.NewReader(`{"email":"a@b.co"} {}`), true, ""},
		{"not json", strings.NewReader(`email=a@b.co`), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := httpx.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", tt.body), &p)
			if tt.wantErr {
				require.ErrorIs(t, err, httpx.ErrInvalidJSON)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Email)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer   padded  ", "padded", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"bearer abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		got, ok := httpx.BearerToken(r)
		require.Equal(t, tt.ok, ok, "header %q", tt.header)
		require.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := httpx.NewMetrics("test")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := httpx.Chain(mux, m.Middleware())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	require.Contains(t, out, `test_http_requests_total{code="418",method="GET",route="GET /things/{id}"} 1`)
	require.Contains(t, out, `test_http_requests_total{code="404",method="GET",route="unmatched"} 1`)
	require.Contains(t, out, "test_http_request_duration_seconds_bucket")
}
