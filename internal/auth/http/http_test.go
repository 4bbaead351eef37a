package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/internal/auth/store/drivers/sqlite"
	"github.com/qurehealth/qure/pkg/cryptox"
	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/qurehealth/qure/pkg/jwtx"
	"github.com/qurehealth/qure/pkg/mailx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "http-test-secret"
	testPassword = "Str0ng!Pass"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	srv   *httptest.Server
	mail  *mailx.Recorder
	store *sqlite.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &mailx.Recorder{}
	notifier := &service.Notifier{Mailer: rec, ResetBaseURL: "http://localhost:5173"}
	signer := jwtx.NewSignerHS256(testSecret)

	r := NewRouter(signer, "test", st, logger, httpx.NewMetrics("qure"), false)
	r.RegistrationService = &service.RegistrationService{Store: st, Notifier: notifier}
	r.SessionService = &service.SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(testSecret, "", 0),
	}
	r.AccessService = &service.AccessService{Store: st}
	r.PasswordResetService = &service.PasswordResetService{Store: st, Notifier: notifier}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, mail: rec, store: st}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

func (e *testEnv) register(t *testing.T, body map[string]any) {
	t.Helper()
	status, env := e.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
}

func (e *testEnv) login(t *testing.T, identifier string) string {
	t.Helper()
	status, env := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": identifier, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func patient(email string) map[string]any {
	return map[string]any{
		"firstName": "Pat", "lastName": "Ient", "email": email, "password": testPassword, "phone": "0400111222",
	}
}

func staff(email, hospital string) map[string]any {
	return map[string]any{
		"firstName": "Stan", "lastName": "Staff", "email": email, "password": testPassword,
		"role": "STAFF", "hospitalName": hospital,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	status, res := env.do(t, http.MethodPost, "/api/auth/register", "", patient("Pat@Example.com"))
	require.Equal(t, http.StatusCreated, status)
	require.True(t, res.Success)
	require.Equal(t, "Registration successful", res.Message)

	var reg struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &reg))
	require.Equal(t, "pat@example.com", reg.Email)
	require.Equal(t, "PATIENT", reg.Role)

	status, res = env.do(t, http.MethodPost, "/api/auth/register", "", patient("pat@example.com"))
	require.Equal(t, http.StatusConflict, status)
	require.False(t, res.Success)

	token := env.login(t, "0400111222")

	status, res = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "User authenticated", res.Message)

	var me struct {
		User struct {
			ID           string  `json:"id"`
			HospitalID   *string `json:"hospitalId"`
			PasswordHash string  `json:"passwordHash"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &me))
	require.Equal(t, reg.ID, me.User.ID)
	require.Nil(t, me.User.HospitalID)
	require.Empty(t, me.User.PasswordHash)
	require.NotContains(t, string(res.Data), "argon2")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	status, res := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "a@b.co"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Missing required fields: firstName, lastName, password", res.Message)

	status, res = env.do(t, http.MethodPost, "/api/auth/register", "", `{"email":`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Request body must be valid JSON", res.Message)

	status, res = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{"role": "DOCTOR"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid role selected", res.Message)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, patient("pat@example.com"))

	status, res := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "pat@example.com"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email or phone number and password are required", res.Message)

	for _, body := range []map[string]any{
		{"email": "pat@example.com", "password": "Wr0ng!Pass"},
		{"email": "ghost@example.com", "password": testPassword},
		{"email": "pat@example.com", "password": testPassword, "role": "STAFF"},
	} {
		status, res := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "Invalid email or phone number or password", res.Message)
	}
}

func TestAuthenticationFailures(t *testing.T) {
	env := newTestEnv(t)

	status, res := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Authentication required. Please log in.", res.Message)

	status, res = env.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid authentication token. Please log in again.", res.Message)
}

func TestRoleGuards(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, patient("pat@example.com"))
	env.register(t, staff("chief@example.com", "Royal North Shore"))

	patientToken := env.login(t, "pat@example.com")
	staffToken := env.login(t, "chief@example.com")

	status, res := env.do(t, http.MethodGet, "/api/patient/dashboard", patientToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Access granted to patient dashboard", res.Message)

	status, res = env.do(t, http.MethodGet, "/api/patient/dashboard", staffToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Access denied. You do not have permission to access this resource.", res.Message)

	status, _ = env.do(t, http.MethodGet, "/api/staff/dashboard", patientToken, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPost, "/api/staff/verify-access", patientToken, map[string]any{"accessCode": "ABCD1234"})
	require.Equal(t, http.StatusForbidden, status)

	status, res = env.do(t, http.MethodGet, "/api/staff/dashboard", staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Access granted to staff dashboard", res.Message)
}

var accessCodePattern = regexp.MustCompile(`is: ([0-9A-F]{8})`)

func TestStaffAccessVerification(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, staff("chief@example.com", "Westmead"))

	msg, ok := env.mail.Last()
	require.True(t, ok)
	m := accessCodePattern.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2)
	code := m[1]

	env.register(t, staff("nurse@example.com", "Westmead"))
	token := env.login(t, "nurse@example.com")

	status, res := env.do(t, http.MethodGet, "/api/staff/dashboard", token, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Hospital access code required", res.Message)

	status, res = env.do(t, http.MethodPost, "/api/staff/verify-access", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Access code is required", res.Message)

	status, res = env.do(t, http.MethodPost, "/api/staff/verify-access", token, map[string]any{"accessCode": "nope"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid hospital access code", res.Message)

	status, res = env.do(t, http.MethodPost, "/api/staff/verify-access", token, map[string]any{"accessCode": " " + strings.ToLower(code)})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Access verified successfully", res.Message)

	// The same token now passes: the user is re-read on every request.
	status, _ = env.do(t, http.MethodGet, "/api/staff/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, res = env.do(t, http.MethodPost, "/api/staff/verify-access", token, map[string]any{"accessCode": code})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Access already verified", res.Message)
}

func TestSessionEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, patient("pat@example.com"))
	token := env.login(t, "pat@example.com")

	type data struct {
		Authenticated bool `json:"authenticated"`
		User          *struct {
			Email string `json:"email"`
		} `json:"user"`
	}

	for _, tok := range []string{"", "garbage"} {
		status, res := env.do(t, http.MethodGet, "/api/session", tok, nil)
		require.Equal(t, http.StatusOK, status)
		var d data
		require.NoError(t, json.Unmarshal(res.Data, &d))
		require.False(t, d.Authenticated)
		require.Nil(t, d.User)
	}

	status, res := env.do(t, http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, status)
	var d data
	require.NoError(t, json.Unmarshal(res.Data, &d))
	require.True(t, d.Authenticated)
	require.Equal(t, "pat@example.com", d.User.Email)
}

var resetTokenPattern = regexp.MustCompile(`token=([0-9a-f]{64})`)

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, patient("pat@example.com"))

	status, unknown := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, status)

	status, known := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "pat@example.com"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, unknown.Message, known.Message)

	msg, ok := env.mail.Last()
	require.True(t, ok)
	m := resetTokenPattern.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2)

	status, res := env.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": m[1], "password": "weak"})
	require.Equal(t, http.StatusBadRequest, status)

	// The new password travels as "password"; other field names are ignored.
	status, res = env.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": m[1], "newPassword": "N3w!Password"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Token and new password are required", res.Message)

	status, _ = env.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": m[1], "password": "N3w!Password"})
	require.Equal(t, http.StatusOK, status)

	status, res = env.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": m[1], "password": "N3w!Password"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "This reset link has already been used", res.Message)

	status, _ = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "pat@example.com", "password": "N3w!Password"})
	require.Equal(t, http.StatusOK, status)
}

func TestSystemEndpoints(t *testing.T) {
	env := newTestEnv(t)

	status, res := env.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, res.Success)
	require.Equal(t, "Endpoint not found", res.Message)

	for _, path := range []string{"/health", "/livez", "/readyz"} {
		resp, err := env.srv.Client().Get(env.srv.URL + path)
		require.NoError(t, err)
		var body struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, "ok", body.Status, path)
	}

	resp, err := env.srv.Client().Get(env.srv.URL + "/metrics")
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(raw), `qure_http_requests_total{code="200",method="GET",route="GET /health"}`)
}

func TestReadyzReportsMissingSecret(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	rec := httptest.NewRecorder()
	ReadyzHandler(time.Now(), "test", st, jwtx.NewSignerHS256("")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "JWT_SECRET")
}

func TestErrorsWrite(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("classified", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Errors{}.Write(rec, req, service.ErrEmailAlreadyExists)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"An account with this email already exists"}`, rec.Body.String())
	})

	t.Run("configuration", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Errors{}.Write(rec, req, service.ErrConfiguration)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"Server configuration error"}`, rec.Body.String())
	})

	t.Run("unexpected hides detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Errors{}.Write(rec, req, errors.New("disk on fire"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"An unexpected error occurred"}`, rec.Body.String())
	})

	t.Run("unexpected exposes detail in development", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Errors{Expose: true}.Write(rec, req, errors.New("disk on fire"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"An unexpected error occurred","error":"disk on fire"}`, rec.Body.String())
	})
}

type stubAuthenticator struct {
	p   domain.Principal
	err error
}

func (s stubAuthenticator) Authenticate(context.Context, string) (domain.Principal, error) {
	return s.p, s.err
}

func TestMiddlewareChain(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFromContext(r.Context())
		httpx.WriteSuccess(w, http.StatusOK, string(p.Role), nil)
	})
	serve := func(h http.Handler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	unverified := stubAuthenticator{p: domain.Principal{ID: "u1", Role: domain.RoleStaff}}
	expired := stubAuthenticator{err: service.ErrSessionExpired}

	t.Run("role without authentication", func(t *testing.T) {
		rec := serve(httpx.Chain(ok, RequireRole(domain.RoleStaff, Errors{})), "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		rec := serve(httpx.Chain(ok, Authenticate(expired, Errors{})), "tok")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Session expired")
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rec := httptest.NewRecorder()
		httpx.Chain(ok, Authenticate(unverified, Errors{})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unverified staff blocked", func(t *testing.T) {
		h := httpx.Chain(ok, Authenticate(unverified, Errors{}), RequireRole(domain.RoleStaff, Errors{}), RequireStaffVerified(Errors{}))
		require.Equal(t, http.StatusForbidden, serve(h, "tok").Code)
	})

	t.Run("patients skip staff verification", func(t *testing.T) {
		pat := stubAuthenticator{p: domain.Principal{ID: "u2", Role: domain.RolePatient}}
		h := httpx.Chain(ok, Authenticate(pat, Errors{}), RequireStaffVerified(Errors{}))
		require.Equal(t, http.StatusOK, serve(h, "tok").Code)
	})

	t.Run("optional authentication tolerates failures", func(t *testing.T) {
		rec := serve(httpx.Chain(ok, OptionalAuthenticate(expired)), "tok")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecoverMiddleware(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	httpx.Chain(boom, httpx.Recover(false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"An unexpected error occurred"}`, rec.Body.String())
}
