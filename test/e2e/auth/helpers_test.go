//go:build e2e

package auth_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, account operations, and assertions.
 */

const (
	testImageName = "qure-auth-test:latest"

	jwtSecret    = "e2e-jwt-secret-0123456789abcdef"
	testPassword = "E2e!Passw0rd"
)

var (
	accessCodePattern = regexp.MustCompile(`access code for .+ is: ([0-9A-F]{8})`)
	resetTokenPattern = regexp.MustCompile(`reset-password\?token=([0-9a-f]{64})`)
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Qure auth Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Qure auth Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// authContainer is a running service instance.
type authContainer struct {
	testcontainers.Container
	BaseURL string
}

// setupAuthContainer starts the auth service in a container. env entries
// override the defaults; an empty value removes the variable.
func setupAuthContainer(t *testing.T, env map[string]string) *authContainer {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"JWT_SECRET":         jwtSecret,
		"AUTH_ISSUER":        "qure-auth",
		"AUTH_DATABASE_FILE": "/data/qure.db",
		"AUTH_PEPPER_FILE":   "/data/pepper",
		"MAIL_TRANSPORT":     "log",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"PORT":               "5000",
	}
	for k, v := range env {
		if v == "" {
			delete(vars, k)
			continue
		}
		vars[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"5000/tcp"},
		Env:          vars,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("5000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "5000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &authContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

// logs returns everything the container has written so far. The log mail
// transport writes rendered messages here.
func (c *authContainer) logs(t *testing.T) string {
	t.Helper()
	rc, err := c.Logs(t.Context())
	require.NoError(t, err)
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(raw)
}

// lastMatch polls the container logs for pattern and returns the first
// capture group of the last match.
func (c *authContainer) lastMatch(t *testing.T, pattern *regexp.Regexp) string {
	t.Helper()

	var found string
	require.Eventually(t, func() bool {
		all := pattern.FindAllStringSubmatch(c.logs(t), -1)
		if len(all) == 0 {
			return false
		}
		found = all[len(all)-1][1]
		return true
	}, 10*time.Second, 200*time.Millisecond, "no log line matched %s", pattern)
	return found
}

func registerPatient(t *testing.T, client *authsdk.SDKClient, email string, phone *string) *authsdk.RegisteredUser {
	t.Helper()
	user, err := client.Register(t.Context(), authsdk.RegisterRequest{
		FirstName: "Pat",
		LastName:  "Ient",
		Email:     email,
		Password:  testPassword,
		Phone:     phone,
	})
	require.NoError(t, err, "patient registration should succeed")
	return user
}

func registerStaff(t *testing.T, client *authsdk.SDKClient, email, hospital string) *authsdk.RegisteredUser {
	t.Helper()
	user, err := client.Register(t.Context(), authsdk.RegisterRequest{
		FirstName:    "Stan",
		LastName:     "Staff",
		Email:        email,
		Password:     testPassword,
		Role:         "STAFF",
		HospitalName: hospital,
	})
	require.NoError(t, err, "staff registration should succeed")
	return user
}

// requireStatus asserts err is an API error with the given status.
func requireStatus(t *testing.T, err error, status int, msgAndArgs ...any) *authsdk.APIError {
	t.Helper()
	require.Error(t, err, msgAndArgs...)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr, msgAndArgs...)
	require.Equal(t, status, apiErr.StatusCode, msgAndArgs...)
	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func ptr(s string) *string { return &s }
