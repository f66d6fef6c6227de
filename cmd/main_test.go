package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/sbilibin2017/taskboard/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func init() {
	models.HashCost = 4
}

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

var configKeys = []string{
	"APP_HOST", "APP_PORT", "APP_LOG_LEVEL",
	"DB_DRIVER", "DB_DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "LOGIN_MAX_ATTEMPTS", "LOGIN_LOCK_SECOND",
	"KAFKA_BROKERS", "KAFKA_TOPIC",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
	"JWT_SECRET_KEY", "JWT_EXP_SECOND", "RECOVERY_PURGE_INTERVAL_SECOND", "RECOVERY_EXPOSE_TOKEN",
}

// resetEnv unsets the env vars used by parseConfig and restores them
// when t finishes.
func resetEnv(t *testing.T) {
	for _, key := range configKeys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		}
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configKeys {
			os.Unsetenv(key)
		}
	})
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "Build version: v1.0.0") ||
		!contains(output, "Build commit: abcd1234") ||
		!contains(output, "Build date: 2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, repositories.DriverSQLite, cfg.DBDriver)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.Equal(t, 2, cfg.DBMaxIdleConns)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, int64(5), cfg.LoginMaxAttempts)
	assert.Equal(t, 900, cfg.LoginLockSecond)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "taskboard.task-events", cfg.KafkaTopic)
	assert.Empty(t, cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "my_super_secret_key", cfg.JWTSecretKey)
	assert.Equal(t, 3600, cfg.JWTExpSecond)
	assert.Equal(t, 3600, cfg.RecoveryPurgeIntervalSecond)
	assert.False(t, cfg.RecoveryExposeToken)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv(t)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://user:password@db:5432/taskboard")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TOPIC", "events")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("JWT_EXP_SECOND", "300")
	t.Setenv("RECOVERY_PURGE_INTERVAL_SECOND", "0")
	t.Setenv("RECOVERY_EXPOSE_TOKEN", "true")

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.AppHost)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, repositories.DriverPgx, cfg.DBDriver)
	assert.Equal(t, "postgres://user:password@db:5432/taskboard", cfg.DBDSN)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, int64(3), cfg.LoginMaxAttempts)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "events", cfg.KafkaTopic)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "noreply@example.com", cfg.SMTPFrom)
	assert.Equal(t, "supersecret", cfg.JWTSecretKey)
	assert.Equal(t, 300, cfg.JWTExpSecond)
	assert.Equal(t, 0, cfg.RecoveryPurgeIntervalSecond)
	assert.True(t, cfg.RecoveryExposeToken)
}

func TestParseConfig_FromFile(t *testing.T) {
	resetEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nLOGIN_LOCK_SECOND=60\n"), 0o600))

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, 60, cfg.LoginLockSecond)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv(t)
	t.Setenv("JWT_EXP_SECOND", "soon")

	_, err := parseConfig("nonexistent.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXP_SECOND")
}

func TestParseConfig_InvalidBool(t *testing.T) {
	resetEnv(t)
	t.Setenv("RECOVERY_EXPOSE_TOKEN", "sometimes")

	_, err := parseConfig("nonexistent.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECOVERY_EXPOSE_TOKEN")
}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeStaleRecoveries(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestPurgeRecoveries(t *testing.T) {
	t.Run("runs until cancelled", func(t *testing.T) {
		p := &countingPurger{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			purgeRecoveries(ctx, p, 5*time.Millisecond)
			close(done)
		}()

		assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("purge loop did not stop")
		}
	})

	t.Run("errors do not stop the loop", func(t *testing.T) {
		p := &countingPurger{err: errors.New("db down")}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go purgeRecoveries(ctx, p, 5*time.Millisecond)

		assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	})

	t.Run("disabled", func(t *testing.T) {
		p := &countingPurger{}
		purgeRecoveries(context.Background(), p, 0)
		assert.Zero(t, p.calls.Load())
	})
}

func testConfig(t *testing.T) config {
	t.Helper()
	return config{
		AppHost:          "127.0.0.1",
		AppPort:          "0",
		LogLevel:         "error",
		DBDriver:         repositories.DriverSQLite,
		DBDSN:            repositories.SQLiteDSN(filepath.Join(t.TempDir(), "taskboard.db")),
		DBMaxOpenConns:   4,
		DBMaxIdleConns:   2,
		LoginMaxAttempts: 3,
		LoginLockSecond:  60,
		JWTSecretKey:     "testsecret",
		JWTExpSecond:     3600,
	}
}

type apiClient struct {
	t   *testing.T
	url string
}

func (c apiClient) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.url+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		out = nil
	}
	return resp.StatusCode, out
}

func (c apiClient) login(username, password string) string {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, code, "login %s: %v", username, body)
	return body["token"].(string)
}

func TestApp_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()
	cfg.RecoveryExposeToken = true

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(a.handler)
	defer srv.Close()
	api := apiClient{t: t, url: srv.URL}

	// Registration: the first account becomes admin.
	code, body := api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "Secret12",
	})
	require.Equal(t, http.StatusCreated, code, body)
	alice := body["user"].(map[string]any)
	assert.Equal(t, true, alice["is_admin"])

	code, body = api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code, body)
	bob := body["user"].(map[string]any)
	assert.Equal(t, false, bob["is_admin"])

	code, _ = api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, code)

	adminToken := api.login("alice", "Secret12")
	bobToken := api.login("bob", "secret1")

	// Tasks
	code, _ = api.do(http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(http.MethodPost, "/tasks", bobToken, map[string]string{"title": "Write report", "description": "Q1"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "ToDo", body["status"])
	taskID := body["id"].(string)

	code, body = api.do(http.MethodPost, "/tasks", bobToken, map[string]string{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = api.do(http.MethodPatch, "/tasks/"+taskID+"/status", bobToken, map[string]string{"status": "Doing"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Doing", body["status"])

	code, _ = api.do(http.MethodPatch, "/tasks/"+taskID+"/status", bobToken, map[string]string{"status": "Blocked"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/tasks/"+taskID, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Doing", body["status"])

	code, body = api.do(http.MethodGet, "/tasks?status=Doing", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tasks"], 1)

	code, body = api.do(http.MethodGet, "/tasks", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tasks"], 0)

	// Admins may edit anyone's task.
	code, body = api.do(http.MethodPut, "/tasks/"+taskID, adminToken, map[string]string{"title": "Write final report"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Write final report", body["title"])
	assert.Equal(t, "Q1", body["description"])

	// Admin area
	code, _ = api.do(http.MethodGet, "/admin/users", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodGet, "/admin/tasks", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	tasks := body["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "bob", tasks[0].(map[string]any)["owner_username"])

	code, body = api.do(http.MethodPost, "/admin/tasks", adminToken, map[string]string{"owner_id": bob["id"].(string), "title": "Review PR"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, bob["id"], body["owner_id"])

	code, body = api.do(http.MethodGet, "/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total_users"])
	assert.Equal(t, float64(1), body["admin_users"])
	assert.Equal(t, float64(2), body["total_tasks"])
	assert.Equal(t, float64(1), body["doing_tasks"])

	code, _ = api.do(http.MethodDelete, "/admin/users/"+alice["id"].(string), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Logout ends the session even though the JWT is unexpired.
	code, _ = api.do(http.MethodPost, "/logout", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, "/tasks", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Brute force throttling
	for i := 0; i < 3; i++ {
		code, _ = api.do(http.MethodPost, "/login", "", map[string]string{"username": "bob", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, code)
	}
	code, _ = api.do(http.MethodPost, "/login", "", map[string]string{"username": "bob", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	mr.FastForward(time.Minute + time.Second)

	// Recovery without SMTP hands the token back when exposure is enabled.
	code, _ = api.do(http.MethodPost, "/password/recovery", "", map[string]string{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = api.do(http.MethodPost, "/password/recovery", "", map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, code, body)
	recoveryToken := body["token"].(string)
	require.NotEmpty(t, recoveryToken)

	// A rejected new password leaves the token usable.
	code, body = api.do(http.MethodPost, "/password/reset", "", map[string]string{"token": recoveryToken, "new_password": ""})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at least 6 characters", body["error"])

	code, _ = api.do(http.MethodPost, "/password/reset", "", map[string]string{"token": recoveryToken, "new_password": "newpass1"})
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPost, "/password/reset", "", map[string]string{"token": recoveryToken, "new_password": "another1"})
	assert.Equal(t, http.StatusBadRequest, code)

	bobToken = api.login("bob", "newpass1")

	code, body = api.do(http.MethodPut, "/me/password", bobToken, map[string]string{"old_password": "newpass1", "new_password": strings.Repeat("x", 73)})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at most 72 bytes", body["error"])

	code, _ = api.do(http.MethodPut, "/me/password", bobToken, map[string]string{"old_password": "newpass1", "new_password": "newpass2"})
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, "/tasks", bobToken, nil)
	assert.Equal(t, http.StatusOK, code, "own password change keeps the session")

	// Deleting a user removes their tasks.
	code, _ = api.do(http.MethodDelete, "/admin/users/"+bob["id"].(string), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, "/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total_users"])
	assert.Equal(t, float64(0), body["total_tasks"])

	code, _ = api.do(http.MethodGet, "/tasks", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestApp_RecoveryTokenNotExposedByDefault(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(a.handler)
	defer srv.Close()
	api := apiClient{t: t, url: srv.URL}

	code, body := api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": strings.Repeat("p", 80),
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at most 72 bytes", body["error"])

	code, _ = api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body = api.do(http.MethodPost, "/password/recovery", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"message": "Recovery token issued, ask an administrator for it"}, body)
}

func TestApp_SwaggerDoc(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "Taskboard API", doc["info"].(map[string]any)["title"])
	assert.Equal(t, "127.0.0.1:0", doc["host"])
	assert.Contains(t, doc["paths"], "/tasks/{id}/status")
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = "mysql"

	_, err := newApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestRun_SQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.RecoveryPurgeIntervalSecond = 1

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, run(ctx, cfg))
}

func TestRun_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer pgContainer.Terminate(ctx)

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	cfg := testConfig(t)
	cfg.DBDriver = repositories.DriverPgx
	cfg.DBDSN = fmt.Sprintf("postgres://user:password@%s:%s/testdb?sslmode=disable", pgHost, pgPort.Port())

	testCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := run(testCtx, cfg); err != nil {
		t.Fatalf("expected run to succeed, got error: %v", err)
	}
}
