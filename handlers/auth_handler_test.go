package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/database"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/routes"
	"github.com/yusufkaya/experience_marketplace/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *configs.Config {
	return &configs.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   10 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuideProfile{},
		&models.Experience{},
		&models.Booking{},
		&models.Review{},
	))
	database.DB = db

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	routes.AuthRoutes(app, testConfig())
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func registerUser(t *testing.T, app *fiber.App, email string) *http.Response {
	t.Helper()
	return postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	resp := registerUser(t, app, "New@Example.com")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	// email is stored lowercased
	assert.Equal(t, "new@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["userId"])

	cookie := refreshCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/auth/refresh", cookie.Path)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	resp := registerUser(t, app, "dupe@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = registerUser(t, app, "DUPE@example.com")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "User already exists, please login instead", body["message"])
}

func TestRegister_InvalidPayload(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "X",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "login@example.com")

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "login@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["accessToken"])

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProfile(t *testing.T) {
	app := newTestApp(t)

	resp := registerUser(t, app, "me@example.com")
	token := decodeBody(t, resp)["accessToken"].(string)

	req := httptest.NewRequest(fiber.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	got, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, got.StatusCode)
	body := decodeBody(t, got)
	assert.Equal(t, "me@example.com", body["email"])

	// no bearer token at all
	req = httptest.NewRequest(fiber.MethodGet, "/auth/profile", nil)
	got, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, got.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	got, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, got.StatusCode)
}

func TestRefresh(t *testing.T) {
	app := newTestApp(t)

	resp := registerUser(t, app, "refresh@example.com")
	cookie := refreshCookie(resp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/refresh", nil)
	req.AddCookie(cookie)
	got, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, got.StatusCode)
	body := decodeBody(t, got)
	assert.NotEmpty(t, body["accessToken"])
}

func TestRefresh_MissingAndInvalidCookie(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/refresh", nil)
	got, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, got.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "garbage"})
	got, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, got.StatusCode)
}
