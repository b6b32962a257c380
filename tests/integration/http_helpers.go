package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/config"
	"github.com/aronpal/accountd/internal/database"
	"github.com/aronpal/accountd/internal/handlers"
	"github.com/aronpal/accountd/internal/routes"
	"github.com/aronpal/accountd/internal/services"
)

// SentEmail represents a captured email message
type SentEmail struct {
	To      []string
	Subject string
	Body    string
}

// MockEmailService captures sent emails for test assertions
type MockEmailService struct {
	SentEmails []SentEmail
	mu         sync.Mutex
}

// Send records the email instead of delivering it
func (m *MockEmailService) Send(ctx context.Context, subject, body string, to []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentEmails = append(m.SentEmails, SentEmail{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	return nil
}

// GetLastEmail returns the most recent email sent
func (m *MockEmailService) GetLastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentEmails) == 0 {
		return nil
	}
	return &m.SentEmails[len(m.SentEmails)-1]
}

// TestServer wraps httptest.Server with the database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	EmailService *MockEmailService
	Config       *config.Config
	TokenManager *auth.TokenManager

	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server with a real database and mocked email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-32-characters-long-for-testing",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Reset: config.ResetConfig{
			CodeTTL:         5 * time.Minute,
			CleanupInterval: 1 * time.Hour,
		},
		Email: config.EmailConfig{
			FromAddress: "noreply@test.local",
			AWSRegion:   "",
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
	}

	userRepo, codeRepo, addressRepo := InitializeRepositories(db)

	mockEmail := &MockEmailService{
		SentEmails: []SentEmail{},
	}

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	userService := services.NewUserService(userRepo, logger)
	resetService := services.NewPasswordResetService(userRepo, codeRepo, mockEmail, cfg.Reset.CodeTTL, logger)
	addressService := services.NewAddressService(addressRepo, logger)
	adminService := services.NewAdminService(userRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	addressHandler := handlers.NewAddressHandler(addressService)
	adminHandler := handlers.NewAdminHandler(userService, authService, adminService, addressService)

	// Setup chi router with the production middleware stack
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, authHandler, userHandler, resetHandler, addressHandler, adminHandler, tokenManager)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		DB:           db,
		EmailService: mockEmail,
		Config:       cfg,
		TokenManager: tokenManager,
		logger:       logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with an access token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses the JSON response body into the target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractTokensFromResponse extracts the token pair from a login response
func ExtractTokensFromResponse(resp *http.Response) (accessToken, refreshToken string, err error) {
	defer resp.Body.Close()

	var loginResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", "", err
	}

	if access, ok := loginResp["access"].(string); ok {
		accessToken = access
	}
	if refresh, ok := loginResp["refresh"].(string); ok {
		refreshToken = refresh
	}

	return
}

// GetDetail extracts the single-field detail message from a response
func GetDetail(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if detail, ok := body["detail"].(string); ok {
		return detail, nil
	}
	return "", nil
}
