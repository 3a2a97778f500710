package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	pathSendOTP     = "/api/auth/send-otp"
	pathVerifyOTP   = "/api/auth/verify-otp"
	pathGoogleLogin = "/api/auth/google-login"
	pathNotes       = "/api/notes"

	// RequestIDHeader correlates a request with client logs.
	RequestIDHeader = "X-Request-Id"

	maxErrorBody = 64 << 10
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// NewHTTPClient returns a client for the services rooted at baseURL. A positive
// timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: timeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendOTPRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createNoteRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) SendOTP(ctx context.Context, name, email string) error {
	return c.do(ctx, "send otp", http.MethodPost, pathSendOTP, "", sendOTPRequest{Name: name, Email: email}, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return c.exchange(ctx, "verify otp", pathVerifyOTP, verifyOTPRequest{Email: email, OTP: otp})
}

func (c *HTTPClient) GoogleLogin(ctx context.Context, credential string) (string, error) {
	return c.exchange(ctx, "google login", pathGoogleLogin, googleLoginRequest{Token: credential})
}

func (c *HTTPClient) exchange(ctx context.Context, op, path string, body any) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, op, http.MethodPost, path, "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w: empty token", op, ErrInvalidResponse)
	}
	return resp.Token, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	notes := []models.Note{}
	if err := c.do(ctx, "list notes", http.MethodGet, pathNotes, token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, token, content string) error {
	return c.do(ctx, "create note", http.MethodPost, pathNotes, token, createNoteRequest{Content: content}, nil)
}

func (c *HTTPClient) DeleteNote(ctx context.Context, token, id string) error {
	return c.do(ctx, "delete note", http.MethodDelete, pathNotes+"/"+url.PathEscape(id), token, nil, nil)
}

// do sends one JSON request. out, when non-nil, receives the decoded 2xx body.
func (c *HTTPClient) do(ctx context.Context, op, method, path, token string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("op", op, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
		}
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}
	return nil
}

// readErrorMessage extracts {"message": "..."} from an error body; anything
// else yields "".
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(b, &er); err != nil {
		return ""
	}
	return strings.TrimSpace(er.Message)
}
