package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/stayvault/stayvault/internal/config"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.AgentAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the agent credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return foundUser, nil
}

// CurrentAccessCode implements [ServerAdapter]. It GETs
// GET /api/escrow/{address}/access-code and decodes the current code and
// nonce. Requires a valid bearer token.
func (h *httpServerAdapter) CurrentAccessCode(ctx context.Context, address string) (models.AccessCodeResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/escrow/" + url.PathEscape(address) + "/access-code")
	if err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("current access code request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessCodeResponse{}, err
	}

	var code models.AccessCodeResponse
	if err = json.Unmarshal(resp.Body(), &code); err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("decode access code response: %w", err)
	}

	return code, nil
}

// AccessCode implements [ServerAdapter]. It GETs
// GET /api/escrow/{address}/access-code/{nonce} and decodes the historical
// code issued at nonce. Requires a valid bearer token.
func (h *httpServerAdapter) AccessCode(ctx context.Context, address string, nonce uint64) (models.AccessCodeResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/escrow/%s/access-code/%d", url.PathEscape(address), nonce))
	if err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("access code request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessCodeResponse{}, err
	}

	var code models.AccessCodeResponse
	if err = json.Unmarshal(resp.Body(), &code); err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("decode access code response: %w", err)
	}

	return code, nil
}

// IsAccessCodeActive implements [ServerAdapter]. It GETs
// GET /api/escrow/{address}/access-code/{nonce}/active and reports whether the
// code issued at nonce still opens the lock. Requires a valid bearer token.
func (h *httpServerAdapter) IsAccessCodeActive(ctx context.Context, address string, nonce uint64) (bool, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/escrow/%s/access-code/%d/active", url.PathEscape(address), nonce))
	if err != nil {
		return false, fmt.Errorf("access code activity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var active models.AccessCodeActiveResponse
	if err = json.Unmarshal(resp.Body(), &active); err != nil {
		return false, fmt.Errorf("decode access code activity response: %w", err)
	}

	return active.Active, nil
}

// MasterCode implements [ServerAdapter]. It GETs
// GET /api/escrow/{address}/master-code. Requires a valid bearer token of the
// vault owner or the platform controller.
func (h *httpServerAdapter) MasterCode(ctx context.Context, address string) (models.AccessCodeResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/escrow/" + url.PathEscape(address) + "/master-code")
	if err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("master code request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessCodeResponse{}, err
	}

	var code models.MasterCodeRequest
	if err = json.Unmarshal(resp.Body(), &code); err != nil {
		return models.AccessCodeResponse{}, fmt.Errorf("decode master code response: %w", err)
	}

	return models.AccessCodeResponse{AccessCode: code.AccessCode}, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
