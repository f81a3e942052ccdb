// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayvault/stayvault/internal/config"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/models"
)

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.AgentAdapter{HTTPAddress: serverURL}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── NewHTTPServerAdapter ─────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.AgentAdapter{HTTPAddress: ""}, logger.Nop())
	require.Error(t, err)

	_, err = NewHTTPServerAdapter(config.AgentAdapter{HTTPAddress: "://bad"}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL("https://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", got)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		w.Header().Set("Authorization", "Bearer agent.jwt.token")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.User{AccountID: "agent-1", Login: "lock-agent"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.User{Login: "lock-agent", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "agent-1", got.AccountID)
	assert.Equal(t, "agent.jwt.token", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("wrong password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "lock-agent"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

// ── Access codes ─────────────────────────────────────────────────────────────

func TestCurrentAccessCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/escrow/escrow-1/access-code", r.URL.Path)
		assert.Equal(t, "Bearer agent.jwt.token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AccessCodeResponse{AccessCode: "HOTEL123-3", Nonce: 3})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	got, err := a.CurrentAccessCode(context.Background(), "escrow-1")

	require.NoError(t, err)
	assert.Equal(t, "HOTEL123-3", got.AccessCode)
	assert.Equal(t, uint64(3), got.Nonce)
}

func TestCurrentAccessCode_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not authorized to read access codes"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	_, err := a.CurrentAccessCode(context.Background(), "escrow-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAccessCode_ByNonce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/escrow/escrow-1/access-code/2", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AccessCodeResponse{AccessCode: "HOTEL123-2", Nonce: 2})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	got, err := a.AccessCode(context.Background(), "escrow-1", 2)

	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Nonce)
}

func TestAccessCode_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("access code not found"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	_, err := a.AccessCode(context.Background(), "escrow-1", 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsAccessCodeActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/escrow/escrow-1/access-code/3/active", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AccessCodeActiveResponse{Active: true, Nonce: 3})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	active, err := a.IsAccessCodeActive(context.Background(), "escrow-1", 3)

	require.NoError(t, err)
	assert.True(t, active)
}

func TestMasterCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/escrow/escrow-1/master-code", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.MasterCodeRequest{AccessCode: "MASTER-9"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("agent.jwt.token")

	got, err := a.MasterCode(context.Background(), "escrow-1")

	require.NoError(t, err)
	assert.Equal(t, "MASTER-9", got.AccessCode)
}

// ── parseBearerToken ─────────────────────────────────────────────────────────

func TestParseBearerToken(t *testing.T) {
	token, err := parseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = parseBearerToken("Bearer")
	require.Error(t, err)

	_, err = parseBearerToken("")
	require.Error(t, err)
}
