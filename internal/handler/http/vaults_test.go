// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/service"
	"github.com/stayvault/stayvault/models"
)

// ─────────────────────────────────────────────
// Mock RegistryService
// ─────────────────────────────────────────────

type mockRegistryService struct {
	createVaultFn          func(ctx context.Context, owner string, req models.CreateVaultRequest) (models.VaultInfo, error)
	getVaultFn             func(ctx context.Context, vaultID string) (models.VaultInfo, error)
	listVaultsFn           func(ctx context.Context) ([]models.VaultInfo, error)
	createDateVaultFn      func(ctx context.Context, parentID string, req models.DateVaultRequest) (models.SubVaultResponse, error)
	createDailyVaultFn     func(ctx context.Context, parentID string, day int64, accessCode string) (models.SubVaultResponse, error)
	createDailyVaultsFn    func(ctx context.Context, parentID string, days []int64, accessCode string) ([]models.SubVaultResponse, error)
	createNightVaultFn     func(ctx context.Context, parentID string, req models.NightVaultRequest) (models.SubVaultResponse, error)
	setNightAvailabilityFn func(ctx context.Context, caller, parentID string, req models.AvailabilityRequest) error
	subVaultsFn            func(ctx context.Context, parentID string, kind models.SubVaultKind) ([]models.SubVaultRecord, error)
}

func (m *mockRegistryService) CreateVault(ctx context.Context, owner string, req models.CreateVaultRequest) (models.VaultInfo, error) {
	if m.createVaultFn != nil {
		return m.createVaultFn(ctx, owner, req)
	}
	return models.VaultInfo{}, nil
}

func (m *mockRegistryService) GetVault(ctx context.Context, vaultID string) (models.VaultInfo, error) {
	if m.getVaultFn != nil {
		return m.getVaultFn(ctx, vaultID)
	}
	return models.VaultInfo{}, nil
}

func (m *mockRegistryService) ListVaults(ctx context.Context) ([]models.VaultInfo, error) {
	if m.listVaultsFn != nil {
		return m.listVaultsFn(ctx)
	}
	return nil, nil
}

func (m *mockRegistryService) GetOrCreateDateVault(ctx context.Context, parentID string, req models.DateVaultRequest) (models.SubVaultResponse, error) {
	if m.createDateVaultFn != nil {
		return m.createDateVaultFn(ctx, parentID, req)
	}
	return models.SubVaultResponse{}, nil
}

func (m *mockRegistryService) GetOrCreateDailyVault(ctx context.Context, parentID string, day int64, accessCode string) (models.SubVaultResponse, error) {
	if m.createDailyVaultFn != nil {
		return m.createDailyVaultFn(ctx, parentID, day, accessCode)
	}
	return models.SubVaultResponse{}, nil
}

func (m *mockRegistryService) CreateDailyVaults(ctx context.Context, parentID string, days []int64, accessCode string) ([]models.SubVaultResponse, error) {
	if m.createDailyVaultsFn != nil {
		return m.createDailyVaultsFn(ctx, parentID, days, accessCode)
	}
	return nil, nil
}

func (m *mockRegistryService) GetOrCreateNightVault(ctx context.Context, parentID string, req models.NightVaultRequest) (models.SubVaultResponse, error) {
	if m.createNightVaultFn != nil {
		return m.createNightVaultFn(ctx, parentID, req)
	}
	return models.SubVaultResponse{}, nil
}

func (m *mockRegistryService) SetNightAvailability(ctx context.Context, caller, parentID string, req models.AvailabilityRequest) error {
	if m.setNightAvailabilityFn != nil {
		return m.setNightAvailabilityFn(ctx, caller, parentID, req)
	}
	return nil
}

func (m *mockRegistryService) SubVaults(ctx context.Context, parentID string, kind models.SubVaultKind) ([]models.SubVaultRecord, error) {
	if m.subVaultsFn != nil {
		return m.subVaultsFn(ctx, parentID, kind)
	}
	return nil, nil
}

// serveAuthed routes req through the full router with a bearer token the
// default mockAuthService resolves to account "acc-1".
func serveAuthed(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// Vault CRUD
// ─────────────────────────────────────────────

func TestCreateVaultRoute(t *testing.T) {
	reg := &mockRegistryService{
		createVaultFn: func(_ context.Context, owner string, req models.CreateVaultRequest) (models.VaultInfo, error) {
			assert.Equal(t, "acc-1", owner)
			assert.Equal(t, "APT-1", req.VaultID)
			return models.VaultInfo{VaultID: req.VaultID, Owner: owner, Address: "escrow-1"}, nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPost, "/api/vaults", `{"vault_id":"APT-1","daily_base_price":1000,"access_code":"HOTEL123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var info models.VaultInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "escrow-1", info.Address)
}

func TestCreateVaultRoute_Duplicate(t *testing.T) {
	reg := &mockRegistryService{
		createVaultFn: func(_ context.Context, _ string, _ models.CreateVaultRequest) (models.VaultInfo, error) {
			return models.VaultInfo{}, registry.ErrVaultIDExists
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPost, "/api/vaults", `{"vault_id":"APT-1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateVaultRoute_Unauthorized(t *testing.T) {
	h := newTestHandler(t, &service.Services{RegistryService: &mockRegistryService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/vaults", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetVaultRoute_NotFound(t *testing.T) {
	reg := &mockRegistryService{
		getVaultFn: func(_ context.Context, vaultID string) (models.VaultInfo, error) {
			assert.Equal(t, "APT-9", vaultID)
			return models.VaultInfo{}, registry.ErrVaultNotFound
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodGet, "/api/vaults/APT-9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// Sub-vault routes
// ─────────────────────────────────────────────

func TestCreateDateVaultRoute(t *testing.T) {
	reg := &mockRegistryService{
		createDateVaultFn: func(_ context.Context, parentID string, req models.DateVaultRequest) (models.SubVaultResponse, error) {
			assert.Equal(t, "APT-1", parentID)
			assert.Equal(t, int64(1000), req.CheckIn)
			return models.SubVaultResponse{SubVaultID: "APT-1-DATE-1000-2000", Created: true}, nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPost, "/api/vaults/APT-1/dates", `{"check_in":1000,"check_out":2000}`)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateDateVaultRoute_ExistingReturnsOK(t *testing.T) {
	reg := &mockRegistryService{
		createDateVaultFn: func(_ context.Context, _ string, _ models.DateVaultRequest) (models.SubVaultResponse, error) {
			return models.SubVaultResponse{SubVaultID: "APT-1-DATE-1000-2000", Created: false}, nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPost, "/api/vaults/APT-1/dates", `{"check_in":1000,"check_out":2000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateDailyVaultsRoute_BulkAndSingle(t *testing.T) {
	reg := &mockRegistryService{
		createDailyVaultFn: func(_ context.Context, _ string, day int64, _ string) (models.SubVaultResponse, error) {
			assert.Equal(t, int64(86400), day)
			return models.SubVaultResponse{Created: true}, nil
		},
		createDailyVaultsFn: func(_ context.Context, _ string, days []int64, _ string) ([]models.SubVaultResponse, error) {
			assert.Len(t, days, 2)
			return []models.SubVaultResponse{{Created: true}, {Created: true}}, nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPost, "/api/vaults/APT-1/days", `{"day":86400,"access_code":"HOTEL123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serveAuthed(t, h, http.MethodPost, "/api/vaults/APT-1/days", `{"days":[86400,172800],"access_code":"HOTEL123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSetAvailabilityRoute(t *testing.T) {
	reg := &mockRegistryService{
		setNightAvailabilityFn: func(_ context.Context, caller, parentID string, req models.AvailabilityRequest) error {
			assert.Equal(t, "acc-1", caller)
			assert.Equal(t, "APT-1", parentID)
			assert.Equal(t, int64(10), req.Start)
			assert.Equal(t, int64(20), req.End)
			assert.True(t, req.Available)
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodPut, "/api/vaults/APT-1/availability", `{"start":10,"end":20,"available":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListSubVaultsRoute(t *testing.T) {
	reg := &mockRegistryService{
		subVaultsFn: func(_ context.Context, parentID string, kind models.SubVaultKind) ([]models.SubVaultRecord, error) {
			assert.Equal(t, "APT-1", parentID)
			assert.Equal(t, models.SubVaultNight, kind)
			return []models.SubVaultRecord{{SubVaultID: "APT-1-NIGHT-5"}}, nil
		},
	}
	h := newTestHandler(t, &service.Services{RegistryService: reg})

	rec := serveAuthed(t, h, http.MethodGet, "/api/vaults/APT-1/subvaults/nights", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.SubVaultRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)

	rec = serveAuthed(t, h, http.MethodGet, "/api/vaults/APT-1/subvaults/bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
