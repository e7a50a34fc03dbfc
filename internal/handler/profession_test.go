package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/profession"
)

type mockProfessionService struct {
	mock.Mock
}

func (m *mockProfessionService) HandleJoin(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *mockProfessionService) HandleLeave(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *mockProfessionService) AwardXP(ctx context.Context, playerID, professionName string, amount int64, source string) (domain.XPAwardResult, error) {
	args := m.Called(ctx, playerID, professionName, amount, source)
	return args.Get(0).(domain.XPAwardResult), args.Error(1)
}

func (m *mockProfessionService) GetAllStats(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionSnapshot, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Profession]domain.ProfessionSnapshot), args.Error(1)
}

func (m *mockProfessionService) GetProgress(ctx context.Context, playerID, professionName string) (profession.ProfessionProgress, error) {
	args := m.Called(ctx, playerID, professionName)
	return args.Get(0).(profession.ProfessionProgress), args.Error(1)
}

func (m *mockProfessionService) SetXP(ctx context.Context, playerID, professionName string, xp int64) error {
	args := m.Called(ctx, playerID, professionName, xp)
	return args.Error(0)
}

func (m *mockProfessionService) SetLevel(ctx context.Context, playerID, professionName string, level int) error {
	args := m.Called(ctx, playerID, professionName, level)
	return args.Error(0)
}

func (m *mockProfessionService) ResetProfession(ctx context.Context, playerID, professionName string) error {
	args := m.Called(ctx, playerID, professionName)
	return args.Error(0)
}

func (m *mockProfessionService) ResetAll(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *mockProfessionService) Flush(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProfessionService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestHandleAwardXP(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	svc.On("AwardXP", mock.Anything, "p1", "mining", int64(50), "ore").Return(domain.XPAwardResult{
		Profession: domain.ProfessionMining,
		XPGained:   50,
		NewXP:      50,
		OldLevel:   1,
		NewLevel:   1,
	}, nil)

	rec := postJSON(t, h.HandleAwardXP, AwardXPRequest{
		PlayerID: "p1", Profession: "mining", Amount: 50, Source: "ore",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.XPAwardResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, int64(50), result.XPGained)
	svc.AssertExpectations(t)
}

func TestHandleAwardXP_ValidationRejectsBadInput(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	cases := []AwardXPRequest{
		{Profession: "mining", Amount: 50},                      // missing player
		{PlayerID: "p1", Profession: "alchemy", Amount: 50},     // unknown profession
		{PlayerID: "p1", Profession: "mining", Amount: 0},       // non-positive amount
		{PlayerID: "p1", Profession: "mining", Amount: -5},      // negative amount
	}
	for _, tc := range cases {
		rec := postJSON(t, h.HandleAwardXP, tc)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "request %+v", tc)
	}

	svc.AssertNotCalled(t, "AwardXP")
}

func TestHandleAwardXP_UnknownProfessionFromService(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	svc.On("AwardXP", mock.Anything, "p1", "mining", int64(5), "").
		Return(domain.XPAwardResult{}, domain.ErrUnknownProfession)

	rec := postJSON(t, h.HandleAwardXP, AwardXPRequest{PlayerID: "p1", Profession: "mining", Amount: 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetStats(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	svc.On("GetAllStats", mock.Anything, "p1").Return(map[domain.Profession]domain.ProfessionSnapshot{
		domain.ProfessionCombat: {Profession: domain.ProfessionCombat, XP: 100, Level: 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?player_id=p1", nil)
	rec := httptest.NewRecorder()
	h.HandleGetStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "p1", resp.PlayerID)
	assert.Equal(t, 2, resp.Stats[domain.ProfessionCombat].Level)
}

func TestHandleGetStats_MissingParam(t *testing.T) {
	h := NewProfessionHandler(new(mockProfessionService))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleGetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetStats_UntrackedPlayer(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	svc.On("GetAllStats", mock.Anything, "ghost").Return(nil, domain.ErrPlayerNotTracked)

	req := httptest.NewRequest(http.MethodGet, "/?player_id=ghost", nil)
	rec := httptest.NewRecorder()
	h.HandleGetStats(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLeave_RunsCleanups(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewProfessionHandler(svc)

	svc.On("HandleLeave", mock.Anything, "p1").Return(nil)

	var cleaned []string
	handlerFunc := h.HandleLeave(func(playerID string) {
		cleaned = append(cleaned, playerID)
	})

	rec := postJSON(t, handlerFunc, PlayerSessionRequest{PlayerID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1"}, cleaned)
}

func TestHandleDeath(t *testing.T) {
	penalty := new(mockPenaltyService)
	h := NewDeathHandler(penalty)

	penalty.On("OnDeath", mock.Anything, "p1").Return(domain.DeathPenaltyResult{
		PlayerID:       "p1",
		DeathCount:     2,
		PercentApplied: 0.13,
		Losses: []domain.ProfessionXPLoss{
			{Profession: domain.ProfessionCombat, XPLost: 39, NewXP: 261},
		},
	}, nil)

	rec := postJSON(t, h.HandleDeath, DeathRequest{PlayerID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.DeathPenaltyResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 2, result.DeathCount)
	assert.InDelta(t, 0.13, result.PercentApplied, 1e-9)
}

type mockPenaltyService struct {
	mock.Mock
}

func (m *mockPenaltyService) OnDeath(ctx context.Context, playerID string) (domain.DeathPenaltyResult, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(domain.DeathPenaltyResult), args.Error(1)
}

func TestHandleAdminReset_AllWhenProfessionOmitted(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewAdminHandler(svc)

	svc.On("ResetAll", mock.Anything, "p1").Return(nil)

	rec := postJSON(t, h.HandleReset, ResetRequest{PlayerID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleAdminSetLevel(t *testing.T) {
	svc := new(mockProfessionService)
	h := NewAdminHandler(svc)

	svc.On("SetLevel", mock.Anything, "p1", "logging", 45).Return(nil)

	rec := postJSON(t, h.HandleSetLevel, SetLevelRequest{PlayerID: "p1", Profession: "logging", Level: 45})
	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
