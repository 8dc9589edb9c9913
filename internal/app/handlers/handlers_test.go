package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/linemk/points-ledger/internal/app/handlers"
	"github.com/linemk/points-ledger/internal/domain/models"
	"github.com/linemk/points-ledger/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/points-ledger/internal/service"
	"github.com/stretchr/testify/assert"
)

// fakeAuthService — фиктивная реализация для тестирования.
type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, name, password string) (string, error) {
	return f.token, f.err
}

type fakePointsService struct {
	resp *service.HistoryResponse
	err  error
}

func (f *fakePointsService) GetUserPoints(ctx context.Context, userID int64, pageNum, pageSize int) (*service.HistoryResponse, error) {
	return f.resp, f.err
}

type fakeLatestService struct {
	transfers []*models.Transfer
}

func (f *fakeLatestService) GetLatestTransfers(ctx context.Context, userID int64, transferType, fetchSize int) []*models.Transfer {
	return f.transfers
}

type fakeTopService struct {
	users []service.TopUser
}

func (f *fakeTopService) GetTopBalanceUsers(ctx context.Context, fetchSize int) []service.TopUser {
	return f.users
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// withUserID кладет userID в контекст запроса, как это делает JWT-middleware
func withUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), jwtmiddleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestAuthHandler_Success(t *testing.T) {
	fakeSvc := &fakeAuthService{token: "test-token", err: nil}
	handler := handlers.AuthHandler(testLogger(), fakeSvc)

	reqBody := `{"username": "testuser", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/auth", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected status 200 OK")

	var resp struct {
		Token string `json:"token"`
	}
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err, "Response decoding should succeed")
	assert.Equal(t, "test-token", resp.Token, "Returned token should match fake token")
}

func TestAuthHandler_InvalidJSON(t *testing.T) {
	fakeSvc := &fakeAuthService{}
	handler := handlers.AuthHandler(testLogger(), fakeSvc)

	reqBody := `{"username": "testuser", "password":`
	req := httptest.NewRequest("POST", "/api/auth", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_ValidationError(t *testing.T) {
	fakeSvc := &fakeAuthService{}
	handler := handlers.AuthHandler(testLogger(), fakeSvc)

	// пароль короче минимума
	reqBody := `{"username": "testuser", "password": "short"}`
	req := httptest.NewRequest("POST", "/api/auth", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_LoginFailed(t *testing.T) {
	fakeSvc := &fakeAuthService{err: errors.New("invalid credentials")}
	handler := handlers.AuthHandler(testLogger(), fakeSvc)

	reqBody := `{"username": "testuser", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/auth", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPointsHandler_Success(t *testing.T) {
	fakeSvc := &fakePointsService{resp: &service.HistoryResponse{
		TotalCount: 1,
		Items: []service.DisplayRecord{
			{ID: 1, Sign: "+", Sum: 100, Balance: 100, DisplayType: "Initial Grant", Description: "Received 100 points"},
		},
	}}
	handler := handlers.PointsHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points?page=1&size=10", nil)
	req = withUserID(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp service.HistoryResponse
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "+", resp.Items[0].Sign)
}

func TestPointsHandler_Unauthorized(t *testing.T) {
	fakeSvc := &fakePointsService{}
	handler := handlers.PointsHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPointsHandler_BadPagination(t *testing.T) {
	fakeSvc := &fakePointsService{}
	handler := handlers.PointsHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points?page=0", nil)
	req = withUserID(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPointsHandler_ServiceError(t *testing.T) {
	fakeSvc := &fakePointsService{err: errors.New("db down")}
	handler := handlers.PointsHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points", nil)
	req = withUserID(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLatestHandler_Success(t *testing.T) {
	fakeSvc := &fakeLatestService{transfers: []*models.Transfer{
		{ID: 9, ToID: 1, Type: models.TransferTypeActivityCheckin, Sum: 1},
	}}
	handler := handlers.LatestHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points/latest?type=8&size=5", nil)
	req = withUserID(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []models.Transfer
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(9), resp[0].ID)
}

func TestTopHandler_Success(t *testing.T) {
	fakeSvc := &fakeTopService{users: []service.TopUser{
		{ID: 1, Name: "rich", Points: 9000, PointsDisplay: "9K"},
	}}
	handler := handlers.TopHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("GET", "/api/points/top?size=5", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []service.TopUser
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "9K", resp[0].PointsDisplay)
}
