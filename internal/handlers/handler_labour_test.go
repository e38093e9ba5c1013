package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/handlers"
	"github.com/shopkhata/shopkhata-backend/internal/middleware"
)

// --- Mock LabourerService ---
type MockLabourerService struct {
	mock.Mock
}

func (m *MockLabourerService) CreateLabourer(ctx context.Context, creatorUserID string, req dto.CreateLabourerRequest) (*domain.Labourer, error) {
	args := m.Called(ctx, creatorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Labourer), args.Error(1)
}
func (m *MockLabourerService) GetLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error) {
	args := m.Called(ctx, labourerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Labourer), args.Error(1)
}
func (m *MockLabourerService) ListLabourers(ctx context.Context) ([]domain.Labourer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Labourer), args.Error(1)
}
func (m *MockLabourerService) UpdateLabourer(ctx context.Context, editorUserID string, labourerID string, req dto.UpdateLabourerRequest) (*domain.Labourer, error) {
	args := m.Called(ctx, editorUserID, labourerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Labourer), args.Error(1)
}
func (m *MockLabourerService) DeleteLabourer(ctx context.Context, editorUserID string, labourerID string) error {
	args := m.Called(ctx, editorUserID, labourerID)
	return args.Error(0)
}

var _ portssvc.LabourerSvcFacade = (*MockLabourerService)(nil)

// --- Mock DailyLedgerService ---
type MockDailyLedgerService struct {
	mock.Mock
}

func (m *MockDailyLedgerService) GetDailyView(ctx context.Context, day domain.CalendarDay) ([]domain.DailyLabourRow, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyLabourRow), args.Error(1)
}
func (m *MockDailyLedgerService) UpdateDailyView(ctx context.Context, editorUserID string, day domain.CalendarDay, updates []dto.DailyUpdateItem) ([]dto.DailyUpdateResult, error) {
	args := m.Called(ctx, editorUserID, day, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DailyUpdateResult), args.Error(1)
}

var _ portssvc.DailyLedgerSvcFacade = (*MockDailyLedgerService)(nil)

// --- Test Suite ---
type LabourHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockLabourerService *MockLabourerService
	mockDailyService    *MockDailyLedgerService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LabourHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "shopkhata-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LabourHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	if err := dto.RegisterValidations(); err != nil {
		suite.FailNow("Failed to register validations", err.Error())
	}

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLabourerService = new(MockLabourerService)
	suite.mockDailyService = new(MockDailyLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLabourRoutes(v1, suite.mockLabourerService, suite.mockDailyService)
}

// --- Test Cases ---

func (suite *LabourHandlerTestSuite) TestGetDailyView_Success() {
	requestingUserID := uuid.NewString()
	day, _ := domain.ParseCalendarDay("2024-03-11")
	settled, _ := domain.ParseCalendarDay("2024-02-29")

	rows := []domain.DailyLabourRow{
		{
			LabourerID:         uuid.NewString(),
			Name:               "Ramesh",
			DefaultDailyWage:   decimal.NewFromInt(500),
			Attendance:         decimal.NewFromInt(1),
			AmountPaid:         decimal.NewFromInt(200),
			LastSettlementDate: &settled,
		},
		{
			LabourerID:       uuid.NewString(),
			Name:             "Suresh",
			DefaultDailyWage: decimal.NewFromInt(450),
			Attendance:       decimal.Zero,
			AmountPaid:       decimal.Zero,
		},
	}

	suite.mockDailyService.On("GetDailyView",
		mock.AnythingOfType("*context.valueCtx"),
		day,
	).Return(rows, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/labour/daily?date=2024-03-11", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody []dto.DailyViewRow
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody, 2)
	suite.Equal(rows[0].LabourerID, responseBody[0].ID)
	suite.NotNil(responseBody[0].LastSettlementDate)
	suite.Equal("2024-02-29", *responseBody[0].LastSettlementDate)
	suite.Nil(responseBody[1].LastSettlementDate)

	suite.mockDailyService.AssertExpectations(suite.T())
}

func (suite *LabourHandlerTestSuite) TestGetDailyView_BadDate() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/labour/daily?date=11-03-2024", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDailyService.AssertNotCalled(suite.T(), "GetDailyView")
}

func (suite *LabourHandlerTestSuite) TestUpdateDailyView_Success() {
	requestingUserID := uuid.NewString()
	labourerID := uuid.NewString()
	day, _ := domain.ParseCalendarDay("2024-03-11")

	results := []dto.DailyUpdateResult{
		{ContactID: labourerID, Status: dto.DailyRowApplied},
	}

	suite.mockDailyService.On("UpdateDailyView",
		mock.AnythingOfType("*context.valueCtx"),
		requestingUserID,
		day,
		mock.MatchedBy(func(updates []dto.DailyUpdateItem) bool {
			return len(updates) == 1 && updates[0].ContactID == labourerID
		}),
	).Return(results, nil).Once()

	body := fmt.Sprintf(`{"date":"2024-03-11","updates":[{"contactId":%q,"attendance":1,"amount":200}]}`, labourerID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/labour/daily", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.UpdateDailyResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.True(responseBody.Success)
	suite.Len(responseBody.Results, 1)
	suite.Equal(dto.DailyRowApplied, responseBody.Results[0].Status)

	suite.mockDailyService.AssertExpectations(suite.T())
}

func (suite *LabourHandlerTestSuite) TestUpdateDailyView_FrozenPeriodConflict() {
	requestingUserID := uuid.NewString()
	labourerID := uuid.NewString()
	day, _ := domain.ParseCalendarDay("2024-02-15")

	suite.mockDailyService.On("UpdateDailyView",
		mock.AnythingOfType("*context.valueCtx"),
		requestingUserID,
		day,
		mock.Anything,
	).Return(nil, fmt.Errorf("day 2024-02-15 is settled for labourer %s: %w", labourerID, apperrors.ErrImmutablePeriod)).Once()

	body := fmt.Sprintf(`{"date":"2024-02-15","updates":[{"contactId":%q,"attendance":1,"amount":0}]}`, labourerID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/labour/daily", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockDailyService.AssertExpectations(suite.T())
}

func (suite *LabourHandlerTestSuite) TestUpdateDailyView_EmptyBatchRejected() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/labour/daily", bytes.NewBufferString(`{"date":"2024-03-11","updates":[]}`))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDailyService.AssertNotCalled(suite.T(), "UpdateDailyView")
}

func (suite *LabourHandlerTestSuite) TestCreateLabourer_Success() {
	requestingUserID := uuid.NewString()
	created := &domain.Labourer{
		LabourerID:       uuid.NewString(),
		Name:             "Ramesh",
		DefaultDailyWage: decimal.NewFromInt(500),
	}

	suite.mockLabourerService.On("CreateLabourer",
		mock.AnythingOfType("*context.valueCtx"),
		requestingUserID,
		mock.MatchedBy(func(req dto.CreateLabourerRequest) bool {
			return req.Name == "Ramesh"
		}),
	).Return(created, nil).Once()

	body := `{"name":"Ramesh","defaultDailyWage":500}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/labour", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.LabourerResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(created.LabourerID, responseBody.ID)

	suite.mockLabourerService.AssertExpectations(suite.T())
}

func (suite *LabourHandlerTestSuite) TestGetLabourer_NotFound() {
	labourerID := uuid.NewString()

	suite.mockLabourerService.On("GetLabourerByID",
		mock.AnythingOfType("*context.valueCtx"),
		labourerID,
	).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/labour/"+labourerID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLabourerService.AssertExpectations(suite.T())
}

func (suite *LabourHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/labour/daily?date=2024-03-11", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDailyService.AssertNotCalled(suite.T(), "GetDailyView")
}

func TestLabourHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LabourHandlerTestSuite))
}
