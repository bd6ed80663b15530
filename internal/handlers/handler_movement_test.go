package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/handlers"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MovementService ---
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) CreateMovement(ctx context.Context, ownerID string, req dto.CreateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) GetMovementByID(ctx context.Context, ownerID string, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, ownerID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) ListMovements(ctx context.Context, ownerID string, params dto.ListMovementsParams) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, ownerID, params)
	var movements []domain.Movement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.Movement)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return movements, next, args.Error(2)
}
func (m *MockMovementService) UpdateMovement(ctx context.Context, ownerID string, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, ownerID, movementID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) DeleteMovement(ctx context.Context, ownerID string, movementID string) error {
	args := m.Called(ctx, ownerID, movementID)
	return args.Error(0)
}

var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Mock RecurrenceService ---
type MockRecurrenceService struct {
	mock.Mock
}

func (m *MockRecurrenceService) ExpandMovement(ctx context.Context, ownerID string, movementID string, horizon time.Time) (portssvc.ExpansionResult, error) {
	args := m.Called(ctx, ownerID, movementID, horizon)
	return args.Get(0).(portssvc.ExpansionResult), args.Error(1)
}
func (m *MockRecurrenceService) ExpandDue(ctx context.Context, horizon time.Time) (portssvc.ExpansionResult, error) {
	args := m.Called(ctx, horizon)
	return args.Get(0).(portssvc.ExpansionResult), args.Error(1)
}

var _ portssvc.RecurrenceSvcFacade = (*MockRecurrenceService)(nil)

// --- Test Suite ---
type MovementHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockMovement   *MockMovementService
	mockRecurrence *MockRecurrenceService
	jwtSecret      string
	ownerID        string
}

func (suite *MovementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "grana-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.ownerID = uuid.NewString()

	suite.mockMovement = new(MockMovementService)
	suite.mockRecurrence = new(MockRecurrenceService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Movement:   suite.mockMovement,
		Recurrence: suite.mockRecurrence,
	})
}

func (suite *MovementHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.ownerID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_Success() {
	accountID := uuid.NewString()
	movementID := uuid.NewString()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMovement.On("CreateMovement",
		mock.Anything,
		suite.ownerID,
		mock.MatchedBy(func(req dto.CreateMovementRequest) bool {
			return req.AccountID == accountID && req.Description == "Groceries"
		}),
	).Return(&domain.Movement{
		MovementID:  movementID,
		AccountID:   accountID,
		OwnerID:     suite.ownerID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(120),
		Date:        date,
		Kind:        domain.Expense,
		Origin:      domain.OriginManual,
		Competence:  "2025-03",
	}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements", gin.H{
		"accountID":   accountID,
		"description": "Groceries",
		"amount":      "120",
		"date":        date.Format(time.RFC3339),
		"kind":        "EXPENSE",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(movementID, resp.MovementID)
	suite.Equal("2025-03", resp.Competence)
	suite.mockMovement.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_ValidationError() {
	accountID := uuid.NewString()
	suite.mockMovement.On("CreateMovement", mock.Anything, suite.ownerID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements", gin.H{
		"accountID":   accountID,
		"description": "Groceries",
		"amount":      "-5",
		"date":        time.Now().Format(time.RFC3339),
		"kind":        "EXPENSE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestGetMovement_NotFound() {
	movementID := uuid.NewString()
	suite.mockMovement.On("GetMovementByID", mock.Anything, suite.ownerID, movementID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/movements/"+movementID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MovementHandlerTestSuite) TestExpandMovement_DefaultHorizon() {
	movementID := uuid.NewString()
	suite.mockRecurrence.On("ExpandMovement",
		mock.Anything,
		suite.ownerID,
		movementID,
		mock.MatchedBy(func(horizon time.Time) bool {
			// Default horizon is three months out
			return horizon.After(time.Now().AddDate(0, 2, 20)) && horizon.Before(time.Now().AddDate(0, 3, 10))
		}),
	).Return(portssvc.ExpansionResult{Generated: 2, Skipped: 1}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements/"+movementID+"/expand", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExpansionResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Generated)
	suite.Equal(1, resp.Skipped)
	suite.mockRecurrence.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestExpandMovement_NotRecurring() {
	movementID := uuid.NewString()
	suite.mockRecurrence.On("ExpandMovement", mock.Anything, suite.ownerID, movementID, mock.Anything).
		Return(portssvc.ExpansionResult{}, apperrors.ErrValidation).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements/"+movementID+"/expand", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/movements", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMovement.AssertNotCalled(suite.T(), "ListMovements")
}

func TestMovementHandler(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
