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
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/dto"
	"github.com/shoplite/pos_workspace_app/internal/handlers"
	"github.com/shoplite/pos_workspace_app/internal/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RegistryService ---
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}
func (m *MockRegistryService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockRegistryService) CurrentWorkspace(ctx context.Context) (*domain.Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockRegistryService) AddWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}
func (m *MockRegistryService) UpdateWorkspace(ctx context.Context, workspaceID string, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockRegistryService) RemoveWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemoveResult), args.Error(1)
}
func (m *MockRegistryService) SetDefaultWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}
func (m *MockRegistryService) SetCurrentWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}
func (m *MockRegistryService) TouchLastSync(ctx context.Context, workspaceID string, at time.Time) error {
	args := m.Called(ctx, workspaceID, at)
	return args.Error(0)
}
func (m *MockRegistryService) ResetRegistry(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock OnboardingService ---
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) CreateWorkspace(ctx context.Context, name, shopType, currency, logoURL string) (*domain.Workspace, error) {
	args := m.Called(ctx, name, shopType, currency, logoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockOnboardingService) JoinWorkspace(ctx context.Context, companyCode, name string) (*domain.Workspace, error) {
	args := m.Called(ctx, companyCode, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

// --- Mock SwitchService ---
type MockSwitchService struct {
	mock.Mock
}

func (m *MockSwitchService) RequestSwitch(ctx context.Context, targetID string) error {
	args := m.Called(ctx, targetID)
	return args.Error(0)
}
func (m *MockSwitchService) State() portssvc.SwitchState {
	args := m.Called()
	return args.Get(0).(portssvc.SwitchState)
}
func (m *MockSwitchService) TargetWorkspace() *domain.Workspace {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Workspace)
}
func (m *MockSwitchService) CurrentWorkspace(ctx context.Context) (*domain.Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockSwitchService) Blocked() bool {
	args := m.Called()
	return args.Bool(0)
}
func (m *MockSwitchService) AcknowledgeFailure() {
	m.Called()
}
func (m *MockSwitchService) DeleteWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemoveResult), args.Error(1)
}
func (m *MockSwitchService) SignOutAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite ---
type WorkspaceHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockRegistry   *MockRegistryService
	mockOnboarding *MockOnboardingService
	mockSwitch     *MockSwitchService
	jwtSecret      string
}

func (suite *WorkspaceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual device auth middleware
	suite.router.Use(middleware.DeviceAuthMiddleware(suite.jwtSecret))

	suite.mockRegistry = new(MockRegistryService)
	suite.mockOnboarding = new(MockOnboardingService)
	suite.mockSwitch = new(MockSwitchService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterWorkspaceRoutes(v1, suite.mockRegistry, suite.mockOnboarding, suite.mockSwitch)
}

// generateTestToken creates a device session token signed with the test secret.
func (suite *WorkspaceHandlerTestSuite) generateTestToken(deviceID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   deviceID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

// serve performs an authenticated request against the suite router.
func (suite *WorkspaceHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testWorkspace(name string) domain.Workspace {
	return domain.Workspace{
		WorkspaceID:    uuid.NewString(),
		Name:           name,
		ShopType:       "RETAIL",
		Currency:       "USD",
		CompanyCode:    "XQ9F3TZ8H7K2",
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

// --- Test Cases ---

func (suite *WorkspaceHandlerTestSuite) TestListWorkspaces_Success() {
	current := testWorkspace("Main Shop")
	other := testWorkspace("Second Shop")

	suite.mockRegistry.On("ListWorkspaces", mock.Anything).Return([]domain.Workspace{current, other}, nil).Once()
	suite.mockRegistry.On("CurrentWorkspace", mock.Anything).Return(&current, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/workspaces", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListWorkspacesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Workspaces, 2)
	suite.True(resp.Workspaces[0].IsCurrent)
	suite.False(resp.Workspaces[1].IsCurrent)
	// Company codes are masked in listings
	suite.Equal("••••••••H7K2", resp.Workspaces[0].CompanyCode)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *WorkspaceHandlerTestSuite) TestListWorkspaces_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/workspaces", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRegistry.AssertNotCalled(suite.T(), "ListWorkspaces", mock.Anything)
}

func (suite *WorkspaceHandlerTestSuite) TestGetCurrentWorkspace_NoneSelected() {
	suite.mockRegistry.On("CurrentWorkspace", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/workspaces/current", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *WorkspaceHandlerTestSuite) TestGetCurrentWorkspace_Success() {
	current := testWorkspace("Main Shop")
	suite.mockRegistry.On("CurrentWorkspace", mock.Anything).Return(&current, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/workspaces/current", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WorkspaceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(current.WorkspaceID, resp.WorkspaceID)
	suite.True(resp.IsCurrent)
}

func (suite *WorkspaceHandlerTestSuite) TestCreateWorkspace_Success() {
	created := testWorkspace("New Shop")
	created.IsDefault = true
	suite.mockOnboarding.On("CreateWorkspace", mock.Anything, "New Shop", "RETAIL", "USD", "").
		Return(&created, nil).Once()
	suite.mockRegistry.On("CurrentWorkspace", mock.Anything).Return(&created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/workspaces", dto.CreateWorkspaceRequest{
		Name:     "New Shop",
		ShopType: "RETAIL",
		Currency: "USD",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkspaceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.WorkspaceID, resp.WorkspaceID)
	suite.True(resp.IsDefault)
	suite.NotEqual(created.CompanyCode, resp.CompanyCode)
	suite.mockOnboarding.AssertExpectations(suite.T())
}

func (suite *WorkspaceHandlerTestSuite) TestCreateWorkspace_InvalidShopType() {
	w := suite.serve(http.MethodPost, "/api/v1/workspaces", dto.CreateWorkspaceRequest{
		Name:     "New Shop",
		ShopType: "BAKERY",
		Currency: "USD",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOnboarding.AssertNotCalled(suite.T(), "CreateWorkspace", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceHandlerTestSuite) TestRevealCompanyCode_ReturnsClearCode() {
	workspace := testWorkspace("Main Shop")
	suite.mockRegistry.On("FindWorkspaceByID", mock.Anything, workspace.WorkspaceID).
		Return(&workspace, nil).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/company-code", workspace.WorkspaceID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CompanyCodeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(workspace.CompanyCode, resp.CompanyCode)
}

func (suite *WorkspaceHandlerTestSuite) TestDeleteWorkspace_CurrentIsRejected() {
	workspaceID := uuid.NewString()
	suite.mockSwitch.On("DeleteWorkspace", mock.Anything, workspaceID).
		Return(nil, apperrors.ErrCannotRemoveCurrent).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/workspaces/"+workspaceID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSwitch.AssertExpectations(suite.T())
}

func (suite *WorkspaceHandlerTestSuite) TestDeleteWorkspace_Success() {
	workspaceID := uuid.NewString()
	suite.mockSwitch.On("DeleteWorkspace", mock.Anything, workspaceID).
		Return(&domain.RemoveResult{RemovedID: workspaceID, DefaultCleared: true}, nil).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/workspaces/"+workspaceID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RemoveWorkspaceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(workspaceID, resp.RemovedID)
	suite.True(resp.DefaultCleared)
}

func (suite *WorkspaceHandlerTestSuite) TestSetDefaultWorkspace_Success() {
	workspaceID := uuid.NewString()
	suite.mockRegistry.On("SetDefaultWorkspace", mock.Anything, workspaceID).Return(nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/workspaces/%s/default", workspaceID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *WorkspaceHandlerTestSuite) TestSetDefaultWorkspace_NotFound() {
	workspaceID := uuid.NewString()
	suite.mockRegistry.On("SetDefaultWorkspace", mock.Anything, workspaceID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/workspaces/%s/default", workspaceID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Suite ---
func TestWorkspaceHandler(t *testing.T) {
	suite.Run(t, new(WorkspaceHandlerTestSuite))
}
