package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/core/services"
	"github.com/shoplite/pos_workspace_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CatalogServiceTestSuite struct {
	suite.Suite
	mockCache *MockCacheStore
	service   portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockCache = new(MockCacheStore)
	suite.service = services.NewCatalogService(suite.mockCache)
}

// --- CreateProduct Tests ---

func (suite *CatalogServiceTestSuite) TestCreateProduct_AssignsIDAndTimestamp() {
	ctx := context.Background()
	var saved domain.Product
	suite.mockCache.SaveProductFn = func(ctx context.Context, product domain.Product) error {
		saved = product
		return nil
	}

	product, err := suite.service.CreateProduct(ctx, domain.Product{
		SKU:   "ESP-01",
		Name:  "Espresso",
		Price: decimal.NewFromInt(2),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.False(product.UpdatedAt.IsZero())
	suite.Equal(product.ProductID, saved.ProductID)
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_RejectsNegativePrice() {
	ctx := context.Background()

	_, err := suite.service.CreateProduct(ctx, domain.Product{
		SKU:   "BAD-01",
		Name:  "Bad Deal",
		Price: decimal.NewFromInt(-1),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_RequiresName() {
	ctx := context.Background()

	_, err := suite.service.CreateProduct(ctx, domain.Product{SKU: "X", Price: decimal.NewFromInt(1)})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListProducts Tests ---

func (suite *CatalogServiceTestSuite) TestListProducts_ClampsPaging() {
	ctx := context.Background()
	var gotLimit, gotOffset int
	suite.mockCache.ListProductsFn = func(ctx context.Context, limit, offset int) ([]domain.Product, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	_, err := suite.service.ListProducts(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.Equal(25, gotLimit)
	suite.Equal(0, gotOffset)
}

// --- VerifyStaffPIN Tests ---

func (suite *CatalogServiceTestSuite) TestVerifyStaffPIN_Success() {
	ctx := context.Background()
	hash, err := utils.HashStaffPIN("4821")
	suite.Require().NoError(err)
	staffID := uuid.NewString()
	suite.mockCache.FindStaffByIDFn = func(ctx context.Context, id string) (*domain.Staff, error) {
		return &domain.Staff{StaffID: id, Name: "Sam", Role: "CASHIER", PINHash: hash}, nil
	}

	staff, err := suite.service.VerifyStaffPIN(ctx, staffID, "4821")

	suite.Require().NoError(err)
	suite.Equal(staffID, staff.StaffID)
}

func (suite *CatalogServiceTestSuite) TestVerifyStaffPIN_WrongPIN() {
	ctx := context.Background()
	hash, err := utils.HashStaffPIN("4821")
	suite.Require().NoError(err)
	suite.mockCache.FindStaffByIDFn = func(ctx context.Context, id string) (*domain.Staff, error) {
		return &domain.Staff{StaffID: id, PINHash: hash}, nil
	}

	_, err = suite.service.VerifyStaffPIN(ctx, uuid.NewString(), "0000")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CatalogServiceTestSuite) TestVerifyStaffPIN_UnknownStaff() {
	ctx := context.Background()

	_, err := suite.service.VerifyStaffPIN(ctx, uuid.NewString(), "4821")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
