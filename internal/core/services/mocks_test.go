package services_test

import (
	"context"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// --- Mock RegistryDocumentStore ---

// MockRegistryStore is an in-memory registry document store. SaveFn/LoadFn can be set to
// inject failures; otherwise it behaves like an empty, always-succeeding store.
type MockRegistryStore struct {
	LoadFn    func(ctx context.Context) (*domain.RegistryState, error)
	SaveFn    func(ctx context.Context, state domain.RegistryState) error
	Saved     []domain.RegistryState
	SaveCalls int
}

func (m *MockRegistryStore) Load(ctx context.Context) (*domain.RegistryState, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockRegistryStore) Save(ctx context.Context, state domain.RegistryState) error {
	m.SaveCalls++
	if m.SaveFn != nil {
		return m.SaveFn(ctx, state)
	}
	m.Saved = append(m.Saved, state)
	return nil
}

// --- Mock CacheStoreFacade ---

// MockCacheStore implements the full cache facade with overridable behavior. Defaults are
// succeed-and-record so tests only wire the paths they care about.
type MockCacheStore struct {
	ClearAllFn              func(ctx context.Context) error
	AdoptFn                 func(ctx context.Context, snapshot domain.RecordSnapshot) error
	ApplyChangesFn          func(ctx context.Context, changes domain.RecordSnapshot) error
	EnqueueMutationFn       func(ctx context.Context, m domain.Mutation) error
	ListPendingMutationsFn  func(ctx context.Context) ([]domain.Mutation, error)
	MarkMutationsPushedFn   func(ctx context.Context, mutationIDs []string) error
	CountPendingMutationsFn func(ctx context.Context) (int, error)
	FindProductByIDFn       func(ctx context.Context, productID string) (*domain.Product, error)
	ListProductsFn          func(ctx context.Context, limit, offset int) ([]domain.Product, error)
	SaveProductFn           func(ctx context.Context, product domain.Product) error
	FindStaffByIDFn         func(ctx context.Context, staffID string) (*domain.Staff, error)
	CountsByTableFn         func(ctx context.Context) (map[string]int64, error)

	ClearAllCalls int
	AdoptCalls    int
	ApplyCalls    int
	Adopted       []domain.RecordSnapshot
	MarkedPushed  [][]string
}

func (m *MockCacheStore) ClearAll(ctx context.Context) error {
	m.ClearAllCalls++
	if m.ClearAllFn != nil {
		return m.ClearAllFn(ctx)
	}
	return nil
}

func (m *MockCacheStore) Adopt(ctx context.Context, snapshot domain.RecordSnapshot) error {
	m.AdoptCalls++
	if m.AdoptFn != nil {
		return m.AdoptFn(ctx, snapshot)
	}
	m.Adopted = append(m.Adopted, snapshot)
	return nil
}

func (m *MockCacheStore) ApplyChanges(ctx context.Context, changes domain.RecordSnapshot) error {
	m.ApplyCalls++
	if m.ApplyChangesFn != nil {
		return m.ApplyChangesFn(ctx, changes)
	}
	return nil
}

func (m *MockCacheStore) EnqueueMutation(ctx context.Context, mut domain.Mutation) error {
	if m.EnqueueMutationFn != nil {
		return m.EnqueueMutationFn(ctx, mut)
	}
	return nil
}

func (m *MockCacheStore) ListPendingMutations(ctx context.Context) ([]domain.Mutation, error) {
	if m.ListPendingMutationsFn != nil {
		return m.ListPendingMutationsFn(ctx)
	}
	return nil, nil
}

func (m *MockCacheStore) MarkMutationsPushed(ctx context.Context, mutationIDs []string) error {
	m.MarkedPushed = append(m.MarkedPushed, mutationIDs)
	if m.MarkMutationsPushedFn != nil {
		return m.MarkMutationsPushedFn(ctx, mutationIDs)
	}
	return nil
}

func (m *MockCacheStore) CountPendingMutations(ctx context.Context) (int, error) {
	if m.CountPendingMutationsFn != nil {
		return m.CountPendingMutationsFn(ctx)
	}
	return 0, nil
}

func (m *MockCacheStore) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.FindProductByIDFn != nil {
		return m.FindProductByIDFn(ctx, productID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockCacheStore) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockCacheStore) SaveProduct(ctx context.Context, product domain.Product) error {
	if m.SaveProductFn != nil {
		return m.SaveProductFn(ctx, product)
	}
	return nil
}

func (m *MockCacheStore) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	if m.FindStaffByIDFn != nil {
		return m.FindStaffByIDFn(ctx, staffID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockCacheStore) TableNames() []string {
	return []string{"products", "orders", "customers", "staff"}
}

func (m *MockCacheStore) CountsByTable(ctx context.Context) (map[string]int64, error) {
	if m.CountsByTableFn != nil {
		return m.CountsByTableFn(ctx)
	}
	return map[string]int64{}, nil
}

// --- Mock RemoteShopStore ---

// MockRemoteStore fakes the shop cloud. FetchCalls/SubmitCalls count attempts so retry
// behavior can be asserted.
type MockRemoteStore struct {
	FetchFn     func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error)
	SubmitFn    func(ctx context.Context, companyCode string, mutations []domain.Mutation) (*domain.SubmitAck, error)
	FetchCalls  int
	SubmitCalls int
	Submitted   [][]domain.Mutation
}

func (m *MockRemoteStore) Fetch(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
	m.FetchCalls++
	if m.FetchFn != nil {
		return m.FetchFn(ctx, companyCode, since)
	}
	return &domain.RecordSnapshot{CompanyCode: companyCode, FetchedAt: time.Now(), Complete: since == nil}, nil
}

func (m *MockRemoteStore) Submit(ctx context.Context, companyCode string, mutations []domain.Mutation) (*domain.SubmitAck, error) {
	m.SubmitCalls++
	m.Submitted = append(m.Submitted, mutations)
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, companyCode, mutations)
	}
	ids := make([]string, len(mutations))
	for i, mut := range mutations {
		ids[i] = mut.MutationID
	}
	return &domain.SubmitAck{AppliedIDs: ids, ServerTime: time.Now()}, nil
}

// --- Mock SnapshotPuller ---

// MockPuller fakes the staging pull used by the switcher.
type MockPuller struct {
	PullFn    func(ctx context.Context, workspace domain.Workspace) (*domain.RecordSnapshot, error)
	PullCalls int
}

func (m *MockPuller) Pull(ctx context.Context, workspace domain.Workspace) (*domain.RecordSnapshot, error) {
	m.PullCalls++
	if m.PullFn != nil {
		return m.PullFn(ctx, workspace)
	}
	return &domain.RecordSnapshot{CompanyCode: workspace.CompanyCode, FetchedAt: time.Now(), Complete: true}, nil
}
