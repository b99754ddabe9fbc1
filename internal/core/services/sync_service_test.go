package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SyncServiceTestSuite struct {
	suite.Suite
	registry   registrySvc
	mockCache  *MockCacheStore
	mockRemote *MockRemoteStore
	gate       *services.Gate
	workspace  domain.Workspace
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.registry = services.NewRegistryService(new(MockRegistryStore))
	suite.Require().NoError(suite.registry.Load(context.Background()))

	suite.mockCache = new(MockCacheStore)
	suite.mockRemote = new(MockRemoteStore)
	suite.gate = services.NewGate()

	suite.workspace = domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        "Corner Shop",
		ShopType:    "RETAIL",
		Currency:    "USD",
		CompanyCode: "CHARLIE23456",
	}
	// First add becomes current, which is what SyncCurrent operates on
	suite.Require().NoError(suite.registry.AddWorkspace(context.Background(), suite.workspace))
}

func (suite *SyncServiceTestSuite) newService(maxRetries int) portssvc.SyncSvcFacade {
	return services.NewSyncService(suite.registry, suite.mockCache, suite.mockRemote, suite.gate, maxRetries, time.Millisecond)
}

func (suite *SyncServiceTestSuite) newMutation(occurredAt time.Time) domain.Mutation {
	return domain.Mutation{
		MutationID: uuid.NewString(),
		TableName:  "products",
		Op:         domain.MutationUpsert,
		RecordID:   uuid.NewString(),
		Payload:    json.RawMessage(`{}`),
		OccurredAt: occurredAt,
	}
}

// --- Pull Tests ---

func (suite *SyncServiceTestSuite) TestPull_StagesSnapshot() {
	ctx := context.Background()
	svc := suite.newService(0)
	expected := &domain.RecordSnapshot{
		CompanyCode: suite.workspace.CompanyCode,
		FetchedAt:   time.Now(),
		Complete:    true,
		Products:    []domain.Product{{ProductID: uuid.NewString(), Name: "Beans", Price: decimal.NewFromInt(3)}},
	}
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		suite.Equal(suite.workspace.CompanyCode, companyCode)
		suite.Nil(since)
		return expected, nil
	}

	snapshot, err := svc.Pull(ctx, suite.workspace)

	suite.Require().NoError(err)
	suite.Equal(expected, snapshot)
	// Staging must not touch the cache
	suite.Zero(suite.mockCache.AdoptCalls)
	suite.Zero(suite.mockCache.ApplyCalls)
}

func (suite *SyncServiceTestSuite) TestPull_RetriesTransientFailures() {
	ctx := context.Background()
	svc := suite.newService(3)
	attempts := 0
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		attempts++
		if attempts < 3 {
			return nil, apperrors.ErrRemoteUnreachable
		}
		return &domain.RecordSnapshot{CompanyCode: companyCode, FetchedAt: time.Now(), Complete: true}, nil
	}

	snapshot, err := svc.Pull(ctx, suite.workspace)

	suite.Require().NoError(err)
	suite.NotNil(snapshot)
	suite.Equal(3, attempts)
}

func (suite *SyncServiceTestSuite) TestPull_DoesNotRetryRejection() {
	ctx := context.Background()
	svc := suite.newService(3)
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		return nil, apperrors.ErrRemoteRejected
	}

	_, err := svc.Pull(ctx, suite.workspace)

	suite.ErrorIs(err, apperrors.ErrRemoteRejected)
	suite.Equal(1, suite.mockRemote.FetchCalls)
}

func (suite *SyncServiceTestSuite) TestPull_ExhaustsRetries() {
	ctx := context.Background()
	svc := suite.newService(2)
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		return nil, apperrors.ErrRemoteUnreachable
	}

	_, err := svc.Pull(ctx, suite.workspace)

	suite.ErrorIs(err, apperrors.ErrRemoteUnreachable)
	// Initial attempt plus two retries
	suite.Equal(3, suite.mockRemote.FetchCalls)
}

// --- Push Tests ---

func (suite *SyncServiceTestSuite) TestPush_DedupesAndOrdersByOccurrence() {
	ctx := context.Background()
	svc := suite.newService(0)
	now := time.Now()
	older := suite.newMutation(now.Add(-time.Minute))
	newer := suite.newMutation(now)

	// Out of order and with a replay of the older mutation
	_, err := svc.Push(ctx, suite.workspace, []domain.Mutation{newer, older, older})

	suite.Require().NoError(err)
	suite.Require().Len(suite.mockRemote.Submitted, 1)
	batch := suite.mockRemote.Submitted[0]
	suite.Require().Len(batch, 2)
	suite.Equal(older.MutationID, batch[0].MutationID)
	suite.Equal(newer.MutationID, batch[1].MutationID)
}

func (suite *SyncServiceTestSuite) TestPush_EmptyBatchSkipsRemote() {
	ctx := context.Background()
	svc := suite.newService(0)

	ack, err := svc.Push(ctx, suite.workspace, nil)

	suite.Require().NoError(err)
	suite.NotNil(ack)
	suite.Zero(suite.mockRemote.SubmitCalls)
}

func (suite *SyncServiceTestSuite) TestPush_IsIdempotentAcrossResends() {
	ctx := context.Background()
	svc := suite.newService(0)
	m := suite.newMutation(time.Now())

	ack1, err := svc.Push(ctx, suite.workspace, []domain.Mutation{m})
	suite.Require().NoError(err)
	ack2, err := svc.Push(ctx, suite.workspace, []domain.Mutation{m})
	suite.Require().NoError(err)

	// The remote acks the same ID both times; resending is a no-op remotely
	suite.Equal(ack1.AppliedIDs, ack2.AppliedIDs)
}

// --- SyncCurrent Tests ---

func (suite *SyncServiceTestSuite) TestSyncCurrent_AppliesChangesAndDrainsOutbox() {
	ctx := context.Background()
	svc := suite.newService(0)
	fetchedAt := time.Now()
	pending := []domain.Mutation{suite.newMutation(time.Now())}

	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		return &domain.RecordSnapshot{
			CompanyCode: companyCode,
			FetchedAt:   fetchedAt,
			Products:    []domain.Product{{ProductID: uuid.NewString(), Name: "Beans", Price: decimal.NewFromInt(3)}},
		}, nil
	}
	suite.mockCache.ListPendingMutationsFn = func(ctx context.Context) ([]domain.Mutation, error) {
		return pending, nil
	}

	err := svc.SyncCurrent(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, suite.mockCache.ApplyCalls)
	suite.Equal(1, suite.mockRemote.SubmitCalls)
	suite.Require().Len(suite.mockCache.MarkedPushed, 1)
	suite.Equal([]string{pending[0].MutationID}, suite.mockCache.MarkedPushed[0])

	after, err := suite.registry.FindWorkspaceByID(ctx, suite.workspace.WorkspaceID)
	suite.Require().NoError(err)
	suite.Require().NotNil(after.LastSyncAt)
	suite.True(after.LastSyncAt.Equal(fetchedAt))
}

func (suite *SyncServiceTestSuite) TestSyncCurrent_UsesLastSyncAsCursor() {
	ctx := context.Background()
	svc := suite.newService(0)
	cursor := time.Now().Add(-time.Hour)
	suite.Require().NoError(suite.registry.TouchLastSync(ctx, suite.workspace.WorkspaceID, cursor))

	var gotSince *time.Time
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		gotSince = since
		return &domain.RecordSnapshot{CompanyCode: companyCode, FetchedAt: time.Now()}, nil
	}

	suite.Require().NoError(svc.SyncCurrent(ctx))

	suite.Require().NotNil(gotSince)
	suite.True(gotSince.Equal(cursor))
}

func (suite *SyncServiceTestSuite) TestSyncCurrent_NoCurrentWorkspace() {
	ctx := context.Background()
	svc := suite.newService(0)
	suite.Require().NoError(suite.registry.ResetRegistry(ctx))

	err := svc.SyncCurrent(ctx)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Zero(suite.mockRemote.FetchCalls)
}

func (suite *SyncServiceTestSuite) TestSyncCurrent_SkipsWhileGateHeld() {
	ctx := context.Background()
	svc := suite.newService(0)

	suite.Require().NoError(suite.gate.Acquire(ctx))
	defer suite.gate.Release()

	err := svc.SyncCurrent(ctx)

	suite.ErrorIs(err, apperrors.ErrSwitchInProgress)
	suite.Zero(suite.mockRemote.FetchCalls)
}

func (suite *SyncServiceTestSuite) TestSyncCurrent_ApplyFailureLeavesCursorUntouched() {
	ctx := context.Background()
	svc := suite.newService(0)
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		return &domain.RecordSnapshot{
			CompanyCode: companyCode,
			FetchedAt:   time.Now(),
			Products:    []domain.Product{{ProductID: uuid.NewString(), Name: "Beans", Price: decimal.NewFromInt(3)}},
		}, nil
	}
	suite.mockCache.ApplyChangesFn = func(ctx context.Context, changes domain.RecordSnapshot) error {
		return assert.AnError
	}

	err := svc.SyncCurrent(ctx)

	suite.Require().Error(err)
	after, ferr := suite.registry.FindWorkspaceByID(ctx, suite.workspace.WorkspaceID)
	suite.Require().NoError(ferr)
	suite.Nil(after.LastSyncAt)
}

func (suite *SyncServiceTestSuite) TestSyncCurrent_EmptyChangeSetSkipsApply() {
	ctx := context.Background()
	svc := suite.newService(0)
	suite.mockRemote.FetchFn = func(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
		return &domain.RecordSnapshot{CompanyCode: companyCode, FetchedAt: time.Now()}, nil
	}

	suite.Require().NoError(svc.SyncCurrent(ctx))

	suite.Zero(suite.mockCache.ApplyCalls)
}

// --- Status Tests ---

func (suite *SyncServiceTestSuite) TestStatus_ReportsPendingAndCounts() {
	ctx := context.Background()
	svc := suite.newService(0)
	suite.mockCache.CountPendingMutationsFn = func(ctx context.Context) (int, error) { return 4, nil }
	suite.mockCache.CountsByTableFn = func(ctx context.Context) (map[string]int64, error) {
		return map[string]int64{"products": 10, "orders": 2, "customers": 0, "staff": 3}, nil
	}

	status, err := svc.Status(ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.workspace.WorkspaceID, status.WorkspaceID)
	suite.Equal(4, status.PendingMutations)
	suite.Equal(int64(10), status.CachedRecords["products"])
}

// --- Run Suite ---
func TestSyncService(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
