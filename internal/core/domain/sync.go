package domain

import (
	"encoding/json"
	"time"
)

// MutationOp is the kind of change carried by a Mutation.
type MutationOp string

const (
	MutationUpsert MutationOp = "UPSERT"
	MutationDelete MutationOp = "DELETE"
)

// Mutation is one locally originated change waiting to be pushed to the shop cloud.
// MutationID makes re-sends idempotent: the remote treats an already-applied ID as a
// no-op, and the push path dedupes before sending.
type Mutation struct {
	MutationID string          `db:"mutation_id" json:"mutationID"`
	TableName  string          `db:"table_name" json:"tableName"`
	Op         MutationOp      `db:"op" json:"op"`
	RecordID   string          `db:"record_id" json:"recordID"`
	Payload    json.RawMessage `db:"payload" json:"payload"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurredAt"` // LWW ordering key
}

// RecordSnapshot is a staged, not-yet-applied set of records pulled from the shop cloud.
// Complete snapshots carry the full record set and replace the cache wholesale; partial
// snapshots carry net-new changes since a cursor time and are applied in place.
type RecordSnapshot struct {
	CompanyCode string     `json:"companyCode"`
	FetchedAt   time.Time  `json:"fetchedAt"`
	Complete    bool       `json:"complete"`
	Products    []Product  `json:"products"`
	Orders      []Order    `json:"orders"`
	Customers   []Customer `json:"customers"`
	Staff       []Staff    `json:"staff"`
}

// RecordCount is the total number of records carried by the snapshot.
func (s *RecordSnapshot) RecordCount() int {
	return len(s.Products) + len(s.Orders) + len(s.Customers) + len(s.Staff)
}

// SubmitAck is the shop cloud's acknowledgment of a mutation batch. AppliedIDs lists the
// mutation IDs the remote accepted (including replays it ignored as no-ops).
type SubmitAck struct {
	AppliedIDs []string  `json:"appliedIDs"`
	ServerTime time.Time `json:"serverTime"` // Remote clock, the tiebreak authority for LWW
}

// SyncStatus summarizes the sync state of the current workspace for the UI.
type SyncStatus struct {
	WorkspaceID      string           `json:"workspaceID"`
	LastSyncAt       *time.Time       `json:"lastSyncAt"`
	PendingMutations int              `json:"pendingMutations"`
	CachedRecords    map[string]int64 `json:"cachedRecords"` // Row count per operational table
}
