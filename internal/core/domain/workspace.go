package domain

import "time"

// Workspace identifies one shop tenant known to this client. Each workspace is backed by
// its own remote-authoritative record set in the shop cloud, located by CompanyCode.
type Workspace struct {
	WorkspaceID    string     `json:"workspaceID"`    // Primary key (UUID), immutable once created
	Name           string     `json:"name"`           // User-defined shop name
	ShopType       string     `json:"shopType"`       // e.g. "RETAIL", "RESTAURANT"
	Currency       string     `json:"currency"`       // ISO 4217 code used by this shop
	CompanyCode    string     `json:"companyCode"`    // Credential-adjacent join code; mask before display
	LogoURL        string     `json:"logoURL"`        // Optional logo image reference
	IsDefault      bool       `json:"isDefault"`      // At most one workspace may carry this flag
	CreatedAt      time.Time  `json:"createdAt"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"` // Bumped whenever the workspace becomes current
	LastSyncAt     *time.Time `json:"lastSyncAt"`     // Nil until the first successful sync
}

// WorkspacePatch carries the mutable descriptive fields of a workspace. Nil fields are
// left unchanged.
type WorkspacePatch struct {
	Name     *string `json:"name"`
	ShopType *string `json:"shopType"`
	Currency *string `json:"currency"`
	LogoURL  *string `json:"logoURL"`
}

// RegistryState is the full durable registry document: every known workspace plus the
// pointer to the current one. It is persisted and reloaded as a single unit.
type RegistryState struct {
	Workspaces []Workspace `json:"workspaces"`
	CurrentID  *string     `json:"currentID"` // Nil when no workspace has been selected yet
}

// RemoveResult reports the outcome of removing a workspace from the registry.
// DefaultCleared is true when the removed workspace was the default; no other workspace
// is promoted automatically, so the caller must decide on a new default.
type RemoveResult struct {
	RemovedID      string `json:"removedID"`
	DefaultCleared bool   `json:"defaultCleared"`
}
