package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
)

// ShopCloudClient talks to the shop cloud: the remote-authoritative record store keyed by
// company code. The wire format beyond these two endpoints is the cloud's concern.
type ShopCloudClient struct {
	client *resty.Client
}

// NewShopCloudClient creates a configured client for the shop cloud API.
func NewShopCloudClient(baseURL string, timeout time.Duration) *ShopCloudClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Shoplite-POS/1.0")

	return &ShopCloudClient{client: client}
}

// Ensure ShopCloudClient implements portsrepo.RemoteShopStore
var _ portsrepo.RemoteShopStore = (*ShopCloudClient)(nil)

// Fetch returns the record set for the company code. A nil since requests the full
// snapshot; otherwise only records changed after since come back.
func (c *ShopCloudClient) Fetch(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error) {
	var snapshot domain.RecordSnapshot

	req := c.client.R().
		SetContext(ctx).
		SetPathParam("companyCode", companyCode).
		SetResult(&snapshot)
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get("/v1/shops/{companyCode}/records")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnreachable, err)
	}
	if resp.IsError() {
		return nil, classifyStatus(resp.StatusCode())
	}

	snapshot.CompanyCode = companyCode
	snapshot.Complete = since == nil
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}
	return &snapshot, nil
}

// Submit sends locally originated mutations. The cloud ignores already-applied mutation
// IDs, which keeps re-sends idempotent.
func (c *ShopCloudClient) Submit(ctx context.Context, companyCode string, mutations []domain.Mutation) (*domain.SubmitAck, error) {
	var ack domain.SubmitAck

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("companyCode", companyCode).
		SetBody(map[string]any{"mutations": mutations}).
		SetResult(&ack).
		Post("/v1/shops/{companyCode}/mutations")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnreachable, err)
	}
	if resp.IsError() {
		return nil, classifyStatus(resp.StatusCode())
	}

	return &ack, nil
}

// classifyStatus maps HTTP failures onto the two-way error taxonomy: client-side
// refusals are terminal, everything else is transient.
func classifyStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: shop cloud returned status %d", apperrors.ErrRemoteRejected, status)
	default:
		return fmt.Errorf("%w: shop cloud returned status %d", apperrors.ErrRemoteUnreachable, status)
	}
}
