// Package asset exposes typed call sites for the backend's /asset endpoints.
//
// Each call builds one request.Descriptor and hands it to the Requester. The
// returned envelope and error are passed back exactly as the Requester
// produced them.
package asset

import (
	"context"
	"net/http"

	"github.com/okian/assetlens/internal/request"
)

// Endpoint paths.
const (
	PathDistribution       = "/asset/distribution"
	PathDistribution2      = "/asset/distribution2"
	PathDistribution3      = "/asset/distribution3"
	PathDistributionDetail = "/asset/distributionDetail"

	// ParamItemName selects the category for PathDistributionDetail.
	ParamItemName = "itemName"
)

// Requester is the shared request utility. *request.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, d request.Descriptor) (*request.Response, error)
}

// Client issues asset distribution queries.
type Client struct {
	r Requester
}

// New returns a Client backed by r.
func New(r Requester) *Client {
	return &Client{r: r}
}

// GetAssetDistribution queries the primary distribution.
func (c *Client) GetAssetDistribution(ctx context.Context) (*request.Response, error) {
	return c.r.Do(ctx, request.Descriptor{URL: PathDistribution, Method: http.MethodGet})
}

// GetAssetDistribution2 queries the second distribution set.
func (c *Client) GetAssetDistribution2(ctx context.Context) (*request.Response, error) {
	return c.r.Do(ctx, request.Descriptor{URL: PathDistribution2, Method: http.MethodGet})
}

// GetAssetDistribution3 queries the third distribution set.
func (c *Client) GetAssetDistribution3(ctx context.Context) (*request.Response, error) {
	return c.r.Do(ctx, request.Descriptor{URL: PathDistribution3, Method: http.MethodGet})
}

// GetAssetDistributionByItemName queries the breakdown of one category,
// normally one of Categories().
func (c *Client) GetAssetDistributionByItemName(ctx context.Context, itemName string) (*request.Response, error) {
	return c.r.Do(ctx, request.Descriptor{
		URL:    PathDistributionDetail,
		Method: http.MethodGet,
		Params: map[string]string{ParamItemName: itemName},
	})
}
