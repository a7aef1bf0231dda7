package gateway

import (
	"context"
	"net/url"
)

// CatalogClient implements ports.CatalogGateway.
type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

// serviceTypeEntry is one row of the service-type matrix.
type serviceTypeEntry struct {
	MatrixKey string `json:"matrixKey"`
}

func (c *CatalogClient) ServiceTypes(ctx context.Context, productType string) ([]string, error) {
	query := url.Values{}
	if productType != "" {
		query.Set("productType", productType)
	}

	var entries []serviceTypeEntry
	if err := c.client.getJSON(ctx, "/api/v1/service-types", query, &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.MatrixKey != "" {
			names = append(names, entry.MatrixKey)
		}
	}
	return names, nil
}
