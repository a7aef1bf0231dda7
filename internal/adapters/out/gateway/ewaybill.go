package gateway

import (
	"context"
	"net/url"

	"console/internal/core/ports"
)

// EwaybillClient implements ports.EwaybillGateway.
type EwaybillClient struct {
	client *Client
}

func NewEwaybillClient(client *Client) *EwaybillClient {
	return &EwaybillClient{client: client}
}

func (e *EwaybillClient) Lookup(ctx context.Context, billNumber string) (ports.EwaybillResponse, error) {
	var resp ports.EwaybillResponse
	path := "/api/v1/ewaybill/" + url.PathEscape(billNumber)
	if err := e.client.getJSON(ctx, path, nil, &resp); err != nil {
		return ports.EwaybillResponse{}, err
	}
	return resp, nil
}
