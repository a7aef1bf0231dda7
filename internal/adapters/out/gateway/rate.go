package gateway

import (
	"context"

	"console/internal/core/ports"
)

// RateClient implements ports.RateGateway.
type RateClient struct {
	client *Client
}

func NewRateClient(client *Client) *RateClient {
	return &RateClient{client: client}
}

func (r *RateClient) Calculate(ctx context.Context, req ports.RateRequest) (ports.RateResponse, error) {
	var resp ports.RateResponse
	if err := r.client.postJSON(ctx, "/api/v1/rates/calculate", req, &resp); err != nil {
		return ports.RateResponse{}, err
	}
	return resp, nil
}
