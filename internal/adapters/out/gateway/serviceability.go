package gateway

import (
	"context"

	"console/internal/core/ports"
)

// ServiceabilityClient implements ports.ServiceabilityGateway.
type ServiceabilityClient struct {
	client *Client
}

func NewServiceabilityClient(client *Client) *ServiceabilityClient {
	return &ServiceabilityClient{client: client}
}

func (s *ServiceabilityClient) Check(ctx context.Context, req ports.ServiceabilityRequest) (ports.ServiceabilityResponse, error) {
	var resp ports.ServiceabilityResponse
	if err := s.client.postJSON(ctx, "/api/v1/serviceability", req, &resp); err != nil {
		return ports.ServiceabilityResponse{}, err
	}
	return resp, nil
}
