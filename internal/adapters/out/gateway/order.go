package gateway

import (
	"context"
	"encoding/json"

	"console/internal/core/ports"
	"console/internal/pkg/errs"
)

// OrderClient implements ports.OrderGateway.
type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

func (o *OrderClient) Create(ctx context.Context, req ports.CreateOrderRequest) (ports.CreateOrderResult, error) {
	body, err := o.client.postRaw(ctx, "/api/v1/orders", req)
	if err != nil {
		return ports.CreateOrderResult{}, err
	}
	return DecodeCreateOrderResponse(body)
}

// wrappedOrderResponse is the newer creation envelope:
// {"status":"success","data":{"orderId":...,"shipments":[{"awbNumber":...}]}}.
type wrappedOrderResponse struct {
	Status string        `json:"status"`
	Data   orderResponse `json:"data"`
}

// orderResponse is the older flat shape, also reused as the data block of the
// wrapped one: {"id":...,"orderId":...,"shipments":[{"awbNumber":...}]}.
type orderResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	Shipments []struct {
		AWBNumber string `json:"awbNumber"`
	} `json:"shipments"`
}

// DecodeCreateOrderResponse extracts the order and AWB identifiers from
// either creation envelope the backend has been observed to send. Anything
// without a recognizable order identifier fails closed: a submission must
// never be reported as created on guesswork.
func DecodeCreateOrderResponse(body []byte) (ports.CreateOrderResult, error) {
	var wrapped wrappedOrderResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Status == "success" {
		if result, ok := wrapped.Data.result(); ok {
			return result, nil
		}
	}

	var flat orderResponse
	if err := json.Unmarshal(body, &flat); err == nil {
		if result, ok := flat.result(); ok {
			return result, nil
		}
	}

	return ports.CreateOrderResult{}, errs.NewRemoteError("order creation response was not understood", 0)
}

func (r orderResponse) result() (ports.CreateOrderResult, bool) {
	id := r.OrderID
	if id == "" {
		id = r.ID
	}
	if id == "" {
		return ports.CreateOrderResult{}, false
	}

	result := ports.CreateOrderResult{OrderID: id}
	if len(r.Shipments) > 0 {
		result.AWBNumber = r.Shipments[0].AWBNumber
	}
	return result, true
}
