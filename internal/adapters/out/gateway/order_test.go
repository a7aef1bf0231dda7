package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"console/internal/adapters/out/gateway"
	"console/internal/core/ports"
	"console/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateOrderResponse_WrappedEnvelope(t *testing.T) {
	body := []byte(`{"status":"success","data":{"orderId":"OD1","shipments":[{"awbNumber":"AWB1"}]}}`)

	result, err := gateway.DecodeCreateOrderResponse(body)
	require.NoError(t, err)
	assert.Equal(t, ports.CreateOrderResult{OrderID: "OD1", AWBNumber: "AWB1"}, result)
}

func TestDecodeCreateOrderResponse_FlatEnvelope(t *testing.T) {
	body := []byte(`{"id":"x","orderId":"OD2","shipments":[{"awbNumber":"AWB2"}]}`)

	result, err := gateway.DecodeCreateOrderResponse(body)
	require.NoError(t, err)
	assert.Equal(t, ports.CreateOrderResult{OrderID: "OD2", AWBNumber: "AWB2"}, result)
}

func TestDecodeCreateOrderResponse_FlatEnvelopeFallsBackToID(t *testing.T) {
	body := []byte(`{"id":"OD3","shipments":[]}`)

	result, err := gateway.DecodeCreateOrderResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "OD3", result.OrderID)
	assert.Empty(t, result.AWBNumber)
}

func TestDecodeCreateOrderResponse_UnknownShapeFailsClosed(t *testing.T) {
	cases := map[string]string{
		"empty object":            `{}`,
		"wrapped without id":      `{"status":"success","data":{}}`,
		"unrelated payload":       `{"ok":true}`,
		"non-success wrapped":     `{"status":"failure","data":{"orderId":"OD9"}}`,
		"array instead of object": `[]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := gateway.DecodeCreateOrderResponse([]byte(body))
			require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
		})
	}
}

func TestOrderClient_CreateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"status":"success","data":{"orderId":"OD7","shipments":[{"awbNumber":"AWB7"}]}}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, staticToken("tok"), nil, nil)
	oc := gateway.NewOrderClient(client)

	result, err := oc.Create(context.Background(), ports.CreateOrderRequest{ServiceType: "Standard"})
	require.NoError(t, err)
	assert.Equal(t, "OD7", result.OrderID)
	assert.Equal(t, "AWB7", result.AWBNumber)
}

func TestOrderClient_RemoteRejectionSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate reference number"}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, staticToken("tok"), nil, nil)
	oc := gateway.NewOrderClient(client)

	_, err := oc.Create(context.Background(), ports.CreateOrderRequest{})
	require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
	assert.Equal(t, "duplicate reference number", errs.RemoteMessage(err, "fallback"))
}
