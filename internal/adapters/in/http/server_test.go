package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intakehttp "console/internal/adapters/in/http"
	"console/internal/core/application/pipeline"
	"console/internal/core/ports"
	"console/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateways answers every remote call with a canned response. Handler
// tests exercise routing and error mapping, not stage behavior; the pipeline
// package owns those tests.
type stubGateways struct {
	ewaybillValid bool
}

func (stubGateways) Check(context.Context, ports.ServiceabilityRequest) (ports.ServiceabilityResponse, error) {
	return ports.ServiceabilityResponse{Success: true, Partners: []ports.ServiceablePartner{{Name: "BlueDart"}}}, nil
}

func (stubGateways) Calculate(context.Context, ports.RateRequest) (ports.RateResponse, error) {
	return ports.RateResponse{Status: "success"}, nil
}

func (s stubGateways) Lookup(context.Context, string) (ports.EwaybillResponse, error) {
	if !s.ewaybillValid {
		return ports.EwaybillResponse{Status: true, Message: "e-way bill has expired"}, nil
	}
	return ports.EwaybillResponse{Status: true, Data: ports.EwaybillData{IsEwaybillValid: true}}, nil
}

func (stubGateways) Upload(context.Context, ports.UploadRequest) (ports.UploadResponse, error) {
	return ports.UploadResponse{}, errs.NewRemoteError("upload service unavailable", 503)
}

func (stubGateways) Create(context.Context, ports.CreateOrderRequest) (ports.CreateOrderResult, error) {
	return ports.CreateOrderResult{OrderID: "OD1"}, nil
}

func (stubGateways) ServiceTypes(context.Context, string) ([]string, error) {
	return []string{"Standard", "Express"}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	gw := stubGateways{ewaybillValid: true}

	factory := func(notifier ports.Notifier) *pipeline.Pipeline {
		return pipeline.New(pipeline.Config{
			Serviceability:      gw,
			Rates:               gw,
			Ewaybills:           gw,
			Uploads:             gw,
			Orders:              gw,
			Notifier:            notifier,
			ServiceabilityDelay: time.Millisecond,
			RateDelay:           time.Millisecond,
		})
	}

	srv := intakehttp.NewServer(factory, pipeline.NewServiceTypeCatalog(gw, nil), nil)
	e := echo.New()
	srv.Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func openSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(t, e, nethttp.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["sessionId"])
	return body["sessionId"]
}

func TestServer_SessionLifecycle(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	rec := do(t, e, nethttp.MethodGet, "/api/v1/sessions/"+id, "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var state intakehttp.SessionStateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Draft.Products, 1, "a fresh draft has one product line")
	assert.Len(t, state.Draft.Shipments, 1)
	assert.Equal(t, "Standard", state.Draft.ServiceType)
	assert.Equal(t, "idle", state.Serviceability.State)
	assert.NotEmpty(t, state.ValidationErrors, "empty mandatory fields are reported immediately")

	rec = do(t, e, nethttp.MethodDelete, "/api/v1/sessions/"+id, "")
	require.Equal(t, nethttp.StatusNoContent, rec.Code)

	rec = do(t, e, nethttp.MethodGet, "/api/v1/sessions/"+id, "")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestServer_SetDraftField(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	rec := do(t, e, nethttp.MethodPatch, "/api/v1/sessions/"+id+"/draft",
		`{"path":"sender.name","value":"Acme Logistics"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var state intakehttp.SessionStateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "Acme Logistics", state.Draft.Sender.Name)
	assert.NotContains(t, state.ValidationErrors, "sender.name")
}

func TestServer_SetDraftField_ReceiverGSTRejected(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	rec := do(t, e, nethttp.MethodPatch, "/api/v1/sessions/"+id+"/draft",
		`{"path":"receiver.gst","value":"27AAPFU0939F1ZV"}`)
	assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
}

func TestServer_ProductListBounds(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	// The last product line cannot be removed.
	rec := do(t, e, nethttp.MethodDelete, "/api/v1/sessions/"+id+"/products/0", "")
	assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)

	rec = do(t, e, nethttp.MethodPost, "/api/v1/sessions/"+id+"/products", "")
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	var state intakehttp.SessionStateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Draft.Products, 2)

	rec = do(t, e, nethttp.MethodDelete, "/api/v1/sessions/"+id+"/products/7", "")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestServer_AddEwaybill(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	rec := do(t, e, nethttp.MethodPost, "/api/v1/sessions/"+id+"/ewaybills", `{"number":"EWB123"}`)
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	var state intakehttp.SessionStateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, []string{"EWB123"}, state.Draft.EwayBills)

	rec = do(t, e, nethttp.MethodPost, "/api/v1/sessions/"+id+"/ewaybills", `{"number":""}`)
	assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
}

func TestServer_SubmitRejectsIncompleteDraft(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	rec := do(t, e, nethttp.MethodPost, "/api/v1/sessions/"+id+"/submit", "")
	require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)

	var body intakehttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, nethttp.StatusUnprocessableEntity, body.Code)
	assert.NotEmpty(t, body.Message)
}

func TestServer_DocumentUploadFailureIsBadGateway(t *testing.T) {
	e := newTestServer(t)
	id := openSession(t, e)

	body := new(strings.Builder)
	boundary := "testboundary"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"invoice.pdf\"\r\n")
	body.WriteString("Content-Type: application/pdf\r\n\r\n")
	body.WriteString("%PDF-\r\n")
	body.WriteString("--" + boundary + "--\r\n")

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/sessions/"+id+"/documents", strings.NewReader(body.String()))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusBadGateway, rec.Code)

	var errBody intakehttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "upload service unavailable", errBody.Message)
}

func TestServer_ServiceTypes(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, nethttp.MethodGet, "/api/v1/service-types", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Standard", "Express"}, body["serviceTypes"])
}
