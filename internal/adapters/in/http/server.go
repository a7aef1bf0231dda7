// Package http exposes the order-intake pipeline over a REST facade. Each
// intake session owns one pipeline instance; clients mutate the draft through
// field-level operations and poll the session state for validation errors,
// stage results, and the current quote.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"console/internal/core/application/pipeline"
	"console/internal/core/ports"
	"console/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PipelineFactory creates a pipeline for a new intake session, wired to the
// session's notification collector.
type PipelineFactory func(notifier ports.Notifier) *pipeline.Pipeline

// Server coordinates intake sessions over HTTP.
type Server struct {
	factory  PipelineFactory
	catalog  *pipeline.ServiceTypeCatalog
	registry *sessionRegistry
	logger   *slog.Logger
}

// NewServer creates the intake HTTP server.
func NewServer(factory PipelineFactory, catalog *pipeline.ServiceTypeCatalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		factory:  factory,
		catalog:  catalog,
		registry: newSessionRegistry(),
		logger:   logger.With("component", "intake_http"),
	}
}

// Register attaches all intake routes to the echo instance.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/service-types", s.GetServiceTypes)

	api.POST("/sessions", s.CreateSession)
	api.GET("/sessions/:id", s.GetSessionState)
	api.DELETE("/sessions/:id", s.CloseSession)

	api.PATCH("/sessions/:id/draft", s.SetDraftField)
	api.POST("/sessions/:id/products", s.AddProduct)
	api.DELETE("/sessions/:id/products/:index", s.RemoveProduct)
	api.POST("/sessions/:id/shipments", s.AddShipment)
	api.DELETE("/sessions/:id/shipments/:index", s.RemoveShipment)
	api.POST("/sessions/:id/ewaybills", s.AddEwaybill)
	api.DELETE("/sessions/:id/ewaybills/:index", s.RemoveEwaybill)
	api.POST("/sessions/:id/documents", s.AddDocument)
	api.DELETE("/sessions/:id/documents/:index", s.RemoveDocument)
	api.POST("/sessions/:id/submit", s.Submit)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateSession handles POST /api/v1/sessions - opens a fresh intake session.
func (s *Server) CreateSession(ctx echo.Context) error {
	notifier := NewCollector()
	sess := &session{
		pipeline: s.factory(notifier),
		notifier: notifier,
	}
	id := s.registry.add(sess)
	s.logger.Info("intake session opened", "sessionID", id)

	return ctx.JSON(http.StatusCreated, map[string]string{"sessionId": id})
}

// GetSessionState handles GET /api/v1/sessions/:id - returns the complete
// session view and drains pending notifications.
func (s *Server) GetSessionState(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// CloseSession handles DELETE /api/v1/sessions/:id - discards the session and
// cancels its pending debounced work.
func (s *Server) CloseSession(ctx echo.Context) error {
	sess, ok := s.registry.remove(ctx.Param("id"))
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	sess.pipeline.Close()
	s.logger.Info("intake session closed", "sessionID", ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

// setFieldRequest is the body of a draft field mutation. Value may be a JSON
// string, number, or boolean depending on the path.
type setFieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// SetDraftField handles PATCH /api/v1/sessions/:id/draft - sets one draft
// field by path, e.g. {"path":"sender.pincode","value":"400001"}.
func (s *Server) SetDraftField(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}

	var req setFieldRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return fail(ctx, http.StatusBadRequest, "path is required")
	}

	if err := sess.pipeline.Store().Set(req.Path, req.Value); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// AddProduct handles POST /api/v1/sessions/:id/products.
func (s *Server) AddProduct(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	sess.pipeline.Store().AddProduct()
	return ctx.JSON(http.StatusCreated, sessionState(sess, s.catalog))
}

// RemoveProduct handles DELETE /api/v1/sessions/:id/products/:index.
func (s *Server) RemoveProduct(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	index, ok := pathIndex(ctx)
	if !ok {
		return fail(ctx, http.StatusBadRequest, "index must be a non-negative integer")
	}
	if err := sess.pipeline.Store().RemoveProduct(index); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// AddShipment handles POST /api/v1/sessions/:id/shipments.
func (s *Server) AddShipment(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	sess.pipeline.Store().AddShipment()
	return ctx.JSON(http.StatusCreated, sessionState(sess, s.catalog))
}

// RemoveShipment handles DELETE /api/v1/sessions/:id/shipments/:index.
func (s *Server) RemoveShipment(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	index, ok := pathIndex(ctx)
	if !ok {
		return fail(ctx, http.StatusBadRequest, "index must be a non-negative integer")
	}
	if err := sess.pipeline.Store().RemoveShipment(index); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// addEwaybillRequest is the body of an e-way bill registration.
type addEwaybillRequest struct {
	Number string `json:"number"`
}

// AddEwaybill handles POST /api/v1/sessions/:id/ewaybills - verifies the bill
// number against the registry before attaching it to the draft.
func (s *Server) AddEwaybill(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}

	var req addEwaybillRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}

	if err := sess.pipeline.AddEwayBill(ctx.Request().Context(), req.Number); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, sessionState(sess, s.catalog))
}

// RemoveEwaybill handles DELETE /api/v1/sessions/:id/ewaybills/:index.
func (s *Server) RemoveEwaybill(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	index, ok := pathIndex(ctx)
	if !ok {
		return fail(ctx, http.StatusBadRequest, "index must be a non-negative integer")
	}
	if err := sess.pipeline.RemoveEwayBill(index); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// AddDocument handles POST /api/v1/sessions/:id/documents - accepts one
// multipart file and forwards it to the upload service.
func (s *Server) AddDocument(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "a file form field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "uploaded file could not be read")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "uploaded file could not be read")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if addErr := sess.pipeline.AddDocument(ctx.Request().Context(), fileHeader.Filename, contentType, content); addErr != nil {
		return failErr(ctx, addErr)
	}
	return ctx.JSON(http.StatusCreated, sessionState(sess, s.catalog))
}

// RemoveDocument handles DELETE /api/v1/sessions/:id/documents/:index.
func (s *Server) RemoveDocument(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}
	index, ok := pathIndex(ctx)
	if !ok {
		return fail(ctx, http.StatusBadRequest, "index must be a non-negative integer")
	}
	if err := sess.pipeline.RemoveDocument(index); err != nil {
		return failErr(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionState(sess, s.catalog))
}

// Submit handles POST /api/v1/sessions/:id/submit - assembles and sends the
// order.
func (s *Server) Submit(ctx echo.Context) error {
	sess, ok := s.session(ctx)
	if !ok {
		return fail(ctx, http.StatusNotFound, "session not found")
	}

	result, err := sess.pipeline.Submit(ctx.Request().Context())
	if err != nil {
		return failErr(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"orderId":   result.OrderID,
		"awbNumber": result.AWBNumber,
	})
}

// GetServiceTypes handles GET /api/v1/service-types - returns the cached
// service type enumeration.
func (s *Server) GetServiceTypes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string][]string{
		"serviceTypes": s.catalog.ServiceTypes(),
	})
}

func (s *Server) session(ctx echo.Context) (*session, bool) {
	return s.registry.get(ctx.Param("id"))
}

func pathIndex(ctx echo.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	return index, err == nil && index >= 0
}

func fail(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// failErr maps domain and pipeline errors onto HTTP statuses.
func failErr(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrSubmissionInFlight):
		return fail(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return fail(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrRemoteCallFailed):
		return fail(ctx, http.StatusBadGateway, errs.RemoteMessage(err, "upstream call failed"))
	default:
		return fail(ctx, http.StatusInternalServerError, "internal error")
	}
}
