package pipeline_test

import (
	"context"
	"testing"

	"console/internal/core/ports"
	"console/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPipeline_AddEwayBill_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ewaybills.On("Lookup", ctx, "EWB123").Return(ports.EwaybillResponse{
		Status: true,
		Data:   ports.EwaybillData{IsEwaybillValid: true, ValidUpto: "2026-12-31"},
	}, nil).Once()

	require.NoError(t, env.pipeline.AddEwayBill(ctx, "EWB123"))
	assert.Equal(t, []string{"EWB123"}, env.pipeline.Store().Snapshot().EwayBills)
	env.ewaybills.AssertExpectations(t)
}

func TestPipeline_AddEwayBill_DuplicateRejectedWithoutRemoteCall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ewaybills.On("Lookup", ctx, "EWB123").Return(ports.EwaybillResponse{
		Status: true,
		Data:   ports.EwaybillData{IsEwaybillValid: true},
	}, nil)

	require.NoError(t, env.pipeline.AddEwayBill(ctx, "EWB123"))

	err := env.pipeline.AddEwayBill(ctx, "EWB123")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	env.ewaybills.AssertNumberOfCalls(t, "Lookup", 1)
	assert.Equal(t, []string{"EWB123"}, env.pipeline.Store().Snapshot().EwayBills)
}

func TestPipeline_AddEwayBill_EmptyRejectedWithoutRemoteCall(t *testing.T) {
	env := newTestEnv(t)

	err := env.pipeline.AddEwayBill(context.Background(), "   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	env.ewaybills.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestPipeline_AddEwayBill_InvalidBillCarriesValidityDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ewaybills.On("Lookup", ctx, "EWB999").Return(ports.EwaybillResponse{
		Status:  true,
		Data:    ports.EwaybillData{IsEwaybillValid: false, ValidUpto: "2025-01-15"},
		Message: "e-way bill has expired",
	}, nil).Once()

	err := env.pipeline.AddEwayBill(ctx, "EWB999")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, env.pipeline.Store().Snapshot().EwayBills, "unverified numbers are not retained")
	assert.Equal(t, "e-way bill has expired (valid up to 2025-01-15)", env.notifier.lastError())
}

func TestPipeline_AddEwayBill_TransportFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ewaybills.On("Lookup", ctx, "EWB777").
		Return(ports.EwaybillResponse{}, remoteErr("registry unavailable", 503)).Once()

	err := env.pipeline.AddEwayBill(ctx, "EWB777")
	require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
	assert.Empty(t, env.pipeline.Store().Snapshot().EwayBills)
	assert.Equal(t, "registry unavailable", env.notifier.lastError())
}

func TestPipeline_RemoveEwayBill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ewaybills.On("Lookup", ctx, "EWB123").Return(ports.EwaybillResponse{
		Status: true,
		Data:   ports.EwaybillData{IsEwaybillValid: true},
	}, nil)

	require.NoError(t, env.pipeline.AddEwayBill(ctx, "EWB123"))
	require.NoError(t, env.pipeline.RemoveEwayBill(0))
	assert.Empty(t, env.pipeline.Store().Snapshot().EwayBills)
}

func TestPipeline_AddDocument_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.uploads.On("Upload", ctx, mock.MatchedBy(func(req ports.UploadRequest) bool {
		return req.FileName == "invoice.pdf" &&
			req.ContentType == "application/pdf" &&
			req.FileType == "ORDER_DOCUMENT"
	})).Return(ports.UploadResponse{
		Status: "success",
		Data:   []ports.UploadedFile{{URL: "https://cdn/docs/invoice.pdf", OriginalFileName: "invoice.pdf"}},
	}, nil).Once()

	require.NoError(t, env.pipeline.AddDocument(ctx, "invoice.pdf", "application/pdf", []byte("%PDF-")))

	docs := env.pipeline.Store().Snapshot().Documents
	require.Len(t, docs, 1)
	assert.Equal(t, "https://cdn/docs/invoice.pdf", docs[0].URL)
	assert.Equal(t, "application/pdf", docs[0].MimeType)
	assert.Equal(t, "invoice.pdf", docs[0].FileName)
}

func TestPipeline_AddDocument_UploadFailureAddsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.uploads.On("Upload", ctx, mock.Anything).
		Return(ports.UploadResponse{}, remoteErr("file too large", 413)).Once()

	err := env.pipeline.AddDocument(ctx, "huge.zip", "application/zip", []byte{1})
	require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
	assert.Empty(t, env.pipeline.Store().Snapshot().Documents)
	assert.Equal(t, "file too large", env.notifier.lastError())
}

func TestPipeline_AddDocument_EmptyReceiptIsFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.uploads.On("Upload", ctx, mock.Anything).
		Return(ports.UploadResponse{Status: "success"}, nil).Once()

	err := env.pipeline.AddDocument(ctx, "invoice.pdf", "application/pdf", []byte{1})
	require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
	assert.Empty(t, env.pipeline.Store().Snapshot().Documents)
}

func TestPipeline_RemoveDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.uploads.On("Upload", ctx, mock.Anything).Return(ports.UploadResponse{
		Status: "success",
		Data:   []ports.UploadedFile{{URL: "https://cdn/docs/a.png", OriginalFileName: "a.png"}},
	}, nil)

	require.NoError(t, env.pipeline.AddDocument(ctx, "a.png", "image/png", []byte{1}))
	require.NoError(t, env.pipeline.RemoveDocument(0))
	assert.Empty(t, env.pipeline.Store().Snapshot().Documents)

	require.ErrorIs(t, env.pipeline.RemoveDocument(0), errs.ErrObjectNotFound)
}
