package gateway

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"

	"console/internal/core/ports"
	"console/internal/pkg/errs"
)

// UploadClient implements ports.UploadGateway over a multipart form endpoint.
type UploadClient struct {
	client *Client
}

func NewUploadClient(client *Client) *UploadClient {
	return &UploadClient{client: client}
}

func (u *UploadClient) Upload(ctx context.Context, req ports.UploadRequest) (ports.UploadResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="files"; filename="`+escapeQuotes(req.FileName)+`"`)
	header.Set("Content-Type", req.ContentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return ports.UploadResponse{}, errs.NewRemoteErrorWithCause("could not build upload form", 0, err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return ports.UploadResponse{}, errs.NewRemoteErrorWithCause("could not build upload form", 0, err)
	}
	if err := form.WriteField("fileType", req.FileType); err != nil {
		return ports.UploadResponse{}, errs.NewRemoteErrorWithCause("could not build upload form", 0, err)
	}
	if err := form.WriteField("path", req.Path); err != nil {
		return ports.UploadResponse{}, errs.NewRemoteErrorWithCause("could not build upload form", 0, err)
	}
	if err := form.Close(); err != nil {
		return ports.UploadResponse{}, errs.NewRemoteErrorWithCause("could not build upload form", 0, err)
	}

	var resp ports.UploadResponse
	if err := u.client.postMultipart(ctx, "/api/v1/files/upload", form.FormDataContentType(), &buf, &resp); err != nil {
		return ports.UploadResponse{}, err
	}
	return resp, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
