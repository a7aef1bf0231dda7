package pipeline

import (
	"context"
	"fmt"

	"console/internal/core/domain/model/draft"
	"console/internal/core/ports"
	"console/internal/pkg/errs"
)

// Remote bucket layout for order attachments.
const (
	documentFileType   = "ORDER_DOCUMENT"
	documentUploadPath = "orders/documents"
)

// AddDocument uploads the file through the file-service collaborator and,
// on success, appends the receipt to the order's document list. On failure
// nothing is added.
func (p *Pipeline) AddDocument(ctx context.Context, fileName, contentType string, content []byte) error {
	if len(content) == 0 {
		err := errs.NewValueIsRequiredError("document content")
		p.notifier.Error("the selected file is empty")
		return err
	}

	resp, err := p.uploadGW.Upload(ctx, ports.UploadRequest{
		FileName:    fileName,
		ContentType: contentType,
		Content:     content,
		FileType:    documentFileType,
		Path:        documentUploadPath,
	})
	if err != nil {
		message := errs.RemoteMessage(err, "document upload failed")
		p.notifier.Error(message)
		p.logger.Warn("document upload failed", "file", fileName, "error", err)
		return err
	}

	if len(resp.Data) == 0 {
		err := errs.NewRemoteError("upload service returned no file receipt", 0)
		p.notifier.Error(err.Message)
		return err
	}

	receipt := resp.Data[0]
	stored := receipt.OriginalFileName
	if stored == "" {
		stored = fileName
	}
	p.store.AddDocument(draft.Document{
		URL:      receipt.URL,
		MimeType: contentType,
		FileName: stored,
	})
	p.notifier.Success(fmt.Sprintf("document %s uploaded", stored))
	return nil
}

// RemoveDocument drops the local entry at index i. The uploaded object is
// left in place server-side; orphaning it is an accepted tradeoff.
func (p *Pipeline) RemoveDocument(i int) error {
	return p.store.RemoveDocument(i)
}
