package pipeline

import (
	"context"
	"fmt"
	"strings"

	"console/internal/pkg/errs"
)

// AddEwayBill verifies the bill number against the registry and, only on a
// positive verification, attaches it to the order. Empty and duplicate
// numbers are rejected before any remote call is made.
func (p *Pipeline) AddEwayBill(ctx context.Context, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		err := errs.NewValueIsRequiredError("e-way bill number")
		p.notifier.Error("enter an e-way bill number first")
		return err
	}

	if p.store.HasEwayBill(number) {
		err := errs.NewValueIsInvalidErrorWithCause("e-way bill number",
			fmt.Errorf("%s is already attached to this order", number))
		p.notifier.Error(fmt.Sprintf("e-way bill %s is already attached", number))
		return err
	}

	resp, err := p.ewaybillGW.Lookup(ctx, number)
	if err != nil {
		message := errs.RemoteMessage(err, "e-way bill verification failed")
		p.notifier.Error(message)
		p.logger.Warn("e-way bill lookup failed", "error", err)
		return err
	}

	if !resp.Status || !resp.Data.IsEwaybillValid {
		message := resp.Message
		if message == "" {
			message = fmt.Sprintf("e-way bill %s is not valid", number)
		}
		if resp.Data.ValidUpto != "" {
			message = fmt.Sprintf("%s (valid up to %s)", message, resp.Data.ValidUpto)
		}
		p.notifier.Error(message)
		return errs.NewValueIsInvalidErrorWithCause("e-way bill number", fmt.Errorf("%s", message))
	}

	p.store.AddEwayBill(number)
	p.notifier.Success(fmt.Sprintf("e-way bill %s verified and attached", number))
	return nil
}

// RemoveEwayBill drops the entry at index i. The registry is the order's
// local record, not the authority's, so removal needs no remote call.
func (p *Pipeline) RemoveEwayBill(i int) error {
	return p.store.RemoveEwayBill(i)
}
