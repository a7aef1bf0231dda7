package pipeline

import (
	"context"
	"errors"
	"fmt"

	"console/internal/core/domain/model/draft"
	"console/internal/core/domain/model/quote"
	"console/internal/core/ports"
	"console/internal/pkg/errs"
)

// ErrSubmissionInFlight is returned when a submit attempt overlaps another.
// The second attempt is rejected, not queued, to avoid duplicate orders.
var ErrSubmissionInFlight = errors.New("submission already in progress")

// Submit re-verifies every precondition locally, assembles the create-order
// request from the draft and the latest quote, and issues exactly one remote
// call. UI state is not trusted: validation, serviceability, and the quote
// are all re-checked here immediately before submission.
func (p *Pipeline) Submit(ctx context.Context) (ports.CreateOrderResult, error) {
	d := p.store.Snapshot()

	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return ports.CreateOrderResult{}, ErrSubmissionInFlight
	}

	if err := p.checkSubmittableLocked(d); err != nil {
		p.mu.Unlock()
		p.notifier.Error(err.Error())
		return ports.CreateOrderResult{}, err
	}

	q := p.quote.Clone()
	p.submitting = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.submitting = false
		p.mu.Unlock()
	}()

	result, err := p.orderGW.Create(ctx, buildCreateOrderRequest(d, q))
	if err != nil {
		message := errs.RemoteMessage(err, "order creation failed")
		p.notifier.Error(message)
		p.logger.Warn("order creation failed", "error", err)
		return ports.CreateOrderResult{}, err
	}

	if result.AWBNumber != "" {
		p.notifier.Success(fmt.Sprintf("order %s created, AWB %s", result.OrderID, result.AWBNumber))
	} else {
		p.notifier.Success(fmt.Sprintf("order %s created", result.OrderID))
	}
	p.logger.Info("order created", "orderID", result.OrderID, "awb", result.AWBNumber)
	return result, nil
}

// checkSubmittableLocked verifies the submission preconditions. Callers hold
// the pipeline lock.
func (p *Pipeline) checkSubmittableLocked(d draft.Draft) error {
	// The store maintains these invariants; re-checked because the assembler
	// defends against callers rather than trusting their discipline.
	if len(d.Products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	if len(d.Shipments) == 0 {
		return errs.NewValueIsRequiredError("shipments")
	}

	if verrs := p.validator.Validate(d); !verrs.Empty() {
		return errs.NewValueIsInvalidErrorWithCause("draft",
			fmt.Errorf("%d field(s) need attention before submitting", len(verrs)))
	}

	if p.serviceability.State != StateSuccess {
		return errs.NewValueIsInvalidErrorWithCause("serviceability",
			errors.New("the pincode pair has not been confirmed serviceable"))
	}

	if p.quote == nil {
		return errs.NewValueIsRequiredErrorWithCause("rate quote",
			errors.New("a shipping rate must be calculated before submitting"))
	}

	return nil
}

// buildCreateOrderRequest assembles the composite order document: four
// address records, one shipment record per draft shipment carrying the full
// product list as items, and the payment block derived from the quote.
func buildCreateOrderRequest(d draft.Draft, q quote.RateQuote) ports.CreateOrderRequest {
	pickup := partyAddress(ports.AddressTypePickup, d.Sender, q.Origin)
	ret := partyAddress(ports.AddressTypeReturn, d.Sender, q.Origin)
	delivery := partyAddress(ports.AddressTypeDelivery, d.Receiver, q.Destination)
	billing := partyAddress(ports.AddressTypeBilling, d.Receiver, q.Destination)

	items := make([]ports.OrderItem, 0, len(d.Products))
	for _, product := range d.Products {
		items = append(items, ports.OrderItem{
			Type:     product.Type,
			Name:     product.Name,
			Value:    product.Value,
			Quantity: product.Quantity,
		})
	}

	shipments := make([]ports.OrderShipment, 0, len(d.Shipments))
	for _, sh := range d.Shipments {
		shipments = append(shipments, ports.OrderShipment{
			Weight:           sh.Weight,
			Length:           sh.Length,
			Breadth:          sh.Breadth,
			Height:           sh.Height,
			VolumetricWeight: sh.VolumetricWeight(),
			Items:            items,
		})
	}

	charges := make([]ports.PaymentCharge, 0, len(q.Charges)+1)
	charges = append(charges, ports.PaymentCharge{Name: "Base Rate", Amount: q.BaseRate})
	for _, c := range q.Charges {
		charges = append(charges, ports.PaymentCharge{Name: c.Name, Amount: c.Amount})
	}

	documents := make([]ports.OrderDocument, 0, len(d.Documents))
	for _, doc := range d.Documents {
		documents = append(documents, ports.OrderDocument{
			URL:      doc.URL,
			Type:     doc.MimeType,
			FileName: doc.FileName,
		})
	}

	return ports.CreateOrderRequest{
		ServiceType: d.ServiceType,
		Addresses:   []ports.OrderAddress{pickup, ret, delivery, billing},
		Shipments:   shipments,
		Payment: ports.OrderPayment{
			FinalAmount: q.TotalAmount,
			COD:         d.COD,
			Charges:     charges,
		},
		Documents: documents,
		EwayBills: d.EwayBills,
		Remarks:   d.Remarks,
	}
}

func partyAddress(addressType string, party draft.Party, detail quote.AddressDetail) ports.OrderAddress {
	return ports.OrderAddress{
		Type:    addressType,
		Name:    party.Name,
		Phone:   party.Phone,
		Address: party.Address,
		Pincode: party.Pincode,
		City:    detail.City,
		State:   detail.State,
		Country: detail.Country,
		GST:     party.GST,
		Email:   party.Email,
	}
}
