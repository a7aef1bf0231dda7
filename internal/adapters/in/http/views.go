package http

import (
	"console/internal/core/application/pipeline"
	"console/internal/core/domain/model/draft"
	"console/internal/core/domain/model/quote"
	"console/internal/core/domain/services"
)

// StageResultView is a remote stage result rendered for clients.
type StageResultView struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// ChargeView is one line of the quote's price breakdown.
type ChargeView struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// LocationView is the resolved city/state/country for one end of the route.
type LocationView struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// QuoteView is the current rate quote rendered for clients.
type QuoteView struct {
	BaseRate              float64      `json:"baseRate"`
	TotalAmount           float64      `json:"totalAmount"`
	Charges               []ChargeView `json:"charges"`
	ChargeableWeightGrams float64      `json:"chargeableWeightGrams"`
	Origin                LocationView `json:"origin"`
	Destination           LocationView `json:"destination"`
}

// SessionStateView is the full session snapshot returned by state reads and
// echoed after every mutation so clients never need a follow-up fetch.
type SessionStateView struct {
	Draft             draft.Draft                `json:"draft"`
	ValidationErrors  services.ValidationErrors  `json:"validationErrors"`
	Serviceability    StageResultView            `json:"serviceability"`
	Rate              StageResultView            `json:"rate"`
	Quote             *QuoteView                 `json:"quote,omitempty"`
	VolumetricWeights []float64                  `json:"volumetricWeights"`
	Notifications     []Notification             `json:"notifications"`
	ServiceTypes      []string                   `json:"serviceTypes"`
}

func sessionState(sess *session, catalog *pipeline.ServiceTypeCatalog) SessionStateView {
	p := sess.pipeline
	d := p.Store().Snapshot()

	weights := make([]float64, 0, len(d.Shipments))
	for _, sh := range d.Shipments {
		weights = append(weights, sh.VolumetricWeight())
	}

	return SessionStateView{
		Draft:             d,
		ValidationErrors:  p.ValidationErrors(),
		Serviceability:    stageResultView(p.Serviceability()),
		Rate:              stageResultView(p.Rate()),
		Quote:             quoteView(p.Quote()),
		VolumetricWeights: weights,
		Notifications:     sess.notifier.Drain(),
		ServiceTypes:      catalog.ServiceTypes(),
	}
}

func stageResultView(r pipeline.Result) StageResultView {
	return StageResultView{State: r.State.String(), Message: r.Message}
}

func quoteView(q *quote.RateQuote) *QuoteView {
	if q == nil {
		return nil
	}

	charges := make([]ChargeView, 0, len(q.Charges))
	for _, c := range q.Charges {
		charges = append(charges, ChargeView{Name: c.Name, Amount: c.Amount})
	}

	return &QuoteView{
		BaseRate:              q.BaseRate,
		TotalAmount:           q.TotalAmount,
		Charges:               charges,
		ChargeableWeightGrams: q.ChargeableWeightGrams,
		Origin:                locationView(q.Origin),
		Destination:           locationView(q.Destination),
	}
}

func locationView(d quote.AddressDetail) LocationView {
	return LocationView{City: d.City, State: d.State, Country: d.Country}
}
