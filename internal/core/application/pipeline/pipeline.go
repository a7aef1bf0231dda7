package pipeline

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"console/internal/core/domain/model/draft"
	"console/internal/core/domain/model/quote"
	"console/internal/core/domain/services"
	"console/internal/core/ports"
	"console/internal/pkg/debounce"
	"console/internal/pkg/errs"
)

const (
	channelServiceability = "serviceability"
	channelRate           = "rate"

	defaultServiceabilityDelay = 500 * time.Millisecond
	defaultRateDelay           = 700 * time.Millisecond
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Config wires a pipeline's collaborators. Gateways and Notifier are
// required; delays default to the production debounce windows when zero.
type Config struct {
	Serviceability ports.ServiceabilityGateway
	Rates          ports.RateGateway
	Ewaybills      ports.EwaybillGateway
	Uploads        ports.UploadGateway
	Orders         ports.OrderGateway
	Notifier       ports.Notifier
	Logger         *slog.Logger

	ServiceabilityDelay time.Duration
	RateDelay           time.Duration
}

// Pipeline owns one intake session: the draft store, the two remote stage
// result slots, and the submission gate. All state behind the mutex is only
// written by the stage that owns it.
type Pipeline struct {
	store     *draft.Store
	validator *services.DraftValidator
	scheduler *debounce.Scheduler

	serviceabilityGW ports.ServiceabilityGateway
	rateGW           ports.RateGateway
	ewaybillGW       ports.EwaybillGateway
	uploadGW         ports.UploadGateway
	orderGW          ports.OrderGateway
	notifier         ports.Notifier
	logger           *slog.Logger

	serviceabilityDelay time.Duration
	rateDelay           time.Duration

	mu                 sync.Mutex
	serviceability     Result
	rate               Result
	quote              *quote.RateQuote
	serviceabilitySeq  uint64
	rateSeq            uint64
	submitting         bool
}

// New creates a pipeline subscribed to its own fresh draft store.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		store:               draft.NewStore(),
		validator:           services.NewDraftValidator(),
		scheduler:           debounce.NewScheduler(),
		serviceabilityGW:    cfg.Serviceability,
		rateGW:              cfg.Rates,
		ewaybillGW:          cfg.Ewaybills,
		uploadGW:            cfg.Uploads,
		orderGW:             cfg.Orders,
		notifier:            cfg.Notifier,
		logger:              logger.With("component", "intake_pipeline"),
		serviceabilityDelay: cfg.ServiceabilityDelay,
		rateDelay:           cfg.RateDelay,
	}
	if p.serviceabilityDelay <= 0 {
		p.serviceabilityDelay = defaultServiceabilityDelay
	}
	if p.rateDelay <= 0 {
		p.rateDelay = defaultRateDelay
	}

	p.store.Subscribe(p.onDraftChange)
	return p
}

// Store exposes the draft store for field-level mutations.
func (p *Pipeline) Store() *draft.Store {
	return p.store
}

// Close cancels all pending debounced work. In-flight responses are dropped
// by the sequence guard.
func (p *Pipeline) Close() {
	p.scheduler.Stop()
	p.mu.Lock()
	p.serviceabilitySeq++
	p.rateSeq++
	p.mu.Unlock()
}

// ValidationErrors re-derives the full local error set for the current draft.
func (p *Pipeline) ValidationErrors() services.ValidationErrors {
	return p.validator.Validate(p.store.Snapshot())
}

// Serviceability returns the current serviceability result.
func (p *Pipeline) Serviceability() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.serviceability
}

// Rate returns the current rate stage result.
func (p *Pipeline) Rate() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

// Quote returns a copy of the latest successful quote, or nil when no quote
// is held for the current input.
func (p *Pipeline) Quote() *quote.RateQuote {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quote == nil {
		return nil
	}
	cloned := p.quote.Clone()
	return &cloned
}

// onDraftChange routes a mutation to the stage whose input it feeds. It runs
// synchronously on the mutating goroutine; remote work is armed through the
// debounce channels, never issued here.
func (p *Pipeline) onDraftChange(path string) {
	switch {
	case draft.PincodeRelevant(path):
		p.mu.Lock()
		// The held results were produced by a pincode pair that no longer
		// matches the draft; stop presenting them as current.
		p.serviceability = Result{State: StateIdle}
		p.rate = Result{State: StateIdle}
		p.quote = nil
		p.serviceabilitySeq++
		p.rateSeq++
		p.mu.Unlock()

		p.scheduler.Schedule(channelServiceability, p.serviceabilityDelay, func() {
			p.runServiceability(context.Background())
		})
	case draft.RateRelevant(path):
		p.mu.Lock()
		p.rate = Result{State: StateIdle}
		p.quote = nil
		p.rateSeq++
		p.mu.Unlock()

		p.scheduler.Schedule(channelRate, p.rateDelay, func() {
			p.runRate(context.Background())
		})
	}
}

// runServiceability is the serviceability stage body. It never lets a remote
// fault escape: failures become an error result and one notification.
func (p *Pipeline) runServiceability(ctx context.Context) {
	d := p.store.Snapshot()
	from, to := d.Sender.Pincode, d.Receiver.Pincode

	if !pincodePattern.MatchString(from) || !pincodePattern.MatchString(to) {
		// Not an error: the pair is simply not ready to be checked.
		p.mu.Lock()
		p.serviceability = Result{State: StateIdle}
		p.rate = Result{State: StateIdle}
		p.quote = nil
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.serviceabilitySeq++
	seq := p.serviceabilitySeq
	p.serviceability = Result{State: StateLoading, FromPincode: from, ToPincode: to}
	p.rate = Result{State: StateIdle}
	p.quote = nil
	p.mu.Unlock()

	resp, err := p.serviceabilityGW.Check(ctx, ports.ServiceabilityRequest{
		SourcePostalCode:      from,
		DestinationPostalCode: to,
		ParcelCategory:        ports.ParcelCategoryDomestic,
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.serviceabilitySeq {
		// A newer check was issued for a different pair; this response is stale.
		p.logger.Debug("dropping stale serviceability response", "from", from, "to", to)
		return
	}

	if err != nil {
		message := errs.RemoteMessage(err, "serviceability check failed")
		p.serviceability = Result{State: StateError, Message: message, FromPincode: from, ToPincode: to}
		p.notifier.Error(message)
		p.logger.Warn("serviceability check failed", "error", err)
		return
	}

	if !resp.Success || len(resp.Partners) == 0 {
		message := "no delivery partner serves this pincode pair"
		p.serviceability = Result{State: StateError, Message: message, FromPincode: from, ToPincode: to}
		p.notifier.Error(message)
		return
	}

	p.serviceability = Result{State: StateSuccess, FromPincode: from, ToPincode: to}
	p.scheduler.Schedule(channelRate, p.rateDelay, func() {
		p.runRate(context.Background())
	})
}

// runRate is the rate calculation stage body. It requires a successful
// serviceability result and a complete parent shipment; otherwise it leaves
// the quote absent and does nothing remotely.
func (p *Pipeline) runRate(ctx context.Context) {
	d := p.store.Snapshot()

	p.mu.Lock()
	if p.serviceability.State != StateSuccess {
		p.mu.Unlock()
		return
	}
	from, to := p.serviceability.FromPincode, p.serviceability.ToPincode

	parent := d.Shipments[0]
	if d.ServiceType == "" || parent.Weight <= 0 || parent.Length <= 0 ||
		parent.Breadth <= 0 || parent.Height <= 0 {
		p.rate = Result{State: StateIdle}
		p.quote = nil
		p.mu.Unlock()
		return
	}

	p.rateSeq++
	seq := p.rateSeq
	p.rate = Result{State: StateLoading}
	p.quote = nil
	p.mu.Unlock()

	var insuredAmount float64
	if d.Insurance {
		insuredAmount = d.DeclaredValue()
	}

	resp, err := p.rateGW.Calculate(ctx, ports.RateRequest{
		FromPincode:           from,
		ToPincode:             to,
		ServiceType:           d.ServiceType,
		Weight:                parent.Weight * 1000,
		Length:                parent.Length,
		Height:                parent.Height,
		Width:                 parent.Breadth,
		IncludeDefaultCharges: false,
		UserOptions: ports.UserOptions{
			Insurance: ports.InsuranceOption{Enabled: d.Insurance, Amount: insuredAmount},
			COD:       d.COD,
		},
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.rateSeq || p.serviceability.State != StateSuccess {
		p.logger.Debug("dropping stale rate response", "from", from, "to", to)
		return
	}

	if err != nil {
		message := errs.RemoteMessage(err, "rate calculation failed")
		p.rate = Result{State: StateError, Message: message}
		p.quote = nil
		p.notifier.Error(message)
		p.logger.Warn("rate calculation failed", "error", err)
		return
	}

	if !strings.EqualFold(resp.Status, "success") {
		message := "rate calculation failed"
		p.rate = Result{State: StateError, Message: message}
		p.quote = nil
		p.notifier.Error(message)
		return
	}

	charges := make([]quote.Charge, 0, len(resp.Data.Charges))
	for _, c := range resp.Data.Charges {
		charges = append(charges, quote.Charge{Name: c.ChargeName, Amount: c.Amount})
	}

	p.quote = &quote.RateQuote{
		BaseRate:              resp.Data.BaseRate,
		TotalAmount:           resp.Data.TotalAmount,
		Charges:               charges,
		ChargeableWeightGrams: resp.Data.WeightCalculation.FinalWeight,
		Origin: quote.AddressDetail{
			City:    resp.Data.PincodeDetails.From.City,
			State:   resp.Data.PincodeDetails.From.State,
			Country: resp.Data.PincodeDetails.From.Country,
		},
		Destination: quote.AddressDetail{
			City:    resp.Data.PincodeDetails.To.City,
			State:   resp.Data.PincodeDetails.To.State,
			Country: resp.Data.PincodeDetails.To.Country,
		},
	}
	p.rate = Result{State: StateSuccess}
}
