package ports

import "context"

// Gateway interfaces consumed by the pipeline stages. Each method issues one
// remote call; implementations convert transport failures and non-2xx
// responses into errs.RemoteError so stage code never sees raw HTTP details.
type (
	// ServiceabilityGateway checks whether a pincode pair can be served.
	ServiceabilityGateway interface {
		Check(ctx context.Context, req ServiceabilityRequest) (ServiceabilityResponse, error)
	}

	// RateGateway computes a shipment quote.
	RateGateway interface {
		Calculate(ctx context.Context, req RateRequest) (RateResponse, error)
	}

	// EwaybillGateway verifies an e-way bill number against the registry.
	EwaybillGateway interface {
		Lookup(ctx context.Context, billNumber string) (EwaybillResponse, error)
	}

	// UploadGateway stores a supporting document and returns its receipt.
	UploadGateway interface {
		Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)
	}

	// OrderGateway submits the assembled order. Implementations decode both
	// historically-seen response envelopes and fail closed on anything else.
	OrderGateway interface {
		Create(ctx context.Context, req CreateOrderRequest) (CreateOrderResult, error)
	}

	// CatalogGateway lists the selectable service types for a product type.
	CatalogGateway interface {
		ServiceTypes(ctx context.Context, productType string) ([]string, error)
	}
)

// Notifier receives the user-facing outcome messages the pipeline produces.
// Every remote failure results in exactly one Error call with a specific
// message; negative business outcomes use it too since they are expected,
// not faults.
type Notifier interface {
	Success(message string)
	Error(message string)
}
