// Package ports defines the boundary contracts of the order-intake pipeline:
// one typed request/response struct pair per remote endpoint, the gateway
// interfaces the stages depend on, and the notifier used for user-facing
// messages. Request shapes are enumerated here exactly once so field names
// cannot silently drift between call sites.
package ports

// ParcelCategoryDomestic is the only parcel category the intake form creates.
const ParcelCategoryDomestic = "DOMESTIC"

// ServiceabilityRequest asks whether a pincode pair can be served.
type ServiceabilityRequest struct {
	SourcePostalCode      string `json:"source_postal_code"`
	DestinationPostalCode string `json:"destination_postal_code"`
	ParcelCategory        string `json:"parcel_category"`
}

// ServiceablePartner is one carrier capable of serving the requested route.
type ServiceablePartner struct {
	Name string `json:"name"`
}

// ServiceabilityResponse reports the partners able to serve the route.
// A successful response with no partners means the route is not serviceable.
type ServiceabilityResponse struct {
	Success  bool                 `json:"success"`
	Partners []ServiceablePartner `json:"partners"`
}

// InsuranceOption is the insurance block of a rate request. Amount is the
// declared value of the order and is only meaningful when Enabled is true.
type InsuranceOption struct {
	Enabled bool    `json:"enabled"`
	Amount  float64 `json:"amount"`
}

// UserOptions carries the user-selected additional services for rating.
type UserOptions struct {
	Insurance InsuranceOption `json:"insurance"`
	COD       bool            `json:"cod"`
}

// RateRequest asks the rate engine for a quote. Weight is grams; dimensions
// are centimeters. The draft's breadth maps to the wire field width.
type RateRequest struct {
	FromPincode           string      `json:"fromPincode"`
	ToPincode             string      `json:"toPincode"`
	ServiceType           string      `json:"serviceType"`
	Weight                float64     `json:"weight"`
	Length                float64     `json:"length"`
	Height                float64     `json:"height"`
	Width                 float64     `json:"width"`
	IncludeDefaultCharges bool        `json:"includeDefaultCharges"`
	UserOptions           UserOptions `json:"userOptions"`
}

// RateCharge is one named surcharge in the engine's breakdown.
type RateCharge struct {
	ChargeName string  `json:"chargeName"`
	Amount     float64 `json:"amount"`
}

// RatePincodeDetail is the resolved location metadata for one pincode.
type RatePincodeDetail struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// RateData is the payload of a successful rate response.
type RateData struct {
	BaseRate    float64      `json:"baseRate"`
	TotalAmount float64      `json:"totalAmount"`
	Charges     []RateCharge `json:"charges"`
	WeightCalculation struct {
		FinalWeight float64 `json:"finalWeight"`
	} `json:"weightCalculation"`
	PincodeDetails struct {
		From RatePincodeDetail `json:"from"`
		To   RatePincodeDetail `json:"to"`
	} `json:"pincodeDetails"`
}

// RateResponse is the rate engine's envelope.
type RateResponse struct {
	Status string   `json:"status"`
	Data   RateData `json:"data"`
}

// EwaybillData is the verification payload of an e-way bill lookup.
type EwaybillData struct {
	IsEwaybillValid bool   `json:"isEwaybillValid"`
	ValidUpto       string `json:"validUpto"`
}

// EwaybillResponse is the registry's answer to a bill number lookup.
type EwaybillResponse struct {
	Status  bool         `json:"status"`
	Data    EwaybillData `json:"data"`
	Message string       `json:"message"`
}

// UploadRequest carries one file to the upload service. FileType and Path
// select the remote bucket layout.
type UploadRequest struct {
	FileName    string
	ContentType string
	Content     []byte
	FileType    string
	Path        string
}

// UploadedFile is one acknowledged upload receipt.
type UploadedFile struct {
	URL              string `json:"url"`
	OriginalFileName string `json:"originalFileName"`
}

// UploadResponse is the upload service's envelope.
type UploadResponse struct {
	Status string         `json:"status"`
	Data   []UploadedFile `json:"data"`
}

// Address record types used in the create-order payload.
const (
	AddressTypePickup   = "PICKUP"
	AddressTypeReturn   = "RETURN"
	AddressTypeDelivery = "DELIVERY"
	AddressTypeBilling  = "BILLING"
)

// OrderAddress is one of the four address records of an order.
type OrderAddress struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	GST     string `json:"gst,omitempty"`
	Email   string `json:"email,omitempty"`
}

// OrderItem is one product line item of a shipment record.
type OrderItem struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Quantity int     `json:"quantity"`
}

// OrderShipment is one parcel record of the create-order payload. Weight is
// kilograms; VolumetricWeight is length x breadth x height / 5000.
type OrderShipment struct {
	Weight           float64     `json:"weight"`
	Length           float64     `json:"length"`
	Breadth          float64     `json:"breadth"`
	Height           float64     `json:"height"`
	VolumetricWeight float64     `json:"volumetricWeight"`
	Items            []OrderItem `json:"items"`
}

// PaymentCharge is one line of the payment breakdown.
type PaymentCharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// OrderPayment is the payment block of the create-order payload. FinalAmount
// equals the quote's total amount.
type OrderPayment struct {
	FinalAmount float64         `json:"finalAmount"`
	COD         bool            `json:"cod"`
	Charges     []PaymentCharge `json:"charges"`
}

// OrderDocument is one uploaded supporting document reference.
type OrderDocument struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	FileName string `json:"fileName"`
}

// CreateOrderRequest is the composite order document sent on submission.
type CreateOrderRequest struct {
	ServiceType string          `json:"serviceType"`
	Addresses   []OrderAddress  `json:"addresses"`
	Shipments   []OrderShipment `json:"shipments"`
	Payment     OrderPayment    `json:"payment"`
	Documents   []OrderDocument `json:"documents"`
	EwayBills   []string        `json:"eWaybills"`
	Remarks     string          `json:"remarks,omitempty"`
}

// CreateOrderResult is the identifier pair extracted from a successful
// order-creation response, whichever envelope shape the backend used.
type CreateOrderResult struct {
	OrderID   string
	AWBNumber string
}
