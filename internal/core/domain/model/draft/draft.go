// Package draft holds the in-progress order form: the Draft model itself and
// the mutable Store that owns it. Field values are kept exactly as the user
// entered them, so the model deliberately carries no construction-time
// validation; the validation engine derives an error set from a snapshot on
// every change instead.
package draft

// Party is one end of the shipment: the sender or the receiver.
// GST is only ever populated on the sender side.
type Party struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,len=10,numeric"`
	Address string `json:"address" validate:"required"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	GST     string `json:"gst,omitempty" validate:"omitempty,gstin"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// Product is one line item of the order.
type Product struct {
	Type     string  `json:"type"`
	Name     string  `json:"name" validate:"required"`
	Value    float64 `json:"value" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

// Shipment is one physical parcel. The first shipment in a draft is the
// parent; the rest are child shipments. Dimensions are centimeters, weight
// is kilograms.
type Shipment struct {
	Weight  float64 `json:"weight" validate:"gt=0"`
	Length  float64 `json:"length" validate:"gt=0"`
	Breadth float64 `json:"breadth" validate:"gt=0"`
	Height  float64 `json:"height" validate:"gt=0"`
}

// VolumetricWeight returns the billable weight derived from dimensions,
// length x breadth x height / 5000, in kilograms.
func (s Shipment) VolumetricWeight() float64 {
	return s.Length * s.Breadth * s.Height / 5000
}

// Document is an uploaded supporting document attached to the order.
// Entries are appended only after the upload service acknowledged the file.
type Document struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// Draft is the complete in-progress order form.
type Draft struct {
	Sender      Party      `json:"sender"`
	Receiver    Party      `json:"receiver"`
	Products    []Product  `json:"products" validate:"min=1,dive"`
	Shipments   []Shipment `json:"shipments" validate:"min=1,dive"`
	ServiceType string     `json:"serviceType" validate:"required"`
	COD         bool       `json:"cod"`
	Insurance   bool       `json:"insurance"`
	EwayBills   []string   `json:"ewayBills"`
	Documents   []Document `json:"documents"`
	Remarks     string     `json:"remarks"`
}

// DeclaredValue is the sum of product values weighted by quantity across the
// whole product list. It is reported to the rate engine as the insured amount
// when insurance is enabled.
func (d Draft) DeclaredValue() float64 {
	var total float64
	for _, p := range d.Products {
		total += p.Value * float64(p.Quantity)
	}
	return total
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	cloned := d
	cloned.Products = append([]Product(nil), d.Products...)
	cloned.Shipments = append([]Shipment(nil), d.Shipments...)
	cloned.EwayBills = append([]string(nil), d.EwayBills...)
	cloned.Documents = append([]Document(nil), d.Documents...)
	return cloned
}
