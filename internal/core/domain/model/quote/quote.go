// Package quote defines the rate quote value types produced by the rate
// calculation stage and consumed by the submission assembler.
package quote

// Charge is one named line in a quote's price breakdown.
type Charge struct {
	Name   string
	Amount float64
}

// AddressDetail carries the city/state/country metadata the rate engine
// resolves for a pincode. The submission assembler needs it to build the
// pickup and delivery address records.
type AddressDetail struct {
	City    string
	State   string
	Country string
}

// RateQuote is the computed price breakdown for a specific shipment
// configuration. A quote is created fresh on every successful rate
// calculation and discarded whenever any input it depends on changes or
// serviceability stops being successful.
type RateQuote struct {
	BaseRate              float64
	TotalAmount           float64
	Charges               []Charge
	ChargeableWeightGrams float64
	Origin                AddressDetail
	Destination           AddressDetail
}

// Clone returns a deep copy so callers cannot mutate the stage-owned quote.
func (q RateQuote) Clone() RateQuote {
	cloned := q
	cloned.Charges = append([]Charge(nil), q.Charges...)
	return cloned
}
