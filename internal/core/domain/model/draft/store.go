package draft

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"console/internal/pkg/errs"
)

// Field paths accepted by Store.Set use dotted segments, with list elements
// addressed by index: "sender.pincode", "products.0.value", "shipments.1.weight".
const (
	PathSenderPincode   = "sender.pincode"
	PathReceiverPincode = "receiver.pincode"
	PathServiceType     = "serviceType"
	PathCOD             = "cod"
	PathInsurance       = "insurance"
	PathShipments       = "shipments"
	PathProducts        = "products"
)

// ChangeListener observes draft mutations. It is invoked synchronously after
// every mutation with the path that changed.
type ChangeListener func(path string)

// Store exclusively owns the mutable order draft. All mutations go through
// field-level setters that maintain the list invariants (at least one product
// and one shipment) and notify subscribed listeners.
//
// Store is safe for concurrent use. Listeners are called outside the store
// lock so they may read the store freely.
type Store struct {
	mu        sync.Mutex
	draft     Draft
	listeners []ChangeListener
}

// NewStore creates a store holding the initial draft: one empty product with
// quantity 1, one empty parent shipment, and the default service type.
func NewStore() *Store {
	return &Store{
		draft: Draft{
			Products:    []Product{{Quantity: 1}},
			Shipments:   []Shipment{{}},
			ServiceType: "Standard",
		},
	}
}

// Subscribe registers a listener for subsequent mutations.
func (s *Store) Subscribe(l ChangeListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a deep copy of the current draft.
func (s *Store) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Set overwrites one field of the draft addressed by its dotted path.
// Unknown paths and type mismatches are rejected; list indices must address
// existing elements. No remote calls originate here.
func (s *Store) Set(path string, value any) error {
	s.mu.Lock()
	if err := s.apply(path, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(path)
	return nil
}

// AddProduct appends an empty product line with quantity 1.
func (s *Store) AddProduct() {
	s.mu.Lock()
	s.draft.Products = append(s.draft.Products, Product{Quantity: 1})
	s.mu.Unlock()
	s.notify(PathProducts)
}

// RemoveProduct drops the product at index i. Removal that would leave the
// draft without products is rejected.
func (s *Store) RemoveProduct(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.draft.Products) {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("productIndex", i)
	}
	if len(s.draft.Products) == 1 {
		s.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("products",
			fmt.Errorf("an order needs at least one product"))
	}
	s.draft.Products = append(s.draft.Products[:i], s.draft.Products[i+1:]...)
	s.mu.Unlock()
	s.notify(PathProducts)
	return nil
}

// AddShipment appends an empty child shipment.
func (s *Store) AddShipment() {
	s.mu.Lock()
	s.draft.Shipments = append(s.draft.Shipments, Shipment{})
	s.mu.Unlock()
	s.notify(PathShipments)
}

// RemoveShipment drops the shipment at index i. Removal that would leave the
// draft without shipments is rejected.
func (s *Store) RemoveShipment(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.draft.Shipments) {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("shipmentIndex", i)
	}
	if len(s.draft.Shipments) == 1 {
		s.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("shipments",
			fmt.Errorf("an order needs at least one shipment"))
	}
	s.draft.Shipments = append(s.draft.Shipments[:i], s.draft.Shipments[i+1:]...)
	s.mu.Unlock()
	s.notify(PathShipments)
	return nil
}

// AddEwayBill appends a verified bill number. The e-way bill registry is the
// only caller; it performs deduplication and remote verification first.
func (s *Store) AddEwayBill(number string) {
	s.mu.Lock()
	s.draft.EwayBills = append(s.draft.EwayBills, number)
	s.mu.Unlock()
	s.notify("ewayBills")
}

// RemoveEwayBill unconditionally drops the bill number at index i.
func (s *Store) RemoveEwayBill(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.draft.EwayBills) {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("ewayBillIndex", i)
	}
	s.draft.EwayBills = append(s.draft.EwayBills[:i], s.draft.EwayBills[i+1:]...)
	s.mu.Unlock()
	s.notify("ewayBills")
	return nil
}

// HasEwayBill reports whether the bill number is already attached.
func (s *Store) HasEwayBill(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.draft.EwayBills {
		if existing == number {
			return true
		}
	}
	return false
}

// AddDocument appends an upload receipt.
func (s *Store) AddDocument(doc Document) {
	s.mu.Lock()
	s.draft.Documents = append(s.draft.Documents, doc)
	s.mu.Unlock()
	s.notify("documents")
}

// RemoveDocument drops the local entry at index i. The uploaded object is not
// deleted remotely.
func (s *Store) RemoveDocument(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.draft.Documents) {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("documentIndex", i)
	}
	s.draft.Documents = append(s.draft.Documents[:i], s.draft.Documents[i+1:]...)
	s.mu.Unlock()
	s.notify("documents")
	return nil
}

// PincodeRelevant reports whether a change to path re-arms the
// serviceability stage.
func PincodeRelevant(path string) bool {
	return path == PathSenderPincode || path == PathReceiverPincode
}

// RateRelevant reports whether a change to path re-arms the rate calculation
// stage directly (serviceability result unaffected).
func RateRelevant(path string) bool {
	switch path {
	case PathServiceType, PathCOD, PathInsurance:
		return true
	}
	return path == PathShipments || strings.HasPrefix(path, PathShipments+".")
}

func (s *Store) notify(path string) {
	s.mu.Lock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(path)
	}
}

func (s *Store) apply(path string, value any) error {
	segments := strings.Split(path, ".")

	switch segments[0] {
	case "sender":
		if len(segments) != 2 {
			return unknownPath(path)
		}
		return setPartyField(&s.draft.Sender, segments[1], value, path)
	case "receiver":
		if len(segments) != 2 {
			return unknownPath(path)
		}
		if segments[1] == "gst" {
			// Receivers have no tax identity on the order form.
			return unknownPath(path)
		}
		return setPartyField(&s.draft.Receiver, segments[1], value, path)
	case PathProducts:
		if len(segments) != 3 {
			return unknownPath(path)
		}
		i, err := listIndex(segments[1], len(s.draft.Products), "productIndex")
		if err != nil {
			return err
		}
		return setProductField(&s.draft.Products[i], segments[2], value, path)
	case PathShipments:
		if len(segments) != 3 {
			return unknownPath(path)
		}
		i, err := listIndex(segments[1], len(s.draft.Shipments), "shipmentIndex")
		if err != nil {
			return err
		}
		return setShipmentField(&s.draft.Shipments[i], segments[2], value, path)
	case PathServiceType:
		return setString(&s.draft.ServiceType, value, path)
	case PathCOD:
		return setBool(&s.draft.COD, value, path)
	case PathInsurance:
		return setBool(&s.draft.Insurance, value, path)
	case "remarks":
		return setString(&s.draft.Remarks, value, path)
	}
	return unknownPath(path)
}

func setPartyField(p *Party, field string, value any, path string) error {
	switch field {
	case "name":
		return setString(&p.Name, value, path)
	case "phone":
		return setString(&p.Phone, value, path)
	case "address":
		return setString(&p.Address, value, path)
	case "pincode":
		return setString(&p.Pincode, value, path)
	case "gst":
		return setString(&p.GST, value, path)
	case "email":
		return setString(&p.Email, value, path)
	}
	return unknownPath(path)
}

func setProductField(p *Product, field string, value any, path string) error {
	switch field {
	case "type":
		return setString(&p.Type, value, path)
	case "name":
		return setString(&p.Name, value, path)
	case "value":
		return setFloat(&p.Value, value, path)
	case "quantity":
		return setInt(&p.Quantity, value, path)
	}
	return unknownPath(path)
}

func setShipmentField(sh *Shipment, field string, value any, path string) error {
	switch field {
	case "weight":
		return setFloat(&sh.Weight, value, path)
	case "length":
		return setFloat(&sh.Length, value, path)
	case "breadth":
		return setFloat(&sh.Breadth, value, path)
	case "height":
		return setFloat(&sh.Height, value, path)
	}
	return unknownPath(path)
}

func setString(dst *string, value any, path string) error {
	v, ok := value.(string)
	if !ok {
		return typeMismatch(path, "string", value)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value any, path string) error {
	v, ok := value.(bool)
	if !ok {
		return typeMismatch(path, "bool", value)
	}
	*dst = v
	return nil
}

// setFloat accepts native numbers plus numeric strings, since form inputs
// deliver dimension and value fields as text.
func setFloat(dst *float64, value any, path string) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return typeMismatch(path, "number", value)
		}
		*dst = parsed
	default:
		return typeMismatch(path, "number", value)
	}
	return nil
}

func setInt(dst *int, value any, path string) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case float64:
		if v != float64(int(v)) {
			return typeMismatch(path, "integer", value)
		}
		*dst = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return typeMismatch(path, "integer", value)
		}
		*dst = parsed
	default:
		return typeMismatch(path, "integer", value)
	}
	return nil
}

func listIndex(segment string, size int, paramName string) (int, error) {
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if i < 0 || i >= size {
		return 0, errs.NewObjectNotFoundError(paramName, i)
	}
	return i, nil
}

func unknownPath(path string) error {
	return errs.NewValueIsInvalidErrorWithCause("path", fmt.Errorf("unknown draft field %q", path))
}

func typeMismatch(path, want string, got any) error {
	return errs.NewValueIsInvalidErrorWithCause(path, fmt.Errorf("expected %s, got %T", want, got))
}
