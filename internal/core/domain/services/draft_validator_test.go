package services_test

import (
	"testing"

	"console/internal/core/domain/model/draft"
	"console/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() draft.Draft {
	return draft.Draft{
		Sender: draft.Party{
			Name:    "Acme Logistics",
			Phone:   "9876543210",
			Address: "12 Industrial Estate",
			Pincode: "400001",
		},
		Receiver: draft.Party{
			Name:    "Bharat Traders",
			Phone:   "9123456780",
			Address: "7 Market Road",
			Pincode: "110001",
		},
		Products:    []draft.Product{{Type: "Electronics", Name: "Router", Value: 1500, Quantity: 2}},
		Shipments:   []draft.Shipment{{Weight: 2, Length: 10, Breadth: 10, Height: 10}},
		ServiceType: "Standard",
	}
}

func TestDraftValidator_ValidDraftHasNoErrors(t *testing.T) {
	dv := services.NewDraftValidator()
	verrs := dv.Validate(validDraft())
	assert.True(t, verrs.Empty(), "unexpected errors: %v", verrs)
}

func TestDraftValidator_IsPure(t *testing.T) {
	dv := services.NewDraftValidator()
	d := validDraft()
	d.Sender.Phone = "12"

	first := dv.Validate(d)
	second := dv.Validate(d)
	assert.Equal(t, first, second)
}

func TestDraftValidator_RemarksNeverAffectResult(t *testing.T) {
	dv := services.NewDraftValidator()
	d := validDraft()
	d.Receiver.Pincode = "bad"

	withoutRemarks := dv.Validate(d)
	d.Remarks = "please deliver before noon"
	withRemarks := dv.Validate(d)
	assert.Equal(t, withoutRemarks, withRemarks)
}

func TestDraftValidator_FieldRules(t *testing.T) {
	dv := services.NewDraftValidator()

	t.Run("phone must be ten digits", func(t *testing.T) {
		d := validDraft()
		d.Sender.Phone = "12345"
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "sender.phone")
		assert.Equal(t, "phone must be exactly 10 digits", verrs["sender.phone"])
	})

	t.Run("pincode must be six digits", func(t *testing.T) {
		d := validDraft()
		d.Receiver.Pincode = "11000"
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "receiver.pincode")
	})

	t.Run("pincode must be numeric", func(t *testing.T) {
		d := validDraft()
		d.Sender.Pincode = "40000a"
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "sender.pincode")
	})

	t.Run("empty email is allowed", func(t *testing.T) {
		verrs := dv.Validate(validDraft())
		assert.NotContains(t, verrs, "sender.email")
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		d := validDraft()
		d.Sender.Email = "not-an-email"
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "sender.email")
	})

	t.Run("gst format", func(t *testing.T) {
		d := validDraft()
		d.Sender.GST = "27AAPFU0939F1ZV"
		assert.NotContains(t, dv.Validate(d), "sender.gst")

		d.Sender.GST = "INVALID"
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "sender.gst")
		assert.Equal(t, "gst must be a valid GST number", verrs["sender.gst"])
	})

	t.Run("service type required", func(t *testing.T) {
		d := validDraft()
		d.ServiceType = ""
		assert.Contains(t, dv.Validate(d), "serviceType")
	})
}

func TestDraftValidator_ListRules(t *testing.T) {
	dv := services.NewDraftValidator()

	t.Run("empty product list", func(t *testing.T) {
		d := validDraft()
		d.Products = nil
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "products")
	})

	t.Run("product fields indexed by position", func(t *testing.T) {
		d := validDraft()
		d.Products = append(d.Products, draft.Product{Type: "Apparel"})
		verrs := dv.Validate(d)
		assert.Contains(t, verrs, "products.1.name")
		assert.Contains(t, verrs, "products.1.value")
		assert.Contains(t, verrs, "products.1.quantity")
		assert.NotContains(t, verrs, "products.0.name")
	})

	t.Run("shipment dimensions must be positive", func(t *testing.T) {
		d := validDraft()
		d.Shipments[0].Height = 0
		verrs := dv.Validate(d)
		require.Contains(t, verrs, "shipments.0.height")
		assert.Equal(t, "height must be greater than 0", verrs["shipments.0.height"])
	})

	t.Run("empty shipment list", func(t *testing.T) {
		d := validDraft()
		d.Shipments = nil
		assert.Contains(t, dv.Validate(d), "shipments")
	})
}
