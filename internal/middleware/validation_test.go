package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Payload shaped like the catalog inputs: two required strings and an
// optional bounded quantity.
type upsertPayload struct {
	Name     string `json:"name" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=100000"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeURL bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Shoes"
			}
			if includeURL {
				reqMap["url"] = "shoes"
			}

			allFieldsPresent := includeName && includeURL

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var payload upsertPayload
			err := DecodeAndValidate(req, &payload)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			reqMap := map[string]interface{}{
				"name":     "Shoes",
				"quantity": 10,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var payload upsertPayload
			err := DecodeAndValidate(req, &payload)
			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_QuantityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity outside valid range is rejected", prop.ForAll(
		func(quantity int) bool {
			reqMap := map[string]interface{}{
				"name":     "Shoes",
				"url":      "shoes",
				"quantity": quantity,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var payload upsertPayload
			err := DecodeAndValidate(req, &payload)

			if quantity >= 0 && quantity <= 100000 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-1000, 200000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecodeAndValidate_RejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte(`{"name": `)))
	req.Header.Set("Content-Type", "application/json")

	var payload upsertPayload
	if err := DecodeAndValidate(req, &payload); err == nil {
		t.Fatal("expected a decode error for malformed JSON")
	}
}
