package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"console/internal/core/domain/model/draft"
)

// gstinPattern is the fixed regional tax identifier format:
// 2-digit state code, 5-letter PAN prefix, 4 digits, entity letter,
// registration digit, the literal Z, and a check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidationErrors maps a draft field path (store path syntax, e.g.
// "products.0.name") to a human-readable message. An empty map means the
// draft satisfies every local rule.
type ValidationErrors map[string]string

// Empty reports whether the draft passed all local validation rules.
func (e ValidationErrors) Empty() bool {
	return len(e) == 0
}

// DraftValidator derives the full error set for a draft. The derivation is
// deterministic and side-effect free; it is re-run from scratch on every
// draft change rather than diffed incrementally.
type DraftValidator struct {
	validate *validator.Validate
}

// NewDraftValidator creates a validator with the draft rule set registered.
func NewDraftValidator() *DraftValidator {
	v := validator.New()

	// Registration cannot fail for a non-empty tag with a non-nil func.
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return gstinPattern.MatchString(fl.Field().String())
	})

	return &DraftValidator{validate: v}
}

// Validate rebuilds the complete error set for the given draft.
func (dv *DraftValidator) Validate(d draft.Draft) ValidationErrors {
	result := ValidationErrors{}

	err := dv.validate.Struct(d)
	if err == nil {
		return result
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result["draft"] = "draft could not be validated"
		return result
	}

	for _, fe := range verrs {
		result[fieldPath(fe.Namespace())] = fieldMessage(fe)
	}
	return result
}

// fieldPath converts a validator namespace such as "Draft.Products[0].Name"
// into store path syntax: "products.0.name".
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 0 && segments[0] == "Draft" {
		segments = segments[1:]
	}

	var parts []string
	for _, segment := range segments {
		if open := strings.IndexByte(segment, '['); open >= 0 {
			index := strings.TrimSuffix(segment[open+1:], "]")
			parts = append(parts, lowerSegment(segment[:open]), index)
			continue
		}
		parts = append(parts, lowerSegment(segment))
	}
	return strings.Join(parts, ".")
}

// lowerSegment lowercases the leading rune; acronym segments (GST, COD)
// are lowered entirely.
func lowerSegment(s string) string {
	if s == "" {
		return s
	}
	if strings.ToUpper(s) == s {
		return strings.ToLower(s)
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func fieldMessage(fe validator.FieldError) string {
	label := lowerSegment(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "len":
		return fmt.Sprintf("%s must be exactly %s digits", label, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "gstin":
		return fmt.Sprintf("%s must be a valid GST number", label)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entry", label, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s validation", label, fe.Tag())
	}
}
