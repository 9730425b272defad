package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

// Layouts accepted for order timestamps. RFC 3339 first, then the zone-less
// form clients commonly send ("2025-01-01T00:00:00").
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// New returns a configured validator for request structs. Field names in
// error messages follow the json tag, and the custom "iso8601" rule checks
// date-time strings.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("iso8601", func(fl validatorv10.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})

	return v
}

// ParseTimestamp parses an ISO 8601 date-time string.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, domain.InvalidField("order_date", "order_date must be an ISO 8601 date-time")
}

// Email rejects empty addresses and addresses without an "@".
func Email(value string) error {
	if value == "" || !strings.Contains(value, "@") {
		return domain.InvalidField("email", "email must be a valid email address")
	}
	return nil
}

// Price rejects negative prices. Zero is a valid price.
func Price(value float64) error {
	if value < 0 {
		return domain.InvalidField("price", "price must be a non-negative number")
	}
	return nil
}

// Fields converts a validator error into the InvalidField taxonomy, keeping
// the first failing field's json name in the message.
func Fields(err error) error {
	var verrs validatorv10.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.InvalidField(fe.Field(), fieldMessage(fe))
	}
	return domain.InvalidField("body", err.Error())
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "contains":
		return fmt.Sprintf("%s must contain %q", fe.Field(), fe.Param())
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "iso8601":
		return fe.Field() + " must be an ISO 8601 date-time"
	default:
		return fe.Field() + " is invalid"
	}
}
