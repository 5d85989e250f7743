package request

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/remodela-api/internal/domain/enum"
)

// DateLayout is the wire format of every date-only field.
const DateLayout = "2006-01-02"

// RegisterValidators adds the domain tags used by the request structs to
// gin's validator and reports fields by their json names. It is safe to call
// more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
		}
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return enum.PaymentMethod(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("quote_status", func(fl validator.FieldLevel) bool {
		return enum.QuoteStatus(fl.Field().String()).IsValid()
	})
}

// ParseDate reads an optional date-only field. Values are validated by the
// datetime tag before this is called.
func ParseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
