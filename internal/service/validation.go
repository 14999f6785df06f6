package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Entity names used as cache keys
const (
	entityLawyers  = string(domain.TableLawyers)
	entityClients  = string(domain.TableClients)
	entityServices = string(domain.TableLegalServices)
	entityCases    = string(domain.TableCases)
	entitySettings = string(domain.TableFirmSettings)
)

// titleError heads every failure notification
const titleError = "Error"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks struct tags and reports failures by JSON field name
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(err.Error(), "", "")
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = domain.GetValidationMessage(fe.Tag())
	}
	return &domain.ValidationError{Message: "validation failed", Fields: fields}
}

func notifyFailure(ctx context.Context, n Notifier, err error) error {
	n.Failure(ctx, titleError, err)
	return err
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError("amounts cannot be negative", field, "Must be greater than or equal to 0")
	}
	return nil
}

func percentage(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		return domain.NewValidationError("percentage must be between 0 and 100", field, "Must be between 0 and 100")
	}
	return nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError("invalid date", field, domain.GetValidationMessage("datetime"))
	}
	return &t, nil
}

// jsonList encodes a string list for a map update of a JSON-serialized column.
// Map updates bypass the gorm serializer.
func jsonList(values []string) string {
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}
