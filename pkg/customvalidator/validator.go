// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"database/sql/driver"
	"reflect"
	"regexp"
	"time"

	"gearguard/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations регистрирует правила предметной области в валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"email":          isGoodEmailFormat,
		"role":           isRole,
		"request_type":   isRequestType,
		"request_status": isRequestStatus,
		"date_ymd":       isDateYMD,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	// правила для null.* применяются к значению, невалидное значение пропускается omitempty
	v.RegisterCustomTypeFunc(nullValue, null.String{}, null.Uint64{}, null.Bool{}, null.Int64{}, null.Time{})
	return nil
}

func nullValue(field reflect.Value) interface{} {
	valuer, ok := field.Interface().(driver.Valuer)
	if !ok {
		return nil
	}
	val, err := valuer.Value()
	if err != nil {
		return nil
	}
	return val
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isRole(fl validator.FieldLevel) bool {
	return constants.IsValidRole(fl.Field().String())
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.IsValidRequestType(fl.Field().String())
}

func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.IsValidStatus(fl.Field().String())
}

func isDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
