package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `validate:"required,email"`
	Role   string `validate:"omitempty,role"`
	Type   string `validate:"omitempty,request_type"`
	Status string `validate:"omitempty,request_status"`
	Date   string `validate:"omitempty,date_ymd"`
}

func TestRegisterCustomValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	valid := sample{Email: "a@b.io", Role: "technician", Type: "preventive", Status: "in_progress", Date: "2025-02-28"}
	assert.NoError(t, v.Struct(valid))

	cases := map[string]sample{
		"email":  {Email: "not-an-email"},
		"role":   {Email: "a@b.io", Role: "root"},
		"type":   {Email: "a@b.io", Type: "urgent"},
		"status": {Email: "a@b.io", Status: "done"},
		"date":   {Email: "a@b.io", Date: "2025-02-30"},
	}
	for name, s := range cases {
		assert.Error(t, v.Struct(s), name)
	}
}

type nullSample struct {
	Name   null.String `validate:"omitempty,min=1,max=5"`
	TeamID null.Uint64 `validate:"omitempty,gt=0"`
	Date   null.String `validate:"omitempty,date_ymd"`
}

func TestNullTypesAreValidatedByValue(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	assert.NoError(t, v.Struct(nullSample{}), "отсутствующие поля пропускаются")
	assert.NoError(t, v.Struct(nullSample{Name: null.StringFrom("Pump"), TeamID: null.Uint64From(3), Date: null.StringFrom("2025-01-31")}))

	assert.Error(t, v.Struct(nullSample{Name: null.StringFrom("too long name")}))
	assert.Error(t, v.Struct(nullSample{Date: null.StringFrom("31.01.2025")}))
}
