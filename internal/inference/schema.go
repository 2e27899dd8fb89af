package inference

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var schemaValidator = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	validate := validator.New()
	// band scores are 0-9 in 0.5 steps
	if err := validate.RegisterValidation("band", isBandScore); err != nil {
		panic(err)
	}
	return validate
}

func isBandScore(fl validator.FieldLevel) bool {
	band := fl.Field().Float()
	if band < 0 || band > 9 {
		return false
	}
	doubled := band * 2
	return doubled == math.Trunc(doubled)
}

// ValidateSchema checks a decoded Sentence or Feedback against its required
// fields and score ranges. A failure is a SchemaMismatch: the payload was
// valid JSON but does not match the expected structure.
func ValidateSchema(v any) error {
	if err := schemaValidator.Struct(v); err != nil {
		return &Error{Kind: KindSchemaMismatch, Detail: "response is missing required fields or has out-of-range values", Err: err}
	}
	return nil
}
