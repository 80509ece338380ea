// internal/wizard/validate.go
package wizard

import (
	"encoding/json"
	"fmt"
	"strings"

	"credit-intake/internal/common/errors"
	"credit-intake/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Per-step JSON schemas over the applicant record. The source allowed
// jumping to any step and submitting incomplete data; that lenient
// behavior is preserved, so these schemas gate navigation only when the
// caller opts into strict mode. Schemas constrain types and enums, not
// presence, except for the handful of fields a step cannot render without.
var stepSchemas = map[int]string{
	StepPersonalInfo: `{
		"type": "object",
		"properties": {
			"fullName": {"type": "string", "minLength": 1},
			"CODE_GENDER": {"type": "string", "enum": ["F", "M"]},
			"CNT_CHILDREN": {"type": "integer", "minimum": 0},
			"DAYS_BIRTH": {"type": "integer", "maximum": 0},
			"phoneNumber": {"type": "string"},
			"email": {"type": "string"}
		}
	}`,
	StepPersonalProperty: `{
		"type": "object",
		"properties": {
			"FLAG_OWN_REALTY": {"type": "string", "enum": ["Y", "N"]},
			"FLAG_OWN_CAR": {"type": "string", "enum": ["Y", "N"]},
			"OWN_CAR_AGE": {"type": "integer", "minimum": 0}
		}
	}`,
	StepLoanInfo: `{
		"type": "object",
		"properties": {
			"NAME_CONTRACT_TYPE": {"type": "string", "enum": ["Cash loans", "Revolving loans"]},
			"AMT_CREDIT": {"type": "number", "minimum": 0},
			"hasPurchase": {"type": "string", "enum": ["yes", "no"]},
			"AMT_GOODS_PRICE": {"type": "number", "minimum": 0}
		}
	}`,
	StepProfessionalProfile: `{
		"type": "object",
		"properties": {
			"incomeMonthly": {"type": "number", "minimum": 0},
			"AMT_INCOME_TOTAL": {"type": "number", "minimum": 0},
			"OCCUPATION_TYPE": {"type": "string"},
			"ORGANIZATION_TYPE": {"type": "string"}
		}
	}`,
	StepDocuments: `{
		"type": "object",
		"properties": {
			"file_uploads": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"filename": {"type": "string", "minLength": 1},
						"s3_key": {"type": "string", "minLength": 1},
						"content_type": {"type": "string", "minLength": 1}
					},
					"required": ["filename", "s3_key", "content_type"]
				}
			}
		}
	}`,
}

// ValidateStep checks the record against the given step's schema. A nil
// error means the step's data is well formed. Unknown steps validate
// trivially.
func ValidateStep(step int, rec *models.ApplicantRecord) error {
	schema, ok := stepSchemas[step]
	if !ok {
		return nil
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.NewStepValidationError(step, strings.Join(msgs, "; "))
}
