package utils

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Aashish23092/statement-parser/dto"
)

// Shape contracts per document type. Record lists are type-checked when
// present; the serializer omits the list that does not apply to the type.
const baseResultSchema = `{
	"type": "object",
	"required": ["document_type", "header", "confidence", "warnings"],
	"properties": {
		"document_type": {"enum": ["bank_statement", "tax_statement", "unknown"]},
		"header": {"type": "object"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"warnings": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["code", "message"],
				"properties": {
					"code": {"type": "string"},
					"message": {"type": "string"}
				}
			}
		}
	}
}`

const bankResultSchema = `{
	"type": "object",
	"required": ["document_type", "header", "confidence", "warnings"],
	"properties": {
		"document_type": {"const": "bank_statement"},
		"header": {"type": "object"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"warnings": {
			"type": "array",
			"items": {"type": "object", "required": ["code", "message"]}
		},
		"transactions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["date"],
				"properties": {
					"date": {"type": "string"},
					"description": {"type": ["string", "null"]},
					"debit": {"type": ["number", "null"]},
					"credit": {"type": ["number", "null"]},
					"balance": {"type": ["number", "null"]},
					"reference": {"type": ["string", "null"]}
				}
			}
		}
	}
}`

const taxResultSchema = `{
	"type": "object",
	"required": ["document_type", "header", "confidence", "warnings"],
	"properties": {
		"document_type": {"const": "tax_statement"},
		"header": {"type": "object"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"warnings": {
			"type": "array",
			"items": {"type": "object", "required": ["code", "message"]}
		},
		"deductors": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["transactions"],
				"properties": {
					"name": {"type": ["string", "null"]},
					"tan": {"type": ["string", "null"]},
					"pan": {"type": ["string", "null"]},
					"total_amount_paid": {"type": ["number", "null"]},
					"total_tax_deducted": {"type": ["number", "null"]},
					"total_tds_deposited": {"type": ["number", "null"]},
					"transactions": {
						"type": "array",
						"items": {
							"type": "object",
							"properties": {
								"section": {"type": ["string", "null"]},
								"transaction_date": {"type": ["string", "null"]},
								"booking_date": {"type": ["string", "null"]},
								"status_of_booking": {"type": ["string", "null"]},
								"remarks": {"type": ["string", "null"]},
								"amount_paid": {"type": ["number", "null"]},
								"tax_deducted": {"type": ["number", "null"]},
								"tds_deposited": {"type": ["number", "null"]}
							}
						}
					}
				}
			}
		}
	}
}`

var (
	compiledBaseSchema = jsonschema.MustCompileString("base_result.json", baseResultSchema)
	compiledBankSchema = jsonschema.MustCompileString("bank_result.json", bankResultSchema)
	compiledTaxSchema  = jsonschema.MustCompileString("tax_result.json", taxResultSchema)
)

func schemaFor(docType dto.DocumentType) *jsonschema.Schema {
	switch docType {
	case dto.DocTypeBankStatement:
		return compiledBankSchema
	case dto.DocTypeTaxStatement:
		return compiledTaxSchema
	default:
		return compiledBaseSchema
	}
}

// ValidateSchema checks the assembled result against the shape contract for
// its document type. Violations come back as SCHEMA_VALIDATION warnings;
// validation never blocks the result from being returned.
func ValidateSchema(result *dto.ExtractionResult) (bool, []dto.Warning) {
	raw, err := json.Marshal(result)
	if err != nil {
		return false, []dto.Warning{{
			Code:    dto.WarnSchemaValidation,
			Message: fmt.Sprintf("result not serializable: %v", err),
		}}
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return false, []dto.Warning{{
			Code:    dto.WarnSchemaValidation,
			Message: fmt.Sprintf("result not deserializable: %v", err),
		}}
	}

	err = schemaFor(result.DocumentType).Validate(instance)
	if err == nil {
		return true, nil
	}

	var warnings []dto.Warning
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		for _, unit := range ve.BasicOutput().Errors {
			if unit.Error == "" {
				continue
			}
			warnings = append(warnings, dto.Warning{
				Code:    dto.WarnSchemaValidation,
				Message: fmt.Sprintf("%s: %s", unit.InstanceLocation, unit.Error),
			})
		}
	}
	if len(warnings) == 0 {
		warnings = append(warnings, dto.Warning{
			Code:    dto.WarnSchemaValidation,
			Message: err.Error(),
		})
	}
	return false, warnings
}
