package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/statement-parser/dto"
)

func validBankResult() *dto.ExtractionResult {
	desc := "SALARY CREDIT"
	credit := 55000.00
	return &dto.ExtractionResult{
		DocumentType: dto.DocTypeBankStatement,
		Header:       dto.Header{"account_number": "12345678901", "account_holder": nil},
		Transactions: []dto.BankTransaction{
			{Date: "2024-01-01", Description: &desc, Credit: &credit},
		},
		Confidence: 0.85,
		Warnings:   []dto.Warning{},
	}
}

func TestValidateSchemaAcceptsBankResult(t *testing.T) {
	ok, warnings := ValidateSchema(validBankResult())

	assert.True(t, ok)
	assert.Empty(t, warnings)
}

func TestValidateSchemaRejectsOutOfRangeConfidence(t *testing.T) {
	result := validBankResult()
	result.Confidence = 1.5

	ok, warnings := ValidateSchema(result)

	assert.False(t, ok)
	if assert.NotEmpty(t, warnings) {
		for _, w := range warnings {
			assert.Equal(t, dto.WarnSchemaValidation, w.Code)
		}
	}
}

func TestValidateSchemaUnknownUsesBaseContract(t *testing.T) {
	result := &dto.ExtractionResult{
		DocumentType: dto.DocTypeUnknown,
		Header:       dto.Header{},
		Confidence:   0.08,
		Warnings: []dto.Warning{
			{Code: dto.WarnUnknownDocumentType, Message: "no evidence"},
		},
	}

	ok, warnings := ValidateSchema(result)

	assert.True(t, ok)
	assert.Empty(t, warnings)
}

func TestValidateSchemaRejectsForeignDocumentType(t *testing.T) {
	result := validBankResult()
	result.DocumentType = dto.DocumentType("receipt")

	ok, warnings := ValidateSchema(result)

	assert.False(t, ok)
	assert.NotEmpty(t, warnings)
}

func TestValidateSchemaAcceptsTaxResult(t *testing.T) {
	tan := "MUMX12345A"
	section := "192"
	result := &dto.ExtractionResult{
		DocumentType: dto.DocTypeTaxStatement,
		Header:       dto.Header{"pan": "ABCDE1234F", "assessment_year": "2024-25"},
		Deductors: []dto.Deductor{
			{
				TAN: &tan,
				Transactions: []dto.TaxTransaction{
					{Section: &section},
				},
			},
		},
		Confidence: 0.9,
		Warnings:   []dto.Warning{},
	}

	ok, warnings := ValidateSchema(result)

	assert.True(t, ok)
	assert.Empty(t, warnings)
}
