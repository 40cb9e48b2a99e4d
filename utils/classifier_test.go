package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/statement-parser/dto"
)

func TestClassifyBankStatement(t *testing.T) {
	text := `HDFC Bank Statement of Account
Account Number: 12345678901
Opening Balance 5,000.00
Closing Balance 8,000.00
IFSC: HDFC0001234`

	verdict := Classify(text, "")

	assert.Equal(t, dto.DocTypeBankStatement, verdict.DocumentType)
	assert.Greater(t, verdict.Confidence, 0.5)
	assert.Greater(t, verdict.BankScore, verdict.TaxScore)
}

func TestClassifyTaxStatement(t *testing.T) {
	text := `Form 26AS Annual Tax Statement
Tax Deducted at Source
Name of Deductor: XYZ Pvt Ltd
TAN: MUMX12345A
Assessment Year: 2024-25`

	verdict := Classify(text, "")

	assert.Equal(t, dto.DocTypeTaxStatement, verdict.DocumentType)
	assert.Greater(t, verdict.Confidence, 0.5)
}

func TestClassifyBelowThresholdIsUnknown(t *testing.T) {
	verdict := Classify("one deposit was made", "")

	assert.Equal(t, dto.DocTypeUnknown, verdict.DocumentType)
	assert.Equal(t, 0.0, verdict.Confidence)
}

func TestClassifyEmptyInput(t *testing.T) {
	verdict := Classify("", "")

	assert.Equal(t, dto.DocTypeUnknown, verdict.DocumentType)
	assert.Equal(t, 0.0, verdict.Confidence)
	assert.Equal(t, 0, verdict.BankScore)
	assert.Equal(t, 0, verdict.TaxScore)
}

func TestClassifyTieFavorsBank(t *testing.T) {
	// bank: deposit+withdrawal+debit+credit = 8, tax: tds+challan = 8
	verdict := Classify("deposit withdrawal debit credit tds challan", "")

	assert.Equal(t, verdict.BankScore, verdict.TaxScore)
	assert.Equal(t, dto.DocTypeBankStatement, verdict.DocumentType)
}

func TestClassifyFilenameBonus(t *testing.T) {
	// body alone scores below the threshold
	text := "Account Number: 12345678901"
	assert.Equal(t, dto.DocTypeUnknown, Classify(text, "").DocumentType)

	verdict := Classify(text, "bank_statement_jan.pdf")
	assert.Equal(t, dto.DocTypeBankStatement, verdict.DocumentType)
	assert.Greater(t, verdict.BankScore, 10)
}

func TestClassifyCapsRepeatedKeyword(t *testing.T) {
	verdict := Classify("tds tds tds tds tds", "")

	// contribution capped at two occurrences: 2 x 5
	assert.Equal(t, 10, verdict.TaxScore)
	assert.Equal(t, dto.DocTypeTaxStatement, verdict.DocumentType)
}
