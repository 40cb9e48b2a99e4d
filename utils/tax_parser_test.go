package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const taxStatementFixture = `Form 26AS Annual Tax Statement
PAN: ABCDE1234F
Assessment Year: 2024-25

Name of Deductor: XYZ Pvt Ltd
TAN: MUMX12345A
192 30/04/2024 F 5500.00
192 31/05/2024 F 5500.00
Total Tax Deducted: 11000.00

Name of Deductor: ABC Services Ltd
TAN: DELA54321B
194C 15/05/2024 31/05/2024 P 12000.00 1200.00 1200.00`

func TestParseTaxStatementHeader(t *testing.T) {
	header, _, _ := ParseTaxStatement(Normalize(taxStatementFixture), GetLines(RepairText(taxStatementFixture)))

	assert.Equal(t, "ABCDE1234F", header["pan"])
	assert.Equal(t, "2024-25", header["assessment_year"])
	assert.Equal(t, "INR", header["currency"])
	v, ok := header["certificate_number"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestParseTaxStatementDeductors(t *testing.T) {
	_, deductors, warnings := ParseTaxStatement(Normalize(taxStatementFixture), GetLines(RepairText(taxStatementFixture)))

	assert.Empty(t, warnings)
	assert.Len(t, deductors, 2)

	first := deductors[0]
	if assert.NotNil(t, first.Name) {
		assert.Equal(t, "XYZ Pvt Ltd", *first.Name)
	}
	if assert.NotNil(t, first.TAN) {
		assert.Equal(t, "MUMX12345A", *first.TAN)
	}
	assert.Nil(t, first.PAN)
	if assert.NotNil(t, first.TotalTaxDeducted) {
		assert.InDelta(t, 11000.00, *first.TotalTaxDeducted, 0.001)
	}

	assert.Len(t, first.Transactions, 2)
	row := first.Transactions[0]
	if assert.NotNil(t, row.Section) {
		assert.Equal(t, "192", *row.Section)
	}
	if assert.NotNil(t, row.TransactionDate) {
		assert.Equal(t, "2024-04-30", *row.TransactionDate)
	}
	if assert.NotNil(t, row.StatusOfBooking) {
		assert.Equal(t, "Final", *row.StatusOfBooking)
	}
	if assert.NotNil(t, row.AmountPaid) {
		assert.InDelta(t, 5500.00, *row.AmountPaid, 0.001)
	}

	second := deductors[1]
	if assert.NotNil(t, second.TAN) {
		assert.Equal(t, "DELA54321B", *second.TAN)
	}
	assert.Len(t, second.Transactions, 1)
	full := second.Transactions[0]
	if assert.NotNil(t, full.Section) {
		assert.Equal(t, "194C", *full.Section)
	}
	if assert.NotNil(t, full.BookingDate) {
		assert.Equal(t, "2024-05-31", *full.BookingDate)
	}
	if assert.NotNil(t, full.StatusOfBooking) {
		assert.Equal(t, "Provisional", *full.StatusOfBooking)
	}
	if assert.NotNil(t, full.TaxDeducted) {
		assert.InDelta(t, 1200.00, *full.TaxDeducted, 0.001)
	}
	if assert.NotNil(t, full.TDSDeposited) {
		assert.InDelta(t, 1200.00, *full.TDSDeposited, 0.001)
	}
}

func TestParseTaxStatementSubTableHeader(t *testing.T) {
	text := `Deductor Name: PQR Industries
TAN: CHEP67890C
Section   Transaction Date   Status   Amount Paid
identity preamble should not become a row
194H 10/06/2024 U 800.00`

	_, deductors, _ := ParseTaxStatement(Normalize(text), GetLines(RepairText(text)))

	if assert.Len(t, deductors, 1) {
		d := deductors[0]
		// with a sub-table header present, only section-coded rows qualify
		if assert.Len(t, d.Transactions, 1) {
			if assert.NotNil(t, d.Transactions[0].StatusOfBooking) {
				assert.Equal(t, "Unmatched", *d.Transactions[0].StatusOfBooking)
			}
		}
	}
}

func TestParseTaxStatementNoMarkerSingleBlock(t *testing.T) {
	text := `TAN: BLRT54321C
192 30/04/2024 F 5500.00`

	_, deductors, _ := ParseTaxStatement(Normalize(text), GetLines(RepairText(text)))

	if assert.Len(t, deductors, 1) {
		if assert.NotNil(t, deductors[0].TAN) {
			assert.Equal(t, "BLRT54321C", *deductors[0].TAN)
		}
		assert.Len(t, deductors[0].Transactions, 1)
	}
}

func TestParseTaxStatementEmptyInput(t *testing.T) {
	_, deductors, _ := ParseTaxStatement("", nil)
	assert.Empty(t, deductors)
}

func TestParseTaxStatementDiscardsEmptyBlocks(t *testing.T) {
	// marker present but nothing extractable under it
	text := `Deductor Details
...`

	_, deductors, _ := ParseTaxStatement(Normalize(text), GetLines(RepairText(text)))
	assert.Empty(t, deductors)
}

func TestSectionCodeTokenMatching(t *testing.T) {
	if s := sectionCode("192 30/04/2024 F 5500.00"); assert.NotNil(t, s) {
		assert.Equal(t, "192", *s)
	}
	if s := sectionCode("194C 15/05/2024"); assert.NotNil(t, s) {
		assert.Equal(t, "194C", *s)
	}
	// amounts and dates must not read as section codes
	assert.Nil(t, sectionCode("150.00 balance"))
	assert.Nil(t, sectionCode("30/04/2024 credit"))
	assert.Nil(t, sectionCode("TAN: MUMX12345A"))
}
