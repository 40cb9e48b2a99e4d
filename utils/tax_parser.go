package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/statement-parser/dto"
)

// Document-level header searches for tax/TDS statements.
var taxHeaderRules = []FieldRule{
	{"pan", regexp.MustCompile(`(?i)\bpan(?:\s+of\s+(?:the\s+)?(?:employee|deductee|assessee))?\s*(?:no\.?|number)?\s*[:\-]?\s*([A-Za-z]{5}[0-9]{4}[A-Za-z])\b`), PostUpper},
	{"name", regexp.MustCompile(`(?i)name\s+of\s+(?:the\s+)?(?:employee|deductee|assessee)\s*[:\-]?\s*([A-Za-z][A-Za-z .]{2,60})`), PostText},
	{"assessment_year", regexp.MustCompile(`(?i)assessment\s+year\s*[:\-]?\s*(\d{4}\s*-\s*\d{2,4})`), PostText},
	{"financial_year", regexp.MustCompile(`(?i)financial\s+year\s*[:\-]?\s*(\d{4}\s*-\s*\d{2,4})`), PostText},
	{"certificate_number", regexp.MustCompile(`(?i)certificate\s+(?:no|number)\.?\s*[:\-]?\s*([A-Za-z0-9]{6,10})\b`), PostUpper},
	{"quarter", regexp.MustCompile(`(?i)\bquarter\s*[:\-]?\s*(Q[1-4])\b`), PostUpper},
	{"total_tax_deducted", regexp.MustCompile(`(?i)total\s+(?:tax\s+deducted|tds)[^0-9(]*(\(?[\d,]+\.\d{1,2}\)?)`), PostAmount},
}

// TaxRequiredFields drive the completeness confidence for tax headers.
var TaxRequiredFields = []string{"pan", "assessment_year"}

// A new deductor block starts at any of these markers; everything up to the
// next marker (or end of document) belongs to the block.
var deductorStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)name\s+of\s+(?:the\s+)?deductor`),
	regexp.MustCompile(`(?i)deductor(?:'s)?\s+(?:name|details)`),
	regexp.MustCompile(`(?i)^part\s+[ab]\b`),
}

// Identity and totals searches scoped to one deductor block.
var deductorFieldRules = []FieldRule{
	{"name", regexp.MustCompile(`(?i)(?:name\s+of\s+(?:the\s+)?deductor|deductor(?:'s)?\s+name)\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9 .,&()\-]{2,80})`), PostText},
	{"tan", regexp.MustCompile(`(?i)\btan(?:\s+of\s+(?:the\s+)?deductor)?\s*(?:no\.?|number)?\s*[:\-]?\s*([A-Za-z]{4}[0-9]{5}[A-Za-z])\b`), PostUpper},
	{"pan", regexp.MustCompile(`(?i)\bpan(?:\s+of\s+(?:the\s+)?deductor)?\s*(?:no\.?|number)?\s*[:\-]?\s*([A-Za-z]{5}[0-9]{4}[A-Za-z])\b`), PostUpper},
	{"total_amount_paid", regexp.MustCompile(`(?i)total\s+(?:amount\s+(?:paid|credited)|of\s+amount\s+paid)[^0-9(]*(\(?[\d,]+\.\d{1,2}\)?)`), PostAmount},
	{"total_tax_deducted", regexp.MustCompile(`(?i)total\s+tax\s+deducted[^0-9(]*(\(?[\d,]+\.\d{1,2}\)?)`), PostAmount},
	{"total_tds_deposited", regexp.MustCompile(`(?i)total\s+(?:tds|tax)\s+deposited[^0-9(]*(\(?[\d,]+\.\d{1,2}\)?)`), PostAmount},
}

var (
	// Statutory TDS section codes: leading 1, two digits, optional letter.
	sectionCodeTokenRe = regexp.MustCompile(`^1\d{2}[A-Z]?$`)
	statusTokenRe      = regexp.MustCompile(`^[FUPO]$`)
	taxSubTableRe      = regexp.MustCompile(`(?i)section`)
	taxSubTableAuxRe   = regexp.MustCompile(`(?i)transaction|date`)
	remarksRe          = regexp.MustCompile(`(?i)remarks?\s*[:\-]\s*(.+)$`)
	grandTotalLineRe   = regexp.MustCompile(`(?i)\b(?:grand\s+)?total\b`)
)

var statusOfBooking = map[string]string{
	"F": "Final",
	"U": "Unmatched",
	"P": "Provisional",
	"O": "Overbooked",
}

func isDeductorStart(line string) bool {
	for _, p := range deductorStartPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// splitDeductorBlocks segments the line sequence into per-deductor blocks.
// With no start marker anywhere, the whole document is one block.
func splitDeductorBlocks(lines []string) [][]string {
	var starts []int
	for i, line := range lines {
		if isDeductorStart(line) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		if len(lines) == 0 {
			return nil
		}
		return [][]string{lines}
	}
	var blocks [][]string
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks = append(blocks, lines[start:end])
	}
	return blocks
}

// findTaxSubTableHeader locates the transaction sub-table header inside a
// block: a line carrying both a section token and a transaction/date token.
func findTaxSubTableHeader(blockLines []string) int {
	for i, line := range blockLines {
		if taxSubTableRe.MatchString(line) && taxSubTableAuxRe.MatchString(line) {
			return i
		}
	}
	return -1
}

// sectionCode returns the first whitespace-delimited token that is a valid
// TDS section code. Token-wise matching keeps amounts like 150.00 and date
// fragments from being misread as codes.
func sectionCode(line string) *string {
	for _, token := range strings.Fields(line) {
		if sectionCodeTokenRe.MatchString(token) {
			return &token
		}
	}
	return nil
}

func bookingStatus(line string) *string {
	for _, token := range strings.Fields(line) {
		if statusTokenRe.MatchString(token) {
			s := statusOfBooking[token]
			return &s
		}
	}
	return nil
}

// parseTaxRow builds one TDS transaction from an accepted row line: up to two
// dates (transaction, then booking), a status-of-booking letter, optional
// remarks and up to three positional amounts.
func parseTaxRow(line string) dto.TaxTransaction {
	txn := dto.TaxTransaction{}
	txn.Section = sectionCode(line)

	dates := dateTokenRe.FindAllString(line, 2)
	if len(dates) > 0 {
		txn.TransactionDate = NormalizeDate(dates[0])
	}
	if len(dates) > 1 {
		txn.BookingDate = NormalizeDate(dates[1])
	}

	txn.StatusOfBooking = bookingStatus(line)

	if m := remarksRe.FindStringSubmatch(line); len(m) > 1 {
		if v := PostText(m[1]); v != nil {
			s := v.(string)
			txn.Remarks = &s
		}
	}

	amounts, _ := rowAmounts(line)
	if len(amounts) > 0 {
		txn.AmountPaid = &amounts[0]
	}
	if len(amounts) > 1 {
		txn.TaxDeducted = &amounts[1]
	}
	if len(amounts) > 2 {
		txn.TDSDeposited = &amounts[2]
	}
	return txn
}

// parseDeductorBlock extracts identity, totals and transaction rows from one
// block of lines.
func parseDeductorBlock(blockLines []string) dto.Deductor {
	blockText := strings.Join(blockLines, "\n")
	fields := ExtractFields(blockText, deductorFieldRules)

	d := dto.Deductor{
		Name:              StringField(fields["name"]),
		TAN:               StringField(fields["tan"]),
		PAN:               StringField(fields["pan"]),
		TotalAmountPaid:   NumberField(fields["total_amount_paid"]),
		TotalTaxDeducted:  NumberField(fields["total_tax_deducted"]),
		TotalTDSDeposited: NumberField(fields["total_tds_deposited"]),
		Transactions:      []dto.TaxTransaction{},
	}

	headerIdx := findTaxSubTableHeader(blockLines)
	rows := blockLines
	if headerIdx >= 0 {
		rows = blockLines[headerIdx+1:]
	}
	for _, line := range rows {
		if separatorLineRe.MatchString(line) {
			continue
		}
		if grandTotalLineRe.MatchString(line) {
			break
		}
		accepted := sectionCode(line) != nil
		if !accepted && headerIdx < 0 {
			accepted = dateTokenRe.MatchString(line)
		}
		if !accepted {
			continue
		}
		d.Transactions = append(d.Transactions, parseTaxRow(line))
	}
	return d
}

func emptyDeductor(d dto.Deductor) bool {
	return d.Name == nil && d.TAN == nil && d.PAN == nil &&
		d.TotalAmountPaid == nil && d.TotalTaxDeducted == nil &&
		d.TotalTDSDeposited == nil && len(d.Transactions) == 0
}

// ParseTaxStatement extracts the tax header and deductor sections from
// normalized text and repaired lines. Blocks that yield neither identity nor
// rows are discarded so empty documents report zero deductors.
func ParseTaxStatement(text string, lines []string) (dto.Header, []dto.Deductor, []dto.Warning) {
	header := ExtractFields(text, taxHeaderRules)
	header["currency"] = detectCurrency(text)

	var deductors []dto.Deductor
	for _, block := range splitDeductorBlocks(lines) {
		d := parseDeductorBlock(block)
		if emptyDeductor(d) {
			continue
		}
		deductors = append(deductors, d)
	}
	return header, deductors, nil
}
