package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/statement-parser/dto"
)

// Row-level tokens shared by the bank and tax table extractors.
var (
	dateTokenRe = regexp.MustCompile(`\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}[- ][A-Za-z]{3,9}[- ,]\s?\d{2,4}\b`)
	// Two-decimal monetary tokens. Dot-delimited dates also match, so row
	// parsers filter out anything overlapping a date span.
	moneyTokenRe = regexp.MustCompile(`\d[\d,]*\.\d{2}\b`)

	separatorLineRe = regexp.MustCompile(`^[\s\-=_|+.*]+$`)
	summaryLineRe   = regexp.MustCompile(`(?i)\b(?:grand\s+total|total|closing\s+balance|opening\s+balance)\b`)

	debitKeywordRe  = regexp.MustCompile(`(?i)\b(?:dr|debit|withdrawal|atm|pos|purchase|paid)\b`)
	creditKeywordRe = regexp.MustCompile(`(?i)\b(?:cr|credit|deposit|salary|refund|interest)\b`)

	bankReferenceRe = regexp.MustCompile(`(?i)\b(?:ref(?:erence)?|txn|cheque|chq|utr)\s*(?:no|id|#)?\.?\s*[:\-]?\s*([A-Za-z0-9]{8,20})\b`)
)

const bankDateCapture = `(\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}[- ][A-Za-z]{3,9}[- ,]\s?\d{2,4})`

// Labeled header searches for bank statements, applied in declaration order
// against the normalized full text.
var bankHeaderRules = []FieldRule{
	{"account_number", regexp.MustCompile(`(?i)(?:account|a/c|acc?t?)\s*(?:no|number)\.?\s*[:\-]?\s*([0-9Xx*]{6,20})\b`), PostText},
	{"account_holder", regexp.MustCompile(`(?i)(?:account\s*holder(?:'s)?(?:\s*name)?|customer\s*name|name\s+of\s+(?:the\s+)?account\s*holder)\s*[:\-]?\s*([A-Za-z][A-Za-z .]{2,60})`), PostText},
	{"bank_name", regexp.MustCompile(`(?i)\b(hdfc bank|icici bank|state bank of india|axis bank|kotak mahindra bank|punjab national bank|bank of baroda|canara bank|yes bank|idfc first bank|union bank of india|indusind bank)\b`), PostText},
	{"ifsc", regexp.MustCompile(`(?i)\bifsc\s*(?:code)?\s*[:\-]?\s*([A-Za-z]{4}0[A-Za-z0-9]{6})\b`), PostUpper},
	{"statement_from", regexp.MustCompile(`(?i)(?:statement\s+)?(?:period|from)\s*[:\-]?\s*` + bankDateCapture), PostDate},
	{"statement_to", regexp.MustCompile(`(?i)\b(?:to|till|upto)\s*[:\-]?\s*` + bankDateCapture), PostDate},
	{"opening_balance", regexp.MustCompile(`(?i)opening\s+balance[^0-9(\-]*(\(?-?[\d,]+\.\d{1,2}\)?)`), PostAmount},
	{"closing_balance", regexp.MustCompile(`(?i)closing\s+balance[^0-9(\-]*(\(?-?[\d,]+\.\d{1,2}\)?)`), PostAmount},
}

// BankRequiredFields drive the completeness confidence for bank headers.
var BankRequiredFields = []string{"account_number", "account_holder"}

// Currency symbols checked in fixed priority order, domestic first.
var currencyDetectors = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`(?i)₹|\brs\.?|\binr\b`), "INR"},
	{regexp.MustCompile(`(?i)\$|\busd\b`), "USD"},
	{regexp.MustCompile(`(?i)€|\beur\b`), "EUR"},
	{regexp.MustCompile(`(?i)£|\bgbp\b`), "GBP"},
}

func detectCurrency(text string) string {
	for _, d := range currencyDetectors {
		if d.pattern.MatchString(text) {
			return d.code
		}
	}
	return "INR"
}

// Alternative header-row shapes, tried in order; each requires a date-like
// token plus description-like and amount-like tokens on one line.
var bankTableHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date.*(?:particulars|description|narration|details).*(?:debit|withdrawal).*(?:credit|deposit)`),
	regexp.MustCompile(`(?i)date.*(?:particulars|description|narration|details).*(?:debit|credit|amount|balance)`),
	regexp.MustCompile(`(?i)(?:txn|tran|value)\s*date.*(?:debit|credit|amount|balance)`),
}

var columnSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// classifyColumn maps a header token to a known column kind, checking
// substrings in fixed priority order.
func classifyColumn(token string) string {
	t := strings.ToLower(token)
	switch {
	case strings.Contains(t, "date"):
		return "date"
	case strings.Contains(t, "particular"), strings.Contains(t, "description"),
		strings.Contains(t, "narration"), strings.Contains(t, "detail"):
		return "description"
	case strings.Contains(t, "debit"), strings.Contains(t, "withdrawal"):
		return "debit"
	case strings.Contains(t, "credit"), strings.Contains(t, "deposit"):
		return "credit"
	case strings.Contains(t, "balance"):
		return "balance"
	case strings.Contains(t, "ref"), strings.Contains(t, "cheque"),
		strings.Contains(t, "chq"), strings.Contains(t, "utr"):
		return "reference"
	}
	return ""
}

// findBankTableHeader returns the index of the first line that matches a
// header shape and yields at least two recognizable columns, or -1.
func findBankTableHeader(lines []string) (int, []string) {
	for i, line := range lines {
		for _, p := range bankTableHeaderPatterns {
			if !p.MatchString(line) {
				continue
			}
			var columns []string
			for _, token := range columnSplitRe.Split(line, -1) {
				if kind := classifyColumn(strings.TrimSpace(token)); kind != "" {
					columns = append(columns, kind)
				}
			}
			if len(columns) >= 2 {
				return i, columns
			}
			break
		}
	}
	return -1, nil
}

// rowAmounts returns the monetary tokens of a line in left-to-right order,
// skipping tokens that overlap a date span (dot-delimited dates would
// otherwise read as amounts).
func rowAmounts(line string) ([]float64, int) {
	dateSpans := dateTokenRe.FindAllStringIndex(line, -1)
	firstStart := -1
	var amounts []float64
	for _, span := range moneyTokenRe.FindAllStringIndex(line, -1) {
		overlaps := false
		for _, ds := range dateSpans {
			if span[0] < ds[1] && span[1] > ds[0] {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		if a := NormalizeAmount(line[span[0]:span[1]]); a != nil {
			if firstStart < 0 {
				firstStart = span[0]
			}
			amounts = append(amounts, *a)
		}
	}
	return amounts, firstStart
}

// parseBankRow builds a transaction from one accepted row line.
func parseBankRow(line string) *dto.BankTransaction {
	dateSpan := dateTokenRe.FindStringIndex(line)
	if dateSpan == nil {
		return nil
	}
	date := NormalizeDate(line[dateSpan[0]:dateSpan[1]])
	if date == nil {
		return nil
	}

	amounts, firstAmountStart := rowAmounts(line)

	descEnd := len(line)
	if firstAmountStart > dateSpan[1] {
		descEnd = firstAmountStart
	}
	txn := &dto.BankTransaction{Date: *date, RawLine: line}
	if v := PostText(line[dateSpan[1]:descEnd]); v != nil {
		s := v.(string)
		txn.Description = &s
	}
	if m := bankReferenceRe.FindStringSubmatch(line); len(m) > 1 {
		ref := m[1]
		txn.Reference = &ref
	}

	// Amount assignment decision table keyed by (count, keyword presence).
	switch {
	case len(amounts) >= 3:
		txn.Debit, txn.Credit, txn.Balance = &amounts[0], &amounts[1], &amounts[2]
	case len(amounts) == 2:
		if debitKeywordRe.MatchString(line) {
			txn.Debit, txn.Balance = &amounts[0], &amounts[1]
		} else if creditKeywordRe.MatchString(line) {
			txn.Credit, txn.Balance = &amounts[0], &amounts[1]
		} else {
			txn.Debit, txn.Balance = &amounts[0], &amounts[1]
		}
	case len(amounts) == 1:
		txn.Balance = &amounts[0]
	}
	return txn
}

// parseBankTableRows scans lines after the header row until a summary line or
// the end of the document. Separator rules are skipped without consuming a
// row; every accepted row must carry a recognizable date token.
func parseBankTableRows(lines []string) []dto.BankTransaction {
	var txns []dto.BankTransaction
	for _, line := range lines {
		if separatorLineRe.MatchString(line) {
			continue
		}
		if summaryLineRe.MatchString(line) {
			break
		}
		if txn := parseBankRow(line); txn != nil {
			txns = append(txns, *txn)
		}
	}
	return txns
}

// scanHeuristicRows is the fallback when no table header exists: any line
// with a date token and at least one monetary token is a candidate, and
// amounts are assigned purely positionally.
func scanHeuristicRows(lines []string) []dto.BankTransaction {
	var txns []dto.BankTransaction
	for _, line := range lines {
		if separatorLineRe.MatchString(line) {
			continue
		}
		dateSpan := dateTokenRe.FindStringIndex(line)
		if dateSpan == nil {
			continue
		}
		date := NormalizeDate(line[dateSpan[0]:dateSpan[1]])
		if date == nil {
			continue
		}
		amounts, firstAmountStart := rowAmounts(line)
		if len(amounts) == 0 {
			continue
		}
		descEnd := len(line)
		if firstAmountStart > dateSpan[1] {
			descEnd = firstAmountStart
		}
		txn := dto.BankTransaction{Date: *date, RawLine: line}
		if v := PostText(line[dateSpan[1]:descEnd]); v != nil {
			s := v.(string)
			txn.Description = &s
		}
		txn.Debit = &amounts[0]
		if len(amounts) > 1 {
			txn.Credit = &amounts[1]
		}
		if len(amounts) > 2 {
			txn.Balance = &amounts[2]
		}
		txns = append(txns, txn)
	}
	return txns
}

// ParseBankStatement extracts the bank header fields and transaction rows
// from normalized text and repaired lines. Degraded conditions surface as
// warnings, never errors.
func ParseBankStatement(text string, lines []string) (dto.Header, []dto.BankTransaction, []dto.Warning) {
	header := ExtractFields(text, bankHeaderRules)
	header["currency"] = detectCurrency(text)

	var warnings []dto.Warning
	var txns []dto.BankTransaction

	headerIdx, _ := findBankTableHeader(lines)
	if headerIdx < 0 {
		warnings = append(warnings,
			dto.Warning{Code: dto.WarnNoTableHeader, Message: "no transaction table header found"},
			dto.Warning{Code: dto.WarnHeuristicParsing, Message: fmt.Sprintf("falling back to heuristic row scan over %d lines", len(lines))},
		)
		txns = scanHeuristicRows(lines)
	} else {
		txns = parseBankTableRows(lines[headerIdx+1:])
	}
	return header, txns, warnings
}
