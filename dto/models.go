package dto

type DocumentType string

const (
	DocTypeBankStatement DocumentType = "bank_statement"
	DocTypeTaxStatement  DocumentType = "tax_statement"
	DocTypeUnknown       DocumentType = "unknown"
)

type WarningCode string

const (
	WarnNoDeductors         WarningCode = "NO_DEDUCTORS"
	WarnNoTransactions      WarningCode = "NO_TRANSACTIONS"
	WarnNoTableHeader       WarningCode = "NO_TABLE_HEADER"
	WarnHeuristicParsing    WarningCode = "HEURISTIC_PARSING"
	WarnSchemaValidation    WarningCode = "SCHEMA_VALIDATION"
	WarnUnknownDocumentType WarningCode = "UNKNOWN_DOCUMENT_TYPE"
)

// Warning is a non-fatal quality signal accumulated along the pipeline.
// The list is append-only and never deduplicated.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// RawText is the input handed over by the OCR/PDF collaborator: one string
// per page plus the page-break-joined full text.
type RawText struct {
	Pages    []string `json:"pages"`
	FullText string   `json:"full_text"`
}

// Text returns the full text, rebuilding it from pages when the caller only
// supplied the paginated form.
func (r RawText) Text() string {
	if r.FullText != "" {
		return r.FullText
	}
	out := ""
	for i, p := range r.Pages {
		if i > 0 {
			out += "\f"
		}
		out += p
	}
	return out
}

type ClassificationVerdict struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
	BankScore    int          `json:"bank_score"`
	TaxScore     int          `json:"tax_score"`
}

// Header is a flat mapping of named optional fields. Every declared field key
// is always present; nil stands for "not found". Values are string or float64.
type Header map[string]any

type BankTransaction struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Description *string  `json:"description"`
	Debit       *float64 `json:"debit"`
	Credit      *float64 `json:"credit"`
	Balance     *float64 `json:"balance"`
	Reference   *string  `json:"reference"`
	RawLine     string   `json:"raw_line,omitempty"`
}

type TaxTransaction struct {
	Section         *string  `json:"section"`
	TransactionDate *string  `json:"transaction_date"` // YYYY-MM-DD
	BookingDate     *string  `json:"booking_date"`     // YYYY-MM-DD
	StatusOfBooking *string  `json:"status_of_booking"`
	Remarks         *string  `json:"remarks"`
	AmountPaid      *float64 `json:"amount_paid"`
	TaxDeducted     *float64 `json:"tax_deducted"`
	TDSDeposited    *float64 `json:"tds_deposited"`
}

// Deductor is one TDS deductor section of a tax statement: identity fields,
// totals and the transaction rows found under it.
type Deductor struct {
	Name              *string          `json:"name"`
	TAN               *string          `json:"tan"`
	PAN               *string          `json:"pan"`
	TotalAmountPaid   *float64         `json:"total_amount_paid"`
	TotalTaxDeducted  *float64         `json:"total_tax_deducted"`
	TotalTDSDeposited *float64         `json:"total_tds_deposited"`
	Transactions      []TaxTransaction `json:"transactions"`
}

// ExtractionResult is the terminal artifact of one pipeline run. After
// assembly only the schema validator appends to Warnings.
type ExtractionResult struct {
	DocumentType   DocumentType          `json:"document_type"`
	Header         Header                `json:"header"`
	Transactions   []BankTransaction     `json:"transactions,omitempty"`
	Deductors      []Deductor            `json:"deductors,omitempty"`
	Confidence     float64               `json:"confidence"`
	Warnings       []Warning             `json:"warnings"`
	Classification ClassificationVerdict `json:"classification"`
}

func (r *ExtractionResult) AddWarning(code WarningCode, message string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: message})
}
