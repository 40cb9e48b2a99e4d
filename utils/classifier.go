package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/statement-parser/dto"
)

// MinEvidenceScore is the minimum winning keyword score required before a
// document is classified at all; below it the verdict is unknown. The value
// is empirically calibrated and overridable via config (CLASSIFY_MIN_SCORE).
var MinEvidenceScore = 8

const (
	filenameBonus        = 10
	maxMatchesPerPattern = 2
)

type keywordRule struct {
	pattern *regexp.Regexp
	weight  int
}

var bankKeywordRules = []keywordRule{
	{regexp.MustCompile(`(?i)\bbank\s+statement\b`), 5},
	{regexp.MustCompile(`(?i)\bstatement\s+of\s+account\b`), 5},
	{regexp.MustCompile(`(?i)\bopening\s+balance\b`), 4},
	{regexp.MustCompile(`(?i)\bclosing\s+balance\b`), 4},
	{regexp.MustCompile(`(?i)\bifsc\b`), 4},
	{regexp.MustCompile(`(?i)\b(?:savings|current)\s+account\b`), 3},
	{regexp.MustCompile(`(?i)\baccount\s+(?:no|number)\b`), 3},
	{regexp.MustCompile(`(?i)\bpassbook\b`), 3},
	{regexp.MustCompile(`(?i)\bwithdrawal\b`), 2},
	{regexp.MustCompile(`(?i)\bdeposit\b`), 2},
	{regexp.MustCompile(`(?i)\bdebit\b`), 2},
	{regexp.MustCompile(`(?i)\bcredit\b`), 2},
	{regexp.MustCompile(`(?i)\b(?:neft|rtgs|imps|upi)\b`), 2},
	{regexp.MustCompile(`(?i)\bcheque\b`), 2},
	{regexp.MustCompile(`(?i)\bbranch\b`), 1},
}

var taxKeywordRules = []keywordRule{
	{regexp.MustCompile(`(?i)\bform\s*(?:no\.?\s*)?26\s*as\b`), 6},
	{regexp.MustCompile(`(?i)\btax\s+deducted\s+at\s+source\b`), 6},
	{regexp.MustCompile(`(?i)\bform\s*(?:no\.?\s*)?16A?\b`), 5},
	{regexp.MustCompile(`(?i)\btds\b`), 5},
	{regexp.MustCompile(`(?i)\bdeductor\b`), 5},
	{regexp.MustCompile(`(?i)\bdeductee\b`), 5},
	{regexp.MustCompile(`(?i)\bstatus\s+of\s+booking\b`), 5},
	{regexp.MustCompile(`(?i)\btan\b`), 4},
	{regexp.MustCompile(`(?i)\bassessment\s+year\b`), 4},
	{regexp.MustCompile(`(?i)\btraces\b`), 4},
	{regexp.MustCompile(`(?i)\bincome\s+tax\b`), 3},
	{regexp.MustCompile(`(?i)\bchallan\b`), 3},
	{regexp.MustCompile(`(?i)\bfinancial\s+year\b`), 2},
	{regexp.MustCompile(`(?i)\bpan\b`), 2},
}

var bankFilenameTokens = []string{"bank", "statement", "passbook"}
var taxFilenameTokens = []string{"26as", "form16", "form-16", "16a", "tds", "tax"}

// scoreKeywords sums pattern weights, capping each pattern's contribution at
// two occurrences so a single repeated token cannot dominate the score.
func scoreKeywords(text string, rules []keywordRule) int {
	total := 0
	for _, r := range rules {
		n := len(r.pattern.FindAllStringIndex(text, maxMatchesPerPattern))
		total += n * r.weight
	}
	return total
}

func filenameMatches(filename string, tokens []string) bool {
	fn := strings.ToLower(filename)
	for _, t := range tokens {
		if strings.Contains(fn, t) {
			return true
		}
	}
	return false
}

// Classify scores text against the bank and tax keyword rulesets plus
// filename hints and returns the verdict. Ties favor bank_statement.
func Classify(text, filename string) dto.ClassificationVerdict {
	bankScore := scoreKeywords(text, bankKeywordRules)
	taxScore := scoreKeywords(text, taxKeywordRules)

	if filenameMatches(filename, bankFilenameTokens) {
		bankScore += filenameBonus
	}
	if filenameMatches(filename, taxFilenameTokens) {
		taxScore += filenameBonus
	}

	verdict := dto.ClassificationVerdict{
		DocumentType: dto.DocTypeUnknown,
		BankScore:    bankScore,
		TaxScore:     taxScore,
	}

	maxScore := bankScore
	if taxScore > maxScore {
		maxScore = taxScore
	}
	if maxScore < MinEvidenceScore {
		return verdict
	}

	winner, loser := bankScore, taxScore
	verdict.DocumentType = dto.DocTypeBankStatement
	if taxScore > bankScore {
		winner, loser = taxScore, bankScore
		verdict.DocumentType = dto.DocTypeTaxStatement
	}

	// The +1 keeps the denominator positive and softens confidence when the
	// losing score is zero.
	confidence := float64(winner) / float64(winner+loser+1)
	if confidence > 0.99 {
		confidence = 0.99
	}
	verdict.Confidence = Round2(confidence)
	return verdict
}
