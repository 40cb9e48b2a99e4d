package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Aashish23092/statement-parser/dto"
)

// Ordered OCR repair rules. Each one is scoped to digit adjacency so ordinary
// prose is left alone; re-applying them to already-clean text is a no-op.
var ocrRepairRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\|{2,}`), " "},    // collapsed column separators
	{regexp.MustCompile(`l(\d)`), "1$1"},   // lowercase l misread before a digit
	{regexp.MustCompile(`O(\d)`), "0$1"},   // uppercase O misread before a digit
	{regexp.MustCompile(`\bI(\d)`), "1$1"}, // leading uppercase I misread before a digit
}

var horizontalSpaceRe = regexp.MustCompile(`[^\S\n]{2,}`)

// RepairText applies the character-level OCR fixes without touching
// whitespace runs, so column alignment stays intact for table scanning.
func RepairText(text string) string {
	for _, rule := range ocrRepairRules {
		text = rule.pattern.ReplaceAllString(text, rule.repl)
	}
	return text
}

// Normalize repairs OCR artifacts and collapses horizontal whitespace runs to
// a single space. Newlines are preserved so label searches stay line-scoped.
func Normalize(text string) string {
	text = RepairText(text)
	return horizontalSpaceRe.ReplaceAllString(text, " ")
}

// GetLines splits text into trimmed, non-empty lines. Line order defines row
// adjacency for the table extractors.
func GetLines(text string) []string {
	var lines []string
	for _, l := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\f'
	}) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Date templates tried in priority order. Day-first formats come before the
// US month-first form because Indian statements overwhelmingly print DD/MM.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"2 Jan 2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// Fallback templates with two-digit years; a parse here is accepted only when
// the resulting year exceeds 1990, which guards against misparsed fragments.
var fallbackDateLayouts = []string{
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2 Jan 06",
	"2-Jan-06",
}

var monthTokenRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`)

var shortMonths = map[string]string{
	"jan": "Jan", "feb": "Feb", "mar": "Mar", "apr": "Apr",
	"may": "May", "jun": "Jun", "jul": "Jul", "aug": "Aug",
	"sep": "Sep", "oct": "Oct", "nov": "Nov", "dec": "Dec",
}

// NormalizeDate converts a raw date string to ISO YYYY-MM-DD. Returns nil if
// no template matches; it never fails hard.
func NormalizeDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	// Canonicalize textual months (APRIL, april, Apr.) to Go's short form.
	s = monthTokenRe.ReplaceAllStringFunc(s, func(m string) string {
		return shortMonths[strings.ToLower(m[:3])]
	})
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil && t.Year() > 1990 {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}

var currencyTokenRe = regexp.MustCompile(`(?i)(₹|rs\.?|inr|usd|eur|gbp|\$|€|£)`)

// NormalizeAmount parses a raw monetary string into a float. A value is
// negative when it carries a leading minus or is fully parenthesized
// (accounting notation); the two triggers are checked together. Returns nil
// when nothing numeric remains.
func NormalizeAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = currencyTokenRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if negative {
		value = -value
	}
	return &value
}

// CalcConfidence scores field completeness: 0.4 weight on overall fill rate,
// 0.6 on the required subset, rounded to 2 decimals. Zero fields scores 0.
func CalcConfidence(fields dto.Header, requiredKeys []string) float64 {
	total := len(fields)
	if total == 0 {
		return 0
	}
	filled := 0
	for _, v := range fields {
		if v != nil {
			filled++
		}
	}
	requiredFrac := 1.0
	if len(requiredKeys) > 0 {
		requiredFilled := 0
		for _, k := range requiredKeys {
			if v, ok := fields[k]; ok && v != nil {
				requiredFilled++
			}
		}
		requiredFrac = float64(requiredFilled) / float64(len(requiredKeys))
	}
	return Round2(0.4*float64(filled)/float64(total) + 0.6*requiredFrac)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
