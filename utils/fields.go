package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/statement-parser/dto"
)

// FieldRule binds a labeled-search pattern to a header field and a
// post-processor. Rules are evaluated in declaration order, first match wins,
// and a miss leaves the field nil.
type FieldRule struct {
	Field   string
	Pattern *regexp.Regexp
	Post    func(string) any
}

// ExtractFields runs a rule table against text and returns a header with
// every declared key present; nil marks "not found".
func ExtractFields(text string, rules []FieldRule) dto.Header {
	header := make(dto.Header, len(rules))
	for _, rule := range rules {
		if _, ok := header[rule.Field]; !ok {
			header[rule.Field] = nil
		}
		if header[rule.Field] != nil {
			continue
		}
		m := rule.Pattern.FindStringSubmatch(text)
		if len(m) > 1 {
			if v := rule.Post(m[1]); v != nil {
				header[rule.Field] = v
			}
		}
	}
	return header
}

var innerSpaceRe = regexp.MustCompile(`\s+`)

// PostText trims and collapses internal whitespace.
func PostText(s string) any {
	s = innerSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return nil
	}
	return s
}

// PostUpper is PostText plus uppercasing, for identifier-like tokens
// (PAN, TAN, IFSC) whose canonical forms are uppercase.
func PostUpper(s string) any {
	v := PostText(s)
	if v == nil {
		return nil
	}
	return strings.ToUpper(v.(string))
}

// PostDate routes the capture through NormalizeDate.
func PostDate(s string) any {
	if d := NormalizeDate(s); d != nil {
		return *d
	}
	return nil
}

// PostAmount routes the capture through NormalizeAmount.
func PostAmount(s string) any {
	if a := NormalizeAmount(s); a != nil {
		return *a
	}
	return nil
}

// StringField reads a header value back as a string pointer.
func StringField(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// NumberField reads a header value back as a float pointer.
func NumberField(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}
