package dto

import "errors"

// ExtractionRequest represents the incoming text-extraction request.
// Callers may send the joined full text, per-page strings, or both.
type ExtractionRequest struct {
	Text     string   `json:"text"`
	Pages    []string `json:"pages"`
	Filename string   `json:"filename"`
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate() error {
	if r.Text == "" && len(r.Pages) == 0 {
		return errors.New("either text or pages is required")
	}
	return nil
}

// ToRawText builds the RawText input for the extraction pipeline
func (r *ExtractionRequest) ToRawText() RawText {
	return RawText{
		Pages:    r.Pages,
		FullText: r.Text,
	}
}
