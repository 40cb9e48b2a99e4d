package service

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/Aashish23092/statement-parser/client"
	"github.com/Aashish23092/statement-parser/dto"
	"github.com/Aashish23092/statement-parser/utils"
)

// Below this many characters of embedded text a PDF is treated as scanned
// and routed through OCR.
const minEmbeddedTextLen = 20

type ExtractionService struct {
	pdfProcessor    PDFProcessor
	tesseractClient *client.TesseractClient
}

func NewExtractionService(pdfProcessor PDFProcessor, tesseractClient *client.TesseractClient) *ExtractionService {
	return &ExtractionService{
		pdfProcessor:    pdfProcessor,
		tesseractClient: tesseractClient,
	}
}

// ExtractFromText runs the full extraction pipeline on already-recovered
// text: normalize, classify, extract per document type, score, validate.
// It is deterministic, performs no I/O and never fails; degraded input
// surfaces as warnings and low confidence.
func (s *ExtractionService) ExtractFromText(raw dto.RawText, filename string) *dto.ExtractionResult {
	text := raw.Text()
	normalized := utils.Normalize(text)
	lines := utils.GetLines(utils.RepairText(text))

	verdict := utils.Classify(normalized, filename)

	result := &dto.ExtractionResult{
		DocumentType:   verdict.DocumentType,
		Header:         dto.Header{},
		Warnings:       []dto.Warning{},
		Classification: verdict,
	}

	var extractionConf float64
	switch verdict.DocumentType {
	case dto.DocTypeBankStatement:
		header, txns, warns := utils.ParseBankStatement(normalized, lines)
		result.Header = header
		result.Transactions = txns
		result.Warnings = append(result.Warnings, warns...)
		if len(txns) == 0 {
			result.AddWarning(dto.WarnNoTransactions, "no transaction rows extracted")
		}
		extractionConf = extractionConfidence(utils.CalcConfidence(header, utils.BankRequiredFields), len(txns) > 0)

	case dto.DocTypeTaxStatement:
		header, deductors, warns := utils.ParseTaxStatement(normalized, lines)
		result.Header = header
		result.Deductors = deductors
		result.Warnings = append(result.Warnings, warns...)
		if len(deductors) == 0 {
			result.AddWarning(dto.WarnNoDeductors, "no deductor sections extracted")
		}
		extractionConf = extractionConfidence(utils.CalcConfidence(header, utils.TaxRequiredFields), len(deductors) > 0)

	default:
		result.AddWarning(dto.WarnUnknownDocumentType,
			fmt.Sprintf("document type could not be determined (bank=%d tax=%d)", verdict.BankScore, verdict.TaxScore))
		result.AddWarning(dto.WarnNoTransactions, "no records extracted")
		extractionConf = extractionConfidence(0, false)
	}

	// Extraction quality dominates the blend; the type guess only steers it.
	result.Confidence = utils.Round2(0.2*verdict.Confidence + 0.8*extractionConf)

	if _, schemaWarnings := utils.ValidateSchema(result); len(schemaWarnings) > 0 {
		result.Warnings = append(result.Warnings, schemaWarnings...)
	}
	return result
}

// extractionConfidence floors the header-completeness score so successful
// row extraction is never under-credited, while completely empty extractions
// stay clearly low.
func extractionConfidence(headerConf float64, hasRecords bool) float64 {
	floor := 0.1
	if hasRecords {
		floor = 0.5
	}
	if headerConf > floor {
		return headerConf
	}
	return floor
}

// ExtractFromFile recovers text from an uploaded PDF or image and feeds it
// through ExtractFromText. PDFs with no usable text layer fall back to
// page-image OCR, mirroring how scanned statements arrive in practice.
func (s *ExtractionService) ExtractFromFile(data []byte, filename, password string) (*dto.ExtractionResult, error) {
	var pages []string

	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		extracted, err := s.pdfProcessor.ExtractTextByPage(data)
		if err != nil {
			log.Printf("PDF text extraction failed for %s: %v", filename, err)
		} else {
			pages = extracted
		}

		if len(strings.TrimSpace(strings.Join(pages, ""))) < minEmbeddedTextLen {
			log.Printf("PDF %s has minimal embedded text, attempting image-based OCR", filename)
			ocrPages, err := s.ocrPDFImages(data, password)
			if err != nil {
				log.Printf("image-based OCR failed for %s: %v", filename, err)
			} else {
				pages = ocrPages
			}
		}
	} else {
		text, _, err := s.tesseractClient.ExtractFromImageBytes(data, filename)
		if err != nil {
			return nil, fmt.Errorf("image OCR failed: %w", err)
		}
		pages = []string{text}
	}

	raw := dto.RawText{Pages: pages, FullText: strings.Join(pages, "\f")}
	return s.ExtractFromText(raw, filename), nil
}

// ocrPDFImages extracts the page images of a scanned PDF and OCRs each one.
func (s *ExtractionService) ocrPDFImages(data []byte, password string) ([]string, error) {
	images, err := s.pdfProcessor.ExtractImages(data, password)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no page images found")
	}

	var pages []string
	for _, img := range images {
		tempImg, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("failed to stage page image for OCR: %v", err)
			continue
		}
		text, conf, err := s.tesseractClient.ExtractTextAndQuality(tempImg)
		os.Remove(tempImg)
		if err != nil {
			log.Printf("OCR failed for a page: %v", err)
			continue
		}
		log.Printf("OCR page done, %d chars, confidence %.1f", len(text), conf)
		pages = append(pages, text)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("OCR produced no text")
	}
	return pages, nil
}

// saveImageToTempFile stages an image.Image as a temporary PNG for OCR.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "stmt-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("encode image to PNG: %w", err)
	}
	return tempFile.Name(), nil
}
