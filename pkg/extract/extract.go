package extract

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Source tells callers where the extracted text came from. SourceFallback
// means both extraction tiers failed and the text is a synthetic sample.
type Source string

const (
	SourcePDF      Source = "pdf"
	SourceOCR      Source = "ocr"
	SourceFallback Source = "fallback"
)

// Result is the outcome of a best-effort extraction. Text is never empty.
type Result struct {
	Text   string
	Source Source
}

// minTextLen is the trimmed-length threshold below which a tier's output is
// treated as "no text produced" and the next tier is attempted.
const minTextLen = 50

// Extractor produces plain text from uploaded resume documents using an
// ordered fallback chain: PDF text layer, then OCR, then a fixed sample.
// Extract never fails; tier errors are swallowed and logged.
type Extractor struct {
	ocr OCREngine
	log *zap.Logger
}

// New builds an Extractor. ocr may be nil, which disables the OCR tier.
func New(ocr OCREngine, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{ocr: ocr, log: log}
}

// Extract runs the fallback chain over raw file bytes.
func (e *Extractor) Extract(data []byte, filename string) Result {
	isPDF := strings.EqualFold(filepath.Ext(filename), ".pdf")

	if isPDF {
		text, err := extractPDFText(data)
		if err != nil {
			e.log.Debug("pdf text extraction failed", zap.String("filename", filename), zap.Error(err))
		} else if usable(text) {
			return Result{Text: text, Source: SourcePDF}
		}
	}

	if e.ocr != nil {
		text, err := e.ocrText(data, isPDF)
		if err != nil {
			e.log.Debug("ocr extraction failed", zap.String("filename", filename), zap.Error(err))
		} else if usable(text) {
			return Result{Text: text, Source: SourceOCR}
		}
	}

	e.log.Warn("text extraction fell back to sample text", zap.String("filename", filename))
	return Result{Text: FallbackText, Source: SourceFallback}
}

func usable(s string) bool {
	return len(strings.TrimSpace(s)) > minTextLen
}

// extractPDFText reads the PDF text layer. Scanned PDFs typically yield
// nothing here. The pdf library panics on some malformed inputs, so the
// panic is converted into an error.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &tierError{stage: "pdf", detail: r}
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func normalizeWhitespace(s string) string {
	// Collapse excessive whitespace and trim
	re := regexp.MustCompile(`[ \t\r\f\v]+`)
	s = re.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00A0", " ")
	// Preserve newlines but collapse runs
	reN := regexp.MustCompile(`\n+`)
	s = reN.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
