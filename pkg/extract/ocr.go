package extract

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	fitz "github.com/gen2brain/go-fitz"
	gosseract "github.com/otiai10/gosseract/v2"
)

// OCREngine recognizes text in a single image (any format Tesseract accepts).
type OCREngine interface {
	ImageText(img []byte) (string, error)
}

type tierError struct {
	stage  string
	detail any
}

func (e *tierError) Error() string {
	return fmt.Sprintf("%s extraction panicked: %v", e.stage, e.detail)
}

// ocrText recognizes text in the uploaded bytes. PDFs are rasterized page by
// page and each page image is OCR'd, joined with newlines; other files are
// treated as a single image.
func (e *Extractor) ocrText(data []byte, isPDF bool) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &tierError{stage: "ocr", detail: r}
		}
	}()
	if !isPDF {
		return e.ocr.ImageText(data)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", err
		}
		pageText, err := e.ocr.ImageText(buf.Bytes())
		if err != nil {
			return "", err
		}
		pages = append(pages, pageText)
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// Tesseract is the default OCREngine backed by gosseract. Each call uses a
// fresh client; gosseract clients are not safe for concurrent reuse.
type Tesseract struct{}

func (Tesseract) ImageText(img []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImageFromBytes(img); err != nil {
		return "", err
	}
	return client.Text()
}
