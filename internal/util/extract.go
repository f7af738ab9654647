package util

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnsupportedFileError is returned for uploads whose extension has no extractor.
type UnsupportedFileError struct {
	Ext string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Ext)
}

// TextExtractor turns uploaded resume files into plain text.
type TextExtractor struct {
	TesseractPath string
	Language      string
}

func NewTextExtractor(tesseractPath, language string) *TextExtractor {
	if tesseractPath == "" {
		tesseractPath = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TextExtractor{TesseractPath: tesseractPath, Language: language}
}

// ExtractResumeText dispatches on the file extension.
func (e *TextExtractor) ExtractResumeText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return e.ExtractPDFText(data), nil
	case ".docx":
		return extractDocxText(data)
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	default:
		return "", &UnsupportedFileError{Ext: ext}
	}
}

// ExtractPDFText OCRs every page of the PDF. It never fails: any error
// yields "", after one attempt at the embedded text layer.
func (e *TextExtractor) ExtractPDFText(data []byte) string {
	text, err := e.ocrPDF(data)
	if err != nil {
		log.Printf("OCR extraction failed: %v", err)
	}
	if text != "" {
		return text
	}

	text, err = extractPDFTextLayer(data)
	if err != nil {
		log.Printf("PDF text layer extraction failed: %v", err)
		return ""
	}
	return text
}

func (e *TextExtractor) ocrPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty PDF")
	}

	tmpFile, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	doc, err := fitz.New(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
		}
		pageText, err := e.ocrImage(toGray(img))
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		pages = append(pages, pageText)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func (e *TextExtractor) ocrImage(img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	err = png.Encode(tmpFile, img)
	tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(e.TesseractPath, tmpPath, "stdout", "-l", e.Language)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, stderr.String())
	}
	return strings.TrimSpace(string(out)), nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray
}

func extractPDFTextLayer(data []byte) (text string, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

var xmlTag = regexp.MustCompile(`<[^>]+>`)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content)), nil
}

// CleanJSON strips the markdown code fence chat models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
