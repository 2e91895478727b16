// CLAUDE:SUMMARY Core extraction engine — extension-first format detection and per-format dispatch.
// Package docpipe extracts plain text and tables from document payloads.
//
// Supported families:
//   - text-ish   — .txt/.text, .rtf, .csv, .md/.markdown
//   - markup     — .html/.htm, .xml, .json
//   - OOXML/ODF  — .docx, .odt, .xlsx, .pptx (archive/zip + streaming XML)
//   - .pdf       — pdfcpu content streams, OCR fallback for scanned pages
//   - images     — .png/.jpg/.jpeg/.gif/.bmp/.tiff/.tif via the ocr package
//
// Usage:
//
//	pipe := docpipe.New(docpipe.Config{})
//	res, err := pipe.Extract(ctx, data, "contract.docx")
//	fmt.Println(res.Method, res.Language, len(res.Text))
package docpipe

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/docproc/langdetect"
)

// extractor pulls text out of one format family.
type extractor func(ctx context.Context, data []byte) (*Result, error)

// Pipeline is the document extraction engine.
type Pipeline struct {
	cfg        Config
	logger     *slog.Logger
	extractors map[Format]extractor
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	p := &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
	}
	p.extractors = map[Format]extractor{
		FormatText:     p.extractText,
		FormatRTF:      p.extractRTF,
		FormatCSV:      p.extractCSV,
		FormatMarkdown: p.extractMarkdown,
		FormatHTML:     p.extractHTML,
		FormatXML:      p.extractXML,
		FormatJSON:     p.extractJSON,
		FormatDocx:     p.extractDocx,
		FormatODT:      p.extractODT,
		FormatXLSX:     p.extractXLSX,
		FormatPPTX:     p.extractPPTX,
		FormatPDF:      p.extractPDF,
		FormatImage:    p.extractImage,
	}
	return p
}

var formatByExt = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".rtf":      FormatRTF,
	".csv":      FormatCSV,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xml":      FormatXML,
	".json":     FormatJSON,
	".docx":     FormatDocx,
	".odt":      FormatODT,
	".xlsx":     FormatXLSX,
	".pptx":     FormatPPTX,
	".pdf":      FormatPDF,
	".png":      FormatImage,
	".jpg":      FormatImage,
	".jpeg":     FormatImage,
	".gif":      FormatImage,
	".bmp":      FormatImage,
	".tiff":     FormatImage,
	".tif":      FormatImage,
}

// Detect returns the document format based on the filename extension.
func (p *Pipeline) Detect(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, filename)
	}
	format, ok := formatByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// Extract parses a document payload and returns the recovered text.
func (p *Pipeline) Extract(ctx context.Context, data []byte, filename string) (*Result, error) {
	if int64(len(data)) > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("payload too large: %d bytes (max %d)", len(data), p.cfg.MaxFileSize)
	}

	format, err := p.Detect(filename)
	if err != nil {
		return nil, err
	}

	// An .xml payload that is really HTML goes through the HTML path; the
	// sniff never overrides a confident extension.
	if format == FormatXML && looksLikeHTML(data) {
		format = FormatHTML
	}

	p.logger.DebugContext(ctx, "extracting document",
		"filename", filename, "format", format, "bytes", len(data))

	extract, ok := p.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %s", ErrUnsupportedFormat, format)
	}

	res, err := extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s (%s): %w", filename, format, err)
	}

	if info := langdetect.Detect(res.Text); info.Code != "" {
		res.Language = info.Code
	}
	return res, nil
}

// SupportedFormats returns the recognized extensions without the leading dot.
func SupportedFormats() []string {
	return []string{
		"txt", "text", "rtf", "csv", "md", "markdown",
		"html", "htm", "xml", "json",
		"docx", "odt", "xlsx", "pptx",
		"pdf",
		"png", "jpg", "jpeg", "gif", "bmp", "tiff", "tif",
	}
}

// looksLikeHTML sniffs the payload head for an HTML root.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
}
