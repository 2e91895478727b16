// CLAUDE:SUMMARY PDF extractor using pdfcpu — page-aware content-stream text with quality-gated OCR fallback.
// CLAUDE:DEPENDS docpipe/quality.go
package docpipe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// extractPDF extracts text from a PDF payload using pdfcpu. When the
// extraction quality signals a scanned document the payload is handed to
// the OCR orchestrator and the richer result wins.
func (p *Pipeline) extractPDF(ctx context.Context, data []byte) (*Result, error) {
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read: %v", ErrExtractionFailure, err)
	}

	hasImages := detectImageStreams(pctx)

	var sb strings.Builder
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		pageText := extractPageText(pctx, pageNr)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n%s", pageNr, pageText)
	}
	nativeText := sb.String()

	quality := measurePDFText(nativeText, pctx.PageCount, hasImages)

	res := &Result{
		Text:   nativeText,
		Pages:  pctx.PageCount,
		Method: "pdf-text",
	}

	if p.needsOCR(quality) {
		if p.cfg.OCR == nil {
			res.Warnings = append(res.Warnings,
				"pdf looks scanned but no ocr engine is configured")
		} else {
			p.logger.DebugContext(ctx, "pdf extraction sparse, running ocr",
				"chars_per_page", quality.charsPerPage, "printable_ratio", quality.printableRatio)
			ocrText, _, err := p.cfg.OCR.RunPDF(ctx, data, "")
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("ocr pass failed: %v", err))
			} else if len([]rune(ocrText)) > len([]rune(nativeText)) {
				res.Text = ocrText
				res.Method = "pdf-ocr"
			}
		}
	}

	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("%w: no text content found in pdf", ErrExtractionFailure)
	}
	return res, nil
}

// extractPageText extracts text from a single PDF page via pdfcpu content stream.
func extractPageText(pctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// detectImageStreams checks if the PDF contains image XObjects.
func detectImageStreams(pctx *model.Context) bool {
	if pctx.Optimize != nil {
		for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(pctx, pageNr)) > 0 {
				return true
			}
		}
	}
	// Fallback: scan the xref table for image subtype stream dicts.
	for _, entry := range pctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj / TJ operators: (text) Tj, [(text) -100 (more)] TJ.
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// ' operator (move to next line and show text): (text) '
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		// Td/TD operator (text positioning).
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}

		// T* operator (move to start of next line).
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return cleanPDFText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPDFText normalises whitespace in extracted PDF text.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
