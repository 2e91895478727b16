// CLAUDE:SUMMARY Defines Format, Table, and Result types plus the extraction error sentinels.
package docpipe

import "errors"

// Format identifies a document family.
type Format string

const (
	FormatText     Format = "text"
	FormatRTF      Format = "rtf"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXML      Format = "xml"
	FormatJSON     Format = "json"
	FormatDocx     Format = "docx"
	FormatODT      Format = "odt"
	FormatXLSX     Format = "xlsx"
	FormatPPTX     Format = "pptx"
	FormatPDF      Format = "pdf"
	FormatImage    Format = "image"
)

// Extraction error sentinels, matchable with errors.Is.
var (
	// ErrUnsupportedFormat marks an extension outside the supported families.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailure marks a recognized format whose payload could
	// not be parsed.
	ErrExtractionFailure = errors.New("extraction failure")
)

// Table is tabular content recovered from a document.
type Table struct {
	Headers   []string   `json:"headers,omitempty"`
	Rows      [][]string `json:"rows"`
	HasHeader bool       `json:"has_header"`
}

// Result is the outcome of extracting one document.
type Result struct {
	Text     string   `json:"text"`
	Tables   []Table  `json:"tables,omitempty"`
	Language string   `json:"language,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Pages    int      `json:"pages,omitempty"`
	Method   string   `json:"method"`
}
