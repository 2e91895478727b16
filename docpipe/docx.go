// CLAUDE:SUMMARY Word extractor — word/document.xml paragraphs plus w:tbl table recovery.
package docpipe

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"
)

// extractDocx parses a .docx payload by streaming word/document.xml.
// Paragraphs become text lines; w:tbl groups become Tables and a " | "
// separated rendition inside the text.
func (p *Pipeline) extractDocx(ctx context.Context, data []byte) (*Result, error) {
	r, err := zipOpen(data)
	if err != nil {
		return nil, err
	}
	doc, err := zipFile(r, "word/document.xml")
	if err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var blocks []string
	var tables []Table

	var paragraph strings.Builder
	inParagraph := false

	tableDepth := 0
	var table Table
	var row []string
	var cell []string

	flushTable := func() {
		if len(table.Rows) == 0 {
			return
		}
		if rendered := renderTableText(table); rendered != "" {
			blocks = append(blocks, rendered)
		}
		tables = append(tables, table)
		table = Table{}
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = nil
				}
			case "tc":
				if tableDepth > 0 {
					cell = nil
				}
			case "p":
				inParagraph = true
				paragraph.Reset()
			}

		case xml.CharData:
			if inParagraph {
				paragraph.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if !inParagraph {
					continue
				}
				inParagraph = false
				text := strings.TrimSpace(paragraph.String())
				if text == "" {
					continue
				}
				if tableDepth > 0 {
					cell = append(cell, text)
				} else {
					blocks = append(blocks, text)
				}
			case "tc":
				if tableDepth > 0 {
					row = append(row, strings.Join(cell, " "))
				}
			case "tr":
				if tableDepth > 0 && len(row) > 0 {
					table.Rows = append(table.Rows, row)
				}
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
					if tableDepth == 0 {
						flushTable()
					}
				}
			}
		}
	}

	return &Result{
		Text:   strings.Join(blocks, "\n"),
		Tables: tables,
		Method: "docx",
	}, nil
}

// renderTableText produces the inline text form of a table.
func renderTableText(t Table) string {
	var sb strings.Builder
	if len(t.Headers) > 0 {
		sb.WriteString(strings.Join(t.Headers, " | "))
		sb.WriteByte('\n')
	}
	for _, row := range t.Rows {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}
