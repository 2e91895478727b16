// CLAUDE:SUMMARY OpenDocument extractor — content.xml headings, paragraphs, and table:table recovery.
package docpipe

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"
)

// extractODT parses an .odt payload by streaming content.xml. text:h and
// text:p elements become lines; table:table groups become Tables.
func (p *Pipeline) extractODT(ctx context.Context, data []byte) (*Result, error) {
	r, err := zipOpen(data)
	if err != nil {
		return nil, err
	}
	content, err := zipFile(r, "content.xml")
	if err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))

	var blocks []string
	var tables []Table

	var text strings.Builder
	inText := false

	inTable := false
	var table Table
	var row []string
	var cell []string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "h", "p":
				inText = true
				text.Reset()
			case "table":
				inTable = true
				table = Table{}
			case "table-row":
				row = nil
			case "table-cell":
				cell = nil
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "h", "p":
				if !inText {
					continue
				}
				inText = false
				s := strings.TrimSpace(text.String())
				if s == "" {
					continue
				}
				if inTable {
					cell = append(cell, s)
				} else {
					blocks = append(blocks, s)
				}
			case "table-cell":
				if inTable {
					row = append(row, strings.Join(cell, " "))
				}
			case "table-row":
				if inTable && len(row) > 0 {
					table.Rows = append(table.Rows, row)
				}
			case "table":
				if inTable {
					inTable = false
					if len(table.Rows) > 0 {
						if rendered := renderTableText(table); rendered != "" {
							blocks = append(blocks, rendered)
						}
						tables = append(tables, table)
					}
				}
			}
		}
	}

	return &Result{
		Text:   strings.Join(blocks, "\n"),
		Tables: tables,
		Method: "odt",
	}, nil
}
