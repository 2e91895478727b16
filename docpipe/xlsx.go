// CLAUDE:SUMMARY Excel extractor — sharedStrings + per-sheet cell values under "--- Sheet: name ---" blocks.
package docpipe

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractXLSX parses an .xlsx payload. Each sheet yields a Table and a
// text block headed by a "--- Sheet: name ---" marker.
func (p *Pipeline) extractXLSX(ctx context.Context, data []byte) (*Result, error) {
	r, err := zipOpen(data)
	if err != nil {
		return nil, err
	}

	shared := loadSharedStrings(r)
	names := sheetNames(r)

	res := &Result{Method: "xlsx"}
	var sb strings.Builder

	for i := 1; ; i++ {
		member := fmt.Sprintf("xl/worksheets/sheet%d.xml", i)
		if !zipHas(r, member) {
			break
		}
		sheet, err := zipFile(r, member)
		if err != nil {
			return nil, err
		}
		rows := parseSheetRows(sheet, shared)
		if len(rows) == 0 {
			continue
		}

		name := fmt.Sprintf("Sheet%d", i)
		if i-1 < len(names) {
			name = names[i-1]
		}

		table := Table{HasHeader: csvHasHeader(rows)}
		if table.HasHeader {
			table.Headers = rows[0]
			table.Rows = rows[1:]
		} else {
			table.Rows = rows
		}
		res.Tables = append(res.Tables, table)

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Sheet: %s ---\n", name)
		for j, row := range rows {
			if j > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strings.Join(row, " | "))
		}
	}

	if len(res.Tables) == 0 {
		return nil, fmt.Errorf("%w: no sheet data found", ErrExtractionFailure)
	}
	res.Text = sb.String()
	return res, nil
}

// loadSharedStrings reads xl/sharedStrings.xml, concatenating the t runs of
// every si entry. A workbook without shared strings is fine.
func loadSharedStrings(r *zip.Reader) []string {
	data, err := zipFile(r, "xl/sharedStrings.xml")
	if err != nil {
		return nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var shared []string
	var current strings.Builder
	inSI := false
	inT := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inSI = true
				current.Reset()
			case "t":
				inT = true
			}
		case xml.CharData:
			if inSI && inT {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "si":
				inSI = false
				shared = append(shared, current.String())
			}
		}
	}
	return shared
}

// sheetNames reads the sheet names in workbook order.
func sheetNames(r *zip.Reader) []string {
	data, err := zipFile(r, "xl/workbook.xml")
	if err != nil {
		return nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var names []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "sheet" {
			for _, attr := range t.Attr {
				if attr.Name.Local == "name" {
					names = append(names, attr.Value)
				}
			}
		}
	}
	return names
}

// parseSheetRows pulls cell values out of one worksheet. Cells typed "s"
// resolve through the shared string table.
func parseSheetRows(sheet []byte, shared []string) [][]string {
	decoder := xml.NewDecoder(bytes.NewReader(sheet))

	var rows [][]string
	var row []string
	var value strings.Builder
	cellType := ""
	inValue := false
	inRow := false

	flushCell := func() {
		v := value.String()
		if cellType == "s" {
			var idx int
			if _, err := fmt.Sscanf(v, "%d", &idx); err == nil && idx >= 0 && idx < len(shared) {
				v = shared[idx]
			}
		}
		row = append(row, strings.TrimSpace(v))
		value.Reset()
		cellType = ""
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				inRow = true
				row = nil
			case "c":
				cellType = ""
				value.Reset()
				for _, attr := range t.Attr {
					if attr.Name.Local == "t" {
						cellType = attr.Value
					}
				}
			case "v", "t":
				inValue = true
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				inValue = false
			case "c":
				if inRow {
					flushCell()
				}
			case "row":
				inRow = false
				if rowHasContent(row) {
					rows = append(rows, row)
				}
			}
		}
	}
	return rows
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return true
		}
	}
	return false
}
