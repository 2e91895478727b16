package docpipe

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	pipe := New(Config{})

	tests := []struct {
		filename string
		format   Format
	}{
		{"doc.docx", FormatDocx},
		{"doc.odt", FormatODT},
		{"doc.pdf", FormatPDF},
		{"doc.md", FormatMarkdown},
		{"doc.markdown", FormatMarkdown},
		{"doc.txt", FormatText},
		{"doc.rtf", FormatRTF},
		{"doc.csv", FormatCSV},
		{"doc.html", FormatHTML},
		{"doc.htm", FormatHTML},
		{"doc.xml", FormatXML},
		{"doc.json", FormatJSON},
		{"doc.xlsx", FormatXLSX},
		{"doc.pptx", FormatPPTX},
		{"scan.PNG", FormatImage},
		{"scan.jpeg", FormatImage},
		{"scan.tif", FormatImage},
	}
	for _, tt := range tests {
		f, err := pipe.Detect(tt.filename)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.filename, err)
			continue
		}
		if f != tt.format {
			t.Errorf("Detect(%q) = %q, want %q", tt.filename, f, tt.format)
		}
	}

	for _, bad := range []string{"file.xyz", "noextension", "archive.zip"} {
		_, err := pipe.Detect(bad)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Detect(%q) err = %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestExtractText(t *testing.T) {
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte("Hello world\n\n\n\nsecond paragraph  \n"), "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "text" {
		t.Errorf("method = %q", res.Method)
	}
	if !strings.Contains(res.Text, "Hello world") {
		t.Errorf("text = %q", res.Text)
	}
	if strings.Contains(res.Text, "\n\n\n") {
		t.Error("blank line runs must collapse")
	}
}

func TestExtractTextLatin1Fallback(t *testing.T) {
	pipe := New(Config{})
	// "café" in Latin-1: é is 0xE9, invalid UTF-8 on its own.
	res, err := pipe.Extract(context.Background(), []byte{'c', 'a', 'f', 0xE9}, "legacy.txt")
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "café" {
		t.Errorf("text = %q, want café", res.Text)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a decoding warning")
	}
}

func TestExtractMarkdown(t *testing.T) {
	content := `# Service Agreement

This contract is made between the parties.

## Obligations

- Deliver the goods on time
- Pay within thirty days

1. First numbered duty
2. Second numbered duty
`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(content), "agreement.md")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "markdown" {
		t.Errorf("method = %q", res.Method)
	}
	if !strings.Contains(res.Text, "Service Agreement") {
		t.Error("heading text lost")
	}
	if !strings.Contains(res.Text, "- Deliver the goods on time") {
		t.Errorf("list items must keep their own lines:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "1. First numbered duty") {
		t.Errorf("numbered items must keep their own lines:\n%s", res.Text)
	}
}

func TestExtractRTF(t *testing.T) {
	rtf := `{\rtf1\ansi\deff0{\fonttbl{\f0 Times New Roman;}}
{\*\generator Riched20}
\f0\fs24 The first paragraph of the notice.\par
The second paragraph follows.\par
}`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(rtf), "notice.rtf")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "The first paragraph of the notice.") {
		t.Errorf("text = %q", res.Text)
	}
	if !strings.Contains(res.Text, "The second paragraph follows.") {
		t.Errorf("text = %q", res.Text)
	}
	if strings.Contains(res.Text, "Times New Roman") {
		t.Error("font table leaked into body text")
	}
	if strings.Contains(res.Text, "Riched20") {
		t.Error("generator group leaked into body text")
	}
}

func TestExtractRTFBadHeader(t *testing.T) {
	pipe := New(Config{})
	_, err := pipe.Extract(context.Background(), []byte("plain text"), "fake.rtf")
	if !errors.Is(err, ErrExtractionFailure) {
		t.Errorf("err = %v, want ErrExtractionFailure", err)
	}
}

func TestExtractCSV(t *testing.T) {
	csvData := "name,amount,due\nAcme Corp,1200,2026-01-15\nGlobex,870,2026-02-01\n"
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(csvData), "invoices.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	table := res.Tables[0]
	if !table.HasHeader {
		t.Error("header row not detected")
	}
	if len(table.Headers) != 3 || table.Headers[0] != "name" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(table.Rows))
	}
	if !strings.Contains(res.Text, "Acme Corp | 1200 | 2026-01-15") {
		t.Errorf("text rendition lost row structure:\n%s", res.Text)
	}
}

func TestExtractJSON(t *testing.T) {
	payload := `{"client":{"name":"Acme","ids":[7,9]},"active":true}`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(payload), "case.json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"client.name: Acme", "client.ids[0]: 7", "active: true"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("missing %q in:\n%s", want, res.Text)
		}
	}
}

func TestExtractXML(t *testing.T) {
	payload := `<filing><party><name>Acme Corp</name></party><amount>1200</amount></filing>`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(payload), "filing.xml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "filing/party/name: Acme Corp") {
		t.Errorf("text = %q", res.Text)
	}
	if !strings.Contains(res.Text, "filing/amount: 1200") {
		t.Errorf("text = %q", res.Text)
	}
}

func TestExtractXMLSniffsHTML(t *testing.T) {
	payload := `<!DOCTYPE html><html><body><p>Actually a web page.</p></body></html>`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(payload), "saved.xml")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "html" {
		t.Errorf("method = %q, want html for sniffed payload", res.Method)
	}
	if !strings.Contains(res.Text, "Actually a web page.") {
		t.Errorf("text = %q", res.Text)
	}
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>Terms</title><script>alert(1)</script></head>
<body>
<h1>Terms of Service</h1>
<p>These terms govern the use of the service.</p>
<ul><li>First obligation</li><li>Second obligation</li></ul>
<table><tr><th>Fee</th><th>Amount</th></tr><tr><td>Setup</td><td>100</td></tr></table>
</body></html>`
	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), []byte(page), "terms.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "Terms of Service") {
		t.Errorf("heading lost:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "First obligation") {
		t.Errorf("list item lost:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "alert(1)") {
		t.Error("script content leaked")
	}
	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	if !res.Tables[0].HasHeader || res.Tables[0].Headers[0] != "Fee" {
		t.Errorf("table = %+v", res.Tables[0])
	}
}

// zipFixture builds an in-memory ZIP archive from member name → content.
func zipFixture(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range members {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Employment Agreement</w:t></w:r></w:p>
<w:p><w:r><w:t>The employee agrees to the following terms.</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Role</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Engineer</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>Salary</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>50000</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:r><w:t>Signed by both parties.</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := zipFixture(t, map[string]string{"word/document.xml": docXML})

	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), data, "contract.docx")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "Employment Agreement") {
		t.Errorf("text = %q", res.Text)
	}
	if !strings.Contains(res.Text, "Signed by both parties.") {
		t.Errorf("text after table lost:\n%s", res.Text)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	if len(res.Tables[0].Rows) != 2 || res.Tables[0].Rows[0][1] != "Engineer" {
		t.Errorf("table rows = %v", res.Tables[0].Rows)
	}
	// Cell text must not double into the paragraph stream.
	if strings.Count(res.Text, "Engineer") != 1 {
		t.Errorf("table cell text duplicated:\n%s", res.Text)
	}
}

func TestExtractDocxMissingDocument(t *testing.T) {
	data := zipFixture(t, map[string]string{"other.xml": "<x/>"})
	pipe := New(Config{})
	_, err := pipe.Extract(context.Background(), data, "broken.docx")
	if !errors.Is(err, ErrExtractionFailure) {
		t.Errorf("err = %v, want ErrExtractionFailure", err)
	}
}

func TestExtractODT(t *testing.T) {
	contentXML := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<office:body><office:text>
<text:h text:outline-level="1">Lease Agreement</text:h>
<text:p>The tenant shall pay rent monthly.</text:p>
<table:table>
<table:table-row><table:table-cell><text:p>Deposit</text:p></table:table-cell><table:table-cell><text:p>900</text:p></table:table-cell></table:table-row>
</table:table>
</office:text></office:body>
</office:document-content>`
	data := zipFixture(t, map[string]string{"content.xml": contentXML})

	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), data, "lease.odt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "Lease Agreement") {
		t.Errorf("text = %q", res.Text)
	}
	if !strings.Contains(res.Text, "The tenant shall pay rent monthly.") {
		t.Errorf("text = %q", res.Text)
	}
	if len(res.Tables) != 1 || res.Tables[0].Rows[0][0] != "Deposit" {
		t.Errorf("tables = %+v", res.Tables)
	}
}

func TestExtractXLSX(t *testing.T) {
	workbook := `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheets><sheet name="Invoices" sheetId="1" r:id="rId1" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/></sheets>
</workbook>`
	sharedStrings := `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
<si><t>client</t></si><si><t>total</t></si><si><t>Acme Corp</t></si>
</sst>`
	sheet := `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>1200</v></c></row>
</sheetData>
</worksheet>`
	data := zipFixture(t, map[string]string{
		"xl/workbook.xml":          workbook,
		"xl/sharedStrings.xml":     sharedStrings,
		"xl/worksheets/sheet1.xml": sheet,
	})

	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), data, "book.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "--- Sheet: Invoices ---") {
		t.Errorf("sheet marker missing:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "Acme Corp | 1200") {
		t.Errorf("row rendition missing:\n%s", res.Text)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	if !res.Tables[0].HasHeader || res.Tables[0].Headers[0] != "client" {
		t.Errorf("table = %+v", res.Tables[0])
	}
}

func TestExtractPPTX(t *testing.T) {
	slide1 := `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>
<a:p><a:r><a:t>Quarterly Review</a:t></a:r></a:p>
<a:p><a:r><a:t>Revenue grew in every region.</a:t></a:r></a:p>
</p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	slide2 := `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>
<a:p><a:r><a:t>Next steps for the team</a:t></a:r></a:p>
</p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	data := zipFixture(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
		"ppt/slides/slide2.xml": slide2,
	})

	pipe := New(Config{})
	res, err := pipe.Extract(context.Background(), data, "review.pptx")
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if !strings.Contains(res.Text, "--- Slide 1 ---\nQuarterly Review") {
		t.Errorf("slide 1 marker missing:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "--- Slide 2 ---\nNext steps for the team") {
		t.Errorf("slide 2 marker missing:\n%s", res.Text)
	}
}

func TestExtractTooLarge(t *testing.T) {
	pipe := New(Config{MaxFileSize: 10})
	_, err := pipe.Extract(context.Background(), bytes.Repeat([]byte("a"), 11), "big.txt")
	if err == nil {
		t.Error("expected error for oversized payload")
	}
}

func TestExtractImageWithoutOCR(t *testing.T) {
	pipe := New(Config{})
	_, err := pipe.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "scan.png")
	if !errors.Is(err, ErrExtractionFailure) {
		t.Errorf("err = %v, want ErrExtractionFailure", err)
	}
}

func TestExtractSetsLanguage(t *testing.T) {
	pipe := New(Config{})
	text := "This agreement is entered into by and between the employer and the employee, " +
		"who together agree to the terms and conditions written below."
	res, err := pipe.Extract(context.Background(), []byte(text), "en.txt")
	if err != nil {
		t.Fatal(err)
	}
	if res.Language != "en" {
		t.Errorf("language = %q, want en", res.Language)
	}
}
