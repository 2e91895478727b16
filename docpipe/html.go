// CLAUDE:SUMMARY HTML extractor — bluemonday sanitize, markdown rendition, table recovery via DOM walk.
package docpipe

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlSanitizer = bluemonday.UGCPolicy()

// extractHTML sanitizes the payload, renders it to markdown so headings and
// list structure survive as text, and recovers <table> content separately.
func (p *Pipeline) extractHTML(ctx context.Context, data []byte) (*Result, error) {
	sanitized := htmlSanitizer.SanitizeBytes(data)

	doc, err := html.Parse(bytes.NewReader(sanitized))
	if err != nil {
		return nil, fmt.Errorf("%w: html parse: %v", ErrExtractionFailure, err)
	}

	res := &Result{
		Tables: collectHTMLTables(doc),
		Method: "html",
	}

	conv := converter.NewConverter(converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		mdtable.NewTablePlugin(),
	))
	md, err := conv.ConvertString(string(sanitized))
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("markdown rendition failed: %v", err))
		res.Text = normalizeLines(collectHTMLText(doc))
		return res, nil
	}

	res.Text = normalizeLines(md)
	if strings.TrimSpace(res.Text) == "" {
		res.Text = normalizeLines(collectHTMLText(doc))
	}
	return res, nil
}

// collectHTMLTables walks the DOM and converts each <table> into a Table.
func collectHTMLTables(doc *html.Node) []Table {
	var tables []Table
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			if t, ok := parseHTMLTable(n); ok {
				tables = append(tables, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables
}

func parseHTMLTable(table *html.Node) (Table, bool) {
	var t Table
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			header := false
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.DataAtom {
				case atom.Th:
					header = true
					cells = append(cells, collectHTMLText(c))
				case atom.Td:
					cells = append(cells, collectHTMLText(c))
				}
			}
			if len(cells) == 0 {
				return
			}
			if header && !t.HasHeader && len(t.Rows) == 0 {
				t.Headers = cells
				t.HasHeader = true
				return
			}
			t.Rows = append(t.Rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)
	return t, t.HasHeader || len(t.Rows) > 0
}

// collectHTMLText extracts all visible text from a node subtree.
func collectHTMLText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
