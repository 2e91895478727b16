package docpipe

import (
	"context"
	"strings"
	"unicode/utf8"
)

// extractText decodes a plain text payload. Valid UTF-8 passes through;
// anything else is read as Latin-1 so legacy exports never fail outright.
func (p *Pipeline) extractText(ctx context.Context, data []byte) (*Result, error) {
	text, warnings := decodeText(data)
	return &Result{
		Text:     normalizeLines(text),
		Warnings: warnings,
		Method:   "text",
	}, nil
}

// extractMarkdown parses a Markdown payload line by line. ATX headings and
// list items keep their own lines; paragraph lines are joined.
func (p *Pipeline) extractMarkdown(ctx context.Context, data []byte) (*Result, error) {
	text, warnings := decodeText(data)

	var blocks []string
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			blocks = append(blocks, t)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "#"):
			flush()
			heading := strings.TrimSpace(strings.Trim(trimmed, "# "))
			if heading != "" {
				blocks = append(blocks, heading)
			}

		case isMarkdownListItem(trimmed):
			flush()
			blocks = append(blocks, trimmed)

		case trimmed == "":
			flush()

		default:
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(trimmed)
		}
	}
	flush()

	return &Result{
		Text:     strings.Join(blocks, "\n"),
		Warnings: warnings,
		Method:   "markdown",
	}, nil
}

func isMarkdownListItem(line string) bool {
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	// Ordered items: "1. ", "12) ".
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return false
	}
	return (line[i] == '.' || line[i] == ')') && i+1 < len(line) && line[i+1] == ' '
}

// decodeText returns the payload as a string, falling back to a Latin-1
// read for invalid UTF-8.
func decodeText(data []byte) (string, []string) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String(), []string{"payload is not valid UTF-8, decoded as Latin-1"}
}

// normalizeLines trims trailing whitespace per line and collapses runs of
// blank lines, keeping the line structure intact.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	blank := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
