// CLAUDE:SUMMARY PowerPoint extractor — per-slide a:t runs under "--- Slide N ---" blocks.
package docpipe

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractPPTX parses a .pptx payload. Each slide's text runs are gathered
// into a block headed by a "--- Slide N ---" marker; Pages reports the
// slide count.
func (p *Pipeline) extractPPTX(ctx context.Context, data []byte) (*Result, error) {
	r, err := zipOpen(data)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	slides := 0
	for i := 1; ; i++ {
		member := fmt.Sprintf("ppt/slides/slide%d.xml", i)
		if !zipHas(r, member) {
			break
		}
		slides++
		slide, err := zipFile(r, member)
		if err != nil {
			return nil, err
		}
		text := parseSlideText(slide)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Slide %d ---\n%s", i, text)
	}

	if slides == 0 {
		return nil, fmt.Errorf("%w: no slides found", ErrExtractionFailure)
	}

	return &Result{
		Text:   sb.String(),
		Pages:  slides,
		Method: "pptx",
	}, nil
}

// parseSlideText joins the a:t runs of a slide, one line per a:p paragraph.
func parseSlideText(slide []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(slide))

	var lines []string
	var line strings.Builder
	inRun := false

	flush := func() {
		if t := strings.TrimSpace(line.String()); t != "" {
			lines = append(lines, t)
		}
		line.Reset()
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.CharData:
			if inRun {
				line.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				flush()
			}
		}
	}
	flush()

	return strings.Join(lines, "\n")
}
