// CLAUDE:SUMMARY XML and JSON extractors — recursive path-prefixed flattening to text lines.
package docpipe

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// extractJSON flattens a JSON document into "path: value" lines, one per
// scalar, with dotted object paths and bracketed array indices.
func (p *Pipeline) extractJSON(ctx context.Context, data []byte) (*Result, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: json parse: %v", ErrExtractionFailure, err)
	}

	var lines []string
	flattenJSON("", v, &lines)

	return &Result{
		Text:   strings.Join(lines, "\n"),
		Method: "json",
	}, nil
}

func flattenJSON(prefix string, v any, out *[]string) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenJSON(joinPath(prefix, k), t[k], out)
		}
	case []any:
		for i, item := range t {
			flattenJSON(fmt.Sprintf("%s[%d]", prefix, i), item, out)
		}
	case nil:
		// Null carries no text.
	case string:
		if strings.TrimSpace(t) != "" {
			*out = append(*out, prefix+": "+t)
		}
	default:
		*out = append(*out, fmt.Sprintf("%s: %v", prefix, t))
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// extractXML streams the document and emits "path/to/element: text" lines
// for every element with character content.
func (p *Pipeline) extractXML(ctx context.Context, data []byte) (*Result, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	var lines []string
	var stack []string
	var current strings.Builder
	sawElement := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: xml parse: %v", ErrExtractionFailure, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			stack = append(stack, t.Name.Local)
			current.Reset()
		case xml.CharData:
			current.Write(t)
		case xml.EndElement:
			text := strings.TrimSpace(current.String())
			if text != "" && len(stack) > 0 {
				lines = append(lines, strings.Join(stack, "/")+": "+text)
			}
			current.Reset()
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !sawElement {
		return nil, fmt.Errorf("%w: no xml elements found", ErrExtractionFailure)
	}

	return &Result{
		Text:   strings.Join(lines, "\n"),
		Method: "xml",
	}, nil
}
