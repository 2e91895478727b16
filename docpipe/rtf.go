// CLAUDE:SUMMARY RTF control-word stripper producing plain text.
package docpipe

import (
	"context"
	"fmt"
	"strings"
)

// rtfSkipGroups are destination groups whose content is never body text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"object":     true,
	"header":     true,
	"footer":     true,
	"generator":  true,
}

// extractRTF strips RTF control words and groups down to the body text.
func (p *Pipeline) extractRTF(ctx context.Context, data []byte) (*Result, error) {
	if !strings.HasPrefix(string(data[:min(len(data), 5)]), `{\rtf`) {
		return nil, fmt.Errorf("%w: missing rtf header", ErrExtractionFailure)
	}
	return &Result{
		Text:   normalizeLines(stripRTF(data)),
		Method: "rtf",
	}, nil
}

func stripRTF(data []byte) string {
	var sb strings.Builder
	depth := 0
	skipUntil := -1 // group depth at which a skipped destination closes

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if skipUntil >= 0 && depth < skipUntil {
				skipUntil = -1
			}
		case '\\':
			if i+1 >= len(data) {
				break
			}
			next := data[i+1]

			// \* opens an ignorable destination; skip the whole group.
			if next == '*' {
				if skipUntil < 0 {
					skipUntil = depth
				}
				i++
				continue
			}

			// Escaped literals.
			if next == '\\' || next == '{' || next == '}' {
				if skipUntil < 0 {
					sb.WriteByte(next)
				}
				i++
				continue
			}

			// Hex escape \'xx, Latin-1.
			if next == '\'' && i+3 < len(data) {
				if skipUntil < 0 {
					var v byte
					fmt.Sscanf(string(data[i+2:i+4]), "%02x", &v)
					sb.WriteRune(rune(v))
				}
				i += 3
				continue
			}

			word, rest := rtfControlWord(data[i+1:])
			i += rest

			if rtfSkipGroups[word] && skipUntil < 0 {
				skipUntil = depth
				continue
			}
			if skipUntil >= 0 {
				continue
			}
			switch word {
			case "par", "line", "sect", "page":
				sb.WriteByte('\n')
			case "tab", "cell":
				sb.WriteByte('\t')
			}

		case '\r', '\n':
			// Raw newlines in RTF source are not content.

		default:
			if skipUntil < 0 && depth > 0 {
				sb.WriteByte(b)
			}
		}
	}
	return sb.String()
}

// rtfControlWord reads a control word (letters plus optional numeric
// argument) and returns it with the number of bytes consumed, including
// the single space delimiter when present.
func rtfControlWord(data []byte) (string, int) {
	i := 0
	for i < len(data) && isASCIILetter(data[i]) {
		i++
	}
	word := string(data[:i])
	if i < len(data) && (data[i] == '-' || data[i] >= '0' && data[i] <= '9') {
		i++
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
	}
	if i < len(data) && data[i] == ' ' {
		i++
	}
	return word, i
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
