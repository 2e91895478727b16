// CLAUDE:SUMMARY Local glossary provider — offline word-substitution fallback loaded from YAML.
package translate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Glossary is the last-resort local translation capability: deterministic
// word substitution from a bilingual glossary. It produces rough but
// non-empty output when every remote provider is down, which keeps the
// chain's best-effort guarantee.
type Glossary struct {
	// entries maps "source-target" (ISO codes) to a lowercase word map.
	entries map[string]map[string]string
}

// NewGlossary returns a glossary provider seeded with the built-in pairs.
func NewGlossary() *Glossary {
	g := &Glossary{entries: make(map[string]map[string]string)}
	for pair, words := range builtinGlossary {
		m := make(map[string]string, len(words))
		for k, v := range words {
			m[k] = v
		}
		g.entries[pair] = m
	}
	return g
}

// LoadFile merges glossary entries from a YAML file of the shape:
//
//	en-es:
//	  hello: hola
//	  contract: contrato
func (g *Glossary) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("glossary: read %s: %w", path, err)
	}
	var parsed map[string]map[string]string
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("glossary: parse %s: %w", path, err)
	}
	for pair, words := range parsed {
		if g.entries[pair] == nil {
			g.entries[pair] = make(map[string]string, len(words))
		}
		for k, v := range words {
			g.entries[pair][strings.ToLower(k)] = v
		}
	}
	return nil
}

func (g *Glossary) Name() string { return "glossary" }

func (g *Glossary) Translate(ctx context.Context, text, source, target string) (string, error) {
	words := g.entries[source+"-"+target]
	if len(words) == 0 {
		return "", fmt.Errorf("glossary: %w: no %s-%s glossary", ErrProviderUnavailable, source, target)
	}

	var sb strings.Builder
	replaced := 0
	for _, field := range strings.Fields(text) {
		core, leading, trailing := stripPunct(field)
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if repl, ok := words[strings.ToLower(core)]; ok {
			replaced++
			if isCapitalized(core) {
				repl = capitalize(repl)
			}
			sb.WriteString(leading + repl + trailing)
		} else {
			sb.WriteString(field)
		}
	}

	if replaced == 0 {
		return "", fmt.Errorf("glossary: %w: no terms matched", ErrProviderUnavailable)
	}
	return sb.String(), nil
}

func stripPunct(word string) (core, leading, trailing string) {
	runes := []rune(word)
	start, end := 0, len(runes)
	for start < end && !unicode.IsLetter(runes[start]) && !unicode.IsNumber(runes[start]) {
		start++
	}
	for end > start && !unicode.IsLetter(runes[end-1]) && !unicode.IsNumber(runes[end-1]) {
		end--
	}
	return string(runes[start:end]), string(runes[:start]), string(runes[end:])
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// builtinGlossary seeds the most common pairs so the local fallback works
// out of the box. Callers extend or override via LoadFile.
var builtinGlossary = map[string]map[string]string{
	"en-es": {
		"hello": "hola", "how": "cómo", "are": "estás", "you": "tú",
		"good": "bueno", "morning": "mañana", "thank": "gracias",
		"contract": "contrato", "agreement": "acuerdo", "payment": "pago",
		"party": "parte", "parties": "partes", "notice": "aviso",
		"date": "fecha", "signature": "firma", "document": "documento",
		"page": "página", "day": "día", "days": "días", "amount": "importe",
	},
	"en-fr": {
		"hello": "bonjour", "contract": "contrat", "agreement": "accord",
		"payment": "paiement", "party": "partie", "parties": "parties",
		"notice": "préavis", "date": "date", "signature": "signature",
		"document": "document", "page": "page", "day": "jour",
		"amount": "montant", "thank": "merci",
	},
	"en-de": {
		"hello": "hallo", "contract": "vertrag", "agreement": "vereinbarung",
		"payment": "zahlung", "notice": "kündigung", "date": "datum",
		"signature": "unterschrift", "document": "dokument", "page": "seite",
		"day": "tag", "amount": "betrag", "thank": "danke",
	},
}
