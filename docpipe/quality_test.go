package docpipe

import "testing"

func TestPrintableRatio(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{"clean text", "This is a normal sentence with standard characters.", 0.95, 1.0},
		{"empty", "", 1.0, 1.0},
		// PUA and control runes are what CIDFont extraction without a
		// ToUnicode map leaves behind.
		{"garbled", "abcdefghi\x01\x02\x03\x04\x05", 0, 0.84},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio := printableRatio(tt.text)
			if ratio < tt.min || ratio > tt.max {
				t.Errorf("printableRatio(%q) = %f, want in [%f, %f]", tt.text, ratio, tt.min, tt.max)
			}
		})
	}
}

func TestWordlikeRatio(t *testing.T) {
	if ratio := wordlikeRatio("This is a normal sentence with standard words inside"); ratio < 0.70 {
		t.Errorf("wordlike ratio = %f, want >= 0.70", ratio)
	}
	// Character-by-character extraction yields single-rune tokens.
	if ratio := wordlikeRatio("a b c d e f g h i j k l"); ratio >= 0.40 {
		t.Errorf("wordlike ratio = %f, want < 0.40", ratio)
	}
}

func TestNeedsOCR(t *testing.T) {
	pipe := New(Config{})
	tests := []struct {
		name string
		q    pdfQuality
		want bool
	}{
		{"sparse text with images", pdfQuality{charsPerPage: 30, hasImages: true, printableRatio: 0.9, wordlikeRatio: 0.8}, true},
		{"sparse text without images", pdfQuality{charsPerPage: 30, printableRatio: 0.9, wordlikeRatio: 0.8}, false},
		{"garbled text", pdfQuality{charsPerPage: 500, printableRatio: 0.5, wordlikeRatio: 0.8}, true},
		{"character soup with images", pdfQuality{charsPerPage: 500, hasImages: true, printableRatio: 0.9, wordlikeRatio: 0.1}, true},
		{"dense clean text", pdfQuality{charsPerPage: 500, hasImages: true, printableRatio: 0.99, wordlikeRatio: 0.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pipe.needsOCR(tt.q); got != tt.want {
				t.Errorf("needsOCR(%+v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestNeedsOCRConfiguredThresholds(t *testing.T) {
	// Raising the density floor flips the decision for the same document.
	strict := New(Config{MinCharsPerPage: 800})
	q := pdfQuality{charsPerPage: 500, hasImages: true, printableRatio: 0.99, wordlikeRatio: 0.9}
	if !strict.needsOCR(q) {
		t.Error("expected needsOCR=true under a raised chars-per-page floor")
	}
	if New(Config{}).needsOCR(q) {
		t.Error("expected needsOCR=false under default thresholds")
	}
}

func TestMeasurePDFText(t *testing.T) {
	q := measurePDFText("twenty characters xx", 2, true)
	if q.pages != 2 {
		t.Errorf("pages = %d, want 2", q.pages)
	}
	if q.charsPerPage != 10 {
		t.Errorf("charsPerPage = %f, want 10", q.charsPerPage)
	}
	if !q.hasImages {
		t.Error("hasImages not carried")
	}
}
