package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeEngine struct {
	name    string
	text    string
	err     error
	byLang  map[string]string
	calls   int
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Recognize(ctx context.Context, img []byte, lang string) (Attempt, error) {
	f.calls++
	if f.err != nil {
		return Attempt{}, f.err
	}
	text := f.text
	if f.byLang != nil {
		text = f.byLang[lang]
	}
	return Attempt{EngineID: f.name, LanguageHint: lang, Text: text}, nil
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRunSelectsByCharCount(t *testing.T) {
	short := &fakeEngine{name: "short", text: strings.Repeat("a", 10)}
	long := &fakeEngine{name: "long", text: strings.Repeat("b", 50)}
	o := New(Config{Engines: []Engine{short, long}})

	text, err := o.Run(context.Background(), testImage(t, 10, 10), "")
	if err != nil {
		t.Fatal(err)
	}
	if text != strings.Repeat("b", 50) {
		t.Errorf("longest output not selected: %q", text)
	}
}

func TestRunTieBreaksByPriority(t *testing.T) {
	first := &fakeEngine{name: "first", text: "identical ten"}
	second := &fakeEngine{name: "second", text: "also....ten.."}
	o := New(Config{Engines: []Engine{first, second}})

	text, err := o.Run(context.Background(), testImage(t, 10, 10), "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "identical ten" {
		t.Errorf("tie not broken by priority order: %q", text)
	}
}

func TestRunEngineFailureNotFatal(t *testing.T) {
	broken := &fakeEngine{name: "broken", err: fmt.Errorf("binary missing")}
	ok := &fakeEngine{name: "ok", text: "recovered text here"}
	o := New(Config{Engines: []Engine{broken, ok}})

	text, err := o.Run(context.Background(), testImage(t, 10, 10), "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "recovered text here" {
		t.Errorf("text = %q", text)
	}
}

func TestRunAllEmpty(t *testing.T) {
	o := New(Config{Engines: []Engine{&fakeEngine{name: "empty"}}})
	if _, err := o.Run(context.Background(), testImage(t, 10, 10), ""); err != ErrNoTextRecovered {
		t.Errorf("err = %v, want ErrNoTextRecovered", err)
	}
}

func TestRunRetriesWithLanguageHint(t *testing.T) {
	eng := &fakeEngine{name: "multi", byLang: map[string]string{
		"en": "abc", // below the ten-char threshold
		"es": "el contrato fue firmado por ambas partes",
	}}
	o := New(Config{Engines: []Engine{eng}})

	text, err := o.Run(context.Background(), testImage(t, 10, 10), "es")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "contrato") {
		t.Errorf("hint pass not used: %q", text)
	}
	if eng.calls != 2 {
		t.Errorf("calls = %d, want 2 (baseline + retry)", eng.calls)
	}
}

func TestRunDerivesHintFromBaselineScript(t *testing.T) {
	// No caller hint: a non-latin baseline fragment must still trigger the
	// language-specific retry, with the language taken from the fragment.
	eng := &fakeEngine{name: "multi", byLang: map[string]string{
		"en": "Η σύμβαση λύεται",
		"el": "Η σύμβαση λύεται αυτοδικαίως με την πάροδο της προθεσμίας",
	}}
	o := New(Config{Engines: []Engine{eng}})

	text, err := o.Run(context.Background(), testImage(t, 10, 10), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "αυτοδικαίως") {
		t.Errorf("derived-hint pass not used: %q", text)
	}
	if eng.calls != 2 {
		t.Errorf("calls = %d, want 2 (baseline + derived retry)", eng.calls)
	}
}

func TestRunNoRetryWhenBaselineGood(t *testing.T) {
	eng := &fakeEngine{name: "good", text: "this baseline pass recovered plenty of text"}
	o := New(Config{Engines: []Engine{eng}})

	if _, err := o.Run(context.Background(), testImage(t, 10, 10), "es"); err != nil {
		t.Fatal(err)
	}
	if eng.calls != 1 {
		t.Errorf("calls = %d, want 1", eng.calls)
	}
}

func TestRunPagesMarkersAndOrder(t *testing.T) {
	pages := make([][]byte, 3)
	for i := range pages {
		pages[i] = testImage(t, 10, 10)
	}

	// Parallelism of one keeps page order and call order aligned.
	texts := []string{"first page body text", "", "third page body text"}
	n := 0
	dyn := &dynamicEngine{fn: func() string {
		t := texts[n%len(texts)]
		n++
		return t
	}}
	o := New(Config{Engines: []Engine{dyn}, Parallelism: 1})

	out, err := o.RunPages(context.Background(), pages, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "--- Page 1 ---\nfirst page body text") {
		t.Errorf("missing page 1 block:\n%s", out)
	}
	if strings.Contains(out, "--- Page 2 ---") {
		t.Errorf("empty page 2 must be skipped:\n%s", out)
	}
	if !strings.Contains(out, "--- Page 3 ---\nthird page body text") {
		t.Errorf("missing page 3 block:\n%s", out)
	}
	if strings.Index(out, "Page 1") > strings.Index(out, "Page 3") {
		t.Error("page order lost")
	}
}

type dynamicEngine struct {
	fn func() string
}

func (d *dynamicEngine) Name() string { return "dynamic" }

func (d *dynamicEngine) Recognize(ctx context.Context, img []byte, lang string) (Attempt, error) {
	return Attempt{EngineID: "dynamic", Text: d.fn()}, nil
}

func TestRunPagesAllEmpty(t *testing.T) {
	o := New(Config{Engines: []Engine{&fakeEngine{name: "empty"}}})
	pages := [][]byte{testImage(t, 10, 10), testImage(t, 10, 10)}
	if _, err := o.RunPages(context.Background(), pages, ""); err != ErrNoTextRecovered {
		t.Errorf("err = %v, want ErrNoTextRecovered", err)
	}
}

func TestPreprocessKeepsUndecodableInput(t *testing.T) {
	raw := []byte("not an image at all")
	if got := Preprocess(raw); !bytes.Equal(got, raw) {
		t.Error("undecodable input must pass through unchanged")
	}
}

func TestPreprocessUpscalesNarrowImage(t *testing.T) {
	out := Preprocess(testImage(t, 200, 100))
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if w := img.Bounds().Dx(); w != 400 {
		t.Errorf("width = %d, want 400 (2x upscale)", w)
	}
}

func TestRemoteEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Image    string `json:"image"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if in.Image == "" {
			t.Error("image payload missing")
		}
		conf := 0.92
		json.NewEncoder(w).Encode(map[string]any{"text": "recognized line", "confidence": conf})
	}))
	defer srv.Close()

	eng := NewRemote(srv.URL)
	att, err := eng.Recognize(context.Background(), []byte{1, 2, 3}, "en")
	if err != nil {
		t.Fatal(err)
	}
	if att.Text != "recognized line" {
		t.Errorf("text = %q", att.Text)
	}
	if att.Confidence == nil || *att.Confidence != 0.92 {
		t.Errorf("confidence = %v", att.Confidence)
	}
}

func TestRemoteEngineHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	eng := NewRemote(srv.URL)
	if _, err := eng.Recognize(context.Background(), []byte{1}, "en"); err == nil {
		t.Error("expected error for http 503")
	}
}

func TestTesseractLangMapping(t *testing.T) {
	tests := []struct{ in, want string }{
		{"en", "eng"},
		{"es", "spa"},
		{"ZH", "chi_sim"},
		{"eng", "eng"},
		{"", ""},
		{"xx", ""},
	}
	for _, tt := range tests {
		if got := tesseractLang(tt.in); got != tt.want {
			t.Errorf("tesseractLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
