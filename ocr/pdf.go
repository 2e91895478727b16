// CLAUDE:SUMMARY Scanned-PDF recognition — pdfcpu image export into a per-invocation temp dir, then paged OCR.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"
)

// pdfPage holds the exported raster images of one PDF page.
type pdfPage struct {
	nr     int
	images [][]byte
}

// RunPDF recognizes text in a scanned PDF. Embedded page images are
// exported through a per-invocation temp directory, recognized page by
// page, and joined under "--- Page N ---" markers using the original page
// numbers. The second return value is the document's page count.
func (o *Orchestrator) RunPDF(ctx context.Context, pdf []byte, langHint string) (string, int, error) {
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return "", 0, fmt.Errorf("ocr pdf read: %w", err)
	}

	dir := filepath.Join(os.TempDir(), "docproc-ocr-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", 0, fmt.Errorf("ocr pdf workdir: %w", err)
	}
	defer os.RemoveAll(dir)

	pages, err := exportPageImages(pctx, dir)
	if err != nil {
		return "", pctx.PageCount, err
	}
	if len(pages) == 0 {
		return "", pctx.PageCount, ErrNoTextRecovered
	}

	texts := make([]string, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Parallelism)

	for i, page := range pages {
		g.Go(func() error {
			text, err := o.recognizePage(gctx, page, langHint)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", pctx.PageCount, err
	}

	var sb strings.Builder
	for i, page := range pages {
		t := strings.TrimSpace(texts[i])
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n%s", page.nr, t)
	}
	if sb.Len() == 0 {
		return "", pctx.PageCount, ErrNoTextRecovered
	}
	return sb.String(), pctx.PageCount, nil
}

// recognizePage runs every image of one page and joins the recovered texts.
func (o *Orchestrator) recognizePage(ctx context.Context, page pdfPage, langHint string) (string, error) {
	var parts []string
	for _, img := range page.images {
		text, err := o.Run(ctx, img, langHint)
		if err != nil {
			if errors.Is(err, ErrNoTextRecovered) {
				continue
			}
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

// exportPageImages writes every embedded page image under dir and reads it
// back, preserving page order. Pages without images are skipped.
func exportPageImages(pctx *model.Context, dir string) ([]pdfPage, error) {
	var pages []pdfPage
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		imgs, err := pdfcpu.ExtractPageImages(pctx, pageNr, false)
		if err != nil {
			continue
		}
		objNrs := make([]int, 0, len(imgs))
		for objNr := range imgs {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		page := pdfPage{nr: pageNr}
		for _, objNr := range objNrs {
			img := imgs[objNr]
			name := fmt.Sprintf("page%04d-obj%d.%s", pageNr, objNr, img.FileType)
			path := filepath.Join(dir, name)
			data, err := spoolImage(path, img)
			if err != nil {
				return nil, err
			}
			page.images = append(page.images, data)
		}
		if len(page.images) > 0 {
			pages = append(pages, page)
		}
	}
	return pages, nil
}

func spoolImage(path string, img model.Image) ([]byte, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("ocr pdf spool: %w", err)
	}
	if _, err := io.Copy(f, img); err != nil {
		f.Close()
		return nil, fmt.Errorf("ocr pdf spool %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
