package docpipe

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// zipOpen reads a payload as a ZIP archive.
func zipOpen(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open zip: %v", ErrExtractionFailure, err)
	}
	return r, nil
}

// zipFile returns the contents of one archive member.
func zipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrExtractionFailure, name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrExtractionFailure, name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s not found in archive", ErrExtractionFailure, name)
}

// zipHas reports whether the archive contains a member.
func zipHas(r *zip.Reader, name string) bool {
	for _, f := range r.File {
		if f.Name == name {
			return true
		}
	}
	return false
}
