package classpath

import (
	"archive/zip"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const manifestLineLength = 72

// fileURI returns the file: URI of path, made absolute first.
func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// C:/Users/... on Windows.
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}

// wrapManifestLine folds a header to the 72 byte manifest line limit,
// continuation lines starting with a single space.
func wrapManifestLine(line string) string {
	var b strings.Builder
	limit := manifestLineLength
	for len(line) > limit {
		b.WriteString(line[:limit])
		b.WriteString("\r\n ")
		line = line[limit:]
		limit = manifestLineLength - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
	return b.String()
}

// ManifestContent renders a jar manifest whose Class-Path lists files.
func ManifestContent(files []string) (string, error) {
	uris := make([]string, 0, len(files))
	for _, f := range files {
		uri, err := fileURI(f)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		uris = append(uris, uri)
	}

	var b strings.Builder
	b.WriteString(wrapManifestLine("Manifest-Version: 1.0"))
	b.WriteString(wrapManifestLine("Class-Path: " + strings.Join(uris, " ")))
	b.WriteString("\r\n")
	return b.String(), nil
}

// WriteManifestJar writes a jar holding only a manifest that points at files.
// The jar is rewritten on every call.
func WriteManifestJar(dest string, files []string) error {
	content, err := ManifestContent(files)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create classpath jar: %w", err)
	}
	defer f.Close()

	now := time.Now()
	w := zip.NewWriter(f)
	if _, err := w.CreateHeader(&zip.FileHeader{Name: "META-INF/", Method: zip.Store, Modified: now}); err != nil {
		return fmt.Errorf("failed to write classpath jar: %w", err)
	}
	entry, err := w.CreateHeader(&zip.FileHeader{Name: "META-INF/MANIFEST.MF", Method: zip.Deflate, Modified: now})
	if err != nil {
		return fmt.Errorf("failed to write classpath jar: %w", err)
	}
	if _, err := entry.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write classpath jar: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write classpath jar: %w", err)
	}
	return f.Close()
}
