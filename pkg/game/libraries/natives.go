package libraries

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/utils"
)

var nativeExtensions = []string{".so", ".dll", ".dylib", ".jnilib"}

// ExtractNatives copies the dynamic libraries of every native jar into dir,
// flattened. A file already present with the same size is left alone. A jar
// that cannot be read is skipped with a warning; the count of extracted
// files is returned.
func ExtractNatives(jars []string, dir string, logger hclog.Logger) (int, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(jars) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create natives directory: %w", err)
	}

	extracted := 0
	for _, jar := range jars {
		n, err := extractJar(jar, dir)
		extracted += n
		if err != nil {
			logger.Warn("failed to extract natives", "jar", filepath.Base(jar), "error", err)
			continue
		}
		logger.Debug("natives extracted", "jar", filepath.Base(jar), "files", n)
	}
	return extracted, nil
}

func extractJar(jar string, dir string) (int, error) {
	r, err := zip.OpenReader(jar)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	extracted := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		if !slices.Contains(nativeExtensions, strings.ToLower(filepath.Ext(f.Name))) {
			continue
		}

		dest := filepath.Join(dir, filepath.Base(f.Name))
		if info, err := os.Stat(dest); err == nil && info.Size() == int64(f.UncompressedSize64) {
			continue
		}

		src, err := f.Open()
		if err != nil {
			return extracted, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		err = utils.WriteFileFrom(dest, src)
		src.Close()
		if err != nil {
			return extracted, err
		}
		extracted++
	}
	return extracted, nil
}
