package classpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

var (
	ErrNoPrimaryJar = errors.New("primary jar not set")
	ErrNoShortJar   = errors.New("classpath jar location not set")
)

type Input struct {
	// PrimaryJar is the game client jar, always first.
	PrimaryJar string
	// Vanilla holds the downloaded, non-native vanilla libraries.
	Vanilla []string
	// Loader holds the files installed by the mod loader.
	Loader []string

	LoaderActive bool
	Shorten      bool
	// ShortJar is where the manifest-only jar goes when shortening.
	ShortJar string

	Logger hclog.Logger
}

// Classpath is the assembled set. Entries is what goes on the command line:
// Files itself, or the manifest jar when Shortened.
type Classpath struct {
	Entries   []string
	Files     []string
	Shortened bool
}

func (c *Classpath) Join() string {
	return strings.Join(c.Entries, string(os.PathListSeparator))
}

// Conflicts returns the artifact ids present on both the vanilla and the loader side.
func Conflicts(vanilla []string, loader []string) map[string]bool {
	origins := map[string]map[Origin]bool{}
	collect := func(files []string, origin Origin) {
		for _, f := range files {
			a, ok := ParseArtifact(f, origin)
			if !ok {
				continue
			}
			if origins[a.ID] == nil {
				origins[a.ID] = map[Origin]bool{}
			}
			origins[a.ID][origin] = true
		}
	}
	collect(vanilla, OriginVanilla)
	collect(loader, OriginLoader)

	conflicts := map[string]bool{}
	for id, o := range origins {
		if o[OriginVanilla] && o[OriginLoader] {
			conflicts[id] = true
		}
	}
	return conflicts
}

// Assemble orders the classpath as primary jar, vanilla libraries not
// overridden by the loader, then every loader file. Identical paths collapse.
// A loader always gets the full classpath; otherwise Shorten replaces it with
// a manifest jar written to ShortJar.
func Assemble(in Input) (*Classpath, error) {
	if in.PrimaryJar == "" {
		return nil, ErrNoPrimaryJar
	}
	logger := in.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	conflicts := Conflicts(in.Vanilla, in.Loader)
	for id := range conflicts {
		logger.Info("detected conflicting library", "artifact", id)
	}

	seen := map[string]bool{}
	files := []string{}
	add := func(f string) {
		key := filepath.Clean(f)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, f)
	}

	add(in.PrimaryJar)
	for _, f := range in.Vanilla {
		if a, ok := ParseArtifact(f, OriginVanilla); ok && conflicts[a.ID] {
			logger.Debug("excluding conflicting vanilla library", "file", filepath.Base(f))
			continue
		}
		add(f)
	}
	for _, f := range in.Loader {
		add(f)
	}

	cp := &Classpath{Entries: files, Files: files}
	if !in.Shorten || in.LoaderActive || len(in.Loader) > 0 {
		if in.Shorten {
			logger.Info("using full classpath for mod loader")
		}
		return cp, nil
	}

	if in.ShortJar == "" {
		return nil, ErrNoShortJar
	}
	logger.Info("shortening classpath", "jar", in.ShortJar, "entries", len(files))
	if err := WriteManifestJar(in.ShortJar, files); err != nil {
		return nil, err
	}
	cp.Entries = []string{in.ShortJar}
	cp.Shortened = true
	return cp, nil
}
