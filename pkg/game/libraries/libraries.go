package libraries

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/game/loader"
	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/rules"
	"limeal.fr/launchygo-resolver/pkg/utils"
)

// LibraryFile is a vanilla library as laid out in the libraries directory.
type LibraryFile struct {
	Name       string
	Path       string
	Native     bool
	Downloaded bool
}

type LibrariesBuilder struct {
	Dir    string
	Env    rules.Env
	Logger hclog.Logger
}

func NewLibrariesBuilder(dir string, env rules.Env, logger hclog.Logger) *LibrariesBuilder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LibrariesBuilder{Dir: dir, Env: env, Logger: logger}
}

// artifactPath returns the repository path of the main artifact, derived
// from the coordinate when the descriptor has no download entry.
func artifactPath(lib manifests.Library) string {
	if lib.Downloads.Artifact != nil && lib.Downloads.Artifact.Path != "" {
		return lib.Downloads.Artifact.Path
	}
	coord, err := loader.ParseCoordinate(lib.Name)
	if err != nil {
		return ""
	}
	return coord.Path()
}

func (b *LibrariesBuilder) file(name string, relPath string, native bool) LibraryFile {
	path := filepath.Join(b.Dir, filepath.FromSlash(relPath))
	return LibraryFile{
		Name:       name,
		Path:       path,
		Native:     native,
		Downloaded: utils.FileExists(path),
	}
}

// Build lists the library files applying to the host, natives included.
func (b *LibrariesBuilder) Build(libs []manifests.Library) []LibraryFile {
	files := []LibraryFile{}
	for _, lib := range libs {
		if !rules.ShouldInclude(lib.Rules, b.Env) {
			b.Logger.Trace("library excluded by rules", "library", lib.Name)
			continue
		}

		nativePath := ""
		if classifier, ok := rules.NativeClassifier(lib, b.Env); ok {
			if artifact := lib.Downloads.Classifiers[classifier]; artifact != nil && artifact.Path != "" {
				nativePath = artifact.Path
				files = append(files, b.file(lib.Name+":"+classifier, artifact.Path, true))
			}
		}

		// Libraries with only a natives map have no main artifact.
		if lib.Downloads.Artifact == nil && len(lib.Natives) > 0 {
			continue
		}
		if path := artifactPath(lib); path != "" {
			if path == nativePath {
				continue
			}
			files = append(files, b.file(lib.Name, path, rules.IsNative(lib)))
		} else {
			b.Logger.Warn("library without artifact", "library", lib.Name)
		}
	}

	missing := 0
	for _, f := range files {
		if !f.Downloaded {
			missing++
			b.Logger.Debug("library not downloaded", "library", f.Name, "path", f.Path)
		}
	}
	if missing > 0 {
		b.Logger.Warn("libraries missing from the libraries directory", "missing", missing, "total", len(files))
	}
	return files
}

// ClasspathFiles keeps the downloaded, non native files, in order.
func ClasspathFiles(files []LibraryFile) []string {
	paths := []string{}
	for _, f := range files {
		if f.Native || !f.Downloaded {
			continue
		}
		paths = append(paths, f.Path)
	}
	return paths
}

// Natives lists the downloaded native files, for the extraction step.
func Natives(files []LibraryFile) []string {
	paths := []string{}
	for _, f := range files {
		if f.Native && f.Downloaded {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
