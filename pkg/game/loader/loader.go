package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/logging"
	"limeal.fr/launchygo-resolver/pkg/utils"
)

var (
	ErrUnknownType       = errors.New("unknown mod loader type")
	ErrNoVersionFound    = errors.New("no mod loader version found")
	ErrNotResolved       = errors.New("mod loader version not resolved")
	ErrInvalidDescriptor = errors.New("invalid mod loader descriptor")
	ErrMissingEntry      = errors.New("installer entry not found")
)

type Type string

const (
	Fabric   Type = "fabric"
	Forge    Type = "forge"
	NeoForge Type = "neoforge"
)

var Types = []Type{Fabric, Forge, NeoForge}

func (t Type) Name() string {
	switch t {
	case Fabric:
		return "Fabric"
	case Forge:
		return "Forge"
	case NeoForge:
		return "NeoForge"
	}
	return string(t)
}

// ParseType accepts the tag or the display name, case-insensitively.
func ParseType(name string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(name, string(t)) || strings.EqualFold(name, t.Name()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// ModLoader resolves and installs one mod loader on top of a vanilla version.
// Resolve picks the loader version, Install fetches the loader files into
// <output>/<type>/. Both block on the network.
type ModLoader interface {
	Name() string
	Type() Type
	MinecraftVersion() string

	Resolve() error
	Install() ([]string, error)

	AdditionalJvmArguments() []string
	AdditionalGameArguments() []string
	MainClass() string
	Version() string

	// FailedLibraries lists the coordinates no repository could serve.
	FailedLibraries() []string

	// Close releases the repository connections.
	Close() error
}

const (
	FabricMetaURL       = "https://meta.fabricmc.net/v2"
	FabricMavenURL      = "https://maven.fabricmc.net"
	ForgeMavenURL       = "https://maven.minecraftforge.net"
	NeoForgeMavenURL    = "https://maven.neoforged.net/releases"
	NeoForgeVersionsURL = "https://maven.neoforged.net/api/maven/versions/releases/net/neoforged/neoforge"
	VanillaLibrariesURL = "https://libraries.minecraft.net/"
	MavenCentralURL     = "https://repo.maven.apache.org/maven2/"
)

// DefaultFallbackRepositories are tried, per loader, after the declared
// repository and the vanilla libraries mirror.
var DefaultFallbackRepositories = map[Type][]string{
	Fabric:   {ForgeMavenURL + "/", NeoForgeMavenURL + "/", MavenCentralURL},
	Forge:    {NeoForgeMavenURL + "/", MavenCentralURL, FabricMavenURL + "/"},
	NeoForge: {ForgeMavenURL + "/", MavenCentralURL, FabricMavenURL + "/"},
}

type Options struct {
	OutputDir string

	FabricMetaURL       string
	FabricMavenURL      string
	ForgeMavenURL       string
	NeoForgeMavenURL    string
	NeoForgeVersionsURL string
	VanillaLibrariesURL string

	// FallbackRepositories replaces DefaultFallbackRepositories when non-nil.
	FallbackRepositories []string
	// AdditionalRepositories are tried after the fallback repositories.
	AdditionalRepositories []string

	Progress utils.ProgressCallback
	Logger   hclog.Logger
}

func (o Options) withDefaults() Options {
	defaults := map[*string]string{
		&o.FabricMetaURL:       FabricMetaURL,
		&o.FabricMavenURL:      FabricMavenURL,
		&o.ForgeMavenURL:       ForgeMavenURL,
		&o.NeoForgeMavenURL:    NeoForgeMavenURL,
		&o.NeoForgeVersionsURL: NeoForgeVersionsURL,
		&o.VanillaLibrariesURL: VanillaLibrariesURL,
	}
	for field, value := range defaults {
		if *field == "" {
			*field = value
		}
	}
	o.Logger = logging.OrNull(o.Logger)
	return o
}

// New creates the mod loader for t. An empty version means "latest".
func New(t Type, minecraftVersion string, version string, opts Options) (ModLoader, error) {
	opts = opts.withDefaults()
	switch t {
	case Fabric:
		return NewFabric(minecraftVersion, version, opts), nil
	case Forge:
		return NewForge(minecraftVersion, version, opts), nil
	case NeoForge:
		return NewNeoForge(minecraftVersion, version, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

// base holds what every mod loader tracks once resolved.
type base struct {
	kind             Type
	minecraftVersion string
	version          string
	mainClass        string
	files            []string

	opts   Options
	logger hclog.Logger
	repos  *Repositories
}

func newBase(kind Type, minecraftVersion string, version string, opts Options) base {
	opts = opts.withDefaults()
	logger := opts.Logger.Named(string(kind))

	fallbacks := opts.FallbackRepositories
	if fallbacks == nil {
		fallbacks = DefaultFallbackRepositories[kind]
	}
	fallbacks = append(append([]string{}, fallbacks...), opts.AdditionalRepositories...)
	return base{
		kind:             kind,
		minecraftVersion: minecraftVersion,
		version:          version,
		opts:             opts,
		logger:           logger,
		repos:            NewRepositories(opts.VanillaLibrariesURL, fallbacks, logger),
	}
}

func (b *base) Name() string {
	return b.kind.Name()
}

func (b *base) Type() Type {
	return b.kind
}

func (b *base) MinecraftVersion() string {
	return b.minecraftVersion
}

func (b *base) Version() string {
	return b.version
}

func (b *base) MainClass() string {
	return b.mainClass
}

func (b *base) FailedLibraries() []string {
	return b.repos.Failed()
}

func (b *base) Close() error {
	return b.repos.Close()
}

// Dir is the flat download directory of the loader: <output>/<type>.
func (b *base) Dir() string {
	return filepath.Join(b.opts.OutputDir, string(b.kind))
}

func (b *base) addFile(path string) {
	for _, f := range b.files {
		if f == path {
			return
		}
	}
	b.files = append(b.files, path)
}

func (b *base) setMainClass(mainClass string) {
	b.mainClass = mainClass
	b.logger.Info("main class", "class", mainClass)
}

func (b *base) progress(current int, total int, description string) {
	if b.opts.Progress != nil {
		b.opts.Progress("Installing "+b.Name()+" libraries", current, total, description)
	}
}

// installLibraries fetches every library through the repository chain.
// Failures are recorded and skipped.
func (b *base) installLibraries(libraries []LibraryRef, defaultRepository string) {
	for i, lib := range libraries {
		coord, err := ParseCoordinate(lib.Name)
		if err != nil {
			b.logger.Warn("invalid library coordinate", "name", lib.Name, "error", err)
			continue
		}

		declared := lib.URL
		if declared == "" {
			declared = defaultRepository
		}

		if path, ok := b.repos.FetchLibrary(coord, declared, b.Dir()); ok {
			b.addFile(path)
		}
		b.progress(i+1, len(libraries), lib.Name)
	}
}
