package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/game/classpath"
	"limeal.fr/launchygo-resolver/pkg/game/libraries"
	"limeal.fr/launchygo-resolver/pkg/game/loader"
	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/profile"
	"limeal.fr/launchygo-resolver/pkg/game/rules"
	"limeal.fr/launchygo-resolver/pkg/game/settings"
)

var (
	ErrNoManifest  = errors.New("version descriptor not set")
	ErrNoMainClass = errors.New("no main class to launch")
)

const (
	DefaultLauncherName    = "launchygo"
	DefaultLauncherVersion = "1.0.0"
)

// LoaderFactory creates the mod loader of a launch; loader.New by default.
type LoaderFactory func(t loader.Type, minecraftVersion string, version string, opts loader.Options) (loader.ModLoader, error)

type Options struct {
	Manifest *manifests.VersionManifest
	Paths    settings.Paths
	Profile  *profile.GameProfile

	// JavaPath skips java discovery when set.
	JavaPath string

	// ModLoader is empty for a vanilla launch.
	ModLoader        loader.Type
	ModLoaderVersion string
	LoaderOptions    loader.Options
	NewLoader        LoaderFactory

	StandardJvmArgs  []string
	ShortenClasspath bool

	LauncherName    string
	LauncherVersion string

	// Env defaults to the host.
	Env *rules.Env

	Logger hclog.Logger
}

// Launch is a fully resolved launch, ready to spawn.
type Launch struct {
	Java      string
	MainClass string
	RunDir    string
	Arguments *Arguments
	Classpath *classpath.Classpath
	Settings  *settings.Settings
	Loader    loader.ModLoader
}

// Command is java, jvm arguments, main class, game arguments.
func (l *Launch) Command() []string {
	cmd := []string{l.Java}
	cmd = append(cmd, l.Arguments.JVM...)
	cmd = append(cmd, l.MainClass)
	return append(cmd, l.Arguments.Game...)
}

// Close releases the mod loader repositories.
func (l *Launch) Close() error {
	if l.Loader == nil {
		return nil
	}
	return l.Loader.Close()
}

type Launcher struct {
	opts   Options
	env    rules.Env
	logger hclog.Logger
}

func NewLauncher(opts Options) (*Launcher, error) {
	if opts.Manifest == nil {
		return nil, ErrNoManifest
	}
	if opts.Profile == nil {
		opts.Profile = profile.NewGameProfile()
	}
	if opts.NewLoader == nil {
		opts.NewLoader = loader.New
	}
	if opts.LauncherName == "" {
		opts.LauncherName = DefaultLauncherName
	}
	if opts.LauncherVersion == "" {
		opts.LauncherVersion = DefaultLauncherVersion
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	env := rules.DetectEnv()
	if opts.Env != nil {
		env = *opts.Env
	}
	return &Launcher{opts: opts, env: env, logger: opts.Logger}, nil
}

// Prepare runs the resolution pipeline: profile, mod loader, default
// variables, natives and classpath, arguments and java. Each step needs the previous one complete.
func (l *Launcher) Prepare(ctx context.Context) (*Launch, error) {
	m := l.opts.Manifest
	s := settings.New(m.ID, l.opts.Paths)
	l.logger.Info("preparing launch", "version", m.ID, "type", m.Type)

	if err := l.opts.Profile.Apply(s); err != nil {
		return nil, fmt.Errorf("failed to apply profile: %w", err)
	}

	launch := &Launch{RunDir: l.opts.Paths.Run, Settings: s}

	var loaderFiles []string
	if l.opts.ModLoader != "" {
		ml, files, err := l.installLoader(s)
		if err != nil {
			return nil, err
		}
		launch.Loader = ml
		loaderFiles = files
	}

	l.setDefaultVariables(s)

	cp, err := l.assembleClasspath(s, loaderFiles, launch.Loader != nil)
	if err != nil {
		launch.Close()
		return nil, err
	}
	launch.Classpath = cp
	if err := s.AddVariable(settings.Classpath, cp.Join()); err != nil {
		launch.Close()
		return nil, err
	}

	builder := &ArgumentsBuilder{
		Manifest:        m,
		Settings:        s,
		Env:             l.env,
		StandardJvmArgs: append(append([]string{}, l.opts.StandardJvmArgs...), l.opts.Profile.Memory.ToArgs()...),
		Loader:          launch.Loader,
		Logger:          l.logger.Named("arguments"),
	}
	launch.Arguments, err = builder.Build()
	if err != nil {
		launch.Close()
		return nil, err
	}

	launch.MainClass = l.mainClass(s)
	if launch.MainClass == "" {
		launch.Close()
		return nil, ErrNoMainClass
	}

	launch.Java = l.opts.JavaPath
	if launch.Java == "" {
		major := JavaMajorForManifest(m)
		launch.Java, err = NewJavaFinder(l.logger.Named("java")).Find(ctx, major)
		if err != nil {
			launch.Close()
			return nil, err
		}
	}
	l.logger.Info("launch ready", "java", launch.Java, "main_class", launch.MainClass,
		"jvm_args", len(launch.Arguments.JVM), "game_args", len(launch.Arguments.Game))
	return launch, nil
}

func (l *Launcher) installLoader(s *settings.Settings) (loader.ModLoader, []string, error) {
	opts := l.opts.LoaderOptions
	if opts.OutputDir == "" {
		opts.OutputDir = l.opts.Paths.Output
	}
	if opts.Logger == nil {
		opts.Logger = l.logger.Named("loader")
	}

	mc := l.opts.Manifest.ID
	if l.opts.Manifest.InheritsFrom != "" {
		mc = l.opts.Manifest.InheritsFrom
	}

	ml, err := l.opts.NewLoader(l.opts.ModLoader, mc, l.opts.ModLoaderVersion, opts)
	if err != nil {
		return nil, nil, err
	}
	l.logger.Info("setting up mod loader", "loader", ml.Name(), "minecraft", mc)

	if err := ml.Resolve(); err != nil {
		ml.Close()
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", ml.Name(), err)
	}
	files, err := ml.Install()
	if err != nil {
		ml.Close()
		return nil, nil, fmt.Errorf("failed to install %s %s: %w", ml.Name(), ml.Version(), err)
	}
	if failed := ml.FailedLibraries(); len(failed) > 0 {
		l.logger.Warn("mod loader libraries could not be downloaded", "loader", ml.Name(), "libraries", strings.Join(failed, ", "))
	}

	vars := []struct {
		v     settings.Variable
		value string
	}{
		{settings.ModLoaderType, string(ml.Type())},
		{settings.ModLoaderVersion, ml.Version()},
		{settings.ModLoaderMainClass, ml.MainClass()},
	}
	for _, e := range vars {
		if e.value == "" {
			continue
		}
		if err := s.AddVariable(e.v, e.value); err != nil {
			ml.Close()
			return nil, nil, err
		}
	}
	if ml.MainClass() == "" {
		l.logger.Warn("mod loader main class is not set, the vanilla one will be used", "loader", ml.Name())
	}
	s.AddFeature(settings.FeatureUseModLoader)
	return ml, files, nil
}

// assembleClasspath reads the library, natives and primary jar locations
// from s; any of them unset is a configuration error.
func (l *Launcher) assembleClasspath(s *settings.Settings, loaderFiles []string, loaderActive bool) (*classpath.Classpath, error) {
	located := map[settings.Variable]string{}
	for _, v := range []settings.Variable{settings.LibraryDirectory, settings.NativesDirectory, settings.PrimaryJar} {
		value, err := s.RequireVariable(v)
		if err != nil {
			return nil, err
		}
		located[v] = value
	}

	logger := l.logger.Named("libraries")
	files := libraries.NewLibrariesBuilder(located[settings.LibraryDirectory], l.env, logger).Build(l.opts.Manifest.Libraries)

	if _, err := libraries.ExtractNatives(libraries.Natives(files), located[settings.NativesDirectory], logger); err != nil {
		return nil, err
	}

	paths := l.opts.Paths
	return classpath.Assemble(classpath.Input{
		PrimaryJar:   located[settings.PrimaryJar],
		Vanilla:      libraries.ClasspathFiles(files),
		Loader:       loaderFiles,
		LoaderActive: loaderActive,
		Shorten:      l.opts.ShortenClasspath,
		ShortJar:     paths.ClasspathJar,
		Logger:       l.logger.Named("classpath"),
	})
}

// setDefaultVariables fills what neither the profile nor the pipeline set.
func (l *Launcher) setDefaultVariables(s *settings.Settings) {
	m := l.opts.Manifest
	paths := l.opts.Paths

	gameAssets := paths.VirtualAsset
	if gameAssets == "" {
		gameAssets = filepath.Join(paths.Assets, "dummy")
	}

	defaults := []struct {
		v     settings.Variable
		value string
	}{
		{settings.AuthPlayerName, "NotAuthUser"},
		{settings.AuthUUID, uuid.NewString()},
		{settings.AuthAccessToken, "-"},
		{settings.UserType, string(profile.UserTypeLegacy)},
		{settings.AuthXUID, "-"},
		{settings.ClientID, "-"},
		{settings.AuthSession, "-"},
		{settings.UserProperties, "{}"},
		{settings.UserPropertyMap, "{}"},
		{settings.VersionName, m.ID},
		{settings.VersionType, m.Type},
		{settings.GameDirectory, paths.Run},
		{settings.GameAssets, gameAssets},
		{settings.AssetsRoot, paths.Assets},
		{settings.AssetsIndexName, m.AssetIndexName()},
		{settings.LauncherName, l.opts.LauncherName},
		{settings.LauncherVersion, l.opts.LauncherVersion},
		{settings.NativesDirectory, paths.Natives},
		{settings.ClasspathSeparator, string(os.PathListSeparator)},
		{settings.PrimaryJar, paths.ClientJar},
		{settings.LibraryDirectory, paths.Libraries},
	}
	for _, d := range defaults {
		if s.AddDefaultVariable(d.v, d.value) {
			l.logger.Trace("default variable", "name", d.v, "value", d.value)
		}
	}
}

// mainClass is the loader main class when a loader is active, else the vanilla one.
func (l *Launcher) mainClass(s *settings.Settings) string {
	if s.HasFeature(settings.FeatureUseModLoader) {
		if mc, ok := s.Variable(settings.ModLoaderMainClass); ok && mc != "" {
			l.logger.Info("using mod loader main class", "class", mc)
			return mc
		}
	}
	l.logger.Info("using vanilla main class", "class", l.opts.Manifest.MainClass)
	return l.opts.Manifest.MainClass
}
