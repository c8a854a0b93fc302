package launcher

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/game/loader"
	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/rules"
	"limeal.fr/launchygo-resolver/pkg/game/settings"
)

var ErrNoArguments = errors.New("version descriptor has no launch arguments")

// legacyJvmArguments stand in for the jvm section of descriptors that only
// carry minecraftArguments.
var legacyJvmArguments = []string{
	"-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump",
	"-Dos.name=Windows 10",
	"-Dos.version=10.0",
	"-Djava.library.path=${natives_directory}",
	"-Dminecraft.launcher.brand=${launcher_name}",
	"-Dminecraft.launcher.version=${launcher_version}",
	"-Dminecraft.client.jar=${primary_jar}",
	"-cp",
	"${classpath}",
}

// Arguments is what goes around the main class: JVM before it, Game after it.
type Arguments struct {
	JVM  []string
	Game []string
}

// ArgumentsBuilder turns a version descriptor into the launch arguments.
type ArgumentsBuilder struct {
	Manifest *manifests.VersionManifest
	Settings *settings.Settings
	Env      rules.Env

	// StandardJvmArgs follow the descriptor arguments.
	StandardJvmArgs []string
	// Loader contributes its arguments when the mod loader feature is set.
	Loader loader.ModLoader

	Logger hclog.Logger
}

func (b *ArgumentsBuilder) logger() hclog.Logger {
	if b.Logger == nil {
		return hclog.NewNullLogger()
	}
	return b.Logger
}

func (b *ArgumentsBuilder) Build() (*Arguments, error) {
	args := &Arguments{JVM: []string{}, Game: []string{}}

	switch {
	case b.Manifest.Arguments != nil:
		b.structured(args)
	case b.Manifest.MinecraftArguments != nil:
		b.legacy(args)
	default:
		return nil, ErrNoArguments
	}

	args.JVM = append(args.JVM, b.Settings.ReplaceAll(b.StandardJvmArgs)...)

	if arg, ok := b.loggingArgument(); ok {
		args.JVM = append(args.JVM, arg)
	}

	if b.Loader != nil && b.Settings.HasFeature(settings.FeatureUseModLoader) {
		b.loaderArguments(args)
	}
	return args, nil
}

// structured builds game = unconditional ++ conditional and
// jvm = conditional ++ unconditional.
func (b *ArgumentsBuilder) structured(args *Arguments) {
	game, conditionalGame := manifests.Split(b.Manifest.Arguments.Game)
	for _, arg := range conditionalGame {
		if rules.IncludeGameArgument(arg, b.Settings) {
			game = append(game, arg.Value...)
		}
	}

	unconditionalJvm, conditionalJvm := manifests.Split(b.Manifest.Arguments.JVM)
	jvm := []string{}
	for _, arg := range conditionalJvm {
		if rules.IncludeJvmArgument(arg, b.Env) {
			jvm = append(jvm, arg.Value...)
		}
	}
	jvm = append(jvm, unconditionalJvm...)

	args.Game = append(args.Game, b.Settings.ReplaceAll(game)...)
	args.JVM = append(args.JVM, b.Settings.ReplaceAll(jvm)...)
}

func (b *ArgumentsBuilder) legacy(args *Arguments) {
	game := []string{}
	if b.Settings.HasFeature(settings.FeatureDemoUser) {
		game = append(game, "--demo")
	}
	if b.Settings.HasFeature(settings.FeatureCustomResolution) {
		game = append(game,
			"--width", settings.ResolutionWidth.Placeholder(),
			"--height", settings.ResolutionHeight.Placeholder(),
		)
	}
	game = append(game, strings.Fields(*b.Manifest.MinecraftArguments)...)

	args.Game = append(args.Game, b.Settings.ReplaceAll(game)...)
	args.JVM = append(args.JVM, b.Settings.ReplaceAll(legacyJvmArguments)...)
}

// loggingArgument fills the descriptor log4j template with the log config path.
func (b *ArgumentsBuilder) loggingArgument() (string, bool) {
	logConfig := b.Settings.Paths.LogConfig
	if logConfig == "" || b.Manifest.Logging == nil || b.Manifest.Logging.Client.Argument == "" {
		return "", false
	}
	if abs, err := filepath.Abs(logConfig); err == nil {
		logConfig = abs
	}
	return settings.ReplaceVariable("path", b.Manifest.Logging.Client.Argument, logConfig), true
}

func (b *ArgumentsBuilder) loaderArguments(args *Arguments) {
	jvm := b.Loader.AdditionalJvmArguments()
	if len(jvm) > 0 {
		b.logger().Info("adding mod loader jvm arguments", "loader", b.Loader.Name(), "count", len(jvm))
		for _, arg := range jvm {
			args.JVM = append(args.JVM, b.Settings.ReplaceVariables(loader.NormalizeJvmArgument(arg)))
		}
	}

	game := b.Loader.AdditionalGameArguments()
	if len(game) > 0 {
		b.logger().Info("adding mod loader game arguments", "loader", b.Loader.Name(), "count", len(game))
		args.Game = append(args.Game, b.Settings.ReplaceAll(game)...)
	}
}
