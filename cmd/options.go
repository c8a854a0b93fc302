package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"limeal.fr/launchygo-resolver/pkg/config"
	"limeal.fr/launchygo-resolver/pkg/connectors"
	"limeal.fr/launchygo-resolver/pkg/game/launcher"
	"limeal.fr/launchygo-resolver/pkg/game/loader"
	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/profile"
	"limeal.fr/launchygo-resolver/pkg/game/settings"
	"limeal.fr/launchygo-resolver/pkg/utils"
)

var (
	quickPlaySingleplayer string
	quickPlayMultiplayer  string
	quickPlayRealms       string
)

// addLaunchFlags registers the flags shared by launch and resolve. Each one
// overrides its LAUNCHYGO_* counterpart only when given.
func addLaunchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("manifest", "m", "", "Version descriptor: a path or a file, http(s) or sftp URI")
	f.StringP("output", "o", "", "Output directory holding libraries, assets, natives and the client jar")
	f.String("run-dir", "", "Game working directory (defaults to the output directory)")
	f.StringP("java", "j", "", "The path to the java executable")
	f.StringP("loader", "l", "", "Mod loader to install (fabric, forge, neoforge)")
	f.String("loader-version", "", "Mod loader version (latest when empty)")
	f.StringSlice("repository", nil, "Additional maven repository URI, tried last (repeatable)")
	f.StringP("username", "u", "", "Player name")
	f.String("uuid", "", "Player UUID")
	f.String("access-token", "", "Access token handed over by the login step")
	f.String("user-type", "", "User type (msa, mojang, legacy)")
	f.Bool("demo", false, "Launch in demo mode")
	f.Int("width", 0, "Window width")
	f.Int("height", 0, "Window height")
	f.IntP("Xmx", "x", 0, "Maximum heap in GB")
	f.IntP("Xms", "s", 0, "Initial heap in GB")
	f.Bool("shorten-classpath", false, "Replace a vanilla classpath with a manifest jar")
	f.StringVar(&quickPlaySingleplayer, "quickPlaySingleplayer", "", "Join a singleplayer world on start")
	f.StringVar(&quickPlayMultiplayer, "quickPlayMultiplayer", "", "Join a server on start (e.g mc.example.com)")
	f.StringVar(&quickPlayRealms, "quickPlayRealms", "", "Join a realm on start")
}

func overrideFromFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()

	strs := map[string]*string{
		"manifest":       &c.VersionManifest,
		"output":         &c.OutputDir,
		"run-dir":        &c.RunDir,
		"java":           &c.JavaPath,
		"loader":         &c.ModLoader,
		"loader-version": &c.ModLoaderVersion,
		"username":       &c.Username,
		"uuid":           &c.UUID,
		"access-token":   &c.AccessToken,
		"user-type":      &c.UserType,
	}
	for name, field := range strs {
		if f.Changed(name) {
			*field, _ = f.GetString(name)
		}
	}

	ints := map[string]*int{"width": &c.Width, "height": &c.Height, "Xmx": &c.Xmx, "Xms": &c.Xms}
	for name, field := range ints {
		if f.Changed(name) {
			*field, _ = f.GetInt(name)
		}
	}

	bools := map[string]*bool{"demo": &c.Demo, "shorten-classpath": &c.ShortenClasspath}
	for name, field := range bools {
		if f.Changed(name) {
			*field, _ = f.GetBool(name)
		}
	}

	if f.Changed("repository") {
		repos, _ := f.GetStringSlice("repository")
		c.AdditionalRepositories = append(c.AdditionalRepositories, repos...)
	}
}

// loadManifest reads a local descriptor or fetches it through a connector.
func loadManifest(location string) (*manifests.VersionManifest, error) {
	if !strings.Contains(location, "://") {
		return manifests.LoadVersionManifest(location)
	}

	dir, name := path.Split(location)
	c, err := connectors.Open(strings.TrimSuffix(dir, "/"))
	if err != nil {
		return nil, err
	}
	defer c.Close()

	var manifest manifests.VersionManifest
	if err := c.ReadFile(name, &manifest); err != nil {
		return nil, fmt.Errorf("failed to fetch version manifest %s: %w", location, err)
	}
	return &manifest, nil
}

// buildPaths makes every location absolute: the game runs from the run
// directory, not from the caller's working directory.
func buildPaths(c config.Config) (settings.Paths, error) {
	output, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return settings.Paths{}, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	paths := settings.DefaultPaths(output, output)

	overrides := map[*string]string{
		&paths.Run:       c.RunDir,
		&paths.Natives:   c.NativesDir,
		&paths.Assets:    c.AssetsDir,
		&paths.Libraries: c.LibrariesDir,
		&paths.ClientJar: c.ClientJar,
		&paths.LogConfig: c.LogConfig,
	}
	for field, value := range overrides {
		if value == "" {
			continue
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return settings.Paths{}, fmt.Errorf("failed to resolve %s: %w", value, err)
		}
		*field = abs
	}
	return paths, nil
}

func buildProfile(c config.Config) (*profile.GameProfile, error) {
	p := profile.NewGameProfile()
	p.SetUser(c.Username, c.UUID, c.AccessToken)
	if c.UserType != "" {
		p.UserType = profile.UserType(c.UserType)
	}
	p.XUID = c.XUID
	p.ClientID = c.ClientID
	p.Demo = c.Demo
	p.Width = c.Width
	p.Height = c.Height
	p.SetMemory(c.Xmx, c.Xms)
	if err := p.Memory.Validate(); err != nil {
		return nil, err
	}

	p.QuickPlay = profile.QuickPlay{
		Singleplayer: quickPlaySingleplayer,
		Multiplayer:  quickPlayMultiplayer,
		Realms:       quickPlayRealms,
	}
	return p, nil
}

// buildLauncher turns the merged configuration into a ready launcher.
func buildLauncher(c config.Config) (*launcher.Launcher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	manifest, err := loadManifest(c.VersionManifest)
	if err != nil {
		return nil, err
	}

	paths, err := buildPaths(c)
	if err != nil {
		return nil, err
	}
	p, err := buildProfile(c)
	if err != nil {
		return nil, err
	}
	if p.QuickPlay.Singleplayer != "" || p.QuickPlay.Multiplayer != "" || p.QuickPlay.Realms != "" {
		p.QuickPlay.Path = filepath.Join(paths.Run, "quickPlay", "log.json")
	}

	opts := launcher.Options{
		Manifest:         manifest,
		Paths:            paths,
		Profile:          p,
		JavaPath:         c.JavaPath,
		ModLoaderVersion: c.ModLoaderVersion,
		StandardJvmArgs:  c.JvmArgs,
		ShortenClasspath: c.ShortenClasspath,
		LauncherName:     c.LauncherName,
		LauncherVersion:  c.LauncherVersion,
		Logger:           logger,
		LoaderOptions: loader.Options{
			OutputDir:              paths.Output,
			FabricMetaURL:          c.FabricMetaURL,
			FabricMavenURL:         c.FabricMavenURL,
			ForgeMavenURL:          c.ForgeMavenURL,
			NeoForgeMavenURL:       c.NeoForgeMavenURL,
			NeoForgeVersionsURL:    c.NeoForgeVersionsURL,
			VanillaLibrariesURL:    c.VanillaLibrariesURL,
			AdditionalRepositories: c.AdditionalRepositories,
			Progress:               utils.ProgressPrinter(os.Stderr),
		},
	}
	if c.ModLoader != "" {
		opts.ModLoader, err = loader.ParseType(c.ModLoader)
		if err != nil {
			return nil, err
		}
	}
	return launcher.NewLauncher(opts)
}
