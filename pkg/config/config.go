package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the launch configuration read from LAUNCHYGO_* environment
// variables. Command line flags override it.
type Config struct {
	// Version descriptor: a local path or a connector URI (file, http(s), sftp).
	VersionManifest string `env:"VERSION_MANIFEST"`

	OutputDir    string `env:"OUTPUT_DIR" envDefault:"./.minecraft"`
	RunDir       string `env:"RUN_DIR"`
	NativesDir   string `env:"NATIVES_DIR"`
	AssetsDir    string `env:"ASSETS_DIR"`
	LibrariesDir string `env:"LIBRARIES_DIR"`
	ClientJar    string `env:"CLIENT_JAR"`
	LogConfig    string `env:"LOG_CONFIG"`

	JavaPath string `env:"JAVA_PATH"`

	ModLoader        string `env:"MOD_LOADER"`
	ModLoaderVersion string `env:"MOD_LOADER_VERSION"`

	Username    string `env:"USERNAME"`
	UUID        string `env:"UUID"`
	AccessToken string `env:"ACCESS_TOKEN"`
	UserType    string `env:"USER_TYPE"`
	XUID        string `env:"XUID"`
	ClientID    string `env:"CLIENT_ID"`

	Demo   bool `env:"DEMO"`
	Width  int  `env:"WIDTH"`
	Height int  `env:"HEIGHT"`

	Xmx int `env:"XMX" envDefault:"2"`
	Xms int `env:"XMS" envDefault:"1"`

	ShortenClasspath bool     `env:"SHORTEN_CLASSPATH"`
	JvmArgs          []string `env:"JVM_ARGS" envSeparator:" " envDefault:"-XX:+UnlockExperimentalVMOptions -XX:+UseG1GC -XX:G1NewSizePercent=20 -XX:G1ReservePercent=20 -XX:MaxGCPauseMillis=50 -XX:G1HeapRegionSize=32M"`

	LauncherName    string `env:"LAUNCHER_NAME" envDefault:"launchygo"`
	LauncherVersion string `env:"LAUNCHER_VERSION" envDefault:"1.0.0"`

	FabricMetaURL          string   `env:"FABRIC_META_URL" envDefault:"https://meta.fabricmc.net/v2"`
	FabricMavenURL         string   `env:"FABRIC_MAVEN_URL" envDefault:"https://maven.fabricmc.net"`
	ForgeMavenURL          string   `env:"FORGE_MAVEN_URL" envDefault:"https://maven.minecraftforge.net"`
	NeoForgeMavenURL       string   `env:"NEOFORGE_MAVEN_URL" envDefault:"https://maven.neoforged.net/releases"`
	NeoForgeVersionsURL    string   `env:"NEOFORGE_VERSIONS_URL" envDefault:"https://maven.neoforged.net/api/maven/versions/releases/net/neoforged/neoforge"`
	VanillaLibrariesURL    string   `env:"VANILLA_LIBRARIES_URL" envDefault:"https://libraries.minecraft.net/"`
	AdditionalRepositories []string `env:"REPOSITORIES" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"JSON_LOG"`
}

const Prefix = "LAUNCHYGO_"

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from LAUNCHYGO_ prefixed environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.VersionManifest == "" {
		return fmt.Errorf("no version manifest configured (set %sVERSION_MANIFEST or --manifest)", Prefix)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("no output directory configured")
	}
	if (c.Width > 0) != (c.Height > 0) {
		return fmt.Errorf("custom resolution needs both width and height")
	}
	if c.Xms > c.Xmx {
		return fmt.Errorf("initial heap (%dG) exceeds maximum heap (%dG)", c.Xms, c.Xmx)
	}
	return nil
}
