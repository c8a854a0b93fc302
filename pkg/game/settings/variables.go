package settings

import (
	"regexp"
)

type Variable string

const (
	AuthPlayerName  Variable = "auth_player_name"
	AuthUUID        Variable = "auth_uuid"
	AuthAccessToken Variable = "auth_access_token"
	AuthXUID        Variable = "auth_xuid"
	AuthSession     Variable = "auth_session"
	UserType        Variable = "user_type"
	UserProperties  Variable = "user_properties"
	UserPropertyMap Variable = "user_property_map"
	ClientID        Variable = "clientid"

	VersionName Variable = "version_name"
	VersionType Variable = "version_type"

	GameDirectory Variable = "game_directory"
	GameAssets    Variable = "game_assets"

	AssetsRoot      Variable = "assets_root"
	AssetsIndexName Variable = "assets_index_name"

	ResolutionWidth  Variable = "resolution_width"
	ResolutionHeight Variable = "resolution_height"

	LauncherName    Variable = "launcher_name"
	LauncherVersion Variable = "launcher_version"

	NativesDirectory   Variable = "natives_directory"
	Classpath          Variable = "classpath"
	ClasspathSeparator Variable = "classpath_separator"
	PrimaryJar         Variable = "primary_jar"
	LibraryDirectory   Variable = "library_directory"

	ModLoaderType      Variable = "mod_loader_type"
	ModLoaderVersion   Variable = "mod_loader_version"
	ModLoaderMainClass Variable = "mod_loader_main_class"

	QuickPlayPath         Variable = "quickPlayPath"
	QuickPlaySingleplayer Variable = "quickPlaySingleplayer"
	QuickPlayMultiplayer  Variable = "quickPlayMultiplayer"
	QuickPlayRealms       Variable = "quickPlayRealms"
)

// Variables lists every placeholder the launcher knows how to substitute.
var Variables = []Variable{
	AuthPlayerName, AuthUUID, AuthAccessToken, AuthXUID, AuthSession,
	UserType, UserProperties, UserPropertyMap, ClientID,
	VersionName, VersionType,
	GameDirectory, GameAssets,
	AssetsRoot, AssetsIndexName,
	ResolutionWidth, ResolutionHeight,
	LauncherName, LauncherVersion,
	NativesDirectory, Classpath, ClasspathSeparator, PrimaryJar, LibraryDirectory,
	ModLoaderType, ModLoaderVersion, ModLoaderMainClass,
	QuickPlayPath, QuickPlaySingleplayer, QuickPlayMultiplayer, QuickPlayRealms,
}

func (v Variable) Placeholder() string {
	return "${" + string(v) + "}"
}

func (v Variable) Known() bool {
	for _, known := range Variables {
		if known == v {
			return true
		}
	}
	return false
}

type Feature string

const (
	FeatureDemoUser            Feature = "is_demo_user"
	FeatureCustomResolution    Feature = "has_custom_resolution"
	FeatureUseModLoader        Feature = "use_mod_loader"
	FeatureQuickPlaySupport    Feature = "has_quick_plays_support"
	FeatureQuickPlaySingleplay Feature = "is_quick_play_singleplayer"
	FeatureQuickPlayMultiplay  Feature = "is_quick_play_multiplayer"
	FeatureQuickPlayRealms     Feature = "is_quick_play_realms"
)

// RuleFeatures are the features a version descriptor may reference in a game argument rule.
var RuleFeatures = []Feature{
	FeatureDemoUser,
	FeatureCustomResolution,
	FeatureQuickPlaySupport,
	FeatureQuickPlaySingleplay,
	FeatureQuickPlayMultiplay,
	FeatureQuickPlayRealms,
}

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// ReplaceVariable substitutes a single ${name} placeholder in s.
func ReplaceVariable(name string, s string, value string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		if match[2:len(match)-1] == name {
			return value
		}
		return match
	})
}
