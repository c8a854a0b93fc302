package loader

import (
	"fmt"
	"net/url"
	"os"

	"github.com/tidwall/gjson"

	"limeal.fr/launchygo-resolver/pkg/connectors"
)

const FabricMainClass = "net.fabricmc.loader.impl.launch.knot.KnotClient"

var fabricDefaultJvmArguments = []string{
	"-Dfabric.gameJarPath=${primary_jar}",
	"-Dfabric.development=false",
}

// FabricLoader resolves versions through the Fabric meta API. Besides the
// loader it needs the intermediary mappings matching the Minecraft version.
type FabricLoader struct {
	base

	IntermediaryVersion string

	profile *Descriptor
}

func NewFabric(minecraftVersion string, version string, opts Options) *FabricLoader {
	return &FabricLoader{
		base: newBase(Fabric, minecraftVersion, version, opts),
	}
}

func (f *FabricLoader) meta() (connectors.Connector, error) {
	return connectors.Open(f.opts.FabricMetaURL)
}

// firstVersion returns the "version" of the first entry of a meta listing.
func (f *FabricLoader) firstVersion(meta connectors.Connector, path string) (string, error) {
	data, err := meta.ReadFileBytes(path)
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: malformed listing %s", ErrInvalidDescriptor, path)
	}

	version := gjson.GetBytes(data, "0.version").String()
	if version == "" {
		return "", fmt.Errorf("%w: %s listing is empty for minecraft %s", ErrNoVersionFound, path, f.minecraftVersion)
	}
	return version, nil
}

func (f *FabricLoader) Resolve() error {
	meta, err := f.meta()
	if err != nil {
		return err
	}
	defer meta.Close()

	if f.version == "" {
		f.version, err = f.firstVersion(meta, "/versions/loader")
		if err != nil {
			return fmt.Errorf("failed to get latest Fabric loader version: %w", err)
		}
		f.logger.Info("using latest loader version", "version", f.version)
	}

	f.IntermediaryVersion, err = f.firstVersion(meta, "/versions/intermediary/"+url.PathEscape(f.minecraftVersion))
	if err != nil {
		return fmt.Errorf("failed to get Fabric intermediary version: %w", err)
	}
	f.logger.Info("using intermediary", "version", f.IntermediaryVersion, "minecraft", f.minecraftVersion)
	return nil
}

func (f *FabricLoader) profilePath() string {
	return fmt.Sprintf("/versions/loader/%s/%s/profile/json", url.PathEscape(f.minecraftVersion), url.PathEscape(f.version))
}

func (f *FabricLoader) loadProfile() error {
	meta, err := f.meta()
	if err != nil {
		return err
	}
	defer meta.Close()

	data, err := meta.ReadFileBytes(f.profilePath())
	if err != nil {
		return fmt.Errorf("failed to get Fabric launcher profile: %w", err)
	}
	profile, err := ParseDescriptor(data)
	if err != nil {
		return fmt.Errorf("failed to parse Fabric launcher profile: %w", err)
	}
	f.profile = profile
	return nil
}

func (f *FabricLoader) Install() ([]string, error) {
	if f.version == "" || f.IntermediaryVersion == "" {
		return nil, ErrNotResolved
	}
	f.logger.Info("installing", "version", f.version, "minecraft", f.minecraftVersion)

	if err := os.MkdirAll(f.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", f.Dir(), err)
	}

	if err := f.loadProfile(); err != nil {
		return nil, err
	}

	mainClass := f.profile.MainClass
	if mainClass == "" {
		mainClass = FabricMainClass
	}
	f.setMainClass(mainClass)

	fabricMaven := f.opts.FabricMavenURL + "/"
	libraries := append([]LibraryRef{
		{Name: "net.fabricmc:fabric-loader:" + f.version, URL: fabricMaven},
		{Name: "net.fabricmc:intermediary:" + f.IntermediaryVersion, URL: fabricMaven},
	}, f.profile.Libraries...)
	f.installLibraries(libraries, fabricMaven)

	return f.files, nil
}

func (f *FabricLoader) AdditionalJvmArguments() []string {
	if f.profile == nil || len(f.profile.JvmArguments) == 0 {
		return append([]string(nil), fabricDefaultJvmArguments...)
	}
	return append([]string(nil), f.profile.JvmArguments...)
}

func (f *FabricLoader) AdditionalGameArguments() []string {
	if f.profile == nil {
		return []string{}
	}
	return append([]string{}, f.profile.GameArguments...)
}

// MainClass falls back to the Knot client until the profile is loaded.
func (f *FabricLoader) MainClass() string {
	if f.mainClass == "" {
		return FabricMainClass
	}
	return f.mainClass
}
