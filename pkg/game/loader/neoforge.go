package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"limeal.fr/launchygo-resolver/pkg/connectors"
)

// NeoForgeLoader picks its version from the maven versions API. NeoForge
// versions drop the leading "1." of the Minecraft version: 1.20.4 -> 20.4.x.
type NeoForgeLoader struct {
	installerLoader
}

func NewNeoForge(minecraftVersion string, version string, opts Options) *NeoForgeLoader {
	b := newBase(NeoForge, minecraftVersion, version, opts)
	return &NeoForgeLoader{
		installerLoader: installerLoader{
			base:     b,
			group:    "net.neoforged",
			artifact: "neoforge",
			maven:    b.opts.NeoForgeMavenURL,
			fallbackJvm: []string{
				"--add-opens=java.base/java.lang.invoke=ALL-UNNAMED",
				"--add-opens=java.base/java.util.jar=ALL-UNNAMED",
				"--add-opens=java.base/sun.security.util=ALL-UNNAMED",
				"--add-exports=java.base/sun.security.util=ALL-UNNAMED",
				"--add-exports=jdk.naming.dns/com.sun.jndi.dns=java.naming",
			},
		},
	}
}

// NeoForgeVersionPrefix strips a leading "1." from the Minecraft version.
func NeoForgeVersionPrefix(minecraftVersion string) string {
	return strings.TrimPrefix(minecraftVersion, "1.")
}

// LatestNeoForgeVersion keeps the versions starting with prefix + "." and
// returns the greatest one in lexical order.
func LatestNeoForgeVersion(versions []string, minecraftVersion string) (string, bool) {
	prefix := NeoForgeVersionPrefix(minecraftVersion) + "."
	matching := []string{}
	for _, v := range versions {
		if strings.HasPrefix(v, prefix) {
			matching = append(matching, v)
		}
	}
	if len(matching) == 0 {
		return "", false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matching)))
	return matching[0], true
}

func (n *NeoForgeLoader) Resolve() error {
	if n.version != "" {
		return nil
	}

	api, err := connectors.Open(n.opts.NeoForgeVersionsURL)
	if err != nil {
		return err
	}
	defer api.Close()

	data, err := api.ReadFileBytes("")
	if err != nil {
		return fmt.Errorf("failed to list NeoForge versions: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed NeoForge version listing", ErrInvalidDescriptor)
	}

	versions := []string{}
	for _, v := range gjson.GetBytes(data, "versions").Array() {
		versions = append(versions, v.String())
	}

	latest, ok := LatestNeoForgeVersion(versions, n.minecraftVersion)
	if !ok {
		return fmt.Errorf("%w: NeoForge for minecraft %s", ErrNoVersionFound, n.minecraftVersion)
	}
	n.version = latest
	n.logger.Info("using latest version", "version", latest, "minecraft", n.minecraftVersion)
	return nil
}
