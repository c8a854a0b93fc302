package loader

import (
	"fmt"
)

// ForgeLoader has no version listing: when no version is requested it probes
// the maven for installers, most recent candidate first.
type ForgeLoader struct {
	installerLoader

	// ProbeCandidates lists the versions to probe, in order. Replace it to
	// plug a real listing source.
	ProbeCandidates func(minecraftVersion string) []string
}

// DefaultForgeProbeCandidates yields <mc>-i.i.i for i from 100 down to 1.
func DefaultForgeProbeCandidates(minecraftVersion string) []string {
	candidates := make([]string, 0, 100)
	for i := 100; i >= 1; i-- {
		candidates = append(candidates, fmt.Sprintf("%s-%d.%d.%d", minecraftVersion, i, i, i))
	}
	return candidates
}

func NewForge(minecraftVersion string, version string, opts Options) *ForgeLoader {
	b := newBase(Forge, minecraftVersion, version, opts)
	return &ForgeLoader{
		installerLoader: installerLoader{
			base:     b,
			group:    "net.minecraftforge",
			artifact: "forge",
			maven:    b.opts.ForgeMavenURL,
			fallbackJvm: []string{
				"--add-opens=java.base/java.lang.invoke=ALL-UNNAMED",
				"--add-opens=java.base/java.util.jar=ALL-UNNAMED",
				"--add-opens=java.base/sun.security.util=ALL-UNNAMED",
				"--add-exports=java.base/sun.security.util=ALL-UNNAMED",
			},
		},
		ProbeCandidates: DefaultForgeProbeCandidates,
	}
}

func (f *ForgeLoader) Resolve() error {
	if f.version != "" {
		return nil
	}

	maven, err := f.mavenConnector()
	if err != nil {
		return err
	}
	defer maven.Close()

	f.logger.Info("probing for latest version", "minecraft", f.minecraftVersion)
	for _, candidate := range f.ProbeCandidates(f.minecraftVersion) {
		if maven.HasFile(f.installerCoordinate(candidate).Path()) {
			f.version = candidate
			f.logger.Info("found version", "version", candidate)
			return nil
		}
	}
	return fmt.Errorf("%w: Forge for minecraft %s", ErrNoVersionFound, f.minecraftVersion)
}
