package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"limeal.fr/launchygo-resolver/pkg/connectors"
	"limeal.fr/launchygo-resolver/pkg/utils"
)

var fmlJvmArguments = []string{
	"-Dfml.ignoreInvalidMinecraftCertificates=true",
	"-Dfml.ignorePatchDiscrepancies=true",
}

// installerLoader is the install half shared by loaders distributed as an
// installer jar embedding a version profile (Forge, NeoForge).
type installerLoader struct {
	base

	group       string
	artifact    string
	maven       string
	fallbackJvm []string

	descriptor *Descriptor
}

func (l *installerLoader) installerCoordinate(version string) Coordinate {
	return Coordinate{Group: l.group, Artifact: l.artifact, Version: version, Classifier: "installer", Extension: "jar"}
}

func (l *installerLoader) mavenConnector() (connectors.Connector, error) {
	return connectors.Open(l.maven)
}

// downloadInstaller fetches the installer into the loader directory unless it is already there.
func (l *installerLoader) downloadInstaller() (string, error) {
	coord := l.installerCoordinate(l.version)
	dest := filepath.Join(l.Dir(), coord.FileName())
	if utils.FileExists(dest) {
		l.logger.Debug("installer already present", "path", dest)
		return dest, nil
	}

	maven, err := l.mavenConnector()
	if err != nil {
		return "", err
	}
	defer maven.Close()

	l.logger.Info("downloading installer", "repository", l.maven, "path", coord.Path())
	if err := maven.DownloadFile(coord.Path(), dest); err != nil {
		return "", fmt.Errorf("failed to download %s installer %s: %w", l.Name(), l.version, err)
	}
	return dest, nil
}

func (l *installerLoader) Install() ([]string, error) {
	if l.version == "" {
		return nil, ErrNotResolved
	}
	l.logger.Info("installing", "version", l.version, "minecraft", l.minecraftVersion)

	if err := os.MkdirAll(l.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", l.Dir(), err)
	}

	installer, err := l.downloadInstaller()
	if err != nil {
		return nil, err
	}

	descriptor, err := ReadInstallerDescriptor(installer)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s installer: %w", l.Name(), err)
	}
	l.descriptor = descriptor
	l.setMainClass(descriptor.MainClass)

	l.installLibraries(descriptor.Libraries, l.maven+"/")
	return l.files, nil
}

// AdditionalJvmArguments returns the FML defaults followed by the normalized
// descriptor arguments, or the fallback module flags when no descriptor was read.
func (l *installerLoader) AdditionalJvmArguments() []string {
	if l.descriptor == nil {
		return append([]string(nil), l.fallbackJvm...)
	}

	args := append([]string(nil), fmlJvmArguments...)
	args = append(args, NormalizeJvmArguments(l.descriptor.JvmArguments)...)
	if !hasInvokeOpens(args) {
		l.logger.Info("adding missing module opens", "directive", invokeOpens)
	}
	return withInvokeOpens(args)
}

func (l *installerLoader) AdditionalGameArguments() []string {
	if l.descriptor == nil {
		return []string{}
	}
	return append([]string{}, l.descriptor.GameArguments...)
}
