package loader

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// DescriptorEntry is the version profile embedded in Forge and NeoForge installers.
const DescriptorEntry = "version.json"

const invokeOpens = "--add-opens=java.base/java.lang.invoke=ALL-UNNAMED"

// LibraryRef is a library as listed by a loader descriptor.
type LibraryRef struct {
	Name string
	URL  string // declared repository, may be empty
}

// Descriptor is what the resolver needs from a loader profile.
type Descriptor struct {
	ID            string
	MainClass     string
	Libraries     []LibraryRef
	JvmArguments  []string
	GameArguments []string
}

// ParseDescriptor reads a loader profile. Libraries may be a plain array or an
// object with "common" and "client" arrays; only string arguments are kept.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDescriptor)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: not a json object", ErrInvalidDescriptor)
	}

	d := &Descriptor{
		ID:            root.Get("id").String(),
		MainClass:     root.Get("mainClass").String(),
		JvmArguments:  stringEntries(root.Get("arguments.jvm")),
		GameArguments: stringEntries(root.Get("arguments.game")),
	}

	libraries := root.Get("libraries")
	switch {
	case libraries.IsArray():
		d.Libraries = libraryRefs(libraries)
	case libraries.IsObject():
		d.Libraries = append(libraryRefs(libraries.Get("common")), libraryRefs(libraries.Get("client"))...)
	}
	return d, nil
}

func stringEntries(list gjson.Result) []string {
	entries := []string{}
	list.ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			entries = append(entries, value.String())
		}
		return true
	})
	return entries
}

func libraryRefs(list gjson.Result) []LibraryRef {
	refs := []LibraryRef{}
	list.ForEach(func(_, lib gjson.Result) bool {
		name := lib.Get("name").String()
		if !lib.IsObject() || name == "" {
			return true
		}

		ref := LibraryRef{Name: name, URL: lib.Get("url").String()}
		if ref.URL == "" {
			ref.URL = repositoryFromArtifact(lib.Get("downloads.artifact"))
		}
		refs = append(refs, ref)
		return true
	})
	return refs
}

// repositoryFromArtifact recovers the repository root from a full artifact
// url when the descriptor gives downloads instead of a repository.
func repositoryFromArtifact(artifact gjson.Result) string {
	url := artifact.Get("url").String()
	path := artifact.Get("path").String()
	if url == "" || path == "" || !strings.HasSuffix(url, path) {
		return ""
	}
	return strings.TrimSuffix(url, path)
}

// ReadInstallerEntry returns the content of entry inside the installer archive.
func ReadInstallerEntry(installerPath string, entry string) ([]byte, error) {
	r, err := zip.OpenReader(installerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open installer %s: %w", installerPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in installer: %w", entry, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrMissingEntry, entry, installerPath)
}

// ReadInstallerDescriptor extracts and parses the embedded version profile.
// The installer separator placeholder is replaced by the host list separator.
func ReadInstallerDescriptor(installerPath string) (*Descriptor, error) {
	data, err := ReadInstallerEntry(installerPath, DescriptorEntry)
	if err != nil {
		return nil, err
	}

	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, err
	}
	if d.MainClass == "" {
		return nil, fmt.Errorf("%w: missing mainClass in %s", ErrInvalidDescriptor, DescriptorEntry)
	}

	for i, arg := range d.JvmArguments {
		d.JvmArguments[i] = strings.ReplaceAll(arg, "${classpath_separator}", string(os.PathListSeparator))
	}
	return d, nil
}

var moduleFlags = []string{"--add-opens", "--add-exports", "--add-reads", "--add-modules"}

func isModuleFlag(arg string) bool {
	for _, flag := range moduleFlags {
		if arg == flag {
			return true
		}
	}
	return false
}

// NormalizeJvmArgument rewrites "--add-opens value" (and the other module
// flags) to "--add-opens=value". Anything else is returned unchanged.
func NormalizeJvmArgument(arg string) string {
	flag, value, found := strings.Cut(arg, " ")
	if !found || !isModuleFlag(flag) {
		return arg
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return flag
	}
	return flag + "=" + value
}

// NormalizeJvmArguments normalizes every argument and also joins a bare module
// flag with the value that follows it as a separate entry.
func NormalizeJvmArguments(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := NormalizeJvmArgument(args[i])
		if isModuleFlag(arg) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			arg = arg + "=" + args[i+1]
			i++
		}
		normalized = append(normalized, arg)
	}
	return normalized
}

// hasInvokeOpens accepts both the "=" and the space separated spelling.
func hasInvokeOpens(args []string) bool {
	for _, arg := range args {
		if strings.Contains(arg, "--add-opens java.base/java.lang.invoke=") ||
			strings.Contains(arg, "--add-opens=java.base/java.lang.invoke=") {
			return true
		}
	}
	return false
}

// withInvokeOpens appends the java.lang.invoke opens directive when absent.
func withInvokeOpens(args []string) []string {
	if hasInvokeOpens(args) {
		return args
	}
	return append(args, invokeOpens)
}
