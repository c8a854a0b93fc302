package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var ErrJavaNotFound = errors.New("no matching java found")

const javaProbeTimeout = 8 * time.Second

// JavaFinder looks for a local java executable of a given major version.
type JavaFinder struct {
	Logger hclog.Logger
	// Candidates lists the executables to probe, in order.
	Candidates func(ctx context.Context) []string
	// Version reports the version string of a java executable.
	Version func(ctx context.Context, javaPath string) (string, error)
}

func NewJavaFinder(logger hclog.Logger) *JavaFinder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &JavaFinder{
		Logger:     logger,
		Candidates: javaCandidates,
		Version:    JavaVersion,
	}
}

// Find returns the absolute path of the first candidate running Java major.
func (f *JavaFinder) Find(ctx context.Context, major int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, javaProbeTimeout)
	defer cancel()

	seen := map[string]bool{}
	for _, c := range f.Candidates(ctx) {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		version, err := f.Version(ctx, abs)
		if err != nil {
			f.Logger.Trace("skipping java candidate", "path", abs, "error", err)
			continue
		}
		if JavaMajor(version) == major {
			f.Logger.Debug("found java", "path", abs, "version", version)
			return abs, nil
		}
		f.Logger.Trace("java candidate has another version", "path", abs, "version", version)
	}
	return "", fmt.Errorf("%w: java %d", ErrJavaNotFound, major)
}

func javaCandidates(ctx context.Context) []string {
	var cands []string
	if home := os.Getenv("JAVA_HOME"); home != "" {
		cands = append(cands, filepath.Join(home, "bin", javaBinary()))
	}

	switch runtime.GOOS {
	case "darwin":
		cands = append(cands, globAll(
			"/Library/Java/JavaVirtualMachines/*/Contents/Home/bin/java",
			filepath.Join(os.Getenv("HOME"), "Library/Java/JavaVirtualMachines/*/Contents/Home/bin/java"),
			"/opt/homebrew/opt/openjdk*/libexec/openjdk.jdk/Contents/Home/bin/java",
			"/usr/local/opt/openjdk*/libexec/openjdk.jdk/Contents/Home/bin/java",
		)...)
	case "linux":
		cands = append(cands, commandLines(ctx, "update-alternatives", "--list", "java")...)
		cands = append(cands, globAll("/usr/lib/jvm/*/bin/java", "/usr/java/*/bin/java")...)
	case "windows":
		for _, root := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)")} {
			if root == "" {
				continue
			}
			cands = append(cands, globAll(
				filepath.Join(root, "Java", "*", "bin", "java.exe"),
				filepath.Join(root, "Eclipse Adoptium", "jdk-*", "bin", "java.exe"),
				filepath.Join(root, "Zulu", "zulu*", "bin", "java.exe"),
			)...)
		}
	}

	if p, err := exec.LookPath(javaBinary()); err == nil {
		cands = append(cands, p)
	}
	return cands
}

func javaBinary() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

func globAll(patterns ...string) []string {
	var matches []string
	for _, p := range patterns {
		m, _ := filepath.Glob(p)
		matches = append(matches, m...)
	}
	return matches
}

func commandLines(ctx context.Context, name string, args ...string) []string {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(string(out), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// javaVersionRe extracts "17.0.10" or "1.8.0_392" from java -version.
var javaVersionRe = regexp.MustCompile(`version "(.*?)"`)

// JavaVersion runs java -version, which prints to stderr.
func JavaVersion(ctx context.Context, javaPath string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, javaPath, "-version")
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return ParseJavaVersion(stderr.String())
}

func ParseJavaVersion(output string) (string, error) {
	m := javaVersionRe.FindStringSubmatch(output)
	if m == nil {
		return "", fmt.Errorf("failed to parse java version from %q", strings.TrimSpace(output))
	}
	return m[1], nil
}

// JavaMajor returns 8 for "1.8.0_392" and 17 for "17.0.10".
func JavaMajor(version string) int {
	version = strings.TrimSpace(version)
	if rest, ok := strings.CutPrefix(version, "1."); ok {
		version = rest
	}
	n := 0
	for _, r := range version {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
