package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

var (
	ErrVariableAlreadySet = errors.New("variable already set")
	ErrVariableNotSet     = errors.New("variable not set")
	ErrUnknownVariable    = errors.New("unknown variable")
)

// Paths are the filesystem locations a launch works with. They come from
// configuration; nothing in the resolver computes them beyond the defaults
// derived from the output directory.
type Paths struct {
	Output       string
	Run          string
	Natives      string
	Assets       string
	Libraries    string
	ClientJar    string
	ClasspathJar string
	LogConfig    string
	VirtualAsset string
}

// DefaultPaths lays the launch directories out under output.
func DefaultPaths(output string, run string) Paths {
	return Paths{
		Output:       output,
		Run:          run,
		Natives:      filepath.Join(output, "natives"),
		Assets:       filepath.Join(output, "assets"),
		Libraries:    filepath.Join(output, "libraries"),
		ClientJar:    filepath.Join(output, "client.jar"),
		ClasspathJar: filepath.Join(output, "client-classpath.jar"),
	}
}

// Settings is the launch configuration shared by every stage of the
// resolution pipeline. Variables are written at most once; features are additive.
type Settings struct {
	Version string
	Paths   Paths

	variables map[Variable]string
	features  map[Feature]struct{}
}

func New(version string, paths Paths) *Settings {
	return &Settings{
		Version:   version,
		Paths:     paths,
		variables: make(map[Variable]string),
		features:  make(map[Feature]struct{}),
	}
}

// AddVariable stores value for v. It fails if v already holds a value or
// is not one of Variables.
func (s *Settings) AddVariable(v Variable, value string) error {
	if !v.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, v)
	}
	if _, ok := s.variables[v]; ok {
		return fmt.Errorf("%w: %s", ErrVariableAlreadySet, v)
	}
	s.variables[v] = value
	return nil
}

// AddDefaultVariable stores value for v only if v is unset and reports whether it did.
func (s *Settings) AddDefaultVariable(v Variable, value string) bool {
	if !v.Known() {
		return false
	}
	if _, ok := s.variables[v]; ok {
		return false
	}
	s.variables[v] = value
	return true
}

func (s *Settings) Variable(v Variable) (string, bool) {
	value, ok := s.variables[v]
	return value, ok
}

// RequireVariable returns the value of v or ErrVariableNotSet.
func (s *Settings) RequireVariable(v Variable) (string, error) {
	value, ok := s.variables[v]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrVariableNotSet, v)
	}
	return value, nil
}

func (s *Settings) AddFeature(f Feature) {
	s.features[f] = struct{}{}
}

func (s *Settings) HasFeature(f Feature) bool {
	_, ok := s.features[f]
	return ok
}

func (s *Settings) Features() []Feature {
	features := make([]Feature, 0, len(s.features))
	for f := range s.features {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}

// ReplaceVariables substitutes every known placeholder that has a value.
// Unknown or unset placeholders are kept verbatim.
func (s *Settings) ReplaceVariables(arg string) string {
	return placeholderRe.ReplaceAllStringFunc(arg, func(match string) string {
		value, ok := s.variables[Variable(match[2:len(match)-1])]
		if !ok {
			return match
		}
		return value
	})
}

func (s *Settings) ReplaceAll(args []string) []string {
	replaced := make([]string, 0, len(args))
	for _, arg := range args {
		replaced = append(replaced, s.ReplaceVariables(arg))
	}
	return replaced
}
