package classpath

import (
	"path/filepath"
	"regexp"
)

type Origin string

const (
	OriginVanilla Origin = "vanilla"
	OriginLoader  Origin = "loader"
)

// artifactRe splits a library file name into its artifact id and version.
// A classifier, if any, stays glued to the version.
var artifactRe = regexp.MustCompile(`^([a-zA-Z0-9._-]+)-(\d+(?:\.\d+)*(?:[^.]+)?)(?:-[^.]+)?\.jar$`)

// Artifact is the identity of a classpath file, used for conflict detection.
type Artifact struct {
	ID      string
	Version string
	Origin  Origin
	Path    string
}

// ParseArtifact derives the identity of the file at path from its base name.
// Names that do not look like name-version[-classifier].jar are rejected.
func ParseArtifact(path string, origin Origin) (Artifact, bool) {
	m := artifactRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Artifact{}, false
	}
	return Artifact{ID: m[1], Version: m[2], Origin: origin, Path: path}, true
}
