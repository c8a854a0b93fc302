package loader

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCoordinate = errors.New("invalid maven coordinate")

// Coordinate is a maven artifact reference: group:artifact:version[:classifier][@ext].
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

func ParseCoordinate(s string) (Coordinate, error) {
	coord := Coordinate{Extension: "jar"}

	name := s
	if at := strings.LastIndex(s, "@"); at >= 0 {
		name = s[:at]
		coord.Extension = s[at+1:]
	}

	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("%w: %s (expected group:artifact:version[:classifier][@ext])", ErrInvalidCoordinate, s)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, s)
		}
	}
	if coord.Extension == "" {
		return Coordinate{}, fmt.Errorf("%w: %s (empty extension)", ErrInvalidCoordinate, s)
	}

	coord.Group = parts[0]
	coord.Artifact = parts[1]
	coord.Version = parts[2]
	if len(parts) == 4 {
		coord.Classifier = parts[3]
	}
	return coord, nil
}

// FileName is artifact-version[-classifier].ext.
func (c Coordinate) FileName() string {
	name := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.Extension
}

// Path is the repository relative path of the artifact, always with forward slashes.
func (c Coordinate) Path() string {
	return strings.ReplaceAll(c.Group, ".", "/") + "/" + c.Artifact + "/" + c.Version + "/" + c.FileName()
}

func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	if c.Extension != "jar" {
		s += "@" + c.Extension
	}
	return s
}
