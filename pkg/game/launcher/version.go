package launcher

import (
	"strconv"
	"strings"

	"limeal.fr/launchygo-resolver/pkg/game/manifests"
)

// javaMajors maps the first release needing a Java major to that major, newest first.
var javaMajors = []struct {
	since string
	major int
}{
	{"1.20.5", 21},
	{"1.18", 17},
	{"1.17", 16},
}

const legacyJavaMajor = 8

// JavaMajorForVersion returns the Java major a Minecraft release runs on.
func JavaMajorForVersion(mcVersion string) int {
	for _, m := range javaMajors {
		if VersionGTE(mcVersion, m.since) {
			return m.major
		}
	}
	return legacyJavaMajor
}

// JavaMajorForManifest prefers the major declared by the descriptor.
func JavaMajorForManifest(m *manifests.VersionManifest) int {
	if m.JavaVersion != nil && m.JavaVersion.MajorVersion > 0 {
		return int(m.JavaVersion.MajorVersion)
	}
	version := m.ID
	if m.InheritsFrom != "" {
		version = m.InheritsFrom
	}
	return JavaMajorForVersion(version)
}

func VersionLT(a, b string) bool  { return CompareVersions(a, b) < 0 }
func VersionGTE(a, b string) bool { return CompareVersions(a, b) >= 0 }

// CompareVersions compares dotted release numbers field by field. Missing or
// non numeric fields count as zero.
func CompareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		x, y := versionField(as, i), versionField(bs, i)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func versionField(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}
