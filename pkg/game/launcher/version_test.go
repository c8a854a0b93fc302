package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 0, CompareVersions("1.20", "1.20.0"))
	assert.Equal(t, -1, CompareVersions("1.19.4", "1.20"))
	assert.Equal(t, 1, CompareVersions("1.20.10", "1.20.9"))
	assert.True(t, VersionLT("1.8.9", "1.19"))
	assert.True(t, VersionGTE("1.21", "1.20.5"))
}

func TestJavaMajorForVersion(t *testing.T) {
	tests := map[string]int{
		"1.7.10": 8,
		"1.16.5": 8,
		"1.17.1": 16,
		"1.18":   17,
		"1.20.4": 17,
		"1.20.5": 21,
		"1.21.1": 21,
	}
	for version, want := range tests {
		assert.Equal(t, want, JavaMajorForVersion(version), version)
	}
}

func TestJavaMajorForManifest(t *testing.T) {
	m := parseManifest(t, `{"id": "24w14a", "javaVersion": {"component": "java-runtime-delta", "majorVersion": 21}}`)
	assert.Equal(t, 21, JavaMajorForManifest(m))

	m = parseManifest(t, `{"id": "fabric-loader-0.15.7-1.20.1", "inheritsFrom": "1.20.1"}`)
	assert.Equal(t, 17, JavaMajorForManifest(m))
}
