package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJavaVersion(t *testing.T) {
	v, err := ParseJavaVersion(`openjdk version "17.0.10" 2024-01-16
OpenJDK Runtime Environment Temurin-17.0.10+7 (build 17.0.10+7)`)
	require.NoError(t, err)
	assert.Equal(t, "17.0.10", v)

	v, err = ParseJavaVersion(`java version "1.8.0_392"`)
	require.NoError(t, err)
	assert.Equal(t, "1.8.0_392", v)

	_, err = ParseJavaVersion("command not found")
	assert.Error(t, err)
}

func TestJavaMajor(t *testing.T) {
	assert.Equal(t, 8, JavaMajor("1.8.0_392"))
	assert.Equal(t, 17, JavaMajor("17.0.10"))
	assert.Equal(t, 21, JavaMajor("21"))
	assert.Equal(t, 22, JavaMajor("22-ea"))
}

func TestJavaFinder(t *testing.T) {
	dir := t.TempDir()
	java8 := filepath.Join(dir, "jdk8", "bin", "java")
	java17 := filepath.Join(dir, "jdk17", "bin", "java")
	broken := filepath.Join(dir, "broken", "bin", "java")

	versions := map[string]string{java8: "1.8.0_392", java17: "17.0.10"}
	f := NewJavaFinder(nil)
	f.Candidates = func(context.Context) []string {
		return []string{"", broken, java8, java8, java17}
	}
	f.Version = func(_ context.Context, path string) (string, error) {
		if v, ok := versions[path]; ok {
			return v, nil
		}
		return "", errors.New("exec format error")
	}

	path, err := f.Find(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, java17, path)

	path, err = f.Find(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, java8, path)

	_, err = f.Find(context.Background(), 21)
	assert.ErrorIs(t, err, ErrJavaNotFound)
}
