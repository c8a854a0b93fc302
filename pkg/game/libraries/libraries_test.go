package libraries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/rules"
)

const descriptorLibraries = `{
	"id": "1.20.1",
	"mainClass": "net.minecraft.client.main.Main",
	"libraries": [
		{"name": "com.mojang:logging:1.1.1", "downloads": {"artifact": {"path": "com/mojang/logging/1.1.1/logging-1.1.1.jar"}}},
		{"name": "org.lwjgl:lwjgl:3.3.1", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"}}},
		{"name": "org.lwjgl:lwjgl:3.3.1:natives-linux", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar"}},
			"rules": [{"action": "allow", "os": {"name": "linux"}}]},
		{"name": "org.lwjgl:lwjgl:3.3.1:natives-macos", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-macos.jar"}},
			"rules": [{"action": "allow", "os": {"name": "osx"}}]},
		{"name": "ca.weblite:java-objc-bridge:1.1", "downloads": {"artifact": {"path": "ca/weblite/java-objc-bridge/1.1/java-objc-bridge-1.1.jar"}},
			"rules": [{"action": "allow", "os": {"name": "osx"}}]},
		{"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4", "natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}"},
			"downloads": {"classifiers": {
				"natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar"},
				"natives-windows-64": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-windows-64.jar"}
			}}},
		{"name": "net.java.jinput:jinput:2.0.5"}
	]
}`

func touch(t *testing.T, dir string, rel string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("jar"), 0o644))
}

func TestBuild(t *testing.T) {
	m, err := manifests.ParseVersionManifest([]byte(descriptorLibraries))
	require.NoError(t, err)

	dir := t.TempDir()
	touch(t, dir, "com/mojang/logging/1.1.1/logging-1.1.1.jar")
	touch(t, dir, "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar")
	touch(t, dir, "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar")
	touch(t, dir, "org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar")

	linux := rules.Env{Name: rules.OSLinux, Arch: rules.ArchX64}
	files := NewLibrariesBuilder(dir, linux, nil).Build(m.Libraries)

	p := func(rel string) string { return filepath.Join(dir, filepath.FromSlash(rel)) }
	assert.Equal(t, []LibraryFile{
		{Name: "com.mojang:logging:1.1.1", Path: p("com/mojang/logging/1.1.1/logging-1.1.1.jar"), Downloaded: true},
		{Name: "org.lwjgl:lwjgl:3.3.1", Path: p("org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"), Downloaded: true},
		{Name: "org.lwjgl:lwjgl:3.3.1:natives-linux", Path: p("org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar"), Native: true, Downloaded: true},
		{Name: "org.lwjgl.lwjgl:lwjgl-platform:2.9.4:natives-linux", Path: p("org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar"), Native: true, Downloaded: true},
		{Name: "net.java.jinput:jinput:2.0.5", Path: p("net/java/jinput/jinput/2.0.5/jinput-2.0.5.jar")},
	}, files)

	assert.Equal(t, []string{
		p("com/mojang/logging/1.1.1/logging-1.1.1.jar"),
		p("org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"),
	}, ClasspathFiles(files))
	assert.Len(t, Natives(files), 2)
}

func TestBuildWindowsArchNatives(t *testing.T) {
	m, err := manifests.ParseVersionManifest([]byte(descriptorLibraries))
	require.NoError(t, err)

	windows := rules.Env{Name: rules.OSWindows, Arch: rules.ArchX64}
	files := NewLibrariesBuilder(t.TempDir(), windows, nil).Build(m.Libraries)

	names := []string{}
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"com.mojang:logging:1.1.1",
		"org.lwjgl:lwjgl:3.3.1",
		"org.lwjgl.lwjgl:lwjgl-platform:2.9.4:natives-windows-64",
		"net.java.jinput:jinput:2.0.5",
	}, names)
	assert.Empty(t, ClasspathFiles(files))
}

func TestBuildKeepsClassesOfLibraryWithNatives(t *testing.T) {
	m, err := manifests.ParseVersionManifest([]byte(`{
		"id": "1.12.2",
		"mainClass": "net.minecraft.client.main.Main",
		"libraries": [
			{"name": "com.mojang:text2speech:1.10.3",
				"natives": {"linux": "natives-linux", "windows": "natives-windows"},
				"downloads": {
					"artifact": {"path": "com/mojang/text2speech/1.10.3/text2speech-1.10.3.jar"},
					"classifiers": {
						"natives-linux": {"path": "com/mojang/text2speech/1.10.3/text2speech-1.10.3-natives-linux.jar"},
						"natives-windows": {"path": "com/mojang/text2speech/1.10.3/text2speech-1.10.3-natives-windows.jar"}
					}}}
		]
	}`))
	require.NoError(t, err)

	dir := t.TempDir()
	touch(t, dir, "com/mojang/text2speech/1.10.3/text2speech-1.10.3.jar")
	touch(t, dir, "com/mojang/text2speech/1.10.3/text2speech-1.10.3-natives-linux.jar")

	linux := rules.Env{Name: rules.OSLinux, Arch: rules.ArchX64}
	files := NewLibrariesBuilder(dir, linux, nil).Build(m.Libraries)

	p := func(rel string) string { return filepath.Join(dir, filepath.FromSlash(rel)) }
	assert.Equal(t, []string{p("com/mojang/text2speech/1.10.3/text2speech-1.10.3.jar")}, ClasspathFiles(files))
	assert.Equal(t, []string{p("com/mojang/text2speech/1.10.3/text2speech-1.10.3-natives-linux.jar")}, Natives(files))
}

func TestBuildSkipsArtifactSharedWithClassifier(t *testing.T) {
	m, err := manifests.ParseVersionManifest([]byte(`{
		"id": "1.8.9",
		"mainClass": "net.minecraft.client.main.Main",
		"libraries": [
			{"name": "tv.twitch:twitch-platform:6.5", "natives": {"linux": "natives-linux"},
				"downloads": {
					"artifact": {"path": "tv/twitch/twitch-platform/6.5/twitch-platform-6.5-natives-linux.jar"},
					"classifiers": {"natives-linux": {"path": "tv/twitch/twitch-platform/6.5/twitch-platform-6.5-natives-linux.jar"}}}}
		]
	}`))
	require.NoError(t, err)

	linux := rules.Env{Name: rules.OSLinux, Arch: rules.ArchX64}
	files := NewLibrariesBuilder(t.TempDir(), linux, nil).Build(m.Libraries)
	require.Len(t, files, 1)
	assert.True(t, files[0].Native)
	assert.Equal(t, "tv.twitch:twitch-platform:6.5:natives-linux", files[0].Name)
}
