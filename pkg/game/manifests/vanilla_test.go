package manifests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredManifest = `{
  "id": "1.20.1",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "assetIndex": {"id": "5", "url": "https://example.invalid/5.json"},
  "arguments": {
    "game": [
      "--username", "${auth_player_name}",
      {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"},
      {"rules": [{"action": "allow", "features": {"has_custom_resolution": true}}], "value": ["--width", "${resolution_width}"]}
    ],
    "jvm": [
      {"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
      {"rules": [{"action": "allow", "os": {"arch": "x86"}}], "value": "-Xss1M"},
      "-cp", "${classpath}"
    ]
  },
  "logging": {"client": {"argument": "-Dlog4j.configurationFile=${path}", "file": {"id": "client-1.12.xml"}, "type": "log4j2-xml"}},
  "javaVersion": {"component": "java-runtime-gamma", "majorVersion": 17},
  "libraries": [
    {"name": "com.mojang:blocklist:1.0.10", "downloads": {"artifact": {"path": "com/mojang/blocklist/1.0.10/blocklist-1.0.10.jar"}}}
  ]
}`

func TestParseStructuredManifest(t *testing.T) {
	m, err := ParseVersionManifest([]byte(structuredManifest))
	require.NoError(t, err)

	assert.Equal(t, "1.20.1", m.ID)
	assert.Equal(t, "5", m.AssetIndexName())
	assert.True(t, m.HasArguments())
	require.NotNil(t, m.Arguments)
	require.NotNil(t, m.JavaVersion)
	assert.EqualValues(t, 17, m.JavaVersion.MajorVersion)
	require.NotNil(t, m.Logging)
	assert.Equal(t, "client-1.12.xml", m.Logging.Client.File.ID)

	game, conditionalGame := Split(m.Arguments.Game)
	assert.Equal(t, []string{"--username", "${auth_player_name}"}, game)
	require.Len(t, conditionalGame, 2)
	assert.Equal(t, []string{"--demo"}, conditionalGame[0].Value)
	assert.Equal(t, []string{"--width", "${resolution_width}"}, conditionalGame[1].Value)
	assert.True(t, conditionalGame[0].Rules[0].Features["is_demo_user"])

	jvm, conditionalJvm := Split(m.Arguments.JVM)
	assert.Equal(t, []string{"-cp", "${classpath}"}, jvm)
	require.Len(t, conditionalJvm, 2)
	assert.Equal(t, "osx", conditionalJvm[0].Rules[0].OS.Name)
	assert.Equal(t, "x86", conditionalJvm[1].Rules[0].OS.Arch)
}

func TestParseLegacyManifest(t *testing.T) {
	m, err := ParseVersionManifest([]byte(`{"id":"1.8.9","assets":"1.8","minecraftArguments":"--username ${auth_player_name}"}`))
	require.NoError(t, err)

	assert.Nil(t, m.Arguments)
	assert.True(t, m.HasArguments())
	assert.Equal(t, "1.8", m.AssetIndexName())
}

func TestManifestWithoutArguments(t *testing.T) {
	m, err := ParseVersionManifest([]byte(`{"id":"broken","mainClass":"a.B"}`))
	require.NoError(t, err)
	assert.False(t, m.HasArguments())

	m, err = ParseVersionManifest([]byte(`{"id":"broken","mainClass":"a.B","minecraftArguments":null}`))
	require.NoError(t, err)
	assert.False(t, m.HasArguments())
}

func TestEmptyLegacyArgumentsArePresent(t *testing.T) {
	m, err := ParseVersionManifest([]byte(`{"id":"1.8.9","mainClass":"a.B","minecraftArguments":""}`))
	require.NoError(t, err)
	assert.True(t, m.HasArguments())
	require.NotNil(t, m.MinecraftArguments)
	assert.Empty(t, *m.MinecraftArguments)
}

func TestArgumentObjectWithoutRules(t *testing.T) {
	m, err := ParseVersionManifest([]byte(`{"arguments":{"game":[{"value":"--x"}],"jvm":[]}}`))
	require.NoError(t, err)

	_, conditional := Split(m.Arguments.Game)
	require.Len(t, conditional, 1)
	assert.Empty(t, conditional[0].Rules)
}

func TestLoadVersionManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.20.1.json")
	require.NoError(t, os.WriteFile(path, []byte(structuredManifest), 0o644))

	m, err := LoadVersionManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "net.minecraft.client.main.Main", m.MainClass)

	_, err = LoadVersionManifest(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
