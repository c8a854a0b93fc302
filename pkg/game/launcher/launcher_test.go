package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limeal.fr/launchygo-resolver/pkg/game/loader"
	"limeal.fr/launchygo-resolver/pkg/game/profile"
	"limeal.fr/launchygo-resolver/pkg/game/settings"
)

const launchManifest = `{
	"id": "1.20.1",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"assetIndex": {"id": "5"},
	"arguments": {
		"game": ["--username", "${auth_player_name}", "--uuid", "${auth_uuid}", "--accessToken", "${auth_access_token}",
			"--assetIndex", "${assets_index_name}", "--gameDir", "${game_directory}",
			{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}],
		"jvm": ["-Djava.library.path=${natives_directory}", "-cp", "${classpath}"]
	},
	"libraries": [
		{"name": "org.ow2.asm:asm:9.3", "downloads": {"artifact": {"path": "org/ow2/asm/asm/9.3/asm-9.3.jar"}}},
		{"name": "com.mojang:brigadier:1.1.8", "downloads": {"artifact": {"path": "com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar"}}}
	]
}`

func launchPaths(t *testing.T) settings.Paths {
	t.Helper()
	paths := settings.DefaultPaths(t.TempDir(), t.TempDir())
	for _, rel := range []string{"org/ow2/asm/asm/9.3/asm-9.3.jar", "com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar"} {
		p := filepath.Join(paths.Libraries, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("jar"), 0o644))
	}
	return paths
}

func TestPrepareVanilla(t *testing.T) {
	paths := launchPaths(t)
	l, err := NewLauncher(Options{
		Manifest:        parseManifest(t, launchManifest),
		Paths:           paths,
		JavaPath:        "/usr/bin/java",
		StandardJvmArgs: []string{"-XX:+UseG1GC"},
		Env:             &linux,
	})
	require.NoError(t, err)

	launch, err := l.Prepare(context.Background())
	require.NoError(t, err)
	defer launch.Close()

	assert.Equal(t, "net.minecraft.client.main.Main", launch.MainClass)
	assert.Equal(t, paths.Run, launch.RunDir)
	assert.Equal(t, []string{
		paths.ClientJar,
		filepath.Join(paths.Libraries, "org", "ow2", "asm", "asm", "9.3", "asm-9.3.jar"),
		filepath.Join(paths.Libraries, "com", "mojang", "brigadier", "1.1.8", "brigadier-1.1.8.jar"),
	}, launch.Classpath.Files)

	s := launch.Settings
	assert.True(t, s.HasFeature(settings.FeatureDemoUser))
	name, _ := s.Variable(settings.AuthPlayerName)
	assert.Equal(t, "NotAuthUser", name)
	id, _ := s.Variable(settings.AuthUUID)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	cmd := launch.Command()
	assert.Equal(t, "/usr/bin/java", cmd[0])
	assert.Equal(t, []string{
		"-Djava.library.path=" + paths.Natives, "-cp", launch.Classpath.Join(),
		"-XX:+UseG1GC", "-Xmx2G", "-Xms1G",
		"net.minecraft.client.main.Main",
		"--username", "NotAuthUser", "--uuid", id, "--accessToken", "-",
		"--assetIndex", "5", "--gameDir", paths.Run, "--demo",
	}, cmd[1:])
}

func TestPrepareAuthenticatedShortened(t *testing.T) {
	paths := launchPaths(t)
	p := profile.NewGameProfile()
	p.SetUser("Alex", "069a79f4-44e9-4726-a5be-fca90e38aaf5", "access")
	p.SetMemory(4, 2)

	l, err := NewLauncher(Options{
		Manifest:         parseManifest(t, launchManifest),
		Paths:            paths,
		Profile:          p,
		JavaPath:         "java",
		ShortenClasspath: true,
		Env:              &linux,
	})
	require.NoError(t, err)

	launch, err := l.Prepare(context.Background())
	require.NoError(t, err)
	assert.True(t, launch.Classpath.Shortened)
	assert.FileExists(t, paths.ClasspathJar)
	assert.Equal(t, paths.ClasspathJar, launch.Classpath.Join())

	assert.NotContains(t, launch.Arguments.Game, "--demo")
	assert.Contains(t, launch.Arguments.Game, "Alex")
	assert.Contains(t, launch.Arguments.JVM, "-Xmx4G")
}

func TestPrepareWithModLoader(t *testing.T) {
	paths := launchPaths(t)
	fabricDir := filepath.Join(paths.Output, "fabric")
	ml := &fakeLoader{
		kind:      loader.Fabric,
		version:   "0.15.7",
		mainClass: loader.FabricMainClass,
		files:     []string{filepath.Join(fabricDir, "asm-9.6.jar"), filepath.Join(fabricDir, "fabric-loader-0.15.7.jar")},
		failed:    []string{"net.fabricmc:missing:1.0"},
		jvm:       []string{"-Dfabric.gameJarPath=${primary_jar}"},
	}

	var gotOpts loader.Options
	l, err := NewLauncher(Options{
		Manifest:         parseManifest(t, launchManifest),
		Paths:            paths,
		JavaPath:         "java",
		ModLoader:        loader.Fabric,
		ShortenClasspath: true,
		Env:              &linux,
		NewLoader: func(typ loader.Type, mc string, version string, opts loader.Options) (loader.ModLoader, error) {
			assert.Equal(t, loader.Fabric, typ)
			assert.Equal(t, "1.20.1", mc)
			gotOpts = opts
			return ml, nil
		},
	})
	require.NoError(t, err)

	launch, err := l.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, paths.Output, gotOpts.OutputDir)
	assert.True(t, ml.resolved)
	assert.True(t, ml.installed)

	assert.Equal(t, loader.FabricMainClass, launch.MainClass)
	assert.False(t, launch.Classpath.Shortened)
	assert.NoFileExists(t, paths.ClasspathJar)
	assert.Equal(t, []string{
		paths.ClientJar,
		filepath.Join(paths.Libraries, "com", "mojang", "brigadier", "1.1.8", "brigadier-1.1.8.jar"),
		filepath.Join(fabricDir, "asm-9.6.jar"),
		filepath.Join(fabricDir, "fabric-loader-0.15.7.jar"),
	}, launch.Classpath.Files)

	assert.Contains(t, launch.Arguments.JVM, "-Dfabric.gameJarPath="+paths.ClientJar)
	for v, want := range map[settings.Variable]string{
		settings.ModLoaderType:      "fabric",
		settings.ModLoaderVersion:   "0.15.7",
		settings.ModLoaderMainClass: loader.FabricMainClass,
	} {
		got, err := launch.Settings.RequireVariable(v)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	require.NoError(t, launch.Close())
	assert.True(t, ml.closed)
}

func TestPrepareLoaderFailureIsFatal(t *testing.T) {
	ml := &fakeLoader{kind: loader.Forge, resolveErr: loader.ErrNoVersionFound}
	l, err := NewLauncher(Options{
		Manifest:  parseManifest(t, launchManifest),
		Paths:     launchPaths(t),
		JavaPath:  "java",
		ModLoader: loader.Forge,
		Env:       &linux,
		NewLoader: func(loader.Type, string, string, loader.Options) (loader.ModLoader, error) {
			return ml, nil
		},
	})
	require.NoError(t, err)

	_, err = l.Prepare(context.Background())
	assert.ErrorIs(t, err, loader.ErrNoVersionFound)
	assert.True(t, ml.closed)
	assert.False(t, ml.installed)
}

func TestPrepareErrors(t *testing.T) {
	_, err := NewLauncher(Options{})
	assert.ErrorIs(t, err, ErrNoManifest)

	l, err := NewLauncher(Options{
		Manifest: parseManifest(t, `{"id": "1.20.1", "mainClass": "net.minecraft.client.main.Main"}`),
		Paths:    launchPaths(t),
		JavaPath: "java",
		Env:      &linux,
	})
	require.NoError(t, err)
	_, err = l.Prepare(context.Background())
	assert.ErrorIs(t, err, ErrNoArguments)

	l, err = NewLauncher(Options{
		Manifest: parseManifest(t, `{"id": "1.7.10", "minecraftArguments": "--username ${auth_player_name}"}`),
		Paths:    launchPaths(t),
		JavaPath: "java",
		Env:      &linux,
	})
	require.NoError(t, err)
	_, err = l.Prepare(context.Background())
	assert.ErrorIs(t, err, ErrNoMainClass)

	l, err = NewLauncher(Options{
		Manifest:  parseManifest(t, launchManifest),
		Paths:     launchPaths(t),
		JavaPath:  "java",
		ModLoader: loader.Type("quilt"),
		Env:       &linux,
	})
	require.NoError(t, err)
	_, err = l.Prepare(context.Background())
	assert.True(t, errors.Is(err, loader.ErrUnknownType))
}

func TestAssembleClasspathNeedsLocations(t *testing.T) {
	paths := launchPaths(t)
	l, err := NewLauncher(Options{Manifest: parseManifest(t, launchManifest), Paths: paths, JavaPath: "java", Env: &linux})
	require.NoError(t, err)

	s := settings.New("1.20.1", paths)
	require.NoError(t, s.AddVariable(settings.LibraryDirectory, paths.Libraries))
	require.NoError(t, s.AddVariable(settings.NativesDirectory, paths.Natives))

	_, err = l.assembleClasspath(s, nil, false)
	require.ErrorIs(t, err, settings.ErrVariableNotSet)
	assert.Contains(t, err.Error(), string(settings.PrimaryJar))

	require.NoError(t, s.AddVariable(settings.PrimaryJar, paths.ClientJar))
	cp, err := l.assembleClasspath(s, nil, false)
	require.NoError(t, err)
	assert.Equal(t, paths.ClientJar, cp.Files[0])
	assert.Len(t, cp.Files, 3)
}
