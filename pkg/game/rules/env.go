package rules

import (
	"runtime"
)

const (
	OSWindows = "windows"
	OSMacos   = "osx"
	OSLinux   = "linux"
)

const (
	ArchX64   = "x64"
	ArchX86   = "x86"
	ArchArm64 = "arm64"
	ArchArm32 = "arm32"
)

// Env is the host as seen by descriptor rules: os.name is compared exactly,
// os.version and os.arch are regular expressions searched in Version and Arch.
type Env struct {
	Name    string // windows | osx | linux
	Version string
	Arch    string // x64 | x86 | arm64 | arm32
}

func DetectEnv() Env {
	return Env{
		Name:    OSName(runtime.GOOS),
		Version: osVersion(),
		Arch:    ArchName(runtime.GOARCH),
	}
}

func OSName(goos string) string {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacos
	default:
		return OSLinux
	}
}

func ArchName(goarch string) string {
	return map[string]string{
		"amd64": ArchX64,
		"386":   ArchX86,
		"arm64": ArchArm64,
		"arm":   ArchArm32,
	}[goarch]
}

// Bits is the value descriptors expect for ${arch} in native classifiers.
func (e Env) Bits() string {
	if e.Arch == ArchX86 || e.Arch == ArchArm32 {
		return "32"
	}
	return "64"
}
