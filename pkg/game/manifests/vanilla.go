package manifests

import (
	"encoding/json"
	"fmt"
	"os"
)

/////////////////////////////////////////////////////////////////////
// VersionManifest: per-version client descriptor
/////////////////////////////////////////////////////////////////////

type OSRule struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

type Rule struct {
	Action   string          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

func (r Rule) Allow() bool {
	return r.Action == "allow"
}

type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

type VersionManifest struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	MainClass    string `json:"mainClass"`

	// Exactly one of Arguments (1.13+) or MinecraftArguments (legacy) is
	// expected. An empty legacy string is still a legacy descriptor.
	Arguments          *Arguments `json:"arguments,omitempty"`
	MinecraftArguments *string    `json:"minecraftArguments,omitempty"`

	AssetIndex struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"assetIndex"`
	Assets string `json:"assets,omitempty"`

	Downloads   map[string]DownloadEntry `json:"downloads,omitempty"`
	Libraries   []Library                `json:"libraries"`
	Logging     *Logging                 `json:"logging,omitempty"`
	JavaVersion *struct {
		Component    string `json:"component"`
		MajorVersion int64  `json:"majorVersion"`
	} `json:"javaVersion,omitempty"`
}

// AssetIndexName prefers the asset index id and falls back to the legacy assets field.
func (m *VersionManifest) AssetIndexName() string {
	if m.AssetIndex.ID != "" {
		return m.AssetIndex.ID
	}
	return m.Assets
}

func (m *VersionManifest) HasArguments() bool {
	return m.Arguments != nil || m.MinecraftArguments != nil
}

type DownloadEntry struct {
	Sha1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type LibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

type Library struct {
	Downloads LibraryDownloads  `json:"downloads"`
	Name      string            `json:"name"`
	Rules     []Rule            `json:"rules,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
}

type Artifact struct {
	Path string `json:"path"`
	Sha1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type Logging struct {
	Client struct {
		Argument string `json:"argument"`
		File     struct {
			ID   string `json:"id"`
			Sha1 string `json:"sha1"`
			Size int64  `json:"size"`
			URL  string `json:"url"`
		} `json:"file"`
		Type string `json:"type"`
	} `json:"client"`
}

func ParseVersionManifest(data []byte) (*VersionManifest, error) {
	var manifest VersionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse version manifest: %w", err)
	}
	return &manifest, nil
}

func LoadVersionManifest(path string) (*VersionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read version manifest: %w", err)
	}
	return ParseVersionManifest(data)
}
