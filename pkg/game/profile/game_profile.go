package profile

import (
	"errors"
	"fmt"
	"strconv"

	"limeal.fr/launchygo-resolver/pkg/game/settings"
)

var ErrInvalidMemory = errors.New("invalid memory settings")

type UserType string

const (
	UserTypeMSA    UserType = "msa"
	UserTypeMojang UserType = "mojang"
	UserTypeLegacy UserType = "legacy"
)

type Memory struct {
	Xmx int `json:"xmx"` // The maximum memory to use in GB
	Xms int `json:"xms"` // The minimum memory to use in GB
}

func (m Memory) Validate() error {
	if m.Xmx <= 0 || m.Xms <= 0 {
		return fmt.Errorf("%w: xmx=%d xms=%d must be positive", ErrInvalidMemory, m.Xmx, m.Xms)
	}
	if m.Xms > m.Xmx {
		return fmt.Errorf("%w: xms=%d exceeds xmx=%d", ErrInvalidMemory, m.Xms, m.Xmx)
	}
	return nil
}

func (m Memory) ToArgs() []string {
	return []string{
		"-Xmx" + strconv.Itoa(m.Xmx) + "G",
		"-Xms" + strconv.Itoa(m.Xms) + "G",
	}
}

// QuickPlay starts the game straight into a world, a server or a realm.
// At most one target is expected; Path is where the game logs the session.
type QuickPlay struct {
	Path         string `json:"path,omitempty"`
	Singleplayer string `json:"singleplayer,omitempty"`
	Multiplayer  string `json:"multiplayer,omitempty"`
	Realms       string `json:"realms,omitempty"`
}

// GameProfile carries what a login collaborator hands to the launcher.
// Empty fields are left to the launch defaults.
type GameProfile struct {
	Username    string   `json:"username"`
	UUID        string   `json:"uuid,omitempty"`
	UserType    UserType `json:"userType,omitempty"`
	AccessToken string   `json:"accessToken,omitempty"`
	XUID        string   `json:"xuid,omitempty"`
	ClientID    string   `json:"clientId,omitempty"`

	Demo   bool `json:"demo,omitempty"`
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`

	Memory    Memory    `json:"memory"`
	QuickPlay QuickPlay `json:"quickPlay"`
}

func NewGameProfile() *GameProfile {
	return &GameProfile{
		Memory: Memory{Xmx: 2, Xms: 1},
	}
}

func (g *GameProfile) SetMemory(xmx int, xms int) {
	g.Memory.Xmx = xmx
	g.Memory.Xms = xms
}

func (g *GameProfile) SetUser(username string, uuid string, accessToken string) {
	g.Username = username
	g.UUID = uuid
	g.AccessToken = accessToken
	if g.UserType == "" && accessToken != "" {
		g.UserType = UserTypeMSA
	}
}

// IsAuthenticated reports whether the profile holds a usable access token.
func (g *GameProfile) IsAuthenticated() bool {
	return g.AccessToken != "" && g.AccessToken != "-"
}

// HasCustomResolution reports whether both window dimensions are set.
func (g *GameProfile) HasCustomResolution() bool {
	return g.Width > 0 && g.Height > 0
}

type binding struct {
	v     settings.Variable
	value string
}

func (g *GameProfile) bindings() []binding {
	vars := []binding{
		{settings.AuthPlayerName, g.Username},
		{settings.AuthUUID, g.UUID},
		{settings.AuthAccessToken, g.AccessToken},
		{settings.UserType, string(g.UserType)},
		{settings.AuthXUID, g.XUID},
		{settings.ClientID, g.ClientID},
	}
	if g.IsAuthenticated() {
		vars = append(vars, binding{settings.AuthSession, "token:" + g.AccessToken})
	}
	if g.HasCustomResolution() {
		vars = append(vars,
			binding{settings.ResolutionWidth, strconv.Itoa(g.Width)},
			binding{settings.ResolutionHeight, strconv.Itoa(g.Height)},
		)
	}
	return vars
}

// Apply writes the profile variables and features into s. A profile without
// access token always runs in demo mode.
func (g *GameProfile) Apply(s *settings.Settings) error {
	for _, b := range g.bindings() {
		if b.value == "" {
			continue
		}
		if err := s.AddVariable(b.v, b.value); err != nil {
			return err
		}
	}

	if g.Demo || !g.IsAuthenticated() {
		s.AddFeature(settings.FeatureDemoUser)
	}
	if g.HasCustomResolution() {
		s.AddFeature(settings.FeatureCustomResolution)
	}
	return g.applyQuickPlay(s)
}

func (g *GameProfile) applyQuickPlay(s *settings.Settings) error {
	targets := []struct {
		v       settings.Variable
		feature settings.Feature
		value   string
	}{
		{settings.QuickPlaySingleplayer, settings.FeatureQuickPlaySingleplay, g.QuickPlay.Singleplayer},
		{settings.QuickPlayMultiplayer, settings.FeatureQuickPlayMultiplay, g.QuickPlay.Multiplayer},
		{settings.QuickPlayRealms, settings.FeatureQuickPlayRealms, g.QuickPlay.Realms},
	}

	active := false
	for _, t := range targets {
		if t.value == "" {
			continue
		}
		if err := s.AddVariable(t.v, t.value); err != nil {
			return err
		}
		s.AddFeature(t.feature)
		active = true
	}
	if !active {
		return nil
	}

	if g.QuickPlay.Path != "" {
		if err := s.AddVariable(settings.QuickPlayPath, g.QuickPlay.Path); err != nil {
			return err
		}
		s.AddFeature(settings.FeatureQuickPlaySupport)
	}
	return nil
}
