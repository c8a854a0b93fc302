package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVariableIsWriteOnce(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))

	require.NoError(t, s.AddVariable(AuthPlayerName, "steve"))
	err := s.AddVariable(AuthPlayerName, "alex")
	require.ErrorIs(t, err, ErrVariableAlreadySet)

	value, ok := s.Variable(AuthPlayerName)
	require.True(t, ok)
	assert.Equal(t, "steve", value)
}

func TestAddDefaultVariable(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))

	assert.True(t, s.AddDefaultVariable(UserType, "legacy"))
	assert.False(t, s.AddDefaultVariable(UserType, "msa"))

	value, err := s.RequireVariable(UserType)
	require.NoError(t, err)
	assert.Equal(t, "legacy", value)

	require.ErrorIs(t, s.AddVariable(UserType, "msa"), ErrVariableAlreadySet)
}

func TestUnknownVariablesAreRejected(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))

	require.ErrorIs(t, s.AddVariable(Variable("path"), "/tmp/client.xml"), ErrUnknownVariable)
	assert.False(t, s.AddDefaultVariable(Variable("auth_name"), "steve"))
	assert.Equal(t, "${path}", s.ReplaceVariables("${path}"))
}

func TestRequireVariableUnset(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))

	_, err := s.RequireVariable(Classpath)
	require.ErrorIs(t, err, ErrVariableNotSet)
}

func TestFeaturesAreAdditive(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))
	assert.False(t, s.HasFeature(FeatureDemoUser))

	s.AddFeature(FeatureDemoUser)
	s.AddFeature(FeatureDemoUser)
	s.AddFeature(FeatureCustomResolution)

	assert.True(t, s.HasFeature(FeatureDemoUser))
	assert.Equal(t, []Feature{FeatureCustomResolution, FeatureDemoUser}, s.Features())
}

func TestReplaceVariables(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))
	require.NoError(t, s.AddVariable(AuthPlayerName, "steve"))
	require.NoError(t, s.AddVariable(VersionName, "1.20.1"))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single", in: "${auth_player_name}", want: "steve"},
		{name: "embedded", in: "-Dname=${auth_player_name}-${version_name}", want: "-Dname=steve-1.20.1"},
		{name: "unset known", in: "${auth_uuid}", want: "${auth_uuid}"},
		{name: "unknown", in: "${not_a_variable}", want: "${not_a_variable}"},
		{name: "no placeholder", in: "--demo", want: "--demo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ReplaceVariables(tt.in))
		})
	}
}

func TestReplaceVariablesIsTotalOverKnownVariables(t *testing.T) {
	s := New("1.20.1", DefaultPaths("/out", "/run"))
	for _, v := range Variables {
		require.NoError(t, s.AddVariable(v, "value"))
	}

	for _, v := range Variables {
		assert.Equal(t, "x=value", s.ReplaceVariables("x="+v.Placeholder()))
	}
}

func TestReplaceVariable(t *testing.T) {
	got := ReplaceVariable("path", "-Dlog4j.configurationFile=${path} ${other}", "/tmp/client.xml")
	assert.Equal(t, "-Dlog4j.configurationFile=/tmp/client.xml ${other}", got)
}
