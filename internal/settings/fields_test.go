package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCoercesIntegers(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("server", "port", " 8443 "))
	assert.Equal(t, 8443, cfg.Server.Port)
}

func TestSetRejectsNonNumericKeepsValue(t *testing.T) {
	cfg := Default()
	err := cfg.Set("server", "port", "eighty")
	require.ErrorIs(t, err, ErrCoerce)
	assert.Equal(t, 443, cfg.Server.Port)

	err = cfg.Set("server", "timeout", "0")
	require.ErrorIs(t, err, ErrCoerce)
	assert.Equal(t, 30, cfg.Server.Timeout)
}

func TestSetBoolean(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("server", "verify_ssl", "TRUE"))
	assert.True(t, cfg.Server.VerifySSL)

	require.ErrorIs(t, cfg.Set("server", "verify_ssl", "maybe"), ErrCoerce)
	assert.True(t, cfg.Server.VerifySSL)
}

func TestSetUnknownField(t *testing.T) {
	cfg := Default()
	require.ErrorIs(t, cfg.Set("server", "proxy", "x"), ErrUnknownField)
	_, err := cfg.Get("auth", "token")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestGetMatchesEverySchemaField(t *testing.T) {
	cfg := Default()
	for _, sec := range Sections() {
		for _, f := range sec.Fields {
			value, err := cfg.Get(f.Section, f.Key)
			require.NoError(t, err, "%s.%s", f.Section, f.Key)
			require.NoError(t, cfg.Set(f.Section, f.Key, value), "%s.%s", f.Section, f.Key)
		}
	}
	assert.Equal(t, Default(), cfg)
}
