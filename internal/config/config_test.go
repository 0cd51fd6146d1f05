package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := Load(envFrom(map[string]string{
		EnvAPIToken: "tok",
		EnvOrgID:    "org-1",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "org-1", cfg.OrgID)
	assert.Equal(t, DefaultAPIBase, cfg.APIBase)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadMissingEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{"no token", map[string]string{EnvOrgID: "org"}, EnvAPIToken},
		{"no org", map[string]string{EnvAPIToken: "tok"}, EnvOrgID},
		{"empty token", map[string]string{EnvAPIToken: "", EnvOrgID: "org"}, EnvAPIToken},
		{"nothing", map[string]string{}, EnvAPIToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(envFrom(tt.env), "")
			require.Error(t, err)
			assert.Nil(t, cfg)

			var missing *MissingEnvError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.missing, missing.Name)
			assert.Contains(t, err.Error(), "configuration error")
		})
	}
}

func TestLoadWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api_base: https://file.example/api/v4
output_format: json
timeout: 5s
aws_region: eu-west-1
slack:
  webhook_url: https://hooks.example/abc
  channel: "#appsec"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(envFrom(map[string]string{EnvAPIToken: "tok", EnvOrgID: "org"}), path)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example/api/v4", cfg.APIBase)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "https://hooks.example/abc", cfg.Slack.WebhookURL)
	assert.Equal(t, "#appsec", cfg.Slack.Channel)
}

func TestLoadEnvOverridesFileAPIBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base: https://file.example\n"), 0o600))

	cfg, err := Load(envFrom(map[string]string{
		EnvAPIToken: "tok",
		EnvOrgID:    "org",
		EnvAPIBase:  "http://127.0.0.1:9999",
	}), path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.APIBase)
}

func TestLoadRejectsNegativeFileTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: -5s\n"), 0o600))

	_, err := Load(envFrom(map[string]string{EnvAPIToken: "tok", EnvOrgID: "org"}), path)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timeout: [oops"), 0o600))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{OutputFormat: "table", Timeout: time.Second}).Validate())
	assert.ErrorContains(t, (&Config{OutputFormat: "xml", Timeout: time.Second}).Validate(), "invalid output_format")
	assert.ErrorContains(t, (&Config{Timeout: -time.Second}).Validate(), "invalid timeout")
	assert.ErrorContains(t, (&Config{Timeout: 0}).Validate(), "invalid timeout")
}

func TestVars(t *testing.T) {
	cfg := &Config{Token: "tok", OrgID: "42", APIBase: "https://x"}

	vars := cfg.Vars()
	assert.Equal(t, map[string]string{
		"authHDR":  "Bearer tok",
		"api_base": "https://x",
		"orgID":    "42",
	}, vars)

	vars["orgID"] = "changed"
	assert.Equal(t, "42", cfg.Vars()["orgID"])
}

func TestWithToken(t *testing.T) {
	cfg := &Config{Token: "ssm:/x", OrgID: "42"}
	resolved := cfg.WithToken("real")

	assert.Equal(t, "real", resolved.Token)
	assert.Equal(t, "42", resolved.OrgID)
	assert.Equal(t, "ssm:/x", cfg.Token)
}
