package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"molkky/internal/buildcfg"
)

const appHCL = `
app {
  name           = "Simple Molkky Score"
  application_id = "jp.ikegam1.simple_molkky_score"
  version_code   = 5
  version_name   = "1.1.0"
}
`

func project(t *testing.T, keyProperties string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, buildcfg.DescriptorFile), []byte(appHCL), 0644))
	if keyProperties != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, buildcfg.KeystorePropertiesFile), []byte(keyProperties), 0600))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), &out, &errOut, args)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}

func TestConfigCommand_Unsigned(t *testing.T) {
	out, err := runCLI(t, "-C", project(t, ""), "config")
	require.NoError(t, err)

	var cfg buildcfg.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "jp.ikegam1.simple_molkky_score", cfg.ApplicationID)
	assert.Nil(t, cfg.BuildTypes[buildcfg.Release].Signing)
	assert.Equal(t, []string{"armeabi-v7a", "arm64-v8a", "x86_64"}, cfg.ABIs)
}

func TestConfigCommand_SignedIsRedacted(t *testing.T) {
	dir := project(t, "keyAlias=upload\nkeyPassword=hunter2\nstoreFile=/k.jks\nstorePassword=swordfish\n")
	out, err := runCLI(t, "-C", dir, "config", "-version-code", "9")
	require.NoError(t, err)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "swordfish")

	var cfg buildcfg.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 9, cfg.VersionCode)
	assert.Equal(t, "upload", cfg.BuildTypes[buildcfg.Release].Signing.KeyAlias)
}

func TestConfigCommand_MissingKey(t *testing.T) {
	dir := project(t, "keyAlias=upload\nkeyPassword=hunter2\nstoreFile=/k.jks\n")
	out, err := runCLI(t, "-C", dir, "config")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "storePassword")
	assert.Empty(t, out)
}

func TestPlanCommand(t *testing.T) {
	dir := project(t, "keyAlias=upload\nkeyPassword=hunter2\nstoreFile=/k.jks\nstorePassword=swordfish\n")
	out, err := runCLI(t, "-C", dir, "plan", "-o", filepath.Join(dir, "dist"), "-apksigner", "/bin/apksigner")
	require.NoError(t, err)
	assert.Contains(t, out, "signed: true")
	assert.Contains(t, out, "1. go generate ./ui/native")
	assert.Contains(t, out, "3. /bin/apksigner sign")
	assert.Contains(t, out, buildcfg.DefaultProguardFile)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "swordfish")
}

func TestPlanCommand_Unsigned(t *testing.T) {
	dir := project(t, "")
	out, err := runCLI(t, "-C", dir, "plan", "-type", "release")
	require.NoError(t, err)
	assert.Contains(t, out, "signed: false")
	assert.NotContains(t, out, "apksigner")
}

func TestUsageErrors(t *testing.T) {
	dir := project(t, "")
	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{"-C", dir}},
		{"unknown command", []string{"-C", dir, "deploy"}},
		{"bad log level", []string{"-log-level", "loud", "config"}},
		{"bad log format", []string{"-log-format", "xml", "config"}},
		{"unknown build type", []string{"-C", dir, "plan", "-type", "profile"}},
		{"unknown flag", []string{"-C", dir, "config", "-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestApkCommand_RequiresAndroidHome(t *testing.T) {
	t.Setenv("ANDROID_HOME", "")
	_, err := runCLI(t, "-C", project(t, ""), "apk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANDROID_HOME")
}
