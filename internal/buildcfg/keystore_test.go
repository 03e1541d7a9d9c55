package buildcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullKeystore = `# release signing
keyAlias=upload
keyPassword=k3y$ecret
storeFile=/keys/upload-keystore.jks
storePassword=st0re${pw}
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadKeystore_Absent(t *testing.T) {
	ks, err := LoadKeystore(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ks.IsPresent())
	_, ok := ks.Get()
	assert.False(t, ok)
}

func TestLoadKeystore_Present(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, KeystorePropertiesFile, fullKeystore)

	ks, err := LoadKeystore(dir)
	require.NoError(t, err)
	p, ok := ks.Get()
	require.True(t, ok)
	assert.Equal(t, KeystoreProperties{
		KeyAlias:      "upload",
		KeyPassword:   "k3y$ecret",
		StoreFile:     "/keys/upload-keystore.jks",
		StorePassword: "st0re${pw}",
	}, p)
}

func TestLoadKeystore_ColonSeparator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, KeystorePropertiesFile, "keyAlias: a\nkeyPassword: b\nstoreFile: c.jks\nstorePassword: d\n")

	ks, err := LoadKeystore(dir)
	require.NoError(t, err)
	p, _ := ks.Get()
	assert.Equal(t, "a", p.KeyAlias)
	assert.Equal(t, "c.jks", p.StoreFile)
}

func TestLoadKeystore_MissingKey(t *testing.T) {
	for _, missing := range keystoreKeys {
		t.Run(missing, func(t *testing.T) {
			var lines []string
			for _, line := range strings.Split(fullKeystore, "\n") {
				if !strings.HasPrefix(line, missing+"=") {
					lines = append(lines, line)
				}
			}
			dir := t.TempDir()
			writeFile(t, dir, KeystorePropertiesFile, strings.Join(lines, "\n"))

			ks, err := LoadKeystore(dir)
			require.Error(t, err)
			assert.False(t, ks.IsPresent())
			assert.True(t, errors.Is(err, ErrMissingKeystoreProperty))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, missing, cfgErr.Key)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadKeystore_EmptyValueIsKept(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, KeystorePropertiesFile, "keyAlias=\nkeyPassword=b\nstoreFile=c.jks\nstorePassword=d\n")

	ks, err := LoadKeystore(dir)
	require.NoError(t, err)
	p, ok := ks.Get()
	require.True(t, ok)
	assert.Empty(t, p.KeyAlias)
}
