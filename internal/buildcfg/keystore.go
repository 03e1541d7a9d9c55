package buildcfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
)

// KeystorePropertiesFile is looked up at the project root.
const KeystorePropertiesFile = "key.properties"

const (
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
)

var keystoreKeys = []string{KeyAlias, KeyPassword, StoreFile, StorePassword}

// ErrMissingKeystoreProperty is matched by the ConfigError returned when
// key.properties exists but lacks one of the required keys.
var ErrMissingKeystoreProperty = errors.New("missing keystore property")

// ConfigError is a fatal build configuration error.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %q: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// KeystoreProperties are the release signing credentials.
type KeystoreProperties struct {
	KeyAlias      string
	KeyPassword   string
	StoreFile     string
	StorePassword string
}

// Keystore is either Present with its properties or Absent.
type Keystore struct {
	props   KeystoreProperties
	present bool
}

func Present(p KeystoreProperties) Keystore {
	return Keystore{props: p, present: true}
}

// Absent means no key.properties was found and release builds stay unsigned.
func Absent() Keystore {
	return Keystore{}
}

func (k Keystore) Get() (KeystoreProperties, bool) {
	return k.props, k.present
}

func (k Keystore) IsPresent() bool {
	return k.present
}

// LoadKeystore reads key.properties from projectDir. A missing file is not
// an error: it yields Absent.
func LoadKeystore(projectDir string) (Keystore, error) {
	path := filepath.Join(projectDir, KeystorePropertiesFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Absent(), nil
		}
		return Keystore{}, &ConfigError{Path: path, Err: err}
	}

	// values are taken verbatim, passwords may contain '$'
	l := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := l.LoadFile(path)
	if err != nil {
		return Keystore{}, &ConfigError{Path: path, Err: err}
	}
	return keystoreFrom(path, p)
}

func keystoreFrom(path string, p *properties.Properties) (Keystore, error) {
	values := make(map[string]string, len(keystoreKeys))
	for _, key := range keystoreKeys {
		v, ok := p.Get(key)
		if !ok {
			return Keystore{}, &ConfigError{Path: path, Key: key, Err: ErrMissingKeystoreProperty}
		}
		values[key] = v
	}
	return Present(KeystoreProperties{
		KeyAlias:      values[KeyAlias],
		KeyPassword:   values[KeyPassword],
		StoreFile:     values[StoreFile],
		StorePassword: values[StorePassword],
	}), nil
}
