// Package buildcfg resolves the Android build configuration of the app:
// identity from app.hcl, release signing from an optional key.properties,
// and the fixed SDK, ABI and packaging policy.
package buildcfg

import (
	"context"
	"fmt"
	"path/filepath"

	"molkky/internal/ctxlog"
)

const (
	CompileSDK = 35
	// MinSDK is raised to 23 for the firebase_auth plugin.
	MinSDK = 23
	// TargetSDK 35 is Android 15, where edge-to-edge is enforced.
	TargetSDK   = 35
	NDKVersion  = "27.0.12077973"
	JavaVersion = 11
)

const (
	DefaultProguardFile = "proguard-android-optimize.txt"
	ProjectProguardFile = "proguard-rules.pro"
)

const (
	Debug   = "debug"
	Release = "release"
)

// ABIs are every architecture the store listing needs.
var ABIs = []string{"armeabi-v7a", "arm64-v8a", "x86_64"}

type SigningConfig struct {
	Name          string `json:"name"`
	KeyAlias      string `json:"keyAlias"`
	KeyPassword   string `json:"keyPassword"`
	StoreFile     string `json:"storeFile"`
	StorePassword string `json:"storePassword"`
}

type BuildType struct {
	Name            string         `json:"name"`
	Debuggable      bool           `json:"debuggable"`
	Signing         *SigningConfig `json:"signing"`
	MinifyEnabled   bool           `json:"minifyEnabled"`
	ShrinkResources bool           `json:"shrinkResources"`
	ProguardFiles   []string       `json:"proguardFiles"`
}

// Config is the fully resolved build configuration.
type Config struct {
	ProjectDir     string                    `json:"projectDir"`
	Name           string                    `json:"name"`
	Namespace      string                    `json:"namespace"`
	ApplicationID  string                    `json:"applicationId"`
	VersionCode    int                       `json:"versionCode"`
	VersionName    string                    `json:"versionName"`
	Package        string                    `json:"package"`
	Icon           string                    `json:"icon,omitempty"`
	CompileSDK     int                       `json:"compileSdk"`
	MinSDK         int                       `json:"minSdk"`
	TargetSDK      int                       `json:"targetSdk"`
	NDKVersion     string                    `json:"ndkVersion"`
	JavaVersion    int                       `json:"javaVersion"`
	ABIs           []string                  `json:"abiFilters"`
	SigningConfigs map[string]*SigningConfig `json:"signingConfigs"`
	BuildTypes     map[string]*BuildType     `json:"buildTypes"`
}

// Resolve loads app.hcl and key.properties from projectDir and configures
// the build. Any error aborts the build and no Config is returned.
func Resolve(ctx context.Context, projectDir string, o Overrides) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	d, err := LoadDescriptor(ctx, filepath.Join(projectDir, DescriptorFile))
	if err != nil {
		return nil, err
	}
	d.apply(o)
	if err := d.Validate(); err != nil {
		return nil, &ConfigError{Path: filepath.Join(projectDir, DescriptorFile), Err: err}
	}

	ks, err := LoadKeystore(projectDir)
	if err != nil {
		return nil, err
	}
	if !ks.IsPresent() {
		logger.Warn("No keystore properties, release build will be unsigned.", "file", KeystorePropertiesFile)
	}
	return Configure(projectDir, *d, ks)
}

// Configure applies the fixed build policy to a descriptor. Release signing
// is attached only when ks is present.
func Configure(projectDir string, d Descriptor, ks Keystore) (*Config, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}
	c := &Config{
		ProjectDir:     root,
		Name:           d.Name,
		Namespace:      d.Namespace,
		ApplicationID:  d.ApplicationID,
		VersionCode:    d.VersionCode,
		VersionName:    d.VersionName,
		Package:        d.Package,
		Icon:           d.Icon,
		CompileSDK:     CompileSDK,
		MinSDK:         MinSDK,
		TargetSDK:      TargetSDK,
		NDKVersion:     NDKVersion,
		JavaVersion:    JavaVersion,
		ABIs:           append([]string(nil), ABIs...),
		SigningConfigs: make(map[string]*SigningConfig),
		BuildTypes:     make(map[string]*BuildType),
	}
	if c.Icon != "" && !filepath.IsAbs(c.Icon) {
		c.Icon = filepath.Join(root, c.Icon)
	}

	release := &BuildType{
		Name:            Release,
		MinifyEnabled:   false,
		ShrinkResources: false,
		// inert while minify is off
		ProguardFiles: []string{DefaultProguardFile, ProjectProguardFile},
	}
	if p, ok := ks.Get(); ok {
		storeFile := p.StoreFile
		if !filepath.IsAbs(storeFile) {
			storeFile = filepath.Join(root, storeFile)
		}
		s := &SigningConfig{
			Name:          Release,
			KeyAlias:      p.KeyAlias,
			KeyPassword:   p.KeyPassword,
			StoreFile:     storeFile,
			StorePassword: p.StorePassword,
		}
		c.SigningConfigs[Release] = s
		release.Signing = s
	}
	c.BuildTypes[Release] = release
	c.BuildTypes[Debug] = &BuildType{Name: Debug, Debuggable: true}
	return c, nil
}

func (c *Config) BuildType(name string) (*BuildType, error) {
	bt, ok := c.BuildTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown build type %q", name)
	}
	return bt, nil
}

const redacted = "********"

// Redacted returns a deep copy of c with every password masked.
func (c *Config) Redacted() *Config {
	r := *c
	r.ABIs = append([]string(nil), c.ABIs...)
	r.SigningConfigs = make(map[string]*SigningConfig, len(c.SigningConfigs))
	for name, s := range c.SigningConfigs {
		m := *s
		m.KeyPassword = redacted
		m.StorePassword = redacted
		r.SigningConfigs[name] = &m
	}
	r.BuildTypes = make(map[string]*BuildType, len(c.BuildTypes))
	for name, bt := range c.BuildTypes {
		b := *bt
		b.ProguardFiles = append([]string(nil), bt.ProguardFiles...)
		if bt.Signing != nil {
			b.Signing = r.SigningConfigs[bt.Signing.Name]
		}
		r.BuildTypes[name] = &b
	}
	return &r
}
