package buildcfg

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"molkky/internal/ctxlog"
)

// DescriptorFile is the app descriptor at the project root.
const DescriptorFile = "app.hcl"

var versionNamePattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

type descriptorFile struct {
	App Descriptor `hcl:"app,block"`
}

// Descriptor holds the identity values consumed verbatim by packaging.
type Descriptor struct {
	Name          string `hcl:"name,optional"`
	Namespace     string `hcl:"namespace,optional"`
	ApplicationID string `hcl:"application_id"`
	VersionCode   int    `hcl:"version_code"`
	VersionName   string `hcl:"version_name"`
	Package       string `hcl:"package,optional"`
	Icon          string `hcl:"icon,optional"`
}

// Overrides replace descriptor version values when set, the way a release
// pipeline stamps build numbers.
type Overrides struct {
	VersionCode int
	VersionName string
}

// LoadDescriptor parses and validates an app descriptor file.
func LoadDescriptor(ctx context.Context, path string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding app descriptor.", "path", path)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &ConfigError{Path: path, Err: errors.New(diags.Error())}
	}

	var f descriptorFile
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, &ConfigError{Path: path, Err: errors.New(diags.Error())}
	}
	d := &f.App
	// version values may be placeholders stamped by Overrides, Resolve
	// validates them
	if d.ApplicationID == "" {
		return nil, &ConfigError{Path: path, Err: errors.New("application_id must not be empty")}
	}
	d.applyDefaults()
	logger.Debug("Decoded app descriptor.", "application_id", d.ApplicationID, "version_code", d.VersionCode, "version_name", d.VersionName)
	return d, nil
}

func (d *Descriptor) applyDefaults() {
	if d.Namespace == "" {
		d.Namespace = d.ApplicationID
	}
	if d.Name == "" {
		d.Name = d.ApplicationID[strings.LastIndex(d.ApplicationID, ".")+1:]
	}
	if d.Package == "" {
		d.Package = "."
	}
}

func (d *Descriptor) apply(o Overrides) {
	if o.VersionCode != 0 {
		d.VersionCode = o.VersionCode
	}
	if o.VersionName != "" {
		d.VersionName = o.VersionName
	}
}

// Validate checks the identity values packaging relies on.
func (d *Descriptor) Validate() error {
	if d.ApplicationID == "" {
		return errors.New("application_id must not be empty")
	}
	if d.VersionCode <= 0 {
		return fmt.Errorf("version_code must be positive, got %d", d.VersionCode)
	}
	// gogio encodes the version as major.minor.patch.versionCode
	if !versionNamePattern.MatchString(d.VersionName) {
		return fmt.Errorf("version_name %q is not major.minor.patch", d.VersionName)
	}
	return nil
}
