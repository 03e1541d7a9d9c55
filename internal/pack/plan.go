// Package pack turns a resolved build configuration into the gogio and
// apksigner invocations that produce the installable package.
package pack

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"molkky/internal/buildcfg"
	"molkky/internal/ctxlog"
)

const (
	StorePasswordEnv = "MOLKKY_STORE_PASSWORD"
	KeyPasswordEnv   = "MOLKKY_KEY_PASSWORD"
)

// Link-time variables stamped with the app identity.
const (
	VersionVar = "molkky/assets.Version"
	AppNameVar = "molkky/assets.AppName"
)

// NativePackage holds the Java helpers gogio bundles as jars.
const NativePackage = "./ui/native"

var goarchByABI = map[string]string{
	"armeabi-v7a": "arm",
	"arm64-v8a":   "arm64",
	"x86_64":      "amd64",
	"x86":         "386",
}

// Step is one external tool invocation run in Dir. Env is added on top of
// the process environment and carries secrets so they never show up in Args.
type Step struct {
	Name string
	Path string
	Dir  string
	Args []string
	Env  []string
}

func (s Step) String() string {
	return s.Path + " " + strings.Join(s.Args, " ")
}

type Options struct {
	OutDir string
	// Go, Gogio and Apksigner are tool paths, looked up in PATH when bare.
	Go        string
	Gogio     string
	Apksigner string
}

type Plan struct {
	BuildType string
	Output    string
	Signed    bool
	// RuleFiles are handed to shrinking tooling, which gogio does not run.
	RuleFiles []string
	Steps     []Step
}

// GOARCHs maps Android ABIs to Go architectures, keeping their order.
func GOARCHs(abis []string) ([]string, error) {
	archs := make([]string, 0, len(abis))
	for _, abi := range abis {
		a, ok := goarchByABI[abi]
		if !ok {
			return nil, fmt.Errorf("unsupported ABI %q", abi)
		}
		archs = append(archs, a)
	}
	return archs, nil
}

// NewPlan lays out the steps that package cfg as buildType.
func NewPlan(cfg *buildcfg.Config, buildType string, opts Options) (*Plan, error) {
	bt, err := cfg.BuildType(buildType)
	if err != nil {
		return nil, err
	}
	archs, err := GOARCHs(cfg.ABIs)
	if err != nil {
		return nil, err
	}
	if opts.OutDir == "" {
		opts.OutDir = filepath.Join(cfg.ProjectDir, "build")
	}
	if opts.Go == "" {
		opts.Go = "go"
	}
	if opts.Gogio == "" {
		opts.Gogio = "gogio"
	}
	if opts.Apksigner == "" {
		opts.Apksigner = "apksigner"
	}

	p := &Plan{
		BuildType: bt.Name,
		Output:    filepath.Join(opts.OutDir, "app-"+bt.Name+".apk"),
		Signed:    bt.Signing != nil,
		RuleFiles: append([]string(nil), bt.ProguardFiles...),
	}

	// javac and jar rebuild the helper jars that gogio packages
	p.Steps = append(p.Steps, Step{
		Name: "generate",
		Path: opts.Go,
		Dir:  cfg.ProjectDir,
		Args: []string{"generate", NativePackage},
	})

	gogioOut := p.Output
	if p.Signed {
		gogioOut = filepath.Join(opts.OutDir, "app-"+bt.Name+"-unaligned.apk")
	}
	args := []string{
		"-target", "android",
		"-buildmode", "exe",
		"-arch", strings.Join(archs, ","),
		"-appid", cfg.ApplicationID,
		"-name", cfg.Name,
		"-version", cfg.VersionName + "." + strconv.Itoa(cfg.VersionCode),
		"-minsdk", strconv.Itoa(cfg.MinSDK),
		"-targetsdk", strconv.Itoa(cfg.TargetSDK),
		"-ldflags", ldflags(cfg),
	}
	if cfg.Icon != "" {
		args = append(args, "-icon", cfg.Icon)
	}
	args = append(args, "-o", gogioOut, cfg.Package)
	p.Steps = append(p.Steps, Step{Name: "gogio", Path: opts.Gogio, Dir: cfg.ProjectDir, Args: args})

	if s := bt.Signing; s != nil {
		p.Steps = append(p.Steps, Step{
			Name: "apksigner",
			Path: opts.Apksigner,
			Dir:  cfg.ProjectDir,
			Args: []string{
				"sign",
				"--ks", s.StoreFile,
				"--ks-key-alias", s.KeyAlias,
				"--ks-pass", "env:" + StorePasswordEnv,
				"--key-pass", "env:" + KeyPasswordEnv,
				"--out", p.Output,
				gogioOut,
			},
			Env: []string{
				StorePasswordEnv + "=" + s.StorePassword,
				KeyPasswordEnv + "=" + s.KeyPassword,
			},
		})
	}
	return p, nil
}

// ldflags quotes each -X value, the app name has spaces.
func ldflags(cfg *buildcfg.Config) string {
	return fmt.Sprintf("-X '%s=%s' -X '%s=%s'", VersionVar, cfg.VersionName, AppNameVar, cfg.Name)
}

// Run executes the steps in order and stops at the first failure.
func (p *Plan) Run(ctx context.Context, r Runner) error {
	logger := ctxlog.FromContext(ctx)
	for i, s := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("Running packaging step.", "step", i+1, "of", len(p.Steps), "name", s.Name)
		if err := r.Run(ctx, s); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	if !p.Signed {
		logger.Warn("Package has no release signing.", "output", p.Output)
	}
	logger.Info("Package written.", "output", p.Output, "build_type", p.BuildType)
	return nil
}
