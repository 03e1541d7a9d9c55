package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"molkky/internal/buildcfg"
	"molkky/internal/ctxlog"
	"molkky/internal/pack"
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const usage = `molkky-build - resolves and packages the Android build of the app.

Usage:
  molkky-build [options] <command> [command options]

Commands:
  config   print the resolved build configuration, passwords masked
  plan     print the packaging steps
  apk      build the installable package

Options:
`

func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("molkky-build", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	flagSet.Usage = func() {
		fmt.Fprint(errW, usage)
		flagSet.PrintDefaults()
	}
	dirFlag := flagSet.String("C", ".", "Project directory containing app.hcl and the optional key.properties.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	logger, err := newLogger(errW, *logFormatFlag, *logLevelFlag)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return &ExitError{Code: 2, Message: "missing command"}
	}
	cmd, cmdArgs := flagSet.Arg(0), flagSet.Args()[1:]
	switch cmd {
	case "config":
		return runConfig(ctx, outW, errW, *dirFlag, cmdArgs)
	case "plan":
		return runPlan(ctx, outW, errW, *dirFlag, cmdArgs, false)
	case "apk":
		return runPlan(ctx, outW, errW, *dirFlag, cmdArgs, true)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd)}
	}
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
}

func versionFlags(fs *flag.FlagSet) *buildcfg.Overrides {
	o := &buildcfg.Overrides{}
	fs.IntVar(&o.VersionCode, "version-code", 0, "Override the version code from app.hcl.")
	fs.StringVar(&o.VersionName, "version-name", "", "Override the version name from app.hcl.")
	return o
}

// resolve maps configuration failures to exit code 2.
func resolve(ctx context.Context, dir string, o buildcfg.Overrides) (*buildcfg.Config, error) {
	cfg, err := buildcfg.Resolve(ctx, dir, o)
	if err != nil {
		var cfgErr *buildcfg.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, &ExitError{Code: 2, Message: "configuration error: " + err.Error()}
		}
		return nil, err
	}
	return cfg, nil
}

func runConfig(ctx context.Context, outW, errW io.Writer, dir string, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(errW)
	o := versionFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	cfg, err := resolve(ctx, dir, *o)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(outW)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg.Redacted())
}

func runPlan(ctx context.Context, outW, errW io.Writer, dir string, args []string, execute bool) error {
	name := "plan"
	if execute {
		name = "apk"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errW)
	o := versionFlags(fs)
	buildType := fs.String("type", buildcfg.Release, "Build type: 'release' or 'debug'.")
	outDir := fs.String("o", "", "Output directory. Defaults to <project>/build.")
	goTool := fs.String("go", "go", "Path to the go tool, used to generate the Java helper jars.")
	gogio := fs.String("gogio", "gogio", "Path to the gogio tool.")
	apksigner := fs.String("apksigner", "", "Path to apksigner. Defaults to the newest one in $ANDROID_HOME/build-tools.")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := resolve(ctx, dir, *o)
	if err != nil {
		return err
	}
	bt, err := cfg.BuildType(*buildType)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	sdk := os.Getenv("ANDROID_HOME")
	if execute && sdk == "" {
		return errors.New("please set ANDROID_HOME to the Android SDK path, javac needs its android.jar")
	}
	signer := *apksigner
	if signer == "" && bt.Signing != nil && execute {
		signer, err = pack.FindBuildTool(sdk, "apksigner")
		if err != nil {
			return err
		}
	}
	p, err := pack.NewPlan(cfg, bt.Name, pack.Options{OutDir: *outDir, Go: *goTool, Gogio: *gogio, Apksigner: signer})
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	if !execute {
		fmt.Fprintf(outW, "build type: %s\noutput: %s\nsigned: %t\nrule files: %s\n",
			p.BuildType, p.Output, p.Signed, strings.Join(p.RuleFiles, ", "))
		for i, s := range p.Steps {
			fmt.Fprintf(outW, "%d. %s\n", i+1, s)
		}
		return nil
	}
	return p.Run(ctx, pack.ExecRunner{})
}
