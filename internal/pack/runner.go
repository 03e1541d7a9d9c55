package pack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

type Runner interface {
	Run(ctx context.Context, s Step) error
}

// ExecRunner runs steps as child processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, s Step) error {
	if dir := outputDir(s); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %q: %v", dir, err)
		}
	}
	cmd := exec.CommandContext(ctx, s.Path, s.Args...)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), s.Env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}
	return nil
}

// outputDir returns the directory of the step's "-o" or "--out" target.
func outputDir(s Step) string {
	for i := 0; i < len(s.Args)-1; i++ {
		if s.Args[i] == "-o" || s.Args[i] == "--out" {
			return filepath.Dir(s.Args[i+1])
		}
	}
	return ""
}

var exeSuffix string

func init() {
	if runtime.GOOS == "windows" {
		exeSuffix = ".bat"
	}
}

// FindBuildTool returns name from the newest build-tools release in the
// Android SDK at sdk.
func FindBuildTool(sdk, name string) (string, error) {
	if sdk == "" {
		return "", errors.New("please set ANDROID_HOME to the Android SDK path")
	}
	allTools, err := filepath.Glob(filepath.Join(sdk, "build-tools", "*"))
	if err != nil {
		return "", err
	}
	var bestVer [3]int
	var bestTools string
loop:
	for _, tools := range allTools {
		_, dir := filepath.Split(tools)
		s := strings.SplitN(dir, ".", 3)
		if len(s) != len(bestVer) {
			continue
		}
		var version [3]int
		for i, v := range s {
			n, err := strconv.Atoi(v)
			if err != nil {
				continue loop
			}
			version[i] = n
		}
		if bestTools != "" && !newer(version, bestVer) {
			continue
		}
		bestVer = version
		bestTools = tools
	}
	if bestTools == "" {
		return "", fmt.Errorf("no build-tools found in %q", sdk)
	}
	tool := filepath.Join(bestTools, name+exeSuffix)
	if _, err := os.Stat(tool); err != nil {
		return "", fmt.Errorf("%s not found in %q", name, bestTools)
	}
	return tool, nil
}

func newer(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
