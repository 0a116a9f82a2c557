// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Name is the program name shown in --version output and the Info tab.
const Name = "gasflow"

// Set via -ldflags "-X". Empty values are detected on first use.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

var (
	once sync.Once

	// git runs a git subcommand in the working directory.
	git = runGit

	// buildInfo reports the module version stamped by go install.
	buildInfo = debug.ReadBuildInfo
)

func runGit(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func detect() {
	once.Do(func() {
		if Date == "" {
			Date = time.Now().Format(time.DateOnly)
		}
		if Commit == "" {
			Commit = "unknown"
			if out, err := git("describe", "--always", "--dirty"); err == nil && out != "" {
				Commit = out
			}
		}
		if Version == "" {
			Version = detectVersion()
		}
	})
}

// detectVersion prefers the nearest tag, then the module version, then "dev".
func detectVersion() string {
	if out, err := git("describe", "--tags", "--abbrev=0"); err == nil && out != "" {
		return strings.TrimPrefix(out, "v")
	}
	if bi, ok := buildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return strings.TrimPrefix(bi.Main.Version, "v")
	}
	return "dev"
}

// Reset clears the detected values so the next accessor detects them again.
func Reset() {
	once = sync.Once{}
	Version, Commit, Date = "", "", ""
}

// GetVersion returns the release version, "dev" outside a tagged checkout.
func GetVersion() string {
	detect()
	return Version
}

func GetCommit() string {
	detect()
	return Commit
}

func GetDate() string {
	detect()
	return Date
}

// Short returns "gasflow <version>".
func Short() string {
	return Name + " " + GetVersion()
}

// Info returns the full version line.
func Info() string {
	detect()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
