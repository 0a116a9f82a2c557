package version

import (
	"errors"
	"runtime/debug"
	"strings"
	"testing"
)

// fakeGit answers "describe --always" with commit and "describe --tags" with
// tag. An empty answer is reported as a failure.
func fakeGit(t *testing.T, commit, tag string) {
	t.Helper()
	orig := git
	t.Cleanup(func() { git = orig })

	git = func(args ...string) (string, error) {
		var out string
		switch {
		case len(args) > 1 && args[1] == "--always":
			out = commit
		case len(args) > 1 && args[1] == "--tags":
			out = tag
		}
		if out == "" {
			return "", errors.New("exit status 128")
		}
		return out, nil
	}
}

func fakeBuildInfo(t *testing.T, version string) {
	t.Helper()
	orig := buildInfo
	t.Cleanup(func() { buildInfo = orig })

	buildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: version}}, true
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		commit      string
		tag         string
		module      string
		wantVersion string
		wantCommit  string
	}{
		{"tagged checkout", "a1b2c3d", "v1.4.0", "", "1.4.0", "a1b2c3d"},
		{"dirty tree", "a1b2c3d-dirty", "v1.4.0", "", "1.4.0", "a1b2c3d-dirty"},
		{"no git", "", "", "", "dev", "unknown"},
		{"go install", "", "", "v1.5.2", "1.5.2", "unknown"},
		{"devel build", "a1b2c3d", "", "(devel)", "dev", "a1b2c3d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			fakeGit(t, tt.commit, tt.tag)
			fakeBuildInfo(t, tt.module)

			if got := GetVersion(); got != tt.wantVersion {
				t.Errorf("GetVersion() = %q, want %q", got, tt.wantVersion)
			}
			if got := GetCommit(); got != tt.wantCommit {
				t.Errorf("GetCommit() = %q, want %q", got, tt.wantCommit)
			}

			info := Info()
			if !strings.HasPrefix(info, Name+" "+tt.wantVersion) || !strings.Contains(info, tt.wantCommit) {
				t.Errorf("Info() = %q", info)
			}
		})
	}
}

func TestLdflagsWin(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	fakeGit(t, "a1b2c3d", "v9.9.9")

	Version, Commit, Date = "2.1.0", "deadbeef", "2024-03-01"

	if got := Short(); got != "gasflow 2.1.0" {
		t.Errorf("Short() = %q", got)
	}
	if GetCommit() != "deadbeef" || GetDate() != "2024-03-01" {
		t.Errorf("ldflags values overwritten: %s %s", GetCommit(), GetDate())
	}
}

func TestGetDate(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	fakeGit(t, "", "")

	if len(GetDate()) != len("2006-01-02") {
		t.Errorf("GetDate() = %q", GetDate())
	}
}
