package platform

import (
	"path/filepath"
	"testing"
)

// envMap adapts a map to an Env lookup.
func envMap(values map[string]string) Env {
	return func(key string) string { return values[key] }
}

// TestResolve verifies per-platform config and log locations.
func TestResolve(t *testing.T) {
	cases := []struct {
		name       string
		goos       string
		env        map[string]string
		base       BaseDirs
		opts       Options
		wantConfig string
		wantLog    string
	}{
		{
			name: "linux xdg",
			goos: "linux",
			env: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				"XDG_STATE_HOME":  "/xdg/state",
			},
			base:       BaseDirs{Home: "/home/me", Config: "/home/me/.config"},
			opts:       Options{AppName: "taskboard"},
			wantConfig: filepath.Join("/xdg/config", "taskboard"),
			wantLog:    filepath.Join("/xdg/state", "taskboard", "log"),
		},
		{
			name:       "linux without xdg",
			goos:       "linux",
			base:       BaseDirs{Home: "/home/me", Config: "/home/me/.config"},
			opts:       Options{AppName: "taskboard"},
			wantConfig: filepath.Join("/home/me/.config", "taskboard"),
			wantLog:    filepath.Join("/home/me/.local/state", "taskboard", "log"),
		},
		{
			name:       "freebsd follows xdg fallback",
			goos:       "freebsd",
			env:        map[string]string{"XDG_STATE_HOME": "/var/state"},
			base:       BaseDirs{Home: "/home/me", Config: "/home/me/.config"},
			opts:       Options{AppName: "taskboard", DevMode: true},
			wantConfig: filepath.Join("/home/me/.config", "taskboard-dev"),
			wantLog:    filepath.Join("/var/state", "taskboard-dev", "log"),
		},
		{
			name: "darwin ignores xdg",
			goos: "darwin",
			env: map[string]string{
				"XDG_CONFIG_HOME": "/ignored",
				"XDG_STATE_HOME":  "/ignored",
			},
			base:       BaseDirs{Home: "/Users/me", Config: "/Users/me/Library/Application Support"},
			opts:       Options{AppName: "taskboard"},
			wantConfig: filepath.Join("/Users/me/Library/Application Support", "taskboard"),
			wantLog:    filepath.Join("/Users/me/Library/Logs", "taskboard"),
		},
		{
			name: "windows appdata",
			goos: "windows",
			env: map[string]string{
				"APPDATA":      `C:\Users\me\AppData\Roaming`,
				"LOCALAPPDATA": `C:\Users\me\AppData\Local`,
			},
			base:       BaseDirs{Home: `C:\Users\me`, Config: `C:\fallback\config`},
			opts:       Options{AppName: "board"},
			wantConfig: filepath.Join(`C:\Users\me\AppData\Roaming`, "board"),
			wantLog:    filepath.Join(`C:\Users\me\AppData\Local`, "board", "log"),
		},
		{
			name:       "windows without localappdata",
			goos:       "windows",
			env:        map[string]string{"APPDATA": `C:\Roaming`},
			base:       BaseDirs{Home: `C:\Users\me`, Config: `C:\fallback\config`},
			opts:       Options{AppName: "board"},
			wantConfig: filepath.Join(`C:\Roaming`, "board"),
			wantLog:    filepath.Join(`C:\Roaming`, "board", "log"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Resolve(tc.goos, envMap(tc.env), tc.base, tc.opts)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.ConfigDir != tc.wantConfig {
				t.Fatalf("config dir = %q, want %q", p.ConfigDir, tc.wantConfig)
			}
			if p.ConfigPath != filepath.Join(tc.wantConfig, "config.toml") {
				t.Fatalf("unexpected config path %q", p.ConfigPath)
			}
			if p.LogDir != tc.wantLog {
				t.Fatalf("log dir = %q, want %q", p.LogDir, tc.wantLog)
			}
		})
	}
}

// TestResolveRejectsMissingInputs verifies empty bases and names fail.
func TestResolveRejectsMissingInputs(t *testing.T) {
	base := BaseDirs{Home: "/home/me", Config: "/home/me/.config"}
	if _, err := Resolve("linux", nil, BaseDirs{Home: "/home/me"}, Options{AppName: "taskboard"}); err == nil {
		t.Fatal("expected error for empty config base")
	}
	if _, err := Resolve("linux", nil, base, Options{AppName: "  "}); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

// TestOptionsDirName verifies the dev suffix and default name.
func TestOptionsDirName(t *testing.T) {
	if got := (Options{}).DirName(); got != "taskboard" {
		t.Fatalf("unexpected default dir name %q", got)
	}
	if got := (Options{AppName: " board ", DevMode: true}).DirName(); got != "board-dev" {
		t.Fatalf("unexpected dev dir name %q", got)
	}
}

// TestDefaultPathsWithOptionsDevMode verifies the host resolution honors dev mode.
func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))

	p, err := DefaultPathsWithOptions(Options{AppName: "taskboard", DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(p.ConfigDir) != "taskboard-dev" {
		t.Fatalf("expected dev config dir suffix, got %q", p.ConfigPath)
	}
	if p.LogDir == "" {
		t.Fatalf("expected log dir, got %#v", p)
	}
}
