package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultAppName is used when no application name is supplied.
const defaultAppName = "taskboard"

// Paths holds the OS-specific locations the board reads from or logs into.
// No task data is ever written to disk.
type Paths struct {
	ConfigPath string
	ConfigDir  string
	LogDir     string
}

// Options selects which application directory tree to resolve.
type Options struct {
	AppName string
	DevMode bool
}

// DirName returns the per-app directory name; dev mode gets its own tree so
// a development build never reads a release config.
func (o Options) DirName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = defaultAppName
	}
	if o.DevMode {
		name += "-dev"
	}
	return name
}

// BaseDirs are the per-user roots every path is derived from.
type BaseDirs struct {
	Home   string
	Config string
}

// Env looks up one environment variable; an empty result means unset.
type Env func(string) string

// DefaultPaths returns release paths for the default app name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{AppName: defaultAppName})
}

// DefaultPathsWithOptions resolves paths for the running host.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user home dir: %w", err)
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	return Resolve(runtime.GOOS, os.Getenv, BaseDirs{Home: home, Config: configDir}, opts)
}

// Resolve derives paths for goos from explicit inputs so every platform can
// be checked from any host.
//
//	linux:   $XDG_CONFIG_HOME/<app>, $XDG_STATE_HOME/<app>/log (~/.local/state)
//	darwin:  <config>/<app>, ~/Library/Logs/<app>
//	windows: %APPDATA%\<app>, %LOCALAPPDATA%\<app>\log
func Resolve(goos string, env Env, base BaseDirs, opts Options) (Paths, error) {
	if env == nil {
		env = func(string) string { return "" }
	}
	if strings.TrimSpace(base.Home) == "" || strings.TrimSpace(base.Config) == "" {
		return Paths{}, fmt.Errorf("empty base dirs: home=%q config=%q", base.Home, base.Config)
	}
	if strings.TrimSpace(opts.AppName) == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}
	name := opts.DirName()

	configRoot := firstSet(env, base.Config, "XDG_CONFIG_HOME")
	var logDir string
	switch goos {
	case "darwin":
		configRoot = base.Config
		logDir = filepath.Join(base.Home, "Library", "Logs", name)
	case "windows":
		configRoot = firstSet(env, base.Config, "APPDATA")
		logDir = filepath.Join(firstSet(env, configRoot, "LOCALAPPDATA"), name, "log")
	default:
		stateRoot := firstSet(env, filepath.Join(base.Home, ".local", "state"), "XDG_STATE_HOME")
		logDir = filepath.Join(stateRoot, name, "log")
	}

	configDir := filepath.Join(configRoot, name)
	return Paths{
		ConfigPath: filepath.Join(configDir, "config.toml"),
		ConfigDir:  configDir,
		LogDir:     logDir,
	}, nil
}

// firstSet returns the first non-blank variable among keys, else fallback.
func firstSet(env Env, fallback string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(env(key)); v != "" {
			return v
		}
	}
	return fallback
}
