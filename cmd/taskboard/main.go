package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/hylla/taskboard/internal/adapters/storage/memory"
	"github.com/hylla/taskboard/internal/adapters/storage/sqlite"
	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/config"
	"github.com/hylla/taskboard/internal/domain"
	"github.com/hylla/taskboard/internal/platform"
	"github.com/hylla/taskboard/internal/tui"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds flag values shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
	storage    string
}

// defaultRootOptions seeds flag defaults from the environment.
func defaultRootOptions() *rootOptions {
	opts := &rootOptions{
		appName: "taskboard",
		devMode: version == "dev",
	}
	if envDev, ok := parseBoolEnv("TASKBOARD_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("TASKBOARD_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}
	return opts
}

// newRootCmd builds the command tree.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	opts := defaultRootOptions()

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Add, complete and delete tasks in a terminal board",
		Long: `taskboard is a single-screen task list. Tasks live in memory for the
life of the process; nothing is written to disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML (env TASKBOARD_CONFIG)")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/log path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev) and the dev log file")
	flags.StringVar(&opts.storage, "storage", "", "storage backend override: memory or sqlite")

	root.AddCommand(newPathsCmd(opts))
	return root
}

// newPathsCmd prints resolved runtime paths.
func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and log paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			configPath := resolveConfigPath(opts, paths)
			cfg, err := loadConfig(opts, configPath, paths)
			if err != nil {
				return err
			}
			logDir, err := resolveLogDir(cfg.Logging.DevFile.Dir)
			if err != nil {
				return fmt.Errorf("resolve log dir: %w", err)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", configPath)
			_, _ = fmt.Fprintf(out, "config_dir: %s\n", paths.ConfigDir)
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", logDir)
			_, _ = fmt.Fprintf(out, "dev_log: %t\n", opts.devMode && cfg.Logging.DevFile.Enabled)
			return nil
		},
	}
}

// runBoard resolves configuration, wires the service and runs the TUI.
func runBoard(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, err := resolvePaths(opts)
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(opts, paths)
	cfg, err := loadConfig(opts, configPath, paths)
	if err != nil {
		return err
	}

	session := uuid.NewString()
	logger, err := newRuntimeLogger(stderr, opts.appName, session, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "version", version)
	logger.Debug("runtime paths resolved", "config_path", configPath, "log_dir", cfg.Logging.DevFile.Dir)
	logger.Info("configuration loaded", "config_path", configPath, "storage", cfg.Storage.Backend, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	repo, closeRepo, err := openRepository(cfg.Storage.Backend, session)
	if err != nil {
		logger.Error("repository open failed", "storage", cfg.Storage.Backend, "err", err)
		return fmt.Errorf("open %s repository: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			logger.Warn("repository close failed", "storage", cfg.Storage.Backend, "err", closeErr)
		}
	}()
	logger.Info("repository ready", "storage", cfg.Storage.Backend)

	svc := app.NewService(repo, nil, app.ServiceConfig{
		Observers: []app.Observer{changeLogger(logger)},
	})
	if _, err := svc.Snapshot(ctx); err != nil {
		return fmt.Errorf("read initial board: %w", err)
	}

	m := tui.NewModel(
		svc,
		tui.WithUIText(tui.UIText{
			Title:       cfg.UI.Title,
			Subtitle:    cfg.UI.Subtitle,
			Placeholder: cfg.UI.Placeholder,
			EmptyTitle:  cfg.UI.EmptyTitle,
			EmptyHint:   cfg.UI.EmptyHint,
		}),
		tui.WithKeyConfig(keyConfig(cfg.Keys)),
	)
	logger.Info("starting tui program loop")
	_, err = programFactory(m).Run()
	if err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	if snap, snapErr := svc.Snapshot(ctx); snapErr == nil {
		logger.Info("board closed", "total", snap.Summary.Total, "completed", snap.Summary.Completed)
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides. A blank
// dev-file dir resolves to the platform log dir, so every command reports the
// directory the logger writes to.
func loadConfig(opts *rootOptions, configPath string, paths platform.Paths) (config.Config, error) {
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if strings.TrimSpace(opts.storage) != "" {
		cfg.Storage.Backend = config.StorageBackend(strings.ToLower(strings.TrimSpace(opts.storage)))
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--storage: %w", err)
		}
	}
	if cfg.Logging.DevFile.Dir == "" {
		cfg.Logging.DevFile.Dir = paths.LogDir
	}
	if err := tui.ValidateKeyConfig(keyConfig(cfg.Keys)); err != nil {
		return config.Config{}, fmt.Errorf("config %q: %w", configPath, err)
	}
	return cfg, nil
}

// keyConfig maps configured key overrides onto the board's bindings.
func keyConfig(keys config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		Toggle: keys.Toggle,
		Delete: keys.Delete,
		Copy:   keys.Copy,
		Help:   keys.Help,
	}
}

// resolvePaths resolves OS paths for the configured app name and mode.
func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, fmt.Errorf("resolve paths: %w", err)
	}
	return paths, nil
}

// resolveConfigPath applies flag, env and default precedence.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	if path := strings.TrimSpace(opts.configPath); path != "" {
		return path
	}
	if envPath := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// openRepository opens the session-scoped repository for backend.
func openRepository(backend config.StorageBackend, session string) (app.Repository, func() error, error) {
	switch backend {
	case config.StorageBackendMemory:
		return memory.New(), func() error { return nil }, nil
	case config.StorageBackendSQLite:
		repo, err := sqlite.OpenInMemory("taskboard-" + session)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}

// changeLogger logs every board mutation at debug level.
func changeLogger(logger *runtimeLogger) app.Observer {
	return func(event domain.ChangeEvent, snap app.Snapshot) {
		logger.Debug("board changed",
			"op", event.Operation,
			"task_id", event.Task.ID,
			"completed", event.Task.Completed,
			"total", snap.Summary.Total,
			"done", snap.Summary.Completed,
		)
	}
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
