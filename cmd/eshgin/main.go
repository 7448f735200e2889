// Package main provides the CLI entrypoint for eshgin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eshginfarzali/eshgin/internal/bugs"
	"github.com/eshginfarzali/eshgin/internal/config"
	"github.com/eshginfarzali/eshgin/internal/logging"
	"github.com/eshginfarzali/eshgin/internal/model"
	"github.com/eshginfarzali/eshgin/internal/profile"
	"github.com/eshginfarzali/eshgin/internal/server"
	"github.com/eshginfarzali/eshgin/internal/tui"
	"github.com/eshginfarzali/eshgin/internal/typing"
	"github.com/eshginfarzali/eshgin/internal/wordlist"
)

const (
	defaultLogLevel   = "info"
	defaultAddr       = "127.0.0.1:8080"
	defaultTermWidth  = 80
	envLogLevel       = "ESHGIN_LOG_LEVEL"
	envAddr           = "ESHGIN_ADDR"
	defaultMaxLength  = 0
	defaultMarginPx   = float64(bugs.DefaultMargin)
	defaultMaxTargets = bugs.DefaultMaxTargets
)

var (
	profilePath   string
	spawnInterval time.Duration
	maxTargets    int
	margin        float64
	roundSeconds  int
	snippetsPath  string
	maxLength     int
	logLevel      string
	logFile       string

	serveAddr       string
	serveAreaWidth  float64
	serveAreaHeight float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "eshgin",
		Short:             "Terminal portfolio with a bug squasher and a code speed test",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadDotenv,
		RunE:              runShellCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&profilePath, "profile", "", "profile TOML file (default: built-in profile)")
	flags.DurationVar(&spawnInterval, "spawn-interval", bugs.DefaultSpawnInterval, "time between bug spawns")
	flags.IntVar(&maxTargets, "max-targets", defaultMaxTargets, "bugs kept on screen")
	flags.Float64Var(&margin, "margin", defaultMarginPx, "spawn margin in pixels")
	flags.IntVar(&roundSeconds, "round-seconds", typing.DefaultRoundSeconds, "length of a speed test round")
	flags.StringVar(&snippetsPath, "snippets", "", "snippet file, one per line (default: built-in snippets)")
	flags.IntVar(&maxLength, "max-length", defaultMaxLength, "skip snippets longer than this many characters (0: no limit)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "log file for the interactive shell (default: XDG data dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newSnippetsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func loadDotenv(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func runShellCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	snippets, err := loadSnippets(cfg.Typing)
	if err != nil {
		return err
	}

	logger, closer, err := logging.File(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	m := tui.NewModel(cfg, p, snippets, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print projects, skills and work history",
		Args:  cobra.NoArgs,
		RunE:  runProfileCmd,
	}
}

func runProfileCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	if err := profile.Render(cmd.OutOrStdout(), p, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSnippetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snippets",
		Short: "List the code speed test snippets",
		Args:  cobra.NoArgs,
		RunE:  runSnippetsCmd,
	}
}

func runSnippetsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snippets, err := loadSnippets(cfg.Typing)
	if err != nil {
		return err
	}
	for _, snippet := range snippets {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), snippet); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the profile and both games over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().Float64Var(&serveAreaWidth, "area-width", server.DefaultAreaWidth, "initial bug field width in pixels")
	cmd.Flags().Float64Var(&serveAreaHeight, "area-height", server.DefaultAreaHeight, "initial bug field height in pixels")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	snippets, err := loadSnippets(cfg.Typing)
	if err != nil {
		return err
	}
	logger, err := logging.Console(os.Stdout, cfg.Log.Level)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := server.New(cfg, p, snippets, logger)
	return srv.Run(ctx, cfg.Serve.Addr)
}

// resolveConfig layers flag defaults, environment, config file and explicit flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	applyEnv(cmd, "log-level", &logLevel, envLogLevel)
	applyEnv(cmd, "addr", &serveAddr, envAddr)

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "profile", &profilePath, fileCfg.Profile)
	applyDurationConfig(cmd, "spawn-interval", &spawnInterval, fileCfg.Bugs.Interval())
	applyIntConfig(cmd, "max-targets", &maxTargets, fileCfg.Bugs.MaxTargets)
	applyFloatConfig(cmd, "margin", &margin, fileCfg.Bugs.Margin)
	applyIntConfig(cmd, "round-seconds", &roundSeconds, fileCfg.Typing.RoundSeconds)
	applyStringConfig(cmd, "snippets", &snippetsPath, fileCfg.Typing.Snippets)
	applyIntConfig(cmd, "max-length", &maxLength, fileCfg.Typing.MaxLength)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyFloatConfig(cmd, "area-width", &serveAreaWidth, fileCfg.Serve.AreaWidth)
	applyFloatConfig(cmd, "area-height", &serveAreaHeight, fileCfg.Serve.AreaHeight)

	cfg := model.Config{
		Profile: profilePath,
		Bugs: model.BugsConfig{
			SpawnInterval: spawnInterval,
			MaxTargets:    maxTargets,
			Margin:        margin,
		},
		Typing: model.TypingConfig{
			RoundSeconds: roundSeconds,
			SnippetsPath: snippetsPath,
			MaxLength:    maxLength,
		},
		Log: model.LogConfig{
			Level: logLevel,
			File:  logFile,
		},
		Serve: model.ServeConfig{
			Addr:       serveAddr,
			AreaWidth:  serveAreaWidth,
			AreaHeight: serveAreaHeight,
		},
	}
	if cfg.Log.File == "" {
		cfg.Log.File = config.DefaultLogPath()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Default()
	}
	p, err := profile.Load(path)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to load profile %s: %w", path, err)
	}
	return p, nil
}

func loadSnippets(cfg model.TypingConfig) ([]string, error) {
	keep := wordlist.Typeable
	if cfg.MaxLength > 0 {
		keep = wordlist.MaxLength(cfg.MaxLength)
	}
	if cfg.SnippetsPath == "" {
		snippets := make([]string, 0, len(typing.DefaultSnippets))
		for _, s := range typing.DefaultSnippets {
			if keep(s) {
				snippets = append(snippets, s)
			}
		}
		if len(snippets) == 0 {
			return nil, fmt.Errorf("no built-in snippet fits --max-length %d", cfg.MaxLength)
		}
		return snippets, nil
	}
	snippets, err := wordlist.LoadSnippets(cfg.SnippetsPath, keep)
	if err != nil {
		return nil, err
	}
	return snippets, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func applyEnv(cmd *cobra.Command, name string, target *string, key string) {
	f := cmd.Flag(name)
	if f == nil || f.Changed {
		return
	}
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# eshgin configuration
# Uncomment a value to enable it. CLI flags override config values.

# profile = "/path/to/profile.toml"

[bugs]
# spawn-interval = %q     # Time between bug spawns
# max-targets = %d          # Bugs kept on screen
# margin = %.0f              # Spawn margin in pixels

[typing]
# round-seconds = %d       # Length of a speed test round
# snippets = "/path/to/snippets.txt"
# max-length = 60          # Skip longer snippets

[log]
# level = %q
# file = %q

[serve]
# addr = %q
# area-width = %d
# area-height = %d
`,
		bugs.DefaultSpawnInterval.String(),
		defaultMaxTargets,
		defaultMarginPx,
		typing.DefaultRoundSeconds,
		defaultLogLevel,
		config.DefaultLogPath(),
		defaultAddr,
		server.DefaultAreaWidth,
		server.DefaultAreaHeight,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Bugs.SpawnInterval <= 0 {
		return fmt.Errorf("--spawn-interval must be > 0")
	}
	if cfg.Bugs.MaxTargets <= 0 {
		return fmt.Errorf("--max-targets must be > 0")
	}
	if cfg.Bugs.Margin <= 0 {
		return fmt.Errorf("--margin must be > 0")
	}
	if cfg.Typing.RoundSeconds <= 0 {
		return fmt.Errorf("--round-seconds must be > 0")
	}
	if cfg.Typing.MaxLength < 0 {
		return fmt.Errorf("--max-length must be >= 0")
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	if cfg.Serve.AreaWidth <= 0 || cfg.Serve.AreaHeight <= 0 {
		return fmt.Errorf("--area-width and --area-height must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
