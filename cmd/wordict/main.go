// Package main provides the CLI entrypoint for wordict.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordict/internal/browseui"
	"github.com/verte-zerg/wordict/internal/config"
	"github.com/verte-zerg/wordict/internal/dict"
	"github.com/verte-zerg/wordict/internal/logging"
	"github.com/verte-zerg/wordict/internal/model"
	"github.com/verte-zerg/wordict/internal/report"
	"github.com/verte-zerg/wordict/internal/store"
)

const appVersion = "1.00"

// Exit codes.
const (
	exitNormal = 0
	exitError  = 1
	exitFile   = 2
	exitFatal  = 10
)

var (
	optDict     string
	optFile     string
	optKey      string
	optWords    bool
	optVerbose  bool
	optInit     bool
	optBackend  string
	optDataDir  string
	optLogLevel string
)

func main() {
	rootCmd := newRootCmd()
	os.Exit(exitCode(rootCmd.Execute()))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordict",
		Short:         "Personal word dictionary",
		Long:          "Upload words from text files into named dictionaries, search them, and list them.\n\n" + exitCodeHelp(),
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&optDict, "dict", "d", "", "select or create dictionary (default: "+dict.DefaultName+")")
	rootCmd.PersistentFlags().BoolVarP(&optVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&optBackend, "backend", store.KindSQLite, "storage backend: sqlite|json|memory")
	rootCmd.PersistentFlags().StringVar(&optDataDir, "data-dir", "", "storage directory (default: $XDG_DATA_HOME/wordict)")
	rootCmd.PersistentFlags().StringVar(&optLogLevel, "log-level", "", "log level: debug|info|warn|error")

	rootCmd.Flags().StringVarP(&optFile, "file", "f", "", "upload words from file into the selected dictionary")
	rootCmd.Flags().StringVarP(&optKey, "key", "k", "", "search for word in the selected dictionary")
	rootCmd.Flags().BoolVarP(&optWords, "words", "w", false, "show all words in the dictionary")
	rootCmd.Flags().BoolVarP(&optInit, "init", "i", false, "open the storage backend and exit")

	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newDictsCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return dict.InvalidArgument("unexpected argument %q", args[0])
	}
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	logger, err := setupLogger(opts)
	if err != nil {
		return err
	}

	if opts.UploadPath != "" {
		if err := dict.CheckUploadSize(opts.UploadPath, dict.MaxUploadBytes); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Debug("opening storage", slog.String("backend", opts.Backend), slog.String("dir", opts.DataDir))
	backend, err := openBackend(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logErrf("failed to close storage: %v\n", cerr)
		}
	}()

	d, err := dict.New(ctx, backend, dict.WithLogger(logger))
	if err != nil {
		return err
	}
	if opts.InitOnly {
		return nil
	}
	if opts.DictName != "" {
		if err := d.SelectOrCreate(ctx, opts.DictName); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Selected dictionary name='%s'\n", d.Name()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if opts.UploadPath == "" {
		if err := d.Load(ctx); err != nil {
			return err
		}
	} else {
		added, err := d.UploadFromFile(ctx, opts.UploadPath)
		if err != nil {
			return err
		}
		logger.Info("uploaded words", slog.String("dict", d.Name()), slog.Int("added", added), slog.Int("total", d.Len()))
	}

	if opts.SearchKey != "" {
		if _, err := fmt.Fprintf(out, "Key present: %t\n", d.Contains(opts.SearchKey)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if opts.ShowWords {
		if err := report.WriteWords(out, d.Words()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every word from the selected dictionary",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	return withDictionary(cmd, func(ctx context.Context, d *dict.Dictionary, _ store.Backend) error {
		if err := d.Clear(ctx); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared dictionary name='%s'\n", d.Name()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func newDictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List stored dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runDictsCmd,
	}
}

func runDictsCmd(cmd *cobra.Command, _ []string) error {
	return withDictionary(cmd, func(ctx context.Context, d *dict.Dictionary, backend store.Backend) error {
		summaries, err := dict.Summaries(ctx, backend)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := report.WriteSummaries(out, summaries, d.Name(), report.ShouldUseColor(out)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the selected dictionary interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	if !report.IsTerminal(os.Stdout) {
		return dict.InvalidArgument("browse needs a terminal; use --words for plain output")
	}
	return withDictionary(cmd, func(ctx context.Context, d *dict.Dictionary, _ store.Backend) error {
		if err := d.Load(ctx); err != nil {
			return err
		}
		program := tea.NewProgram(browseui.NewModel(d.Name(), d.Words()), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run browser: %w", err)
		}
		return nil
	})
}

// withDictionary opens the backend, selects the requested dictionary and runs fn.
func withDictionary(cmd *cobra.Command, fn func(context.Context, *dict.Dictionary, store.Backend) error) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	logger, err := setupLogger(opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := openBackend(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logErrf("failed to close storage: %v\n", cerr)
		}
	}()
	d, err := dict.New(ctx, backend, dict.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := d.SelectOrCreate(ctx, opts.DictName); err != nil {
		return err
	}
	return fn(ctx, d, backend)
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

// resolveOptions merges flags with the config file. Flags that were set win.
func resolveOptions(cmd *cobra.Command) (model.Options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Options{}, dict.InvalidArgument("failed to load config: %v", err)
	}
	applyStringConfig(cmd, "dict", &optDict, fileCfg.Dictionary.Name)
	applyStringConfig(cmd, "backend", &optBackend, fileCfg.Dictionary.Backend)
	applyStringConfig(cmd, "data-dir", &optDataDir, fileCfg.Dictionary.DataDir)
	applyStringConfig(cmd, "log-level", &optLogLevel, fileCfg.Log.Level)

	opts := model.Options{
		DictName:   optDict,
		UploadPath: optFile,
		SearchKey:  optKey,
		ShowWords:  optWords,
		Verbose:    optVerbose,
		InitOnly:   optInit,
		Backend:    strings.ToLower(strings.TrimSpace(optBackend)),
		DataDir:    optDataDir,
		LogLevel:   optLogLevel,
	}
	if opts.DataDir == "" {
		opts.DataDir = config.DefaultDataDir()
	}
	if err := validateOptions(opts); err != nil {
		return model.Options{}, err
	}
	return opts, nil
}

func validateOptions(opts model.Options) error {
	switch opts.Backend {
	case store.KindSQLite, store.KindJSON, store.KindMemory:
	default:
		return dict.InvalidArgument("--backend must be one of sqlite, json, memory (got %q)", opts.Backend)
	}
	if _, err := logging.ParseLogLevel(opts.LogLevel); err != nil {
		return dict.InvalidArgument("--log-level: %v", err)
	}
	return nil
}

func openBackend(opts model.Options) (store.Backend, error) {
	backend, err := store.New(opts.Backend, opts.DataDir)
	if err != nil {
		return nil, &dict.Error{Kind: dict.ErrBackendAccess, Op: "open storage", Path: opts.DataDir, Err: err}
	}
	return backend, nil
}

// setupLogger configures the process-wide slog default logger and returns it.
func setupLogger(opts model.Options) (*slog.Logger, error) {
	lvl, err := logging.ParseLogLevel(opts.LogLevel)
	if err != nil {
		return nil, dict.InvalidArgument("--log-level: %v", err)
	}
	if opts.Verbose {
		lvl = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, lvl)
	slog.SetDefault(logger)
	return logger, nil
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

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitNormal
	case errors.Is(err, dict.ErrFileAccess), errors.Is(err, dict.ErrFileTooLarge):
		return exitFile
	case errors.Is(err, dict.ErrBackendAccess):
		return exitFatal
	default:
		return exitError
	}
}

func exitCodeHelp() string {
	lines := []string{
		"Exit values:",
		fmt.Sprintf("  %2d    %s", exitNormal, "Normal exit"),
		fmt.Sprintf("  %2d    %s", exitError, "General user errors"),
		fmt.Sprintf("  %2d    %s", exitFile, "File/Directory related errors"),
		fmt.Sprintf("  %2d    %s", exitFatal, "Storage fatal/unknown error"),
	}
	return strings.Join(lines, "\n")
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordict configuration
# Uncomment a value to enable it. CLI flags override config values.

[dictionary]
# name = %q            # Dictionary selected when --dict is not given
# backend = %q          # Storage backend: sqlite, json or memory
# data-dir = %q         # Storage directory

[log]
# level = "warn"              # debug, info, warn or error
`,
		dict.DefaultName,
		store.KindSQLite,
		config.DefaultDataDir(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
