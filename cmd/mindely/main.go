// Package main provides the CLI entrypoint for mindely.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/mindely/internal/catalog"
	"github.com/verte-zerg/mindely/internal/config"
	"github.com/verte-zerg/mindely/internal/logging"
	"github.com/verte-zerg/mindely/internal/model"
	"github.com/verte-zerg/mindely/internal/sound"
	"github.com/verte-zerg/mindely/internal/store"
	"github.com/verte-zerg/mindely/internal/tui"
)

const (
	defaultSound    = true
	defaultLogLevel = "info"
)

var (
	rootMethod string
	rootSound  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mindely",
		Short:         "Calm study companion with focus/break timers",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStudyCmd,
	}

	rootCmd.Flags().StringVar(&rootMethod, "method", "", "open this study method directly (see: mindely methods)")
	rootCmd.Flags().BoolVar(&rootSound, "sound", defaultSound, "play chimes at phase changes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newMethodCmd())

	return rootCmd
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "method", &rootMethod, fileCfg.Timer.Method)
	applyBoolConfig(cmd, "sound", &rootSound, fileCfg.Timer.Sound)
	logLevel := defaultLogLevel
	if fileCfg.Log.Level != nil {
		logLevel = *fileCfg.Log.Level
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("mindely needs an interactive terminal (try: mindely methods)")
	}

	logger, logCloser, err := logging.New(config.DefaultLogPath(), logLevel)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = zerolog.Nop()
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	player := sound.NewPlayer(sound.Options{Logger: &logger})
	defer player.Cancel()

	ui, err := tui.NewModel(tui.Options{
		Catalog:      cat,
		Messages:     fileCfg.MessageSet(),
		Sound:        player,
		SoundEnabled: rootSound,
		Logger:       &logger,
		MethodID:     rootMethod,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownMethod) {
			return fmt.Errorf("%w (run: mindely methods)", err)
		}
		return err
	}
	defer ui.Close()

	logger.Info().Str("method", rootMethod).Bool("sound", rootSound).Msg("mindely started")
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadCatalog merges the stored custom methods into the built-in catalog.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var cat *catalog.Catalog
	err := withStore(ctx, func(ctx context.Context, st *store.Store) error {
		stored, err := st.ListMethods(ctx)
		if err != nil {
			return fmt.Errorf("failed to load custom methods: %w", err)
		}
		custom := make([]model.StudyMethod, 0, len(stored))
		for _, m := range stored {
			custom = append(custom, m.StudyMethod)
		}
		cat, err = catalog.New(custom)
		if err != nil {
			return fmt.Errorf("failed to build catalog: %w", err)
		}
		return nil
	})
	return cat, err
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# mindely configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# sound = %t              # Play chimes when focus or break starts
# method = "pomodoro"     # Open this study method on start

[messages]
# Replace the built-in encouragement shown during each phase.
# focus = ["You're doing great ✨", "One step at a time 🌱"]
# break = ["Time to rest 🌿", "Grab some water 💧"]

[log]
# level = %q           # debug, info, warn or error
`,
		defaultSound,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
