package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mwhite/griddle/internal/config"
	"github.com/mwhite/griddle/internal/dataset"
	"github.com/mwhite/griddle/internal/history"
	"github.com/mwhite/griddle/internal/query"
	"github.com/mwhite/griddle/internal/reader"
	"github.com/mwhite/griddle/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile   string
	verbose   bool
	formatArg string
	noHeader  bool
	separator string
	widthsArg string
	inferArg  string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "griddle [flags] FILE...",
	Short: "Interactive terminal viewer for tabular data files",
	Long: `griddle opens tabular data files (CSV, TSV, fixed-width text, parquet)
in an interactive terminal viewer. Each file becomes a tab.

Navigation:
  ↑/k, ↓/j        Move up/down
  ←/h, →/l        Scroll columns
  Ctrl+u/Ctrl+d   Half page up/down
  g/G             First/last row
  Enter           Row detail sheet
  /               Incremental fuzzy search
  :               Command palette (query, select, order, filter, goto, ...)
  H/L             Previous/next tab
  q               Close tab (quit when last)`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	RunE: runViewer,
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal")
	}

	opts, err := readerOptions()
	if err != nil {
		return err
	}

	engine, err := query.NewSQLiteEngine()
	if err != nil {
		return fmt.Errorf("open query engine: %w", err)
	}
	defer engine.Close()

	hist, err := history.Load(cfg.HistoryPath(), cfg.History.Capacity)
	if err != nil {
		logger.Warn("could not load command history", "path", cfg.HistoryPath(), "error", err)
		hist = history.New(cfg.History.Capacity)
	}

	model := tui.New(engine, hist, tui.Options{
		Version:  Version,
		NullText: cfg.Display.NullText,
	})
	for _, path := range args {
		table, err := reader.ReadFile(path, opts)
		if err != nil {
			return err
		}
		logger.Debug("loaded file", "path", path, "rows", table.Height(), "columns", table.Width())
		model.OpenTab(filepath.Base(path), path, table)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if fm, ok := final.(tui.Model); ok {
		if err := os.MkdirAll(cfg.HomeDir, 0o700); err == nil {
			err = fm.History().Save(cfg.HistoryPath())
		}
		if err != nil {
			logger.Warn("could not save command history", "path", cfg.HistoryPath(), "error", err)
		}
	}
	return nil
}

// readerOptions merges CLI flags over config defaults.
func readerOptions() (reader.Options, error) {
	opts := reader.DefaultOptions()

	formatStr := formatArg
	if formatStr == "" {
		formatStr = cfg.Input.Format
	}
	format, ok := reader.ParseFormat(formatStr)
	if !ok {
		return opts, fmt.Errorf("unknown format %q (want csv, tsv, fwf, or parquet)", formatStr)
	}
	opts.Format = format

	opts.HasHeader = !(noHeader || cfg.Input.NoHeader)

	sep := separator
	if sep == "" {
		sep = cfg.Input.Separator
	}
	if sep != "" {
		runes := []rune(sep)
		if len(runes) != 1 {
			return opts, fmt.Errorf("separator must be a single character, got %q", sep)
		}
		opts.Separator = runes[0]
	}

	if widthsArg != "" {
		widths, err := parseWidths(widthsArg)
		if err != nil {
			return opts, err
		}
		opts.Widths = widths
	}

	inferStr := inferArg
	if inferStr == "" {
		inferStr = cfg.Display.InferSchema
	}
	mode, ok := dataset.ParseInferMode(inferStr)
	if !ok {
		return opts, fmt.Errorf("unknown schema inference mode %q (want off, fast, full, or safe)", inferStr)
	}
	opts.InferMode = mode

	return opts, nil
}

// parseWidths parses a comma-separated list of fixed-width column widths.
func parseWidths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	widths := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid column width %q", part)
		}
		widths = append(widths, n)
	}
	return widths, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.griddle/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&formatArg, "format", "f", "", "input format: csv, tsv, fwf, or parquet (default: by extension)")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first row as data")
	rootCmd.Flags().StringVarP(&separator, "separator", "s", "", "field separator for delimited formats")
	rootCmd.Flags().StringVar(&widthsArg, "widths", "", "comma-separated fixed-width column widths (default: infer)")
	rootCmd.Flags().StringVar(&inferArg, "infer-schema", "", "schema inference mode: off, fast, full, or safe (default safe)")
}
