package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/extract"
	"github.com/fwojciec/furniq/fs"
	"github.com/fwojciec/furniq/match"
	"github.com/fwojciec/furniq/postgres"
	furslog "github.com/fwojciec/furniq/slog"
	"github.com/fwojciec/furniq/sqlite"
	"github.com/fwojciec/furniq/yaml"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database holding locally managed terms.
	DB *sqlite.DB

	// Postgres catalog, opened only when a DSN is configured.
	Catalog *postgres.DB

	// Services for end-to-end testing.
	TermService furniq.TermService
	Analyzer    *extract.Analyzer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Catalog != nil {
		err = m.Catalog.Close()
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("furniq"),
		kong.Description("Extract furniture attributes from search queries."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'furniq --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FURNIQ_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.TermService = sqlite.NewTermService(m.DB)
	deps.Terms = m.TermService

	switch command {
	case "analyze", "batch", "lookup", "stats":
		a, refresh, err := m.openAnalyzer(ctx, cli, deps.Logger, deps.Stderr)
		if err != nil {
			return err
		}
		deps.Analyzer = a
		deps.Stats = a.Stats
		deps.Lookup = a.Lookup
		deps.Refresh = refresh
	case "serve":
		// The server answers 503 on analysis routes until this returns.
		deps.LoadAnalyzer = func(ctx context.Context) (furniq.Analyzer, func(context.Context) error, error) {
			a, refresh, err := m.openAnalyzer(ctx, cli, deps.Logger, deps.Stderr)
			if err != nil {
				return nil, nil, err
			}
			return a, refresh, nil
		}
	case "dictionaries":
		dicts, err := loadDictionaries(cli)
		if err != nil {
			return err
		}
		deps.Dictionaries = dicts
	}

	if command == "batch" {
		deps.Writer = furslog.NewLoggingResultWriter(fs.NewWriter(cli.Batch.Out), deps.Logger)
	}

	return kongCtx.Run(deps)
}

func loadDictionaries(cli *CLI) (map[furniq.Category]*furniq.Dictionary, error) {
	var dicts map[furniq.Category]*furniq.Dictionary
	var err error
	if cli.Dictionaries != "" {
		dicts, err = yaml.LoadDir(cli.Dictionaries)
	} else {
		dicts, err = yaml.Defaults()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}
	return dicts, nil
}

// openAnalyzer builds the analyzer from the dictionary tables and the
// configured term source. It returns the analyzer with a function that
// reloads the catalog terms.
func (m *Main) openAnalyzer(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (*extract.Analyzer, func(context.Context) error, error) {
	dicts, err := loadDictionaries(cli)
	if err != nil {
		return nil, nil, err
	}

	a := extract.NewAnalyzer(
		extract.WithLogger(logger),
		extract.WithTrace(cli.Trace),
	)
	for _, c := range furniq.Categories() {
		if d, ok := dicts[c]; ok {
			a.AddDictionary(c, d)
		}
	}
	if err := applyThresholds(a.Strategy(), cli.Threshold); err != nil {
		return nil, nil, err
	}

	var src furniq.TermSource = m.TermService
	if cli.DatabaseURL != "" {
		m.Catalog = postgres.NewDB(cli.DatabaseURL)
		if err := m.Catalog.Open(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Check DATABASE_URL points at a reachable Postgres catalog")
			return nil, nil, fmt.Errorf("failed to connect to catalog: %w", err)
		}
		src = postgres.NewTermSource(m.Catalog)
	}
	src = furslog.NewLoggingTermSource(src, logger)

	if err := a.RefreshTerms(ctx, src); err != nil {
		return nil, nil, err
	}

	m.Analyzer = a
	return a, func(ctx context.Context) error {
		return a.RefreshTerms(ctx, src)
	}, nil
}

// applyThresholds overrides the minimum score of the named algorithms.
// Names are matched case-insensitively.
func applyThresholds(s *match.Strategy, thresholds map[string]float64) error {
	if len(thresholds) == 0 {
		return nil
	}
	configs := s.AlgorithmConfigs()
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return furniq.Errorf(furniq.EINVALID, "threshold for %s must be between 0 and 1", name)
		}
		var found bool
		for algorithm, cfg := range configs {
			if !strings.EqualFold(string(algorithm), name) {
				continue
			}
			cfg.MinThreshold = v
			s.UpdateAlgorithmConfig(algorithm, cfg)
			found = true
		}
		if !found {
			return furniq.Errorf(furniq.EINVALID, "unknown algorithm %q", name)
		}
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "furniq.db"
	}
	dir := filepath.Join(home, ".furniq")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "furniq.db")
}
