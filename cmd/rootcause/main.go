package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/rootcause/internal/caseload"
	"github.com/dshills/rootcause/internal/catalog"
	"github.com/dshills/rootcause/internal/config"
	"github.com/dshills/rootcause/internal/logger"
	"github.com/dshills/rootcause/internal/render"
	"github.com/dshills/rootcause/internal/review"
	"github.com/dshills/rootcause/internal/revision"
	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/server"
	"github.com/dshills/rootcause/internal/store"
	"github.com/dshills/rootcause/internal/workflow"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// analyzeFlags holds the parsed flags for the analyze command.
type analyzeFlags struct {
	format        string
	out           string
	catalogPath   string
	riskThreshold string
	failOn        string
	previous      string
	diffOut       string
	save          bool
	configPath    string
	verbose       bool
}

// serveFlags holds the parsed flags for the serve command.
type serveFlags struct {
	configPath string
	addr       string
}

func main() {
	root := &cobra.Command{
		Use:   "rootcause",
		Short: "Root-cause analysis for production incidents",
		Long:  "rootcause combines Ishikawa, Five-Whys, Pareto and FMEA analyses into one root-cause conclusion with recommended solutions.",
	}

	var aflags analyzeFlags
	analyzeCmd := &cobra.Command{
		Use:   "analyze <case-file>",
		Short: "Analyze a JSON or YAML case file and produce a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], aflags)
		},
	}

	f := analyzeCmd.Flags()
	f.StringVar(&aflags.format, "format", "json", "Output format: json, md or term")
	f.StringVar(&aflags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&aflags.catalogPath, "catalog", "", "YAML file overriding the solution catalog tables")
	f.StringVar(&aflags.riskThreshold, "risk-threshold", "low", "Minimum FMEA risk band to list: low, medium, or high")
	f.StringVar(&aflags.failOn, "fail-on", "", "Exit 2 if any failure mode is at or above this band (medium or high)")
	f.StringVar(&aflags.previous, "previous", "", "Previous conclusion file to diff the new conclusion against")
	f.StringVar(&aflags.diffOut, "diff-out", "", "Write the conclusion revision in diff-match-patch format to this file")
	f.BoolVar(&aflags.save, "save", false, "Persist the case, conclusion and solutions into the configured store")
	f.StringVar(&aflags.configPath, "config", "", "YAML config file")
	f.BoolVar(&aflags.verbose, "verbose", false, "Log processing steps to stderr")

	var sflags serveFlags
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the browser wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, sflags)
		},
	}
	sf := serveCmd.Flags()
	sf.StringVar(&sflags.configPath, "config", "", "YAML config file")
	sf.StringVar(&sflags.addr, "addr", "", "Listen address (overrides config and RCA_ADDR)")

	root.AddCommand(analyzeCmd, serveCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func runAnalyze(casePath string, flags analyzeFlags) error {
	// --- Step 1: Validate flags ---
	if err := validateFlags(flags); err != nil {
		return codeError(3, "invalid flags: %s", err)
	}

	// --- Step 2: Config, logger, catalog ---
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	log := logger.NewNop()
	if flags.verbose {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return codeError(3, "creating logger: %s", err)
		}
		defer log.Sync()
	}
	cat, err := loadCatalog(flags.catalogPath, cfg.CatalogPath, log)
	if err != nil {
		return codeError(3, "loading catalog: %s", err)
	}

	// --- Step 3: Load case ---
	log.Info("loading case", "path", casePath)
	cf, err := caseload.Load(casePath, time.Now())
	if err != nil {
		return codeError(3, "loading case: %s", err)
	}

	var previous *string
	if flags.previous != "" {
		text, err := caseload.LoadText(flags.previous)
		if err != nil {
			return codeError(3, "loading previous conclusion: %s", err)
		}
		previous = &text
	}

	// --- Step 4: Store ---
	var st store.Store = store.NewMemory()
	if flags.save {
		log.Info("opening store", "driver", cfg.Store.Driver, "dsn", cfg.Store.DSN)
		if st, err = store.Open(cfg.Store, log); err != nil {
			return codeError(4, "opening store: %s", err)
		}
	}
	defer st.Close()
	engine := workflow.New(st, cat, log)

	// --- Step 5: Analyze; counts reflect all failure modes, the threshold filters output only ---
	threshold := schema.RiskBand(flags.riskThreshold)
	report := engine.Analyze(cf.Case, workflow.Options{
		CaseFile:      casePath,
		CaseHash:      cf.Hash,
		RiskThreshold: threshold,
		Version:       version,
	})

	// --- Step 6: Persist ---
	var storedDiff string
	if flags.save {
		ctx := context.Background()
		if err := engine.SaveCase(ctx, cf.Case); err != nil {
			return codeError(4, "saving case: %s", err)
		}
		res, err := engine.Conclude(ctx, cf.Case.Problem.ID)
		if err != nil {
			return codeError(4, "saving conclusion: %s", err)
		}
		storedDiff = res.Diff
		set, err := engine.ProposeSolutions(ctx, cf.Case.Problem.ID, nil)
		if err != nil {
			return codeError(4, "saving solutions: %s", err)
		}
		report.Problem = cf.Case.Problem
		report.Solutions = set.Solutions
		log.Info("case persisted", "problem_id", cf.Case.Problem.ID)
	}

	// --- Step 7: Write conclusion diff ---
	if flags.diffOut != "" {
		diffText := storedDiff
		if previous != nil {
			diffText = revision.Diff(*previous, report.Conclusion.Markdown)
			inserted, deleted := revision.Stats(*previous, report.Conclusion.Markdown)
			log.Info("conclusion revised", "inserted", inserted, "deleted", deleted)
		}
		log.Info("writing conclusion diff", "path", flags.diffOut, "bytes", len(diffText))
		if err := os.WriteFile(flags.diffOut, []byte(diffText), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: diff write failed: %s\n", err)
			// Continue; the diff is advisory.
		}
	}

	// --- Step 8: Render output ---
	log.Info("rendering output", "format", flags.format)
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}

	// --- Step 9: Write output ---
	if flags.out != "" {
		if err := os.WriteFile(flags.out, outputBytes, 0o644); err != nil {
			return codeError(3, "writing output file: %s", err)
		}
	} else {
		if _, err := os.Stdout.Write(outputBytes); err != nil {
			return codeError(3, "writing output: %s", err)
		}
		// Ensure output ends with a newline for terminal friendliness.
		if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
			fmt.Fprintln(os.Stdout)
		}
	}

	// --- Step 10: Evaluate --fail-on ---
	if flags.failOn != "" && cf.Case.FMEA != nil {
		band := schema.RiskBand(flags.failOn)
		if review.Exceeds(cf.Case.FMEA.FailureModes, band) {
			high, medium, _ := review.Counts(cf.Case.FMEA.FailureModes)
			return codeError(2, "failure modes at or above --fail-on %s (high=%d, medium=%d)", band, high, medium)
		}
	}

	return nil
}

func runServe(ctx context.Context, flags serveFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	if flags.addr != "" {
		cfg.Addr = flags.addr
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}
	defer log.Sync()

	cat, err := loadCatalog("", cfg.CatalogPath, log)
	if err != nil {
		return codeError(3, "loading catalog: %s", err)
	}

	log.Info("opening store", "driver", cfg.Store.Driver, "dsn", cfg.Store.DSN)
	st, err := store.Open(cfg.Store, log)
	if err != nil {
		return codeError(4, "opening store: %s", err)
	}
	defer st.Close()

	engine := workflow.New(st, cat, log)
	srv := server.NewServer(server.RouterConfig{
		Handler:        server.NewHandler(engine, log, version),
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Run(gctx, cfg.Addr); err != nil {
			return fmt.Errorf("serving on %s: %w", cfg.Addr, err)
		}
		return nil
	})
	if cfg.CatalogPath != "" {
		g.Go(func() error {
			return catalog.Watch(gctx, cfg.CatalogPath, log, engine.SetCatalog)
		})
	}
	if err := g.Wait(); err != nil {
		return codeError(3, "%s", err)
	}
	return nil
}

// loadCatalog prefers the flag path over the configured one; with neither
// the built-in tables are used.
func loadCatalog(flagPath, cfgPath string, log *logger.Logger) (*catalog.Catalog, error) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		return catalog.Default(), nil
	}
	log.Info("loading catalog", "path", path)
	return catalog.LoadFile(path)
}

// validateFlags returns an error if any flag value is invalid.
func validateFlags(flags analyzeFlags) error {
	switch flags.format {
	case "json", "md", "term":
	default:
		return fmt.Errorf("--format must be json, md or term, got %q", flags.format)
	}

	switch schema.RiskBand(flags.riskThreshold) {
	case schema.RiskLow, schema.RiskMedium, schema.RiskHigh:
	default:
		return fmt.Errorf("--risk-threshold must be low, medium, or high, got %q", flags.riskThreshold)
	}

	if flags.failOn != "" {
		switch schema.RiskBand(flags.failOn) {
		case schema.RiskMedium, schema.RiskHigh:
		default:
			return fmt.Errorf("--fail-on must be medium or high, got %q", flags.failOn)
		}
	}

	return nil
}
