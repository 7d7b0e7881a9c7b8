package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-pipeline/internal/common"
	"github.com/joseph-ayodele/invoice-pipeline/internal/export"
	"github.com/joseph-ayodele/invoice-pipeline/internal/extract"
	"github.com/joseph-ayodele/invoice-pipeline/internal/extract/openai"
	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
	"github.com/joseph-ayodele/invoice-pipeline/internal/pipeline"
	"github.com/joseph-ayodele/invoice-pipeline/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		userID    = flag.String("user", "local", "user identity invoices are stored under")
		out       = flag.String("out", "", "output CSV path (defaults to <first-source>_<timestamp>.csv)")
		xlsxOut   = flag.String("xlsx", "", "optional output XLSX path")
		submit    = flag.Bool("store", false, "submit results to the configured invoice store")
		inmem     = flag.Bool("inmem", false, "use an in-memory SQLite store (implies --store)")
		pageDelay = flag.Duration("page-delay", 0, "override pacing delay between extraction calls")
	)
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		printError("Error: at least one source file is required\n")
		printError("usage: invoice-batch [flags] file.xlsx [file2.csv ...]\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := common.WithUserID(context.Background(), *userID)

	cfg := common.LoadConfig()
	if *pageDelay > 0 {
		cfg.Pipeline.PageDelay = *pageDelay
	}
	if cfg.Extraction.APIKey == "" {
		logger.Error("OPENAI_API_KEY is not configured")
		os.Exit(1)
	}

	engine := openai.NewClient(openai.Config{
		APIKey:      cfg.Extraction.APIKey,
		BaseURL:     cfg.Extraction.BaseURL,
		Model:       cfg.Extraction.Model,
		Temperature: cfg.Extraction.Temperature,
		Timeout:     cfg.Extraction.Timeout,
	}, logger)
	adapter := extract.NewAdapter(engine, logger)

	pipe := pipeline.New(adapter, nil, pipeline.Config{
		MaxPageChars: cfg.Pipeline.MaxPageChars,
		PageDelay:    cfg.Pipeline.PageDelay,
		ItemsPerPage: cfg.Pipeline.ItemsPerPage,
		RowsPerChunk: cfg.Pipeline.RowsPerChunk,
	}, logger)

	// Each document folds into its own state; a failing document must not
	// affect its siblings.
	var all []*invoice.Invoice
	failures := 0
	for _, path := range files {
		logger.Info("processing file", "path", path)
		invoices, err := pipe.ProcessFile(ctx, path)
		if err != nil {
			logger.Error("failed to process file", "path", path, "error", err)
			failures++
			continue
		}
		all = append(all, invoices...)
	}

	if len(all) == 0 {
		logger.Warn("no invoices were extracted", "files", len(files), "failures", failures)
	}

	if *out == "" {
		timestamp := time.Now().Format("20060102_150405")
		base := filepath.Base(files[0])
		*out = strings.TrimSuffix(base, filepath.Ext(base)) + "_" + timestamp + ".csv"
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create output file", "path", *out, "error", err)
		os.Exit(1)
	}
	if err := export.WriteCSV(f, all, logger); err != nil {
		logger.Error("failed to write CSV", "path", *out, "error", err)
		_ = f.Close()
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		logger.Error("failed to close output file", "path", *out, "error", err)
		os.Exit(1)
	}

	if *xlsxOut != "" {
		xlsxBytes, err := export.WriteXLSX(all, logger)
		if err != nil {
			logger.Error("failed to build XLSX", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, xlsxBytes, 0644); err != nil {
			logger.Error("failed to write XLSX file", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
	}

	storedPages, storedItems := 0, 0
	if *submit || *inmem {
		st, err := openStore(ctx, cfg, *inmem, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Warn("store close error", "error", err)
			}
		}()

		storedPages, storedItems, err = store.SubmitAll(ctx, st, *userID, all)
		if err != nil {
			logger.Error("failed to submit invoices", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"files", len(files),
		"failures", failures,
		"invoices", len(all),
		"stored_pages", storedPages,
		"stored_items", storedItems,
		"output_file", *out,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files processed: %d (failures: %d)\n", len(files)-failures, failures)
	fmt.Printf("- Invoices extracted: %d\n", len(all))
	fmt.Printf("- Output: %s\n", *out)
}

func openStore(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) (store.InvoiceStore, error) {
	if inmem {
		return store.NewSQLiteStore(ctx, ":memory:", logger)
	}
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.Store, logger)
	case "sqlite":
		return store.NewSQLiteStore(ctx, cfg.Store.DSN, logger)
	default:
		return nil, common.NewAppError("CONFIG_ERROR", "unknown store driver: "+cfg.Store.Driver, common.ErrInvalidInput)
	}
}
