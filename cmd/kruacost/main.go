// kruacost is a recipe costing and production tracking tool for a small kitchen.
//
// Usage:
//
//	kruacost [-verbose] [-quiet] [-store json|sqlite] [-data-file PATH]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kittipos/kruacost/internal/display"
	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/engine"
	"github.com/kittipos/kruacost/internal/logger"
	"github.com/kittipos/kruacost/internal/prompt"
	"github.com/kittipos/kruacost/internal/storage"
)

// Environment variables honoured as flag defaults.
const (
	EnvDataFile = "KRUA_DATA_FILE"
	EnvStore    = "KRUA_STORE"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".krua-logs/krua.log", "file to write logs to (use \"stderr\" to log to console)")
	storeKind := flag.String("store", envOr(EnvStore, "json"), "snapshot store backend: json or sqlite")
	dataFile := flag.String("data-file", envOr(EnvDataFile, ""), "path to the data file (default recipe_data.json or recipe_data.db)")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the snapshot store.
	var store domain.SnapshotStore
	switch *storeKind {
	case "json":
		path := *dataFile
		if path == "" {
			path = "recipe_data.json"
		}
		store = storage.NewFileStore(path, log)
		log.Info("using JSON store at %s", path)
	case "sqlite":
		path := *dataFile
		if path == "" {
			path = "recipe_data.db"
		}
		st, err := storage.OpenSQLiteStore(path, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening sqlite store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		store = st
		log.Info("using SQLite store at %s", path)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown store %q (want json or sqlite)\n", *storeKind)
		os.Exit(1)
	}

	eng, err := engine.New(ctx, store, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := newApp(eng, log)
	app.refreshStatus()

	ui := display.NewUI(app.statusLine)
	app.ui = ui
	app.in = prompt.NewReader(ui.InputChan(), ui.Printf, log)

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Pick menu entries by number, 0 goes back. Ctrl+C quits."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
