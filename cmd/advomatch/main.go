package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/perbu/advomatch/internal/app"
	"github.com/perbu/advomatch/internal/config"
	"github.com/perbu/advomatch/pkg/advocate"
	"github.com/perbu/advomatch/pkg/matcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	top := flag.Int("top", cfg.SearchLimit, "number of advocates to return")
	offline := flag.Bool("offline", false, "use the local hashing embedder instead of the OpenAI API")
	verbose := flag.Bool("verbose", false, "show similarity scores and debug logging")
	flag.Parse()

	// Get query string
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: advomatch [options] <query>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.Join(args, " ")

	level := cfg.LogLevel
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a, err := app.New(cfg, logger, app.Options{Offline: *offline})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !*offline {
			fmt.Fprintf(os.Stderr, "Set OPENAI_API_KEY in .env or the environment, or pass -offline\n")
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = search(ctx, a.Engine, query, *top, *verbose, os.Stdout)
	stop()
	if cerr := a.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing advocate store: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		os.Exit(1)
	}
}

// search runs one query and writes the ranked advocates to w.
func search(ctx context.Context, engine *matcher.Engine, query string, top int, verbose bool, w io.Writer) error {
	results, err := engine.SearchScored(ctx, query, top)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No advocates found")
		return nil
	}

	fmt.Fprintf(w, "Found %d advocates:\n\n", len(results))
	for i, result := range results {
		printResult(w, result, verbose)
		if i < len(results)-1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}

func printResult(w io.Writer, r matcher.Result, showScore bool) {
	a := r.Advocate
	if showScore {
		fmt.Fprintf(w, "Score: %.2f | ", r.Score)
	}
	fmt.Fprintf(w, "%s, %s (%d years of experience)\n", a.FullName(), a.Degree, a.YearsOfExperience)
	fmt.Fprintf(w, "  %s\n", a.City)
	if len(a.Specialties) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(a.Specialties, " · "))
	}
	fmt.Fprintf(w, "  Contact: %s\n", advocate.FormatPhoneNumber(a.PhoneNumber))
}
