package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/taxifare/internal/loadcheck"
)

// Default configuration constants.
const (
	defaultNumTrips    = 1000
	defaultReplays     = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8501", "Base URL of the service")
		numTrips   = flag.Int("trips", defaultNumTrips, "Number of random trips to submit")
		replays    = flag.Int("replays", defaultReplays, "Number of trips submitted twice")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Optional JSON file for trips and answers")
		logFile    = flag.String("log", "", `Log file, "-" for stdout only`)
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadcheck.ShowHelp()
		return
	}

	closer, err := loadcheck.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)

	_, err = loadcheck.Run(ctx, &loadcheck.Config{
		BaseURL:    *baseURL,
		NumTrips:   *numTrips,
		Replays:    *replays,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	})
	cancel()
	_ = closer.Close()
	if err != nil {
		os.Stderr.WriteString("Load check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
