// Package main provides the qapilot CLI, a browser automation runner for
// QA scripts. It drives a persistent browser session through structured
// JSON action batches: navigate, click, fill forms, and verify pages
// while keeping login state between runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/qapilot/pkg/browser"
	appconfig "github.com/entrhq/qapilot/pkg/config"
	"github.com/entrhq/qapilot/pkg/interact"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

// Config holds the application configuration.
type Config struct {
	URL         string
	ScriptPath  string
	StorageDir  string
	Headless    bool
	KeepOpen    bool
	ConfigPath  string
	ShowVersion bool
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("qapilot v%s\n", version)
		return
	}

	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
}

// parseFlags parses command line flags.
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.URL, "url", "", "URL of the page to run the script against")
	flag.StringVar(&config.ScriptPath, "script", "", "Path to a JSON file containing the action array ('-' for stdin)")
	flag.StringVar(&config.StorageDir, "storage-dir", "", "Browser profile directory (default from config)")
	flag.BoolVar(&config.Headless, "headless", true, "Run the browser without a visible window")
	flag.BoolVar(&config.KeepOpen, "keep-open", false, "Leave the browser session running after the script finishes")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to the configuration file (default ~/.qapilot/config.json)")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "qapilot - browser automation runner for QA scripts\n\n")
		fmt.Fprintf(os.Stderr, "Usage: qapilot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s   Path to a pre-installed Chromium/Chrome binary\n", browser.BrowserPathEnv)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qapilot -url http://localhost:3000/login -script login_test.json\n")
		fmt.Fprintf(os.Stderr, "  cat actions.json | qapilot -url http://localhost:3000 -script -\n")
		fmt.Fprintf(os.Stderr, "  qapilot -url http://localhost:3000 -script smoke.json -headless=false -keep-open\n")
	}

	flag.Parse()
	return config
}

// validate checks that the configuration is complete.
func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("a page URL is required (use -url)")
	}
	if c.ScriptPath == "" {
		return fmt.Errorf("an action script is required (use -script)")
	}
	return nil
}

// run executes the QA script and prints the per-action report.
func run(ctx context.Context, config *Config) error {
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	actions, err := loadScript(config.ScriptPath)
	if err != nil {
		return err
	}

	storageDir := config.StorageDir
	if storageDir == "" {
		if cfg := appconfig.GetBrowser(); cfg != nil {
			storageDir = cfg.GetStorageDir()
		}
	}
	waitSeconds := 3
	if cfg := appconfig.GetBrowser(); cfg != nil {
		waitSeconds = cfg.GetWaitSeconds()
	}

	manager := browser.NewManager()
	if !config.KeepOpen {
		defer func() {
			if err := manager.Quit(); err != nil {
				log.Printf("failed to close browser session: %v", err)
			}
		}()
	}

	dispatcher := interact.NewDispatcher(interact.DefaultElementTimeout)

	var report *interact.Report
	err = manager.WithSession(storageDir, config.Headless, func(s *browser.Session) error {
		if err := s.Navigate(config.URL); err != nil {
			return err
		}
		if err := s.WaitReady(float64(waitSeconds) * 1000); err != nil {
			return err
		}
		report = dispatcher.Execute(ctx, s, s.Page.URL(), actions)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(report.String())
	fmt.Printf("Completed %d action(s) in %s\n", len(actions), report.Duration.Round(time.Millisecond))

	if report.HasFailures() {
		return fmt.Errorf("%d action(s) failed", len(report.Failures()))
	}
	return nil
}

// loadScript reads and parses the action array from a file or stdin.
func loadScript(path string) ([]interact.Action, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	actions, err := interact.ParseActions(data)
	if err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return actions, nil
}
