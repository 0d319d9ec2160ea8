// Command configcheck validates a Compel Classics pipeline configuration
// file before any pipeline stage runs. It prints every finding (missing
// required fields, type mismatches, unknown keys) one per line, then exits
// 0 when the configuration is execution-ready and 1 when it is not.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sean-roth/compel-classics-pipeline/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	lenient := flag.Bool("lenient", false, "treat type mismatches as warnings instead of errors")
	quiet := flag.Bool("quiet", false, "suppress the success summary")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	doc, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "configcheck: config file %q not found; copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "configcheck: %v\n", err)
		}
		return 2
	}

	validator := config.NewValidator(nil)
	res := validator.Validate(doc)

	for _, f := range res.Findings {
		fmt.Println(f)
	}

	ready := res.Valid() && (*lenient || res.Clean())
	if !ready {
		return 1
	}

	fmt.Println("✓ configuration valid")
	if !*quiet {
		printSummary(doc)
	}
	return 0
}

// printSummary gives the operator a one-glance view of what the pipeline
// will run with. Secret fields render redacted via their types.
func printSummary(doc *config.Document) {
	cfg := doc.Config()
	fmt.Printf("  ai provider     : %s / %s\n", cfg.AIProvider.Provider, cfg.AIProvider.Model)
	fmt.Printf("  speech provider : %s (%d voice(s))\n", cfg.SpeechProvider.Provider, len(cfg.SpeechProvider.Voices))
	fmt.Printf("  image backend   : %s @ %s\n", cfg.ImageGen.Provider, cfg.ImageGen.APIURL)
	fmt.Printf("  local archive   : %s\n", cfg.Storage.LocalArchivePath)
	if cfg.Storage.CloudStorage.Bucket != "" {
		fmt.Printf("  cloud mirror    : gs://%s\n", cfg.Storage.CloudStorage.Bucket)
	}
	if cfg.Database.Host != "" {
		fmt.Printf("  web database    : %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}
}
