// Command json2ics converts a calendar-export JSON file into an
// RFC5545 ICS document.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/perbu/hobbes/config"
	"github.com/perbu/hobbes/events"
	"github.com/perbu/hobbes/ics"
)

func run(args []string) error {
	_ = godotenv.Load()

	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: json2ics <input.json> <output.ics>")
		os.Exit(2)
	}
	inPath, outPath := args[0], args[1]

	loader, err := config.NewFileLoader()
	if err != nil {
		return fmt.Errorf("config.NewFileLoader: %w", err)
	}
	configData, err := loader.LoadConfig()
	if err != nil {
		return fmt.Errorf("loader.LoadConfig: %w", err)
	}
	loc, err := configData.Location()
	if err != nil {
		return fmt.Errorf("resolving timezone: %w", err)
	}

	evts, err := events.Load(inPath)
	if err != nil {
		return fmt.Errorf("events.Load: %w", err)
	}

	doc, count, err := ics.Build(evts, loc, time.Now())
	if err != nil {
		return fmt.Errorf("ics.Build: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s): %w", outPath, err)
	}

	fmt.Printf("OK: wrote ICS to %s (events: %d)\n", outPath, count)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
