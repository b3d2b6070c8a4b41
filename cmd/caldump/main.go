// Command caldump exports upcoming Google Calendar events as a
// calendar-export JSON file, the input format of agenda and json2ics.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/perbu/hobbes/config"
	"github.com/perbu/hobbes/events"
	"github.com/perbu/hobbes/gcal"
)

const defaultDays = 7

func run(args []string) error {
	_ = godotenv.Load()

	if len(args) < 1 || len(args) > 2 || args[0] == "help" {
		fmt.Fprintln(os.Stderr, "Usage: caldump <output.json> [days]")
		os.Exit(2)
	}
	outPath := args[0]

	days := defaultDays
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 1 {
			return fmt.Errorf("days must be a positive number, got %q", args[1])
		}
		days = parsed
	}

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

	gcalService, err := gcal.NewGCalService(loader)
	if err != nil {
		return fmt.Errorf("gcal.NewGCalService: %w", err)
	}

	from, _ := events.DayWindow(time.Now().In(loc), loc)
	dumped, err := gcal.DumpEvents(gcalService, configData.Calendar(), from, days)
	if err != nil {
		return fmt.Errorf("gcal.DumpEvents: %w", err)
	}

	payload, err := json.MarshalIndent(events.File{Events: dumped}, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	if err := os.WriteFile(outPath, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s): %w", outPath, err)
	}

	fmt.Printf("OK: wrote %d events to %s\n", len(dumped), outPath)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
