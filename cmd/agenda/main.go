// Command agenda prints the events of a calendar-export JSON file that
// overlap a given local day.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/perbu/hobbes"
	"github.com/perbu/hobbes/agenda"
	"github.com/perbu/hobbes/config"
	"github.com/perbu/hobbes/dateparse"
	"github.com/perbu/hobbes/events"
)

func usage() {
	fmt.Println("agenda - day agenda for calendar-export JSON, version", hobbes.Version())
	fmt.Println("Usage: agenda <events.json> [today|tomorrow|YYYY-MM-DD]")
}

func run(args []string) error {
	_ = godotenv.Load()

	if len(args) < 1 || args[0] == "help" {
		usage()
		os.Exit(2)
	}

	jsonPath := args[0]
	dateToken := ""
	if len(args) >= 2 {
		dateToken = args[1]
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

	parser := dateparse.New(loc)
	targetDate, err := parser.Resolve(dateToken)
	if err != nil {
		return err
	}
	winStart, winEnd := events.DayWindow(targetDate, loc)

	evts, err := events.Load(jsonPath)
	if err != nil {
		return fmt.Errorf("events.Load: %w", err)
	}

	matches, err := agenda.Filter(evts, winStart, winEnd, loc)
	if err != nil {
		return fmt.Errorf("agenda.Filter: %w", err)
	}
	agenda.Render(os.Stdout, targetDate, matches)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, dateparse.ErrInvalidDate) {
			fmt.Fprintln(os.Stderr, err)
			usage()
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
