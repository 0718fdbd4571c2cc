// ABOUTME: Entry point for the ad-review application
// ABOUTME: Handles command-line parsing and routing to TUI, list, or batch modes

// Package main provides the entry point for ad-review, an interactive editor
// for correcting detected ad boundaries in podcast episodes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ad-review/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	list := flag.Bool("list", false, "print the episode's candidates and exit")
	batchConfirm := flag.Bool("batch-confirm", false, "confirm all unreviewed candidates above -min-confidence")
	minConfidence := flag.Float64("min-confidence", 0.9, "confidence threshold for -batch-confirm")
	offline := flag.Bool("offline", false, "journal corrections locally without contacting the API")
	seek := flag.Float64("seek", -1, "start at this playback position in seconds")
	journalPath := flag.String("journal", "", "journal database path (default: config dir)")
	noTouch := flag.Bool("no-touch", false, "disable touch gesture emulation for mouse input")
	debug := flag.Bool("debug", false, "enable debug logging to ad-review-debug.log")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: ad-review [flags] <episode.json>")
		fmt.Println("Example: ad-review daily-brief/ep-104.json")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	opts := RunOptions{
		EpisodePath:   args[0],
		Offline:       *offline,
		Seek:          *seek,
		MinConfidence: *minConfidence,
		DebugLog:      *debug,
		JournalPath:   *journalPath,
	}

	if *debug {
		if err := SetupDebugLog("ad-review-debug.log"); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	if *list {
		if err := RunList(opts); err != nil {
			log.Printf("List error: %v", err)

			return 1
		}

		return 0
	}

	if *batchConfirm {
		if err := RunBatchConfirm(opts); err != nil {
			log.Printf("Batch confirm error: %v", err)

			return 1
		}

		return 0
	}

	rc, err := InitializeReview(opts)
	if err != nil {
		log.Printf("Init error: %v", err)

		return 1
	}
	defer rc.Close()

	caps := tui.DefaultCapabilities()
	if *noTouch {
		caps.SupportsTouch = false
		caps.SupportsSwipe = false
	}

	tuiOpts := tui.Options{
		EpisodePath: opts.EpisodePath,
		InitialSeek: opts.Seek,
		Reviewed:    rc.Reviewed,
		Caps:        caps,
		DebugLog:    *debug,
	}

	deps := tui.Dependencies{
		Submitter:    rc.Submitter,
		Loader:       episodeLoader{},
		Logger:       debugLogger{},
		SharedConfig: rc.SharedConfig,
		ConfigPath:   rc.ConfigPath,
	}

	if err := tui.Run(tuiOpts, deps); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}
