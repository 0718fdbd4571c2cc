// ABOUTME: Non-interactive modes for episode review
// ABOUTME: Implements the -list report and -batch-confirm bulk submission

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"ad-review/journal"
	"ad-review/pool"
	"ad-review/review"
)

const batchWorkers = 4

// RunList prints every detected candidate for an episode, marking the
// ones the journal already has a correction for
func RunList(opts RunOptions) error {
	rc, err := InitializeReview(opts)
	if err != nil {
		return err
	}
	defer rc.Close()

	episode := rc.Episode

	fmt.Printf("%s / %s", episode.PodcastSlug, episode.EpisodeID)
	if episode.Title != "" {
		fmt.Printf(" - %s", episode.Title)
	}
	fmt.Println()

	if len(episode.Candidates) == 0 {
		fmt.Println("No ad candidates in this episode")

		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tStart\tEnd\tConf\tStage\tSponsor\tReviewed"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	for i, c := range episode.Candidates {
		mark := ""
		if rc.Reviewed[journal.BoundsKey(c.Start, c.End)] {
			mark = "yes"
		}

		if _, err := fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.0f%%\t%s\t%s\t%s\n",
			i+1,
			c.Start,
			c.End,
			c.Confidence*100,
			c.Stage,
			truncate(c.Sponsor, 20),
			mark,
		); err != nil {
			log.Printf("Warning: failed to write candidate %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	return nil
}

// RunBatchConfirm submits a confirm correction for every unreviewed
// candidate at or above the confidence threshold
func RunBatchConfirm(opts RunOptions) error {
	rc, err := InitializeReview(opts)
	if err != nil {
		return err
	}
	defer rc.Close()

	episode := rc.Episode

	targets := batchTargets(episode.Candidates, rc.Reviewed, opts.MinConfidence)
	if len(targets) == 0 {
		fmt.Println("Nothing to confirm: no unreviewed candidates at or above the threshold")

		return nil
	}

	fmt.Printf("Confirming %d of %d candidates (confidence >= %.0f%%)\n",
		len(targets), len(episode.Candidates), opts.MinConfidence*100)

	timeout := time.Duration(rc.Config.SubmitTimeoutMS) * time.Millisecond

	workers := pool.NewWorkerPool(batchWorkers, len(targets))
	defer workers.Close()

	for _, candidate := range targets {
		corr := review.Correction{
			Type:     review.CorrectionConfirm,
			Original: candidate,
		}

		workers.Submit(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := rc.Submitter.Submit(ctx, episode.PodcastSlug, episode.EpisodeID, corr); err != nil {
				return fmt.Errorf("candidate %.1f-%.1f: %w", corr.Original.Start, corr.Original.End, err)
			}

			return nil
		})
	}

	errs := workers.Wait()
	for _, err := range errs {
		log.Printf("Confirm failed: %v", err)
	}

	fmt.Printf("Confirmed %d candidates, %d failures\n", len(targets)-len(errs), len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d confirmations failed", len(errs), len(targets))
	}

	return nil
}

// batchTargets selects the unreviewed candidates that clear the
// confidence threshold
func batchTargets(candidates []review.Candidate, reviewed map[string]bool, minConfidence float64) []review.Candidate {
	var targets []review.Candidate

	for _, c := range candidates {
		if c.Confidence < minConfidence {
			continue
		}

		if reviewed[journal.BoundsKey(c.Start, c.End)] {
			continue
		}

		targets = append(targets, c)
	}

	return targets
}
