package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"listbatch/pkg/batch"
	"listbatch/pkg/imdb"
	"listbatch/pkg/parse"
)

// progressEvent pairs an outcome with its running counts for the renderer
type progressEvent struct {
	outcome batch.Outcome
	done    int
	total   int
}

// NewRunCmd creates the run command
func NewRunCmd(root *Root) *cobra.Command {
	var (
		listFlag  string
		inputGlob string
		delayMs   int
	)

	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Parse batch input and apply it against the remote list",
		Long: `Run parses the given input (files, an --input glob, or stdin) and adds
each item to the target list, one at a time and in input order. Items with a
description get a second mutation setting it; a description failure keeps the
added item in place. Ctrl-C cancels cooperatively: the item in flight
finishes and is reported, later items are never started.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			glob := inputGlob
			if glob == "" && len(args) == 0 {
				glob = root.Config.Input
			}

			raw, err := gatherInput(args, glob, cmd.InOrStdin())
			if err != nil {
				return errors.Errorf("gathering input: %w", err)
			}

			b := parse.Parse(raw)
			if b.Len() == 0 {
				root.Console.Warning("no valid items found in input")
				return nil
			}

			listID := listFlag
			if listID == "" {
				listID = root.Config.List
			}

			delay := root.Config.DelayPolicy()
			if cmd.Flags().Changed("delay-ms") {
				delay = batch.DelayPolicy{
					Enabled:  delayMs > 0,
					Interval: time.Duration(delayMs) * time.Millisecond,
				}
			}

			client := imdb.New(
				imdb.WithEndpoint(root.Config.Endpoint),
				imdb.WithHTTPClient(sessionClient(ctx, root.Config.TokenEnv)),
			)
			runner := batch.NewRunner(client)

			// Ctrl-C requests cooperative cancellation: a monotonic flag the
			// runner polls, never an abort of the in-flight call
			var cancelled atomic.Bool
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			defer signal.Stop(sig)
			go func() {
				<-sig
				cancelled.Store(true)
				pterm.Warning.Println("cancelling, finishing the item in flight")
			}()

			root.Console.StartBatch(ctx, listID, b.Len())

			// The renderer runs off the orchestrator's critical path so slow
			// terminals do not stretch the inter-item timing
			events := make(chan progressEvent, b.Len())
			var report *batch.Report

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer close(events)
				var runErr error
				report, runErr = runner.Run(gctx, b, listID, batch.Options{
					Delay:       delay,
					IsCancelled: cancelled.Load,
					OnProgress: func(o batch.Outcome, done, total int) {
						events <- progressEvent{outcome: o, done: done, total: total}
					},
				})
				return runErr
			})
			g.Go(func() error {
				for ev := range events {
					root.Console.LogOutcome(ctx, ev.outcome, ev.done, ev.total)
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return errors.Errorf("running batch: %w", err)
			}

			root.Console.Summary(ctx, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listFlag, "list", "l", "", "target list id (overrides config)")
	cmd.Flags().StringVarP(&inputGlob, "input", "i", "", "glob pattern for batch input files")
	cmd.Flags().IntVar(&delayMs, "delay-ms", 0, "delay between items in milliseconds (0 disables)")

	return cmd
}

// sessionClient builds the transport carrying the ambient session credential.
// With no token in the environment the default client is used and the remote
// service decides what an anonymous caller may do.
func sessionClient(ctx context.Context, tokenEnv string) *http.Client {
	token := os.Getenv(tokenEnv)
	if token == "" {
		zerolog.Ctx(ctx).Debug().Str("env", tokenEnv).Msg("no session token in environment")
		return http.DefaultClient
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}
