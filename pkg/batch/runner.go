// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"listbatch/pkg/parse"
)

// 🏃 Runner executes batches against a Mutator
type Runner struct {
	mutator Mutator
	sleep   func(time.Duration) // injectable for tests
}

// 🏭 NewRunner creates a new runner
func NewRunner(m Mutator) *Runner {
	return &Runner{
		mutator: m,
		sleep:   time.Sleep,
	}
}

// 🏃 Run processes the batch strictly sequentially in input order: item N+1
// never starts before both of item N's mutation calls have resolved.
//
// A missing listID fails the whole run with ErrNoList before any item is
// attempted. Item-level failures are converted into failed outcomes and never
// abort the batch; no item is retried and nothing already applied is rolled
// back. Cancellation is cooperative: the flag is polled before each item and
// before each inter-item delay, and an in-flight mutation always runs to
// completion, its outcome recorded.
func (r *Runner) Run(ctx context.Context, b parse.Batch, listID string, opts Options) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(listID) == "" {
		return nil, errors.Errorf("resolving target list: %w", ErrNoList)
	}

	cancelled := opts.IsCancelled
	if cancelled == nil {
		cancelled = func() bool { return ctx.Err() != nil }
	}

	total := b.Len()
	report := &Report{}

	logger.Info().Str("list", listID).Int("total", total).Msg("starting batch")

	for i, item := range b.Items {
		if cancelled() {
			report.Cancelled = true
			break
		}

		outcome := r.processItem(ctx, listID, item, i)
		report.add(outcome)

		if opts.OnProgress != nil {
			opts.OnProgress(outcome, len(report.Outcomes), total)
		}

		if opts.Delay.Enabled && i < total-1 {
			if cancelled() {
				report.Cancelled = true
				break
			}
			r.sleep(opts.Delay.Interval)
		}
	}

	logger.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Bool("cancelled", report.Cancelled).
		Msg("batch finished")

	return report, nil
}

// 📄 processItem applies the two-step mutation for one item. The add is the
// primary operation: if it succeeds, a later annotation failure does not flip
// the outcome — it is recorded on the outcome as a warning instead.
func (r *Runner) processItem(ctx context.Context, listID string, item parse.Item, index int) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("id", item.ID).Int("index", index).Logger()

	outcome := Outcome{
		ID:           item.ID,
		Index:        index,
		DisplayLabel: item.ID,
	}

	added, err := r.mutator.AddItem(ctx, listID, item.ID)
	if err != nil {
		outcome.FailureReason = err.Error()
		logger.Warn().Err(err).Msg("add failed")
		return outcome
	}

	outcome.Succeeded = true
	if added.DisplayLabel != "" {
		outcome.DisplayLabel = added.DisplayLabel
	}

	if item.Annotation == "" {
		logger.Debug().Str("label", outcome.DisplayLabel).Msg("item added")
		return outcome
	}

	if added.ListItemID == "" {
		// Nothing to attach the annotation to; the add itself stands
		logger.Debug().Msg("no list item id in response, skipping annotation")
		return outcome
	}

	if err := r.mutator.SetAnnotation(ctx, listID, added.ListItemID, item.Annotation); err != nil {
		outcome.FailureReason = fmt.Sprintf("annotation not set: %s", err.Error())
		logger.Warn().Err(err).Msg("annotation failed, item kept")
		return outcome
	}

	logger.Debug().Str("label", outcome.DisplayLabel).Msg("item added with annotation")
	return outcome
}
