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

// Package batch drives the per-item mutations for one submitted batch:
// strictly sequential processing in input order, an optional fixed delay
// between items, cooperative cancellation via a polled flag, and per-item
// failure isolation. The remote service is a shared, rate-limited resource;
// one logical worker touching it at a time is the correctness guarantee
// against burst throttling and same-identifier races.
package batch

import (
	"context"
	"time"

	"gitlab.com/tozd/go/errors"

	"listbatch/pkg/imdb"
)

// ❌ ErrNoList is returned by Run when no list identifier was resolved. It is
// fatal to the whole run: no item is attempted and no report is produced.
var ErrNoList = errors.Base("no list id resolved")

// 🎯 Mutator is the remote-call contract the runner drives. imdb.Client
// satisfies it; tests substitute a scripted fake.
type Mutator interface {
	AddItem(ctx context.Context, listID, itemID string) (imdb.AddResult, error)
	SetAnnotation(ctx context.Context, listID, listItemID, text string) error
}

// ⏲️ DelayPolicy configures the fixed inter-item delay. It is read once per
// run and applied between items, never after the last one.
type DelayPolicy struct {
	Enabled  bool          // Whether to pause between items
	Interval time.Duration // How long to pause
}

// 📄 Outcome is the per-item result record
type Outcome struct {
	ID            string // Item identifier as submitted
	Index         int    // 0-based position in the batch
	Succeeded     bool   // Whether the add was applied
	FailureReason string // Normalized error message, or an annotation warning on a qualified success
	DisplayLabel  string // Remote-confirmed title text, falling back to ID
}

// 📊 Report aggregates one run. Constructed once at the end of orchestration;
// callers own it read-only.
type Report struct {
	Outcomes  []Outcome // One per processed item, in input order
	Succeeded int       // Count of successful outcomes
	Failed    int       // Count of failed outcomes
	Cancelled bool      // Whether the run stopped before exhausting the batch
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Succeeded {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// 📣 ProgressFunc receives each outcome as it is produced, with running
// counts. Callbacks arrive in batch order, one per processed item, with no
// reordering or batching.
type ProgressFunc func(outcome Outcome, done, total int)

// 🔧 Options configures one run
type Options struct {
	// Delay is the inter-item delay policy
	Delay DelayPolicy
	// IsCancelled is polled before each item and before each inter-item
	// delay. Once it reports true no further item is started; the item in
	// flight runs to completion and its outcome is still reported. When nil,
	// cancellation follows ctx.
	IsCancelled func() bool
	// OnProgress receives per-item outcomes as they are produced. Optional.
	OnProgress ProgressFunc
}
