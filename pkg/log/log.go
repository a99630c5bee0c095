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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"listbatch/pkg/batch"
)

// 🎨 Display configuration
const (
	itemIndent = 4  // spaces to indent item entries
	idWidth    = 12 // Base width for the item id
	labelWidth = 35 // Width for the display label
)

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatOutcome formats one item outcome for display
func (l *Logger) formatOutcome(o batch.Outcome, done, total int) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case o.Succeeded && o.FailureReason != "":
		symbol = '⚠'
		symbolColor = color.FgYellow
	case o.Succeeded:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '✗'
		symbolColor = color.FgRed
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", itemIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", idWidth, o.ID),
		fmt.Sprintf("%-*s", labelWidth, o.DisplayLabel),
		color.New(color.Faint).Sprintf("%d/%d", done, total))

	if o.FailureReason != "" {
		line += " " + color.New(color.FgYellow).Sprint(o.FailureReason)
	}

	return line
}

// 📝 LogOutcome logs one item outcome as it arrives
func (l *Logger) LogOutcome(ctx context.Context, o batch.Outcome, done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatOutcome(o, done, total))

	l.zlog.Info().
		Str("id", o.ID).
		Int("index", o.Index).
		Bool("succeeded", o.Succeeded).
		Str("label", o.DisplayLabel).
		Str("reason", o.FailureReason).
		Int("done", done).
		Int("total", total).
		Msg("item outcome")
}

// 📝 StartBatch logs the batch header
func (l *Logger) StartBatch(ctx context.Context, listID string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(listID),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d items", total))

	l.zlog.Info().
		Str("list", listID).
		Int("total", total).
		Msg("starting batch")
}

// 📝 Summary logs the final batch report
func (l *Logger) Summary(ctx context.Context, report *batch.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state := "completed"
	if report.Cancelled {
		state = "cancelled"
	}

	fmt.Fprintf(l.console, "\n%s %s %s %s\n",
		color.New(color.Bold).Sprint(state),
		color.New(color.FgGreen).Sprintf("%d succeeded", report.Succeeded),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgRed).Sprintf("%d failed", report.Failed))

	l.zlog.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Bool("cancelled", report.Cancelled).
		Msg("batch summary")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
