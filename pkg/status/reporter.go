package status

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter provides user-friendly feedback about compile progress,
// mirrored into zerolog for debugging. Console output can be disabled for
// tests and non-interactive use.
type Reporter struct {
	log     zerolog.Logger
	console bool
}

// 🎯 NewReporter creates a reporter using the logger carried in ctx.
func NewReporter(ctx context.Context, console bool) *Reporter {
	return &Reporter{
		log:     *zerolog.Ctx(ctx),
		console: console,
	}
}

// 📝 FileCompiled reports one successful compile.
func (r *Reporter) FileCompiled(file, output string, d time.Duration) {
	msg := fmt.Sprintf("Compiled %s -> %s (%s)", file, output, d.Round(time.Microsecond))
	if r.console {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	}
	r.log.Info().Str("file", file).Str("output", output).Dur("dur", d).Msg("compiled")
}

// ❌ FileFailed reports one failed compile.
func (r *Reporter) FileFailed(file string, err error) {
	if r.console {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(fmt.Sprintf("Failed %s", file))
		pterm.Error.Println(err)
	}
	r.log.Warn().Str("file", file).Err(err).Msg("compile failed")
}

// 🚀 PassStarted reports the beginning of a compile pass.
func (r *Reporter) PassStarted(files int) {
	if r.console {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(fmt.Sprintf("Compiling %d files", files))
	}
	r.log.Info().Int("files", files).Msg("compile pass started")
}

// 🏁 PassFinished reports the aggregate result of a compile pass.
func (r *Reporter) PassFinished(succeeded, failed int, m Metrics) {
	msg := fmt.Sprintf("Processed %d files in %s. %d successful, %d failed.",
		m.FilesProcessed, m.TotalDuration.Round(time.Microsecond), succeeded, failed)
	if r.console {
		if failed > 0 {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		} else {
			pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
		}
	}
	r.log.Info().
		Int("processed", m.FilesProcessed).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Dur("total_dur", m.TotalDuration).
		Msg("compile pass finished")
}

// 👀 WatchStarted reports that the watch loop is running.
func (r *Reporter) WatchStarted(root string) {
	if r.console {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "👀"}).Println(
			color.New(color.Bold).Sprintf("Watching %s for changes", root))
	}
	r.log.Info().Str("root", root).Msg("watching for changes")
}
