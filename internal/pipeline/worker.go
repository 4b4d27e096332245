package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"tocsmith/internal/source"
	"tocsmith/internal/toc"
)

// Worker processes a single TOC build job.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process runs the full build for a job: extract headings, then build the
// numbered outline and TOC tree.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	src, err := source.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	heads, err := src.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extract failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Build
	job.SetStatus(StatusBuilding, "building")
	res, err := toc.Build(heads, job.Options())
	if err != nil {
		log.Error("build failed", "error", err)
		job.AddError(fmt.Sprintf("build: %s", err))
		job.SetStatus(StatusFailed, "building")
		return
	}
	if res == nil {
		log.Info("no includable headings")
	} else {
		log.Info("built toc", "headings", len(res.Entries))
	}

	job.SetResult(res)
	job.SetStatus(StatusCompleted, "done")
}
