// Package usecase drives PDF exports. An export is an asynchronous job:
// requested over HTTP, processed in the background, observable through a
// status record while in flight and downloadable once completed. Export
// only ever reads the document.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"
	"resume-builder/internal/store"
)

// DefaultFilename is used when the caller does not name the output file.
const DefaultFilename = "resume.pdf"

// Capturer takes a full-page screenshot of rendered HTML. Implemented by
// the chromedp capturer; tests substitute a fake.
type Capturer interface {
	CapturePNG(ctx context.Context, html string, widthPx int) ([]byte, error)
}

// JobsRepo persists export job records. A nil repo degrades to in-memory
// tracking; jobs are then forgotten on restart.
type JobsRepo interface {
	SaveJob(ctx context.Context, j *domain.ExportJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error)
}

type Exporter struct {
	store     *store.Store
	jobs      JobsRepo
	capturer  Capturer
	outputDir string

	mu   sync.Mutex
	byID map[uuid.UUID]*domain.ExportJob
}

func NewExporter(st *store.Store, jobs JobsRepo, capturer Capturer, outputDir string) *Exporter {
	return &Exporter{
		store:     st,
		jobs:      jobs,
		capturer:  capturer,
		outputDir: outputDir,
		byID:      map[uuid.UUID]*domain.ExportJob{},
	}
}

// Start registers a pending export job and processes it in the background.
func (e *Exporter) Start(ctx context.Context, strategy, filename string) (*domain.ExportJob, error) {
	switch strategy {
	case "":
		strategy = domain.StrategyStructured
	case domain.StrategyStructured, domain.StrategyRaster:
	default:
		return nil, fmt.Errorf("unknown export strategy %q", strategy)
	}
	if filename == "" {
		filename = DefaultFilename
	}

	now := time.Now()
	job := &domain.ExportJob{
		ID:        uuid.New(),
		Strategy:  strategy,
		Filename:  filename,
		Status:    domain.StatusPending,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	e.mu.Lock()
	e.byID[job.ID] = job
	e.mu.Unlock()
	e.saveJob(ctx, job)

	// Snapshot before the worker can start flipping the status.
	accepted := snapshotJob(job)

	go func(id uuid.UUID) {
		if err := e.process(context.Background(), id); err != nil {
			log.Printf("export job %s failed: %v", id, err)
		}
	}(job.ID)

	return accepted, nil
}

// Job returns the current state of a job, or nil if it is unknown. The
// snapshot is taken under the lock: the worker goroutine mutates the shared
// record while a job is in flight.
func (e *Exporter) Job(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	e.mu.Lock()
	job, ok := e.byID[id]
	var cp *domain.ExportJob
	if ok {
		cp = snapshotJob(job)
	}
	e.mu.Unlock()
	if ok {
		return cp, nil
	}
	if e.jobs == nil {
		return nil, nil
	}
	return e.jobs.GetJob(ctx, id)
}

// ExportTo runs one synchronous export straight to w, bypassing the job
// machinery. Used by the CLI export command.
func (e *Exporter) ExportTo(ctx context.Context, w io.Writer, strategy string) error {
	layout := render.BuildLayout(e.store.Resume())
	switch strategy {
	case "", domain.StrategyStructured:
		return render.WritePDF(w, layout)
	case domain.StrategyRaster:
		return e.rasterize(ctx, w, layout)
	default:
		return fmt.Errorf("unknown export strategy %q", strategy)
	}
}

func (e *Exporter) process(ctx context.Context, id uuid.UUID) error {
	e.setStatus(ctx, id, domain.StatusProcessing, "")

	e.mu.Lock()
	job := e.byID[id]
	strategy, filename := job.Strategy, job.Filename
	e.mu.Unlock()

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		e.setStatus(ctx, id, domain.StatusFailed, err.Error())
		return err
	}
	outPath := filepath.Join(e.outputDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		e.setStatus(ctx, id, domain.StatusFailed, err.Error())
		return err
	}

	exportErr := e.ExportTo(ctx, f, strategy)
	if cerr := f.Close(); exportErr == nil {
		exportErr = cerr
	}
	if exportErr != nil {
		// Leave no partial file behind; the document itself was never touched.
		_ = os.Remove(outPath)
		e.setStatus(ctx, id, domain.StatusFailed, exportErr.Error())
		return exportErr
	}

	info, _ := os.Stat(outPath)
	e.mu.Lock()
	job.OutputPath = outPath
	if info != nil {
		job.Metadata["file_size"] = info.Size()
	}
	e.mu.Unlock()
	e.setStatus(ctx, id, domain.StatusCompleted, "")
	return nil
}

func (e *Exporter) rasterize(ctx context.Context, w io.Writer, layout render.Layout) error {
	if e.capturer == nil {
		return fmt.Errorf("raster export unavailable: no capturer configured")
	}
	html, err := render.HTML(layout)
	if err != nil {
		return fmt.Errorf("render preview html: %w", err)
	}
	capture, err := e.capturer.CapturePNG(ctx, html, render.CaptureWidthPx)
	if err != nil {
		return fmt.Errorf("capture preview: %w", err)
	}
	return render.WriteRasterPDF(w, capture)
}

func (e *Exporter) setStatus(ctx context.Context, id uuid.UUID, status, errMsg string) {
	e.mu.Lock()
	job, ok := e.byID[id]
	if ok {
		job.Status = status
		job.Error = errMsg
		job.UpdatedAt = time.Now()
	}
	e.mu.Unlock()
	if ok {
		e.saveJob(ctx, job)
	}
}

func (e *Exporter) saveJob(ctx context.Context, job *domain.ExportJob) {
	if e.jobs == nil {
		return
	}
	e.mu.Lock()
	cp := snapshotJob(job)
	e.mu.Unlock()
	if err := e.jobs.SaveJob(ctx, cp); err != nil {
		log.Printf("warning: failed to save export job: %v", err)
	}
}

func snapshotJob(j *domain.ExportJob) *domain.ExportJob {
	cp := *j
	cp.Metadata = map[string]interface{}{}
	for k, v := range j.Metadata {
		cp.Metadata[k] = v
	}
	return &cp
}
