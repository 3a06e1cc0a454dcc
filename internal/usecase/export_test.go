package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/store"
)

type fakeCapturer struct {
	err error
}

func (f *fakeCapturer) CapturePNG(_ context.Context, _ string, widthPx int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, 2000))
	for y := 0; y < 2000; y++ {
		for x := 0; x < widthPx; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func populatedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(context.Background(), nil)
	name := "Jane Doe"
	s.UpdateContactInfo(context.Background(), model.ContactInfoPatch{FullName: &name})
	s.AddExperience(context.Background(), model.Experience{
		ID: "e1", Company: "Acme", Location: "Remote", Position: "Engineer",
		StartDate: "01/2020", Current: true, Accomplishments: []string{"Shipped X"},
	})
	return s
}

func waitForTerminal(t *testing.T, ex *Exporter, id uuid.UUID) *domain.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := ex.Job(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, job)
		if job.Status == domain.StatusCompleted || job.Status == domain.StatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("export job did not finish in time")
	return nil
}

func TestStart_StructuredExportCompletes(t *testing.T) {
	outDir := t.TempDir()
	ex := NewExporter(populatedStore(t), nil, nil, outDir)

	job, err := ex.Start(context.Background(), domain.StrategyStructured, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, job.Status)
	assert.Equal(t, DefaultFilename, job.Filename)

	done := waitForTerminal(t, ex, job.ID)
	require.Equal(t, domain.StatusCompleted, done.Status)

	out, err := os.ReadFile(filepath.Join(outDir, DefaultFilename))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestStart_RasterExportCompletes(t *testing.T) {
	outDir := t.TempDir()
	ex := NewExporter(populatedStore(t), nil, &fakeCapturer{}, outDir)

	job, err := ex.Start(context.Background(), domain.StrategyRaster, "raster.pdf")
	require.NoError(t, err)

	done := waitForTerminal(t, ex, job.ID)
	require.Equal(t, domain.StatusCompleted, done.Status)
	assert.Equal(t, filepath.Join(outDir, "raster.pdf"), done.OutputPath)
}

func TestStart_UnknownStrategyRejected(t *testing.T) {
	ex := NewExporter(populatedStore(t), nil, nil, t.TempDir())

	_, err := ex.Start(context.Background(), "fancy", "")
	require.Error(t, err)
}

func TestStart_CaptureFailureMarksJobFailed(t *testing.T) {
	outDir := t.TempDir()
	ex := NewExporter(populatedStore(t), nil, &fakeCapturer{err: errors.New("chrome went away")}, outDir)

	job, err := ex.Start(context.Background(), domain.StrategyRaster, "broken.pdf")
	require.NoError(t, err)

	done := waitForTerminal(t, ex, job.ID)
	assert.Equal(t, domain.StatusFailed, done.Status)
	assert.Contains(t, done.Error, "chrome went away")

	// no partial file left behind
	_, statErr := os.Stat(filepath.Join(outDir, "broken.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestJob_ConcurrentPollingDuringExport(t *testing.T) {
	// Polling a job while the worker flips its status must read a
	// consistent snapshot; the race detector flags any unlocked access to
	// the shared record.
	ex := NewExporter(populatedStore(t), nil, &fakeCapturer{}, t.TempDir())

	job, err := ex.Start(context.Background(), domain.StrategyRaster, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			got, err := ex.Job(context.Background(), job.ID)
			if err != nil || got == nil {
				return
			}
			if got.Status == domain.StatusCompleted || got.Status == domain.StatusFailed {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	final := waitForTerminal(t, ex, job.ID)
	<-done
	assert.Equal(t, domain.StatusCompleted, final.Status)
}

func TestExport_DoesNotMutateDocument(t *testing.T) {
	st := populatedStore(t)
	before := st.Resume()

	ex := NewExporter(st, nil, nil, t.TempDir())
	job, err := ex.Start(context.Background(), "", "")
	require.NoError(t, err)
	waitForTerminal(t, ex, job.ID)

	assert.Equal(t, before, st.Resume())
}

func TestExportTo_Synchronous(t *testing.T) {
	ex := NewExporter(populatedStore(t), nil, nil, t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, ex.ExportTo(context.Background(), &buf, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestJob_UnknownIDReturnsNil(t *testing.T) {
	ex := NewExporter(populatedStore(t), nil, nil, t.TempDir())

	job, err := ex.Job(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, job)
}
