// control-tower/internal/ingest/pipeline.go

// Package ingest pulls raw dataset files from object storage into the local
// dataset directory using a bounded worker pool.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexgenlogistics/control-tower/internal/storage"
)

type Pipeline struct {
	store   storage.ObjectStorage
	dataDir string
	workers int
}

func NewPipeline(store storage.ObjectStorage, dataDir string, workers int) *Pipeline {
	if workers < 1 {
		workers = 4
	}
	return &Pipeline{
		store:   store,
		dataDir: dataDir,
		workers: workers,
	}
}

// Result summarizes one pipeline run.
type Result struct {
	Downloaded int           `json:"downloaded"`
	Skipped    int           `json:"skipped"`
	Duration   time.Duration `json:"duration"`
}

// Run lists every object under prefix and downloads the CSV ones into the
// dataset directory. Objects are processed by a fixed pool of workers; the
// first error cancels the remaining downloads.
func (p *Pipeline) Run(ctx context.Context, prefix string) (*Result, error) {
	start := time.Now()

	objects, err := p.store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list dataset objects: %w", err)
	}

	jobs := make(chan storage.ObjectInfo, len(objects))
	errChan := make(chan error, p.workers)
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		downloaded int
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for object := range jobs {
				if ctx.Err() != nil {
					return
				}
				destPath := filepath.Join(p.dataDir, filepath.Base(object.Key))
				if err := p.store.DownloadObject(ctx, object.Key, destPath); err != nil {
					log.Error().Err(err).Int("worker", workerID).Str("key", object.Key).
						Msg("dataset object download failed")
					select {
					case errChan <- err:
					default:
					}
					cancel()
					return
				}
				mu.Lock()
				downloaded++
				mu.Unlock()
				log.Info().Int("worker", workerID).Str("key", object.Key).
					Msg("dataset object downloaded")
			}
		}(i)
	}

	skipped := 0
	for _, object := range objects {
		if !strings.HasSuffix(strings.ToLower(object.Key), ".csv") {
			skipped++
			continue
		}
		jobs <- object
	}
	close(jobs)

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("ingest run failed: %w", err)
	}

	return &Result{
		Downloaded: downloaded,
		Skipped:    skipped,
		Duration:   time.Since(start),
	}, nil
}
