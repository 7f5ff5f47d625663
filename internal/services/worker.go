package services

import (
	"context"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
)

// BatchResult is the outcome for one file, in input order.
type BatchResult struct {
	Path       string
	Assessment *CandidateAssessment
	Err        error
}

type BatchScorer interface {
	ScoreFiles(ctx context.Context, paths []string, opts predictor.Options) []BatchResult
}

type batchJob struct {
	index int
	path  string
}

type batchScorer struct {
	candidates  CandidateService
	concurrency int
	log         *zap.Logger
}

func NewBatchScorer(candidates CandidateService, concurrency int, log *zap.Logger) BatchScorer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &batchScorer{
		candidates:  candidates,
		concurrency: concurrency,
		log:         logger.WithFields(log),
	}
}

// ScoreFiles implements BatchScorer. Files not started before ctx is done
// report ctx.Err().
func (b *batchScorer) ScoreFiles(ctx context.Context, paths []string, opts predictor.Options) []BatchResult {
	results := make([]BatchResult, len(paths))
	jobQueue := make(chan batchJob)

	workers := min(b.concurrency, max(len(paths), 1))
	b.log.Debug("starting batch scorer", zap.Int("workers", workers), zap.Int("files", len(paths)))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go b.processJobs(ctx, i+1, jobQueue, results, opts, &wg)
	}

	for i, path := range paths {
		results[i].Path = path
		select {
		case jobQueue <- batchJob{index: i, path: path}:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
		}
	}
	close(jobQueue)
	wg.Wait()

	return results
}

func (b *batchScorer) processJobs(
	ctx context.Context,
	workerID int,
	jobQueue <-chan batchJob,
	results []BatchResult,
	opts predictor.Options,
	wg *sync.WaitGroup,
) {
	defer wg.Done()
	log := b.log.With(zap.Int("worker_id", workerID))

	for job := range jobQueue {
		if err := ctx.Err(); err != nil {
			results[job.index].Err = err
			continue
		}

		log.Debug("scoring resume", zap.String(logger.FieldFilename, job.path))
		assessment, err := b.candidates.ScoreFile(ctx, job.path, filepath.Base(job.path), opts)
		if err != nil {
			log.Warn("failed to score resume", zap.String(logger.FieldFilename, job.path), zap.Error(err))
			results[job.index].Err = err
			continue
		}
		results[job.index].Assessment = assessment
	}
}
