package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// DefaultSize is used when the configured batch size is not positive
const DefaultSize = 6

// Processor runs work over items in fixed-size batches. Every item in a batch
// runs concurrently and a batch settles completely before the next one starts.
type Processor[T any] struct {
	config     *config.BatchConfig
	statusChan chan *models.BatchProgress
	mu         sync.Mutex
}

// NewProcessor creates a new batch processor
func NewProcessor[T any](cfg *config.BatchConfig) *Processor[T] {
	if cfg == nil {
		cfg = &config.BatchConfig{Size: DefaultSize}
	}
	return &Processor[T]{
		config:     cfg,
		statusChan: make(chan *models.BatchProgress, 1),
	}
}

// ProcessItems calls processFn once per item. Failures do not stop the run;
// they are joined into the returned error. Cancelling ctx stops before the
// next batch.
func (p *Processor[T]) ProcessItems(ctx context.Context, items []T, processFn func(ctx context.Context, index int, item T) error) error {
	totalItems := len(items)
	if totalItems == 0 {
		return nil
	}

	batchSize := p.config.Size
	if batchSize <= 0 {
		batchSize = DefaultSize
	}

	now := time.Now()
	progress := models.BatchProgress{
		TotalBatches:   (totalItems + batchSize - 1) / batchSize,
		TotalItems:     totalItems,
		StartTime:      now,
		LastUpdateTime: now,
	}
	p.updateProgress(progress)

	var (
		mu   sync.Mutex
		errs []error
	)

	for start := 0; start < totalItems; start += batchSize {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if start > 0 && p.config.Delay > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			case <-time.After(p.config.Delay):
			}
		}

		end := start + batchSize
		if end > totalItems {
			end = totalItems
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				if err := processFn(ctx, index, items[index]); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		progress.ProcessedBatches++
		progress.ProcessedItems += end - start
		progress.LastUpdateTime = time.Now()
		p.updateProgress(progress)
	}

	return errors.Join(errs...)
}

// GetProgress returns the channel carrying the latest progress value
func (p *Processor[T]) GetProgress() <-chan *models.BatchProgress {
	return p.statusChan
}

// updateProgress replaces any unread progress with a copy of the current one
func (p *Processor[T]) updateProgress(progress models.BatchProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case p.statusChan <- &progress:
	default:
		// Channel is full, replace the value
		select {
		case <-p.statusChan:
		default:
		}
		p.statusChan <- &progress
	}
}
