package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/miosa/osa-gallery/client"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds simultaneous loads in Preload.
const DefaultConcurrency = 4

// ErrNoClient is returned for a remote reference when no HTTP client is set.
var ErrNoClient = errors.New("content: remote reference without http client")

// Fetcher loads the bytes a reference names.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Loader reads local files relative to Dir and remote references through
// Client.
type Loader struct {
	Dir    string
	Client *client.Client
}

func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if client.IsRemote(ref) {
		if l.Client == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoClient, ref)
		}
		res, err := l.Client.Fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	return os.ReadFile(path)
}

type loadJob struct {
	id, url, image string
}

// Preload fetches every block's URL body and image with at most concurrency
// loads in flight, and returns once all have finished. A failed load is
// recorded on its block and does not stop the others; the joined errors are
// returned.
func Preload(ctx context.Context, s *Store, f Fetcher, concurrency int, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var jobs []loadJob
	for _, id := range s.IDs() {
		b := s.Block(id)
		if b.URL == "" && b.Image == "" {
			continue
		}
		jobs = append(jobs, loadJob{id: id, url: b.URL, image: b.Image})
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	fail := func(id string, err error) {
		log.Warn("content load failed", zap.String("source", id), zap.Error(err))
		s.update(id, func(b *Block) { b.Err = errors.Join(b.Err, err) })
		mu.Lock()
		errs = append(errs, fmt.Errorf("source %s: %w", id, err))
		mu.Unlock()
	}

	g.SetLimit(concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			if job.url != "" {
				data, err := f.Fetch(ctx, job.url)
				if err != nil {
					fail(job.id, err)
				} else {
					s.update(job.id, func(b *Block) { b.Body = string(data) })
				}
			}
			if job.image != "" {
				data, err := f.Fetch(ctx, job.image)
				if err != nil {
					fail(job.id, err)
				} else {
					s.update(job.id, func(b *Block) { b.ImageData = data })
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Debug("content preloaded", zap.Int("jobs", len(jobs)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}
