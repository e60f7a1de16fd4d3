package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"prompt-studio/internal/studio"
)

var (
	ErrNoImage     = errors.New("image generator returned no image")
	ErrSuperseded  = errors.New("preview superseded by a newer request")
	ErrRateLimited = errors.New("preview rate limit exceeded")
	ErrBusy        = errors.New("too many previews in progress")
	ErrDisabled    = errors.New("image preview is not configured")
)

// Generator renders one image for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (Image, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (Image, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (Image, error) {
	return f(ctx, req)
}

type Options struct {
	Generator Generator

	// RatePerMinute caps generator calls across all users; 0 disables it.
	RatePerMinute int
	Burst         int
	MaxConcurrent int
	TicketTTL     time.Duration

	Logger *slog.Logger
}

// Service runs previews against a Generator. Only the most recent request per
// key is delivered; older completions return ErrSuperseded.
type Service struct {
	gen     Generator
	limiter *rate.Limiter
	sem     *semaphore.Weighted
	tracker *Tracker
	logger  *slog.Logger
}

func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 2
	}

	var limiter *rate.Limiter
	if opts.RatePerMinute > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 2
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), burst)
	}

	return &Service{
		gen:     opts.Generator,
		limiter: limiter,
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		tracker: NewTracker(opts.TicketTTL),
		logger:  logger,
	}
}

func (s *Service) Enabled() bool {
	return s != nil && s.gen != nil
}

// Invalidate drops interest in any preview still running for key.
func (s *Service) Invalidate(key string) {
	s.tracker.Invalidate(key)
}

// Preview renders output for form. key scopes supersession: a later call with
// the same key makes this one return ErrSuperseded once it finishes. The
// in-flight generator call is not cancelled.
func (s *Service) Preview(ctx context.Context, key string, form studio.ProductFormData, output studio.PromptOutput) (Image, error) {
	if !s.Enabled() {
		return Image{}, ErrDisabled
	}

	req, err := BuildRequest(form, output)
	if err != nil {
		return Image{}, err
	}

	ticket := s.tracker.Begin(key)
	log := s.logger.With("key", key, "output", output.ID, "ticket", ticket.ID)

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return Image{}, ctx.Err()
			}
			log.Warn("preview rate limited", "err", err)
			return Image{}, ErrRateLimited
		}
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer s.sem.Release(1)

	if !s.tracker.Current(ticket) {
		log.Debug("preview superseded before start")
		return Image{}, ErrSuperseded
	}

	start := time.Now()
	img, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.Warn("preview failed", "err", err, "elapsed", time.Since(start))
		if !s.tracker.Current(ticket) {
			return Image{}, ErrSuperseded
		}
		return Image{}, fmt.Errorf("generate preview: %w", err)
	}
	if !s.tracker.Current(ticket) {
		log.Debug("dropping stale preview", "elapsed", time.Since(start))
		return Image{}, ErrSuperseded
	}
	if len(img.Data) == 0 {
		return Image{}, ErrNoImage
	}

	log.Info("preview ready", "bytes", len(img.Data), "mime", img.MimeType, "elapsed", time.Since(start))
	return img, nil
}
