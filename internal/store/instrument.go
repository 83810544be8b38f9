package store

import (
	"context"
	"errors"
	"time"

	"github.com/javiermolinar/zaalplan/internal/metrics"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

type instrumented struct {
	repo    screening.Repository
	metrics *metrics.Metrics
}

// Instrument records every repository call in m. A nil m returns repo as is.
func Instrument(repo screening.Repository, m *metrics.Metrics) screening.Repository {
	if m == nil {
		return repo
	}
	return &instrumented{repo: repo, metrics: m}
}

func (r *instrumented) observe(op string, start time.Time, err error) {
	result := metrics.ResultOK
	switch {
	case errors.Is(err, screening.ErrNotFound):
		result = metrics.ResultNotFound
	case err != nil:
		result = metrics.ResultError
	}
	r.metrics.ObserveStore(op, result, time.Since(start))
}

func (r *instrumented) List(ctx context.Context) (_ []*screening.Screening, err error) {
	defer func(start time.Time) { r.observe("list", start, err) }(time.Now())
	return r.repo.List(ctx)
}

func (r *instrumented) Get(ctx context.Context, id string) (_ *screening.Screening, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.repo.Get(ctx, id)
}

func (r *instrumented) Create(ctx context.Context, s *screening.Screening) (err error) {
	defer func(start time.Time) { r.observe("create", start, err) }(time.Now())
	return r.repo.Create(ctx, s)
}

func (r *instrumented) Update(ctx context.Context, id string, p screening.Patch) (err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	return r.repo.Update(ctx, id, p)
}

func (r *instrumented) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	return r.repo.Delete(ctx, id)
}

func (r *instrumented) Close() error {
	return r.repo.Close()
}
