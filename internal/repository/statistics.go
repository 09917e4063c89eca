package repository

import (
	"context"
	"sync"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// StatisticsAPI is the slice of the API client the statistics repository uses.
type StatisticsAPI interface {
	GetStatistics(ctx context.Context, access string) (*api.StatisticsResponse, error)
}

// Statistics serves the dashboard numbers from a preloaded cache.
type Statistics struct {
	gateway *auth.Gateway
	client  StatisticsAPI

	mu     sync.Mutex
	cached *domain.Statistics
}

// NewStatistics creates the statistics repository.
func NewStatistics(gateway *auth.Gateway, client StatisticsAPI) *Statistics {
	return &Statistics{gateway: gateway, client: client}
}

// Preload fetches and caches the current statistics.
func (r *Statistics) Preload(ctx context.Context) error {
	stats, err := auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Statistics, error) {
		resp, err := r.client.GetStatistics(ctx, access)
		if err != nil {
			return domain.Statistics{}, err
		}
		stats := domain.Statistics{
			DoneToday:       resp.DoneToday,
			DoneAllTimeHigh: resp.MaxDone,
		}
		for i := 0; i < len(stats.Weekly) && i < len(resp.Weekly); i++ {
			stats.Weekly[i] = resp.Weekly[i]
		}
		return stats, nil
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cached = &stats
	r.mu.Unlock()
	return nil
}

// Get returns the cached statistics, fetching them on a cold cache.
func (r *Statistics) Get(ctx context.Context) (domain.Statistics, error) {
	r.mu.Lock()
	cached := r.cached
	r.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	if err := r.Preload(ctx); err != nil {
		return domain.Statistics{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.cached, nil
}
