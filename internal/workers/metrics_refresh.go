package workers

import (
	"context"
	"log"
	"time"

	"creator-pulse/internal/services"
)

// MetricsRefreshWorker handles periodic refresh of platform engagement
// metrics for connected accounts
type MetricsRefreshWorker struct {
	postsService *services.PostsService
	config       services.RefreshConfig
	ticker       *time.Ticker
	stopChan     chan bool
}

// NewMetricsRefreshWorker creates a new metrics refresh worker
func NewMetricsRefreshWorker(postsService *services.PostsService, refreshInterval time.Duration) *MetricsRefreshWorker {
	config := services.DefaultRefreshConfig()
	config.RefreshInterval = refreshInterval

	return &MetricsRefreshWorker{
		postsService: postsService,
		config:       config,
		stopChan:     make(chan bool),
	}
}

// NewMetricsRefreshWorkerWithConfig creates a worker with custom config
func NewMetricsRefreshWorkerWithConfig(postsService *services.PostsService, config services.RefreshConfig) *MetricsRefreshWorker {
	return &MetricsRefreshWorker{
		postsService: postsService,
		config:       config,
		stopChan:     make(chan bool),
	}
}

// Start begins the periodic refresh process
func (w *MetricsRefreshWorker) Start(ctx context.Context) {
	w.ticker = time.NewTicker(30 * time.Minute)

	log.Printf("🔄 Starting metrics refresh worker (checking every 30 minutes)")
	log.Printf("   📅 Refresh interval: %v", w.config.RefreshInterval)
	log.Printf("   📦 Batch size: %d accounts", w.config.BatchSize)
	log.Printf("   ⏱️  Rate limit: %v between API calls", w.config.RateLimit)

	// Run an initial check immediately
	go func() {
		if _, err := w.postsService.RefreshStaleAccounts(ctx, w.config); err != nil {
			log.Printf("❌ Error in initial metrics refresh: %v", err)
		}
	}()

	// Start the periodic ticker
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Printf("🛑 Metrics refresh worker stopping due to context cancellation")
				return
			case <-w.stopChan:
				log.Printf("🛑 Metrics refresh worker stopping")
				return
			case <-w.ticker.C:
				if _, err := w.postsService.RefreshStaleAccounts(ctx, w.config); err != nil {
					log.Printf("❌ Error in periodic metrics refresh: %v", err)
				}
			}
		}
	}()
}

// Stop stops the worker
func (w *MetricsRefreshWorker) Stop() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.stopChan)
	log.Printf("✅ Metrics refresh worker stopped")
}

// GetStats returns statistics about metrics refresh status
func (w *MetricsRefreshWorker) GetStats() (*MetricsStats, error) {
	accounts, err := w.postsService.GetAccountsNeedingSync(w.config, 1000)
	if err != nil {
		return nil, err
	}

	stats := &MetricsStats{
		AccountsNeedingSync: len(accounts),
		RefreshInterval:     w.config.RefreshInterval,
		LastCheck:           time.Now(),
	}

	return stats, nil
}

// MetricsStats holds statistics about metrics refresh status
type MetricsStats struct {
	AccountsNeedingSync int           `json:"accounts_needing_sync"`
	RefreshInterval     time.Duration `json:"refresh_interval"`
	LastCheck           time.Time     `json:"last_check"`
}
