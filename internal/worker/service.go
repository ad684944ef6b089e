package worker

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"creator-pulse/internal/database"
	"creator-pulse/internal/platforms"
	"creator-pulse/internal/services"
	"creator-pulse/internal/workers"
)

// WorkerService manages background workers for the application
type WorkerService struct {
	streamConsumer   *platforms.StreamConsumer
	platformClient   *platforms.Client
	metricsWorker    *workers.MetricsRefreshWorker
	postsService     *services.PostsService
	schedulerService *services.SchedulerService
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	running          bool
	startedAt        time.Time
	mu               sync.RWMutex
}

// newGatewayClient builds the gateway client and authenticates it when
// credentials are configured
func newGatewayClient(ctx context.Context) *platforms.Client {
	gatewayURL := os.Getenv("GATEWAY_BASE_URL")
	if gatewayURL == "" {
		gatewayURL = "https://gateway.creatorpulse.dev"
	}

	client := platforms.NewClient(gatewayURL)

	identifier := os.Getenv("GATEWAY_IDENTIFIER")
	secret := os.Getenv("GATEWAY_SECRET")
	if identifier != "" && secret != "" {
		log.Printf("🔐 Authenticating gateway client for %s...", identifier)
		if err := client.CreateSession(ctx, identifier, secret); err != nil {
			log.Printf("⚠️  Failed to authenticate with gateway: %v", err)
		} else {
			log.Printf("✅ Successfully authenticated with gateway")
		}
	} else {
		log.Println("ℹ️  GATEWAY_IDENTIFIER/GATEWAY_SECRET not set, gateway client runs unauthenticated")
	}

	return client
}

// NewWorkerService creates a new worker service
func NewWorkerService() *WorkerService {
	ctx, cancel := context.WithCancel(context.Background())

	streamURL := os.Getenv("GATEWAY_STREAM_URL")
	if streamURL == "" {
		streamURL = "wss://gateway.creatorpulse.dev/v1/stream"
	}

	platformClient := newGatewayClient(ctx)
	streamConsumer := platforms.NewStreamConsumer(database.DB, streamURL)
	postsService := services.NewPostsService(database.DB, platformClient)
	schedulerService := services.NewSchedulerService(database.DB, platformClient)

	// Refresh connected account metrics every 6 hours
	metricsWorker := workers.NewMetricsRefreshWorker(postsService, 6*time.Hour)

	return &WorkerService{
		streamConsumer:   streamConsumer,
		platformClient:   platformClient,
		metricsWorker:    metricsWorker,
		postsService:     postsService,
		schedulerService: schedulerService,
		ctx:              ctx,
		cancel:           cancel,
		running:          false,
	}
}

// Start starts all background workers
func (ws *WorkerService) Start() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.running {
		return nil // Already running
	}

	log.Println("Starting background workers...")

	// Start engagement stream consumer
	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runStreamConsumer()
	}()

	// Start metrics refresh worker
	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runMetricsRefreshWorker()
	}()

	// Start scheduler and other periodic tasks
	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runPeriodicTasks()
	}()

	ws.running = true
	ws.startedAt = time.Now()
	log.Println("Background workers started successfully")

	return nil
}

// Stop stops all background workers
func (ws *WorkerService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.running {
		return // Not running
	}

	log.Println("Stopping background workers...")

	// Cancel context to signal all workers to stop
	ws.cancel()

	// Wait for all workers to finish
	ws.wg.Wait()

	ws.running = false
	log.Println("Background workers stopped")
}

// IsRunning returns whether the worker service is currently running
func (ws *WorkerService) IsRunning() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.running
}

// runStreamConsumer runs the live engagement stream consumer
func (ws *WorkerService) runStreamConsumer() {
	log.Println("Starting engagement stream consumer...")

	for {
		select {
		case <-ws.ctx.Done():
			log.Println("Engagement stream consumer stopped")
			return
		default:
			if err := ws.streamConsumer.StartConsuming(ws.ctx); err != nil {
				if ws.ctx.Err() != nil {
					// Context was cancelled, this is expected
					return
				}

				log.Printf("Engagement stream error: %v. Restarting in 30 seconds...", err)

				select {
				case <-time.After(30 * time.Second):
					continue
				case <-ws.ctx.Done():
					return
				}
			}
		}
	}
}

// runMetricsRefreshWorker runs the metrics refresh worker
func (ws *WorkerService) runMetricsRefreshWorker() {
	log.Println("Starting metrics refresh worker...")

	ws.metricsWorker.Start(ws.ctx)

	// Wait for context cancellation
	<-ws.ctx.Done()

	log.Println("Stopping metrics refresh worker...")
	ws.metricsWorker.Stop()
	log.Println("Metrics refresh worker stopped")
}

// runPeriodicTasks runs the scheduler and maintenance tasks
func (ws *WorkerService) runPeriodicTasks() {
	log.Println("Starting periodic tasks worker...")

	schedulerTicker := time.NewTicker(1 * time.Minute)
	cleanupTicker := time.NewTicker(1 * time.Hour)

	defer schedulerTicker.Stop()
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ws.ctx.Done():
			log.Println("Periodic tasks worker stopped")
			return

		case <-schedulerTicker.C:
			ws.publishDuePosts()

		case <-cleanupTicker.C:
			ws.runCleanupTasks()
		}
	}
}

// publishDuePosts publishes scheduled posts that have come due
func (ws *WorkerService) publishDuePosts() {
	if err := ws.schedulerService.PublishDuePosts(ws.ctx); err != nil {
		log.Printf("Failed to publish due posts: %v", err)
	}
}

// runCleanupTasks performs various cleanup operations
func (ws *WorkerService) runCleanupTasks() {
	log.Println("Running cleanup tasks...")

	// Drop performance records older than two years; analytics reads a
	// bounded window and old snapshots only slow the bulk fetch down
	cutoff := time.Now().AddDate(-2, 0, 0)
	result := database.DB.Exec("DELETE FROM performance_records WHERE recorded_at < ?", cutoff)
	if result.Error != nil {
		log.Printf("Failed to prune old performance records: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Pruned %d old performance records", result.RowsAffected)
	}

	log.Println("Cleanup tasks completed")
}

// GetPostsService returns the posts service for external use
func (ws *WorkerService) GetPostsService() *services.PostsService {
	return ws.postsService
}

// GetStatus returns the current status of the worker service
func (ws *WorkerService) GetStatus() map[string]interface{} {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	status := map[string]interface{}{
		"running":        ws.running,
		"stream_enabled": true,
		"periodic_tasks": true,
	}
	if ws.running {
		status["uptime"] = time.Since(ws.startedAt).String()
	}

	// Add metrics worker statistics if available
	if ws.metricsWorker != nil {
		metricsStats, err := ws.metricsWorker.GetStats()
		if err != nil {
			log.Printf("Failed to get metrics worker stats: %v", err)
		} else {
			status["metrics_worker"] = metricsStats
		}
	}

	return status
}
