package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"creator-pulse/internal/models"
)

// RefreshConfig controls how often connected accounts are re-synced
type RefreshConfig struct {
	RefreshInterval time.Duration // How old a sync can be before refresh
	BatchSize       int           // Accounts per refresh run
	RateLimit       time.Duration // Delay between account syncs
}

// DefaultRefreshConfig returns the standard metrics refresh settings
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		RefreshInterval: 6 * time.Hour,
		BatchSize:       10,
		RateLimit:       time.Second,
	}
}

// ShouldSyncAccount reports whether an account's metrics are stale
func (ps *PostsService) ShouldSyncAccount(account *models.PlatformAccount, config RefreshConfig) bool {
	if account.LastSyncedAt == nil {
		return true
	}
	return time.Since(*account.LastSyncedAt) > config.RefreshInterval
}

// GetAccountsNeedingSync returns connected accounts whose metrics are stale
func (ps *PostsService) GetAccountsNeedingSync(config RefreshConfig, limit int) ([]models.PlatformAccount, error) {
	cutoff := time.Now().Add(-config.RefreshInterval)

	var accounts []models.PlatformAccount
	err := ps.db.
		Where("is_connected = ? AND (last_synced_at IS NULL OR last_synced_at < ?)", true, cutoff).
		Order("last_synced_at ASC NULLS FIRST").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stale accounts: %w", err)
	}
	return accounts, nil
}

// SyncAccountMetrics refreshes posts and engagement counts for one account
func (ps *PostsService) SyncAccountMetrics(ctx context.Context, account *models.PlatformAccount, config ImportConfig) error {
	if _, err := ps.importFromAccount(ctx, account, config); err != nil {
		ps.db.Model(account).Update("sync_error", err.Error())
		return err
	}

	now := time.Now()
	return ps.db.Model(account).Updates(map[string]interface{}{
		"last_synced_at": &now,
		"sync_error":     "",
	}).Error
}

// RefreshStaleAccounts syncs a batch of accounts whose metrics are stale
func (ps *PostsService) RefreshStaleAccounts(ctx context.Context, config RefreshConfig) (int, error) {
	accounts, err := ps.GetAccountsNeedingSync(config, config.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(accounts) == 0 {
		return 0, nil
	}

	log.Printf("🔄 Refreshing metrics for %d accounts...", len(accounts))

	refreshed := 0
	for i := range accounts {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		if err := ps.SyncAccountMetrics(ctx, &accounts[i], DefaultImportConfig()); err != nil {
			log.Printf("⚠️  Failed to sync %s/%s: %v", accounts[i].Platform, accounts[i].Username, err)
			continue
		}
		refreshed++

		time.Sleep(config.RateLimit)
	}

	log.Printf("✅ Refreshed %d of %d stale accounts", refreshed, len(accounts))
	return refreshed, nil
}
