package anomaly

import (
	"context"
	"strconv"
	"strings"

	"github.com/yungbote/credfile-backend/internal/settings"
)

// Config holds every threshold the rules read. One value is resolved per
// ingestion from the settings store and passed by reference into each rule
// call; there is no ambient/global configuration.
type Config struct {
	HardSearchBurstThreshold    int
	HardSearchFrequentThreshold int
	HardSearchWindowDays        int

	BalanceChangePctThreshold float64
	BalanceChangeAbsMinimum   int64

	CrossAgencyBalancePctThreshold float64
	CrossAgencyLimitPctThreshold   float64

	NewTradelineExpectedWindowDays int

	ScoreDeltaThreshold int
}

// DefaultConfig returns the hard-coded fallbacks.
func DefaultConfig() Config {
	return Config{
		HardSearchBurstThreshold:       3,
		HardSearchFrequentThreshold:    2,
		HardSearchWindowDays:           30,
		BalanceChangePctThreshold:      25,
		BalanceChangeAbsMinimum:        10000,
		CrossAgencyBalancePctThreshold: 10,
		CrossAgencyLimitPctThreshold:   10,
		NewTradelineExpectedWindowDays: 90,
		ScoreDeltaThreshold:            50,
	}
}

// ResolveConfig overlays store values onto the defaults. Missing or
// non-numeric values keep the default; unrelated keys are ignored.
func ResolveConfig(ctx context.Context, store settings.Store) Config {
	cfg := DefaultConfig()
	if store == nil {
		return cfg
	}
	resolveInt(ctx, store, "anomaly.hard_search.burst_threshold", &cfg.HardSearchBurstThreshold)
	resolveInt(ctx, store, "anomaly.hard_search.frequent_threshold", &cfg.HardSearchFrequentThreshold)
	resolveInt(ctx, store, "anomaly.hard_search.window_days", &cfg.HardSearchWindowDays)
	resolveFloat(ctx, store, "anomaly.balance_change.pct_threshold", &cfg.BalanceChangePctThreshold)
	resolveInt64(ctx, store, "anomaly.balance_change.abs_minimum", &cfg.BalanceChangeAbsMinimum)
	resolveFloat(ctx, store, "anomaly.cross_agency.balance_pct_threshold", &cfg.CrossAgencyBalancePctThreshold)
	resolveFloat(ctx, store, "anomaly.cross_agency.limit_pct_threshold", &cfg.CrossAgencyLimitPctThreshold)
	resolveInt(ctx, store, "anomaly.new_tradeline.expected_window_days", &cfg.NewTradelineExpectedWindowDays)
	resolveInt(ctx, store, "anomaly.score_movement.delta_threshold", &cfg.ScoreDeltaThreshold)
	return cfg
}

func resolveInt(ctx context.Context, store settings.Store, key string, dst *int) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		*dst = v
	}
}

func resolveInt64(ctx context.Context, store settings.Store, key string, dst *int64) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		*dst = v
	}
}

func resolveFloat(ctx context.Context, store settings.Store, key string, dst *float64) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		*dst = v
	}
}
