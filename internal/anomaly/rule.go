// Package anomaly implements the rule engine that compares one ingestion
// against the subject's full merged history. Rules are independent: one
// rule failing (error or panic) is recorded and never blocks the others or
// the surrounding ingest transaction.
package anomaly

import (
	"context"
	"time"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/ingest/payload"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

// HistoryReader is the storage collaborator rules read merged history
// through. Implementations are bound to one subject and to the ingest
// transaction, so reads see the just-inserted payload rows.
type HistoryReader interface {
	ImportBatches(ctx context.Context) ([]*types.ImportBatch, error)
	Organisations(ctx context.Context) ([]*types.Organisation, error)
	Tradelines(ctx context.Context) ([]*types.Tradeline, error)
	// SnapshotsByTradeline returns snapshots keyed by tradeline ID, each
	// slice ordered by captured_at ascending.
	SnapshotsByTradeline(ctx context.Context, tradelineIDs []string) (map[string][]*types.TradelineSnapshot, error)
	HardSearchesSince(ctx context.Context, since time.Time) ([]*types.SearchRecord, error)
	// Scores returns the subject's credit scores ordered by recorded_at
	// descending.
	Scores(ctx context.Context) ([]*types.CreditScore, error)
}

// Context bundles everything one rule evaluation needs.
type Context struct {
	Ctx            context.Context
	Log            *logger.Logger
	Payload        *payload.CreditFile
	SubjectID      string
	ImportIDs      []string
	AgencyByImport map[string]string
	Config         Config
	History        HistoryReader

	importIDSet map[string]struct{}
}

// FromCurrentImport reports whether an import ID belongs to this ingestion.
func (rc *Context) FromCurrentImport(importID string) bool {
	if rc.importIDSet == nil {
		rc.importIDSet = make(map[string]struct{}, len(rc.ImportIDs))
		for _, id := range rc.ImportIDs {
			rc.importIDSet[id] = struct{}{}
		}
	}
	_, ok := rc.importIDSet[importID]
	return ok
}

// Rule is one anomaly detector.
type Rule interface {
	ID() string
	Name() string
	Evaluate(rc *Context) ([]types.InsightDraft, error)
}

// DefaultRules is the statically-built registry.
func DefaultRules() []Rule {
	return []Rule{
		&HardSearchRule{},
		&BalanceChangeRule{},
		&CrossAgencyRule{},
		&NewTradelineRule{},
		&PaymentDegradationRule{},
		&StatusBandRule{},
		&ScoreMovementRule{},
	}
}
