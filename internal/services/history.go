package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/credfile-backend/internal/data/repos"
	types "github.com/yungbote/credfile-backend/internal/domain"
)

// historyReader serves anomaly rules their view of the subject's merged
// history. It is bound to the ingest transaction, so rules see the rows the
// current payload just inserted alongside everything earlier.
type historyReader struct {
	tx        *gorm.DB
	subjectID string
	repos     *repos.Set
}

func newHistoryReader(tx *gorm.DB, subjectID string, set *repos.Set) *historyReader {
	return &historyReader{tx: tx, subjectID: subjectID, repos: set}
}

func (h *historyReader) ImportBatches(ctx context.Context) ([]*types.ImportBatch, error) {
	return h.repos.ImportBatches.GetBySubject(ctx, h.tx, h.subjectID)
}

func (h *historyReader) Organisations(ctx context.Context) ([]*types.Organisation, error) {
	return h.repos.Organisations.GetBySubject(ctx, h.tx, h.subjectID)
}

func (h *historyReader) Tradelines(ctx context.Context) ([]*types.Tradeline, error) {
	return h.repos.Tradelines.GetBySubject(ctx, h.tx, h.subjectID)
}

func (h *historyReader) SnapshotsByTradeline(ctx context.Context, tradelineIDs []string) (map[string][]*types.TradelineSnapshot, error) {
	rows, err := h.repos.TradelineSnapshots.GetByTradelineIDs(ctx, h.tx, tradelineIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*types.TradelineSnapshot, len(tradelineIDs))
	for _, snap := range rows {
		out[snap.TradelineID] = append(out[snap.TradelineID], snap)
	}
	return out, nil
}

func (h *historyReader) HardSearchesSince(ctx context.Context, since time.Time) ([]*types.SearchRecord, error) {
	return h.repos.Searches.GetBySubjectVisibilitySince(ctx, h.tx, h.subjectID, types.SearchHard, since)
}

func (h *historyReader) Scores(ctx context.Context) ([]*types.CreditScore, error) {
	return h.repos.CreditScores.GetBySubject(ctx, h.tx, h.subjectID)
}
