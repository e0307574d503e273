package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/credfile-backend/internal/data/repos"
	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

// SubjectOverview is the read-side view of one subject: who they are and
// how much history has accreted so far.
type SubjectOverview struct {
	Subject        *types.Subject       `json:"subject"`
	ImportBatches  []*types.ImportBatch `json:"import_batches"`
	TradelineCount int                  `json:"tradeline_count"`
	AddressCount   int                  `json:"address_count"`
}

type SubjectService interface {
	GetOverview(ctx context.Context, subjectID string) (*SubjectOverview, error)
}

type subjectService struct {
	log   *logger.Logger
	repos *repos.Set
}

func NewSubjectService(set *repos.Set, log *logger.Logger) SubjectService {
	return &subjectService{log: log.With("service", "SubjectService"), repos: set}
}

// GetOverview returns nil when the subject has never been ingested.
func (s *subjectService) GetOverview(ctx context.Context, subjectID string) (*SubjectOverview, error) {
	subject, err := s.repos.Subjects.GetByID(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}
	batches, err := s.repos.ImportBatches.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	tradelines, err := s.repos.Tradelines.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.repos.Addresses.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	return &SubjectOverview{
		Subject:        subject,
		ImportBatches:  batches,
		TradelineCount: len(tradelines),
		AddressCount:   len(addresses),
	}, nil
}

// InsightView flattens a stored insight and its entity links for the API.
type InsightView struct {
	ID         string                 `json:"id"`
	RuleID     string                 `json:"rule_id,omitempty"`
	Kind       string                 `json:"kind"`
	Severity   types.Severity         `json:"severity"`
	Summary    string                 `json:"summary"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
	Entities   []types.EntityRef      `json:"entities,omitempty"`
	CreatedAt  string                 `json:"created_at"`
}

type InsightService interface {
	GetBySubject(ctx context.Context, subjectID string) ([]InsightView, error)
}

type insightService struct {
	log   *logger.Logger
	repos *repos.Set
}

func NewInsightService(set *repos.Set, log *logger.Logger) InsightService {
	return &insightService{log: log.With("service", "InsightService"), repos: set}
}

func (s *insightService) GetBySubject(ctx context.Context, subjectID string) ([]InsightView, error) {
	insights, err := s.repos.Insights.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(insights))
	for _, in := range insights {
		ids = append(ids, in.ID.String())
	}
	entityRows, err := s.repos.Insights.GetEntitiesByInsightIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	entitiesByInsight := make(map[string][]types.EntityRef, len(insights))
	for _, e := range entityRows {
		key := e.InsightID.String()
		entitiesByInsight[key] = append(entitiesByInsight[key], types.EntityRef{Type: e.EntityType, ID: e.EntityID})
	}

	out := make([]InsightView, 0, len(insights))
	for _, in := range insights {
		view := InsightView{
			ID:        in.ID.String(),
			RuleID:    in.RuleID,
			Kind:      in.Kind,
			Severity:  in.Severity,
			Summary:   in.Summary,
			Entities:  entitiesByInsight[in.ID.String()],
			CreatedAt: in.CreatedAt.UTC().Format(time.RFC3339),
		}
		if len(in.Extensions) > 0 {
			_ = json.Unmarshal(in.Extensions, &view.Extensions)
		}
		out = append(out, view)
	}
	return out, nil
}

type ReceiptService interface {
	GetBySubject(ctx context.Context, subjectID string) ([]*types.IngestReceipt, error)
	GetByDigest(ctx context.Context, digest string) (*types.IngestReceipt, error)
}

type receiptService struct {
	log   *logger.Logger
	repos *repos.Set
}

func NewReceiptService(set *repos.Set, log *logger.Logger) ReceiptService {
	return &receiptService{log: log.With("service", "ReceiptService"), repos: set}
}

func (s *receiptService) GetBySubject(ctx context.Context, subjectID string) ([]*types.IngestReceipt, error) {
	return s.repos.IngestReceipts.GetBySubject(ctx, nil, subjectID)
}

func (s *receiptService) GetByDigest(ctx context.Context, digest string) (*types.IngestReceipt, error) {
	return s.repos.IngestReceipts.GetByDigest(ctx, nil, digest)
}
