package anomaly

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

// RuleError records one rule failure.
type RuleError struct {
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}

// Result is the engine output for one ingestion.
type Result struct {
	Insights   []types.InsightDraft
	RuleErrors []RuleError
}

// Engine runs a fixed rule list in sequence, isolating failures per rule.
type Engine struct {
	log   *logger.Logger
	rules []Rule
}

func NewEngine(log *logger.Logger, rules []Rule) *Engine {
	return &Engine{log: log.With("service", "AnomalyEngine"), rules: rules}
}

// Run evaluates every registered rule. A rule error or panic is recorded
// and logged as a warning; remaining rules still run and the caller's
// transaction is never aborted from here.
func (e *Engine) Run(rc *Context) Result {
	var res Result
	for _, rule := range e.rules {
		insights, err := e.evaluate(rule, rc)
		if err != nil {
			res.RuleErrors = append(res.RuleErrors, RuleError{RuleID: rule.ID(), Message: err.Error()})
			e.log.Warn("anomaly rule failed", "rule_id", rule.ID(), "rule_name", rule.Name(), "error", err)
			continue
		}
		for i := range insights {
			if insights[i].RuleID == "" {
				insights[i].RuleID = rule.ID()
			}
		}
		res.Insights = append(res.Insights, insights...)
	}
	return res
}

func (e *Engine) evaluate(rule Rule, rc *Context) (insights []types.InsightDraft, err error) {
	defer func() {
		if r := recover(); r != nil {
			insights = nil
			err = fmt.Errorf("rule panic: %v", r)
		}
	}()
	return rule.Evaluate(rc)
}
