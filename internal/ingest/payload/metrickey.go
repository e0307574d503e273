package payload

import (
	"strconv"
	"strings"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// DerivedValueKey derives the dedup key for a monthly metric. The insert
// path and the referential checker must both use this exact derivation or
// the uniqueness constraint and the validator disagree silently.
//
// Payment-status metrics prefer the status code, then the canonical form of
// the status text, then the raw text, then "unknown". All other metric
// types prefer the numeric value over text even when both are present.
func DerivedValueKey(m *MonthlyMetric) string {
	if types.MetricType(m.MetricType) == types.MetricPaymentStatus {
		if v := strings.TrimSpace(m.StatusCode); v != "" {
			return v
		}
		if canonical := types.NormalizeStatus(m.StatusText); canonical != types.StatusUnknown {
			return string(canonical)
		}
		if v := strings.TrimSpace(m.StatusText); v != "" {
			return v
		}
		if v := strings.TrimSpace(m.ValueText); v != "" {
			return v
		}
		return "unknown"
	}

	if m.ValueNumber != nil {
		return strconv.FormatFloat(*m.ValueNumber, 'f', -1, 64)
	}
	if v := strings.TrimSpace(m.ValueText); v != "" {
		return v
	}
	return "unknown"
}
