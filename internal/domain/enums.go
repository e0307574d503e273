package domain

import "strings"

// Severity grades generated insights.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CanonicalStatus is the normalized payment status vocabulary shared by
// snapshots and monthly metrics. Source data is free text; anything outside
// this set normalizes to StatusUnknown.
type CanonicalStatus string

const (
	StatusUpToDate        CanonicalStatus = "up_to_date"
	StatusArrangement     CanonicalStatus = "arrangement_to_pay"
	StatusInArrears1      CanonicalStatus = "in_arrears_1"
	StatusInArrears2      CanonicalStatus = "in_arrears_2"
	StatusInArrears3      CanonicalStatus = "in_arrears_3"
	StatusInArrears4Plus  CanonicalStatus = "in_arrears_4_plus"
	StatusDelinquent      CanonicalStatus = "delinquent"
	StatusDefault         CanonicalStatus = "default"
	StatusWrittenOff      CanonicalStatus = "written_off"
	StatusRepossession    CanonicalStatus = "repossession"
	StatusSettled         CanonicalStatus = "settled"
	StatusClosed          CanonicalStatus = "closed"
	StatusNoUpdate        CanonicalStatus = "no_update"
	StatusUnknown         CanonicalStatus = "unknown"
)

// statusRanks orders payment statuses from best (1) to worst (10). A zero
// rank means the status never participates in degradation comparisons.
var statusRanks = map[CanonicalStatus]int{
	StatusUpToDate:       1,
	StatusArrangement:    2,
	StatusInArrears1:     3,
	StatusInArrears2:     4,
	StatusInArrears3:     5,
	StatusInArrears4Plus: 6,
	StatusDelinquent:     7,
	StatusDefault:        8,
	StatusWrittenOff:     9,
	StatusRepossession:   10,
}

// StatusRank returns the degradation rank for a status, 0 when unranked.
func StatusRank(s CanonicalStatus) int {
	return statusRanks[s]
}

// StatusBand groups payment statuses for transition reporting.
type StatusBand string

const (
	BandActive  StatusBand = "active"
	BandAdverse StatusBand = "adverse"
	BandClosed  StatusBand = "closed"
	BandUnknown StatusBand = "unknown"
)

var statusBands = map[CanonicalStatus]StatusBand{
	StatusUpToDate:       BandActive,
	StatusArrangement:    BandActive,
	StatusInArrears1:     BandActive,
	StatusInArrears2:     BandActive,
	StatusInArrears3:     BandActive,
	StatusInArrears4Plus: BandAdverse,
	StatusDelinquent:     BandAdverse,
	StatusDefault:        BandAdverse,
	StatusWrittenOff:     BandAdverse,
	StatusRepossession:   BandAdverse,
	StatusSettled:        BandClosed,
	StatusClosed:         BandClosed,
}

// BandOf maps a status onto its band, BandUnknown for anything unranked
// (no_update, free text, empty).
func BandOf(s CanonicalStatus) StatusBand {
	if b, ok := statusBands[s]; ok {
		return b
	}
	return BandUnknown
}

// NormalizeStatus folds free-text source statuses into the canonical set.
func NormalizeStatus(raw string) CanonicalStatus {
	s := CanonicalStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusUnknown
	}
	if _, ok := statusRanks[s]; ok {
		return s
	}
	switch s {
	case StatusSettled, StatusClosed, StatusNoUpdate:
		return s
	}
	return StatusUnknown
}

// AccountType classifies tradelines.
type AccountType string

const (
	AccountCreditCard     AccountType = "credit_card"
	AccountMortgage       AccountType = "mortgage"
	AccountSecuredLoan    AccountType = "secured_loan"
	AccountUnsecuredLoan  AccountType = "unsecured_loan"
	AccountCurrentAccount AccountType = "current_account"
	AccountUtility        AccountType = "utility"
	AccountTelecom        AccountType = "telecom"
	AccountRental         AccountType = "rental"
	AccountOther          AccountType = "other"
)

// CreditBearing reports whether a zero credit limit on this account type is
// worth a quality warning.
func (a AccountType) CreditBearing() bool {
	switch a {
	case AccountCreditCard, AccountMortgage, AccountSecuredLoan, AccountUnsecuredLoan:
		return true
	}
	return false
}

// SearchVisibility distinguishes hard searches (visible to lenders) from
// soft ones.
type SearchVisibility string

const (
	SearchHard    SearchVisibility = "hard"
	SearchSoft    SearchVisibility = "soft"
	SearchUnknown SearchVisibility = "unknown"
)

// MetricType labels monthly metric rows. Payment status metrics get the
// status-first derived value key; everything else is numeric-first.
type MetricType string

const (
	MetricPaymentStatus MetricType = "payment_status"
	MetricBalance       MetricType = "balance"
	MetricCreditLimit   MetricType = "credit_limit"
	MetricPayment       MetricType = "payment"
)

// Insight kinds emitted by the anomaly rules.
const (
	KindHardSearchSpike       = "hard_search_spike"
	KindBalanceChange         = "unexpected_balance_change"
	KindCrossAgency           = "cross_agency_discrepancy"
	KindNewTradeline          = "new_tradeline"
	KindPaymentDegradation    = "payment_status_degradation"
	KindTradelineStatusChange = "tradeline_status_change"
	KindScoreMovement         = "score_movement"
)

// Insight kinds emitted by the quality warning generator.
const (
	KindFileNoTradelines       = "file_no_tradelines"
	KindTradelineNoSnapshots   = "tradeline_no_snapshots"
	KindTradelineNoMetrics     = "tradeline_no_monthly_metrics"
	KindNegativeBalance        = "negative_balance_snapshot"
	KindZeroCreditLimit        = "zero_credit_limit"
	KindDuplicateSignature     = "duplicate_tradeline_signature"
)
