// Package creditscore blends five sub-scores into a 300-850 credit score.
package creditscore

import (
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MinScore = 300
	MaxScore = 850

	// Floor is the lowest non-zero score accepted for any loan.
	Floor = 600
	// HighValueFloor applies to principals above HighValueThreshold.
	HighValueFloor = 700

	weightPaymentHistory = 35
	weightUtilization    = 30
	weightAccountAge     = 15
	weightDiversity      = 10
	weightInquiries      = 10

	defaultPaymentHistory = 70.0
	defaultUtilization    = 85.0
	defaultAccountAge     = 50.0
	defaultDiversity      = 60.0
	defaultInquiries      = 80.0

	// InquiryWindow is how far back loan applications count as inquiries.
	InquiryWindow = 180 * 24 * time.Hour
)

var HighValueThreshold = decimal.NewFromInt(500000)

// Inputs are the raw facts a score is computed from. A nil field means the
// fact could not be established and its sub-score falls back to a default.
type Inputs struct {
	Payments           *domain.PaymentHistory
	Overdraft          *domain.OverdraftUsage
	OldestAccount      *time.Time
	DistinctLoanTypes  *int
	RecentApplications *int
	AsOf               time.Time
}

type SubScores struct {
	PaymentHistory float64
	Utilization    float64
	AccountAge     float64
	Diversity      float64
	Inquiries      float64
}

type Result struct {
	Score     int
	SubScores SubScores
}

func Calculate(in Inputs) Result {
	sub := SubScores{
		PaymentHistory: PaymentHistoryScore(in.Payments),
		Utilization:    UtilizationScore(in.Overdraft),
		AccountAge:     AccountAgeScore(in.OldestAccount, in.AsOf),
		Diversity:      DiversityScore(in.DistinctLoanTypes),
		Inquiries:      InquiriesScore(in.RecentApplications),
	}
	return Result{Score: Blend(sub), SubScores: sub}
}

// Blend maps the weighted 0-100 sum linearly onto 300-850 and truncates.
func Blend(sub SubScores) int {
	weighted := sub.PaymentHistory*weightPaymentHistory +
		sub.Utilization*weightUtilization +
		sub.AccountAge*weightAccountAge +
		sub.Diversity*weightDiversity +
		sub.Inquiries*weightInquiries

	score := int(MinScore + weighted*(MaxScore-MinScore)/10000)
	return clampInt(score, MinScore, MaxScore)
}

func PaymentHistoryScore(p *domain.PaymentHistory) float64 {
	if p == nil || p.Total == 0 {
		return defaultPaymentHistory
	}
	total := float64(p.Total)
	score := 100*float64(p.OnTime)/total - 50*float64(p.Overdue)/total
	return clampFloat(score, 0, 100)
}

func UtilizationScore(u *domain.OverdraftUsage) float64 {
	if u == nil || !u.Limit.IsPositive() {
		return defaultUtilization
	}
	ratio := u.Used.Div(u.Limit)
	switch {
	case ratio.LessThanOrEqual(decimal.RequireFromString("0.1")):
		return 100
	case ratio.LessThanOrEqual(decimal.RequireFromString("0.3")):
		return 80
	case ratio.LessThanOrEqual(decimal.RequireFromString("0.5")):
		return 60
	case ratio.LessThanOrEqual(decimal.RequireFromString("0.7")):
		return 40
	default:
		return 20
	}
}

func AccountAgeScore(oldest *time.Time, asOf time.Time) float64 {
	if oldest == nil {
		return defaultAccountAge
	}
	years := asOf.Sub(*oldest).Hours() / 24 / 365.25
	switch {
	case years >= 10:
		return 100
	case years >= 5:
		return 80
	case years >= 2:
		return 60
	case years >= 1:
		return 40
	default:
		return 20
	}
}

func DiversityScore(distinct *int) float64 {
	if distinct == nil {
		return defaultDiversity
	}
	switch {
	case *distinct >= 3:
		return 100
	case *distinct == 2:
		return 80
	case *distinct == 1:
		return 60
	default:
		return 40
	}
}

func InquiriesScore(recent *int) float64 {
	if recent == nil {
		return defaultInquiries
	}
	switch {
	case *recent == 0:
		return 100
	case *recent <= 2:
		return 80
	case *recent <= 4:
		return 60
	default:
		return 30
	}
}

// CheckLoanEligibility gates origination on the current score. A score of
// zero means no score has been computed yet and is not held against the
// applicant.
func CheckLoanEligibility(score int, principal decimal.Decimal) error {
	if score <= 0 {
		return nil
	}
	if score < Floor {
		return commons.ValidationError("credit score too low (%d), minimum %d required", score, Floor)
	}
	if principal.GreaterThan(HighValueThreshold) && score < HighValueFloor {
		return commons.ValidationError("credit score %d below %d required for loans above %s", score, HighValueFloor, HighValueThreshold.StringFixed(2))
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
