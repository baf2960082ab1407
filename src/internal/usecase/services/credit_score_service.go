package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/amortization"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/creditscore"
	"golang.org/x/sync/errgroup"
)

const defaultScoreHistory = 10

type CreditScoreService struct {
	profile repo_interfaces.CreditProfileRepository
	scores  repo_interfaces.CreditScoreRepository
	now     func() time.Time
}

func NewCreditScoreService(profile repo_interfaces.CreditProfileRepository, scores repo_interfaces.CreditScoreRepository) *CreditScoreService {
	return &CreditScoreService{profile: profile, scores: scores, now: time.Now}
}

func (s *CreditScoreService) SetClock(now func() time.Time) {
	s.now = now
}

// gather runs the five profile queries concurrently. A query that fails
// leaves its input nil so the sub-score falls back to its default.
// Payment history counts installments due before the start of asOf's day.
func (s *CreditScoreService) gather(ctx context.Context, userID int64, asOf time.Time) creditscore.Inputs {
	in := creditscore.Inputs{AsOf: asOf}
	degrade := func(input string, err error) {
		logger.Error("credit score input unavailable, using default", err, logger.Fields{
			"userId": userID,
			"input":  input,
		})
	}

	var g errgroup.Group
	g.Go(func() error {
		history, err := s.profile.PaymentHistory(ctx, userID, amortization.DateOf(asOf))
		if err != nil {
			degrade("paymentHistory", err)
			return nil
		}
		in.Payments = &history
		return nil
	})
	g.Go(func() error {
		usage, err := s.profile.OverdraftUsage(ctx, userID)
		if err != nil {
			degrade("overdraftUsage", err)
			return nil
		}
		in.Overdraft = &usage
		return nil
	})
	g.Go(func() error {
		oldest, err := s.profile.OldestAccountOpenedOn(ctx, userID)
		if err != nil {
			degrade("accountAge", err)
			return nil
		}
		in.OldestAccount = oldest
		return nil
	})
	g.Go(func() error {
		distinct, err := s.profile.DistinctLoanTypes(ctx, userID)
		if err != nil {
			degrade("diversity", err)
			return nil
		}
		in.DistinctLoanTypes = &distinct
		return nil
	})
	g.Go(func() error {
		recent, err := s.profile.LoanApplicationsSince(ctx, userID, asOf.Add(-creditscore.InquiryWindow))
		if err != nil {
			degrade("inquiries", err)
			return nil
		}
		in.RecentApplications = &recent
		return nil
	})
	// Every goroutine degrades its own input and returns nil, so Wait only joins.
	_ = g.Wait()

	return in
}

// Recalculate scores the user now and appends the result to their history.
func (s *CreditScoreService) Recalculate(ctx context.Context, userID int64, reason string) (domain.CreditScore, creditscore.Result, error) {
	asOf := s.now().UTC()
	result := creditscore.Calculate(s.gather(ctx, userID, asOf))

	summary := fmt.Sprintf("payment %.0f, utilization %.0f, age %.0f, diversity %.0f, inquiries %.0f",
		result.SubScores.PaymentHistory,
		result.SubScores.Utilization,
		result.SubScores.AccountAge,
		result.SubScores.Diversity,
		result.SubScores.Inquiries,
	)
	if reason = strings.TrimSpace(reason); reason != "" {
		summary = reason + ": " + summary
	}

	saved, err := s.scores.Create(ctx, domain.CreditScore{
		UserID:        userID,
		Score:         result.Score,
		ReasonSummary: summary,
		CalculatedAt:  asOf,
	})
	if err != nil {
		return domain.CreditScore{}, result, fmt.Errorf("save credit score: %w", err)
	}

	logger.Info("credit score recalculated", logger.Fields{
		"userId": userID,
		"score":  saved.Score,
	})
	return saved, result, nil
}

// CurrentScore is the most recent score, or 0 when none has been computed.
func (s *CreditScoreService) CurrentScore(ctx context.Context, userID int64) (int, error) {
	latest, err := s.scores.Latest(ctx, userID)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Score, nil
}

func (s *CreditScoreService) GetScore(ctx context.Context, actor domain.Actor, userID int64, limit int) (commons.Response[models.CreditScoreHistoryResponse], error) {
	const op = "credit score service get score"
	fields := logger.Fields{"userId": userID}

	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[models.CreditScoreHistoryResponse](op, err, fields)
	}
	if limit <= 0 {
		limit = defaultScoreHistory
	}

	history, err := s.scores.History(ctx, userID, limit)
	if err != nil {
		return failure[models.CreditScoreHistoryResponse](op, err, fields)
	}

	resp := models.CreditScoreHistoryResponse{UserID: userID, History: make([]models.CreditScoreResponse, 0, len(history))}
	for i, score := range history {
		if i == 0 {
			resp.Current = score.Score
		}
		resp.History = append(resp.History, toCreditScoreResponse(score, nil))
	}
	return commons.SuccessResponse("credit score fetched successfully", resp), nil
}

func (s *CreditScoreService) RecalculateScore(ctx context.Context, actor domain.Actor, userID int64, req models.RecalculateScoreRequest) (commons.Response[models.CreditScoreResponse], error) {
	const op = "credit score service recalculate"
	fields := logger.Fields{"userId": userID}

	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[models.CreditScoreResponse](op, err, fields)
	}

	reason := req.Reason
	if strings.TrimSpace(reason) == "" {
		reason = "On request"
	}
	saved, result, err := s.Recalculate(ctx, userID, reason)
	if err != nil {
		return failure[models.CreditScoreResponse](op, err, fields)
	}
	return commons.SuccessResponse("credit score recalculated", toCreditScoreResponse(saved, &result.SubScores)), nil
}
