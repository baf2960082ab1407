package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

var teller = domain.Actor{ID: 1, Username: "teller", Role: domain.RoleAdmin, Active: true}

func asActor(actor domain.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithActor(r.Context(), actor)))
		})
	}
}

type accountServiceStub struct {
	getAccountFn func(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.AccountResponse], error)
}

func (s accountServiceStub) OpenAccount(context.Context, domain.Actor, models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	return commons.SuccessResponse("account opened", models.AccountResponse{ID: 1}), nil
}

func (s accountServiceStub) GetAccount(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.AccountResponse], error) {
	return s.getAccountFn(ctx, actor, accountID)
}

func (s accountServiceStub) ListAccounts(context.Context, domain.Actor, int64) (commons.Response[[]models.AccountResponse], error) {
	return commons.SuccessResponse("accounts fetched", []models.AccountResponse{}), nil
}

func (s accountServiceStub) CheckSufficiency(context.Context, domain.Actor, int64, string) (commons.Response[models.SufficiencyResponse], error) {
	return commons.SuccessResponse("checked", models.SufficiencyResponse{}), nil
}

func (s accountServiceStub) ChangeStatus(context.Context, domain.Actor, int64, models.ChangeStatusRequest) (commons.Response[models.AccountResponse], error) {
	return commons.SuccessResponse("status changed", models.AccountResponse{}), nil
}

type transactionServiceStub struct {
	statementFn func(ctx context.Context, actor domain.Actor, accountID int64, limit, offset int) (commons.Response[models.StatementResponse], error)
}

func (s transactionServiceStub) Deposit(_ context.Context, _ domain.Actor, req models.CashRequest) (commons.Response[models.TransactionResponse], error) {
	return commons.SuccessResponse("deposit successful", models.TransactionResponse{Amount: req.Amount}), nil
}

func (s transactionServiceStub) Withdraw(context.Context, domain.Actor, models.CashRequest) (commons.Response[models.TransactionResponse], error) {
	return commons.ErrorResponse[models.TransactionResponse]("insufficient funds"), commons.ErrInsufficientFunds
}

func (s transactionServiceStub) Transfer(context.Context, domain.Actor, models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	return commons.ErrorResponse[models.TransferResponse]("duplicate reference"), commons.ErrDuplicateReference
}

func (s transactionServiceStub) Statement(ctx context.Context, actor domain.Actor, accountID int64, limit, offset int) (commons.Response[models.StatementResponse], error) {
	return s.statementFn(ctx, actor, accountID, limit, offset)
}

func (s transactionServiceStub) Summary(context.Context, domain.Actor, int64) (commons.Response[models.SummaryResponse], error) {
	return commons.SuccessResponse("summary", models.SummaryResponse{}), nil
}

func serve(t *testing.T, mux *http.ServeMux, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode %s %s response %q: %v", method, target, rec.Body.String(), err)
	}
	return rec, payload
}

func TestAccountControllerMapsServiceFailures(t *testing.T) {
	cases := []struct {
		message string
		err     error
		status  int
	}{
		{"validation failed", commons.ErrValidation, http.StatusBadRequest},
		{"unauthorized", commons.ErrUnauthorized, http.StatusForbidden},
		{"record not found", commons.ErrRecordNotFound, http.StatusNotFound},
		{"account is not active", commons.ErrAccountNotActive, http.StatusConflict},
		{"request failed", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			stub := accountServiceStub{getAccountFn: func(context.Context, domain.Actor, int64) (commons.Response[models.AccountResponse], error) {
				return commons.ErrorResponse[models.AccountResponse](tc.message), tc.err
			}}
			mux := http.NewServeMux()
			controller.NewAccountController(stub).RegisterRoutes(mux, asActor(teller))

			rec, payload := serve(t, mux, http.MethodGet, "/accounts/5", "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if payload["message"] != tc.message || payload["success"] != false {
				t.Fatalf("unexpected payload %v", payload)
			}
		})
	}
}

func TestAccountControllerPassesActorAndPathID(t *testing.T) {
	var gotActor domain.Actor
	var gotID int64
	stub := accountServiceStub{getAccountFn: func(_ context.Context, actor domain.Actor, accountID int64) (commons.Response[models.AccountResponse], error) {
		gotActor, gotID = actor, accountID
		return commons.SuccessResponse("account fetched successfully", models.AccountResponse{ID: accountID}), nil
	}}
	mux := http.NewServeMux()
	controller.NewAccountController(stub).RegisterRoutes(mux, asActor(teller))

	rec, _ := serve(t, mux, http.MethodGet, "/accounts/12", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotActor.ID != teller.ID || gotID != 12 {
		t.Fatalf("expected actor %d and account 12, got %d and %d", teller.ID, gotActor.ID, gotID)
	}

	rec, payload := serve(t, mux, http.MethodGet, "/accounts/abc", "")
	if rec.Code != http.StatusBadRequest || payload["message"] != "validation failed" {
		t.Fatalf("expected 400 for a bad id, got %d %v", rec.Code, payload)
	}

	rec, _ = serve(t, mux, http.MethodPost, "/accounts", `{"userId":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed body, got %d", rec.Code)
	}
}

func TestControllerRequiresActor(t *testing.T) {
	mux := http.NewServeMux()
	controller.NewAccountController(accountServiceStub{}).RegisterRoutes(mux, nil)

	rec, payload := serve(t, mux, http.MethodGet, "/accounts/5", "")
	if rec.Code != http.StatusUnauthorized || payload["message"] != "unauthorized" {
		t.Fatalf("expected 401 without an actor, got %d %v", rec.Code, payload)
	}
}

func TestTransactionControllerRoutes(t *testing.T) {
	var gotLimit, gotOffset int
	stub := transactionServiceStub{statementFn: func(_ context.Context, _ domain.Actor, _ int64, limit, offset int) (commons.Response[models.StatementResponse], error) {
		gotLimit, gotOffset = limit, offset
		return commons.SuccessResponse("statement fetched", models.StatementResponse{}), nil
	}}
	mux := http.NewServeMux()
	controller.NewTransactionController(stub).RegisterRoutes(mux, asActor(teller))

	rec, payload := serve(t, mux, http.MethodPost, "/transactions/deposit", `{"accountId":3,"amount":"250.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if data, _ := payload["data"].(map[string]any); data["amount"] != "250.00" {
		t.Fatalf("expected amount echoed back, got %v", payload)
	}

	rec, _ = serve(t, mux, http.MethodPost, "/transactions/withdraw", `{"accountId":3,"amount":"9000"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for insufficient funds, got %d", rec.Code)
	}
	rec, _ = serve(t, mux, http.MethodPost, "/transactions/transfer", `{"fromAccountId":3,"toAccountId":4,"amount":"1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate reference, got %d", rec.Code)
	}

	rec, _ = serve(t, mux, http.MethodGet, "/accounts/3/statement", "")
	if rec.Code != http.StatusOK || gotLimit != 50 || gotOffset != 0 {
		t.Fatalf("expected default paging 50/0, got %d with %d/%d", rec.Code, gotLimit, gotOffset)
	}
	serve(t, mux, http.MethodGet, "/accounts/3/statement?limit=5&offset=10", "")
	if gotLimit != 5 || gotOffset != 10 {
		t.Fatalf("expected paging 5/10, got %d/%d", gotLimit, gotOffset)
	}
	rec, _ = serve(t, mux, http.MethodGet, "/accounts/3/statement?limit=-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative limit, got %d", rec.Code)
	}
}

// listingLoanService and listingDepositService implement only the listing
// calls; anything else panics on the nil embedded interface.
type listingLoanService struct {
	service_interfaces.LoanService
	status  string
	overdue bool
}

func (s *listingLoanService) ListAllLoans(_ context.Context, _ domain.Actor, status string) (commons.Response[[]models.LoanResponse], error) {
	s.status = status
	return commons.SuccessResponse("loans fetched successfully", []models.LoanResponse{{ID: 2}, {ID: 1}}), nil
}

func (s *listingLoanService) ListOverdueLoans(context.Context, domain.Actor) (commons.Response[[]models.LoanResponse], error) {
	s.overdue = true
	return commons.SuccessResponse("overdue loans fetched successfully", []models.LoanResponse{{ID: 7}}), nil
}

type listingDepositService struct {
	service_interfaces.DepositService
	calls []string
}

func (s *listingDepositService) ListFixedDeposits(_ context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.FixedDepositResponse], error) {
	if !actor.CanActFor(userID) {
		return commons.ErrorResponse[[]models.FixedDepositResponse]("unauthorized"), commons.ErrUnauthorized
	}
	s.calls = append(s.calls, "fixed")
	return commons.SuccessResponse("fixed deposits fetched successfully", []models.FixedDepositResponse{}), nil
}

func (s *listingDepositService) ListRecurringDeposits(context.Context, domain.Actor, int64) (commons.Response[[]models.RecurringDepositResponse], error) {
	s.calls = append(s.calls, "recurring")
	return commons.SuccessResponse("recurring deposits fetched successfully", []models.RecurringDepositResponse{}), nil
}

func (s *listingDepositService) ListAllFixedDeposits(_ context.Context, _ domain.Actor, status string) (commons.Response[[]models.FixedDepositResponse], error) {
	s.calls = append(s.calls, "all fixed "+status)
	return commons.SuccessResponse("fixed deposits fetched successfully", []models.FixedDepositResponse{}), nil
}

func (s *listingDepositService) ListAllRecurringDeposits(_ context.Context, _ domain.Actor, status string) (commons.Response[[]models.RecurringDepositResponse], error) {
	s.calls = append(s.calls, "all recurring "+status)
	return commons.SuccessResponse("recurring deposits fetched successfully", []models.RecurringDepositResponse{}), nil
}

func TestLoanControllerListRoutes(t *testing.T) {
	stub := &listingLoanService{}
	mux := http.NewServeMux()
	controller.NewLoanController(stub).RegisterRoutes(mux, asActor(teller))

	rec, payload := serve(t, mux, http.MethodGet, "/loans?status=pending_approval", "")
	if rec.Code != http.StatusOK || stub.status != "pending_approval" {
		t.Fatalf("expected status filter passed through, got %d %q", rec.Code, stub.status)
	}
	if data, _ := payload["data"].([]any); len(data) != 2 {
		t.Fatalf("expected two loans, got %v", payload)
	}

	rec, _ = serve(t, mux, http.MethodGet, "/loans/overdue", "")
	if rec.Code != http.StatusOK || !stub.overdue {
		t.Fatalf("expected /loans/overdue to reach the overdue listing, got %d", rec.Code)
	}
}

func TestDepositControllerListRoutes(t *testing.T) {
	stub := &listingDepositService{}
	mux := http.NewServeMux()
	customer := domain.Actor{ID: 9, Username: "customer", Role: domain.RoleCustomer, Active: true}
	controller.NewDepositController(stub).RegisterRoutes(mux, asActor(customer))

	for _, target := range []string{
		"/users/9/deposits/fixed",
		"/users/9/deposits/recurring",
		"/deposits/fixed?status=ACTIVE",
		"/deposits/recurring",
	} {
		if rec, payload := serve(t, mux, http.MethodGet, target, ""); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d %v", target, rec.Code, payload)
		}
	}
	want := []string{"fixed", "recurring", "all fixed ACTIVE", "all recurring "}
	if strings.Join(stub.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("expected calls %v, got %v", want, stub.calls)
	}

	rec, _ := serve(t, mux, http.MethodGet, "/users/3/deposits/fixed", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 listing another user's deposits, got %d", rec.Code)
	}
	rec, _ = serve(t, mux, http.MethodGet, "/users/x/deposits/recurring", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad user id, got %d", rec.Code)
	}
}
