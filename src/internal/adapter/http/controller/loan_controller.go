package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

type LoanController struct {
	service service_interfaces.LoanService
}

func NewLoanController(service service_interfaces.LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware,
		route{"GET /loans/emi", c.quoteEMI},
		route{"POST /loans", c.apply},
		route{"GET /loans/{id}", c.getLoan},
		route{"GET /loans/{id}/schedule", c.getSchedule},
		route{"POST /loans/{id}/approve", c.approve},
		route{"POST /loans/{id}/reject", c.reject},
		route{"POST /loans/{id}/disburse", c.disburse},
		route{"POST /loans/{id}/default", c.markDefaulted},
		route{"POST /loans/{id}/installments/{n}/pay", c.payInstallment},
		route{"POST /loans/{id}/installments/{n}/overdue", c.markOverdue},
		route{"GET /users/{userId}/loans", c.listLoans},
		route{"GET /loans", c.listAllLoans},
		route{"GET /loans/overdue", c.listOverdueLoans},
	)
}

func (c *LoanController) quoteEMI(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	tenure, err := queryInt(r, "tenure", 0)
	if err != nil {
		reject[models.EMIQuoteResponse](w, r, start, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response, err := c.service.QuoteEMI(r.Context(), r.URL.Query().Get("principal"), tenure)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) apply(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.LoanResponse](w, r, start)
	if !ok {
		return
	}

	var req models.ApplyLoanRequest
	if !decodeBody[models.LoanResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Apply(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *LoanController) getLoan(w http.ResponseWriter, r *http.Request) {
	c.withLoan(w, r, func(actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error) {
		return c.service.GetLoan(r.Context(), actor, loanID)
	})
}

func (c *LoanController) disburse(w http.ResponseWriter, r *http.Request) {
	c.withLoan(w, r, func(actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error) {
		return c.service.Disburse(r.Context(), actor, loanID)
	})
}

func (c *LoanController) reject(w http.ResponseWriter, r *http.Request) {
	c.withDecision(w, r, c.service.Reject)
}

func (c *LoanController) markDefaulted(w http.ResponseWriter, r *http.Request) {
	c.withDecision(w, r, c.service.MarkDefaulted)
}

func (c *LoanController) withLoan(w http.ResponseWriter, r *http.Request, call func(actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error)) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.LoanResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.LoanResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := call(actor, loanID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) withDecision(w http.ResponseWriter, r *http.Request, call func(ctx context.Context, actor domain.Actor, loanID int64, reason string) (commons.Response[models.LoanResponse], error)) {
	start := time.Now()
	actor, ok := authenticated[models.LoanResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.LoanResponse](w, r, start, "id")
	if !ok {
		return
	}

	var req models.LoanDecisionRequest
	if !decodeOptionalBody[models.LoanResponse](w, r, start, &req) {
		return
	}

	response, err := call(r.Context(), actor, loanID, req.Reason)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) approve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.ScheduleResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.ScheduleResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.Approve(r.Context(), actor, loanID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) getSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.ScheduleResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.ScheduleResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.GetSchedule(r.Context(), actor, loanID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) payInstallment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.InstallmentPaymentResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.InstallmentPaymentResponse](w, r, start, "id")
	if !ok {
		return
	}
	number, ok := pathNumber[models.InstallmentPaymentResponse](w, r, start, "n")
	if !ok {
		return
	}

	response, err := c.service.PayInstallment(r.Context(), actor, loanID, number)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) markOverdue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.InstallmentResponse](w, r, start)
	if !ok {
		return
	}
	loanID, ok := pathID[models.InstallmentResponse](w, r, start, "id")
	if !ok {
		return
	}
	number, ok := pathNumber[models.InstallmentResponse](w, r, start, "n")
	if !ok {
		return
	}

	var req models.InstallmentActionRequest
	if !decodeOptionalBody[models.InstallmentResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.MarkInstallmentOverdue(r.Context(), actor, loanID, number, req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) listLoans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.LoanResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[[]models.LoanResponse](w, r, start, "userId")
	if !ok {
		return
	}

	response, err := c.service.ListLoans(r.Context(), actor, userID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) listAllLoans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.LoanResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListAllLoans(r.Context(), actor, r.URL.Query().Get("status"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LoanController) listOverdueLoans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.LoanResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListOverdueLoans(r.Context(), actor)
	respond(w, r, start, http.StatusOK, response, err)
}
