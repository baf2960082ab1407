package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

const defaultStatementLimit = 50

type TransactionController struct {
	service service_interfaces.TransactionService
}

func NewTransactionController(service service_interfaces.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware,
		route{"POST /transactions/deposit", c.deposit},
		route{"POST /transactions/withdraw", c.withdraw},
		route{"POST /transactions/transfer", c.transfer},
		route{"GET /accounts/{id}/statement", c.statement},
		route{"GET /accounts/{id}/summary", c.summary},
	)
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	var req models.CashRequest
	if !decodeBody[models.TransactionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Deposit(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	var req models.CashRequest
	if !decodeBody[models.TransactionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Withdraw(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.TransferResponse](w, r, start)
	if !ok {
		return
	}

	var req models.TransferRequest
	if !decodeBody[models.TransferResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Transfer(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *TransactionController) statement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.StatementResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.StatementResponse](w, r, start, "id")
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", defaultStatementLimit)
	if err != nil {
		reject[models.StatementResponse](w, r, start, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		reject[models.StatementResponse](w, r, start, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response, err := c.service.Statement(r.Context(), actor, id, limit, offset)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.SummaryResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.SummaryResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.Summary(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}
