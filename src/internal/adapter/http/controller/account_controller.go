package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware,
		route{"POST /accounts", c.openAccount},
		route{"GET /accounts/{id}", c.getAccount},
		route{"GET /accounts/{id}/sufficiency", c.checkSufficiency},
		route{"POST /accounts/{id}/status", c.changeStatus},
		route{"GET /users/{userId}/accounts", c.listAccounts},
	)
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	var req models.OpenAccountRequest
	if !decodeBody[models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.OpenAccount(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.AccountResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.GetAccount(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[[]models.AccountResponse](w, r, start, "userId")
	if !ok {
		return
	}

	response, err := c.service.ListAccounts(r.Context(), actor, userID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) checkSufficiency(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.SufficiencyResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.SufficiencyResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.CheckSufficiency(r.Context(), actor, id, r.URL.Query().Get("amount"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) changeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.AccountResponse](w, r, start, "id")
	if !ok {
		return
	}

	var req models.ChangeStatusRequest
	if !decodeBody[models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.ChangeStatus(r.Context(), actor, id, req)
	respond(w, r, start, http.StatusOK, response, err)
}
