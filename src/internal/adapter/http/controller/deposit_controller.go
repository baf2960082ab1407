package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

type DepositController struct {
	service service_interfaces.DepositService
}

func NewDepositController(service service_interfaces.DepositService) *DepositController {
	return &DepositController{service: service}
}

func (c *DepositController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware,
		route{"POST /deposits/fixed", c.openFixed},
		route{"GET /deposits/fixed/{id}", c.getFixed},
		route{"POST /deposits/fixed/{id}/close", c.closeFixed},
		route{"POST /deposits/recurring", c.openRecurring},
		route{"GET /deposits/recurring/{id}", c.getRecurring},
		route{"POST /deposits/recurring/{id}/installments/{n}/pay", c.payRDInstallment},
		route{"POST /deposits/recurring/{id}/installments/{n}/missed", c.markRDMissed},
		route{"POST /deposits/recurring/{id}/close", c.closeRecurring},
		route{"POST /deposits/maturities", c.scanMaturities},
		route{"GET /deposits/fixed", c.listAllFixed},
		route{"GET /deposits/recurring", c.listAllRecurring},
		route{"GET /users/{userId}/deposits/fixed", c.listFixed},
		route{"GET /users/{userId}/deposits/recurring", c.listRecurring},
	)
}

func (c *DepositController) openFixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.FixedDepositResponse](w, r, start)
	if !ok {
		return
	}

	var req models.OpenFixedDepositRequest
	if !decodeBody[models.FixedDepositResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.OpenFixedDeposit(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *DepositController) getFixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.FixedDepositResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.FixedDepositResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.GetFixedDeposit(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) closeFixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.DepositClosureResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.DepositClosureResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.CloseFixedDeposit(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) openRecurring(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.RecurringDepositScheduleResponse](w, r, start)
	if !ok {
		return
	}

	var req models.OpenRecurringDepositRequest
	if !decodeBody[models.RecurringDepositScheduleResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.OpenRecurringDeposit(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *DepositController) getRecurring(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.RecurringDepositScheduleResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.RecurringDepositScheduleResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.GetRecurringDeposit(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) payRDInstallment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.RDInstallmentPaymentResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.RDInstallmentPaymentResponse](w, r, start, "id")
	if !ok {
		return
	}
	number, ok := pathNumber[models.RDInstallmentPaymentResponse](w, r, start, "n")
	if !ok {
		return
	}

	response, err := c.service.PayRDInstallment(r.Context(), actor, id, number)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) markRDMissed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.RDInstallmentResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.RDInstallmentResponse](w, r, start, "id")
	if !ok {
		return
	}
	number, ok := pathNumber[models.RDInstallmentResponse](w, r, start, "n")
	if !ok {
		return
	}

	var req models.InstallmentActionRequest
	if !decodeOptionalBody[models.RDInstallmentResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.MarkRDInstallmentMissed(r.Context(), actor, id, number, req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) closeRecurring(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.DepositClosureResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.DepositClosureResponse](w, r, start, "id")
	if !ok {
		return
	}

	response, err := c.service.CloseRecurringDeposit(r.Context(), actor, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) scanMaturities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.MaturityScanResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ScanMaturities(r.Context(), actor)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) listFixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.FixedDepositResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[[]models.FixedDepositResponse](w, r, start, "userId")
	if !ok {
		return
	}

	response, err := c.service.ListFixedDeposits(r.Context(), actor, userID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) listRecurring(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.RecurringDepositResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[[]models.RecurringDepositResponse](w, r, start, "userId")
	if !ok {
		return
	}

	response, err := c.service.ListRecurringDeposits(r.Context(), actor, userID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) listAllFixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.FixedDepositResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListAllFixedDeposits(r.Context(), actor, r.URL.Query().Get("status"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DepositController) listAllRecurring(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[[]models.RecurringDepositResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListAllRecurringDeposits(r.Context(), actor, r.URL.Query().Get("status"))
	respond(w, r, start, http.StatusOK, response, err)
}
