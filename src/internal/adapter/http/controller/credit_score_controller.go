package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

const defaultScoreHistory = 10

type CreditScoreController struct {
	service service_interfaces.CreditScoreService
}

func NewCreditScoreController(service service_interfaces.CreditScoreService) *CreditScoreController {
	return &CreditScoreController{service: service}
}

func (c *CreditScoreController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware,
		route{"GET /credit-scores/{userId}", c.getScore},
		route{"POST /credit-scores/{userId}/recalculate", c.recalculate},
	)
}

func (c *CreditScoreController) getScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)
	actor, ok := authenticated[models.CreditScoreHistoryResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[models.CreditScoreHistoryResponse](w, r, start, "userId")
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", defaultScoreHistory)
	if err != nil {
		reject[models.CreditScoreHistoryResponse](w, r, start, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response, err := c.service.GetScore(r.Context(), actor, userID, limit)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CreditScoreController) recalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.CreditScoreResponse](w, r, start)
	if !ok {
		return
	}
	userID, ok := pathID[models.CreditScoreResponse](w, r, start, "userId")
	if !ok {
		return
	}

	var req models.RecalculateScoreRequest
	if !decodeOptionalBody[models.CreditScoreResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.RecalculateScore(r.Context(), actor, userID, req)
	respond(w, r, start, http.StatusOK, response, err)
}
