package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

type ActorController struct {
	service service_interfaces.ActorService
}

func NewActorController(service service_interfaces.ActorService) *ActorController {
	return &ActorController{service: service}
}

func (c *ActorController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register(mux, authMiddleware, route{"POST /actors", c.createActor})
}

func (c *ActorController) createActor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	actor, ok := authenticated[models.ActorResponse](w, r, start)
	if !ok {
		return
	}

	var req models.CreateActorRequest
	if !decodeBody[models.ActorResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.CreateActor(r.Context(), actor, req)
	respond(w, r, start, http.StatusCreated, response, err)
}
