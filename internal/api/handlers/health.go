package handlers

import (
	"net/http"

	"github.com/craftfolio/craftfolio-server/internal/utils"
)

// Health returns a liveness handler naming the service.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "ok",
			Data:    map[string]string{"service": service},
		})
	}
}
