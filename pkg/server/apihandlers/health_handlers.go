package apihandlers

import (
	"net/http"

	"github.com/nerview/nerview/pkg/analysis"
	"github.com/nerview/nerview/pkg/server/handlertools"
)

type HealthResponse struct {
	Status string         `json:"status"`
	NLP    map[string]any `json:"nlp"`
}

// GetHealthHandler godoc
//
//	@Summary		Reports server health
//	@Description	Also probes the analysis service. An unreachable service yields "nlp": null.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/api/v1/health [get]
func GetHealthHandler(service *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := HealthResponse{
			Status: "healthy",
			NLP:    service.Health(r.Context()),
		}

		if err := handlertools.EncodeJSON(w, res); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
