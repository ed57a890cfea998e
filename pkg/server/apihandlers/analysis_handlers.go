package apihandlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nerview/nerview/pkg/analysis"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/server/handlertools"
)

var validate = validator.New()

// AnalyzeHandler godoc
//
//	@Summary		Analyzes a text for named entities
//	@Description	Sends the text to the analysis service and returns the entities, the service's
//	@Description	per-label counts, the highlighted segments and the grouped entity list.
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.AnalyzeRequest	true	"Text to analyze"
//	@Success		200		{object}	models.AnalysisView
//	@Failure		400		{object}	models.APIError	"Bad Request"
//	@Failure		401		{object}	models.APIError	"Unauthorized"
//	@Failure		502		{object}	models.APIError	"Analysis Failed"
//	@Failure		500		{object}	models.APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/v1/analyze [post]
func AnalyzeHandler(service *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.AnalyzeRequest
		if err := handlertools.DecodeJSON(r, &request); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		if err := validate.Struct(request); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		view, err := service.Analyze(r.Context(), request.Text)
		if err != nil {
			handlertools.RenderError(w, err, handlertools.StatusFromError(err))
			return
		}

		if err := handlertools.EncodeJSON(w, view); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetAnalysisHandler godoc
//
//	@Summary		Returns a stored analysis
//	@Description	Renders a recent analysis again, marking entities whose text equals "selected".
//	@Tags			analysis
//	@Produce		json
//	@Param			analysisId	path		string	true	"Analysis UUID"
//	@Param			selected	query		string	false	"Selected entity text"
//	@Success		200			{object}	models.AnalysisView
//	@Failure		400			{object}	models.APIError	"Bad Request"
//	@Failure		404			{object}	models.APIError	"Not Found"
//	@Security		Bearer
//	@Router			/api/v1/analyses/{analysisId} [get]
func GetAnalysisHandler(service *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysisUUID := handlertools.UUIDFromURL(r, w, "analysisId")
		if analysisUUID == uuid.Nil {
			return
		}

		view, err := service.View(r.Context(), analysisUUID, r.URL.Query().Get("selected"))
		if err != nil {
			handlertools.RenderError(w, err, handlertools.StatusFromError(err))
			return
		}

		if err := handlertools.EncodeJSON(w, view); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
