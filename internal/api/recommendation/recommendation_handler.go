package recommendation

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/api"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const internalErrorMessage = "An internal error occurred while processing the recommendation"

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// Recover turns a panic in a recommendation handler into a SYS001 response.
func (h *HandlerImpl) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.logger.ErrorContext(r.Context(), "Recovered from panic in recommendation handler",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternal, internalErrorMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// KeywordTemplate godoc
// @Summary      Recommend itineraries from keywords
// @Description  Builds day-by-day itinerary options from per-category keyword preferences.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body types.RecommendRequest true "Trip dates, travelers and keywords"
// @Success      200 {object} api.Envelope{data=types.RecommendResponse}
// @Failure      400 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /recommendations/keyword-template [post]
func (h *HandlerImpl) KeywordTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "KeywordTemplate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/recommendations/keyword-template"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "KeywordTemplate"))
	l.DebugContext(ctx, "Keyword template handler invoked")

	var req types.RecommendRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	if err := api.ValidateStruct(&req); err != nil {
		l.WarnContext(ctx, "Request validation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	resp, err := h.service.Recommend(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}

	l.InfoContext(ctx, "Itinerary recommendation served", slog.Int("options", len(resp.Options)))
	api.SuccessResponse(w, r, http.StatusOK, resp)
}

// EnhancedKeyword godoc
// @Summary      Recommend places by review content
// @Description  Scores the places of one category against the keywords and samples a varied shortlist.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body types.EnhancedKeywordRequest true "Category, keywords and limit"
// @Success      200 {object} api.Envelope{data=[]types.Place}
// @Failure      400 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /recommendations/enhanced-keyword [post]
func (h *HandlerImpl) EnhancedKeyword(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "EnhancedKeyword", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/recommendations/enhanced-keyword"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "EnhancedKeyword"))

	var req types.EnhancedKeywordRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	if err := api.ValidateStruct(&req); err != nil {
		l.WarnContext(ctx, "Request validation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	places, err := h.service.EnhancedRecommend(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.SuccessResponse(w, r, http.StatusOK, places)
}

// KeywordWeights godoc
// @Summary      Keyword combination weights
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body types.KeywordWeightsRequest true "Keywords"
// @Success      200 {object} api.Envelope{data=map[string]number}
// @Failure      400 {object} api.Envelope
// @Router       /recommendations/keyword-weights [post]
func (h *HandlerImpl) KeywordWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "KeywordWeights"))

	var req types.KeywordWeightsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	if err := api.ValidateStruct(&req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	weights, err := h.service.KeywordWeights(ctx, req.Keywords)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.SuccessResponse(w, r, http.StatusOK, weights)
}

// Health godoc
// @Summary      Embedding data status
// @Tags         health
// @Produce      json
// @Success      200 {object} api.Envelope{data=types.StoreStats}
// @Router       /healthz [get]
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	api.SuccessResponse(w, r, http.StatusOK, h.service.Stats(r.Context()))
}

func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	if IsClientError(err) {
		l.WarnContext(r.Context(), "Rejected recommendation request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	l.ErrorContext(r.Context(), "Recommendation failed", slog.Any("error", err))
	api.ErrorResponse(w, r, http.StatusInternalServerError, api.CodeInternal, internalErrorMessage)
}
