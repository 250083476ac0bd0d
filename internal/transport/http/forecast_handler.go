package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apierrors "kpicast/internal/errors"
	"kpicast/internal/exporter"
	"kpicast/internal/infrastructure"
	"kpicast/internal/middleware"
	api "kpicast/pkg/contracts/api/v1"
	"kpicast/pkg/contracts/domain"
)

// ForecastHandler handles the forecast endpoints
type ForecastHandler struct {
	service      ForecastServiceInterface
	exports      ExportServiceInterface
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	metrics      *infrastructure.BusinessMetrics
	logger       *slog.Logger
}

// NewForecastHandler creates a new forecast handler. metrics may be nil.
func NewForecastHandler(
	service ForecastServiceInterface,
	exports ExportServiceInterface,
	validator *middleware.Validator,
	errorHandler *apierrors.ErrorHandler,
	metrics *infrastructure.BusinessMetrics,
	logger *slog.Logger,
) *ForecastHandler {
	return &ForecastHandler{
		service:      service,
		exports:      exports,
		validator:    validator,
		errorHandler: errorHandler,
		metrics:      metrics,
		logger:       logger.With(slog.String("handler", "forecast")),
	}
}

// RegisterRoutes registers the forecast routes on r
func (h *ForecastHandler) RegisterRoutes(r chi.Router) {
	r.Post("/forecast_and_explain", h.ForecastAndExplain)
	r.Post("/forecast_and_explain/export", h.Export)
}

// ForecastAndExplain handles POST /forecast_and_explain
func (h *ForecastHandler) ForecastAndExplain(w http.ResponseWriter, r *http.Request) {
	history, err := h.decodeHistory(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, h.service.ForecastAndExplain(r.Context(), history))
}

// Export handles POST /forecast_and_explain/export?format=csv|xlsx
func (h *ForecastHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := api.ExportRequest{Format: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.recordValidationFailure(r)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormatError(req.Format))
		return
	}

	history, err := h.decodeHistory(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	doc, err := h.exports.Export(r.Context(), format, history)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ExportError(string(format), err))
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export body",
			slog.String("error", err.Error()))
	}
}

// decodeHistory reads the request body as a JSON array of points and
// validates every element. All element failures are reported together.
func (h *ForecastHandler) decodeHistory(r *http.Request) ([]domain.TimeSeriesPoint, error) {
	raw, err := decodeArray(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		h.recordValidationFailure(r)
		return nil, bodyError(err)
	}
	if raw == nil {
		h.recordValidationFailure(r)
		return nil, apierrors.ErrValidation("body", "body must be a JSON array")
	}

	history := make([]domain.TimeSeriesPoint, 0, len(raw))
	var fieldErrs []apierrors.ValidationError

	for i, elem := range raw {
		prefix := fmt.Sprintf("body[%d].", i)

		var point api.TimeSeriesPointRequest
		mistyped := ""
		if err := unmarshalPoint(elem, &point); err != nil {
			fe := elementError(prefix, err)
			fieldErrs = append(fieldErrs, fe)
			if fe.Field == strings.TrimSuffix(prefix, ".") {
				continue
			}
			mistyped = fe.Field
		}

		errs := h.validator.FieldErrors(point, prefix)
		for _, fe := range errs {
			if fe.Field != mistyped {
				fieldErrs = append(fieldErrs, fe)
			}
		}
		if mistyped == "" && len(errs) == 0 {
			history = append(history, point.ToDomain())
		}
	}

	if len(fieldErrs) > 0 {
		h.recordValidationFailure(r)
		return nil, apierrors.NewValidationErrors(fieldErrs)
	}

	return history, nil
}

// decodeArray decodes a single JSON value from body and rejects anything
// after it. render.DecodeJSON stops at the first value and discards the rest.
func decodeArray(body io.Reader) ([]json.RawMessage, error) {
	defer func() { _, _ = io.Copy(io.Discard, body) }()

	dec := json.NewDecoder(body)

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, errTrailingData
	}

	return raw, nil
}

var errTrailingData = errors.New("unexpected data after JSON value")

// unmarshalPoint decodes one array element, matching the day and value
// keys exactly. encoding/json alone would accept "DAY" or "Value".
func unmarshalPoint(elem json.RawMessage, point *api.TimeSeriesPointRequest) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return err
	}

	exact := make(map[string]json.RawMessage, 2)
	for _, key := range []string{"day", "value"} {
		if v, ok := fields[key]; ok {
			exact[key] = v
		}
	}

	data, err := json.Marshal(exact)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, point)
}

// bodyError maps a whole-body decode failure to a validation error
func bodyError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return apierrors.ErrValidation("body", "body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, errTrailingData):
		return apierrors.ErrValidation("body", "body must be valid JSON")
	case errors.As(err, &typeErr):
		return apierrors.ErrValidation("body", "body must be a JSON array")
	default:
		return apierrors.InvalidRequestWithError(err)
	}
}

// elementError maps a decode failure of one array element to a field error
func elementError(prefix string, err error) apierrors.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return apierrors.ValidationError{
			Field:   strings.TrimSuffix(prefix, "."),
			Message: "item must be an object with day and value",
		}
	}

	field := typeErr.Field
	message := fmt.Sprintf("%s has an invalid type", field)

	kind := typeErr.Type.Kind()
	if kind == reflect.Ptr {
		kind = typeErr.Type.Elem().Kind()
	}
	switch kind {
	case reflect.String:
		message = fmt.Sprintf("%s must be a string", field)
	case reflect.Float64:
		message = fmt.Sprintf("%s must be a number", field)
		if strings.HasPrefix(typeErr.Value, "number") {
			message = fmt.Sprintf("%s must be a finite number within forecast range", field)
		}
	}

	return apierrors.ValidationError{Field: prefix + field, Message: message}
}

// recordValidationFailure counts a rejected request body
func (h *ForecastHandler) recordValidationFailure(r *http.Request) {
	if h.metrics == nil {
		return
	}
	h.metrics.ValidationFailures.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("route", r.URL.Path)))
}
