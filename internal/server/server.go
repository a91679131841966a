package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// APIPrefix is the path prefix of the mortgage API.
const APIPrefix = "/api/mortgage"

type handler struct {
	logger      *zap.Logger
	calculator  *mortgage.Calculator
	maxBodySize int64
	version     string
	metrics     *metrics
}

// errorResponse is the body of every failed API call. Errors holds either a
// rejection reason or a list of validation.FieldError.
type errorResponse struct {
	Status  string      `json:"status"`
	Errors  interface{} `json:"errors,omitempty"`
	Rule    string      `json:"rule,omitempty"`
	Message string      `json:"message,omitempty"`
}

type downPaymentResponse struct {
	IsValid               bool     `json:"isValid"`
	PropertyPrice         *float64 `json:"propertyPrice,omitempty"`
	DownPayment           *float64 `json:"downPayment,omitempty"`
	DownPaymentPercentage *float64 `json:"downPaymentPercentage,omitempty"`
	EmploymentType        string   `json:"employmentType,omitempty"`
	Error                 string   `json:"error,omitempty"`
}

// NewHandler constructs the HTTP handler that serves the web UI and mortgage API.
func NewHandler(logger *zap.Logger, calculator *mortgage.Calculator, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calculator == nil {
		calculator = mortgage.NewCalculator(mortgage.DefaultRules())
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = constants.DefaultVersion
	}

	h := &handler{
		logger:      logger,
		calculator:  calculator,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		metrics:     newMetrics(),
	}

	mux := http.NewServeMux()
	route := func(path string, fn http.HandlerFunc) {
		mux.Handle(path, h.withRequestLogging(path, withCORS(fn)))
	}

	route(APIPrefix+"/health", h.handleHealth)
	route(APIPrefix+"/sample", h.handleSample)
	route(APIPrefix+"/cmhc-info", h.handleInfo)
	route(APIPrefix+"/calculate", h.handleCalculate)
	route(APIPrefix+"/validate-down-payment", h.handleValidateDownPayment)

	// Version endpoint for UI metadata
	route("/api/version", h.handleVersion)

	mux.Handle("/metrics", h.metrics.handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) handleSample(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"example": validation.PayloadFromRequest(mortgage.SampleRequest()),
	})
}

func (h *handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	info := h.calculator.Rules().Info()
	if r.URL.Query().Get("format") != "yaml" {
		h.writeJSON(w, http.StatusOK, info)
		return
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode rules: %v", err), "server.handleInfo")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write YAML response", zap.String("op", "server.handleInfo"), zap.Error(err))
	}
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var payload validation.MortgagePayload
	if !h.decodeJSON(w, r, &payload, op) {
		h.metrics.calculations.WithLabelValues(outcomeInvalid).Inc()
		return
	}

	req, err := payload.ToRequest()
	if err != nil {
		h.metrics.calculations.WithLabelValues(outcomeInvalid).Inc()
		h.respondInvalid(w, r, err, op)
		return
	}

	outcome, err := h.calculator.Calculate(req)
	if err != nil {
		h.metrics.calculations.WithLabelValues(outcomeFault).Inc()
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}

	if !outcome.Accepted() {
		rej := outcome.Rejection
		h.metrics.calculations.WithLabelValues(outcomeRejected).Inc()
		h.metrics.rejections.WithLabelValues(string(rej.Rule)).Inc()
		h.logger.Info("mortgage request rejected",
			zap.String("op", op),
			zap.String("requestId", requestID(r.Context())),
			zap.String("rule", string(rej.Rule)),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Errors: rej.Reason, Rule: string(rej.Rule)})
		return
	}

	h.metrics.calculations.WithLabelValues(outcomeAccepted).Inc()
	h.logger.Info("mortgage calculated",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
		zap.String("schedule", string(req.PaymentSchedule)),
		zap.String("premiumRate", outcome.Result.InsurancePremiumRate.String()),
		zap.String("payment", outcome.Result.PaymentAmount.String()),
	)
	h.writeJSON(w, http.StatusOK, output.NewResultDocument(*outcome.Result))
}

func (h *handler) handleValidateDownPayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidateDownPayment"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var payload validation.DownPaymentPayload
	if status, err := h.readJSON(w, r, &payload); err != nil {
		h.logger.Warn("invalid down payment request",
			zap.String("op", op),
			zap.String("requestId", requestID(r.Context())),
			zap.Int("status", status),
			zap.Error(err),
		)
		h.writeJSON(w, status, downPaymentResponse{Error: invalidMessage(err)})
		return
	}

	check, err := payload.ToCheck()
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, downPaymentResponse{Error: invalidMessage(err)})
		return
	}

	pct, rej, err := h.calculator.CheckDownPayment(check.PropertyPrice, check.DownPayment, check.EmploymentType)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, downPaymentResponse{Error: err.Error()})
		return
	}
	if rej != nil {
		h.writeJSON(w, http.StatusBadRequest, downPaymentResponse{Error: rej.Reason})
		return
	}

	pctValue := pct.InexactFloat64()
	h.writeJSON(w, http.StatusOK, downPaymentResponse{
		IsValid:               true,
		PropertyPrice:         payload.PropertyPrice,
		DownPayment:           payload.DownPayment,
		DownPaymentPercentage: &pctValue,
		EmploymentType:        string(check.EmploymentType),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

// readJSON reads the request body into dst. On failure it returns the HTTP
// status to report: 413 past the body limit, otherwise 400 with a
// validation.SchemaError.
func (h *handler) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return http.StatusOK, nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
	}

	field := "body"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field = typeErr.Field
	}
	return http.StatusBadRequest, &validation.SchemaError{Fields: []validation.FieldError{
		{Field: field, Message: fmt.Sprintf("failed to decode request: %v", err)},
	}}
}

// decodeJSON wraps readJSON, writing the error response itself.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	status, err := h.readJSON(w, r, dst)
	switch {
	case err == nil:
		return true
	case status == http.StatusRequestEntityTooLarge:
		h.respondErrorWithOp(w, r, status, err.Error(), op)
	default:
		h.respondInvalid(w, r, err, op)
	}
	return false
}

// respondInvalid reports a request that failed schema validation.
func (h *handler) respondInvalid(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.logger.Warn("invalid mortgage request",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
		zap.Error(err),
	)

	var schemaErr *validation.SchemaError
	if errors.As(err, &schemaErr) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Errors: schemaErr.Fields})
		return
	}
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Errors: err.Error()})
}

func invalidMessage(err error) string {
	var schemaErr *validation.SchemaError
	if !errors.As(err, &schemaErr) {
		return err.Error()
	}
	messages := make([]string, len(schemaErr.Fields))
	for i, f := range schemaErr.Fields {
		if f.Message == validation.MissingDownPaymentFields {
			return f.Message
		}
		messages[i] = f.Field + " " + f.Message
	}
	return strings.Join(messages, "; ")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("mortgage request failed",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, errorResponse{Status: "error", Message: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
