// Package api - HTTP handlers for cost estimation
// These handlers wrap the engine - they contain NO estimation logic.
// All logic is delegated to core packages.
package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"reuse-cost/core/catalog"
	"reuse-cost/core/determinism"
	"reuse-cost/core/output"
	"reuse-cost/core/types"
	"reuse-cost/core/validation"
	"reuse-cost/internal/errors"
)

// failure is a handled error destined for writeError
type failure struct {
	status   int
	code     string
	message  string
	messages []string
}

// handleRainwater handles POST /api/estimate/rainwater
func (s *Server) handleRainwater(w http.ResponseWriter, r *http.Request) {
	s.handleEstimate(w, r, types.SystemRainwater)
}

// handleHVAC handles POST /api/estimate/hvac
func (s *Server) handleHVAC(w http.ResponseWriter, r *http.Request) {
	s.handleEstimate(w, r, types.SystemHVAC)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request, system types.SystemKind) {
	start := time.Now()
	entry := newAuditEntry(r, system)
	defer s.audit(&entry, start)

	result, hash, f := s.execute(w, r, system)
	entry.InputHash = hash
	if f != nil {
		entry.MarkFailed(f.code, f.message)
		writeError(w, f.code, f.message, f.messages, f.status)
		return
	}
	entry.Total = result.Breakdown.Total.String()

	report := s.report(r, result)
	writeJSON(w, &EstimateResponse{
		Status:   "success",
		Document: output.NewDocument(report),
		Metadata: &ResponseMetadata{
			InputHash:      hash,
			EngineVersion:  s.version,
			CatalogVersion: s.estimator.Catalog().Version,
			DurationMs:     time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleReport handles POST /api/report/{system}?format=pdf|xlsx|markdown|json|cli
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	system := types.SystemKind(mux.Vars(r)["system"])
	entry := newAuditEntry(r, system)
	defer s.audit(&entry, start)

	format := output.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = output.FormatPDF
	}
	formatter, err := s.formatters.Get(format)
	if err != nil {
		entry.MarkFailed("UNSUPPORTED_FORMAT", err.Error())
		writeError(w, "UNSUPPORTED_FORMAT", err.Error(), s.formatters.Formats(), http.StatusBadRequest)
		return
	}

	result, hash, f := s.execute(w, r, system)
	entry.InputHash = hash
	if f != nil {
		entry.MarkFailed(f.code, f.message)
		writeError(w, f.code, f.message, f.messages, f.status)
		return
	}
	entry.Total = result.Breakdown.Total.String()

	var buf bytes.Buffer
	if err := formatter.Render(&buf, s.report(r, result)); err != nil {
		s.logger.Error("report rendering failed", zap.String("format", string(format)), zap.Error(err))
		entry.MarkFailed("RENDER_ERROR", err.Error())
		writeError(w, "RENDER_ERROR", err.Error(), nil, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	if output.Binary(format) {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(system)+"-estimate."+string(format)))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleCatalog handles GET /api/catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.estimator.Catalog()
	writeJSON(w, &CatalogResponse{
		Version:   cat.Version,
		Currency:  cat.Currency,
		Rates:     cat.Entries(),
		Constants: cat.Constants(),
		Options: map[string][]string{
			"roof_type":            catalog.Keys(cat.Rainwater.RoofEfficiency),
			"gutter_material":      catalog.Keys(cat.Rainwater.Gutters),
			"piping_material":      catalog.Keys(cat.Rainwater.Piping),
			"tank_material":        catalog.Keys(cat.Rainwater.Tanks),
			"pump_size":            catalog.Keys(cat.Rainwater.Pumps),
			"hvac_piping_material": catalog.Keys(cat.HVAC.Piping),
			"hvac_tank_type":       catalog.Keys(cat.HVAC.Tanks),
			"hvac_pump_type":       catalog.Keys(cat.HVAC.Pumps),
		},
	}, http.StatusOK)
}

// execute decodes, validates and prices one request
func (s *Server) execute(w http.ResponseWriter, r *http.Request, system types.SystemKind) (*types.CalculatorResult, string, *failure) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var (
		result *types.CalculatorResult
		hash   string
		err    error
	)
	switch system {
	case types.SystemRainwater:
		var req RainwaterRequest
		if err := dec.Decode(&req); err != nil {
			return nil, "", &failure{status: http.StatusBadRequest, code: "INVALID_JSON", message: err.Error()}
		}
		hash = s.inputHash(system, &req)
		result, err = s.estimator.ValidatedRainwater(req.Input())
	case types.SystemHVAC:
		var req HVACRequest
		if err := dec.Decode(&req); err != nil {
			return nil, "", &failure{status: http.StatusBadRequest, code: "INVALID_JSON", message: err.Error()}
		}
		hash = s.inputHash(system, &req)
		result, err = s.estimator.ValidatedHVAC(req.Input())
	default:
		return nil, "", &failure{status: http.StatusNotFound, code: "NOT_FOUND", message: "unknown system " + string(system)}
	}

	var failed *validation.Failed
	if stderrors.As(err, &failed) {
		s.logger.Warn("input rejected",
			zap.String("system", string(system)),
			zap.Int("errors", len(failed.Messages)))
		return nil, hash, &failure{
			status:   http.StatusUnprocessableEntity,
			code:     "VALIDATION_ERROR",
			message:  fmt.Sprintf("%s input is invalid", system),
			messages: failed.Messages,
		}
	}
	if err != nil {
		s.logger.Error("estimate failed", zap.String("system", string(system)), zap.Error(err))
		return nil, hash, &failure{status: http.StatusInternalServerError, code: string(errors.TypeOf(err)), message: err.Error()}
	}
	return result, hash, nil
}

// report applies the ranges and formulas query options
func (s *Server) report(r *http.Request, result *types.CalculatorResult) *output.Report {
	report := output.NewReport(result, s.estimator.Catalog().Version)
	report.Variation = s.variation
	q := r.URL.Query()
	if v, err := strconv.ParseBool(q.Get("ranges")); err == nil {
		report.ShowRanges = v
	}
	if v, err := strconv.ParseBool(q.Get("formulas")); err == nil {
		report.ShowFormulas = v
	}
	return report
}

func contentType(format output.Format) string {
	switch format {
	case output.FormatPDF:
		return "application/pdf"
	case output.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case output.FormatJSON:
		return "application/json"
	case output.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// inputHash identifies a request by its decoded content
func (s *Server) inputHash(system types.SystemKind, req interface{}) string {
	hash, err := determinism.HashJSON(string(system), req)
	if err != nil {
		s.logger.Warn("input hash unavailable", zap.Error(err))
		return ""
	}
	return hash.Hex()
}

func (s *Server) audit(entry *AuditEntry, start time.Time) {
	entry.SetDuration(time.Since(start))
	if err := s.auditor.Log(*entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
