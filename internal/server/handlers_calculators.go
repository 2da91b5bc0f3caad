package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/output"
)

type calculationResponse struct {
	Kind      domain.ScenarioKind      `json:"kind"`
	Title     string                   `json:"title"`
	Input     domain.CalculationInput  `json:"input"`
	Result    domain.CalculationResult `json:"result"`
	Breakdown []domain.Amount          `json:"breakdown"`
	Total     *float64                 `json:"total"`
	Schedule  []domain.SchedulePoint   `json:"schedule"`
}

// handleCalculate handles POST /api/calculators/{kind}. An empty body runs
// the calculator with its opening values.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	report, ok := s.calculate(w, r)
	if !ok {
		return
	}

	resp := calculationResponse{
		Kind:      report.Kind,
		Title:     report.Kind.Title(),
		Input:     report.Input,
		Result:    report.Result,
		Breakdown: report.Result.Breakdown(),
		Schedule:  report.Schedule,
	}
	if total, ok := report.Result.GrandTotal(); ok {
		resp.Total = &total
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleCalculateChart handles POST /api/calculators/{kind}/chart.png.
func (s *Server) handleCalculateChart(w http.ResponseWriter, r *http.Request) {
	report, ok := s.calculate(w, r)
	if !ok {
		return
	}

	png, err := output.RenderScheduleChart(report.Kind.Title()+" projection", report.Kind, report.Schedule)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(report.Kind)).Msg("chart render failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) (domain.ScenarioReport, bool) {
	kind, err := domain.ParseScenarioKind(r.PathValue("kind"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Unknown calculator: "+r.PathValue("kind"))
		return domain.ScenarioReport{}, false
	}

	input, err := s.decodeInput(w, r, kind)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return domain.ScenarioReport{}, false
	}

	report, err := s.engine.RunScenario(r.Context(), domain.NamedScenario{Input: input})
	if err != nil {
		writeCalculationError(w, err)
		return domain.ScenarioReport{}, false
	}
	return report, true
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request, kind domain.ScenarioKind) (domain.CalculationInput, error) {
	var raw json.RawMessage
	if err := readJSON(w, r, &raw); err != nil {
		if errors.Is(err, errEmptyBody) {
			return domain.DefaultInput(kind)
		}
		return nil, err
	}
	return domain.DecodeInput(kind, func(v any) error {
		return json.Unmarshal(raw, v)
	})
}

func writeCalculationError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: err.Error(),
			Fields:  map[string]string{verr.Field: verr.Message},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, calculation.ErrUnknownScenario):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "Calculation failed")
	}
}
