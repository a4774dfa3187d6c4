package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
)

// maxTrendMonths bounds /v1/trend?months=N.
const maxTrendMonths = 120

type recommendationResponse struct {
	Category          model.Category `json:"category"`
	Label             string         `json:"label"`
	RecommendedAmount float64        `json:"recommended_amount"`
	ActualAmount      float64        `json:"actual_amount"`
	Percentage        float64        `json:"percentage"`
	Status            model.Status   `json:"status"`
}

type analysisResponse struct {
	Month             string                   `json:"month"`
	TotalIncome       float64                  `json:"total_income"`
	TotalExpenses     float64                  `json:"total_expenses"`
	NetIncome         float64                  `json:"net_income"`
	SavingsRate       float64                  `json:"savings_rate"`
	NeedsPercentage   float64                  `json:"needs_percentage"`
	WantsPercentage   float64                  `json:"wants_percentage"`
	SavingsPercentage float64                  `json:"savings_percentage"`
	Recommendations   []recommendationResponse `json:"recommendations"`
}

type trendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type categoryAmount struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Amount   float64        `json:"amount"`
}

type categoryShare struct {
	Category   model.Category `json:"category"`
	Amount     float64        `json:"amount"`
	Percentage float64        `json:"percentage"`
}

type categoriesResponse struct {
	Month     string           `json:"month"`
	Spending  []categoryAmount `json:"spending"`
	Breakdown []categoryShare  `json:"breakdown"`
}

// Handler returns the HTTP API router.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/analysis", s.handleAnalysis).Methods(http.MethodGet)
	v1.HandleFunc("/trend", s.handleTrend).Methods(http.MethodGet)
	v1.HandleFunc("/categories", s.handleCategories).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	v1.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func monthLabel(t time.Time) string {
	return pipeline.MonthStart(t).Format(pipeline.MonthLabelLayout)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleAnalysis(w http.ResponseWriter, _ *http.Request) {
	now := s.cfg.Now()
	d := s.currentData()
	a := pipeline.Analyze(d.Incomes, d.Expenses, now)

	resp := analysisResponse{
		Month:             monthLabel(now),
		TotalIncome:       a.TotalIncome,
		TotalExpenses:     a.TotalExpenses,
		NetIncome:         a.NetIncome,
		SavingsRate:       a.SavingsRate,
		NeedsPercentage:   a.NeedsPercentage,
		WantsPercentage:   a.WantsPercentage,
		SavingsPercentage: a.SavingsPercentage,
		Recommendations:   make([]recommendationResponse, 0, len(a.Recommendations)),
	}
	for _, r := range a.Recommendations {
		resp.Recommendations = append(resp.Recommendations, recommendationResponse{
			Category:          r.Category,
			Label:             r.Category.Label(),
			RecommendedAmount: r.RecommendedAmount,
			ActualAmount:      r.ActualAmount,
			Percentage:        r.Percentage,
			Status:            r.Status,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleTrend(w http.ResponseWriter, r *http.Request) {
	months := s.cfg.TrendMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxTrendMonths {
			http.Error(w, fmt.Sprintf("months must be an integer between 0 and %d", maxTrendMonths), http.StatusBadRequest)
			return
		}
		months = n
	}

	d := s.currentData()
	series := pipeline.MonthlyTrend(d.Incomes, d.Expenses, months, s.cfg.Now())
	points := make([]trendPoint, 0, len(series))
	for _, p := range series {
		points = append(points, trendPoint{Month: p.Label, Income: p.Income, Expenses: p.Expenses, Net: p.Net()})
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Service) handleCategories(w http.ResponseWriter, _ *http.Request) {
	now := s.cfg.Now()
	d := s.currentData()
	spending := pipeline.CategorySpending(d.Expenses, now)

	resp := categoriesResponse{
		Month:     monthLabel(now),
		Spending:  make([]categoryAmount, 0, len(model.Categories)),
	}
	for _, c := range model.Categories {
		resp.Spending = append(resp.Spending, categoryAmount{Category: c, Label: c.Label(), Amount: spending[c]})
	}
	shares := pipeline.CategoryBreakdown(d.Expenses, now)
	resp.Breakdown = make([]categoryShare, 0, len(shares))
	for _, sh := range shares {
		resp.Breakdown = append(resp.Breakdown, categoryShare(sh))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
