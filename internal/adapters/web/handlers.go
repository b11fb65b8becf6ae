package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invoice-dashboard/internal/app"
	"invoice-dashboard/internal/core"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.stats)
		r.Get("/invoice-trends", h.invoiceTrends)
		r.Get("/vendors/top10", h.topVendors)
		r.Get("/category-spend", h.categorySpend)
		r.Get("/cash-outflow", h.cashOutflow)
		r.Get("/invoices", h.listInvoices)
		r.Post("/chat-with-data", h.chatWithData)
	})

	h.router = r
	return r
}

// health reports service and database status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := h.svc.Health(r.Context()); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(response{Status: "degraded", Database: "unreachable"})
		return
	}
	writeJSON(w, response{Status: "ok", Database: "connected"})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetSummaryStats(r.Context())
	if err != nil {
		writeError(w, r, "failed to load summary stats", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (h *Handler) invoiceTrends(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, 0)
	if !ok {
		return
	}
	points, err := h.svc.GetMonthlyTrend(r.Context(), limit)
	if err != nil {
		writeError(w, r, "failed to load invoice trends", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []core.TrendPoint{}
	}
	writeJSON(w, points)
}

func (h *Handler) topVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.GetTopVendors(r.Context(), 10)
	if err != nil {
		writeError(w, r, "failed to load top vendors", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if vendors == nil {
		vendors = []core.VendorSpend{}
	}
	writeJSON(w, vendors)
}

func (h *Handler) categorySpend(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.GetCategorySpend(r.Context())
	if err != nil {
		writeError(w, r, "failed to load category spend", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []core.CategorySpend{}
	}
	writeJSON(w, categories)
}

func (h *Handler) cashOutflow(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, 0)
	if !ok {
		return
	}
	points, err := h.svc.GetCashOutflowForecast(r.Context(), limit)
	if err != nil {
		writeError(w, r, "failed to load cash outflow forecast", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []core.OutflowPoint{}
	}
	writeJSON(w, points)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, 0)
	if !ok {
		return
	}
	search := r.URL.Query().Get("search")

	invoices, err := h.svc.ListInvoices(r.Context(), search, limit)
	if err != nil {
		writeError(w, r, "failed to load invoices", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if invoices == nil {
		invoices = []core.InvoiceRow{}
	}
	writeJSON(w, invoices)
}

type chatRequest struct {
	Question string `json:"question"`
}

// chatWithData answers a free-text question. Store failures surface in
// the response body, not as an HTTP error, so the client always gets
// the query that ran.
func (h *Handler) chatWithData(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Question == "" {
		writeError(w, r, "question is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.svc.AnswerChat(r.Context(), req.Question))
}

// queryLimit parses the optional limit query parameter. Returns
// fallback when absent; writes HTTP 400 and returns ok=false when
// present but not a positive integer.
func queryLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, r, "limit must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
