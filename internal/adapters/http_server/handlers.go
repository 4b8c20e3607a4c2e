package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/app"
	"github.com/MatthiasStrafinger/google-hotels-scraper/internal/domain"
)

const serviceName = "Vienna Hotel Revenue Management API"
const serviceVersion = "1.0.0"

type Handlers struct {
	Q        app.PriceService
	Sources  []domain.SourceConfig
	validate *validator.Validate
}

func NewHandlers(q app.PriceService, sources []domain.SourceConfig) *Handlers {
	return &Handlers{Q: q, Sources: sources, validate: validator.New()}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.index)
	s.mux.Get("/api/health", h.health)
	s.mux.Post("/api/fetch-prices", h.fetchPrices)
}

type stayRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"omitempty,min=1,max=16"`
}

type pricesResponse struct {
	Success   bool                  `json:"success"`
	Data      []domain.PriceOutcome `json:"data"`
	Nights    int                   `json:"nights"`
	Timestamp string                `json:"timestamp"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *Handlers) fetchPrices(w http.ResponseWriter, r *http.Request) {
	var req stayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.Guests == 0 {
		req.Guests = domain.DefaultGuests
	}

	stay, err := domain.NewStayQuery(req.CheckIn, req.CheckOut, req.Guests)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Q.FetchPrices(r.Context(), stay)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStay) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("price aggregation failed")
		writeError(w, r, http.StatusInternalServerError, "failed to fetch prices")
		return
	}

	writeJSON(w, http.StatusOK, pricesResponse{
		Success:   true,
		Data:      report.Outcomes,
		Nights:    report.Nights,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Vienna Hotel Revenue API</title></head>
<body style="font-family: Arial; padding: 40px; max-width: 800px; margin: 0 auto;">
<h1>` + serviceName + `</h1>
<h2>Endpoints</h2>
<h3>POST /api/fetch-prices</h3>
<p>Fetch competitor prices for a stay</p>
<pre style="background: #f4f4f4; padding: 15px; border-radius: 5px;">
{
    "check_in": "2024-03-15",
    "check_out": "2024-03-17",
    "guests": 2
}
</pre>
<h3>GET /api/health</h3>
<p>Health check endpoint</p>
<h2>Configured sources</h2>
<ul>
`)
	for _, src := range h.Sources {
		b.WriteString("<li>" + html.EscapeString(src.Name))
		if src.IsMine {
			b.WriteString(" (own property)")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(b.String())); err != nil {
		log.Error().Err(err).Msg("failed to write index body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	reqID := r.Header.Get("X-Request-Id")
	if reqID == "" {
		reqID = uuid.New().String()
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg, RequestID: reqID})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields = append(fields, fmt.Sprintf("%s is required", jsonField(fe.Field())))
		case "datetime":
			fields = append(fields, fmt.Sprintf("%s must be YYYY-MM-DD", jsonField(fe.Field())))
		default:
			fields = append(fields, fmt.Sprintf("%s is invalid", jsonField(fe.Field())))
		}
	}
	return strings.Join(fields, ", ")
}

func jsonField(name string) string {
	switch name {
	case "CheckIn":
		return "check_in"
	case "CheckOut":
		return "check_out"
	case "Guests":
		return "guests"
	}
	return name
}
