package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Server serves the dashboard page, its JSON view and chart images.
type Server struct {
	data   *Data
	logger *slog.Logger
	router chi.Router
}

// NewServer builds the dashboard router over data.
func NewServer(data *Data, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{data: data, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/years", s.handleYears)
		r.Get("/view", s.handleView)
	})
	r.Get("/charts/{name}.png", s.handleChart)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)))
	})
}

// selectedYear reads the year query parameter, defaulting to the latest
// common year.
func (s *Server) selectedYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return DefaultYear(s.data), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"years":   CommonYears(s.data),
		"default": DefaultYear(s.data),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	year, err := s.selectedYear(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	render.JSON(w, r, BuildView(s.data, year))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	year, err := s.selectedYear(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	chart, ok := BuildView(s.data, year).Chart(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := WritePNG(w, chart); err != nil {
		s.logger.Error("Failed to render chart",
			slog.String("chart", name),
			slog.Int("year", year),
			slog.String("error", err.Error()))
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
	}
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"billions": func(v float64) string { return strconv.FormatFloat(v/1e9, 'f', 2, 64) + "B" },
	"fixed":    func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Digital Payments Dashboard</title></head>
<body>
<h1>Digital Payments Dashboard</h1>
<form method="get" action="/">
  <label for="year">Select Year</label>
  <select id="year" name="year" onchange="this.form.submit()">
  {{- range .View.Years}}
    <option value="{{.}}"{{if eq . $.View.Year}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
</form>
<h4>Key Metrics Overview</h4>
<table>
  <tr><th>E-Payments per Capita</th><th>POS Terminals per 1,000</th><th>ATMs per 1,000</th><th>Total Payment Value (RM)</th></tr>
  <tr><td>{{fixed .View.KPIs.EPaymentsPerCapita}}</td><td>{{fixed .View.KPIs.POSPer1000}}</td><td>{{fixed .View.KPIs.ATMPer1000}}</td><td>{{billions .View.KPIs.TotalValue}}</td></tr>
</table>
{{range .View.Charts}}
<div class="chart{{if .Placeholder}} placeholder{{end}}">
  <img src="/charts/{{.Name}}.png?year={{$.View.Year}}" alt="{{.Title}}">
</div>
{{end}}
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	year, err := s.selectedYear(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ View *View }{View: BuildView(s.data, year)}); err != nil {
		s.logger.Error("Failed to render index", slog.String("error", err.Error()))
	}
}
