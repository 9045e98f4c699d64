package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/sync/errgroup"

	"courserank/adapters/history"
)

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>courserank</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
img { max-width: 100%%; }
</style>
</head>
<body>
%s
</body>
</html>`

// Server exposes the latest run report over HTTP: the rendered markdown
// report, the chart image, and the aggregates as JSON.
type Server struct {
	router    *chi.Mux
	store     *history.Store
	outputDir string
	addr      string
}

// NewServer wires the read-only report routes.
func NewServer(addr, outputDir string, store *history.Store) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		store:     store,
		outputDir: outputDir,
		addr:      addr,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	// Matches the image reference inside the markdown report.
	s.router.Get("/rank_order.png", s.handleChart)
	s.router.Get("/api/aggregates", s.handleAggregates)

	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	md, err := os.ReadFile(filepath.Join(s.outputDir, "report.md"))
	if err != nil {
		http.Error(w, "no report yet; run `courserank analyze` first", http.StatusNotFound)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML(md, p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, page, body)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.outputDir, "rank_order.png"))
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	run, aggregates, err := s.store.LatestRun(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no runs recorded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run":        run,
		"aggregates": aggregates,
	})
}
