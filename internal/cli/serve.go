package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
)

// serveCommand creates the "serve" command that previews a diagram over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Preview a diagram over HTTP",
		Long: `Serve a diagram file over HTTP. The file is read on every request, so
edits made in another window show up on reload.

Endpoints:
  GET /diagram.json   the diagram document
  GET /diagram.png    PNG rendering (?scale=2)
  GET /diagram.svg    Graphviz SVG rendering
  GET /diagram.dot    Graphviz source
  GET /healthz        liveness check`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if err := validateScale(c.Config.Export.Scale); err != nil {
				return err
			}
			cch, err := c.newCache(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer cch.Close()
			ttl, _ := c.Config.CacheTTL()

			logger := loggerFromContext(cmd.Context())
			path := c.Config.ResolvePath(args[0])
			h := newPreviewHandler(path, newArtifacts(cch, ttl, logger), renderOptions{
				scale:   c.Config.Export.Scale,
				padding: c.Config.Export.Padding,
			}, logger)

			printSuccess("Serving %s", StyleValue.Render(path))
			printDetail("Open %s", StyleLink.Render("http://"+displayAddr(addr)+"/diagram.png"))
			return serve(cmd.Context(), addr, h, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// serve runs the server until ctx is canceled.
func serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// newPreviewHandler routes the preview endpoints for the diagram at path.
func newPreviewHandler(path string, a *artifacts, defaults renderOptions, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/diagram.{format}", func(w http.ResponseWriter, req *http.Request) {
		format := chi.URLParam(req, "format")
		if err := validateFormat(format); err != nil {
			writeError(w, logger, err)
			return
		}
		opts := defaults
		if s := req.URL.Query().Get("scale"); s != "" {
			scale, err := strconv.ParseFloat(s, 64)
			if err != nil || validateScale(scale) != nil {
				writeError(w, logger, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", s))
				return
			}
			opts.scale = scale
		}
		opts.detailed = req.URL.Query().Has("detailed")

		d, err := pkgio.ImportJSON(path)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		data, cached, err := a.render(req.Context(), d, format, opts)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		w.Header().Set("Content-Type", contentType(format))
		w.Header().Set("Cache-Control", "no-cache")
		if cached {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(data)
	})

	return r
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		logger.Error("request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start).Round(time.Millisecond),
				"id", middleware.GetReqID(r.Context()))
		})
	}
}
