package main

import (
	"bufio"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	httpadapter "svw.info/battleship/internal/adapters/http"
	"svw.info/battleship/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets the websocket upgrader take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"dur", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API, the websocket stream and the web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Wire use cases → HTTP adapter
			h := httpadapter.New(a.uc, a.cfg.BoardSize)

			r := mux.NewRouter()
			r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
			r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := web.Index(w, a.cfg.BoardSize); err != nil {
					http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
				}
			}).Methods(http.MethodGet)
			h.Register(r)
			r.Use(requestLogger(a.logger))

			// Build the default board's tables before accepting requests.
			if _, _, err := a.uc.Tables(cmd.Context(), a.cfg.BoardSize); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			a.logger.Info("listening", "addr", a.cfg.Addr, "persist", a.cfg.PersistPath, "size", a.cfg.BoardSize)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("server error", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
