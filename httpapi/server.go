package httpapi

import (
	"bufio"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/refget"
)

// writeBufferSize batches small representation writes.
const writeBufferSize = 64 * 1024

// Observer records per-route request metrics.
type Observer interface {
	ObserveHTTP(route string, status int, duration time.Duration)
}

type options struct {
	logger         *refget.Logger
	observer       Observer
	metricsHandler http.Handler
}

// Option configures New.
type Option func(*options)

// WithLogger sets the access logger. Defaults to the service logger.
func WithLogger(l *refget.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver records request metrics.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metricsHandler = h
	}
}

// Server exposes a refget.Service over HTTP.
type Server struct {
	svc  *refget.Service
	opts options
	mux  *http.ServeMux
}

// New creates the HTTP handler for svc.
func New(svc *refget.Service, optFns ...Option) *Server {
	opts := options{logger: svc.Logger()}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = refget.NoopLogger()
	}

	s := &Server{svc: svc, opts: opts, mux: http.NewServeMux()}

	s.handle("GET /faidx/metadata/{id}", "metadata", s.handleMetadata)
	s.handle("GET /faidx/metadata/{algorithm}/{id}", "metadata_label", s.handleMetadata)
	s.handle("GET /faidx/{id}", "sequence", s.handleSequence)
	s.handle("GET /faidx/{algorithm}/{id}", "sequence_label", s.handleSequence)
	s.handle("GET /healthz", "healthz", handleHealth)
	if opts.metricsHandler != nil {
		s.mux.Handle("GET /metrics", opts.metricsHandler)
	}
	return s
}

func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(route, h))
}

// ServeHTTP implements http.Handler. Trailing slashes are ignored.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		r2 := new(http.Request)
		*r2 = *r
		u := *r.URL
		u.Path = strings.TrimRight(p, "/")
		if u.Path == "" {
			u.Path = "/"
		}
		u.RawPath = ""
		r2.URL = &u
		r = r2
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := refget.SequenceRequest{
		ID:        r.PathValue("id"),
		Algorithm: r.PathValue("algorithm"),
		Accept:    r.Header.Get("Accept"),
		Start:     q.Get("start"),
		End:       q.Get("end"),
		Range:     r.Header.Get("Range"),
		Strand:    q.Get("strand"),
		Translate: q.Get("translate"),
	}

	resp, err := s.svc.Sequence(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", resp.ContentType())
	if resp.Plan.Query {
		h.Set("Accept-Ranges", "none")
	}
	w.WriteHeader(resp.Status())

	bw := bufio.NewWriterSize(w, writeBufferSize)
	if _, err := resp.WriteTo(r.Context(), bw); err != nil {
		// The status line is gone; only a broken connection tells the
		// client the body is incomplete.
		panic(http.ErrAbortHandler)
	}
	if err := bw.Flush(); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Metadata(r.Context(), refget.MetadataRequest{
		ID:        r.PathValue("id"),
		Algorithm: r.PathValue("algorithm"),
		Accept:    r.Header.Get("Accept"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func writeError(w http.ResponseWriter, err error) {
	code := refget.StatusCode(err)
	if code == http.StatusInternalServerError {
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, err.Error(), code)
}
