package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/observability"
	"github.com/matzehuels/ferris/pkg/session"
)

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)

		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d)
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

type errorBody struct {
	Error struct {
		Code    ferrors.Code `json:"code"`
		Message string       `json:"message"`
	} `json:"error"`
}

// writeError maps err to a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = ferrors.UserMessage(err)
	writeJSON(w, status, body)
}

func classify(err error) (int, ferrors.Code) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, ferrors.ErrCodeSessionNotFound
	case errors.Is(err, session.ErrExpired):
		return http.StatusGone, ferrors.ErrCodeSessionExpired
	case errors.Is(err, session.ErrLimit):
		return http.StatusServiceUnavailable, ferrors.ErrCodeUnavailable
	}

	code := ferrors.GetCode(err)
	switch code {
	case ferrors.ErrCodeInvalidInput, ferrors.ErrCodeInvalidConfig, ferrors.ErrCodeInvalidRadius,
		ferrors.ErrCodeInvalidQuadrants, ferrors.ErrCodeInvalidStrategy, ferrors.ErrCodeInvalidFormat,
		ferrors.ErrCodeInvalidViewport, ferrors.ErrCodeInvalidLabel:
		return http.StatusBadRequest, code
	case ferrors.ErrCodeOversizeItem:
		return http.StatusUnprocessableEntity, code
	case ferrors.ErrCodeNotFound:
		return http.StatusNotFound, code
	case ferrors.ErrCodeUnsupported:
		return http.StatusNotImplemented, code
	case "":
		return http.StatusInternalServerError, ferrors.ErrCodeInternal
	}
	return http.StatusInternalServerError, code
}
