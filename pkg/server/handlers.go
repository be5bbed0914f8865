package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ferris/pkg/buildinfo"
	"github.com/matzehuels/ferris/pkg/cache"
	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/pipeline"
	"github.com/matzehuels/ferris/pkg/render"
	"github.com/matzehuels/ferris/pkg/render/sink"
	"github.com/matzehuels/ferris/pkg/session"
	"github.com/matzehuels/ferris/pkg/viewport"
)

// maxReplaySteps bounds the deltas of one scroll request.
const maxReplaySteps = 1000

type wheelResponse struct {
	ID        string             `json:"id"`
	ExpiresAt time.Time          `json:"expires_at"`
	Frame     render.Frame       `json:"frame"`
	Pool      viewport.PoolStats `json:"pool"`
}

type scrollRequest struct {
	DY     *int  `json:"dy"`
	Deltas []int `json:"deltas"`
}

type scrollResponse struct {
	Requested int `json:"requested"`
	Consumed  int `json:"consumed"`
	wheelResponse
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	cfg := s.defaults()
	if err := decodeBody(w, r, cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.store.Create(r.Context(), cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp wheelResponse
	err = sess.Do(func(wh *pipeline.Wheel) error {
		if _, _, err := wh.Replay(cfg.Scroll.Deltas); err != nil {
			return err
		}
		resp = snapshot(sess, wh)
		return nil
	})
	if err != nil {
		_ = s.store.Delete(r.Context(), sess.ID)
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("wheel created", "id", sess.ID, "items", cfg.Items.Count, "window", resp.Frame.Window)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var resp wheelResponse
	_ = sess.Do(func(wh *pipeline.Wheel) error {
		resp = snapshot(sess, wh)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req scrollRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	deltas := req.Deltas
	if req.DY != nil {
		deltas = append([]int{*req.DY}, deltas...)
	}
	if len(deltas) == 0 || len(deltas) > maxReplaySteps {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeInvalidInput, "scroll needs dy or 1 to %d deltas", maxReplaySteps))
		return
	}

	var resp scrollResponse
	err := sess.Do(func(wh *pipeline.Wheel) error {
		requested, consumed, err := wh.Replay(deltas)
		if err != nil {
			return err
		}
		resp = scrollResponse{Requested: requested, Consumed: consumed, wheelResponse: snapshot(sess, wh)}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var resp wheelResponse
	err := sess.Do(func(wh *pipeline.Wheel) error {
		if err := wh.Layout(); err != nil {
			return err
		}
		resp = snapshot(sess, wh)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = sink.FormatSVG
	}
	if err := ferrors.ValidateFormats([]string{format}, sink.ValidFormats); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := sess.Config.SinkOptions()
	opts.Arc = boolParam(q.Get("arc"), opts.Arc)
	opts.Cross = boolParam(q.Get("cross"), opts.Cross)
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			s.writeError(w, r, ferrors.New(ferrors.ErrCodeInvalidInput, "scale must be in (0, 8], got %q", v))
			return
		}
		opts.Scale = scale
	}

	var f render.Frame
	_ = sess.Do(func(wh *pipeline.Wheel) error {
		f = wh.Frame()
		return nil
	})
	if format == sink.FormatPNG {
		if err := sink.CheckPNGSize(f.Width, f.Height, opts.Scale); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	frameData, err := json.Marshal(f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	keyer := cache.NewScopedKeyer(s.keyer, "session:"+sess.ID+":")
	key := keyer.ArtifactKey(cache.Hash(frameData), cache.ArtifactKeyOpts{
		Format: format, Arc: opts.Arc, Cross: opts.Cross, NoLabels: opts.NoLabels, Scale: opts.Scale,
	})
	cacheStatus := "hit"
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil || !hit {
		cacheStatus = "miss"
		data, err = sink.Render(f, format, opts)
		if err != nil {
			s.writeError(w, r, ferrors.Wrap(ferrors.ErrCodeInternal, err, "render %s", format))
			return
		}
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("artifact cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// session resolves the {id} parameter, writing the error response itself
// when the session is unavailable.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func snapshot(sess *session.Session, wh *pipeline.Wheel) wheelResponse {
	return wheelResponse{
		ID:        sess.ID,
		ExpiresAt: sess.ExpiresAt(),
		Frame:     wh.Frame(),
		Pool:      wh.Pool.Stats(),
	}
}

// decodeBody decodes a JSON body into v. An empty body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}

func boolParam(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":{"code":%q,"message":%q}}`, ferrors.ErrCodeInternal, err.Error())
	}
}
