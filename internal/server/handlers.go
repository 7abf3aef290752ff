package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/arcslider/pkg/config"
	"github.com/matzehuels/arcslider/pkg/errors"
	"github.com/matzehuels/arcslider/pkg/observability"
	"github.com/matzehuels/arcslider/pkg/pipeline"
	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/session"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// instanceResponse describes an instance and the current frame of every slider.
type instanceResponse struct {
	ID           string         `json:"id"`
	Interaction  string         `json:"interaction"`
	ActiveSlider string         `json:"active_slider,omitempty"`
	Document     sink.Document  `json:"document"`
	Frames       []slider.Frame `json:"frames"`
}

// createRequest is the optional body of POST /api/widgets. Without a widget
// the configured one is used.
type createRequest struct {
	Widget *slider.Widget `json:"widget"`
}

// pointerRequest is one raw pointer event as posted by the page script.
type pointerRequest struct {
	Type    slider.Phase        `json:"type"`
	Kind    string              `json:"kind"`
	ClientX float64             `json:"clientX"`
	ClientY float64             `json:"clientY"`
	Touches []slider.TouchPoint `json:"touches"`
	Bounds  slider.Bounds       `json:"bounds"`
}

// pointerResponse carries the frames the event produced; empty when the
// event did not move a handle.
type pointerResponse struct {
	Frames      []slider.Frame `json:"frames"`
	Interaction string         `json:"interaction"`
	Handled     bool           `json:"handled"`
}

func (p pointerRequest) event() (slider.Event, error) {
	switch p.Kind {
	case "", "mouse":
		return slider.MouseEvent{ClientX: p.ClientX, ClientY: p.ClientY}, nil
	case "touch":
		return slider.TouchEvent{Touches: p.Touches}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidEvent, "unknown pointer kind %q", p.Kind)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"instances": s.store.Len(),
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()
	sess, err := s.createInstance(r, cfg.Widget)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var page []byte
	sess.Do(func(c *slider.Controller) {
		page, err = sink.RenderHTML(c,
			sink.WithContainerSelector(cfg.Widget.ContainerSelector),
			sink.WithInstance("", sess.ID),
			sink.WithHTMLSVGOptions(sink.WithStyle(cfg.Style)),
		)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func (s *Server) handleStatic(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := s.Config()
		result, err := s.runner.Execute(r.Context(), pipeline.Options{
			Widget:   cfg.Widget,
			Style:    cfg.Style,
			Formats:  []string{format},
			CacheTTL: cfg.Cache.TTL,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("ETag", `"`+result.WidgetHash[:16]+`"`)
		if result.CacheInfo.AllHit() {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(result.Artifacts[format])
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	widget := s.Config().Widget
	if req.Widget != nil {
		if len(req.Widget.Sliders) == 0 {
			s.respondError(w, r, errors.New(errors.ErrCodeInvalidConfig, "widget has no sliders"))
			return
		}
		widget = req.Widget.Normalized()
		if err := config.ValidateWidget(widget); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	sess, err := s.createInstance(r, widget)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/widgets/"+sess.ID)
	respondJSON(w, http.StatusCreated, describe(sess))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.instance(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, err := s.instance(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInstanceSVG(w http.ResponseWriter, r *http.Request) {
	sess, err := s.instance(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}, Style: s.Config().Style}
	var artifacts map[string][]byte
	sess.Do(func(c *slider.Controller) {
		artifacts, err = pipeline.RenderController(c, opts)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sess, err := s.instance(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req pointerRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if !req.Type.Valid() {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidEvent, "unknown pointer type %q", req.Type))
		return
	}
	ev, err := req.event()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := pointerResponse{Frames: []slider.Frame{}}
	var handleErr error
	sess.Do(func(c *slider.Controller) {
		var frame slider.Frame
		frame, resp.Handled, handleErr = c.Handle(req.Type, ev, req.Bounds)
		if resp.Handled && frame.SliderID != "" {
			resp.Frames = append(resp.Frames, frame)
		}
		resp.Interaction = interactionName(c)
	})

	// A touch without touch points is dropped rather than rejected; browsers
	// deliver those at the end of multi-touch gestures.
	if stderrors.Is(handleErr, slider.ErrNoTouchPoints) {
		handleErr = nil
	}
	if handleErr != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidEvent, handleErr, "pointer event"))
		return
	}

	var sliderID string
	var value float64
	if len(resp.Frames) > 0 {
		sliderID, value = resp.Frames[0].SliderID, resp.Frames[0].Value
	}
	observability.Interaction().OnPointer(r.Context(), sess.ID, string(req.Type), sliderID, value)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) createInstance(r *http.Request, widget slider.Widget) (*session.Session, error) {
	sess := session.New(widget, s.Config().Server.InstanceTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		if stderrors.Is(err, session.ErrFull) {
			s.Sweep(r.Context())
			err = s.store.Set(r.Context(), sess)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create instance")
		}
	}
	observability.Interaction().OnInstanceCreated(r.Context(), sess.ID, len(sess.Widget.Sliders))
	return sess, nil
}

func (s *Server) instance(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInstanceNotFound, err, "instance %s", id)
	}
	return sess, nil
}

func describe(sess *session.Session) instanceResponse {
	resp := instanceResponse{ID: sess.ID}
	sess.Do(func(c *slider.Controller) {
		resp.Interaction = interactionName(c)
		resp.ActiveSlider = c.ActiveID()
		resp.Document = sink.NewDocument(c, sess.Widget.ContainerSelector)
		resp.Frames = c.Frames()
	})
	return resp
}

func interactionName(c *slider.Controller) string {
	if c.Dragging() {
		return "dragging"
	}
	return "idle"
}

// decodeBody decodes a JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode body")
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondJSON encodes v before writing the status so an unencodable value
// becomes a 500 instead of an empty success.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: err.Error(), Code: string(errors.ErrCodeInternal)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	respondJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  fmt.Sprint(errors.GetCode(err)),
	})
}
