// Package api serves objects, display lists and key bindings over HTTP and
// resolves key presses over a websocket.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/engine"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
	"github.com/snmishra/xcircuit-qt-sub002/internal/keybind"
	"github.com/snmishra/xcircuit-qt-sub002/internal/typeid"
)

const defaultMaxUpload = 10 << 20

// Options configure a Server.
type Options struct {
	Snap       document.Snap
	View       geom.BBox
	PinPointOn bool
	// Origins are the websocket origin patterns accepted besides same-host.
	Origins []string
	// MaxUpload bounds graphic uploads in bytes.
	MaxUpload int64
}

// Server exposes a registry and a key-binding table. Document access is
// serialized with a single lock since the element model is not safe for
// concurrent use.
type Server struct {
	mu     sync.Mutex
	env    *document.Env
	images map[string]image.Image

	keys *keybind.Table
	opts Options
}

// NewServer returns a server over env's registry and keys.
func NewServer(env *document.Env, keys *keybind.Table, opts Options) *Server {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = defaultMaxUpload
	}
	return &Server{
		env:    env,
		images: make(map[string]image.Image),
		keys:   keys,
		opts:   opts,
	}
}

// Router returns the HTTP routes with the standard middleware applied.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(CORS)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/objects", s.ListObjects).Methods("GET")
	r.HandleFunc("/objects/{id}", s.GetObject).Methods("GET")
	r.HandleFunc("/objects/{id}/render", s.Render).Methods("GET")
	r.HandleFunc("/objects/{id}/bbox", s.BBox).Methods("GET")
	r.HandleFunc("/objects/{id}/params", s.Params).Methods("GET")
	r.HandleFunc("/objects/{id}/hit", s.Hit).Methods("GET")
	r.HandleFunc("/objects/{id}/rescale", s.Rescale).Methods("POST")
	r.HandleFunc("/objects/{id}/decompose", s.Decompose).Methods("POST")

	r.HandleFunc("/graphics", s.UploadGraphic).Methods("POST", "OPTIONS")
	r.HandleFunc("/graphics/{key}", s.GetGraphic).Methods("GET")

	r.HandleFunc("/bindings", s.ListBindings).Methods("GET")
	r.HandleFunc("/bindings", s.AddBinding).Methods("POST")
	r.HandleFunc("/bindings", s.RemoveBinding).Methods("DELETE")
	r.HandleFunc("/ws/keys/{window}", s.KeySocket)
	return r
}

type objectSummary struct {
	ID        document.ID `json:"id"`
	Name      string      `json:"name"`
	Page      bool        `json:"page"`
	Library   bool        `json:"library"`
	SchemType string      `json:"schemType"`
	Symschem  document.ID `json:"symschem,omitempty"`
	Parts     int         `json:"parts"`
	Params    []string    `json:"params,omitempty"`
}

func summarize(o *document.Object) objectSummary {
	prefix, _ := typeid.Prefix(string(o.ID))
	sum := objectSummary{
		ID:        o.ID,
		Name:      o.Name,
		Page:      prefix == typeid.PrefixPage,
		Library:   o.Library,
		SchemType: o.SchemType.String(),
		Symschem:  o.Symschem,
		Parts:     o.Parts.Len(),
	}
	for _, p := range o.Params {
		sum.Params = append(sum.Params, p.Key)
	}
	return sum
}

// ListObjects handles GET /objects.
func (s *Server) ListObjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objs := s.env.Objects.Objects()
	out := make([]objectSummary, len(objs))
	for i, o := range objs {
		out[i] = summarize(o)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetObject handles GET /objects/{id}.
func (s *Server) GetObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(obj))
}

// Render handles GET /objects/{id}/render. Query parameters: push, a
// comma-separated path of instance indices to enter; select, element
// indices to mark selected; pins, "1" to show pin points; cull, "1" to
// cull against the configured view.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.openEngine(w, r)
	if !ok {
		return
	}
	data, err := e.RenderJSON()
	if err != nil {
		slog.Error("render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(data))
}

// BBox handles GET /objects/{id}/bbox.
func (s *Server) BBox(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(engine.BBoxToJSON(obj.BBox)))
}

// Params handles GET /objects/{id}/params: a marker for every parameter
// driven field of the object reached by the push query.
func (s *Server) Params(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.openEngine(w, r)
	if !ok {
		return
	}
	marks := e.IndicateParams()
	if marks == nil {
		marks = []engine.DrawCommand{}
	}
	writeJSON(w, http.StatusOK, marks)
}

// Hit handles GET /objects/{id}/hit?x=&y=&tol=.
func (s *Server) Hit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required integers"})
		return
	}
	tol, _ := strconv.Atoi(q.Get("tol"))

	e, ok := s.openEngine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"index": e.HitTest(geom.Pt(x, y), tol)})
}

type rescaleRequest struct {
	Push  []int `json:"push"`
	Index int   `json:"index"`
	X     int   `json:"x"`
	Y     int   `json:"y"`
}

// Rescale handles POST /objects/{id}/rescale: the element at index is
// rescaled so its outline reaches (x, y).
func (s *Server) Rescale(w http.ResponseWriter, r *http.Request) {
	var req rescaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.lookup(w, r)
	if !ok {
		return
	}
	e, err := s.newEngine(obj, req.Push, false)
	if err != nil {
		handleError(w, err)
		return
	}
	e.SetSelection([]int{req.Index})
	scale, err := e.RescaleSelected(geom.Pt(req.X, req.Y))
	if err != nil {
		handleError(w, err)
		return
	}
	if err := e.Recalc(); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scale":  scale,
		"bounds": json.RawMessage(e.SelectionBoundsJSON()),
	})
}

type decomposeRequest struct {
	Push    []int `json:"push"`
	Indices []int `json:"indices"`
}

// Decompose handles POST /objects/{id}/decompose: the arcs at indices are
// replaced by Bezier paths.
func (s *Server) Decompose(w http.ResponseWriter, r *http.Request) {
	var req decomposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.lookup(w, r)
	if !ok {
		return
	}
	e, err := s.newEngine(obj, req.Push, false)
	if err != nil {
		handleError(w, err)
		return
	}
	e.SetSelection(req.Indices)
	n, err := e.DecomposeSelectedArcs()
	if err != nil {
		handleError(w, err)
		return
	}
	if err := e.Recalc(); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"decomposed": n,
		"bounds":     json.RawMessage(e.SelectionBoundsJSON()),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*document.Object, bool) {
	obj, err := s.env.Objects.Lookup(document.ID(mux.Vars(r)["id"]))
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	return obj, true
}

func (s *Server) openEngine(w http.ResponseWriter, r *http.Request) (*engine.Engine, bool) {
	obj, ok := s.lookup(w, r)
	if !ok {
		return nil, false
	}
	q := r.URL.Query()
	push, err := parseIndices(q.Get("push"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "push: " + err.Error()})
		return nil, false
	}
	sel, err := parseIndices(q.Get("select"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "select: " + err.Error()})
		return nil, false
	}

	e, err := s.newEngine(obj, push, q.Get("cull") == "1")
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	if q.Get("pins") == "1" {
		e.SetPinPointOn(true)
	}
	e.SetEditInPlace(q.Get("inplace") == "1")
	e.SetSelection(sel)
	return e, true
}

func (s *Server) newEngine(obj *document.Object, push []int, cull bool) (*engine.Engine, error) {
	opts := engine.Options{Snap: s.opts.Snap, PinPointOn: s.opts.PinPointOn, View: geom.EmptyBBox()}
	if cull {
		opts.View = s.opts.View
	}
	e, err := engine.New(s.env, obj.ID, opts)
	if err != nil {
		return nil, err
	}
	for _, i := range push {
		if err := e.Push(i); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseIndices(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for part := range strings.SplitSeq(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrObjectNotFound), errors.Is(err, keybind.ErrBindingNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrNotInstance), errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, engine.ErrNotPositionable), errors.Is(err, engine.ErrNothingSelected),
		errors.Is(err, engine.ErrNotArc),
		errors.Is(err, keybind.ErrUnknownKey), errors.Is(err, keybind.ErrUnknownFunction):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
