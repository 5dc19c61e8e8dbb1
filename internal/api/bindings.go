package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/snmishra/xcircuit-qt-sub002/internal/keybind"
)

type bindingRequest struct {
	Window   string `json:"window"`
	Key      string `json:"key"`
	Function string `json:"function"`
	Value    *int   `json:"value"`
}

// parse resolves the request's names. An empty window means all windows.
func (req bindingRequest) parse() (keybind.Window, keybind.KeyState, keybind.Function, int, error) {
	w := keybind.AllWindows
	if req.Window != "" {
		var err error
		if w, err = uuid.Parse(req.Window); err != nil {
			return w, keybind.KeyState{}, keybind.NoFunction, 0, err
		}
	}
	ks, err := keybind.ParseKey(req.Key)
	if err != nil {
		return w, ks, keybind.NoFunction, 0, err
	}
	f, err := keybind.ParseFunction(req.Function)
	if err != nil {
		return w, ks, f, 0, err
	}
	value := keybind.Unspecified
	if req.Value != nil {
		value = *req.Value
	}
	return w, ks, f, value, nil
}

// ListBindings handles GET /bindings. With ?window= only bindings usable
// in that window are listed.
func (s *Server) ListBindings(w http.ResponseWriter, r *http.Request) {
	all := s.keys.Bindings()
	q := r.URL.Query().Get("window")
	if q == "" {
		writeJSON(w, http.StatusOK, all)
		return
	}
	win, err := uuid.Parse(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window id"})
		return
	}
	out := make([]keybind.Binding, 0, len(all))
	for _, b := range all {
		if b.Window == keybind.AllWindows || b.Window == win {
			out = append(out, b)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// AddBinding handles POST /bindings. It answers 201 when the binding was
// added and 200 when an equivalent one already existed.
func (s *Server) AddBinding(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	win, ks, f, value, err := req.parse()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	added, err := s.keys.AddBinding(win, ks, f, value)
	if err != nil {
		handleError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"added": added})
}

// RemoveBinding handles DELETE /bindings.
func (s *Server) RemoveBinding(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	win, ks, f, _, err := req.parse()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.keys.RemoveBinding(win, ks, f); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
