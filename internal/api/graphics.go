package api

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
	"github.com/snmishra/xcircuit-qt-sub002/internal/typeid"
)

// UploadResponse is returned from the graphic upload endpoint.
type UploadResponse struct {
	Key    string      `json:"key"`
	URL    string      `json:"url"`
	Object document.ID `json:"object"`
	Index  int         `json:"index"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Name   string      `json:"name"`
}

// UploadGraphic handles POST /graphics: a multipart form with a "file"
// field holding a PNG or JPEG image, the target "object" id and optional
// "x", "y" and "scale" fields. The image is placed as a graphic element.
func (s *Server) UploadGraphic(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)
	if err := r.ParseMultipartForm(s.opts.MaxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("file too large (max %dMB)", s.opts.MaxUpload>>20),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/png") && !strings.HasPrefix(contentType, "image/jpeg") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PNG and JPEG images are supported"})
		return
	}

	img, _, err := image.Decode(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid image: " + err.Error()})
		return
	}

	at, scale, err := placementFromForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, err := s.env.Objects.Lookup(document.ID(r.FormValue("object")))
	if err != nil {
		handleError(w, err)
		return
	}

	key := typeid.NewImageID()
	s.images[key] = img

	g := document.NewGraphic(at, img)
	g.Key = key
	g.Scale = scale
	index := obj.Add(g)
	obj.CalcBBox(s.env)
	slog.Info("graphic placed", "object", obj.Name, "key", key, "index", index)

	bounds := img.Bounds()
	writeJSON(w, http.StatusCreated, UploadResponse{
		Key:    key,
		URL:    "/graphics/" + key,
		Object: obj.ID,
		Index:  index,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Name:   header.Filename,
	})
}

func placementFromForm(r *http.Request) (geom.Point, float32, error) {
	var at geom.Point
	for _, f := range []struct {
		name string
		dst  *int
	}{{"x", &at.X}, {"y", &at.Y}} {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return at, 0, fmt.Errorf("invalid %s %q", f.name, v)
		}
		*f.dst = n
	}
	scale := float32(1)
	if v := r.FormValue("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil || f <= 0 {
			return at, 0, fmt.Errorf("invalid scale %q", v)
		}
		scale = float32(f)
	}
	return at, scale, nil
}

// GetGraphic handles GET /graphics/{key}. With ?rendered=1 it returns the
// image as drawn by the first graphic using it, rotated and scaled.
func (s *Server) GetGraphic(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := typeid.Validate(key, typeid.PrefixImage); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "graphic not found"})
		return
	}

	rendered := r.URL.Query().Get("rendered") == "1"

	s.mu.Lock()
	img, ok := s.images[key]
	if ok && rendered {
		if g := s.findGraphic(key); g != nil {
			if t := g.Target(); t != nil {
				img = t
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "graphic not found"})
		return
	}

	if !rendered {
		// keys are unique, so the source bytes never change
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		slog.Error("encode png", "error", err)
	}
}

func (s *Server) findGraphic(key string) *document.Graphic {
	for _, o := range s.env.Objects.Objects() {
		for _, g := range document.Each[*document.Graphic](&o.Parts) {
			if g.Key == key {
				return g
			}
		}
	}
	return nil
}
