package web

import (
	"net/http"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.defaultLang
	}

	// Listing sweeps expired rooms as a side effect.
	rooms := s.registry.ListRooms()

	if err := s.renderPage(w,
		map[string]any{"Rooms": rooms, "Lang": lang},
		"base.html", "pages/index.html",
	); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleRoomPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := q.Get("username")
	if username == "" {
		username = "guest"
	}
	lang := q.Get("lang")
	if lang == "" {
		lang = s.defaultLang
	}
	view := q.Get("view") == "1"

	if err := s.renderPage(w,
		map[string]any{
			"Code":     r.PathValue("code"),
			"Username": username,
			"Lang":     lang,
			"View":     view,
		},
		"base.html", "pages/room.html",
	); err != nil {
		s.logger.Error("render room", "error", err)
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, "manifest.json", "application/manifest+json")
}

func (s *Server) handleServiceWorker(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, "service-worker.js", "application/javascript")
}

func (s *Server) serveStatic(w http.ResponseWriter, name, contentType string) {
	data, err := s.static.ReadFile(name)
	if err != nil {
		s.logger.Error("read static asset", "name", name, "error", err)
		http.Error(w, "asset not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write static asset", "name", name, "error", err)
	}
}
