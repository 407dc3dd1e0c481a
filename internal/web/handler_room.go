package web

import (
	"net/http"
)

type createRoomRequest struct {
	Code  string `json:"code"`
	Owner string `json:"owner"`
	Date  string `json:"date"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.registry.CreateRoom(req.Code, req.Owner, req.Date); err != nil {
		writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, s.registry.ListRooms())
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room := s.registry.GetOrCreateRoom(r.PathValue("code"))
	jsonResponse(w, http.StatusOK, room)
}
