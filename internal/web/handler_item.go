package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/piknikapp/piknik/internal/registry"
)

type addItemRequest struct {
	Name   string          `json:"name"`
	Unit   string          `json:"unit"`
	Amount json.RawMessage `json:"amount"`
	Cat    string          `json:"cat"`
	User   string          `json:"user"`
}

type patchItemRequest struct {
	User  string  `json:"user"`
	State *string `json:"state"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		jsonError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	id, err := s.registry.AddItem(r.PathValue("code"), req.Name, req.Unit, amount, req.Cat, req.User)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req patchItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state := registry.StateNeeded
	if req.State != nil {
		state = *req.State
	}

	if err := s.registry.PatchItemState(r.PathValue("code"), id, req.User, state); err != nil {
		writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	user := r.URL.Query().Get("user")
	if err := s.registry.DeleteItem(r.PathValue("code"), id, user); err != nil {
		writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseItemID extracts the {id} path variable as int64.
func parseItemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseAmount accepts a JSON number or a numeric string. Absent or null
// amounts default to zero.
func parseAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
