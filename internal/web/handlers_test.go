package web_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piknikapp/piknik/internal/domain"
	"github.com/piknikapp/piknik/internal/registry"
	"github.com/piknikapp/piknik/internal/web"
	"github.com/piknikapp/piknik/internal/web/static"
	"github.com/piknikapp/piknik/internal/web/templates"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func newTestServer(t *testing.T) (*web.Server, *registry.Registry) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	clock := fixedClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	reg := registry.New(clock, 0, logger)
	return web.NewServer(reg, templates.FS, static.FS, logger, "tr"), reg
}

func doJSON(t *testing.T, srv *web.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestCreateRoom(t *testing.T) {
	srv, reg := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room",
		`{"code":"AB12","owner":"bob","date":"2026-05-03T10:30"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	room := reg.GetOrCreateRoom("AB12")
	assert.Equal(t, "bob", room.Owner)
	assert.Equal(t, "2026-05-03T10:30", room.Date)
}

func TestCreateRoomMissingCode(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room", `{"owner":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRoomBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRooms(t *testing.T) {
	srv, reg := newTestServer(t)
	require.NoError(t, reg.CreateRoom("AB12", "bob", "2026-05-03T10:30"))
	_, err := reg.AddItem("AB12", "Bread", "pcs", 2, "Food", "alice")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var rooms []domain.RoomSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "AB12", rooms[0].Code)
	assert.Equal(t, "AB**", rooms[0].Mask)
	assert.Equal(t, 1, rooms[0].Items)
}

func TestGetRoomCreatesWhenAbsent(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/room/XY99", "")
	require.Equal(t, http.StatusOK, w.Code)

	var room domain.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	assert.Equal(t, "XY99", room.Code)
	assert.Empty(t, room.Owner)
	assert.NotNil(t, room.Items)
	assert.Empty(t, room.Items)

	// The empty item list must serialize as [] and not null.
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestAddItem(t *testing.T) {
	srv, reg := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room/AB12/items",
		`{"name":"Bread","unit":"pcs","amount":2,"cat":"Food","user":"alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp["id"])

	room := reg.GetOrCreateRoom("AB12")
	require.Len(t, room.Items, 1)
	assert.Equal(t, "Bread", room.Items[0].Name)
	assert.Equal(t, 2.0, room.Items[0].Amount)
	assert.Equal(t, "needed", room.Items[0].State)
}

func TestAddItemStringAmount(t *testing.T) {
	srv, reg := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room/AB12/items",
		`{"name":"Cheese","unit":"kg","amount":"0.5","user":"alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	room := reg.GetOrCreateRoom("AB12")
	require.Len(t, room.Items, 1)
	assert.Equal(t, 0.5, room.Items[0].Amount)
	// Category defaults when absent.
	assert.Equal(t, registry.DefaultCat, room.Items[0].Cat)
}

func TestAddItemBadAmount(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room/AB12/items",
		`{"name":"Bread","unit":"pcs","amount":"lots","user":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemMissingFields(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/room/AB12/items",
		`{"unit":"pcs","amount":1,"user":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchItem(t *testing.T) {
	srv, reg := newTestServer(t)
	require.NoError(t, reg.CreateRoom("AB12", "bob", ""))
	_, err := reg.AddItem("AB12", "Bread", "pcs", 1, "", "alice")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPatch, "/api/room/AB12/items/1",
		`{"user":"alice","state":"done"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	room := reg.GetOrCreateRoom("AB12")
	assert.Equal(t, "done", room.Items[0].State)
}

func TestPatchItemForbidden(t *testing.T) {
	srv, reg := newTestServer(t)
	require.NoError(t, reg.CreateRoom("AB12", "bob", ""))
	_, err := reg.AddItem("AB12", "Bread", "pcs", 1, "", "alice")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPatch, "/api/room/AB12/items/1",
		`{"user":"carol","state":"done"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPatchItemNotFound(t *testing.T) {
	srv, reg := newTestServer(t)

	w := doJSON(t, srv, http.MethodPatch, "/api/room/nope/items/1",
		`{"user":"alice","state":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := reg.AddItem("AB12", "Bread", "pcs", 1, "", "alice")
	require.NoError(t, err)

	w = doJSON(t, srv, http.MethodPatch, "/api/room/AB12/items/999",
		`{"user":"alice","state":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/api/room/AB12/items/banana",
		`{"user":"alice","state":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteItem(t *testing.T) {
	srv, reg := newTestServer(t)
	_, err := reg.AddItem("AB12", "Bread", "pcs", 1, "", "alice")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodDelete, "/api/room/AB12/items/1?user=alice", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	room := reg.GetOrCreateRoom("AB12")
	assert.Empty(t, room.Items)
}

func TestDeleteItemForbidden(t *testing.T) {
	srv, reg := newTestServer(t)
	_, err := reg.AddItem("AB12", "Bread", "pcs", 1, "", "alice")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodDelete, "/api/room/AB12/items/1?user=carol", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteItemNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodDelete, "/api/room/nope/items/1?user=alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexPage(t *testing.T) {
	srv, reg := newTestServer(t)
	require.NoError(t, reg.CreateRoom("AB12", "bob", "2026-05-03T10:30"))

	w := doJSON(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	// Room codes are masked on the index.
	assert.Contains(t, w.Body.String(), "AB**")
	assert.Contains(t, w.Body.String(), "Piknik")
}

func TestIndexPageLang(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/?lang=en", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Picnic List")
}

func TestRoomPage(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/room/AB12?username=alice&lang=en", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AB12")
	assert.Contains(t, body, "alice")
}

func TestRoomPageViewMode(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/room/AB12?view=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `id="add-form"`)
}

func TestPWAEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/manifest.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/manifest+json", w.Header().Get("Content-Type"))

	w = doJSON(t, srv, http.MethodGet, "/service-worker.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/javascript", w.Header().Get("Content-Type"))
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
