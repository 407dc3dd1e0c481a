package domain

// Room is a named shared list scoped to one event date. Code is the unique
// key and is immutable after creation. Date is kept as the minute-precision
// string the caller supplied; it drives sorting and expiry only.
type Room struct {
	Code  string `json:"code"`
	Owner string `json:"owner"`
	Date  string `json:"date"`
	Items []Item `json:"items"`
}

// Item is one entry in a room's list. User is the display name of whoever
// added it and, together with the room owner, gates mutation. State is a
// freeform string; the system itself only ever writes "needed".
type Item struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
	Cat    string  `json:"cat"`
	User   string  `json:"user"`
	State  string  `json:"state"`
}

// RoomSummary is the listing view of a room: item count instead of items,
// and a masked code alongside the real one for display.
type RoomSummary struct {
	Code  string `json:"code"`
	Mask  string `json:"mask"`
	Date  string `json:"date"`
	Items int    `json:"items"`
}
