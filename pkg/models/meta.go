package models

// Meta is the pagination envelope header returned on every list
// endpoint. Next and Previous are resource URIs or empty when there is
// no further page; the cursor itself lives entirely server-side.
type Meta struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Next       string `json:"next"`
	Previous   string `json:"previous"`
	TotalCount int    `json:"total_count"`
}

// HasNext reports whether the server advertised a further page.
func (m Meta) HasNext() bool {
	return m.Next != ""
}
