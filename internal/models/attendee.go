package models

// Attendee represents one guest on the seating roster
type Attendee struct {
	Name  string `json:"name" csv:"name"`
	Table string `json:"table" csv:"table"`
	Note  string `json:"note" csv:"note"`
	// Contact is only set through the JSON roster endpoint; text imports never fill it.
	Contact string `json:"contact,omitempty" csv:"contact,omitempty"`
}

// defaultRoster is the roster every process starts with
var defaultRoster = []Attendee{
	{Name: "王大明", Table: "1", Note: "主桌"},
	{Name: "陳小惠", Table: "3", Note: "女方親友"},
	{Name: "李志豪", Table: "5", Note: "大學同學"},
	{Name: "林雅婷", Table: "5", Note: "大學同學"},
	{Name: "張建國", Table: "10", Note: "公司同事"},
	{Name: "0912345678", Table: "10", Note: "公司同事(電話搜尋範例)"},
}

// DefaultRoster returns a fresh copy of the seed roster
func DefaultRoster() []Attendee {
	out := make([]Attendee, len(defaultRoster))
	copy(out, defaultRoster)
	return out
}

// SearchResult is the outcome of a roster lookup.
// Searched is false when the query was blank and no scan happened.
type SearchResult struct {
	Query    string    `json:"query"`
	Searched bool      `json:"searched"`
	Found    bool      `json:"found"`
	Attendee *Attendee `json:"attendee,omitempty"`
}
