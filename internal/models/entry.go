package models

// JournalEntry is a saved diary page. Entries are immutable once written;
// there is no edit or delete operation.
type JournalEntry struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"` // display label, e.g. "Monday, January 2"
	Content    string    `json:"content"`
	Vibe       string    `json:"vibe"`
	Location   string    `json:"location,omitempty"`
	Weather    string    `json:"weather,omitempty"`
	Photos     []string  `json:"photos"`   // data URIs (or hosted URLs when uploads are configured)
	Stickers   []Sticker `json:"stickers"` // copies of the active stickers at save time
	SharedWith []string  `json:"sharedWith"`
	IsPrivate  bool      `json:"isPrivate"`
}
