package model

// Item is the domain model for a todo entry.
// Position in the list is its only identity.
type Item struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
