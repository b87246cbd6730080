package models

// Article is a Knowledge Hub entry, also used as a plan citation. The numeric
// ID is assigned by the caller at creation, never by content generation.
type Article struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	Date     string `json:"date,omitempty"` // ISO date, optional
}

// ArticleDraft is AI-generated article content before the caller assigns an ID.
type ArticleDraft struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
}
