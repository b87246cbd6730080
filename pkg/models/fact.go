package models

// Fact is a short educational health fact or tip. IDs are derived by the
// caller from the page offset (page*10 + index) so pages stay dedupable.
type Fact struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}
