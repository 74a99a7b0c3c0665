package models

// Group title limits. Titles are stored at full length and truncated to
// SummaryTitleLen only for display summaries.
const (
	MaxTitleLen     = 200
	SummaryTitleLen = 15
)

// Group represents a thematic group posts can be published to
type Group struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	Title       string `json:"title" db:"title" example:"Travel notes"` // Display title, at most MaxTitleLen characters
	Slug        string `json:"slug" db:"slug" example:"travel-notes"`   // Unique, URL-safe identifier
	Description string `json:"description" db:"description"`
}

// SummaryTitle returns the title truncated for compact listings.
func (g *Group) SummaryTitle() string {
	runes := []rune(g.Title)
	if len(runes) <= SummaryTitleLen {
		return g.Title
	}
	return string(runes[:SummaryTitleLen])
}
