package project

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultName labels a project created from an image alone.
const DefaultName = "New Clone"

// nameRunes is how much of the description becomes the display name.
const nameRunes = 20

// Project pairs a clone request with the generated component source.
// Field names are the persisted wire format.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Code        string `json:"code"`
	Analysis    string `json:"analysis,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// CreatedAt returns the creation instant.
func (p Project) CreatedAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// DisplayName picks the url when present, else the start of the
// description, else DefaultName.
func DisplayName(description, url string) string {
	if url != "" {
		return url
	}
	if description == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(description) <= nameRunes {
		return description
	}
	var b strings.Builder
	n := 0
	for _, r := range description {
		if n == nameRunes {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
