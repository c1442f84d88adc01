package domain

import "strings"

// Tag names are stored uppercase so the unique index enforces
// case-insensitive uniqueness.
type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null;uniqueIndex:ux_tags_name"`
}

func (Tag) TableName() string { return "tags" }

// NormalizeName maps a user-supplied tag name to its stored form.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// SplitList splits a comma-separated tag list into normalized, deduplicated
// names, preserving first-occurrence order.
func SplitList(list string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, part := range strings.Split(list, ",") {
		name := NormalizeName(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
