package domain

import "strings"

type Vote struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Choice    TeamColor `json:"choice"`
	Timestamp int64     `json:"timestamp"`
}

// NormalizeName returns the identity form of a participant name. Display
// names keep their casing; comparisons always go through NormalizeName.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether two names identify the same participant.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
