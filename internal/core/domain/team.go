package domain

import (
	"fmt"
	"strings"
)

type TeamColor string

const (
	TeamRed   TeamColor = "red"
	TeamWhite TeamColor = "white"
	TeamBlue  TeamColor = "blue"
)

// Teams lists every team in display order.
var Teams = []TeamColor{TeamRed, TeamWhite, TeamBlue}

var teamLabels = map[TeamColor]string{
	TeamRed:   "あか組",
	TeamWhite: "しろ組",
	TeamBlue:  "あお組",
}

// ParseTeamColor accepts a color name regardless of case and surrounding
// whitespace.
func ParseTeamColor(s string) (TeamColor, error) {
	c := TeamColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown team color %q", ErrInvalidInput, s)
	}
	return c, nil
}

func (c TeamColor) Valid() bool {
	_, ok := teamLabels[c]
	return ok
}

func (c TeamColor) Label() string {
	return teamLabels[c]
}

func (c TeamColor) String() string {
	return string(c)
}

type TeamStats struct {
	Color TeamColor `json:"color"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}
