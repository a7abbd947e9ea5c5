package main

import (
	"fmt"
	"strings"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[42;30m"
	ansiYellow = "\033[43;30m"
	ansiGrey   = "\033[100;37m"
)

const (
	nameWidth = 22
	cellWidth = 16
)

type renderer struct{ color bool }

func (r renderer) header() string {
	return pad("Player", nameWidth) + " " + strings.Join([]string{
		pad("Nation", cellWidth), pad("League", cellWidth), pad("Club", cellWidth),
		pad("Position", cellWidth), pad("Age", 6),
	}, " ")
}

// row draws one verdict; without colour each cell is prefixed by its tier mark.
func (r renderer) row(v game.Verdict) string {
	age := fmt.Sprintf("%d%s", v.Guess.Age, arrow(v.AgeDirection))
	return pad(v.Guess.Name, nameWidth) + " " + strings.Join([]string{
		r.cell(v.Guess.Nationality, v.Nationality, cellWidth),
		r.cell(v.Guess.League, v.League, cellWidth),
		r.cell(v.Guess.Club, v.Club, cellWidth),
		r.cell(v.Guess.Position, v.Position, cellWidth),
		r.cell(age, v.Age, 6),
	}, " ")
}

func (r renderer) cell(text string, t game.Tier, width int) string {
	if !r.color {
		return pad(mark(t)+text, width)
	}
	color := ansiGrey
	switch t {
	case game.TierExact:
		color = ansiGreen
	case game.TierNear:
		color = ansiYellow
	}
	return color + pad(text, width) + ansiReset
}

func mark(t game.Tier) string {
	switch t {
	case game.TierExact:
		return "="
	case game.TierNear:
		return "~"
	default:
		return "x"
	}
}

func arrow(d game.Direction) string {
	switch d {
	case game.DirHigher:
		return "↑"
	case game.DirLower:
		return "↓"
	default:
		return ""
	}
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	rs := []rune(s)
	if len(rs) > width {
		return string(rs[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(rs))
}
