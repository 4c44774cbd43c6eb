package console

import (
	"strings"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/scoring"
)

const reset = "\033[0m"

type Theme struct {
	Name   string
	Title  string
	Muted  string
	Accent string
	Good   string
	Bad    string
	Warn   string
}

var (
	DarkTheme = Theme{
		Name:   "dark",
		Title:  "\033[1;97m",
		Muted:  "\033[90m",
		Accent: "\033[96m",
		Good:   "\033[92m",
		Bad:    "\033[91m",
		Warn:   "\033[93m",
	}
	LightTheme = Theme{
		Name:   "light",
		Title:  "\033[1;30m",
		Muted:  "\033[2;37m",
		Accent: "\033[34m",
		Good:   "\033[32m",
		Bad:    "\033[31m",
		Warn:   "\033[33m",
	}
	// PlainTheme carries no escape codes at all.
	PlainTheme = Theme{Name: "plain"}
)

func ThemeFor(dark, color bool) Theme {
	switch {
	case !color:
		return PlainTheme
	case dark:
		return DarkTheme
	default:
		return LightTheme
	}
}

func (t Theme) paint(style, s string) string {
	if style == "" {
		return s
	}
	return style + s + reset
}

// selector picks one colour out of a Theme.
type selector func(Theme) string

func good(t Theme) string   { return t.Good }
func warn(t Theme) string   { return t.Warn }
func bad(t Theme) string    { return t.Bad }
func accent(t Theme) string { return t.Accent }

var difficultyStyles = map[catalog.Difficulty]struct {
	icon  string
	color selector
}{
	catalog.DifficultyEasy:   {"✔", good},
	catalog.DifficultyMedium: {"!", warn},
	catalog.DifficultyHard:   {"✖", bad},
}

func difficultyLabel(t Theme, d catalog.Difficulty) string {
	st, ok := difficultyStyles[d]
	if !ok {
		st.icon, st.color = "!", accent
	}
	return t.paint(st.color(t), st.icon+" "+string(d))
}

var categoryIcons = map[string]string{
	"programming":     "⚡",
	"web development": "◎",
	"general":         "📖",
}

func categoryIcon(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(category)]; ok {
		return icon
	}
	return "📖"
}

var tierGrades = map[scoring.Tier]string{
	scoring.TierTop: "A",
	scoring.TierMid: "B",
	scoring.TierLow: "C",
}

var tierStyles = map[scoring.Tier]selector{
	scoring.TierTop: good,
	scoring.TierMid: warn,
	scoring.TierLow: bad,
}

func tierStyle(t Theme, tier scoring.Tier) string {
	if st, ok := tierStyles[tier]; ok {
		return st(t)
	}
	return t.Bad
}

// performanceBands must stay sorted by descending floor.
var performanceBands = []struct {
	floor   int
	message string
}{
	{90, "Outstanding! You're a true expert!"},
	{80, "Excellent work! Keep it up!"},
	{70, "Good job! You're on the right track!"},
	{60, "Not bad! Room for improvement."},
}

func performanceMessage(percentage int) string {
	for _, band := range performanceBands {
		if percentage >= band.floor {
			return band.message
		}
	}
	return "Keep practicing! You'll get better!"
}
