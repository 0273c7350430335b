package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	stylePrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("136"))
	styleItems  = lipgloss.NewStyle().Bold(true)
)

// lineKind identifies the type of a transcript line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindBlank
	kindInput
	kindNotice
	kindItems
	kindExits
	kindDialogue
	kindCombat
	kindSystem
	kindError
	kindTrace
)

var kindStyles = map[lineKind]lipgloss.Style{
	kindNarration: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	kindInput:     lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	kindNotice:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	kindExits:     lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
	kindDialogue:  lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	kindCombat:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true),
	kindSystem:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	kindError:     lipgloss.NewStyle().Foreground(lipgloss.Color("131")),
	kindTrace:     lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
}

const itemsPrefix = "Items of interest: "

var errorPrefixes = []string{
	"There is no such",
	"There's no room",
	"You can't",
	"The door is locked",
	"This command is not valid",
}

var combatSuffixes = []string{
	"unleashed an attack!",
	"hit points left!",
	" missed!",
	"fell to the ground!",
}

// classifyLine determines what kind of game output line this is. Lines
// starting with a speaker's name and a colon are dialogue.
func classifyLine(line string, speakers []string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, itemsPrefix):
		return kindItems
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case line == "GAME OVER", strings.Contains(line, " hit! "), hasAnySuffix(line, combatSuffixes):
		return kindCombat
	case isSpeech(line, speakers):
		return kindDialogue
	}
	return kindNarration
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, p := range suffixes {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}

func isSpeech(line string, speakers []string) bool {
	for _, name := range speakers {
		if strings.HasPrefix(line, name+": ") {
			return true
		}
	}
	return false
}

// styleLine renders an already wrapped line. Item names are set in bold.
func styleLine(line string, kind lineKind) string {
	if kind == kindItems {
		base := kindStyles[kindNarration]
		return base.Render(itemsPrefix) + styleItems.Render(strings.TrimPrefix(line, itemsPrefix))
	}
	style, ok := kindStyles[kind]
	if !ok {
		style = kindStyles[kindNarration]
	}
	return style.Render(line)
}
