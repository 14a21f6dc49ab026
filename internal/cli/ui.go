package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives all user-facing status lines. Tests swap it.
var uiOut io.Writer = os.Stdout

// Palette. The label designer reuses the same colors for section states.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached      = lipgloss.NewStyle().Foreground(colorOK)
)

type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo = marker{"›", lipgloss.NewStyle().Foreground(lipgloss.Color("245"))}
)

func status(m marker, msg string) {
	fmt.Fprintln(uiOut, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { status(markOK, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { status(markFail, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { status(markInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output location; URLs are styled as links.
func printFile(location string) {
	style := StyleValue
	if strings.Contains(location, "://") {
		style = StyleLink
	}
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+style.Render(location))
}

// printStats prints a one-line summary of a label build.
func printStats(elements, statements int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d elements", elements))}
	if statements > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d script statements", statements)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
