package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# App Protection

A mock-up of a mobile app-protection screen. Nothing is actually frozen or
blocked; every effect is simulated with dialogs.

## Protection states

- **OFF** — nothing guarded. Tapping the shield counts toward activation.
- **BACKGROUND** — armed after the second tap (requires a password).
- **ACTIVE** — after the third tap. Opening a protected app asks for the
  password and offers: turn off, allow temporarily, or cancel.

## Keys

| Key | Action |
| --- | --- |
| t / space | tap the shield |
| arrows / hjkl | move in the grid |
| enter | open app (or add on an empty slot) |
| a | add a protected app |
| x | remove the selected app |
| p | set or change the password |
| o | turn protection off |
| q | quit |

The password is stored and shown in plain text — this is a mock, not a
credential store.
`

var (
	helpMu       sync.Mutex
	helpRendered string
	helpWidth    int
)

// renderHelp renders the help markdown, caching by width. Creating a
// renderer with WithAutoStyle can block probing the terminal, so a fixed
// style is used.
func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}

	helpMu.Lock()
	defer helpMu.Unlock()
	if helpRendered != "" && helpWidth == width {
		return helpRendered
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	helpRendered = strings.TrimRight(out, "\n")
	helpWidth = width
	return helpRendered
}

func (m appModel) viewHelpModal() string {
	body := renderHelp(modalBodyWidth(m.width))
	return renderModalBox(m.width, "Help", body+"\n\n"+styleMuted().Render("enter/esc: close"))
}
