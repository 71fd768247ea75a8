package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// serverFrame is the union of every frame shape the server sends; unused
// fields stay empty per type.
type serverFrame struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	Code         string `json:"code"`
	Error        string `json:"error"`
	Contributor  string `json:"contributor"`
	Contribution string `json:"contribution"`
	Story        string `json:"story"`
}

type styles struct {
	prompt  lipgloss.Style
	info    lipgloss.Style
	errMsg  lipgloss.Style
	turn    lipgloss.Style
	update  lipgloss.Style
	storyTx lipgloss.Style
	faint   lipgloss.Style
}

func newStyles() styles {
	return styles{
		prompt:  lipgloss.NewStyle().Bold(true),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errMsg:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		turn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		update:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		storyTx: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		faint:   lipgloss.NewStyle().Faint(true),
	}
}

type renderer struct {
	out io.Writer
	st  styles
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out, st: newStyles()}
}

func (r *renderer) frame(data []byte) {
	var f serverFrame
	if err := json.Unmarshal(data, &f); err != nil {
		fmt.Fprintln(r.out, string(data))
		return
	}

	switch f.Type {
	case "welcome", "prompt":
		fmt.Fprintln(r.out, r.st.prompt.Render(f.Text))
	case "info":
		fmt.Fprintln(r.out, r.st.info.Render(f.Text))
	case "error":
		fmt.Fprintln(r.out, r.st.errMsg.Render(f.Error))
	case "turn":
		fmt.Fprintln(r.out, r.st.turn.Render("\nYOUR TURN TO WRITE!"))
		fmt.Fprintln(r.out, r.st.info.Render("Current story:"))
		fmt.Fprintln(r.out, r.st.storyTx.Render(f.Story))
		fmt.Fprintln(r.out, r.st.prompt.Render("Enter your word (or 'exit' to leave):"))
	case "update":
		fmt.Fprintln(r.out, r.st.update.Render(fmt.Sprintf("\nSTORY UPDATE:\n%s added: %s", f.Contributor, f.Contribution)))
		fmt.Fprintln(r.out, r.st.info.Render("Current story:"))
		fmt.Fprintln(r.out, r.st.storyTx.Render(f.Story))
	case "goodbye":
		fmt.Fprintln(r.out, r.st.faint.Render(f.Text))
	default:
		fmt.Fprintln(r.out, f.Text)
	}
}

func (r *renderer) disconnected() {
	fmt.Fprintln(r.out, r.st.faint.Render("Disconnected from server"))
}
