package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tturner/sadecode/internal/report"
	"github.com/tturner/sadecode/internal/sa"
)

// AttrInfo describes one registered codec.
type AttrInfo struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Length    int    `json:"length" yaml:"length"`
	Variable  bool   `json:"variable" yaml:"variable"`
	Attribute bool   `json:"attribute" yaml:"attribute"`
}

// ListAttrs returns every registered codec in registry order.
func ListAttrs() []AttrInfo {
	codecs := sa.Codecs()
	out := make([]AttrInfo, 0, len(codecs))
	for _, c := range codecs {
		id := "-"
		if c.IsAttribute() {
			id = fmt.Sprintf("0x%04x", c.ID)
		}
		out = append(out, AttrInfo{
			ID:        id,
			Name:      c.Name,
			Length:    c.Len,
			Variable:  c.Variable,
			Attribute: c.IsAttribute(),
		})
	}
	return out
}

// RunAttrs prints the codec registry.
func RunAttrs(env *Env) error {
	attrs := ListAttrs()
	switch env.Format {
	case "json":
		return report.WriteJSON(env.Out, attrs)
	case "yaml":
		return report.WriteYAML(env.Out, attrs)
	}

	r := lipgloss.NewRenderer(env.Out)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 { // header
				return header
			}
			return cell
		}).
		Headers("ID", "NAME", "LENGTH", "KIND")
	for _, a := range attrs {
		kind := "fixed"
		if a.Variable {
			kind = "variable"
		}
		if !a.Attribute {
			kind += " structure"
		}
		length := fmt.Sprintf("%d", a.Length)
		if a.Variable {
			length = fmt.Sprintf(">=%d", a.Length)
		}
		t.Row(a.ID, a.Name, length, kind)
	}
	_, err := fmt.Fprintln(env.Out, t.Render())
	return err
}
