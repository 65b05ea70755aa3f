package storefront

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label  string
	value  string
	secret bool
}

// form is a minimal multi-field text input.
type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) form { return form{fields: fields} }

func (f *form) value(i int) string { return strings.TrimSpace(f.fields[i].value) }

func (f *form) set(i int, v string) { f.fields[i].value = v }

// update applies a key to the focused field. It reports false for keys the
// form does not handle.
func (f *form) update(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
	case tea.KeyBackspace:
		v := []rune(f.fields[f.focus].value)
		if len(v) > 0 {
			f.fields[f.focus].value = string(v[:len(v)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		f.fields[f.focus].value += string(k.Runes)
	default:
		return false
	}
	return true
}

func (f *form) view(b *strings.Builder) {
	for i, fl := range f.fields {
		marker := " "
		if i == f.focus {
			marker = ">"
		}
		v := fl.value
		if fl.secret {
			v = strings.Repeat("*", len([]rune(v)))
		}
		b.WriteString(" " + marker + " " + fl.label + ": " + v + "\n")
	}
}
