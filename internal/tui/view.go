package tui

import (
	"fmt"
	"strings"

	"moodboard/internal/domain"
)

// layout places every item, the dragged one at its live position and the
// pending item on top.
func (m Model) layout() []cellBox {
	st := m.board.State()
	boxes := make([]cellBox, 0, len(st.Items)+1)
	for i, it := range st.Items {
		pos := it.Position
		style := textStyle
		if it.Kind == domain.ItemKindImage {
			style = imageStyle
		}
		if i == m.dragging {
			pos = m.dragAt
			style = draggingStyle
		}
		col, row := m.metrics.ToCell(pos)
		boxes = append(boxes, cellBox{index: i, col: col, row: row, text: label(it.Kind, it.Content), style: style})
	}
	if st.Pending != nil {
		col, row := m.metrics.ToCell(st.Pending.Position)
		boxes = append(boxes, cellBox{
			index: -1,
			col:   col,
			row:   row,
			text:  label(st.Pending.Kind, st.Pending.Content),
			style: pendingStyle,
		})
	}
	return boxes
}

func (m Model) View() string {
	if m.showHelp {
		return renderHelp(m.keys, m.width)
	}

	var b strings.Builder
	for i := range m.inputs {
		in := m.inputs[i]
		if focus(i) == m.focus {
			in.PromptStyle = focusedPrompt
		}
		b.WriteString(in.View())
		b.WriteByte('\n')
	}
	b.WriteString(ruleStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteByte('\n')

	c := newCanvas(max(m.width, 1), m.boardRows())
	boxes := m.layout()
	for _, box := range boxes {
		c.draw(box)
	}
	b.WriteString(c.render())
	b.WriteByte('\n')
	b.WriteString(m.statusLine(len(m.board.Items())))
	return b.String()
}

func (m Model) statusLine(n int) string {
	if m.status != "" {
		if m.statusErr {
			return errorStyle.Render(m.status)
		}
		if m.confirmClear {
			return titleStyle.Render(m.status)
		}
		return successStyle.Render(m.status)
	}
	var hints []string
	for _, kb := range m.keys.shortHelp() {
		h := kb.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return mutedStyle.Render(fmt.Sprintf("%d items · %s", n, strings.Join(hints, " · ")))
}
