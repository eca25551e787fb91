package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

var (
	textStyle    = tcell.StyleDefault
	gutterStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	currentStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle  = tcell.StyleDefault.Reverse(true)
)

// Draw paints the visible lines, the gutter and the status row.
func (e *Editor) Draw() {
	e.screen.Clear()
	width, height := e.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	doc := e.session.Document()
	r := doc.Rope()
	line, col := lineCol(doc.Text(), doc.Cursor())

	e.gutter.SetLines(doc.LineStarts())
	e.gutter.SetCurrentLine(line)

	rows := height - 1
	e.scrollTo(line, rows)

	gw := e.gutter.Width()
	cursorX, cursorY := -1, -1
	for row := 0; row < rows; row++ {
		idx := e.top + row
		if idx >= e.gutter.LineCount() {
			break
		}
		style := gutterStyle
		if e.gutter.IsCurrent(idx) {
			style = currentStyle
		}
		e.putString(0, row, gw-1, e.gutter.Label(idx), style)

		text := r.Line(idx)
		e.drawLine(gw, row, width, text)
		if idx == line {
			cursorX = gw + displayColumn(text, col, e.tabWidth)
			cursorY = row
		}
	}

	e.drawStatus(height-1, width, line, col)

	switch {
	case e.prompt != nil:
		x := uniseg.StringWidth(e.prompt.text())
		e.screen.ShowCursor(min(x, width-1), height-1)
	case cursorY >= 0 && cursorX < width:
		e.screen.ShowCursor(cursorX, cursorY)
	default:
		e.screen.HideCursor()
	}
	e.screen.Show()
}

// scrollTo adjusts the first visible line so that line is on screen.
func (e *Editor) scrollTo(line, rows int) {
	if rows <= 0 {
		return
	}
	if line < e.top {
		e.top = line
	}
	if line >= e.top+rows {
		e.top = line - rows + 1
	}
}

// drawLine draws one line of text starting at column x0, clipped at maxX.
func (e *Editor) drawLine(x0, y, maxX int, line string) {
	x := x0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			next := x0 + tabStop(x-x0, e.tabWidth)
			for ; x < next && x < maxX; x++ {
				e.screen.SetContent(x, y, ' ', nil, textStyle)
			}
			continue
		}
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			return
		}
		runes := g.Runes()
		e.screen.SetContent(x, y, runes[0], runes[1:], textStyle)
		x += w
	}
}

func (e *Editor) drawStatus(y, width, line, col int) {
	for x := 0; x < width; x++ {
		e.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	if e.prompt != nil {
		e.putString(0, y, width, e.prompt.text(), statusStyle)
		return
	}

	doc := e.session.Document()
	left := " " + doc.Name()
	if doc.IsModified() {
		left += " [+]"
	}
	if e.message != "" {
		left += "  " + e.message
	}
	right := fmt.Sprintf("Ln %d, Col %d  %s ", line+1, col+1, strings.ToUpper(string(doc.LineEnding())))

	e.putString(0, y, width, left, statusStyle)
	if rx := width - uniseg.StringWidth(right); rx > uniseg.StringWidth(left) {
		e.putString(rx, y, width, right, statusStyle)
	}
}

// putString draws s at (x, y), clipped at maxX, and returns the column
// after the last cell drawn.
func (e *Editor) putString(x, y, maxX int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		runes := g.Runes()
		e.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// displayColumn returns the screen column of rune column col in line.
func displayColumn(line string, col, tabWidth int) int {
	x, n := 0, 0
	g := uniseg.NewGraphemes(line)
	for n < col && g.Next() {
		if g.Str() == "\t" {
			x = tabStop(x, tabWidth)
		} else {
			x += g.Width()
		}
		n += len(g.Runes())
	}
	return x
}

// tabStop returns the column of the next tab stop after x.
func tabStop(x, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	return x + tabWidth - x%tabWidth
}
