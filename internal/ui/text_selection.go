package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/guidelens/guidelens/internal/clipboard"
	"github.com/guidelens/guidelens/internal/logger"
)

// Mouse selection over the chat viewport. Mouse events arrive in panel
// coordinates; subtracting the 1-cell panel border yields coordinates
// relative to the viewport content, which is also what the ultraviolet
// screen buffer and the extraction code use. ANSI escapes are stripped
// before extracting text so column indexes line up with what's visible.

// ClipboardErrorMsg is sent when a clipboard write fails
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashTickMsg advances the brief copied-text flash
type SelectionFlashTickMsg time.Time

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells

	selectionFlashFrames   = 3
	selectionFlashInterval = 80 * time.Millisecond
)

// SelectionFlashTick drives the copied-text flash animation
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(selectionFlashInterval, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// StartSelection begins a text selection at the given coordinates
func (c *Chat) StartSelection(col, line int) {
	c.selStartCol = col
	c.selStartLine = line
	c.selEndCol = col
	c.selEndLine = line
	c.selDragging = true
}

// ExtendSelection updates the end position during a drag
func (c *Chat) ExtendSelection(col, line int) {
	if !c.selDragging {
		return
	}
	c.selEndCol = col
	c.selEndLine = line
}

// StopSelection ends the drag but keeps the selection visible
func (c *Chat) StopSelection() {
	c.selDragging = false
}

// ClearSelection clears the selection entirely
func (c *Chat) ClearSelection() {
	c.selStartCol = -1
	c.selStartLine = -1
	c.selEndCol = -1
	c.selEndLine = -1
	c.selDragging = false
	c.selFlashFrame = selectionFlashFrames
}

// HasSelection reports whether a non-empty selection exists
func (c *Chat) HasSelection() bool {
	return c.selStartCol >= 0 && c.selStartLine >= 0 &&
		(c.selEndCol != c.selStartCol || c.selEndLine != c.selStartLine)
}

// handleMouseClick starts a selection and detects double/triple clicks.
// Double click selects the word under the cursor, triple click the
// paragraph; both copy immediately.
func (c *Chat) handleMouseClick(x, y int) tea.Cmd {
	now := time.Now()

	if now.Sub(c.lastClickTime) <= doubleClickThreshold &&
		abs(x-c.lastClickX) <= clickTolerance &&
		abs(y-c.lastClickY) <= clickTolerance {
		c.clickCount++
	} else {
		c.clickCount = 1
	}

	c.lastClickTime = now
	c.lastClickX = x
	c.lastClickY = y

	switch c.clickCount {
	case 1:
		c.StartSelection(x, y)
	case 2:
		c.selectWord(x, y)
		return c.CopySelection()
	case 3:
		c.selectParagraph(x, y)
		c.clickCount = 0
		return c.CopySelection()
	}

	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// selectWord selects the word at the given position using uniseg word
// boundaries, so multi-byte graphemes don't split mid-cluster
func (c *Chat) selectWord(col, line int) {
	lines := strings.Split(c.viewport.View(), "\n")
	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	startCol := col
	endCol := col

	gr := uniseg.NewGraphemes(currentLine[:col])
	pos := 0
	lastBoundary := 0
	for gr.Next() {
		if gr.IsWordBoundary() {
			lastBoundary = pos
		}
		pos += len(gr.Str())
	}
	startCol = lastBoundary

	gr = uniseg.NewGraphemes(currentLine[col:])
	pos = col
	for gr.Next() {
		if gr.IsWordBoundary() {
			endCol = pos
			break
		}
		pos += len(gr.Str())
	}
	if endCol <= col {
		endCol = len(currentLine)
	}

	c.selStartCol = startCol
	c.selStartLine = line
	c.selEndCol = endCol
	c.selEndLine = line
	c.selDragging = false
}

// selectParagraph selects the block of non-blank lines around the position
func (c *Chat) selectParagraph(col, line int) {
	lines := strings.Split(c.viewport.View(), "\n")
	if line < 0 || line >= len(lines) {
		return
	}

	startLine := line
	endLine := line

	for startLine > 0 {
		if strings.TrimSpace(ansi.Strip(lines[startLine-1])) == "" {
			break
		}
		startLine--
	}
	for endLine < len(lines)-1 {
		if strings.TrimSpace(ansi.Strip(lines[endLine+1])) == "" {
			break
		}
		endLine++
	}

	c.selStartCol = 0
	c.selStartLine = startLine
	c.selEndCol = len(ansi.Strip(lines[endLine]))
	c.selEndLine = endLine
	c.selDragging = false
}

// selectionArea normalizes the selection so start precedes end in reading
// order; drags can run bottom-right to top-left
func (c *Chat) selectionArea() (startCol, startLine, endCol, endLine int) {
	startCol = c.selStartCol
	startLine = c.selStartLine
	endCol = c.selEndCol
	endLine = c.selEndLine

	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// SelectedText extracts the selected text from the rendered viewport.
// Escapes are stripped per line first: selection columns index visible
// characters, not raw bytes.
func (c *Chat) SelectedText() string {
	if !c.HasSelection() {
		return ""
	}

	lines := strings.Split(c.viewport.View(), "\n")
	startCol, startLine, endCol, endLine := c.selectionArea()

	var result strings.Builder
	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := ansi.Strip(lines[y])

		lineStart := 0
		lineEnd := len(line)
		if y == startLine {
			lineStart = startCol
		}
		if y == endLine {
			lineEnd = endCol
		}

		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > len(line) {
			lineEnd = len(line)
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		if lineStart < len(line) {
			result.WriteString(line[lineStart:lineEnd])
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// CopySelection copies the selected text to the clipboard and starts the
// flash animation
func (c *Chat) CopySelection() tea.Cmd {
	if !c.HasSelection() {
		return nil
	}

	selectedText := c.SelectedText()
	if selectedText == "" {
		return nil
	}

	c.selFlashFrame = 0

	return tea.Batch(
		// OSC 52 for modern terminals
		tea.SetClipboard(selectedText),
		// Native clipboard fallback
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.Warn("clipboard write failed: %v", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		SelectionFlashTick(),
	)
}

// HandleSelectionFlashTick advances the flash; returns the next tick while
// frames remain
func (c *Chat) HandleSelectionFlashTick() tea.Cmd {
	c.selFlashFrame++
	if c.selFlashFrame < selectionFlashFrames {
		return SelectionFlashTick()
	}
	c.ClearSelection()
	return nil
}

// selectionView applies selection highlighting to the rendered viewport
// using an ultraviolet screen buffer
func (c *Chat) selectionView(view string) string {
	if !c.HasSelection() {
		return view
	}

	width := c.viewport.Width()
	height := c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	startCol, startLine, endCol, endLine := c.selectionArea()

	var selBg, selFg color.Color
	if c.selFlashFrame == 0 {
		// First flash frame signals the copy landed
		selBg = SelectionFlashStyle.GetBackground()
		selFg = SelectionFlashStyle.GetForeground()
	} else {
		selBg = SelectionStyle.GetBackground()
		selFg = SelectionStyle.GetForeground()
	}

	for y := startLine; y <= endLine && y < height; y++ {
		xStart := 0
		xEnd := width
		if y == startLine {
			xStart = startCol
		}
		if y == endLine {
			xEnd = endCol
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
