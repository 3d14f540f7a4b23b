package main

import (
	"fmt"
	"strings"
)

var helpLines = []string{
	"auraflow Help",
	"=============",
	"",
	"Text:",
	"-----",
	"  a                Add a text element",
	"  d                Delete selected text",
	"  Tab              Select next text",
	"  Esc              Clear selection",
	"  e                Edit content (Enter=newline, Ctrl+S=save)",
	"  c                Text color (hex)",
	"  +/-              Font size",
	"  [/]              Opacity",
	"  f                Cycle font",
	"  v                Show/hide text layer",
	"  y                Copy content to clipboard",
	"",
	"Move Mode:",
	"----------",
	"  m                Move selected text",
	"  h/←/j/↓/k/↑/l/→  Move text",
	"  Shift+h/j/k/l    Move text 2x faster",
	"  Enter            Commit the move",
	"  Esc              Cancel the move",
	"  Mouse            Drag a text label and release to drop it",
	"",
	"Background:",
	"-----------",
	"  g                Gradient mode",
	"  i                Image mode",
	"  u                Toggle gradient/solid color",
	"  </>              Gradient angle",
	"  1/2/3            Gradient from/via/to color",
	"  p                Cycle gradient presets",
	"  b                Background color (also shown under images)",
	"  o                Open image file",
	"  x                Remove image",
	"",
	"Image Adjust Mode:",
	"------------------",
	"  I                Adjust image position and size",
	"  h/←/j/↓/k/↑/l/→  Move the image anchor",
	"  +/-              Image size",
	"  Enter            Keep changes",
	"  Esc              Restore previous placement",
	"",
	"Prompts:",
	"--------",
	"  ←/→ Home/End     Move cursor",
	"  Ctrl+V           Paste",
	"  Enter            Confirm",
	"  Esc              Cancel",
	"",
	"Other:",
	"------",
	"  s                Export background.png",
	"  ?                Toggle this help",
	"  q                Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	renderHeight := m.height - 1
	if renderHeight < 1 {
		renderHeight = 1
	}
	renderWidth := m.width
	if renderWidth < 1 {
		renderWidth = 1
	}

	frame, err := m.ctrl.Surface.Frame()
	var lines []string
	if err == nil {
		lines = m.canvas.Render(frame, renderWidth, renderHeight)
	}
	for len(lines) < renderHeight {
		lines = append(lines, "")
	}

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeInput:
		prompt := fmt.Sprintf("Mode: INPUT | %s: %s", m.inputField, cursorDisplay(m.inputText, m.inputCursor))
		if m.errorMessage != "" {
			prompt += " | ERROR: " + m.errorMessage
		}
		if m.inputField == FieldContent {
			return prompt + " | Enter=newline, Ctrl+S=save, Esc=cancel"
		}
		return prompt + " | Enter=confirm, Esc=cancel"
	case ModeMove:
		id, offset, _ := m.ctrl.Dragging()
		return fmt.Sprintf("Mode: MOVE | %s %+.0f,%+.0f | hjkl/arrows=move, Enter=finish, Esc=cancel", id, offset.DX, offset.DY)
	case ModeImageAdjust:
		img, _ := m.ctrl.Image()
		return fmt.Sprintf("Mode: IMAGE | Anchor %.0f%%,%.0f%% | Size %d%% | hjkl=move, +/-=size, Enter=keep, Esc=cancel",
			img.Anchor.X, img.Anchor.Y, img.ScalePercent)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteText:
			message = "Delete this text? (y/n)"
		case ConfirmRemoveImage:
			message = "Remove the background image? (y/n)"
		case ConfirmQuit:
			message = "Quit auraflow? (y/n)"
		}
		return "Mode: CONFIRM | " + message
	}

	status := fmt.Sprintf("Mode: %s | %s", m.modeString(), m.backgroundSummary())
	if sel := m.ctrl.Scene.Selected(); sel != nil {
		status += fmt.Sprintf(" | %s %dpx %s %d%%", sel.ID, sel.FontSizePx, sel.Font, sel.OpacityPercent)
	}
	if !m.ctrl.Scene.TextLayerVisible {
		status += " | text hidden"
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) backgroundSummary() string {
	switch bg := m.ctrl.Scene.Background.(type) {
	case Gradient:
		return fmt.Sprintf("gradient %.0f°", bg.Angle)
	case SolidColor:
		return "solid " + bg.ColorHex
	case ImageBackground:
		return fmt.Sprintf("image %s %d%%", bg.Name, bg.ScalePercent)
	default:
		return "none"
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeImageAdjust:
		return "IMAGE"
	case ModeInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (f InputField) String() string {
	switch f {
	case FieldContent:
		return "Text"
	case FieldTextColor:
		return "Text color"
	case FieldSolidColor:
		return "Background color"
	case FieldGradientFrom:
		return "Gradient from"
	case FieldGradientVia:
		return "Gradient via"
	case FieldGradientTo:
		return "Gradient to"
	case FieldImagePath:
		return "Image file"
	default:
		return "Value"
	}
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
