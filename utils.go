package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return cleanClipboardText(string(output)), nil
		}
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText normalizes line endings and drops control characters.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// insertAt inserts s at rune position pos and returns the new cursor.
func insertAt(text string, pos int, s string) (string, int) {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	ins := []rune(s)
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:pos]...)
	out = append(out, ins...)
	out = append(out, runes[pos:]...)
	return string(out), pos + len(ins)
}

// deleteBefore removes the rune left of pos (backspace).
func deleteBefore(text string, pos int) (string, int) {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	if pos == 0 {
		return text, 0
	}
	return string(append(runes[:pos-1:pos-1], runes[pos:]...)), pos - 1
}

// deleteAt removes the rune under pos (delete).
func deleteAt(text string, pos int) (string, int) {
	runes := []rune(text)
	pos = clampInt(pos, 0, len(runes))
	if pos >= len(runes) {
		return text, pos
	}
	return string(append(runes[:pos:pos], runes[pos+1:]...)), pos
}

// cursorDisplay replaces the rune under the cursor with a block, as the
// status line shows it.
func cursorDisplay(text string, pos int) string {
	display := []rune(strings.ReplaceAll(text, "\n", "⏎"))
	if len(display) == 0 {
		return "█"
	}
	if pos >= len(display) {
		return string(display) + "█"
	}
	if pos < 0 {
		pos = 0
	}
	display[pos] = '█'
	return string(display)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
