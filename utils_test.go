package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "a\nb\nc", cleanClipboardText("a\r\nb\rc"))
	assert.Equal(t, "tab\tok", cleanClipboardText("tab\tok\x00\x07"))
	assert.Equal(t, "", cleanClipboardText(""))
}

func TestPromptEditing(t *testing.T) {
	text, pos := insertAt("hllo", 1, "e")
	assert.Equal(t, "hello", text)
	assert.Equal(t, 2, pos)

	text, pos = insertAt("héllo", 99, "!")
	assert.Equal(t, "héllo!", text)
	assert.Equal(t, 6, pos)

	text, pos = deleteBefore("héllo", 2)
	assert.Equal(t, "hllo", text)
	assert.Equal(t, 1, pos)

	text, pos = deleteBefore("abc", 0)
	assert.Equal(t, "abc", text)
	assert.Equal(t, 0, pos)

	text, pos = deleteAt("abc", 1)
	assert.Equal(t, "ac", text)
	assert.Equal(t, 1, pos)

	text, pos = deleteAt("abc", 3)
	assert.Equal(t, "abc", text)
	assert.Equal(t, 3, pos)
}

func TestCursorDisplay(t *testing.T) {
	assert.Equal(t, "█", cursorDisplay("", 0))
	assert.Equal(t, "ab█", cursorDisplay("ab", 2))
	assert.Equal(t, "a█", cursorDisplay("ab", 1))
	assert.Equal(t, "a⏎█", cursorDisplay("a\nb", 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 50, clampInt(10, 50, 200))
	assert.Equal(t, 200, clampInt(300, 50, 200))
	assert.Equal(t, 75, clampInt(75, 50, 200))
	assert.Equal(t, 0.0, clampFloat(-1, 0, 100))
	assert.Equal(t, 100.0, clampFloat(101, 0, 100))
}
