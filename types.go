package main

import "image"

type model struct {
	width      int
	height     int
	config     *Config
	ctrl       *Controller
	exporter   *Exporter
	canvas     *Canvas
	watcher    *ImageWatcher
	imagePath  string
	mode       Mode
	help       bool
	helpScroll int

	inputField  InputField
	inputText   string
	inputCursor int

	confirmAction ConfirmAction
	confirmTextID string

	keyDrag        Offset // move mode, cumulative since the drag began
	mouseDragging  bool
	mouseStartX    int
	mouseStartY    int
	originalAnchor Anchor
	originalScale  int

	exporting      bool
	errorMessage   string
	successMessage string
}

type exportDoneMsg struct {
	artifact Artifact
	ok       bool
}

type imageLoadedMsg struct {
	img    image.Image
	path   string
	reload bool
	err    error
}
