package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, cfgErr := loadConfig()
	if cfg.LogFile != "" {
		f, err := openLogFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	var startErr error
	if cfgErr != nil {
		Logger().Warn("config", "err", cfgErr)
		startErr = cfgErr
	}

	var img image.Image
	var imgPath string
	if cfg.DefaultImage != "" {
		loaded, path, err := LoadImageFile(cfg.DefaultImage)
		if err != nil {
			Logger().Warn("default image", "err", err)
			startErr = err
		} else {
			img, imgPath = loaded, path
		}
	}

	m := initialModel(cfg, img, imgPath)
	if startErr != nil {
		m.errorMessage = startErr.Error()
	}
	if cfg.WatchImage {
		w, err := NewImageWatcher()
		if err != nil {
			Logger().Warn("image watcher disabled", "err", err)
		} else {
			defer w.Close()
			m.watcher = w
			if imgPath != "" {
				if err := w.Watch(imgPath); err != nil {
					Logger().Warn("watch image", "err", err)
				}
			}
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(cfg *Config, img image.Image, imgPath string) model {
	if cfg == nil {
		cfg = defaultConfig()
	}
	scene := NewScene(img, filepath.Base(imgPath))
	texts := cfg.ModeTexts()
	if len(scene.Texts) > 0 {
		mode := BackgroundModeGradient
		if img != nil {
			mode = BackgroundModeImage
		}
		content := texts.forMode(mode)
		scene.UpdateTextElement(scene.Texts[0].ID, TextPatch{Content: &content})
	}

	fonts := NewFontRegistry(cfg.Fonts)
	raster := NewGGRasterizer(fonts)
	surface := NewSurface(cfg.SurfaceSize())
	return model{
		config:    cfg,
		ctrl:      NewController(scene, surface, texts),
		exporter:  NewExporter(raster, FileDownloader{Dir: cfg.SaveDirectory}, LogAnalytics{}, cfg.ExportScale),
		canvas:    NewCanvas(raster),
		imagePath: imgPath,
		mode:      ModeNormal,
	}
}

func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Wait()
}

func loadImageCmd(path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		img, expanded, err := LoadImageFile(path)
		return imageLoadedMsg{img: img, path: expanded, reload: reload, err: err}
	}
}

func (m *model) exportCmd() tea.Cmd {
	exporter, surface := m.exporter, m.ctrl.Surface
	return func() tea.Msg {
		art, ok := exporter.Export(context.Background(), surface)
		return exportDoneMsg{artifact: art, ok: ok}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.ok {
			m.successMessage = fmt.Sprintf("Saved %s (%dx%d)", msg.artifact.Path, msg.artifact.Width, msg.artifact.Height)
		} else {
			m.successMessage = ""
		}
		return m, nil

	case imageLoadedMsg:
		if msg.err != nil {
			Logger().Warn("load image", "err", msg.err)
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		if msg.reload {
			m.ctrl.ReloadImage(msg.img)
			m.successMessage = "Reloaded " + filepath.Base(msg.path)
			return m, nil
		}
		m.ctrl.SetImage(msg.img, filepath.Base(msg.path))
		m.imagePath = msg.path
		if m.watcher != nil {
			if err := m.watcher.Watch(msg.path); err != nil {
				Logger().Warn("watch image", "err", err)
			}
		}
		m.errorMessage = ""
		m.successMessage = "Loaded " + filepath.Base(msg.path)
		return m, nil

	case imageChangedMsg:
		if m.imagePath == "" || msg.path != filepath.Clean(m.imagePath) {
			return m, m.watcher.Wait()
		}
		return m, tea.Batch(loadImageCmd(msg.path, true), m.watcher.Wait())

	case watchErrMsg:
		Logger().Warn("image watcher", "err", msg.err)
		return m, m.watcher.Wait()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeMove:
			return m.handleMoveModeKey(msg)
		case ModeImageAdjust:
			return m.handleImageAdjustKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	if !m.exporting {
		m.successMessage = ""
	}
	sel := m.ctrl.Scene.Selected()

	switch msg.String() {
	case "?":
		m.help = true
		m.helpScroll = 0
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "a":
		m.ctrl.AddText()
	case "d":
		if sel == nil {
			m.errorMessage = "No text selected"
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteText
			m.confirmTextID = sel.ID
			return m, nil
		}
		m.ctrl.RemoveText(sel.ID)
	case "tab":
		m.ctrl.SelectNext()
	case "esc":
		m.ctrl.Select("")
	case "m":
		if sel == nil {
			m.errorMessage = "No text selected"
			return m, nil
		}
		if m.ctrl.DragStart(sel.ID) {
			m.keyDrag = Offset{}
			m.mode = ModeMove
		}
	case "e":
		if sel == nil {
			m.errorMessage = "No text selected"
			return m, nil
		}
		m.openInput(FieldContent, sel.Content)
	case "c":
		if sel == nil {
			m.errorMessage = "No text selected"
			return m, nil
		}
		m.openInput(FieldTextColor, sel.ColorHex)
	case "+", "=":
		m.ctrl.NudgeFontSize(fontSizeStepPx)
	case "-", "_":
		m.ctrl.NudgeFontSize(-fontSizeStepPx)
	case "]":
		m.ctrl.NudgeOpacity(opacityStepPercent)
	case "[":
		m.ctrl.NudgeOpacity(-opacityStepPercent)
	case "f":
		m.ctrl.CycleFont()
	case "v":
		m.ctrl.ToggleTextLayer()
	case "g":
		m.ctrl.SwitchMode(BackgroundModeGradient)
	case "i":
		m.ctrl.SwitchMode(BackgroundModeImage)
		if !m.ctrl.HasImage() {
			m.successMessage = "No image loaded, press o to open one"
		}
	case "u":
		m.ctrl.SetUseGradient(!m.ctrl.UseGradient())
	case ">", ".":
		m.ctrl.NudgeGradientAngle(angleStepDegrees)
	case "<", ",":
		m.ctrl.NudgeGradientAngle(-angleStepDegrees)
	case "1", "2", "3":
		i := int(msg.String()[0] - '1')
		field := []InputField{FieldGradientFrom, FieldGradientVia, FieldGradientTo}[i]
		current := ""
		if stops := m.ctrl.Gradient().Stops; i < len(stops) {
			current = stops[i].ColorHex
		}
		m.openInput(field, current)
	case "p":
		m.successMessage = "Preset: " + m.ctrl.CyclePreset()
	case "b":
		m.openInput(FieldSolidColor, m.ctrl.SolidColor())
	case "o":
		m.openInput(FieldImagePath, m.imagePath)
	case "x":
		if !m.ctrl.HasImage() {
			m.errorMessage = "No image loaded"
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveImage
			return m, nil
		}
		m.removeImage()
	case "I":
		img, ok := m.ctrl.Image()
		if !ok {
			m.errorMessage = "No image loaded"
			return m, nil
		}
		if m.ctrl.Mode() != BackgroundModeImage {
			m.ctrl.SwitchMode(BackgroundModeImage)
		}
		m.originalAnchor = img.Anchor
		m.originalScale = img.ScalePercent
		m.mode = ModeImageAdjust
	case "s":
		if m.exporting || m.exporter.InFlight() {
			return m, nil
		}
		if m.mouseDragging {
			m.errorMessage = "Finish the drag before exporting"
			return m, nil
		}
		m.exporting = true
		m.successMessage = "Exporting..."
		return m, m.exportCmd()
	case "y":
		if sel == nil {
			m.errorMessage = "No text selected"
			return m, nil
		}
		if err := writeClipboardText(sel.Content); err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return m, nil
		}
		m.successMessage = "Copied text"
	}
	return m, nil
}

func (m *model) removeImage() {
	m.ctrl.RemoveImage()
	m.imagePath = ""
	if m.watcher != nil {
		if err := m.watcher.Watch(""); err != nil {
			Logger().Warn("unwatch image", "err", err)
		}
	}
}

func (m *model) openInput(field InputField, initial string) {
	m.mode = ModeInput
	m.inputField = field
	m.inputText = initial
	m.inputCursor = len([]rune(initial))
}

func (m *model) closeInput() {
	m.mode = ModeNormal
	m.inputText = ""
	m.inputCursor = 0
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multiline := m.inputField == FieldContent
	switch {
	case msg.Type == tea.KeyEsc:
		m.closeInput()
		return m, nil
	case msg.Type == tea.KeyCtrlS, msg.Type == tea.KeyEnter && !multiline:
		cmd := m.submitInput()
		return m, cmd
	case msg.Type == tea.KeyEnter:
		m.inputText, m.inputCursor = insertAt(m.inputText, m.inputCursor, "\n")
	case msg.Type == tea.KeyCtrlV:
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return m, nil
		}
		if !multiline {
			text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
		}
		m.inputText, m.inputCursor = insertAt(m.inputText, m.inputCursor, text)
	case msg.Type == tea.KeyLeft:
		m.inputCursor = clampInt(m.inputCursor-1, 0, len([]rune(m.inputText)))
	case msg.Type == tea.KeyRight:
		m.inputCursor = clampInt(m.inputCursor+1, 0, len([]rune(m.inputText)))
	case msg.Type == tea.KeyHome, msg.Type == tea.KeyCtrlA:
		m.inputCursor = 0
	case msg.Type == tea.KeyEnd, msg.Type == tea.KeyCtrlE:
		m.inputCursor = len([]rune(m.inputText))
	case msg.Type == tea.KeyBackspace:
		m.inputText, m.inputCursor = deleteBefore(m.inputText, m.inputCursor)
	case msg.Type == tea.KeyDelete:
		m.inputText, m.inputCursor = deleteAt(m.inputText, m.inputCursor)
	case msg.Type == tea.KeySpace:
		m.inputText, m.inputCursor = insertAt(m.inputText, m.inputCursor, " ")
	case msg.Type == tea.KeyRunes:
		m.inputText, m.inputCursor = insertAt(m.inputText, m.inputCursor, string(msg.Runes))
	}
	return m, nil
}

// submitInput applies the prompt to its field. Invalid values keep the
// prompt open with an error.
func (m *model) submitInput() tea.Cmd {
	value := m.inputText
	var err error
	switch m.inputField {
	case FieldContent:
		m.ctrl.SetContent(value)
	case FieldTextColor:
		err = m.ctrl.SetTextColor(value)
	case FieldSolidColor:
		err = m.ctrl.SetSolidColor(value)
	case FieldGradientFrom:
		err = m.ctrl.SetGradientStop(0, value)
	case FieldGradientVia:
		err = m.ctrl.SetGradientStop(1, value)
	case FieldGradientTo:
		err = m.ctrl.SetGradientStop(2, value)
	case FieldImagePath:
		path := strings.TrimSpace(value)
		m.closeInput()
		if path == "" {
			return nil
		}
		m.successMessage = "Loading " + filepath.Base(path)
		return loadImageCmd(path, false)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	m.errorMessage = ""
	m.closeInput()
	return nil
}

func (m model) handleMoveModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.DragEnd(m.keyDrag)
		m.keyDrag = Offset{}
		m.mode = ModeNormal
	case "esc":
		m.ctrl.DragCancel()
		m.keyDrag = Offset{}
		m.mode = ModeNormal
	default:
		m.handleMoveKey(msg.String())
	}
	return m, nil
}

func (m model) handleImageAdjustKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
	case "esc":
		m.ctrl.SetImageAnchor(m.originalAnchor.X, m.originalAnchor.Y)
		m.ctrl.SetImageScale(m.originalScale)
		m.mode = ModeNormal
	case "+", "=":
		m.ctrl.NudgeImageScale(scaleStepPercent)
	case "-", "_":
		m.ctrl.NudgeImageScale(-scaleStepPercent)
	default:
		m.handleAnchorKey(msg.String())
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmDeleteText:
			m.ctrl.RemoveText(m.confirmTextID)
		case ConfirmRemoveImage:
			m.removeImage()
		case ConfirmQuit:
			return m, tea.Quit
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	m.confirmTextID = ""
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

// handleMouse drags text labels on the preview. Motion updates only the
// surface, the release commits the whole offset.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help {
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		id, ok := m.canvas.HitTest(msg.X, msg.Y)
		if !ok {
			m.ctrl.Select("")
			return m, nil
		}
		if m.ctrl.DragStart(id) {
			m.mouseDragging = true
			m.mouseStartX, m.mouseStartY = msg.X, msg.Y
		}
	case msg.Action == tea.MouseActionMotion && m.mouseDragging:
		m.ctrl.DragUpdate(m.mouseDelta(msg))
	case msg.Action == tea.MouseActionRelease && m.mouseDragging:
		m.ctrl.DragEnd(m.mouseDelta(msg))
		m.mouseDragging = false
	}
	return m, nil
}

func (m *model) mouseDelta(msg tea.MouseMsg) Offset {
	return m.canvas.Viewport().Delta(msg.X-m.mouseStartX, msg.Y-m.mouseStartY)
}
