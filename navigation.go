package main

// direction maps a movement key to a unit step. ok is false for other keys.
func direction(key string) (dx, dy int, ok bool) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0, true
	case "l", "right", "L", "shift+right":
		return 1, 0, true
	case "k", "up", "K", "shift+up":
		return 0, -1, true
	case "j", "down", "J", "shift+down":
		return 0, 1, true
	}
	return 0, 0, false
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// handleMoveKey nudges the in-flight drag of move mode.
func (m *model) handleMoveKey(key string) bool {
	dx, dy, ok := direction(key)
	if !ok {
		return false
	}
	step := float64(moveStepPx * m.getMoveSpeed(key))
	m.keyDrag = m.keyDrag.Add(Offset{DX: float64(dx) * step, DY: float64(dy) * step})
	m.ctrl.DragUpdate(m.keyDrag)
	return true
}

// handleAnchorKey nudges the image anchor in image adjust mode.
func (m *model) handleAnchorKey(key string) bool {
	dx, dy, ok := direction(key)
	if !ok {
		return false
	}
	step := float64(anchorStepPercent * m.getMoveSpeed(key))
	m.ctrl.NudgeImageAnchor(float64(dx)*step, float64(dy)*step)
	return true
}
