package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeImageAdjust
	ModeInput
	ModeConfirm
)

// InputField names the value an input prompt writes to.
type InputField int

const (
	FieldContent InputField = iota
	FieldTextColor
	FieldSolidColor
	FieldGradientFrom
	FieldGradientVia
	FieldGradientTo
	FieldImagePath
)

type ConfirmAction int

const (
	ConfirmDeleteText ConfirmAction = iota
	ConfirmRemoveImage
	ConfirmQuit
)

// BackgroundMode is the radio choice of the background panel.
type BackgroundMode int

const (
	BackgroundModeGradient BackgroundMode = iota
	BackgroundModeImage
)

func (b BackgroundMode) String() string {
	if b == BackgroundModeImage {
		return "image"
	}
	return "gradient"
}

// FontToken selects a font family. The first token inherits the default face.
type FontToken int

const (
	FontDefault FontToken = iota
	FontSans
	FontSerif
	FontMono
	FontInter
	FontPoppins
	FontRoboto
	numFonts
)

var fontTokenNames = [...]string{"default", "sans", "serif", "mono", "inter", "poppins", "roboto"}

func (f FontToken) String() string {
	if f < 0 || f >= numFonts {
		return fontTokenNames[FontDefault]
	}
	return fontTokenNames[f]
}

// ParseFontToken maps a token name back to its value.
func ParseFontToken(name string) (FontToken, bool) {
	for i, n := range fontTokenNames {
		if n == name {
			return FontToken(i), true
		}
	}
	return FontDefault, false
}

const (
	defaultSurfaceWidth  = 800
	defaultSurfaceHeight = 450
	defaultExportScale   = 2
	exportFileName       = "background.png"
	downloadEvent        = "image_downloaded_btn_clicked"

	defaultGradientText = "everything is god's plan"
	defaultImageText    = "competition is for losers"
	newTextContent      = "new text"

	defaultTextColor   = "#ffffff"
	defaultSolidColor  = "#000000"
	defaultBackdrop    = "#000000"
	defaultAngle       = 337
	defaultImageScale  = 61
	defaultFontSizePx  = 36
	defaultOpacity     = 100
	minFontSizePx      = 12
	maxFontSizePx      = 100
	minImageScale      = 50
	maxImageScale      = 200
	surfacePadding     = 32
	lineHeightFactor   = 1.625
	shadowOffsetY      = 2
	shadowBlurRadius   = 2
	shadowAlpha        = 0.1
	outlineWidth       = 2
	moveStepPx         = 10
	anchorStepPercent  = 1
	angleStepDegrees   = 5
	fontSizeStepPx     = 2
	opacityStepPercent = 5
	scaleStepPercent   = 5
)

var (
	defaultAnchor        = Anchor{X: 75, Y: 35}
	defaultGradientStops = []string{"#1d1b1b", "#2a3232", "#ccd5d7"}
)
