package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables - set by the parent ui package via SetStyles so modals
// follow the active agent theme
var (
	ModalTitleStyle      lipgloss.Style
	ModalHelpStyle       lipgloss.Style
	ModalItemStyle       lipgloss.Style
	ModalSelectedStyle   lipgloss.Style
	ModalErrorStyle      lipgloss.Style
	ModalBannerStyle     lipgloss.Style
	ModalBannerErrStyle  lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
)

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals, and again whenever the
// agent theme changes.
func SetStyles(
	title, help, item, selected, errStyle, banner, bannerErr lipgloss.Style,
	primary, secondary, text, textMuted, textInverse, warning color.Color,
	inputWidth, inputCharLimit, modalWidth int,
) {
	ModalTitleStyle = title
	ModalHelpStyle = help
	ModalItemStyle = item
	ModalSelectedStyle = selected
	ModalErrorStyle = errStyle
	ModalBannerStyle = banner
	ModalBannerErrStyle = bannerErr

	ColorPrimary = primary
	ColorSecondary = secondary
	ColorText = text
	ColorTextMuted = textMuted
	ColorTextInverse = textInverse
	ColorWarning = warning

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = modalWidth
}
