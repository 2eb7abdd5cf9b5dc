package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestFeedTheme(t *testing.T) {
	th := NewFeedTheme()

	light := th.Color(theme.ColorNamePlaceHolder, theme.VariantLight)
	dark := th.Color(theme.ColorNamePlaceHolder, theme.VariantDark)
	assert.NotEqual(t, light, dark)

	avatar := th.Color(ColorNameAvatarPlaceholder, theme.VariantLight)
	assert.NotEqual(t, light, avatar, "the avatar circle must stand out from the row placeholder")

	assert.Zero(t, th.Size(theme.SizeNameSelectionRadius))
	assert.Less(t, th.Size(theme.SizeNameScrollBar), theme.DefaultTheme().Size(theme.SizeNameScrollBar))

	def := theme.DefaultTheme()
	assert.Equal(t, def.Color(theme.ColorNameHover, theme.VariantDark), th.Color(theme.ColorNameHover, theme.VariantDark))
	assert.Equal(t, def.Size(theme.SizeNameText), th.Size(theme.SizeNameText))
}
