package ui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/photo-feed/internal/config"
)

// Dialog size constants
const (
	SettingsDialogWidth  = 460
	SettingsDialogHeight = 380
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	picturesDirEntry *widget.Entry
	backendSelect    *widget.Select
	paddingSlider    *widget.Slider
	paddingLabel     *widget.Label
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved runs
// after the user confirms.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.picturesDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	picturesDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.picturesDirEntry)

	backendOptions := []string{}
	for _, backend := range sd.settings.GetStorageBackendOptions() {
		backendOptions = append(backendOptions, string(backend))
	}
	sd.backendSelect = widget.NewSelect(backendOptions, nil)

	sd.paddingLabel = widget.NewLabel("")
	sd.paddingSlider = widget.NewSlider(0, config.MaxRowPadding)
	sd.paddingSlider.Step = 1
	sd.paddingSlider.OnChanged = func(v float64) {
		sd.paddingLabel.SetText(fmt.Sprintf("%.0f px", v))
	}

	languageNames := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.autoRevealCheck = widget.NewCheck(t(KeyAutoReveal), nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyPicturesDirectory)+":"),
		picturesDirRow,

		widget.NewLabel(t(KeyStorageBackend)+":"),
		sd.backendSelect,

		widget.NewLabel(t(KeyRowPadding)+":"),
		container.NewBorder(nil, nil, nil, sd.paddingLabel, sd.paddingSlider),

		widget.NewSeparator(),

		widget.NewLabel(t(KeyLanguage)+":"),
		sd.languageSelect,
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.picturesDirEntry.SetText(sd.settings.GetPicturesDirectory())
	sd.backendSelect.SetSelected(string(sd.settings.GetStorageBackend()))
	sd.paddingSlider.SetValue(float64(sd.settings.GetRowPadding()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.picturesDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply stores the dialog values
func (sd *SettingsDialog) apply() {
	if dir := strings.TrimSpace(sd.picturesDirEntry.Text); dir != "" {
		sd.settings.SetPicturesDirectory(dir)
	}
	if sd.backendSelect.Selected != "" {
		sd.settings.SetStorageBackend(config.StorageBackend(sd.backendSelect.Selected))
	}
	sd.settings.SetRowPadding(int(sd.paddingSlider.Value))
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
