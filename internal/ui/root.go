package ui

import (
	"image/color"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/photo-feed/internal/config"
	"github.com/ytget/photo-feed/internal/download"
	"github.com/ytget/photo-feed/internal/feed"
	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/platform"
	"github.com/ytget/photo-feed/internal/unsplash"
)

// StorageHandler reopens the download collection after the storage
// settings changed
type StorageHandler func(backend config.StorageBackend, dir string) error

// FeedUI is the main window. It implements feed.View; every View method
// runs on the Fyne UI goroutine.
type FeedUI struct {
	window       fyne.Window
	controller   *feed.Controller
	items        *feed.List
	downloadSvc  download.Downloader
	loader       ImageLoader
	settings     *config.Settings
	localization *Localization
	permission   *platform.StoragePermission
	mobile       *MobileUI

	onStorageChange StorageHandler

	searchEntry   *widget.Entry
	searchBtn     *widget.Button
	refreshBtn    *widget.Button
	photoList     *widget.List
	pullToRefresh *PullToRefresh
	loadingBar    *widget.ProgressBarInfinite
	errorLabel    *widget.Label
	emptyLabel    *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	activeDownloads       int

	lastErr     error
	listWidth   float32
	itemHeights map[int]float32

	closeOnce sync.Once
}

// NewFeedUI creates the feed window content. Photos are not fetched until
// Start is called.
func NewFeedUI(window fyne.Window, app fyne.App, gateway unsplash.Gateway, downloadSvc download.Downloader, loader ImageLoader, permission *platform.StoragePermission) *FeedUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &FeedUI{
		window:       window,
		items:        feed.NewList(),
		downloadSvc:  downloadSvc,
		loader:       loader,
		settings:     settings,
		localization: localization,
		permission:   permission,
		mobile:       NewMobileUI(),
		itemHeights:  make(map[int]float32),
	}
	ui.controller = feed.NewController(gateway, ui, fyne.Do)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.items.SetSelectCallback(ui.onPhotoSelected)
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	window.SetOnClosed(ui.Close)

	ui.setupUI()
	return ui
}

// Controller returns the feed controller driving this window
func (ui *FeedUI) Controller() *feed.Controller {
	return ui.controller
}

// Settings returns the user settings
func (ui *FeedUI) Settings() *config.Settings {
	return ui.settings
}

// SetStorageHandler sets the function called when storage settings change
func (ui *FeedUI) SetStorageHandler(handler StorageHandler) {
	ui.onStorageChange = handler
}

// Start runs the startup sequence: ask for storage access when it is
// required, then load random photos.
func (ui *FeedUI) Start() {
	fetch := func() { ui.controller.Fetch("") }
	if ui.permission != nil && ui.permission.Required() {
		// Photos are shown either way; only saving needs the grant
		ui.promptPermission(fetch, fetch)
		return
	}
	fetch()
}

// Close tears the feed down. Results arriving afterwards are dropped.
func (ui *FeedUI) Close() {
	ui.closeOnce.Do(func() {
		log.Printf("Feed window closed")
		ui.controller.Teardown()
	})
}

// setupUI creates and arranges all UI components
func (ui *FeedUI) setupUI() {
	ui.createMenu()

	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.searchEntry.SetText(ui.settings.GetLastQuery())
	ui.searchEntry.OnSubmitted = func(string) {
		ui.onSearch()
	}

	var searchObj, refreshObj fyne.CanvasObject
	ui.searchBtn, searchObj = ui.mobile.CreateMobileButton(ui.localization.GetText(KeySearch), ui.onSearch)
	ui.searchBtn.Importance = widget.HighImportance
	ui.refreshBtn, refreshObj = ui.mobile.CreateMobileButton(IconRefresh, ui.controller.Refresh)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, container.NewHBox(searchObj, refreshObj), ui.searchEntry)

	ui.loadingBar = widget.NewProgressBarInfinite()
	ui.loadingBar.Stop()
	ui.loadingBar.Hide()

	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Importance = widget.DangerImportance
	ui.errorLabel.Wrapping = fyne.TextWrapWord
	ui.errorLabel.Hide()

	// Notification panel under the search bar (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.loadingBar, ui.errorLabel, ui.notificationContainer)

	ui.photoList = widget.NewList(
		ui.items.Len,
		func() fyne.CanvasObject { return NewPhotoRow(ui.loader, ui.localization) },
		ui.updatePhotoItem,
	)
	ui.photoList.OnSelected = func(id widget.ListItemID) {
		ui.photoList.Unselect(id)
		ui.items.Activate(id)
	}

	sized := container.New(&widthWatcher{onWidth: ui.onListWidth}, ui.photoList)
	ui.pullToRefresh = NewPullToRefresh(sized, ui.listAtTop, ui.controller.Refresh)

	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyNoPhotos))
	ui.emptyLabel.Hide()

	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(0, ui.mobile.GetMobileSpacing()))

	content := container.NewBorder(
		container.NewVBox(topCombined, gap),
		nil,
		nil,
		nil,
		container.NewStack(ui.pullToRefresh, container.NewCenter(ui.emptyLabel)),
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *FeedUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.controller.Refresh)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *FeedUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *FeedUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.searchBtn.SetText(ui.localization.GetText(KeySearch))
	ui.emptyLabel.SetText(ui.localization.GetText(KeyNoPhotos))
	if ui.lastErr != nil {
		ui.errorLabel.SetText(ui.localization.ErrorText(ui.lastErr))
	}
}

// onSearch issues a fetch for the entry's text
func (ui *FeedUI) onSearch() {
	query := strings.TrimSpace(ui.searchEntry.Text)
	log.Printf("Processing search: %q", query)

	ui.settings.SetLastQuery(query)
	// Drops focus, which also hides the soft keyboard on mobile
	ui.window.Canvas().Unfocus()
	ui.controller.Fetch(query)
}

// ShowLoading implements feed.View
func (ui *FeedUI) ShowLoading() {
	ui.lastErr = nil
	ui.errorLabel.Hide()
	ui.emptyLabel.Hide()
	ui.loadingBar.Show()
	ui.loadingBar.Start()
	ui.refreshBtn.Disable()
	ui.pullToRefresh.SetRefreshing(true)
}

// ShowPhotos implements feed.View
func (ui *FeedUI) ShowPhotos(photos []model.Photo) {
	ui.items.SetPhotos(photos)
	ui.itemHeights = make(map[int]float32)
	ui.applyItemHeights()
	ui.photoList.UnselectAll()
	ui.photoList.Refresh()
	ui.photoList.ScrollToTop()

	if len(photos) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
}

// ShowError implements feed.View. The photos of the last successful
// fetch stay visible.
func (ui *FeedUI) ShowError(err error) {
	ui.lastErr = err
	ui.errorLabel.SetText(ui.localization.ErrorText(err))
	ui.errorLabel.Show()
}

// HideLoading implements feed.View
func (ui *FeedUI) HideLoading() {
	ui.loadingBar.Stop()
	ui.loadingBar.Hide()
	ui.refreshBtn.Enable()
	ui.pullToRefresh.SetRefreshing(false)
}

// rowWidth is the width rows are laid out for
func (ui *FeedUI) rowWidth() int {
	width := ui.listWidth
	if width <= 0 {
		width = RowFallbackWidth
	}
	return int(width)
}

// updatePhotoItem binds the row at id. Rows are dispatched by kind.
func (ui *FeedUI) updatePhotoItem(id widget.ListItemID, item fyne.CanvasObject) {
	row, ok := ui.items.Bind(id, ui.rowWidth())
	if !ok {
		return
	}

	switch row.Kind {
	case feed.RowKindPhoto:
		photoRow, ok := item.(*PhotoRow)
		if !ok {
			log.Printf("Unexpected list item %T for photo row %d", item, id)
			return
		}
		photoRow.Bind(row)
	default:
		log.Printf("Unknown row kind %d at %d", row.Kind, id)
	}
}

// applyItemHeights sizes every row for the current width
func (ui *FeedUI) applyItemHeights() {
	width := ui.rowWidth()
	padding := ui.settings.GetRowPadding()
	for i := 0; i < ui.items.Len(); i++ {
		row, ok := ui.items.Bind(i, width)
		if !ok {
			continue
		}
		height := RowHeight(row, padding)
		if ui.itemHeights[i] == height {
			continue
		}
		ui.itemHeights[i] = height
		ui.photoList.SetItemHeight(i, height)
	}
}

// onListWidth re-lays rows out when the list width changes
func (ui *FeedUI) onListWidth(width float32) {
	if width <= 0 || width == ui.listWidth {
		return
	}
	ui.listWidth = width
	ui.applyItemHeights()
	ui.photoList.Refresh()
}

func (ui *FeedUI) listAtTop() bool {
	return ui.photoList.GetScrollOffset() <= 0
}

// onPhotoSelected asks before saving the selected photo
func (ui *FeedUI) onPhotoSelected(photo model.Photo) {
	log.Printf("Photo selected: %s", photo.ID)
	dialog.ShowConfirm(
		ui.localization.GetText(KeyDownloadTitle),
		ui.localization.GetText(KeyDownloadConfirm),
		func(confirmed bool) {
			if confirmed {
				ui.startDownload(photo)
			}
		},
		ui.window,
	)
}

// startDownload saves the photo's full-resolution image. Missing storage
// access sends the user to the permission prompt first; a photo without
// any image URL is ignored.
func (ui *FeedUI) startDownload(photo model.Photo) {
	url := photo.URLs.Full
	if url == "" {
		url = photo.URLs.Regular
	}
	if url == "" {
		log.Printf("Photo %s has no image URL, nothing to download", photo.ID)
		return
	}

	if ui.permission != nil && !ui.permission.WriteGranted() {
		ui.promptPermission(func() { ui.startDownload(photo) }, nil)
		return
	}

	task, err := ui.downloadSvc.Start(url)
	if err != nil {
		log.Printf("Download not started for %s: %v", photo.ID, err)
		ui.showToastNotification(ui.localization.GetText(KeyAlreadyDownloading), "", nil)
		return
	}
	log.Printf("Download task %s started for photo %s", task.ID, photo.ID)

	ui.activeDownloads++
	ui.showNotification(ui.localization.GetText(KeyDownloading), true)
}

// onTaskUpdate handles task updates from the download service. It is
// called from the download goroutine.
func (ui *FeedUI) onTaskUpdate(task *model.DownloadTask) {
	log.Printf("Task update received: id=%s status=%s", task.ID, task.Status)
	if !task.Status.IsFinished() {
		return
	}

	snapshot := *task
	fyne.Do(func() {
		ui.onTaskFinished(&snapshot)
	})
}

// onTaskFinished updates notifications for a finished task on the UI goroutine
func (ui *FeedUI) onTaskFinished(task *model.DownloadTask) {
	if ui.activeDownloads > 0 {
		ui.activeDownloads--
	}
	if ui.activeDownloads == 0 {
		ui.hideNotification()
	}

	switch task.Status {
	case model.TaskStatusCompleted:
		message := task.FileName + " · " + humanize.Bytes(uint64(task.Bytes))
		ui.sendCompletionNotification(message)
		ui.showToastNotification(ui.localization.GetText(KeyDownloadCompleted), message, task)

		if ui.settings.GetAutoRevealOnComplete() && task.Path != "" {
			log.Printf("Auto-revealing completed task %s: %s", task.ID, task.Path)
			ui.onRevealFile(task.Path)
		}

	case model.TaskStatusSkipped:
		ui.showToastNotification(ui.localization.GetText(KeyDownloadSkipped), "", nil)

	case model.TaskStatusError:
		message := task.LastError
		if task.LastError == model.ErrPermissionDenied.Error() {
			message = ui.localization.ErrorText(model.ErrPermissionDenied)
		}
		ui.showToastNotification(ui.localization.GetText(KeyDownloadFailed), message, nil)
	}

	if err := ui.downloadSvc.RemoveTask(task.ID); err != nil {
		log.Printf("Error removing task %s: %v", task.ID, err)
	}
}

// promptPermission asks for storage access and runs next once it is
// granted. Denial offers another folder instead of failing silently;
// denied runs when the user gives up.
func (ui *FeedUI) promptPermission(next, denied func()) {
	t := ui.localization.GetText
	dialog.ShowCustomConfirm(
		t(KeyPermissionTitle),
		t(KeyPermissionAllow),
		t(KeyPermissionDeny),
		widget.NewLabel(t(KeyPermissionMessage)),
		func(allow bool) {
			if !allow {
				log.Printf("Storage permission denied")
				ui.chooseFolder(next, denied)
				return
			}
			ui.permission.Grant()
			ui.settings.SetStorageGranted(true)
			if !ui.permission.WriteGranted() {
				log.Printf("Directory %s is not writable", ui.permission.Dir())
				ui.chooseFolder(next, denied)
				return
			}
			next()
		},
		ui.window,
	)
}

// chooseFolder lets the user pick a writable pictures directory
func (ui *FeedUI) chooseFolder(next, denied func()) {
	t := ui.localization.GetText
	giveUp := func() {
		ui.showToastNotification(t(KeyPermissionDenied), "", nil)
		if denied != nil {
			denied()
		}
	}

	dialog.ShowConfirm(t(KeyPermissionDenied), t(KeyChooseFolder)+"?", func(choose bool) {
		if !choose {
			giveUp()
			return
		}
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				giveUp()
				return
			}
			dir := uri.Path()
			ui.settings.SetPicturesDirectory(dir)
			ui.settings.SetStorageGranted(true)
			ui.permission.SetDir(dir)
			ui.permission.Grant()
			ui.applyStorage()
			next()
		}, ui.window)
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *FeedUI) onShowSettings() {
	backend := ui.settings.GetStorageBackend()
	dir := ui.settings.GetPicturesDirectory()
	padding := ui.settings.GetRowPadding()
	language := ui.settings.GetLanguage()

	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if ui.settings.GetLanguage() != language {
			ui.onLanguageChange(ui.settings.GetLanguage())
		}
		if ui.settings.GetRowPadding() != padding {
			ui.applyItemHeights()
			ui.photoList.Refresh()
		}
		if ui.settings.GetStorageBackend() != backend || ui.settings.GetPicturesDirectory() != dir {
			ui.applyStorage()
		}
	})
}

// applyStorage switches downloads to the configured collection
func (ui *FeedUI) applyStorage() {
	dir := ui.settings.GetPicturesDirectory()
	if ui.permission != nil {
		ui.permission.SetDir(dir)
	}
	if ui.onStorageChange == nil {
		return
	}
	if err := ui.onStorageChange(ui.settings.GetStorageBackend(), dir); err != nil {
		log.Printf("Failed to switch storage to %s: %v", dir, err)
		ui.showToastNotification(ui.localization.GetText(KeyErrorStorage), err.Error(), nil)
	}
}

// onRevealFile reveals a saved photo in the system file manager
func (ui *FeedUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showToastNotification(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), nil)
	}
}

// onOpenFile opens a saved photo with the default viewer
func (ui *FeedUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showToastNotification(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), nil)
	}
}

// showNotification displays a message in the notification panel under the
// search bar. When spinning is true, a spinner is shown to indicate
// background activity.
func (ui *FeedUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
		ui.notificationSpinner.Start()
	} else {
		ui.notificationSpinner.Stop()
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel
func (ui *FeedUI) hideNotification() {
	ui.notificationSpinner.Stop()
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// sendCompletionNotification sends a system notification for a saved photo
func (ui *FeedUI) sendCompletionNotification(message string) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: message,
	})
}

// showToastNotification shows a transient in-app notification. task adds
// reveal and open actions when it has a local file.
func (ui *FeedUI) showToastNotification(title, message string, task *model.DownloadTask) {
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(container.NewBorder(nil, nil, titleLabel, closeBtn))
	if message != "" {
		messageLabel := widget.NewLabel(message)
		messageLabel.Truncation = fyne.TextTruncateEllipsis
		content.Add(messageLabel)
	}
	if task != nil && task.Path != "" {
		path := task.Path
		revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() { ui.onRevealFile(path) })
		revealBtn.Importance = widget.HighImportance
		openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(path) })
		content.Add(container.NewHBox(revealBtn, openBtn))
	}

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	if canvasSize.Width < ToastWidth+2*ToastMargin {
		toastSize.Width = canvasSize.Width - 2*ToastMargin
	}
	toastPopup.Resize(toastSize)
	toastPopup.ShowAtPosition(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))

	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(toastPopup.Hide)
	}()
}

// widthWatcher lays its object out at full size and reports width changes
type widthWatcher struct {
	width   float32
	onWidth func(float32)
}

func (w *widthWatcher) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(size)
		o.Move(fyne.NewPos(0, 0))
	}
	if size.Width != w.width {
		w.width = size.Width
		if w.onWidth != nil {
			w.onWidth(size.Width)
		}
	}
}

func (w *widthWatcher) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var size fyne.Size
	for _, o := range objects {
		size = size.Max(o.MinSize())
	}
	return size
}

var _ feed.View = (*FeedUI)(nil)
