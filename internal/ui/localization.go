package ui

import (
	"errors"

	"github.com/ytget/photo-feed/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeySearch             = "search"
	KeySearchPlaceholder  = "search_placeholder"
	KeyRefresh            = "refresh"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyPicturesDirectory  = "pictures_directory"
	KeyStorageBackend     = "storage_backend"
	KeyRowPadding         = "row_padding"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadTitle      = "download_title"
	KeyDownloadConfirm    = "download_confirm"
	KeyDownloading        = "downloading"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadSkipped    = "download_skipped"
	KeyDownloadFailed     = "download_failed"
	KeyAlreadyDownloading = "already_downloading"
	KeyReveal             = "reveal"
	KeyOpen               = "open"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyNoPhotos           = "no_photos"
	KeyPermissionTitle    = "permission_title"
	KeyPermissionMessage  = "permission_message"
	KeyPermissionAllow    = "permission_allow"
	KeyPermissionDeny     = "permission_deny"
	KeyPermissionDenied   = "permission_denied"
	KeyChooseFolder       = "choose_folder"
	KeyErrorNetwork       = "error_network"
	KeyErrorDecode        = "error_decode"
	KeyErrorStorage       = "error_storage"
	KeyErrorUnknown       = "error_unknown"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// ErrorText maps an error to a localized, user-facing message
func (l *Localization) ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrPermissionDenied):
		return l.GetText(KeyPermissionDenied)
	case model.IsNetworkError(err):
		return l.GetText(KeyErrorNetwork)
	case model.IsDecodeError(err):
		return l.GetText(KeyErrorDecode)
	case model.IsStorageError(err):
		return l.GetText(KeyErrorStorage)
	default:
		return l.GetText(KeyErrorUnknown)
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Photo Feed",
		KeySearch:             "Search",
		KeySearchPlaceholder:  "Search photos",
		KeyRefresh:            "Refresh",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyPicturesDirectory:  "Pictures Directory",
		KeyStorageBackend:     "Save Photos To",
		KeyRowPadding:         "Row Padding",
		KeyAutoReveal:         "Reveal saved photos",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadTitle:      "Download",
		KeyDownloadConfirm:    "Download this photo?",
		KeyDownloading:        "Downloading...",
		KeyDownloadCompleted:  "Photo saved",
		KeyDownloadSkipped:    "The photo could not be added to the gallery",
		KeyDownloadFailed:     "Download failed",
		KeyAlreadyDownloading: "This photo is already being saved",
		KeyReveal:             "Reveal",
		KeyOpen:               "Open",
		KeyErrorOpeningFile:   "Error opening file",
		KeyNoPhotos:           "No photos found",
		KeyPermissionTitle:    "Storage Access",
		KeyPermissionMessage:  "Photo Feed needs access to your pictures folder to save photos.",
		KeyPermissionAllow:    "Allow",
		KeyPermissionDeny:     "Not now",
		KeyPermissionDenied:   "Storage permission denied",
		KeyChooseFolder:       "Choose another folder",
		KeyErrorNetwork:       "Could not load photos. Check your connection.",
		KeyErrorDecode:        "Received an unreadable response",
		KeyErrorStorage:       "Could not save the photo",
		KeyErrorUnknown:       "Something went wrong",
	}

	l.texts["ko"] = map[string]string{
		KeyAppTitle:           "포토 피드",
		KeySearch:             "검색",
		KeySearchPlaceholder:  "사진 검색",
		KeyRefresh:            "새로고침",
		KeySettings:           "설정",
		KeyFile:               "파일",
		KeyLanguage:           "언어",
		KeyPicturesDirectory:  "사진 폴더",
		KeyStorageBackend:     "저장 위치",
		KeyRowPadding:         "행 여백",
		KeyAutoReveal:         "저장된 사진 표시",
		KeySave:               "저장",
		KeyCancel:             "취소",
		KeyBrowse:             "찾아보기",
		KeySettingsSaved:      "설정이 저장되었습니다!",
		KeyDownloadTitle:      "다운로드",
		KeyDownloadConfirm:    "이 사진을 다운로드할까요?",
		KeyDownloading:        "다운로드 중...",
		KeyDownloadCompleted:  "사진이 저장되었습니다",
		KeyDownloadSkipped:    "사진을 갤러리에 추가할 수 없습니다",
		KeyDownloadFailed:     "다운로드 실패",
		KeyAlreadyDownloading: "이미 저장 중인 사진입니다",
		KeyReveal:             "위치 보기",
		KeyOpen:               "열기",
		KeyErrorOpeningFile:   "파일을 여는 중 오류",
		KeyNoPhotos:           "사진이 없습니다",
		KeyPermissionTitle:    "저장소 접근",
		KeyPermissionMessage:  "사진을 저장하려면 사진 폴더 접근 권한이 필요합니다.",
		KeyPermissionAllow:    "허용",
		KeyPermissionDeny:     "나중에",
		KeyPermissionDenied:   "저장소 권한이 거부되었습니다",
		KeyChooseFolder:       "다른 폴더 선택",
		KeyErrorNetwork:       "사진을 불러올 수 없습니다. 연결을 확인하세요.",
		KeyErrorDecode:        "읽을 수 없는 응답을 받았습니다",
		KeyErrorStorage:       "사진을 저장할 수 없습니다",
		KeyErrorUnknown:       "문제가 발생했습니다",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Фотолента",
		KeySearch:             "Поиск",
		KeySearchPlaceholder:  "Искать фото",
		KeyRefresh:            "Обновить",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyPicturesDirectory:  "Папка изображений",
		KeyStorageBackend:     "Сохранять в",
		KeyRowPadding:         "Отступ строк",
		KeyAutoReveal:         "Показывать сохранённые фото",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadTitle:      "Скачать",
		KeyDownloadConfirm:    "Скачать это фото?",
		KeyDownloading:        "Загрузка...",
		KeyDownloadCompleted:  "Фото сохранено",
		KeyDownloadSkipped:    "Не удалось добавить фото в галерею",
		KeyDownloadFailed:     "Ошибка загрузки",
		KeyAlreadyDownloading: "Это фото уже сохраняется",
		KeyReveal:             "Показать",
		KeyOpen:               "Открыть",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyNoPhotos:           "Фото не найдены",
		KeyPermissionTitle:    "Доступ к хранилищу",
		KeyPermissionMessage:  "Для сохранения фото нужен доступ к папке изображений.",
		KeyPermissionAllow:    "Разрешить",
		KeyPermissionDeny:     "Не сейчас",
		KeyPermissionDenied:   "Нет доступа к хранилищу",
		KeyChooseFolder:       "Выбрать другую папку",
		KeyErrorNetwork:       "Не удалось загрузить фото. Проверьте подключение.",
		KeyErrorDecode:        "Получен нечитаемый ответ",
		KeyErrorStorage:       "Не удалось сохранить фото",
		KeyErrorUnknown:       "Что-то пошло не так",
	}
}
