package i18n

import "errors"

var (
	ErrNilAdapter      = errors.New("i18n: adapter is nil")
	ErrEmptyLanguage   = errors.New("i18n: empty language code")
	ErrNilTranslations = errors.New("i18n: nil translations map")

	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrInvalidYAMLStructure = errors.New("invalid YAML translation structure")

	ErrLoadingFileCancelled = errors.New("loading translation file cancelled")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrFailedToParseFile    = errors.New("failed to parse translation file")
	ErrEmptyFile            = errors.New("translation file is empty")
	ErrUnsupportedFile      = errors.New("unsupported translation file extension")

	ErrLoadingTranslationsCancelled = errors.New("loading translations canceled before starting")
	ErrFailedToReadFS               = errors.New("failed to read translation filesystem")
	ErrNoTranslationFiles           = errors.New("no translation files found")
)
