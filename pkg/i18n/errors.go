package i18n

import "errors"

var (
	ErrEmptyLocale         = errors.New("i18n: locale cannot be empty")
	ErrEmptyKey            = errors.New("i18n: key segment cannot be empty")
	ErrDuplicateKey        = errors.New("i18n: duplicate key in document")
	ErrNestingConflict     = errors.New("i18n: key defined at conflicting nesting depths")
	ErrUnsupportedLeafType = errors.New("i18n: unsupported leaf type")
	ErrMissingArg          = errors.New("i18n: missing interpolation argument")
	ErrUnterminated        = errors.New("i18n: unterminated placeholder")
	ErrInvalidMarkers      = errors.New("i18n: placeholder markers cannot be empty")
	ErrInvalidFile         = errors.New("i18n: invalid translation file")
	ErrInvalidConfig       = errors.New("i18n: invalid configuration")
	ErrUnknownFormat       = errors.New("i18n: unknown export format")
)
