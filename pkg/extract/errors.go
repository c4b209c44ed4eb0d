package extract

import "errors"

var (
	ErrNoCallMarkers   = errors.New("extract: no call markers configured")
	ErrInvalidMarker   = errors.New("extract: invalid call marker")
	ErrMinifyCollision = errors.New("extract: minified key collision")
	ErrInvalidMinify   = errors.New("extract: invalid minification settings")
)
