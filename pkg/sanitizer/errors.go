package sanitizer

import "errors"

var ErrUnknownSanitizer = errors.New("unknown sanitizer")
