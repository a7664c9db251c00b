package config

import "errors"

// ErrConfig indicates an invalid mapping file or option.
var ErrConfig = errors.New("configuration error")
