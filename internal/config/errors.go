package config

import "errors"

var ErrUnknownStorage = errors.New("unknown storage driver")
