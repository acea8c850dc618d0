package config

import "fmt"

// ConfigInitError reports a config that loads but cannot be used yet.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}

func NewInitError(format string, args ...any) *ConfigInitError {
	return &ConfigInitError{msg: fmt.Sprintf(format, args...)}
}
