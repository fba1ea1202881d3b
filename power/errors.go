package power

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every ConfigurationError.
var ErrConfiguration = errors.New("power: configuration error")

// ConfigurationError reports an ability request the owner cannot accept.
// The registry is left untouched.
type ConfigurationError struct {
	Owner  string
	Kind   Kind
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("power: %s cannot hold %s: %s", e.Owner, e.Kind, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
