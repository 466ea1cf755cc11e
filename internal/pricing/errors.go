package pricing

import "fmt"

// ConfigurationError reports a malformed or inconsistent
// DeliveryConfiguration. Field identifies the offending configuration
// field so the synchronization side can locate it.
type ConfigurationError struct {
	ConfigID string
	Field    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s: %s", e.ConfigID, e.Field, e.Reason)
}

// InputError reports invalid OrderFacts, rejected before any tier or
// discount logic runs.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("order facts: %s: %s", e.Field, e.Reason)
}

func configErr(configID, field, reason string) *ConfigurationError {
	return &ConfigurationError{ConfigID: configID, Field: field, Reason: reason}
}

func inputErr(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}
