package scoring

import "fmt"

// DataError reports food data that cannot be scaled, such as a selected food
// whose serving size is zero or missing.
type DataError struct {
	Food    string
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: food %q: %s", e.Food, e.Message)
}

// ConfigError reports reference configuration the calculator cannot work with.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
