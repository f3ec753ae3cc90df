package env

import (
	"os"
	"strconv"
)

// Get returns the value of the environment variable.
// Returns empty string if the variable is not set.
func Get(key string) string {
	return os.Getenv(key)
}

// GetOrDefault returns the value of the environment variable.
// If the variable is not set, it returns the default value.
func GetOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntOrDefault returns the integer value of the environment variable.
// If the variable is not set or not a valid integer, it returns the
// default value.
func GetIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
