package cli

import (
	"fmt"
	"strings"

	"github.com/pluqqy/promptcat/pkg/share"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidatePage validates a page number flag
func ValidatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", page)
	}
	return nil
}

// ValidateCategory checks a category against the known list, ignoring
// case, and returns the canonical spelling.
func ValidateCategory(category string, known []string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", fmt.Errorf("category cannot be empty")
	}
	for _, k := range known {
		if strings.EqualFold(k, category) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s (must be one of: %s)", category, strings.Join(known, ", "))
}

// ValidateShareChannel validates the --via flag
func ValidateShareChannel(via string) (share.Channel, error) {
	return share.ParseChannel(via)
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
