package models

import "strings"

// ParseTags splits a comma separated tag list, trimming each tag and
// dropping empty entries.
func ParseTags(input string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[NormalizeTagName(tag)] {
			continue
		}
		seen[NormalizeTagName(tag)] = true
		tags = append(tags, tag)
	}
	return tags
}

// NormalizeTagName lowercases a tag and replaces spaces with hyphens so
// tags compare equal regardless of how they were typed
func NormalizeTagName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(normalized), "-")
}
