package domain

import "strings"

// CoalesceStr returns the first non-blank string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// CoalesceList returns the first non-nil list from lists.
func CoalesceList(lists ...[]string) []string {
	for _, l := range lists {
		if l != nil {
			return l
		}
	}
	return nil
}

// IntWithDefault returns v when positive, otherwise fallback.
func IntWithDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
