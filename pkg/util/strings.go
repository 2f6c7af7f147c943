package util

import "unicode/utf8"

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// TrimString cuts s to at most length bytes without splitting a UTF-8 sequence
func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	for length > 0 && !utf8.RuneStart(s[length]) {
		length--
	}

	return s[:length]
}
