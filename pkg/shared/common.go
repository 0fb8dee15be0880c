package shared

// IsInList checks if a value is present in a list of strings.
func IsInList(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
