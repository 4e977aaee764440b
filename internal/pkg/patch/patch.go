package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback.
// Request DTOs use it to turn optional JSON fields into use-case inputs where zero means absent.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
