package utils

// DedupeBy keeps the first item seen for each key and preserves input order.
func DedupeBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// DedupeStrings removes repeated strings, keeping first occurrences
func DedupeStrings(items []string) []string {
	return DedupeBy(items, func(s string) string { return s })
}
