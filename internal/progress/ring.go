package progress

// appendBounded appends v and keeps only the newest capacity entries,
// oldest first.
func appendBounded[T any](buf []T, v T, capacity int) []T {
	buf = append(buf, v)
	if len(buf) > capacity {
		buf = append([]T(nil), buf[len(buf)-capacity:]...)
	}
	return buf
}

// trimBounded drops the oldest entries until at most capacity remain.
func trimBounded[T any](buf []T, capacity int) []T {
	if len(buf) <= capacity {
		return buf
	}
	return append([]T(nil), buf[len(buf)-capacity:]...)
}
