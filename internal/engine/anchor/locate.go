package anchor

// LocateFirst returns the smallest index whose line contains key.
func LocateFirst(lines []string, key Key) (int, error) {
	if err := key.check(); err != nil {
		return -1, err
	}
	for i, line := range lines {
		if key.Match(line) {
			return i, nil
		}
	}
	return -1, &NotFoundError{Token: key.String()}
}

// LocateLast returns the largest index whose line contains key.
func LocateLast(lines []string, key Key) (int, error) {
	if err := key.check(); err != nil {
		return -1, err
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if key.Match(lines[i]) {
			return i, nil
		}
	}
	return -1, &NotFoundError{Token: key.String()}
}

// All returns every index whose line contains key, in ascending order.
// An invalid key matches nothing.
func All(lines []string, key Key) []int {
	if key.check() != nil {
		return nil
	}
	var idx []int
	for i, line := range lines {
		if key.Match(line) {
			idx = append(idx, i)
		}
	}
	return idx
}
