package str

// IndexOf is IndexOfFrom(needle, 0).
func (s *String) IndexOf(needle *String) int {
	return s.IndexOfFrom(needle, 0)
}

// IndexOfFrom returns the index of the first occurrence of needle in s at or after from,
// or -1. An empty needle matches at from, or at s.Len() when from is past the end.
func (s *String) IndexOfFrom(needle *String, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(s.chars) {
		if needle.IsEmpty() {
			return len(s.chars)
		}
		return -1
	}
	if needle.IsEmpty() {
		return from
	}

	first := needle.chars[0]
	last := len(s.chars) - len(needle.chars)
	for i := from; i <= last; i++ {
		if s.chars[i] != first {
			continue
		}
		j := 1
		for j < len(needle.chars) && needle.chars[j] == s.chars[i+j] {
			j++
		}
		if j == len(needle.chars) {
			return i
		}
	}
	return -1
}
