package str

const radix = 10

// FromInt returns the decimal representation of i.
func FromInt(i int) *String {
	// unsigned magnitude so that the most negative int needs no special case
	mag := uint64(i)
	if i < 0 {
		mag = -mag
	}

	size := countDigits(mag)
	if i < 0 {
		size++
	}

	chars := make([]rune, size)
	first := 0
	if i < 0 {
		chars[0] = '-'
		first = 1
	}
	for pos := size - 1; pos >= first; pos-- {
		chars[pos] = '0' + rune(mag%radix)
		mag /= radix
	}
	return wrap(chars)
}

// countDigits is at least 1, for zero.
func countDigits(n uint64) int {
	count := 0
	for {
		n /= radix
		count++
		if n == 0 {
			return count
		}
	}
}
