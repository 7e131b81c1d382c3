package str

import "math"

const (
	typeSuffix     = 'f'
	exponentMarker = 'e'

	// accumulateLimit is the largest value that still takes another digit without
	// overflowing int64.
	accumulateLimit = (math.MaxInt64 - 9) / radix

	// Anything past this already scales every finite mantissa to 0 or Inf.
	maxExponent = 9999
)

var decimalPoint = New(".")

// digitRun is one scanned part of a number: integer, fraction or exponent.
type digitRun struct {
	value      int64
	scale      int  // integer digits dropped once value was full
	digits     int  // fraction digits accumulated into value
	next       int  // index after the last consumed character
	atExponent bool // scan stopped on an exponent marker
}

// floatScanner carries the state of a single ParseFloat call.
type floatScanner struct {
	src      *String
	sawDigit bool
}

// ParseFloat parses s as a decimal floating point literal: an optional sign, digits with an
// optional '.', an optional exponent introduced by 'e' or 'E' with its own optional sign, and
// an optional trailing 'f' or 'F'.
//
// Digits are accumulated as integers; floating point arithmetic is used only to combine the
// parts and to apply the exponent.
func (s *String) ParseFloat() (float64, error) {
	chars := s.chars
	if len(chars) == 0 {
		return 0, numberFormatError("")
	}
	p := &floatScanner{src: s}

	pos := 0
	negative := false
	switch chars[0] {
	case '+':
		pos++
	case '-':
		negative = true
		pos++
	}

	for pos < len(chars) && chars[pos] == '0' {
		p.sawDigit = true
		pos++
	}

	var intPart, fracPart, last digitRun
	var err error
	dot := s.IndexOf(decimalPoint)
	switch {
	case dot < 0:
		intPart, err = p.scanDigits(pos, len(chars), false, false)
		last = intPart
	case dot == pos:
		fracPart, err = p.scanDigits(dot+1, len(chars), true, false)
		last = fracPart
	default:
		intPart, err = p.scanDigits(pos, dot, false, false)
		if err == nil && intPart.atExponent {
			// "1e5.3": the exponent cannot carry a fraction
			return 0, p.fail()
		}
		if err == nil {
			fracPart, err = p.scanDigits(dot+1, len(chars), true, false)
		}
		last = fracPart
	}
	if err != nil {
		return 0, err
	}

	mantissa := float64(intPart.value)
	if intPart.scale > 0 {
		mantissa *= math.Pow10(intPart.scale)
	}
	if fracPart.digits > 0 {
		mantissa += float64(fracPart.value) / math.Pow10(fracPart.digits)
	}
	if negative {
		mantissa = -mantissa
	}
	if !last.atExponent {
		return mantissa, nil
	}

	pos = last.next
	expNegative := false
	if pos < len(chars) {
		switch chars[pos] {
		case '+':
			pos++
		case '-':
			expNegative = true
			pos++
		}
	}
	p.sawDigit = false
	expPart, err := p.scanDigits(pos, len(chars), false, true)
	if err != nil {
		return 0, err
	}
	exp := expPart.value
	if expPart.scale > 0 || exp > maxExponent {
		exp = maxExponent
	}
	if expNegative {
		exp = -exp
	}
	return mantissa * math.Pow10(int(exp)), nil
}

// scanDigits accumulates the digits in chars[start:end]. It stops without error on a type
// suffix that is the final character of the input, or on an exponent marker unless
// inExponent is set. Any other non-digit fails, as does a scan that ends with no digit seen
// so far in the current part of the parse.
func (p *floatScanner) scanDigits(start, end int, fraction, inExponent bool) (digitRun, error) {
	chars := p.src.chars
	run := digitRun{next: start}

scan:
	for run.next < end {
		c := chars[run.next]
		run.next++
		switch {
		case '0' <= c && c <= '9':
			p.sawDigit = true
			if run.value > accumulateLimit {
				if !fraction {
					run.scale++
				}
				continue
			}
			run.value = run.value*radix + int64(c-'0')
			if fraction {
				run.digits++
			}
		case toLower(c) == typeSuffix && run.next == len(chars):
			break scan
		case toLower(c) == exponentMarker && !inExponent:
			run.atExponent = true
			break scan
		default:
			return run, p.fail()
		}
	}

	if !p.sawDigit {
		return run, p.fail()
	}
	return run, nil
}

func (p *floatScanner) fail() error {
	return numberFormatError(p.src.String())
}

func toLower(c rune) rune {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
