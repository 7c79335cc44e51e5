// Package numeric parses and formats the numbers consumed by format directives
// and Integer-mode matching.
//
// Integers may carry a radix prefix (0x, 0o, 0b, 0d) and are parsed into
// arbitrary precision values; callers truncate to the width they need.
// Malformed input and out-of-range input are reported with distinct errors:
//
//	_, err := numeric.ParseInt("99999999999999999999", 64)
//	errors.Is(err, numeric.ErrOutOfRange) // true
//	_, err = numeric.ParseInteger("12abc", 0)
//	errors.Is(err, numeric.ErrMalformed)  // true
package numeric

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Sentinel errors for number parsing.
var (
	// ErrMalformed indicates the text is not a number of the requested kind.
	ErrMalformed = errors.New("malformed number")

	// ErrOutOfRange indicates the number does not fit the requested type.
	ErrOutOfRange = errors.New("number out of range")
)

// NumberError records a failed conversion.
type NumberError struct {
	Func string
	Text string
	Err  error
}

// Error implements the error interface.
func (e *NumberError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Func, e.Text, e.Err)
}

// Unwrap returns ErrMalformed or ErrOutOfRange.
func (e *NumberError) Unwrap() error {
	return e.Err
}

// ParseInteger parses text as an integer of arbitrary size.
//
// radix may be 2, 8, 10 or 16, or 0 to detect it from a prefix. Without a
// prefix the radix is 10, so "007" is seven. A prefix that agrees with an
// explicit radix is accepted. Leading and trailing white space is ignored.
func ParseInteger(text string, radix int) (*big.Int, error) {
	fail := func(err error) (*big.Int, error) {
		return nil, &NumberError{Func: "ParseInteger", Text: text, Err: err}
	}

	s := strings.TrimFunc(text, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base, rest := splitPrefix(s)
	if radix == 16 && (base == 2 || base == 10) {
		// 0b and 0d are hex digits, not prefixes.
		base, rest = 0, s
	}
	switch {
	case radix == 0 && base == 0:
		base = 10
	case radix == 0:
	case base == 0:
		base = radix
	case base != radix:
		return fail(ErrMalformed)
	}
	if base != 2 && base != 8 && base != 10 && base != 16 {
		return fail(ErrMalformed)
	}
	if rest == "" {
		return fail(ErrMalformed)
	}
	for _, r := range rest {
		if digitValue(r) >= base {
			return fail(ErrMalformed)
		}
	}

	v, ok := new(big.Int).SetString(rest, base)
	if !ok {
		return fail(ErrMalformed)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// ParseInt parses text as a signed integer that must fit in bits (8..64).
func ParseInt(text string, bits int) (int64, error) {
	v, err := ParseInteger(text, 0)
	if err != nil {
		return 0, err
	}
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)), big.NewInt(1))
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return 0, &NumberError{Func: "ParseInt", Text: text, Err: ErrOutOfRange}
	}
	return v.Int64(), nil
}

// Fits reports whether v can be stored in bits, read either as a signed or
// as an unsigned integer.
func Fits(v *big.Int, bits int) bool {
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
}

// Truncate reduces v to its low bits using two's complement.
// The result is sign-extended when signed is true.
func Truncate(v *big.Int, bits int, signed bool) *big.Int {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask := new(big.Int).Sub(modulus, big.NewInt(1))
	r := new(big.Int).And(v, mask)
	if signed && r.Bit(bits-1) == 1 {
		r.Sub(r, modulus)
	}
	return r
}

// ParseFloat parses text as a float64.
//
// Cultures whose decimal separator is a comma accept "1,5" as well as "1.5".
func ParseFloat(text string, culture language.Tag) (float64, error) {
	s := strings.TrimFunc(text, unicode.IsSpace)
	if commaDecimal(culture) && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" || strings.Contains(s, "_") {
		return 0, &NumberError{Func: "ParseFloat", Text: text, Err: ErrMalformed}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &NumberError{Func: "ParseFloat", Text: text, Err: ErrOutOfRange}
		}
		return 0, &NumberError{Func: "ParseFloat", Text: text, Err: ErrMalformed}
	}
	return f, nil
}

func splitPrefix(s string) (int, string) {
	if len(s) < 2 || s[0] != '0' {
		return 0, s
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:]
	case 'o', 'O':
		return 8, s[2:]
	case 'b', 'B':
		return 2, s[2:]
	case 'd', 'D':
		return 10, s[2:]
	}
	return 0, s
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 99
}

// commaDecimalBases lists base languages that write the decimal separator as a comma.
var commaDecimalBases = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "nl": true, "pt": true,
	"ru": true, "pl": true, "cs": true, "sv": true, "da": true, "fi": true,
	"nb": true, "tr": true, "uk": true, "id": true,
}

func commaDecimal(culture language.Tag) bool {
	if culture == language.Und {
		return false
	}
	base, _ := culture.Base()
	return commaDecimalBases[base.String()]
}
