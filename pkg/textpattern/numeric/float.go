package numeric

import (
	"fmt"
	"strings"
)

// FloatSpec is a parsed floating point mini-spec such as "%+08.3f".
type FloatSpec struct {
	Flags     string
	Width     int
	Precision int // -1 when absent
	Verb      byte
}

// ParseFloatSpec parses a mini-spec of the form %[flags][width][.precision]verb
// where verb is one of e E f g G.
func ParseFloatSpec(spec string) (FloatSpec, error) {
	fs := FloatSpec{Precision: -1}
	if len(spec) < 2 || spec[0] != '%' {
		return fs, fmt.Errorf("float spec %q: missing %%", spec)
	}

	i := 1
	for i < len(spec) && strings.IndexByte("-+ #0", spec[i]) >= 0 {
		i++
	}
	fs.Flags = spec[1:i]

	for i < len(spec) && isDigit(spec[i]) {
		fs.Width = fs.Width*10 + int(spec[i]-'0')
		i++
	}
	if i < len(spec) && spec[i] == '.' {
		i++
		fs.Precision = 0
		for i < len(spec) && isDigit(spec[i]) {
			fs.Precision = fs.Precision*10 + int(spec[i]-'0')
			i++
		}
	}

	if i != len(spec)-1 || strings.IndexByte("eEfgG", spec[i]) < 0 {
		return fs, fmt.Errorf("float spec %q: bad conversion", spec)
	}
	fs.Verb = spec[i]
	return fs, nil
}

// String renders the spec back into its mini-spec form.
func (fs FloatSpec) String() string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(fs.Flags)
	if fs.Width > 0 {
		fmt.Fprintf(&b, "%d", fs.Width)
	}
	if fs.Precision >= 0 {
		fmt.Fprintf(&b, ".%d", fs.Precision)
	}
	b.WriteByte(fs.Verb)
	return b.String()
}

// FormatFloat renders v according to a C-style mini-spec.
//
// Unlike Go's fmt, %g and %G without a precision use six significant digits,
// and %e/%f default to six decimals, so output matches the C library.
func FormatFloat(spec string, v float64) (string, error) {
	fs, err := ParseFloatSpec(spec)
	if err != nil {
		return "", err
	}
	if fs.Precision < 0 {
		fs.Precision = 6
	}
	return fmt.Sprintf(fs.String(), v), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
