package format

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/randalmurphal/textpattern/pkg/textpattern/buffer"
	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/numeric"
)

const op = "format"

// DefaultMaxSize is the default output limit in characters.
const DefaultMaxSize = math.MaxInt32

// FloatFormatter renders a float64 for a C-style mini-spec such as "%+08.3f".
type FloatFormatter func(spec string, v float64) (string, error)

// Formatter formats printf-style format strings.
//
// Create with NewFormatter() and configure with Option functions.
// Formatter is safe for concurrent use after construction.
type Formatter struct {
	maxSize     int
	legacyOctal bool
	culture     language.Tag
	floats      FloatFormatter
	logger      *slog.Logger
}

// NewFormatter creates a new Formatter with the given options.
//
// Default configuration:
//   - MaxSize: DefaultMaxSize
//   - LegacyOctal: false (%#o prefixes 0o)
//   - Culture: language.Und
//   - FloatFormatter: numeric.FormatFloat
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		maxSize: DefaultMaxSize,
		culture: language.Und,
		floats:  numeric.FormatFloat,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// argMode records which addressing mode a format string has locked into.
type argMode int

const (
	modeUnset argMode = iota
	modeSequential
	modePositional
)

// state is the per-call scanning state.
type state struct {
	f      *Formatter
	format string
	args   []any
	out    *buffer.Bounded
	mode   argMode
	cursor int
}

// Format formats args according to format.
//
// Literal text is copied as is; %% yields %. Each other directive has the form
//
//	%[n$][flags][width][.precision][length]conversion
//
// Either every directive uses n$ or none does. On any error no partial output
// is returned.
func (f *Formatter) Format(format string, args ...any) (string, error) {
	st := &state{
		f:      f,
		format: format,
		args:   args,
		out:    buffer.New(op, f.maxSize),
	}

	lit := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}
		if err := st.out.WriteString(format[lit:i]); err != nil {
			return "", st.fail(err, i, "")
		}

		if i+1 < len(format) && format[i+1] == '%' {
			if err := st.out.WriteRune('%'); err != nil {
				return "", st.fail(err, i, "%%")
			}
			i += 2
			lit = i
			continue
		}

		next, err := st.directive(i)
		if err != nil {
			return "", err
		}
		i = next
		lit = i
	}
	if err := st.out.WriteString(format[lit:]); err != nil {
		return "", st.fail(err, lit, "")
	}
	return st.out.String(), nil
}

// fail attaches offset and directive context to err.
func (st *state) fail(err error, offset int, directive string) error {
	if e, ok := err.(*tperrors.Error); ok {
		if e.Offset < 0 {
			e.Offset = offset
		}
		if e.Directive == "" {
			e.Directive = directive
		}
	}
	st.f.logger.Debug("format failed",
		slog.Int("offset", offset),
		slog.String("directive", directive),
		slog.String("error", err.Error()),
	)
	return err
}

// directive parses and renders the directive starting at the % at start.
// It returns the index just past the conversion character.
func (st *state) directive(start int) (int, error) {
	s := st.format
	i := start + 1
	d := Directive{Width: -1, Precision: -1}
	text := func() string {
		end := i + 1
		if end > len(s) {
			end = len(s)
		}
		return s[start:end]
	}
	perr := func(err error) (int, error) {
		return 0, st.fail(err, start, text())
	}

	if i >= len(s) {
		return perr(tperrors.Parse(op, "format string ended in middle of field specifier"))
	}

	// XPG3 positional prefix.
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j > i && j < len(s) && s[j] == '$' {
		if st.mode == modeSequential {
			return perr(tperrors.FromSentinel(op, tperrors.ErrMixedSpecifiers))
		}
		st.mode = modePositional
		n, ok := atoi(s[i:j])
		if !ok || n < 1 || n > len(st.args) {
			i = j
			return perr(tperrors.Range(op, `"%n$" argument index out of range`))
		}
		d.Positional = true
		st.cursor = n - 1
		i = j + 1
	} else {
		if st.mode == modePositional {
			return perr(tperrors.FromSentinel(op, tperrors.ErrMixedSpecifiers))
		}
		st.mode = modeSequential
		if st.cursor >= len(st.args) {
			return perr(tperrors.Range(op, "not enough arguments for all format specifiers").Arg(st.cursor))
		}
	}

	// Flags.
	for i < len(s) {
		flag, ok := flagFor(s[i])
		if !ok {
			break
		}
		d.Flags |= flag
		i++
	}

	// Width.
	if i < len(s) && s[i] == '*' {
		w, err := st.takeInt("width")
		if err != nil {
			return perr(err)
		}
		if w < 0 {
			d.Flags |= FlagLeft
			w = -w
		}
		d.Width = w
		i++
	} else if i < len(s) && isDigit(s[i]) {
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		w, ok := atoi(s[i:j])
		i = j - 1
		if !ok || !st.out.Fits(w) {
			return perr(tperrors.FromSentinel(op, tperrors.ErrMaxSize))
		}
		d.Width = w
		i = j
	}
	if d.Width > 0 && !st.out.Fits(d.Width) {
		return perr(tperrors.FromSentinel(op, tperrors.ErrMaxSize))
	}

	// Precision.
	if i < len(s) && s[i] == '.' {
		i++
		d.Precision = 0
		if i < len(s) && s[i] == '*' {
			p, err := st.takeInt("precision")
			if err != nil {
				return perr(err)
			}
			if p > 0 {
				d.Precision = p
			}
			i++
		} else {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j > i {
				p, ok := atoi(s[i:j])
				if !ok {
					i = j - 1
					return perr(tperrors.Range(op, "precision out of range"))
				}
				d.Precision = p
			}
			i = j
		}
	}

	// Length modifier.
	if i < len(s) {
		switch s[i] {
		case 'y':
			d.Length = LengthByte
			i++
		case 'h':
			d.Length = LengthShort
			i++
		case 'l':
			d.Length = LengthWide
			i++
			if i < len(s) && s[i] == 'l' {
				d.Length = LengthBig
				i++
			}
		}
	}

	if i >= len(s) {
		i = len(s) - 1
		return perr(tperrors.Parse(op, "format string ended in middle of field specifier"))
	}
	conv, size := utf8.DecodeRuneInString(s[i:])
	d.Conversion = conv
	i += size - 1
	d.Text = text()
	next := i + 1

	if !strings.ContainsRune("scudioxXbeEfgG", conv) {
		return perr(tperrors.Parse(op, fmt.Sprintf("bad field specifier %q", string(conv))))
	}

	d.ArgIndex = st.cursor
	arg, err := st.take()
	if err != nil {
		return perr(err)
	}
	if err := st.render(&d, arg); err != nil {
		if e, ok := err.(*tperrors.Error); ok && e.ArgIndex == tperrors.NoArg && !tperrors.IsCapacity(err) {
			e.ArgIndex = d.ArgIndex
		}
		return perr(err)
	}
	return next, nil
}

// take returns the argument at the cursor and advances it.
func (st *state) take() (any, error) {
	if st.cursor >= len(st.args) {
		if st.mode == modePositional {
			return nil, tperrors.Range(op, `"%n$" argument index out of range`).Arg(st.cursor)
		}
		return nil, tperrors.Range(op, "not enough arguments for all format specifiers").Arg(st.cursor)
	}
	arg := st.args[st.cursor]
	st.cursor++
	return arg, nil
}

// takeInt consumes an argument for a * width or precision.
func (st *state) takeInt(what string) (int, error) {
	idx := st.cursor
	arg, err := st.take()
	if err != nil {
		return 0, err
	}
	v, err := argInteger(arg)
	if err != nil {
		return 0, conversionError("integer", arg, idx, err)
	}
	if !v.IsInt64() || v.Int64() > math.MaxInt32 || v.Int64() < -math.MaxInt32 {
		return 0, tperrors.Range(op, what+" argument out of range").Arg(idx)
	}
	return int(v.Int64()), nil
}

// render converts arg for d and appends the padded result.
func (st *state) render(d *Directive, arg any) error {
	switch d.Conversion {
	case 's':
		str := argString(arg)
		if d.Precision >= 0 && utf8.RuneCountInString(str) > d.Precision {
			str = string([]rune(str)[:d.Precision])
		}
		return st.emit(d, "", str, d.Has(FlagZero))

	case 'c':
		v, err := argInteger(arg)
		if err != nil {
			return conversionError("integer", arg, d.ArgIndex, err)
		}
		if !numeric.Fits(v, 32) {
			return conversionError("integer", arg, d.ArgIndex, numeric.ErrOutOfRange)
		}
		r := rune(numeric.Truncate(v, 32, true).Int64())
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		return st.emit(d, "", string(r), d.Has(FlagZero))

	case 'e', 'E', 'f', 'g', 'G':
		// g drops trailing zeros, so only e and f are sure to print precision digits.
		if conv := d.Conversion; conv != 'g' && conv != 'G' && d.Precision > 0 && !st.out.Fits(d.Precision) {
			return tperrors.FromSentinel(op, tperrors.ErrMaxSize)
		}
		v, err := argFloat(arg, st.f.culture)
		if err != nil {
			return conversionError("floating-point number", arg, d.ArgIndex, err)
		}
		if st.f.floats == nil {
			return tperrors.Configuration(op, "floating-point formatting not implemented")
		}
		str, err := st.f.floats(d.floatSpec(), v)
		if err != nil {
			return tperrors.Wrap(tperrors.KindParse, op, "cannot format floating-point value", err)
		}
		return st.emit(d, "", str, false)

	default:
		return st.renderInteger(d, arg)
	}
}

// renderInteger handles d i u o x X b.
func (st *state) renderInteger(d *Directive, arg any) error {
	v, err := argInteger(arg)
	if err != nil {
		return conversionError("integer", arg, d.ArgIndex, err)
	}

	conv := d.Conversion
	signed := conv == 'd' || conv == 'i'
	if conv == 'u' && d.Length == LengthBig {
		return tperrors.Conversion(op, "unsigned bignum format is invalid", nil)
	}
	if d.Length != LengthBig && !numeric.Fits(v, 64) {
		return conversionError("integer", arg, d.ArgIndex, numeric.ErrOutOfRange)
	}
	if bits := d.Length.bits(); bits > 0 {
		v = numeric.Truncate(v, bits, signed)
	}

	radix := 10
	prefix := ""
	switch conv {
	case 'd', 'i':
		prefix = "0d"
	case 'o':
		radix = 8
		prefix = "0o"
		if st.f.legacyOctal {
			prefix = "0"
		}
	case 'x', 'X':
		radix = 16
		prefix = "0x"
	case 'b':
		radix = 2
		prefix = "0b"
	case 'u':
		prefix = ""
	}

	digits := new(big.Int).Abs(v).Text(radix)
	if d.Precision >= 0 && len(digits) < d.Precision {
		if !st.out.Fits(d.Precision) {
			return tperrors.FromSentinel(op, tperrors.ErrMaxSize)
		}
		digits = strings.Repeat("0", d.Precision-len(digits)) + digits
	}

	var lead strings.Builder
	switch {
	case v.Sign() < 0:
		lead.WriteByte('-')
	case signed && d.Has(FlagPlus):
		lead.WriteByte('+')
	case signed && d.Has(FlagSpace):
		lead.WriteByte(' ')
	}
	if d.Has(FlagAlternate) && !(st.f.legacyOctal && conv == 'o' && digits[0] == '0') {
		lead.WriteString(prefix)
	}

	head := lead.String()
	if conv == 'X' {
		head = strings.ToUpper(head)
		digits = strings.ToUpper(digits)
	}
	return st.emit(d, head, digits, d.Has(FlagZero) && d.Precision < 0)
}

// emit appends head+body padded to the directive's width. Zero padding goes
// between head (sign and prefix) and body; left justification pads with
// spaces on the right.
func (st *state) emit(d *Directive, head, body string, zero bool) error {
	pad := d.Width - utf8.RuneCountInString(head) - utf8.RuneCountInString(body)
	out := st.out

	switch {
	case pad <= 0:
		if err := out.WriteString(head); err != nil {
			return err
		}
		return out.WriteString(body)
	case d.Has(FlagLeft):
		if err := out.WriteString(head); err != nil {
			return err
		}
		if err := out.WriteString(body); err != nil {
			return err
		}
		return out.Pad(' ', pad)
	case zero:
		if err := out.WriteString(head); err != nil {
			return err
		}
		if err := out.Pad('0', pad); err != nil {
			return err
		}
		return out.WriteString(body)
	default:
		if err := out.Pad(' ', pad); err != nil {
			return err
		}
		if err := out.WriteString(head); err != nil {
			return err
		}
		return out.WriteString(body)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// atoi parses a run of decimal digits, failing on overflow past MaxInt32.
func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
		if n > math.MaxInt32 {
			return 0, false
		}
	}
	return n, true
}

// defaultFormatter uses the default configuration.
var defaultFormatter = NewFormatter()

// Format formats args according to format using the default Formatter.
//
// Example:
//
//	s, err := format.Format("%-5s|%05.1f|%#x", "ab", 3.14159, 255)
//	// s: "ab   |003.1|0xff"
func Format(format string, args ...any) (string, error) {
	return defaultFormatter.Format(format, args...)
}
