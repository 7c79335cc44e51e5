package format

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/numeric"
)

type formatCase struct {
	name   string
	format string
	args   []any
	want   string
}

func runFormatCases(t *testing.T, f *Formatter, tests []formatCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.format, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Literals(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"plain", "hello", nil, "hello"},
		{"empty", "", nil, ""},
		{"percent", "100%%", nil, "100%"},
		{"percent between", "%%%s%%", []any{"x"}, "%x%"},
		{"unicode literal", "größe: %s", []any{"5"}, "größe: 5"},
		{"extra args ignored", "%s", []any{"a", "b"}, "a"},
	})
}

func TestFormat_Strings(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"identity", "%s", []any{"hello"}, "hello"},
		{"right justified", "%5s|", []any{"ab"}, "   ab|"},
		{"left justified", "%-5s|", []any{"ab"}, "ab   |"},
		{"precision truncates", "%.2s", []any{"hello"}, "he"},
		{"precision counts runes", "%.2s", []any{"äöü"}, "äö"},
		{"width counts runes", "%4s", []any{"äö"}, "  äö"},
		{"zero pad", "%05s", []any{"ab"}, "000ab"},
		{"bytes", "%s", []any{[]byte("raw")}, "raw"},
		{"integer as string", "%s", []any{42}, "42"},
		{"nil", "[%s]", []any{nil}, "[]"},
		{"stringer", "%s", []any{big.NewInt(7)}, "7"},
	})
}

func TestFormat_Chars(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"ascii", "%c", []any{65}, "A"},
		{"astral", "%c", []any{0x1F600}, "😀"},
		{"padded", "%3c", []any{'x'}, "  x"},
		{"from string", "%c", []any{"97"}, "a"},
		{"invalid code point", "%c", []any{0xD800}, "�"},
	})
}

func TestFormat_Integers(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"decimal", "%d", []any{42}, "42"},
		{"i is d", "%i", []any{-7}, "-7"},
		{"plus", "%+d", []any{42}, "+42"},
		{"space", "% d", []any{42}, " 42"},
		{"plus on negative", "%+d", []any{-42}, "-42"},
		{"zero pad after sign", "%05d", []any{-42}, "-0042"},
		{"left beats zero", "%-05d|", []any{42}, "42   |"},
		{"precision", "%.5d", []any{42}, "00042"},
		{"precision disables zero pad", "%08.5d", []any{42}, "   00042"},
		{"hex", "%x", []any{255}, "ff"},
		{"upper hex", "%X", []any{255}, "FF"},
		{"octal", "%o", []any{8}, "10"},
		{"binary", "%b", []any{5}, "101"},
		{"unsigned", "%u", []any{42}, "42"},
		{"string argument", "%d", []any{"0x1f"}, "31"},
		{"padded string argument", "%d", []any{" 12 "}, "12"},
		{"uint64", "%lu", []any{uint64(1 << 40)}, "1099511627776"},
	})
}

func TestFormat_AlternatePrefixes(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"hex", "%#x", []any{255}, "0xff"},
		{"upper hex", "%#X", []any{255}, "0XFF"},
		{"octal", "%#o", []any{8}, "0o10"},
		{"binary", "%#b", []any{5}, "0b101"},
		{"decimal", "%#d", []any{5}, "0d5"},
		{"zero pad after prefix", "%#06x", []any{255}, "0x00ff"},
		{"wide negative hex", "%#llx", []any{-255}, "-0xff"},
	})
}

func TestFormat_LegacyOctal(t *testing.T) {
	runFormatCases(t, NewFormatter(WithLegacyOctal(true)), []formatCase{
		{"prefix", "%#o", []any{8}, "010"},
		{"zero has no double prefix", "%#o", []any{0}, "0"},
		{"precision supplies leading zero", "%#.3o", []any{8}, "010"},
		{"hex unaffected", "%#x", []any{255}, "0xff"},
	})
}

func TestFormat_LengthModifiers(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"byte wraps", "%yd", []any{255}, "-1"},
		{"byte unsigned", "%yu", []any{256}, "0"},
		{"short wraps", "%hd", []any{70000}, "4464"},
		{"default is 32 bits", "%d", []any{int64(4294967296)}, "0"},
		{"default unsigned of -1", "%u", []any{-1}, "4294967295"},
		{"default hex of -1", "%x", []any{-1}, "ffffffff"},
		{"wide keeps 64 bits", "%ld", []any{int64(4294967296)}, "4294967296"},
		{"wide wraps at 64", "%lu", []any{-1}, "18446744073709551615"},
		{"bignum string", "%lld", []any{"123456789012345678901234567890"}, "123456789012345678901234567890"},
		{"bignum value", "%llx", []any{new(big.Int).Lsh(big.NewInt(1), 100)}, "1" + strings.Repeat("0", 25)},
		{"bignum negative", "%lld", []any{"-99999999999999999999"}, "-99999999999999999999"},
	})
}

func TestFormat_Floats(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"default precision", "%f", []any{3.14159}, "3.141590"},
		{"precision", "%.2f", []any{3.14159}, "3.14"},
		{"width and zero", "%08.3f", []any{-3.5}, "-003.500"},
		{"left", "%-8.1f|", []any{2.0}, "2.0     |"},
		{"exponent", "%e", []any{1234.5}, "1.234500e+03"},
		{"upper exponent", "%.2E", []any{1234.5}, "1.23E+03"},
		{"g", "%g", []any{0.0001}, "0.0001"},
		{"integer argument", "%.1f", []any{3}, "3.0"},
		{"string argument", "%.1f", []any{"2.5"}, "2.5"},
		{"plus", "%+.1f", []any{1.0}, "+1.0"},
	})
}

func TestFormat_IntegerOutOfRange(t *testing.T) {
	const huge = "99999999999999999999"
	for _, format := range []string{"%d", "%ld", "%hd", "%x", "%c"} {
		t.Run(format, func(t *testing.T) {
			got, err := Format(format, huge)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, tperrors.IsConversion(err))
			assert.ErrorIs(t, err, numeric.ErrOutOfRange)
		})
	}

	got, err := Format("%lld", huge)
	require.NoError(t, err)
	assert.Equal(t, huge, got)

	got, err = Format("%lu", "18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", got)

	_, err = Format("%c", "4294967296")
	assert.True(t, tperrors.IsConversion(err))
}

func TestFormat_FloatCulture(t *testing.T) {
	f := NewFormatter(WithCulture(language.German))
	got, err := f.Format("%.1f", "1,5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", got, "output always uses a period")

	_, err = NewFormatter().Format("%.1f", "1,5")
	assert.True(t, tperrors.IsConversion(err))
}

func TestFormat_FloatFormatter(t *testing.T) {
	var specs []string
	f := NewFormatter(WithFloatFormatter(func(spec string, v float64) (string, error) {
		specs = append(specs, spec)
		return fmt.Sprintf("<%g>", v), nil
	}))
	got, err := f.Format("%+.2f|%e", 1.5, 2.0)
	require.NoError(t, err)
	assert.Equal(t, "<1.5>|<2>", got)
	assert.Equal(t, []string{"%+.2f", "%e"}, specs)

	_, err = NewFormatter(WithFloatFormatter(nil)).Format("%f", 1.0)
	assert.True(t, tperrors.IsConfiguration(err))
}

func TestFormat_StarArguments(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"width", "%*d", []any{5, 3}, "    3"},
		{"negative width left justifies", "%*d", []any{-5, 3}, "3    "},
		{"precision", "%.*s", []any{2, "hello"}, "he"},
		{"negative precision is zero", "%.*s|", []any{-1, "hello"}, "|"},
		{"both", "%*.*f", []any{7, 2, 3.14159}, "   3.14"},
		{"string width", "%*s", []any{"3", "x"}, "  x"},
	})
}

func TestFormat_Positional(t *testing.T) {
	runFormatCases(t, NewFormatter(), []formatCase{
		{"reordered", "%2$s %1$s", []any{"world", "hello"}, "hello world"},
		{"repeated", "%1$s-%1$s", []any{"x"}, "x-x"},
		{"with flags", "%2$05d|%1$-3s|", []any{"a", 7}, "00007|a  |"},
		{"star after index", "%1$*d", []any{4, 9}, "   9"},
		{"unused arguments", "%3$s", []any{"a", "b", "c"}, "c"},
	})
}

func TestFormat_Errors(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		args      []any
		kind      tperrors.Kind
		sentinel  error
		directive string
		offset    int
		argIndex  int
	}{
		{"mixed positional first", "%1$s %d", []any{"a", "b"}, tperrors.KindConsistency, tperrors.ErrMixedSpecifiers, "%d", 5, tperrors.NoArg},
		{"mixed sequential first", "%s %1$s", []any{"a"}, tperrors.KindConsistency, tperrors.ErrMixedSpecifiers, "%1", 3, tperrors.NoArg},
		{"positional out of range", "%3$s", []any{"a"}, tperrors.KindRange, nil, "%3$", 0, tperrors.NoArg},
		{"positional zero", "%0$s", []any{"a"}, tperrors.KindRange, nil, "%0$", 0, tperrors.NoArg},
		{"not enough arguments", "%d %d", []any{1}, tperrors.KindRange, nil, "%d", 3, 1},
		{"star without argument", "%*d", nil, tperrors.KindRange, nil, "%*", 0, 0},
		{"dangling percent", "abc%", nil, tperrors.KindParse, nil, "%", 3, tperrors.NoArg},
		{"ends after width", "%5", []any{1}, tperrors.KindParse, nil, "%5", 0, tperrors.NoArg},
		{"bad specifier", "x%q", []any{1}, tperrors.KindParse, nil, "%q", 1, tperrors.NoArg},
		{"missing argument before bad specifier", "%z", nil, tperrors.KindRange, nil, "%z", 0, 0},
		{"not an integer", "%s %d", []any{"a", "x"}, tperrors.KindConversion, nil, "%d", 3, 1},
		{"float for integer", "%d", []any{1.5}, tperrors.KindConversion, nil, "%d", 0, 0},
		{"not a float", "%f", []any{"pi"}, tperrors.KindConversion, nil, "%f", 0, 0},
		{"unsigned bignum", "%llu", []any{5}, tperrors.KindConversion, nil, "%llu", 0, 0},
		{"bad star width", "%*d", []any{"wide", 1}, tperrors.KindConversion, nil, "%*", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.format, tt.args...)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tt.kind, tperrors.KindOf(err))
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel))
			}

			var te *tperrors.Error
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.directive, te.Directive)
			assert.Equal(t, tt.offset, te.Offset)
			assert.Equal(t, tt.argIndex, te.ArgIndex)
		})
	}
}

func TestFormat_Capacity(t *testing.T) {
	f := NewFormatter(WithMaxSize(5))

	got, err := f.Format("%s", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	for _, tc := range []struct {
		name   string
		format string
		args   []any
	}{
		{"argument too long", "%s", []any{"hello!"}},
		{"literal plus argument", "ab%s", []any{"cdef"}},
		{"trailing literal", "%s!", []any{"hello"}},
		{"width", "%10d", []any{1}},
		{"star width", "%*d", []any{6, 1}},
		{"precision zeros", "%.10d", []any{1}},
		{"huge precision", "%.400000000d", []any{1}},
		{"huge float precision", "%.400000000f", []any{1.5}},
		{"huge width", "%99999999999d", []any{1}},
		{"percent escape", "hello%%", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.Format(tc.format, tc.args...)
			require.Error(t, err)
			assert.Empty(t, got, "no partial output")
			assert.True(t, tperrors.IsCapacity(err))
			assert.True(t, errors.Is(err, tperrors.ErrMaxSize))
		})
	}
}

func TestFormat_CapacityUnlimited(t *testing.T) {
	f := NewFormatter(WithMaxSize(-1))
	got, err := f.Format("%1000d", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1000)
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "with % sign", "%d literal", "日本語"} {
		got, err := Format("%s", s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestFormat_PackageLevelExample(t *testing.T) {
	got, err := Format("%-5s|%05.1f|%#x", "ab", 3.14159, 255)
	require.NoError(t, err)
	assert.Equal(t, "ab   |003.1|0xff", got)
}

func TestFormatter_Concurrent(t *testing.T) {
	f := NewFormatter()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := f.Format("%03d:%s", n, "x")
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%03d:x", n), got)
		}(i)
	}
	wg.Wait()
}
