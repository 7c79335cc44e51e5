package format

import (
	"fmt"
	"math/big"

	"golang.org/x/text/language"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/numeric"
)

// argString returns the string form of an argument.
func argString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// argInteger converts an argument to an integer of arbitrary size.
// Floating point values are rejected even when integral, as are strings that
// do not parse as integers.
func argInteger(v any) (*big.Int, error) {
	switch val := v.(type) {
	case int:
		return big.NewInt(int64(val)), nil
	case int8:
		return big.NewInt(int64(val)), nil
	case int16:
		return big.NewInt(int64(val)), nil
	case int32:
		return big.NewInt(int64(val)), nil
	case int64:
		return big.NewInt(val), nil
	case uint:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint64:
		return new(big.Int).SetUint64(val), nil
	case *big.Int:
		if val == nil {
			break
		}
		return new(big.Int).Set(val), nil
	}
	return numeric.ParseInteger(argString(v), 0)
}

// argFloat converts an argument to a float64.
func argFloat(v any, culture language.Tag) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case *big.Int:
		if val != nil {
			f, _ := new(big.Float).SetInt(val).Float64()
			return f, nil
		}
	}
	return numeric.ParseFloat(argString(v), culture)
}

// conversionError builds the error for an argument of the wrong type.
func conversionError(want string, v any, idx int, err error) *tperrors.Error {
	return tperrors.Conversion(op, fmt.Sprintf("expected %s but got %q", want, argString(v)), err).Arg(idx)
}
