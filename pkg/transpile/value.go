package transpile

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// StringEncodingError reports a string that cannot be represented as a
// single OpenSCAD string literal without escape sequences, which this
// transpiler does not support.
type StringEncodingError struct {
	Value string
}

func (e *StringEncodingError) Error() string {
	return fmt.Sprintf("string %q would form multiple OpenSCAD strings", e.Value)
}

// formatValue renders a scalar, string or (nested) vector as a single
// OpenSCAD fragment.
func formatValue(value any) (string, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return formatFloat(v), nil
	case string:
		return quote(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := formatValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), nil
	}
	return "", fmt.Errorf("cannot transpile value %v of type %T", value, value)
}

// formatFloat renders a float, cutting off redundant decimals on
// mathematically integral values so that validation-layer conversions do
// not leave spurious trailing zeros in the output.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quote wraps s in double quotes for OpenSCAD. Escape sequences are not
// supported: a string containing a double quote would split into multiple
// OpenSCAD strings under naive requoting and is rejected.
func quote(s string) (string, error) {
	if strings.ContainsRune(s, '"') {
		return "", &StringEncodingError{Value: s}
	}
	return `"` + s + `"`, nil
}
