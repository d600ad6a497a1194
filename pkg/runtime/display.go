package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Display renders a value in its external form, as print shows it.
func Display(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

// FormatNumber prints integral numbers without a decimal point and other
// numbers in their shortest decimal form. Exponent notation is never used so
// the output lexes back as a number literal.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == math.Trunc(n):
		if n == 0 {
			return "0"
		}
		return strconv.FormatFloat(n, 'f', 0, 64)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func writeValue(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case NumberValue:
		sb.WriteString(FormatNumber(val.Val))
	case StringValue:
		sb.WriteByte('"')
		sb.WriteString(val.Val)
		sb.WriteByte('"')
	case BoolValue:
		if val.Val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case *ListValue:
		sb.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, el)
		}
		sb.WriteByte(']')
	case *DictValue:
		sb.WriteByte('{')
		first := true
		for key, el := range val.All() {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			writeValue(sb, key.Value())
			sb.WriteString(": ")
			writeValue(sb, el)
		}
		sb.WriteByte('}')
	case nil:
		sb.WriteString("<no value>")
	default:
		sb.WriteString("<unknown>")
	}
}
