package dtype

// Element is the set of Go types backing the supported kinds.
type Element interface {
	int32 | int64 | float32 | float64 | string
}

// KindOf returns the Kind backing the Go type T.
func KindOf[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	case string:
		return String
	default:
		return KindInvalid
	}
}
