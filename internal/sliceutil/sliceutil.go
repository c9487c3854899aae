package sliceutil

import (
	"reflect"
)

// Remove returns a copy of s without the first occurrence of member.
func Remove[T comparable](s []T, member T) []T {
	out := make([]T, 0, len(s))
	removed := false
	for _, v := range s {
		if !removed && v == member {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// GroupBy splits s into consecutive chunks of size elements, the last chunk may be shorter.
// s is left untouched. A size below 1 yields a single chunk holding all of s.
func GroupBy[T any](s []T, size int) [][]T {
	if len(s) == 0 {
		return [][]T{}
	}
	if size < 1 || len(s) <= size {
		return [][]T{append([]T(nil), s...)}
	}

	groups := make([][]T, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := start + size
		if end > len(s) {
			end = len(s)
		}
		groups = append(groups, append([]T(nil), s[start:end]...))
	}
	return groups
}

// Flatten walks arbitrarily nested slices and arrays and returns their leaves in order.
// Anything that is not a slice or an array is a leaf, including maps.
func Flatten(v any) []any {
	out := []any{}
	flattenInto(&out, reflect.ValueOf(v))
	return out
}

func flattenInto(out *[]any, v reflect.Value) {
	if !v.IsValid() {
		*out = append(*out, nil)
		return
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			*out = append(*out, nil)
			return
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a value, not a list
			*out = append(*out, v.Interface())
			return
		}
		for i := 0; i < v.Len(); i++ {
			flattenInto(out, v.Index(i))
		}
	default:
		*out = append(*out, v.Interface())
	}
}

// Transpose wraps every element into its own one element row, turning a row into a column.
func Transpose[T any](s []T) [][]T {
	out := make([][]T, len(s))
	for i, v := range s {
		out[i] = []T{v}
	}
	return out
}

// ToSet returns the elements of s as the keys of a set.
func ToSet[T comparable](s []T) map[T]struct{} {
	out := make(map[T]struct{}, len(s))
	for _, v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Collect maps every element of s with fn, dropping the elements fn rejects.
func Collect[T, U any](s []T, fn func(T) (U, bool)) []U {
	out := make([]U, 0, len(s))
	for _, v := range s {
		mapped, ok := fn(v)
		if ok {
			out = append(out, mapped)
		}
	}
	return out
}
