package cacheinfra

import (
	"reflect"
	"strconv"
	"strings"
)

// comparableKey encodes k so that two keys get the same string only when
// they are == in Go. Pointers, channels and unsafe pointers encode their
// address, unexported struct fields are included and interface values carry
// their dynamic type. NaN keys share one string even though NaN != NaN.
func comparableKey[K comparable](k K) string {
	var b strings.Builder
	v := reflect.ValueOf(&k).Elem()
	b.WriteString(typeName(v.Type()))
	b.WriteByte(':')
	writeComparable(&b, v)
	return b.String()
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func writeComparable(b *strings.Builder, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		writeFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		b.WriteByte('(')
		writeFloat(b, real(c))
		b.WriteByte(',')
		writeFloat(b, imag(c))
		b.WriteByte(')')
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		b.WriteString("0x")
		b.WriteString(strconv.FormatUint(uint64(v.Pointer()), 16))
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		elem := v.Elem()
		b.WriteByte('(')
		b.WriteString(typeName(elem.Type()))
		b.WriteByte(':')
		writeComparable(b, elem)
		b.WriteByte(')')
	case reflect.Array:
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeComparable(b, v.Index(i))
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeComparable(b, v.Field(i))
		}
		b.WriteByte('}')
	default:
		// not reachable for comparable keys
		b.WriteString(v.Type().String())
	}
}

// writeFloat folds -0 into 0 since both are == as keys.
func writeFloat(b *strings.Builder, f float64) {
	if f == 0 {
		f = 0
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}
