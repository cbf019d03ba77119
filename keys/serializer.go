package keys

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Separator defines the delimiter used between key segments.
const Separator = "::"

// Serializer builds a cache key from a namespace and arbitrary values.
// Implementations must return the same key for equal inputs within a process.
type Serializer interface {
	SerializeKey(namespace string, args ...any) string
}

// defaultSerializer implements Serializer using reflection.
type defaultSerializer struct{}

// NewDefaultSerializer returns the reflection based serializer.
func NewDefaultSerializer() Serializer {
	return defaultSerializer{}
}

// SerializeKey joins the namespace and the encoded args with Separator.
// With no args the namespace is returned as is.
func (s defaultSerializer) SerializeKey(namespace string, args ...any) string {
	if len(args) == 0 {
		return namespace
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}

	return strings.Join(parts, Separator)
}

func (s defaultSerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Func:
		return fmt.Sprintf("func:%p", v)
	case reflect.Chan:
		return fmt.Sprintf("chan:%p", v)
	case reflect.Pointer:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Interface:
		if rv.IsNil() {
			return "interface:nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return "slice" + s.serializeElems(rv)
	case reflect.Array:
		return "array" + s.serializeElems(rv)
	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv)
	case reflect.Struct:
		return s.serializeStruct(rv)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", v)
	}

	return s.fallback(v)
}

func (s defaultSerializer) serializeElems(rv reflect.Value) string {
	n := rv.Len()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}
	return fmt.Sprintf("[%d]:{%s}", n, strings.Join(parts, ","))
}

// serializeMap sorts entries by their encoded key so iteration order never leaks into the key.
func (s defaultSerializer) serializeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := s.serializeValue(iter.Key().Interface())
		v := s.serializeValue(iter.Value().Interface())
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

// serializeStruct only looks at exported fields.
func (s defaultSerializer) serializeStruct(rv reflect.Value) string {
	rt := rv.Type()
	parts := make([]string, 0, rv.NumField())

	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanInterface() {
			continue
		}
		parts = append(parts, field.Name+":"+s.serializeValue(fv.Interface()))
	}

	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

// fallback encodes anything the reflection walk does not cover with msgpack and
// keeps only the xxhash of the payload.
func (s defaultSerializer) fallback(v any) string {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("fallback:%T", v)
	}
	return "msgpack:" + Hash(buf.Bytes())
}

// Hash returns the hex encoded xxhash of data.
func Hash(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// hashingSerializer shortens keys produced by another serializer.
type hashingSerializer struct {
	inner  Serializer
	maxLen int
}

// NewHashingSerializer wraps inner so that keys longer than maxLen are
// replaced with namespace::xx:<hash>. A nil inner uses the default serializer
// and a maxLen below 1 disables hashing.
func NewHashingSerializer(inner Serializer, maxLen int) Serializer {
	if inner == nil {
		inner = NewDefaultSerializer()
	}
	return hashingSerializer{inner: inner, maxLen: maxLen}
}

func (s hashingSerializer) SerializeKey(namespace string, args ...any) string {
	key := s.inner.SerializeKey(namespace, args...)
	if s.maxLen < 1 || len(key) <= s.maxLen {
		return key
	}
	return namespace + Separator + "xx:" + strconv.FormatUint(xxhash.Sum64String(key), 16)
}
