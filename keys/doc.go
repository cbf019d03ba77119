// Package keys builds stable cache keys from arbitrary Go values.
//
// A Serializer turns a namespace plus a list of values into a string. The
// selector package uses it to build resolvers whose key is a composite of
// several fields of the call context:
//
//	serializer := keys.NewDefaultSerializer()
//	key := serializer.SerializeKey("todo", listID, filter)
//
// # Encoding
//
// The default serializer walks values with reflection:
//
//   - Basic types: %v formatting
//   - Pointers and interfaces: the pointed-to value
//   - Slices and arrays: recursive, with their length
//   - Maps: entries sorted by encoded key
//   - Structs: exported fields as Name:value pairs
//   - Funcs and channels: their pointer, stable only within one process
//   - Anything else: msgpack encoding hashed with xxhash
//
// Keys can grow large when they embed collections. NewHashingSerializer wraps
// any serializer and replaces keys above a length limit with an xxhash digest.
package keys
