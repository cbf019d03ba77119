package selector

import "github.com/goliatone/go-selector-cache/keys"

// SerializedResolver builds a string key from several values of the call
// context. parts returns the values that identify a call; they are encoded
// with serializer under namespace. A nil serializer uses the default one.
//
//	resolver := selector.SerializedResolver(nil, "visible-todos", func(ctx Ctx) []any {
//		return []any{ctx.ListID, ctx.Filter}
//	})
func SerializedResolver[C any](serializer keys.Serializer, namespace string, parts func(ctx C) []any) Resolver[C, string] {
	if parts == nil {
		return nil
	}
	if serializer == nil {
		serializer = keys.NewDefaultSerializer()
	}
	return func(ctx C) string {
		return serializer.SerializeKey(namespace, parts(ctx)...)
	}
}
