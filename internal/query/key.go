package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key identifies a cache entry. It is an ordered tuple of parts; two keys
// are equal when every part has the same canonical JSON encoding, so a
// filter struct and an equal copy of it map to the same entry.
type Key struct {
	parts   []any
	encoded []string
}

// NewKey builds a key from parts. Parts must be JSON-encodable; a part that
// is not falls back to its %#v form.
func NewKey(parts ...any) Key {
	k := Key{parts: parts, encoded: make([]string, len(parts))}
	for i, p := range parts {
		k.encoded[i] = encodePart(p)
	}
	return k
}

func encodePart(p any) string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%#v", p)
	}
	return string(b)
}

// String returns the canonical form, usable as a map key.
func (k Key) String() string {
	return "[" + strings.Join(k.encoded, ",") + "]"
}

// Parts returns the parts the key was built from.
func (k Key) Parts() []any {
	return k.parts
}

// Len returns the number of parts.
func (k Key) Len() int {
	return len(k.encoded)
}

// Namespace returns the first part when it is a string.
func (k Key) Namespace() string {
	if len(k.parts) == 0 {
		return ""
	}
	ns, _ := k.parts[0].(string)
	return ns
}

// Equal reports whether k and o name the same entry.
func (k Key) Equal(o Key) bool {
	return k.String() == o.String()
}

// HasPrefix reports whether the leading parts of k equal all parts of prefix.
// Parts are compared whole: ("users") is a prefix of ("users","list") but
// ("use") is not.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.encoded) > len(k.encoded) {
		return false
	}
	for i, p := range prefix.encoded {
		if k.encoded[i] != p {
			return false
		}
	}
	return true
}

// KeyFactory builds the conventional keys of one resource namespace.
type KeyFactory struct {
	ns string
}

// Keys returns the key factory for namespace.
func Keys(namespace string) KeyFactory {
	return KeyFactory{ns: namespace}
}

// Namespace returns the factory's namespace.
func (f KeyFactory) Namespace() string { return f.ns }

// All is the prefix of every key in the namespace.
func (f KeyFactory) All() Key { return NewKey(f.ns) }

// List is the key of a filtered list.
func (f KeyFactory) List(filters any) Key { return NewKey(f.ns, "list", filters) }

// Detail is the key of a single record.
func (f KeyFactory) Detail(id string) Key { return NewKey(f.ns, "detail", id) }

// Stats is the key of the namespace summary.
func (f KeyFactory) Stats() Key { return NewKey(f.ns, "stats") }

// Op is the key of any other operation.
func (f KeyFactory) Op(name string, params ...any) Key {
	return NewKey(append([]any{f.ns, name}, params...)...)
}
