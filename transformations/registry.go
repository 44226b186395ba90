package transformations

import (
	"fmt"
	"sort"
)

const (
	TypeBase64Int = "base64_int"
	TypeIntBase64 = "int_base64"
)

// BuildTransformation creates a Transformation from its type name
func BuildTransformation(name string) (Transformation, error) {
	switch name {
	case TypeBase64Int:
		return &Base64Int{}, nil
	case TypeIntBase64:
		return &IntBase64{}, nil
	default:
		return nil, fmt.Errorf("unknown transformation type: %s (known: %v)", name, Types())
	}
}

// Types returns the registered transformation type names in sorted order
func Types() []string {
	names := []string{TypeBase64Int, TypeIntBase64}
	sort.Strings(names)
	return names
}
