package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yllada/gpg-manager/common"
	"gopkg.in/yaml.v3"
)

// Kind tags the type held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindString
	KindStringList
	KindSize
	KindInt
)

// String returns the kind name used in storage and CLI output.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindStringList:
		return "list"
	case KindSize:
		return "size"
	case KindInt:
		return "int"
	default:
		return "invalid"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) Kind {
	switch name {
	case "bool":
		return KindBool
	case "string":
		return KindString
	case "list":
		return KindStringList
	case "size":
		return KindSize
	case "int":
		return KindInt
	default:
		return KindInvalid
	}
}

// Size is a two-dimensional size such as a toolbar icon size.
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// String formats the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses a WxH string.
func ParseSize(text string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(text)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: size %q is not WxH", common.ErrInvalidValue, text)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Size{}, fmt.Errorf("%w: size width %q: %v", common.ErrInvalidValue, w, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Size{}, fmt.Errorf("%w: size height %q: %v", common.ErrInvalidValue, h, err)
	}
	return Size{Width: width, Height: height}, nil
}

// Value is a tagged union of the types a setting can hold.
// The As* accessors return the zero value of the requested type when the
// tag does not match.
type Value struct {
	kind Kind
	b    bool
	s    string
	list []string
	size Size
	i    int
}

// BoolValue returns a bool Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// StringListValue returns a string-list Value holding a copy of list.
func StringListValue(list []string) Value {
	cp := make([]string, len(list))
	copy(cp, list)
	return Value{kind: KindStringList, list: cp}
}

// SizeValue returns a size Value.
func SizeValue(width, height int) Value {
	return Value{kind: KindSize, size: Size{Width: width, Height: height}}
}

// IntValue returns an int Value.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the bool held by v, or false.
func (v Value) AsBool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// AsString returns the string held by v, or "".
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// AsStringList returns a copy of the list held by v, or nil.
func (v Value) AsStringList() []string {
	if v.kind != KindStringList {
		return nil
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// AsSize returns the size held by v, or the zero Size.
func (v Value) AsSize() Size {
	if v.kind != KindSize {
		return Size{}
	}
	return v.size
}

// AsInt returns the int held by v, or 0.
func (v Value) AsInt() int {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindStringList:
		return slices.Equal(v.list, o.list)
	case KindSize:
		return v.size == o.size
	case KindInt:
		return v.i == o.i
	default:
		return true
	}
}

// String renders the value for display. Lists are comma separated.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindStringList:
		return strings.Join(v.list, ",")
	case KindSize:
		return v.size.String()
	case KindInt:
		return strconv.Itoa(v.i)
	default:
		return ""
	}
}

// ParseValue parses text typed by a user into a Value of the given kind.
// Lists are comma separated, sizes are WxH.
func ParseValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a bool", common.ErrInvalidValue, text)
		}
		return BoolValue(b), nil
	case KindString:
		return StringValue(text), nil
	case KindStringList:
		if strings.TrimSpace(text) == "" {
			return StringListValue(nil), nil
		}
		parts := strings.Split(text, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return StringListValue(parts), nil
	case KindSize:
		size, err := ParseSize(text)
		if err != nil {
			return Value{}, err
		}
		return SizeValue(size.Width, size.Height), nil
	case KindInt:
		i, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer", common.ErrInvalidValue, text)
		}
		return IntValue(i), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported kind %s", common.ErrInvalidValue, kind)
	}
}

// MarshalYAML encodes the value using the native YAML type of its kind.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		return v.s, nil
	case KindStringList:
		if v.list == nil {
			return []string{}, nil
		}
		return v.list, nil
	case KindSize:
		return v.size, nil
	case KindInt:
		return v.i, nil
	default:
		return nil, fmt.Errorf("%w: cannot encode invalid value", common.ErrInvalidValue)
	}
}

// UnmarshalYAML infers the kind from the YAML node: booleans, integers and
// strings are scalars, lists are sequences and sizes are width/height maps.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = BoolValue(b)
		case "!!int":
			var i int
			if err := node.Decode(&i); err != nil {
				return err
			}
			*v = IntValue(i)
		case "!!null":
			*v = StringValue("")
		default:
			*v = StringValue(node.Value)
		}
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = StringListValue(list)
	case yaml.MappingNode:
		var size Size
		if err := node.Decode(&size); err != nil {
			return err
		}
		*v = SizeValue(size.Width, size.Height)
	default:
		return fmt.Errorf("%w: unsupported YAML node at line %d", common.ErrInvalidValue, node.Line)
	}
	return nil
}
