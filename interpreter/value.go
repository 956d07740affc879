package interpreter

import "strconv"

// Value is a runtime value. The concrete types are Number, String, Bool and
// Undefined; all of them are comparable, so == is strict equality.
type Value interface {
	// String returns the text print writes for the value.
	String() string
	// Type names the value's type for error messages.
	Type() string
}

// Number is an integer value.
type Number int64

func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }
func (Number) Type() string       { return "number" }

// String is a text value.
type String string

func (s String) String() string { return string(s) }
func (String) Type() string       { return "string" }

// Bool is a boolean value. There are no boolean literals; booleans come from
// comparisons and '!'.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (Bool) Type() string     { return "boolean" }

// Undefined is the result of a call that finished without returning.
type Undefined struct{}

func (Undefined) String() string { return "undefined" }
func (Undefined) Type() string   { return "undefined" }

// truthy reports whether v counts as true in a condition.
// false, 0, "" and undefined are false; everything else is true.
func truthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return v != 0
	case String:
		return v != ""
	}
	return false
}
