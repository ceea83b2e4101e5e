package metadata

// Code identifies a primitive or generic type in a fingerprint.
// Values are part of the cross-implementation contract.
type Code uint8

const (
	TypeU8      Code = 0
	TypeU16     Code = 1
	TypeU32     Code = 2
	TypeU64     Code = 3
	TypeI8      Code = 4
	TypeI16     Code = 5
	TypeI32     Code = 6
	TypeI64     Code = 7
	TypeF32     Code = 8
	TypeF64     Code = 9
	TypeBool    Code = 10
	TypeString  Code = 11
	TypeOption  Code = 12
	TypeVec     Code = 13
	TypeHashMap Code = 14
)

var codeNames = [...]string{
	TypeU8:      "u8",
	TypeU16:     "u16",
	TypeU32:     "u32",
	TypeU64:     "u64",
	TypeI8:      "i8",
	TypeI16:     "i16",
	TypeI32:     "i32",
	TypeI64:     "i64",
	TypeF32:     "f32",
	TypeF64:     "f64",
	TypeBool:    "bool",
	TypeString:  "string",
	TypeOption:  "option",
	TypeVec:     "list",
	TypeHashMap: "map",
}

// String returns the type name for the code.
func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// IsGeneric reports whether the code is followed by type parameter fingerprints.
func (c Code) IsGeneric() bool {
	return c == TypeOption || c == TypeVec || c == TypeHashMap
}
