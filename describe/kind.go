package describe

// Kind is the scheduler-facing type of an input or output.
type Kind string

// Input kinds.
const (
	KindString     Kind = "string"
	KindBoolean    Kind = "boolean"
	KindInteger    Kind = "integer"
	KindNumber     Kind = "number"
	KindFile       Kind = "file"
	KindStringEnum Kind = "string-enumeration"
	KindFreeEnum   Kind = "free-enum"
)

// Output kinds. KindString is shared with inputs.
const (
	// KindNewFile marks an output that is written to a file whose path is
	// reported in place of the value.
	KindNewFile Kind = "new-file"
)

// Format hints for string inputs.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
)

// TargetFilepath is the target annotation rendered for file inputs and
// new-file outputs.
const TargetFilepath = "filepath"

// IsEnum reports whether the kind requires a declared set of allowed values.
func (k Kind) IsEnum() bool {
	return k == KindStringEnum || k == KindFreeEnum
}

// IsFile reports whether values of this kind travel as file paths.
func (k Kind) IsFile() bool {
	return k == KindFile || k == KindNewFile
}

func (k Kind) String() string {
	return string(k)
}
