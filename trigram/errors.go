package trigram

// Kind classifies why an Index failed to build or deserialize.
type Kind int

const (
	// OutOfMemory signals a build-time allocation failure.
	OutOfMemory Kind = iota
	// CorruptIndex signals a deserialized index violates an invariant
	// (e.g. a truncated stream or a bad magic tag).
	CorruptIndex
	// UnsupportedFeature signals the build configuration requests
	// something this implementation does not provide.
	UnsupportedFeature
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "out-of-memory"
	case CorruptIndex:
		return "corrupt-index"
	case UnsupportedFeature:
		return "unsupported-feature"
	default:
		return "unknown"
	}
}

// BuildError reports a fatal failure building or deserializing an Index.
type BuildError struct {
	Kind  Kind
	Cause error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return "trigram: " + e.Kind.String() + ": " + e.Cause.Error()
	}
	return "trigram: " + e.Kind.String()
}

func (e *BuildError) Unwrap() error { return e.Cause }
