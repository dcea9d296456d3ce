package store

// ErrKind classifies a controller-level failure so the API boundary can pick
// the right transport status without inspecting error strings.
type ErrKind int

const (
	// ErrKindNone marks a result with no error annotation.
	ErrKindNone ErrKind = iota

	// ErrKindNoReturn marks a by-identity lookup that matched nothing.
	ErrKindNoReturn

	// ErrKindBackend marks a failed remote call.
	ErrKindBackend

	// ErrKindValidation marks a row that could not be coerced into its
	// expected shape.
	ErrKindValidation

	// ErrKindUnauthenticated marks a missing or unusable principal.
	ErrKindUnauthenticated

	// ErrKindUnsupported marks an operation that is intentionally not
	// implemented.
	ErrKindUnsupported
)

// String implements fmt.Stringer for log output.
func (k ErrKind) String() string {
	switch k {
	case ErrKindNone:
		return "none"
	case ErrKindNoReturn:
		return "no_return"
	case ErrKindBackend:
		return "backend"
	case ErrKindValidation:
		return "validation"
	case ErrKindUnauthenticated:
		return "unauthenticated"
	case ErrKindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Result is the controller-to-boundary outcome. It deliberately signals
// failure by value rather than by error: absence of data is a
// Success=false/Count=0 result, not an exception. The three cases are
// populated success, empty success=false, and hard failure annotated with an
// ErrKind.
type Result[T any] struct {
	Success bool
	Data    T
	Count   int
	Err     ErrKind
}

// Ok builds a populated success result.
func Ok[T any](data T, count int) Result[T] {
	return Result[T]{Success: true, Data: data, Count: count}
}

// Empty builds the soft-fail result for "the backend returned nothing".
func Empty[T any]() Result[T] {
	return Result[T]{Success: false}
}

// Fail builds a hard-failure result annotated with the given kind.
func Fail[T any](kind ErrKind) Result[T] {
	return Result[T]{Success: false, Err: kind}
}
