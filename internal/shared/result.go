package shared

// ErrorInfo is the error half of a [Result].
type ErrorInfo struct {
	Message string `json:"message"`
	Code    Kind   `json:"code"`
}

// Result is the uniform { data, error } shape returned across the backend boundary.
//
// Data is nil exactly when Error is non-nil.
type Result[T any] struct {
	Data  *T         `json:"data"`
	Error *ErrorInfo `json:"error"`
}

// OK wraps data in a successful [Result].
func OK[T any](data T) Result[T] {
	return Result[T]{Data: &data}
}

// Fail builds a failed [Result] from err. A nil err is reported as [KindUnknown].
func Fail[T any](err error) Result[T] {
	if err == nil {
		return Result[T]{Error: &ErrorInfo{Message: "An unknown error occurred", Code: KindUnknown}}
	}
	return Result[T]{Error: &ErrorInfo{Message: Message(err), Code: KindOf(err)}}
}

// NewResult folds a (value, error) pair into a [Result].
func NewResult[T any](data T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return OK(data)
}

// Succeeded reports whether r carries data.
func (r Result[T]) Succeeded() bool {
	return r.Error == nil
}

// Unwrap returns the data, or the zero value and false on failure.
func (r Result[T]) Unwrap() (T, bool) {
	if r.Data == nil {
		var zero T
		return zero, false
	}
	return *r.Data, true
}

// Empty is the data payload of operations that only report success.
type Empty struct {
	Success bool `json:"success"`
}
