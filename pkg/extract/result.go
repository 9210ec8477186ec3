package extract

import "fmt"

// ResultTag classifies the outcome of one extraction attempt.
type ResultTag int

const (
	// ResultOK means the attempt produced at least one record.
	ResultOK ResultTag = iota
	// ResultEmpty means the attempt ran but yielded nothing usable.
	ResultEmpty
	// ResultFailed means the attempt itself broke (transport error,
	// unparseable output). The reason is informational only.
	ResultFailed
)

// Result carries the records of one extraction attempt together with a tag
// the caller inspects to drive fallback decisions. Fallback is data, not
// control flow: no attempt signals "try the next thing" by returning an
// error.
type Result[T any] struct {
	Tag     ResultTag
	Records []T
	Reason  string
}

// Ok wraps records in a successful result. An empty slice is normalized to
// ResultEmpty so callers only need to check the tag.
func Ok[T any](records []T) Result[T] {
	if len(records) == 0 {
		return Result[T]{Tag: ResultEmpty}
	}
	return Result[T]{Tag: ResultOK, Records: records}
}

// Failed wraps a broken attempt with its reason.
func Failed[T any](format string, args ...any) Result[T] {
	return Result[T]{Tag: ResultFailed, Reason: fmt.Sprintf(format, args...)}
}

// formatID renders a counter as a zero-padded record identifier, e.g.
// formatID("NAR-REQ", 7) == "NAR-REQ-007".
func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}
