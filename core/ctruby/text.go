package ctruby

import (
	"sync/atomic"

	"github.com/FocuswithJustin/rubykit/core/errors"
)

// liveTexts counts Text handles that still hold at least one reference.
var liveTexts atomic.Int64

// Text is a reference-counted, immutable string handle. Slot text crosses
// into an Annotation as a Text so that ownership transfer is explicit: the
// creator holds one reference, Create takes its own, and each side releases
// what it holds.
type Text struct {
	s    string
	refs int32
}

// NewText returns a handle for s holding one reference owned by the caller.
func NewText(s string) *Text {
	liveTexts.Add(1)
	return &Text{s: s, refs: 1}
}

// String returns the text. It panics on a released handle.
func (t *Text) String() string {
	errors.Precondition(t.refs > 0, "text access", "use of released text")
	return t.s
}

// Retain adds a reference and returns t.
func (t *Text) Retain() *Text {
	errors.Precondition(t.refs > 0, "text retain", "retain of released text")
	t.refs++
	return t
}

// Release drops a reference. Releasing a handle with no references left is
// a double free and panics.
func (t *Text) Release() {
	errors.Precondition(t.refs > 0, "text release", "double release")
	t.refs--
	if t.refs == 0 {
		liveTexts.Add(-1)
	}
}

// RefCount reports the number of references currently held.
func (t *Text) RefCount() int {
	return int(t.refs)
}

// LiveTexts reports how many Text handles are still referenced.
func LiveTexts() int64 {
	return liveTexts.Load()
}
