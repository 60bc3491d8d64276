// Package growbuf implements the growable byte-buffer primitive used for
// transient editor state: the command-input line buffer (the root
// package's cursorReader), which must grow without bound but should not
// reallocate on every byte appended.
package growbuf

import "fmt"

const (
	// minGranule is the smallest unit of growth, matching the historical
	// 512-byte minimum call size of an ed line buffer.
	minGranule = 512
	// granule rounds all growth up to 1 KiB.
	granule = 1024
)

// Buffer is a contiguous, geometrically-growing byte buffer. The zero value
// is ready to use.
type Buffer struct {
	// Limit, if non-zero, caps the size Ensure accepts; Ensure fails past
	// it. The capacity allocated is still rounded up to a granule.
	Limit int

	b []byte
}

// LimitError indicates that Ensure would have grown the buffer past Limit,
// or past the representable positive int maximum.
type LimitError struct {
	Requested int
	Limit     int
}

func (e LimitError) Error() string {
	if e.Limit == 0 {
		return fmt.Sprintf("requested size %d exceeds representable maximum", e.Requested)
	}
	return fmt.Sprintf("requested size %d exceeds limit %d", e.Requested, e.Limit)
}

// Bytes returns the buffer's current content.
func (b *Buffer) Bytes() []byte { return b.b }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.b) }

// Reset empties the buffer without releasing its capacity.
func (b *Buffer) Reset() { b.b = b.b[:0] }

// Ensure grows the buffer's capacity so that at least size bytes can be
// held, rounding up to 1 KiB granules (minimum 512 bytes). It does not
// change Len; callers append or slice up to the returned capacity
// themselves. Fails with LimitError if size exceeds Limit (when set) or the
// largest representable positive int.
func (b *Buffer) Ensure(size int) error {
	if size < 0 {
		return LimitError{size, b.Limit}
	}
	if b.Limit != 0 && size > b.Limit {
		return LimitError{size, b.Limit}
	}
	if cap(b.b) >= size {
		return nil
	}

	rounded := roundUp(size)
	if rounded < 0 || rounded < size {
		// overflowed the positive int range
		return LimitError{size, 0}
	}

	grown := make([]byte, len(b.b), rounded)
	copy(grown, b.b)
	b.b = grown
	return nil
}

// Append grows as needed and appends p, returning the buffer's new content.
func (b *Buffer) Append(p []byte) ([]byte, error) {
	if err := b.Ensure(len(b.b) + len(p)); err != nil {
		return nil, err
	}
	b.b = append(b.b, p...)
	return b.b, nil
}

// AppendByte is like Append for a single byte, avoiding a slice allocation
// at call sites that build a buffer one rune at a time.
func (b *Buffer) AppendByte(c byte) error {
	if err := b.Ensure(len(b.b) + 1); err != nil {
		return err
	}
	b.b = append(b.b, c)
	return nil
}

func roundUp(size int) int {
	g := granule
	if size < minGranule {
		g = minGranule
	}
	return (size + g - 1) / g * g
}
