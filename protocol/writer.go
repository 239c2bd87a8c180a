package protocol

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Writer serializes response lines onto a shared output channel. Every
// method formats its complete line first and pushes it through a single
// locked write, so lines from concurrent callers never tear. All methods
// are no-ops on a nil Writer or a Writer with no output attached.
type Writer struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// SetDebug enables or disables Debug line output. Off by default.
func (w *Writer) SetDebug(on bool) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.debug = on
	w.mu.Unlock()
}

// emit holds the channel lock for exactly one formatted write.
func (w *Writer) emit(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	io.WriteString(w.out, line)
}

func (w *Writer) ready() bool {
	return w != nil && w.out != nil
}

// needsNewline reports whether a free-form format string requires a line
// terminator. The decision is made on the format string itself, not the
// rendered output.
func needsNewline(format string) bool {
	if format == "" {
		return true
	}
	end := format[len(format)-1]
	return end != '\n' && end != '\r'
}

func (w *Writer) freeform(tag, format string, args ...interface{}) {
	if !w.ready() {
		return
	}
	var b strings.Builder
	b.WriteString(tag)
	fmt.Fprintf(&b, format, args...)
	if needsNewline(format) {
		b.WriteString(LineEnding)
	}
	w.emit(b.String())
}

// Info emits a "#:" informational line.
func (w *Writer) Info(format string, args ...interface{}) {
	w.freeform(TagInfo, format, args...)
}

// Warning emits a "W:" line.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.freeform(TagWarning, format, args...)
}

// Error emits an "E:" line.
func (w *Writer) Error(format string, args ...interface{}) {
	w.freeform(TagError, format, args...)
}

// Debug emits a "?:" line stamped with the calling site's file, line and
// function. Suppressed unless SetDebug(true) has been called.
func (w *Writer) Debug(format string, args ...interface{}) {
	if !w.ready() {
		return
	}
	w.mu.Lock()
	on := w.debug
	w.mu.Unlock()
	if !on {
		return
	}

	file, fn := "?", "?"
	line := 0
	if pc, f, l, ok := runtime.Caller(1); ok {
		file = filepath.Base(f)
		line = l
		if rf := runtime.FuncForPC(pc); rf != nil {
			fn = rf.Name()
			if i := strings.LastIndexByte(fn, '.'); i >= 0 {
				fn = fn[i+1:]
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s:%d:%s:", TagDebug, file, line, fn)
	fmt.Fprintf(&b, format, args...)
	if needsNewline(format) {
		b.WriteString(LineEnding)
	}
	w.emit(b.String())
}

// Begin opens a response transaction.
func (w *Writer) Begin() {
	if !w.ready() {
		return
	}
	w.emit(TagBegin + LineEnding)
}

// End closes a response transaction with its final status.
func (w *Writer) End(ok bool) {
	if !w.ready() {
		return
	}
	if ok {
		w.emit(TagEndOK + LineEnding)
	} else {
		w.emit(TagEndErr + LineEnding)
	}
}

// Bool emits one named boolean line.
func (w *Writer) Bool(name string, value bool) {
	if !w.ready() {
		return
	}
	if value {
		w.emit(TagBool + name + ":true" + LineEnding)
	} else {
		w.emit(TagBool + name + ":false" + LineEnding)
	}
}

// String emits one named string line.
func (w *Writer) String(name, value string) {
	if !w.ready() {
		return
	}
	w.emit(TagString + name + ":" + value + LineEnding)
}

// array formats one named line of comma separated values. An empty set
// still emits the tagged header so the host sees the name.
func (w *Writer) array(tag, name string, count int, format func(i int) string) {
	if !w.ready() {
		return
	}
	var b strings.Builder
	b.WriteString(tag)
	b.WriteString(name)
	b.WriteByte(':')
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(format(i))
	}
	b.WriteString(LineEnding)
	w.emit(b.String())
}

// StringArray emits one named line of comma separated strings.
func (w *Writer) StringArray(name string, values []string) {
	w.array(TagStrArr, name, len(values), func(i int) string {
		return values[i]
	})
}

// Int8 emits one named line of signed 8-bit values.
func (w *Writer) Int8(name string, values []int8) {
	w.array(TagInt8, name, len(values), func(i int) string {
		return strconv.FormatInt(int64(values[i]), 10)
	})
}

// Uint8 emits one named line of unsigned 8-bit values.
func (w *Writer) Uint8(name string, values []uint8) {
	w.array(TagUint8, name, len(values), func(i int) string {
		return strconv.FormatUint(uint64(values[i]), 10)
	})
}

// Int16 emits one named line of signed 16-bit values.
func (w *Writer) Int16(name string, values []int16) {
	w.array(TagInt16, name, len(values), func(i int) string {
		return strconv.FormatInt(int64(values[i]), 10)
	})
}

// Uint16 emits one named line of unsigned 16-bit values.
func (w *Writer) Uint16(name string, values []uint16) {
	w.array(TagUint16, name, len(values), func(i int) string {
		return strconv.FormatUint(uint64(values[i]), 10)
	})
}

// Int32 emits one named line of signed 32-bit values.
func (w *Writer) Int32(name string, values []int32) {
	w.array(TagInt32, name, len(values), func(i int) string {
		return strconv.FormatInt(int64(values[i]), 10)
	})
}

// Uint32 emits one named line of unsigned 32-bit values.
func (w *Writer) Uint32(name string, values []uint32) {
	w.array(TagUint32, name, len(values), func(i int) string {
		return strconv.FormatUint(uint64(values[i]), 10)
	})
}

// Float emits one named line of floating point values with fixed six
// digit precision.
func (w *Writer) Float(name string, values []float64) {
	w.array(TagFloat, name, len(values), func(i int) string {
		return strconv.FormatFloat(values[i], 'f', 6, 64)
	})
}

// Hex8 emits one named line of two-digit hex values.
func (w *Writer) Hex8(name string, values []uint8) {
	w.array(TagHex8, name, len(values), func(i int) string {
		return fmt.Sprintf("%02X", values[i])
	})
}

// Hex16 emits one named line of four-digit hex values.
func (w *Writer) Hex16(name string, values []uint16) {
	w.array(TagHex16, name, len(values), func(i int) string {
		return fmt.Sprintf("%04X", values[i])
	})
}

// Hex32 emits one named line of eight-digit hex values.
func (w *Writer) Hex32(name string, values []uint32) {
	w.array(TagHex32, name, len(values), func(i int) string {
		return fmt.Sprintf("%08X", values[i])
	})
}
