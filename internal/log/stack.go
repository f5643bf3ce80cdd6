package log

import (
	"path"
	"runtime"
	"strconv"
	"strings"
)

// StackFrame is one caller attached to a log record
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

const maxFrames = 12

// loggerDir is the source directory of this package. Frames from its
// non-test files belong to the logger and are left out of call stacks.
var loggerDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return path.Dir(file)
}()

// Callstack returns the callers of the logger, innermost first, up to
// main.main or the test runner. The frames are appended to fr[:0].
func Callstack(fr []StackFrame) []StackFrame {
	var pcs [maxFrames + 8]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	fr = fr[:0]
	for more := n > 0; more && len(fr) < maxFrames; {
		var f runtime.Frame
		f, more = frames.Next()
		if len(fr) == 0 && insideLogger(f.File) {
			continue
		}
		fr = append(fr, StackFrame{
			File:     path.Base(f.File),
			Line:     f.Line,
			Function: shortFunction(f.Function),
		})
		if f.Function == "main.main" || f.Function == "testing.tRunner" {
			break
		}
	}
	return fr
}

func insideLogger(file string) bool {
	return path.Dir(file) == loggerDir && !strings.HasSuffix(file, "_test.go")
}

// shortFunction drops the module prefix: render.(*OpenGLDevice).LoadImage
func shortFunction(fn string) string {
	fn = strings.TrimPrefix(fn, "mini-rpg/internal/")
	return strings.TrimPrefix(fn, "main.")
}

func (f StackFrame) String() string {
	return f.Function + " (" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}
