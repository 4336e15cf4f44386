package stack

import (
	"runtime"
	"strconv"
	"strings"
)

// Frame identifies a call site
type Frame struct {
	Function string
	File     string
	Line     int
}

// Caller returns frame of the caller, depth 0 is the function calling Caller
func Caller(depth int) Frame {
	pc, file, line, _ := runtime.Caller(depth + 1)

	f := Frame{
		File: file[strings.LastIndexByte(file, '/')+1:],
		Line: line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		f.Function = strings.ReplaceAll(fn.Name(), "[...]", "")
	}

	return f
}

// Record returns caller identification like `pkg/path.(*type).method(file.go:line)`
func Record(depth int) string {
	return Caller(depth + 1).String()
}

func (f Frame) String() string {
	return f.Function + "(" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}

// Short omits package path of the function
func (f Frame) Short() string {
	name := f.Function[strings.LastIndexByte(f.Function, '/')+1:]

	return name + "(" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}
