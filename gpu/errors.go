// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned by any operation on a released resource.
var ErrDisposed = errors.New("gpu: resource has been released")

// DeviceError reports a non-zero GL error flag after a device call.
type DeviceError struct {
	// Op is the device entry point that raised the error.
	Op string

	// Code is the GL error code.
	Code Enum
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("gpu: %s failed: %s", e.Op, ErrorName(e.Code))
}

// CompileError carries the compiler log of a failed shader stage.
type CompileError struct {
	Stage Enum
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: %s shader compilation failed: %s", StageName(e.Stage), e.Log)
}

// LinkError carries the linker log of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "gpu: program linking failed: " + e.Log
}

// ErrorName returns the GL name of an error code.
func ErrorName(code Enum) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("GL error 0x%04X", uint32(code))
}

// StageName returns a readable name for a shader stage.
func StageName(stage Enum) string {
	switch stage {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return fmt.Sprintf("stage 0x%04X", uint32(stage))
}
