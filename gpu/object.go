// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// object is the part shared by all resource handles: the owning context
// and exactly one native handle, which is zero once released.
type object struct {
	ctx    *Context
	handle uint32
	kind   string
}

// live returns the handle, or ErrDisposed if the object was released.
func (o *object) live() (uint32, error) {
	if o.handle == 0 {
		return 0, fmt.Errorf("%s: %w", o.kind, ErrDisposed)
	}
	return o.handle, nil
}

// Handle returns the native handle, 0 after Release.
func (o *object) Handle() uint32 {
	return o.handle
}

// Released reports whether the object has been released.
func (o *object) Released() bool {
	return o.handle == 0
}

// with binds handle to slot, runs fn, and restores the previous binding
// on every exit path.
func (o *object) with(slot Enum, fn func() error) error {
	h, err := o.live()
	if err != nil {
		return err
	}
	unbind, err := o.ctx.bind(slot, h)
	if err != nil {
		return err
	}
	defer unbind()
	return fn()
}

// bindTo binds the object to slot and returns the restore function.
func (o *object) bindTo(slot Enum) (func(), error) {
	h, err := o.live()
	if err != nil {
		return nil, err
	}
	return o.ctx.bind(slot, h)
}

// release runs del on the handle once and marks the object released.
// Further calls are no-ops.
func (o *object) release(del func(h uint32), slots ...Enum) {
	if o.handle == 0 {
		return
	}
	h := o.handle
	del(h)
	if err := o.ctx.check("delete " + o.kind); err != nil {
		Logger().Warn("gpu: release", "kind", o.kind, "handle", h, "err", err)
	}
	o.ctx.forget(h, slots...)
	o.handle = 0
	Logger().Debug("gpu: released", "kind", o.kind, "handle", h)
}

// created logs a new handle.
func (o *object) created() {
	Logger().Debug("gpu: created", "kind", o.kind, "handle", o.handle)
}
