//go:build !linux

package deck

func enumerateFramebuffer() []Device { return nil }
