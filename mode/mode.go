// Copyright © 2025 The lispindent authors

// Package mode wires the indentation engine and the highlighter into a host
// editing environment.  The host holds explicit references to the active
// providers; switching providers is a plain reassignment through a
// registration handle, and activation composes two independently revocable
// registrations so either capability can be withdrawn without the other.
package mode

import (
	"sync"

	"github.com/luthersystems/lispindent/classify"
	"github.com/luthersystems/lispindent/indent"
)

// IndentProvider computes the indentation column for the line starting at
// cursor.  See indent.Engine for the canonical implementation.
type IndentProvider interface {
	Indent(text string, cursor, topLevel int) indent.Result
}

// Highlighter maps a symbol name to a display category.
type Highlighter interface {
	Classify(name string) classify.Kind
}

// Host holds the active providers for one language mode instance.  The zero
// value is ready to use with no providers installed.
type Host struct {
	mu        sync.Mutex
	indent    IndentProvider
	highlight Highlighter
}

// Registration is a revocable handle returned by the Set methods.  Revoke
// restores whatever provider was active before the registration and is safe
// to call more than once.
type Registration struct {
	once   sync.Once
	revoke func()
}

// Revoke withdraws the registration.
func (r *Registration) Revoke() {
	if r == nil {
		return
	}
	r.once.Do(r.revoke)
}

// SetIndentProvider installs p as the active indentation provider and
// returns a handle that restores the previous provider.
func (h *Host) SetIndentProvider(p IndentProvider) *Registration {
	h.mu.Lock()
	prev := h.indent
	h.indent = p
	h.mu.Unlock()
	return &Registration{revoke: func() {
		h.mu.Lock()
		h.indent = prev
		h.mu.Unlock()
	}}
}

// SetHighlighter installs hl as the active highlighter and returns a handle
// that restores the previous highlighter.
func (h *Host) SetHighlighter(hl Highlighter) *Registration {
	h.mu.Lock()
	prev := h.highlight
	h.highlight = hl
	h.mu.Unlock()
	return &Registration{revoke: func() {
		h.mu.Lock()
		h.highlight = prev
		h.mu.Unlock()
	}}
}

// IndentProvider returns the active indentation provider, or nil.
func (h *Host) IndentProvider() IndentProvider {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.indent
}

// Highlighter returns the active highlighter, or nil.
func (h *Host) Highlighter() Highlighter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.highlight
}

// Mode is an activation toggle composing the indentation and highlighting
// registrations.
type Mode struct {
	indent    *Registration
	highlight *Registration
}

// Activate installs both providers on the host and returns the composed
// mode.  Either registration may be revoked individually before Deactivate.
func Activate(h *Host, p IndentProvider, hl Highlighter) *Mode {
	return &Mode{
		indent:    h.SetIndentProvider(p),
		highlight: h.SetHighlighter(hl),
	}
}

// IndentRegistration returns the mode's indentation registration handle.
func (m *Mode) IndentRegistration() *Registration { return m.indent }

// HighlightRegistration returns the mode's highlighting registration handle.
func (m *Mode) HighlightRegistration() *Registration { return m.highlight }

// Deactivate revokes both registrations.  Registrations already revoked
// individually are left alone.
func (m *Mode) Deactivate() {
	m.indent.Revoke()
	m.highlight.Revoke()
}
