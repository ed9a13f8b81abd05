// Copyright © 2025 The lispindent authors

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := New(MapTable{
		"if":    {Kind: SpecialForm},
		"defun": {Kind: Macro},
		"car":   {Kind: FunctionPrimitive},
		"map":   {Kind: FunctionLibrary},
		"pi":    {Kind: SpecialVariable},
	})
	tests := []struct {
		name string
		want Kind
	}{
		{"if", SpecialForm},
		{"defun", Macro},
		{"car", FunctionPrimitive},
		{"map", FunctionLibrary},
		{"pi", SpecialVariable},
		{"no-such-symbol", Unbound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.name))
		})
	}
}

func TestClassifyAliases(t *testing.T) {
	c := New(MapTable{
		"car":    {Kind: FunctionPrimitive},
		"first":  {AliasFor: "car"},
		"head":   {AliasFor: "first"},
		"lost":   {AliasFor: "missing"},
		"selfie": {AliasFor: "selfie"},
		"ping":   {AliasFor: "pong"},
		"pong":   {AliasFor: "ping"},
	})
	assert.Equal(t, FunctionPrimitive, c.Classify("first"), "single hop")
	assert.Equal(t, FunctionPrimitive, c.Classify("head"), "chained hops")
	assert.Equal(t, Unbound, c.Classify("lost"), "dangling alias")
	assert.Equal(t, Unbound, c.Classify("selfie"), "self cycle")
	assert.Equal(t, Unbound, c.Classify("ping"), "mutual cycle")
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, Unbound, New(nil).Classify("if"))
	var c *Classifier
	assert.Equal(t, Unbound, c.Classify("if"))
}

func TestBuiltins(t *testing.T) {
	c := New(Builtins())
	assert.Equal(t, SpecialForm, c.Classify("if"))
	assert.Equal(t, Macro, c.Classify("defun"))
	assert.Equal(t, FunctionPrimitive, c.Classify("car"))
	assert.Equal(t, FunctionPrimitive, c.Classify("first"), "builtin alias resolves")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "special-form", SpecialForm.String())
	assert.Equal(t, "macro", Macro.String())
	assert.Equal(t, "unbound", Kind(99).String())
}
