// Copyright © 2025 The lispindent authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispindent/indent/rules"
)

func TestNewEngineFromConfig(t *testing.T) {
	defer viper.Reset()
	viper.Set("indent-size", 4)
	viper.Set("plist", true)
	viper.Set("fixed-offset", -1)

	eng, err := newEngine()
	require.NoError(t, err)
	assert.Equal(t, 4, eng.Options().IndentSize)
	assert.True(t, eng.Options().KeywordPlistHeuristic)
	assert.Nil(t, eng.Options().FixedOffset, "-1 disables the fixed offset")
}

func TestNewEngineFixedOffset(t *testing.T) {
	defer viper.Reset()
	viper.Set("fixed-offset", 2)

	eng, err := newEngine()
	require.NoError(t, err)
	require.NotNil(t, eng.Options().FixedOffset)
	assert.Equal(t, 2, *eng.Options().FixedOffset)
}

func TestActiveTableOverlay(t *testing.T) {
	defer viper.Reset()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("progn: {style: align}\nmyform: {style: body}\n"), 0o600))
	viper.Set("rules", path)

	table, err := activeTable()
	require.NoError(t, err)
	assert.Equal(t, rules.StyleAlign, table.RuleFor("progn").Style, "file rule overrides default")
	assert.Equal(t, rules.StyleBody, table.RuleFor("myform").Style)
	assert.Equal(t, rules.StyleSpecial, table.RuleFor("defun").Style, "defaults survive the overlay")
}

func TestActiveTableMissingFile(t *testing.T) {
	defer viper.Reset()
	viper.Set("rules", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := activeTable()
	assert.Error(t, err)
}
