package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

func TestSplitSymbols(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"semicolons", "UNITY;NET_STANDARD", []string{"UNITY", "NET_STANDARD"}},
		{"commas and spaces", "UNITY, GODOT  DEBUG", []string{"UNITY", "GODOT", "DEBUG"}},
		{"duplicates", "A;B;A", []string{"A", "B"}},
		{"trailing separator", "A;", []string{"A"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSymbols(tt.input))
		})
	}
}

func TestParseSymbolFlags(t *testing.T) {
	assert.Nil(t, ParseSymbolFlags(nil))
	assert.Equal(t, []string{"UNITY", "GODOT", "DEBUG"}, ParseSymbolFlags([]string{"UNITY;GODOT", "DEBUG"}))
}

func TestMerge(t *testing.T) {
	fromConfig := Symbols{Defines: []string{"UNITY"}, KeepDefines: []string{"DEBUG"}}
	fromFile := Symbols{Defines: []string{"GODOT"}}
	fromFlags := Symbols{KeepDefines: []string{}}

	got := Merge(fromConfig, fromFile, fromFlags)

	assert.Equal(t, []string{"GODOT"}, got.Defines, "symbol file overrides config")
	assert.Equal(t, []string{}, got.KeepDefines, "an empty flag list clears lower layers")
}

func TestMerge_NoLayers(t *testing.T) {
	assert.Equal(t, Symbols{}, Merge())
}

func TestSymbols_Validate(t *testing.T) {
	assert.NoError(t, Symbols{Defines: []string{"UNITY", "_X1"}}.Validate())

	for _, bad := range []string{"1ABC", "A-B", "!UNITY", ""} {
		err := Symbols{KeepDefines: []string{bad}}.Validate()
		assert.True(t, errors.Is(err, upmprep.ErrInvalidConfig), "symbol %q", bad)
	}
}
