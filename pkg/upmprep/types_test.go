package upmprep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

func TestFilterOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    upmprep.FilterOptions
		wantErr bool
	}{
		{"valid", upmprep.FilterOptions{Defines: []string{"UNITY"}, Extensions: []string{".cs"}}, false},
		{"no extensions", upmprep.FilterOptions{Defines: []string{"UNITY"}}, true},
		{"extension without dot", upmprep.FilterOptions{Extensions: []string{"cs"}}, true},
		{"overlapping symbols", upmprep.FilterOptions{Defines: []string{"A"}, KeepDefines: []string{"A"}, Extensions: []string{".cs"}}, true},
		{"negative workers", upmprep.FilterOptions{Extensions: []string{".cs"}, Workers: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, upmprep.ErrInvalidConfig))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTreeResult_Counters(t *testing.T) {
	r := upmprep.TreeResult{Files: []upmprep.FileResult{
		{Path: "a.cs", LinesIn: 10, LinesOut: 7, Changed: true},
		{Path: "b.cs", LinesIn: 4, LinesOut: 4},
		{Path: "c.cs", LinesIn: 6, LinesOut: 1, Changed: true},
	}}

	assert.Equal(t, 2, r.Rewritten())
	assert.Equal(t, 8, r.LinesRemoved())
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, []string{".cs"}, upmprep.DefaultExtensions())
	assert.Equal(t, []string{"UNITY"}, upmprep.DefaultDefines())
	assert.Contains(t, upmprep.DefaultIgnorePatterns(), "AssemblyInfo.cs")
}
