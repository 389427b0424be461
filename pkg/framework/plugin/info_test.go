package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInfo(t *testing.T) {
	info := DefaultInfo()

	assert.Equal(t, "DDConrod2", info.Name)
	assert.Equal(t, "DeathDisco", info.Vendor)
	assert.Equal(t, int32(7790), info.UniqueID)
	assert.Equal(t, CategoryEffect, info.Category)
	assert.Equal(t, 2, info.Inputs)
	assert.Equal(t, 2, info.Outputs)
	assert.Equal(t, 2, info.Parameters)
	require.NoError(t, info.Validate())
}

func TestInfoValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Info)
		wantErr bool
	}{
		{"valid", func(*Info) {}, false},
		{"empty name", func(i *Info) { i.Name = "" }, true},
		{"zero id", func(i *Info) { i.UniqueID = 0 }, true},
		{"negative inputs", func(i *Info) { i.Inputs = -1 }, true},
		{"wrong parameter count", func(i *Info) { i.Parameters = 3 }, true},
		{"mono", func(i *Info) { i.Inputs, i.Outputs = 1, 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DefaultInfo()
			tt.mutate(&info)
			err := info.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidInfo(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Effect", CategoryEffect.String())
	assert.Equal(t, "Synth", CategorySynth.String())
	assert.Equal(t, "Analysis", CategoryAnalysis.String())
	assert.Equal(t, "Unknown", Category(42).String())
}
