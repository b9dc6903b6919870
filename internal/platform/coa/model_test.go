package coa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntBool_Unmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"1", true},
		{"0", false},
		{"true", true},
		{"false", false},
		{`"1"`, true},
		{`"0"`, false},
		{"null", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var b IntBool
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.Equal(t, tt.want, bool(b))
		})
	}

	var b IntBool
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &b))
}
