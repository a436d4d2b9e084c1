// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/habitrack/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14], "version nibble")
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0192f0c4-8b6e-7c1a-9b3e-1a2b3c4d5e6f", true},
		{"42", false},
		{"", false},
		{"{0192f0c4-8b6e-7c1a-9b3e-1a2b3c4d5e6f}", false},
		{"0192f0c48b6e7c1a9b3e1a2b3c4d5e6f", false},
		{"zz92f0c4-8b6e-7c1a-9b3e-1a2b3c4d5e6f", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, uuid.Valid(tt.in), tt.in)
	}
}
