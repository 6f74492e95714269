package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("@example.com"))
	assert.False(t, IsEmailDomainValid("ana@"))
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{" Happy-Paws ", "happy-paws", true},
		{"paws2", "paws2", true},
		{"happy paws", "happy paws", false},
		{"-paws", "-paws", false},
		{"paws--club", "paws--club", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeSlug(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
