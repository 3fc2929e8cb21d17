package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned upload url",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/products/abc-123.jpg",
			"products/abc-123",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/products/abc-123.png",
			"products/abc-123",
		},
		{
			"not a cloudinary url",
			"https://example.com/images/pic.jpg",
			"",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}
