package model

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoto_AspectRatio(t *testing.T) {
	ratio, ok := Photo{Width: 400, Height: 600}.AspectRatio()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, ratio, 1e-9)

	_, ok = Photo{Width: 0, Height: 600}.AspectRatio()
	assert.False(t, ok, "zero width has no ratio")

	_, ok = Photo{Width: -3, Height: 600}.AspectRatio()
	assert.False(t, ok, "negative width has no ratio")
}

func TestPhoto_Visibility(t *testing.T) {
	tests := []struct {
		name        string
		photo       Photo
		author      bool
		description bool
	}{
		{"nothing", Photo{}, false, false},
		{"blank author", Photo{Author: &Author{Name: "   "}}, false, false},
		{"author", Photo{Author: &Author{Name: "Ansel"}}, true, false},
		{"blank description", Photo{Description: "\t\n"}, false, false},
		{"description", Photo{Description: "Lake at dawn"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.author, tt.photo.HasAuthor())
			assert.Equal(t, tt.description, tt.photo.HasDescription())
		})
	}
}

func TestPhoto_AuthorAccessors(t *testing.T) {
	p := Photo{}
	assert.Empty(t, p.AuthorName())
	assert.Empty(t, p.AuthorImage())

	p.Author = &Author{Name: "Ansel", ProfileImage: "https://images.example/profile"}
	assert.Equal(t, "Ansel", p.AuthorName())
	assert.Equal(t, "https://images.example/profile", p.AuthorImage())
}

func TestErrorTaxonomy(t *testing.T) {
	netErr := fmt.Errorf("fetch: %w", &NetworkError{URL: "https://api", StatusCode: 503})
	assert.True(t, IsNetworkError(netErr))
	assert.False(t, IsDecodeError(netErr))
	assert.Contains(t, netErr.Error(), "503")

	decErr := &DecodeError{URL: "https://api", Err: io.ErrUnexpectedEOF}
	assert.True(t, IsDecodeError(decErr))
	assert.True(t, errors.Is(decErr, io.ErrUnexpectedEOF))

	storeErr := &StorageError{Op: "write", URI: "media://images/1", Err: io.ErrShortWrite}
	assert.True(t, IsStorageError(storeErr))
	assert.Contains(t, storeErr.Error(), "media://images/1")

	assert.True(t, errors.Is(fmt.Errorf("save: %w", ErrPermissionDenied), ErrPermissionDenied))
}
