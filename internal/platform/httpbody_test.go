package platform

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/photo-feed/internal/model"
)

func TestFetchBytesEncodings(t *testing.T) {
	payload := []byte("image bytes go here")

	var br, gz bytes.Buffer
	bw := brotli.NewWriter(&br)
	bw.Write(payload)
	bw.Close()
	gw := gzip.NewWriter(&gz)
	gw.Write(payload)
	gw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, AcceptEncoding, r.Header.Get("Accept-Encoding"))
		switch r.URL.Path {
		case "/br":
			w.Header().Set("Content-Encoding", "br")
			w.Write(br.Bytes())
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(gz.Bytes())
		case "/plain":
			w.Write(payload)
		case "/zstd":
			w.Header().Set("Content-Encoding", "zstd")
			w.Write(payload)
		default:
			http.Error(w, "nope", http.StatusTeapot)
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/br", "/gzip", "/plain"} {
		t.Run(path, func(t *testing.T) {
			data, err := FetchBytes(context.Background(), srv.Client(), srv.URL+path, false)
			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}

	_, err := FetchBytes(context.Background(), srv.Client(), srv.URL+"/zstd", false)
	assert.True(t, model.IsDecodeError(err))

	_, err = FetchBytes(context.Background(), srv.Client(), srv.URL+"/other", false)
	var netErr *model.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusTeapot, netErr.StatusCode)
}

func TestFetchBytesNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("Cache-Control")))
	}))
	defer srv.Close()

	data, err := FetchBytes(context.Background(), srv.Client(), srv.URL, true)
	require.NoError(t, err)
	assert.Equal(t, "no-cache", string(data))

	data, err = FetchBytes(context.Background(), srv.Client(), srv.URL, false)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestReadBodyClassifiesFailures(t *testing.T) {
	const url = "https://images.example.com/a"

	tests := []struct {
		name  string
		body  io.Reader
		check func(error) bool
	}{
		{"connection dropped", iotest.ErrReader(io.ErrUnexpectedEOF), model.IsNetworkError},
		{"deadline", iotest.ErrReader(context.DeadlineExceeded), model.IsNetworkError},
		{"corrupt stream", iotest.ErrReader(errors.New("brotli: corrupt input")), model.IsDecodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBody(context.Background(), url, tt.body)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadBody(ctx, url, iotest.ErrReader(errors.New("read interrupted")))
	assert.True(t, model.IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
}
