package platform

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/ytget/photo-feed/internal/model"
)

// AcceptEncoding is sent on every outbound request. Setting it explicitly
// turns off the transport's transparent gzip handling, so DecodedBody must
// be used to read responses.
const AcceptEncoding = "br, gzip"

type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func (d *decodedBody) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DecodedBody returns the response body with any brotli or gzip content
// encoding removed. Closing the result closes the original body.
func DecodedBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return resp.Body, nil
	case "br":
		return &decodedBody{Reader: brotli.NewReader(resp.Body), closers: []io.Closer{resp.Body}}, nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		return &decodedBody{Reader: zr, closers: []io.Closer{zr, resp.Body}}, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding: %s", encoding)
	}
}

// FetchBytes downloads rawURL and returns the decoded body. With noCache set
// the request asks every cache on the way to revalidate.
func FetchBytes(ctx context.Context, client *http.Client, rawURL string, noCache bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &model.NetworkError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept-Encoding", AcceptEncoding)
	if noCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &model.NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &model.NetworkError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := DecodedBody(resp)
	if err != nil {
		return nil, &model.DecodeError{URL: rawURL, Err: err}
	}
	defer body.Close()

	data, err := ReadBody(ctx, rawURL, body)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadBody reads body to the end. A read cut short by the connection or
// the context is a NetworkError; a corrupt encoded stream is a DecodeError.
func ReadBody(ctx context.Context, rawURL string, body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(body)
	if err == nil {
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, &model.NetworkError{URL: rawURL, Err: ctx.Err()}
	}
	if IsTransportError(err) {
		return nil, &model.NetworkError{URL: rawURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return nil, &model.DecodeError{URL: rawURL, Err: err}
}

// IsTransportError reports whether err came from the connection rather
// than from the bytes it carried
func IsTransportError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
