// Package netx builds HTTP requests the standard helpers do not cover.
package netx

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
)

// NewMultipartRequest wraps data as a single file part named field and
// returns a POST request ready to send.
func NewMultipartRequest(ctx context.Context, url, field, filename string, data []byte) (*http.Request, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}
