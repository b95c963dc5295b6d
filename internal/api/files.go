package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// Upload posts r as a single-field multipart form and decodes the envelope.
func Upload[T any](ctx context.Context, c *Client, urlPath, field, filename string, r io.Reader, opts ...RequestOption) (types.Envelope[T], error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return types.Envelope[T]{}, errors.Wrap(errors.ErrCodeClient, "failed to build upload form", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return types.Envelope[T]{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", filename), err)
	}
	if err := mw.Close(); err != nil {
		return types.Envelope[T]{}, errors.Wrap(errors.ErrCodeClient, "failed to build upload form", err)
	}

	req := &transport.Request{
		Method: http.MethodPost,
		Path:   urlPath,
		Body:   &buf,
		Header: http.Header{"Content-Type": {mw.FormDataContentType()}},
	}
	for _, opt := range opts {
		opt(req)
	}
	return Do[T](ctx, c, req)
}

// Download streams the body of a GET to w. It returns the byte count and the
// filename suggested by Content-Disposition, "" when the server sent none.
func Download(ctx context.Context, c *Client, urlPath string, w io.Writer, opts ...RequestOption) (int64, string, error) {
	resp, err := stream(ctx, c, urlPath, opts)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, "", errors.Wrap(errors.ErrCodeNetwork, "download interrupted", err).WithRequest(http.MethodGet, urlPath)
	}
	return n, dispositionFilename(resp.Header), nil
}

// DownloadFile saves a GET body to disk. When dest is empty or a directory
// the name comes from Content-Disposition, falling back to the last segment
// of urlPath. It returns the written path.
func DownloadFile(ctx context.Context, c *Client, urlPath, dest string, opts ...RequestOption) (string, int64, error) {
	return SaveFile(dest, path.Base(urlPath), func(w io.Writer) (int64, string, error) {
		resp, err := stream(ctx, c, urlPath, opts)
		if err != nil {
			return 0, "", err
		}
		defer resp.Body.Close()

		n, err := io.Copy(w, resp.Body)
		if err != nil {
			return n, "", errors.Wrap(errors.ErrCodeFileWriteFailed, "download interrupted", err).WithRequest(http.MethodGet, urlPath)
		}
		return n, dispositionFilename(resp.Header), nil
	})
}

// SaveFile runs write against a temporary file next to dest and renames it
// into place only when write succeeds, so a failed transfer never touches an
// existing file. write reports the byte count and a suggested filename.
// When dest is empty or a directory the file is named after the suggestion,
// or fallback when there is none. It returns the final path.
func SaveFile(dest, fallback string, write func(w io.Writer) (int64, string, error)) (string, int64, error) {
	dir := dest
	switch {
	case dest == "":
		dir = "."
	case !isDir(dest):
		dir = filepath.Dir(dest)
	}

	tmp, err := os.CreateTemp(dir, ".cleanaid-*")
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to create a file in %s", dir), err)
	}
	defer os.Remove(tmp.Name())

	n, suggested, err := write(tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write "+tmp.Name(), cerr)
	}
	if err != nil {
		return "", n, err
	}

	target := dest
	if dest == "" || isDir(dest) {
		name := suggested
		if name == "" {
			name = fallback
		}
		target = filepath.Join(dir, filepath.Base(name))
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", n, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to save "+target, err)
	}
	return target, n, nil
}

func stream(ctx context.Context, c *Client, urlPath string, opts []RequestOption) (*http.Response, error) {
	req := &transport.Request{
		Method: http.MethodGet,
		Path:   urlPath,
		Header: http.Header{"Accept": {"*/*"}},
	}
	for _, opt := range opts {
		opt(req)
	}
	return c.doer.Stream(ctx, req)
}

func dispositionFilename(h http.Header) string {
	cd := h.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
