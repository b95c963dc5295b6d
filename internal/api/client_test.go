package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/transport"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

func newClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{r.Method, r.URL.Path, r.URL.Query(), r.Header.Clone(), body})
		r.Body = io.NopCloser(bytes.NewReader(body))
		handler(w, r)
	}))

	tr, err := transport.New(transport.Config{BaseURL: server.URL}, transport.WithLogger(log.Discard()))
	require.NoError(t, err)
	return New(tr), &calls
}

func TestGet_DecodesEnvelope(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"totalUsers":12,"activeUsers":10},"success":true}`))
	})

	env, err := Get[types.UserStats](context.Background(), c, "/admin/users/stats", nil)
	require.NoError(t, err)

	assert.True(t, env.OK())
	assert.Equal(t, 12, env.Data.TotalUsers)
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Empty(t, (*calls)[0].query)
}

func TestGet_EncodesFilter(t *testing.T) {
	type filter struct {
		Page   int    `url:"page,omitempty"`
		Status string `url:"status,omitempty"`
		Search string `url:"search,omitempty"`
	}

	c, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := Get[[]types.Order](context.Background(), c, "/admin/orders", &filter{Page: 2, Status: "ready"})
	require.NoError(t, err)

	q := (*calls)[0].query
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "ready", q.Get("status"))
	assert.False(t, q.Has("search"))
}

func TestEncodeQuery(t *testing.T) {
	type filter struct {
		Page int `url:"page,omitempty"`
	}

	q, err := EncodeQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = EncodeQuery((*filter)(nil))
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = EncodeQuery(filter{})
	require.NoError(t, err)
	assert.Nil(t, q, "an all-empty filter sends no parameters")

	q, err = EncodeQuery(url.Values{"a": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, "1", q.Get("a"))

	_, err = EncodeQuery(42)
	require.Error(t, err)
}

func TestVerbs_SendJSONBodies(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":"u1"},"success":true}`))
	})
	ctx := context.Background()
	in := types.UserInput{Name: "Ada"}

	_, err := Post[types.User](ctx, c, "/admin/users", in)
	require.NoError(t, err)
	_, err = Put[types.User](ctx, c, "/admin/users/u1", in)
	require.NoError(t, err)
	_, err = Patch[types.User](ctx, c, "/admin/users/u1/status", types.StatusUpdate{Status: "active"})
	require.NoError(t, err)
	_, err = Delete[struct{}](ctx, c, "/admin/users/u1")
	require.NoError(t, err)

	require.Len(t, *calls, 4)
	methods := []string{(*calls)[0].method, (*calls)[1].method, (*calls)[2].method, (*calls)[3].method}
	assert.Equal(t, []string{"POST", "PUT", "PATCH", "DELETE"}, methods)
	assert.JSONEq(t, `{"name":"Ada"}`, string((*calls)[0].body))
	assert.JSONEq(t, `{"status":"active"}`, string((*calls)[2].body))
	assert.Empty(t, (*calls)[3].body)
	assert.Equal(t, "application/json", (*calls)[0].header.Get("Content-Type"))
}

func TestRequestOptions(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := Get[struct{}](context.Background(), c, "/admin/analytics/revenue", url.Values{"period": {"month"}},
		WithHeader("X-Trace", "abc"), WithQuery(url.Values{"year": {"2026"}}))
	require.NoError(t, err)

	got := (*calls)[0]
	assert.Equal(t, "abc", got.header.Get("X-Trace"))
	assert.Equal(t, "month", got.query.Get("period"))
	assert.Equal(t, "2026", got.query.Get("year"))
}

func TestTransportErrorsPassThrough(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"user not found"}`))
	})

	_, err := Get[types.User](context.Background(), c, "/admin/users/missing", nil)
	require.Error(t, err)
	assert.True(t, errors.IsStatus(err, http.StatusNotFound))
	e, _ := errors.As(err)
	assert.Equal(t, "user not found", e.Message)
}

func TestDo_InvalidBodyCarriesRequest(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := Get[types.User](context.Background(), c, "/admin/users/u1", nil)
	require.Error(t, err)
	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeEnvelopeInvalid, e.Code)
	assert.Equal(t, "/admin/users/u1", e.Path)
}

func TestRequire(t *testing.T) {
	data, err := Require(types.Envelope[int]{Data: 7, Success: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, data)

	_, err = Require(types.Envelope[int]{Data: 7, Success: false, Message: "nope"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEnvelopeUnsuccessful, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "nope")

	boom := errors.New(errors.ErrCodeNetwork, "down")
	_, err = Require(types.Envelope[int]{}, boom)
	assert.Same(t, boom, err)
}

func TestUpload(t *testing.T) {
	var field, filename, content string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(part)
		field, filename, content = part.FormName(), part.FileName(), string(b)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"url": "https://cdn/x.png"}, "success": true})
	})

	env, err := Upload[types.UploadResult](context.Background(), c, "/admin/broadcasts/upload-image", "image", "x.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/x.png", env.Data.URL)
	assert.Equal(t, "image", field)
	assert.Equal(t, "x.png", filename)
	assert.Equal(t, "PNGDATA", content)
}

func TestDownload(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="revenue-2026.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7 data"))
	})

	var buf bytes.Buffer
	n, name, err := Download(context.Background(), c, "/admin/analytics/export", &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(len("%PDF-1.7 data")), n)
	assert.Equal(t, "revenue-2026.pdf", name)
	assert.Equal(t, "%PDF-1.7 data", buf.String())
}

func TestDownloadFile(t *testing.T) {
	withHeader := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../report.csv"`)
		_, _ = w.Write([]byte("a,b\n"))
	}
	withoutHeader := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("a,b\n"))
	}

	t.Run("header name into directory", func(t *testing.T) {
		dir := t.TempDir()
		c, _ := newClient(t, withHeader)

		target, n, err := DownloadFile(context.Background(), c, "/admin/analytics/export", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "report.csv"), target)
		assert.Equal(t, int64(4), n)
	})

	t.Run("path segment fallback", func(t *testing.T) {
		dir := t.TempDir()
		c, _ := newClient(t, withoutHeader)

		target, _, err := DownloadFile(context.Background(), c, "/admin/analytics/export", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "export"), target)
	})

	t.Run("caller name wins", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "mine.csv")
		c, _ := newClient(t, withHeader)

		target, _, err := DownloadFile(context.Background(), c, "/admin/analytics/export", dest)
		require.NoError(t, err)
		assert.Equal(t, dest, target)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", string(data))
	})
}

func TestDownloadFile_InterruptedKeepsExistingFile(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("partial"))
	})
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(dest, []byte("precious"), 0o644))

	_, _, err := DownloadFile(context.Background(), c, "/admin/analytics/export", dest)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileWriteFailed, errors.CodeOf(err))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestDownloadFile_ErrorCreatesNothing(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	dir := t.TempDir()

	_, _, err := DownloadFile(context.Background(), c, "/admin/analytics/export", dir)
	require.Error(t, err)
	assert.True(t, errors.IsStatus(err, http.StatusNotFound))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownload_Error(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	var buf bytes.Buffer
	_, _, err := Download(context.Background(), c, "/admin/analytics/export", &buf)
	require.Error(t, err)
	assert.True(t, errors.IsStatus(err, http.StatusForbidden))
	assert.Zero(t, buf.Len())
}
