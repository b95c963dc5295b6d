package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

func TestNormalize_AliasedUsers(t *testing.T) {
	body := `{"users":[{"id":"u1","name":"Ada"}],"pagination":{"currentPage":1,"totalPages":3,"totalUsers":60}}`

	env, shape, err := Normalize[[]types.User]([]byte(body), "users")
	require.NoError(t, err)

	assert.Equal(t, ShapeAliased, shape)
	assert.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "u1", env.Data[0].ID)
	assert.Equal(t, "Ada", env.Data[0].Name)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.CurrentPageNumber())
	assert.Equal(t, 3, env.Pagination.TotalPageCount())
	assert.Equal(t, 60, env.Pagination.TotalItems())

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data":[{"id":"u1","name":"Ada","email":"","isVerified":false,"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}],
		"success":true,
		"pagination":{"currentPage":1,"totalPages":3,"totalUsers":60}
	}`, string(out))
}

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		alias       string
		wantShape   Shape
		wantSuccess bool
		wantLen     int
		wantMessage string
		wantPaged   bool
	}{
		{"wrapped", `{"data":[{"id":"1"}],"success":true,"message":"ok"}`, "", ShapeWrapped, true, 1, "ok", false},
		{"wrapped without success", `{"data":[{"id":"1"},{"id":"2"}]}`, "users", ShapeWrapped, true, 2, "", false},
		{"wrapped unsuccessful", `{"data":null,"success":false,"message":"denied"}`, "", ShapeWrapped, false, 0, "denied", false},
		{"wrapped with meta", `{"data":[],"meta":{"page":1,"limit":10,"total":0}}`, "", ShapeWrapped, true, 0, "", true},
		{"data wins over alias", `{"data":[{"id":"1"}],"users":[{"id":"x"},{"id":"y"}]}`, "users", ShapeWrapped, true, 1, "", false},
		{"aliased", `{"users":[{"id":"1"}],"pagination":{"page":1}}`, "users", ShapeAliased, true, 1, "", true},
		{"nested under data", `{"success":true,"data":{"users":[{"id":"1"},{"id":"2"}],"pagination":{"currentPage":1,"totalUsers":2}}}`, "users", ShapeWrapped, true, 2, "", true},
		{"nested with root pagination", `{"data":{"users":[{"id":"1"}]},"pagination":{"page":2}}`, "users", ShapeWrapped, true, 1, "", true},
		{"bare array", `[{"id":"1"},{"id":"2"},{"id":"3"}]`, "users", ShapeBare, true, 3, "", false},
		{"empty", ``, "", ShapeBare, true, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, shape, err := Normalize[[]types.User]([]byte(tt.body), tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)
			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Len(t, env.Data, tt.wantLen)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, tt.wantPaged, env.Paginated())
		})
	}
}

func TestNormalize_NestedPagination(t *testing.T) {
	body := `{"success":true,"message":"ok","data":{"users":[{"_id":"u1","fullName":"Ada"}],"pagination":{"currentPage":3,"totalPages":4,"totalUsers":31}},"pagination":{"page":1}}`
	env, shape, err := Normalize[[]types.User]([]byte(body), "users")
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, shape)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "u1", env.Data[0].ID)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, 3, env.Pagination.CurrentPageNumber(), "pagination next to the list wins")
	assert.Equal(t, 31, env.Pagination.TotalItems())
}

func TestNormalize_BareObject(t *testing.T) {
	env, shape, err := Normalize[types.User]([]byte(`{"_id":"u9","fullName":"Grace"}`), "")
	require.NoError(t, err)
	assert.Equal(t, ShapeBare, shape)
	assert.True(t, env.Success)
	assert.Equal(t, "u9", env.Data.ID)
	assert.Equal(t, "Grace", env.Data.Name)
}

func TestNormalize_AliasNotRequested(t *testing.T) {
	// Without the alias key the object is bare, and an object is not a slice.
	_, _, err := Normalize[[]types.User]([]byte(`{"users":[{"id":"1"}]}`), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEnvelopeInvalid, errors.CodeOf(err))
}

func TestNormalize_UnsuccessfulIgnoresBadData(t *testing.T) {
	env, _, err := Normalize[[]types.User]([]byte(`{"success":false,"data":{"reason":"x"},"message":"nope"}`), "")
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Nil(t, env.Data)
	assert.Equal(t, "nope", env.Message)
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, _, err := Normalize[[]types.User]([]byte(`<html>gateway</html>`), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEnvelopeInvalid, errors.CodeOf(err))
}

func TestNormalize_TypeMismatch(t *testing.T) {
	_, _, err := Normalize[types.UserStats]([]byte(`{"data":[1,2,3],"success":true}`), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEnvelopeInvalid, errors.CodeOf(err))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "wrapped", ShapeWrapped.String())
	assert.Equal(t, "aliased", ShapeAliased.String())
	assert.Equal(t, "bare", ShapeBare.String())
	assert.Equal(t, "unknown", Shape(42).String())
}
