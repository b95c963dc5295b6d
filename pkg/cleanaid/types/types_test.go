package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Aliases(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantID    string
		wantName  string
		wantEmail string
	}{
		{
			name:      "canonical fields",
			body:      `{"id":"u1","name":"Ada","email":"ada@example.com"}`,
			wantID:    "u1",
			wantName:  "Ada",
			wantEmail: "ada@example.com",
		},
		{
			name:      "aliased fields",
			body:      `{"_id":"u2","fullName":"Grace Hopper","emailAddress":"grace@example.com"}`,
			wantID:    "u2",
			wantName:  "Grace Hopper",
			wantEmail: "grace@example.com",
		},
		{
			name:      "canonical wins over alias",
			body:      `{"id":"u3","_id":"ignored","name":"Linus","fullName":"Other"}`,
			wantID:    "u3",
			wantName:  "Linus",
			wantEmail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.wantID, u.ID)
			assert.Equal(t, tt.wantName, u.Name)
			assert.Equal(t, tt.wantEmail, u.Email)
		})
	}
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada", User{Name: "Ada", Email: "a@x"}.DisplayName())
	assert.Equal(t, "a@x", User{Email: "a@x"}.DisplayName())
}

func TestBusiness_Aliases(t *testing.T) {
	var b Business
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","businessName":"Fresh Folds","status":"pending"}`), &b))
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "Fresh Folds", b.DisplayName())
	assert.Equal(t, BusinessStatusPending, b.Status)
}

func TestNestedAliasesInSlice(t *testing.T) {
	var orders []Order
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"o1","status":"pending"},{"id":"o2","status":"ready"}]`), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)
}

func TestPayment_MethodAlias(t *testing.T) {
	var p Payment
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","paymentMethod":"card","amount":12.5,"status":"completed"}`), &p))
	assert.Equal(t, "card", p.Method)
	assert.Equal(t, 12.5, p.Amount)
}

func TestSignInResult_Aliases(t *testing.T) {
	var r SignInResult
	require.NoError(t, json.Unmarshal([]byte(`{"accessToken":"tok","user":{"_id":"a1","fullName":"Root","email":"root@x","role":"super_admin"}}`), &r))
	assert.Equal(t, "tok", r.Token)
	assert.Equal(t, "a1", r.Admin.ID)
	assert.Equal(t, "Root", r.Admin.DisplayName())
}

func TestEnvelope_OK(t *testing.T) {
	env := Envelope[[]User]{Success: false, Message: "denied"}
	assert.False(t, env.OK())
	assert.False(t, env.Paginated())

	env = Envelope[[]User]{Success: true, Pagination: &PaginationMeta{Page: Int(1)}}
	assert.True(t, env.OK())
	assert.True(t, env.Paginated())
}
