package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    EventRef
		wantErr error
	}{
		{"digits are an id", "42", EventRef{Kind: EventRefByID, ID: 42}, nil},
		{"surrounding space", " 7 ", EventRef{Kind: EventRefByID, ID: 7}, nil},
		{
			"uuid is an invite code",
			"0b9f3c1e-5a8e-4c2b-9d3e-1f2a3b4c5d6e",
			EventRef{Kind: EventRefByInviteCode, InviteCode: "0b9f3c1e-5a8e-4c2b-9d3e-1f2a3b4c5d6e"},
			nil,
		},
		{"mixed is an invite code", "12ab", EventRef{Kind: EventRefByInviteCode, InviteCode: "12ab"}, nil},
		{"negative is an invite code", "-1", EventRef{Kind: EventRefByInviteCode, InviteCode: "-1"}, nil},
		{"empty", "", EventRef{}, ErrInvalidInput},
		{"overflow", "99999999999999999999999", EventRef{}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventRef(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLooseString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    LooseString
		wantErr bool
	}{
		{`"12"`, "12", false},
		{`12`, "12", false},
		{`" abc "`, "abc", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got LooseString
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLooseString_Int64(t *testing.T) {
	v, ok := LooseString("15").Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(15), v)

	_, ok = LooseString("x1").Int64()
	assert.False(t, ok)

	_, ok = LooseString("").Int64()
	assert.False(t, ok)
}

func TestActor(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.False(t, Anonymous().Is(0))
	a := UserActor(3)
	assert.True(t, a.Authenticated())
	assert.True(t, a.Is(3))
	assert.False(t, a.Is(4))
}
