package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/profile"
)

func TestParseSetValues(t *testing.T) {
	tests := []struct {
		name    string
		sets    []string
		want    map[string]string
		wantErr string
	}{
		{
			name: "single value",
			sets: []string{"username=jane_doe"},
			want: map[string]string{"username": "jane_doe"},
		},
		{
			name: "multiple values",
			sets: []string{"username=jane_doe", "favoriteGenre=Jazz"},
			want: map[string]string{"username": "jane_doe", "favoriteGenre": "Jazz"},
		},
		{
			name: "value with equals sign",
			sets: []string{"profileImageUri=https://x.test/a?b=c"},
			want: map[string]string{"profileImageUri": "https://x.test/a?b=c"},
		},
		{
			name: "empty value",
			sets: []string{"email="},
			want: map[string]string{"email": ""},
		},
		{
			name: "later wins",
			sets: []string{"email=a@b.co", "email=c@d.co"},
			want: map[string]string{"email": "c@d.co"},
		},
		{
			name:    "missing equals",
			sets:    []string{"username"},
			wantErr: "invalid --set format",
		},
		{
			name:    "empty name",
			sets:    []string{"=value"},
			wantErr: "empty name",
		},
		{
			name:    "unknown field",
			sets:    []string{"theme=dark"},
			wantErr: "unknown profile field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetValues(tt.sets)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	base := profile.Profile{Username: "old", Email: "old@example.com", Valid: true}

	got := Apply(base, map[string]string{
		FieldUsername: "jane_doe",
		FieldGenre:    "Rock",
		FieldImage:    "file:///a.jpg",
	})

	assert.Equal(t, "jane_doe", got.Username)
	assert.Equal(t, "old@example.com", got.Email)
	assert.Equal(t, "Rock", got.FavoriteGenre)
	assert.Equal(t, "file:///a.jpg", got.ImageURI)
	assert.Equal(t, "old", base.Username, "input is not modified")
}

func TestNewProfileForm_BindsFields(t *testing.T) {
	p := profile.Profile{Username: "jane_doe"}
	form := NewProfileForm(&p)
	require.NotNil(t, form)
	assert.Equal(t, "jane_doe", p.Username)
}
