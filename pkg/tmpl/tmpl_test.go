package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type song struct {
	ID       string
	Title    string
	Artist   string
	Duration string
}

func TestRender(t *testing.T) {
	s := song{ID: "a1", Title: "Yesterday", Artist: "The Beatles"}

	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "{{ .Title }} by {{ .Artist }}",
			data: s,
			want: "Yesterday by The Beatles",
		},
		{
			name: "map data",
			tmpl: "hello {{ .Name }}",
			data: map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "unknown field errors",
			tmpl:    "{{ .Album }}",
			data:    s,
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Title }",
			data:    s,
			wantErr: true,
		},
		{
			name: "upper and lower",
			tmpl: "{{ .Title | upper }} {{ .Artist | lower }}",
			data: s,
			want: "YESTERDAY the beatles",
		},
		{
			name: "pad shorter",
			tmpl: "[{{ .ID | pad 4 }}]",
			data: s,
			want: "[a1  ]",
		},
		{
			name: "pad truncates",
			tmpl: "[{{ .Title | pad 5 }}]",
			data: s,
			want: "[Yest…]",
		},
		{
			name: "pad counts runes",
			tmpl: "[{{ .Title | pad 5 }}]",
			data: song{Title: "Caf\u00e9"},
			want: "[Caf\u00e9 ]",
		},
		{
			name: "default on empty",
			tmpl: `{{ .Duration | default "-:--" }}`,
			data: s,
			want: "-:--",
		},
		{
			name: "default keeps value",
			tmpl: `{{ .Duration | default "-:--" }}`,
			data: song{Duration: "3:05"},
			want: "3:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Reuse(t *testing.T) {
	tpl, err := Parse("{{ .ID }}")
	require.NoError(t, err)

	for _, id := range []string{"a", "b"} {
		got, err := tpl.Execute(song{ID: id})
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}
