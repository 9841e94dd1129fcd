package relaypager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr string
	}{
		{
			name: "full",
			data: `
cursor:
  limit: 20
pages:
  limit: 50
  include_page_count: true
`,
			want: Config{
				Cursor: CursorConfig{Limit: 20},
				Pages:  PageConfig{Limit: 50, IncludePageCount: true},
			},
		},
		{
			name: "unlimited cursor",
			data: "cursor:\n  unlimited: true\n",
			want: Config{Cursor: CursorConfig{Unlimited: true}},
		},
		{
			name: "empty document",
			data: "",
			want: Config{},
		},
		{
			name:    "unknown key",
			data:    "cursor:\n  limt: 20\n",
			wantErr: "field limt not found",
		},
		{
			name:    "invalid cursor limit",
			data:    "cursor:\n  limit: -4\n",
			wantErr: "cursor: invalid option 'limit'",
		},
		{
			name:    "invalid page limit",
			data:    "pages:\n  limit: -1\n",
			wantErr: "pages: invalid option 'limit'",
		},
		{
			name:    "malformed yaml",
			data:    "cursor: [",
			wantErr: "cannot parse pagination config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.data))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseConfig_InvalidLimitIsSentinel(t *testing.T) {
	_, err := ParseConfig([]byte("pages:\n  limit: -1\n"))
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func Test_LoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagination.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pages:\n  limit: 25\n  unlimited: false\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Pages.Limit)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "cannot read pagination config")
}

func Test_DefaultsFromConfig(t *testing.T) {
	defaults := DefaultsFromConfig[tRow](Config{
		Cursor: CursorConfig{Unlimited: true},
		Pages:  PageConfig{Limit: 4, IncludePageCount: true},
	})

	assert.Equal(t, NoLimit, defaults.CursorLimit)
	assert.Equal(t, LimitOf(4), defaults.PageLimit)
	assert.True(t, defaults.IncludePageCount)
	assert.Nil(t, defaults.Codec)

	assert.True(t, DefaultsFromConfig[tRow](Config{}).CursorLimit.IsZero())

	p := New[tRow](newIDBackend(newRows(10))).WithDefaults(defaults)
	assert.Equal(t, defaults, p.GetDefaults())
}
