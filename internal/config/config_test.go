package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/tgsms/internal/testutil"
)

const testPath = "telegram_sms_config.json"

func TestMain(m *testing.M) {
	testutil.VerifyTestMain(m)
}

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewStore(fs, testPath), fs
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	t.Parallel()
	ctx, getLogs := testutil.NewTestContext(t)
	store, _ := newTestStore(t)

	cfg := store.Load(ctx)

	require.NotNil(t, cfg)
	assert.Equal(t, &Configuration{}, cfg)
	assert.False(t, cfg.HasToken())
	assert.Contains(t, getLogs(), "config file not found")
}

func TestLoadInvalidJSONReturnsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "{not json"},
		{name: "array", content: `["a","b"]`},
		{name: "wrong field type", content: `{"contacts": "555-0100"}`},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.NewTestContext(t)
			store, fs := newTestStore(t)
			require.NoError(t, afero.WriteFile(fs, testPath, []byte(tt.content), 0o600))

			assert.Equal(t, &Configuration{}, store.Load(ctx))
		})
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.NewTestContext(t)
	store, _ := newTestStore(t)

	saved := &Configuration{
		Token:       "123:abc",
		PhoneNumber: "555-0199",
		Message:     "hello",
		Proxy:       "https://example.com/hook",
		HTTPProxy:   "http://proxy.local:3128",
		Contacts:    []string{"555-0100", "555-0101"},
	}
	require.NoError(t, store.Save(ctx, saved))

	assert.Equal(t, saved, store.Load(ctx))
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.NewTestContext(t)
	store, fs := newTestStore(t)

	require.NoError(t, store.Save(ctx, &Configuration{Token: "T1", Contacts: []string{"A"}}))

	data, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"token\": \"T1\",\n  \"contacts\": [\n    \"A\"\n  ]\n}\n", string(data))
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.NewTestContext(t)
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte(`{"token":"old","message":"keep?"}`), 0o600))

	require.NoError(t, store.Save(ctx, &Configuration{Token: "new"}))

	assert.Equal(t, &Configuration{Token: "new"}, store.Load(ctx))
}

func TestSaveReadOnlyFs(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.NewTestContext(t)
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), testPath)

	err := store.Save(ctx, &Configuration{Token: "T1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestAddContactPreservesOrder(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.NewTestContext(t)
	store, _ := newTestStore(t)

	for _, contact := range []string{"555-0100", "555-0101"} {
		cfg := store.Load(ctx)
		cfg.AddContact(contact)
		require.NoError(t, store.Save(ctx, cfg))
	}

	assert.Equal(t, []string{"555-0100", "555-0101"}, store.Load(ctx).Contacts)
}

func TestRemoveContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial []string
		want    []string
		index   int
		wantErr bool
	}{
		{name: "first", initial: []string{"a", "b", "c"}, index: 0, want: []string{"b", "c"}},
		{name: "middle", initial: []string{"a", "b", "c"}, index: 1, want: []string{"a", "c"}},
		{name: "last", initial: []string{"a", "b", "c"}, index: 2, want: []string{"a", "b"}},
		{name: "only", initial: []string{"a"}, index: 0, want: nil},
		{name: "out of range", initial: []string{"a", "b", "c"}, index: 3, want: []string{"a", "b", "c"}, wantErr: true},
		{name: "negative", initial: []string{"a", "b", "c"}, index: -1, want: []string{"a", "b", "c"}, wantErr: true},
		{name: "empty list", initial: nil, index: 0, want: nil, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Configuration{Contacts: tt.initial}

			err := cfg.RemoveContact(tt.index)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIndex)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, cfg.Contacts)
		})
	}
}

func TestRemoveContactDoesNotAliasOriginal(t *testing.T) {
	t.Parallel()
	original := []string{"a", "b", "c"}
	cfg := &Configuration{Contacts: original}

	require.NoError(t, cfg.RemoveContact(0))

	assert.Equal(t, []string{"a", "b", "c"}, original)
}

func TestContactMapIsContiguous(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{Contacts: []string{"A", "B", "C"}}
	require.NoError(t, cfg.RemoveContact(1))

	assert.Equal(t, map[int]string{0: "A", 1: "C"}, cfg.ContactMap())
}

func TestHasToken(t *testing.T) {
	t.Parallel()
	assert.False(t, (&Configuration{}).HasToken())
	assert.False(t, (&Configuration{Token: "  "}).HasToken())
	assert.True(t, (&Configuration{Token: "T1"}).HasToken())
}
