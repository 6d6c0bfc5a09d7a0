package meta

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGdataStoreRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := OpenGdataStore(fmt.Sprintf("groggy_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSave)

	want := Save{Currency: 12, Levels: map[string]int{"vitality": 1}}
	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSave)
}
