package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	size, err := s.Put(ctx, "finance/2026/finanzas-2026-10.xlsx", "application/octet-stream", strings.NewReader("report"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)

	rc, err := s.Get(ctx, "finance/2026/finanzas-2026-10.xlsx")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "report", string(body))

	require.NoError(t, s.Delete(ctx, "finance/2026/finanzas-2026-10.xlsx"))
	_, err = s.Get(ctx, "finance/2026/finanzas-2026-10.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put(ctx, "a.xlsx", "", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = s.Put(ctx, "a.xlsx", "", strings.NewReader("second"))
	require.NoError(t, err)

	rc, err := s.Get(ctx, "a.xlsx")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(body))
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(base, "archive"))
	require.NoError(t, err)

	_, err = s.Put(ctx, "../../escape.txt", "", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "archive", "escape.txt"))
	assert.NoError(t, err)
}

func TestLocalStorage_RejectsEmptyKey(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "  ", "", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Delete(context.Background(), "missing.xlsx"))
}

func TestNewStorage_Modes(t *testing.T) {
	log := zap.NewNop()

	s, err := NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, log)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(&config.StorageConfig{Mode: "azure"}, log)
	assert.Error(t, err)

	_, err = NewStorage(&config.StorageConfig{Mode: "ftp"}, log)
	assert.Error(t, err)
}
