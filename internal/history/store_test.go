package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/govalues/bigint"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func valid(s string) bigint.NullBigInteger {
	return bigint.NullBigInteger{BigInteger: bigint.MustParse(s), Valid: true}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ", nil)
	require.Error(t, err)
}

func TestStore_AddList(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id1, err := s.Add(ctx, Record{Expr: "25!", Result: valid("15511210043330985984000000"), CreatedAt: at})
	assert.NoError(err)
	id2, err := s.Add(ctx, Record{Expr: "1 / 0", Error: "division by zero", CreatedAt: at.Add(time.Second)})
	assert.NoError(err)
	id3, err := s.Add(ctx, Record{Expr: "-2 ^ 3", Result: valid("-8")})
	assert.NoError(err)
	assert.Less(id1, id2)
	assert.Less(id2, id3)

	all, err := s.List(ctx, 0)
	assert.NoError(err)
	assert.Len(all, 3)
	assert.Equal(id1, all[0].ID)
	assert.Equal("25!", all[0].Expr)
	assert.True(all[0].Result.Valid)
	assert.Equal("15511210043330985984000000", all[0].Result.BigInteger.String())
	assert.Equal(at, all[0].CreatedAt)
	assert.False(all[1].Result.Valid)
	assert.Equal("division by zero", all[1].Error)
	assert.Equal("-8", all[2].Result.BigInteger.String())

	last, err := s.List(ctx, 2)
	assert.NoError(err)
	assert.Len(last, 2)
	assert.Equal(id2, last[0].ID)
	assert.Equal(id3, last[1].ID)
}

func TestStore_AddErrors(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Add(ctx, Record{Expr: " ", Result: valid("1")})
	require.Error(t, err)
	_, err = s.Add(ctx, Record{Expr: "1"})
	require.Error(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Add(canceled, Record{Expr: "1", Result: valid("1")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore_Clear(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	for _, expr := range []string{"1", "2", "3"} {
		_, err := s.Add(ctx, Record{Expr: expr, Result: valid(expr)})
		assert.NoError(err)
	}
	n, err := s.Clear(ctx)
	assert.NoError(err)
	assert.Equal(int64(3), n)

	all, err := s.List(ctx, 0)
	assert.NoError(err)
	assert.Empty(all)
}

func TestStore_ExportImport(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()
	src := openTestStore(t)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := src.Add(ctx, Record{Expr: "2 ^ 100", Result: valid("1267650600228229401496703205376"), CreatedAt: at})
	assert.NoError(err)
	_, err = src.Add(ctx, Record{Expr: "(-1)!", Error: "invalid argument", CreatedAt: at})
	assert.NoError(err)

	var buf bytes.Buffer
	n, err := src.Export(ctx, &buf)
	assert.NoError(err)
	assert.Equal(2, n)

	dst := openTestStore(t)
	_, err = dst.Add(ctx, Record{Expr: "0", Result: valid("0")})
	assert.NoError(err)

	n, err = dst.Import(ctx, bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Equal(2, n)

	all, err := dst.List(ctx, 0)
	assert.NoError(err)
	assert.Len(all, 3)
	assert.Equal("2 ^ 100", all[1].Expr)
	assert.Equal("1267650600228229401496703205376", all[1].Result.BigInteger.String())
	assert.Equal(at, all[1].CreatedAt)
	assert.Equal("(-1)!", all[2].Expr)
	assert.False(all[2].Result.Valid)
	assert.Equal("invalid argument", all[2].Error)
}

func TestStore_ImportErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("version", func(t *testing.T) {
		s := openTestStore(t)
		data, err := msgpack.Marshal(exportHeader{Version: 99})
		require.NoError(t, err)
		_, err = s.Import(ctx, bytes.NewReader(data))
		require.ErrorIs(t, err, ErrExportVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		s := openTestStore(t)
		data, err := msgpack.Marshal(exportHeader{Version: exportVersion, Count: 2})
		require.NoError(t, err)
		more, err := msgpack.Marshal(Record{Expr: "1", Result: valid("1")})
		require.NoError(t, err)
		_, err = s.Import(ctx, bytes.NewReader(append(data, more...)))
		require.Error(t, err)

		all, err := s.List(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("garbage", func(t *testing.T) {
		s := openTestStore(t)
		_, err := s.Import(ctx, bytes.NewReader([]byte{0xc1}))
		require.Error(t, err)
	})
}
