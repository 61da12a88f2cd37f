package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/batch"
	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		d, sep, want string
	}{
		{"0", ",", "0"},
		{"123", ",", "123"},
		{"-123", ",", "-123"},
		{"1234", ",", "1,234"},
		{"-1234567", ",", "-1,234,567"},
		{"123456", "_", "123_456"},
		{"1000000000000000000", " ", "1 000 000 000 000 000 000"},
		{"1234567", "", "1234567"},
	}
	for _, tt := range tests {
		got := Group(bigint.MustParse(tt.d), tt.sep)
		require.Equal(t, tt.want, got, "Group(%q, %q)", tt.d, tt.sep)
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, UseColor(config.ColorAlways, &buf))
	require.False(t, UseColor(config.ColorNever, &buf))
	require.False(t, UseColor(config.ColorAuto, &buf))
}

func TestPrinter_Value(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, Options{Group: ","})
	p.Value(bigint.MustParse("-1234567"))
	p.Error(errors.New("boom"))
	require.Equal(t, "-1,234,567\n", out.String())
	require.Equal(t, "error: boom\n", errOut.String())
}

func TestPrinter_Color(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, Options{Color: true})
	p.Value(bigint.MustParse("42"))
	require.Contains(t, out.String(), "\x1b[")
	require.Contains(t, out.String(), "42")
}

func TestPrinter_Results(t *testing.T) {
	assert := require.New(t)

	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, Options{})
	p.Results([]batch.Result{
		{Line: 1, Expr: "1 + 1", Value: bigint.Two},
		{Line: 10, Expr: "1 / 0", Err: errors.New("division by zero")},
		{Line: 12, Expr: "10", Value: bigint.Ten},
	})
	assert.Equal(" 1: 2\n12: 10\n", out.String())
	assert.Equal("10: error: division by zero\n", errOut.String())

	out.Reset()
	p.Results([]batch.Result{{Line: 1, Value: bigint.Ten}})
	assert.Equal("10\n", out.String())
}

func TestPrinter_History(t *testing.T) {
	assert := require.New(t)

	var out bytes.Buffer
	p := NewPrinter(&out, &out, Options{})
	p.History(nil, 0)
	assert.Equal("no history\n", out.String())

	out.Reset()
	p.History([]history.Record{
		{ID: 1, Expr: "2 ^ 10", Result: bigint.NullBigInteger{BigInteger: bigint.MustParse("1024"), Valid: true}},
		{ID: 12, Expr: "１＋１", Result: bigint.NullBigInteger{BigInteger: bigint.Two, Valid: true}},
		{ID: 13, Expr: "1 / 0", Error: "division by zero"},
	}, 0)
	assert.Equal(
		"ID  EXPRESSION  RESULT\n"+
			" 1  2 ^ 10      1024\n"+
			"12  １＋１      2\n"+
			"13  1 / 0       error: division by zero\n",
		out.String())
}
