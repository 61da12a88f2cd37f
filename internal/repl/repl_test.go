package repl

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/calc"
	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
)

type memRecorder struct {
	records []history.Record
	err     error
}

func (r *memRecorder) Add(_ context.Context, rec history.Record) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.records = append(r.records, rec)
	return int64(len(r.records)), nil
}

func newTestModel(t *testing.T, opts Options) *model {
	t.Helper()
	e, err := calc.NewEvaluator(config.NotationInfix, nil)
	require.NoError(t, err)
	return newModel(context.Background(), e, opts)
}

func typeLine(m *model, s string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModel_Evaluates(t *testing.T) {
	assert := require.New(t)

	rec := &memRecorder{}
	m := newTestModel(t, Options{Group: ",", Recorder: rec})

	assert.Nil(typeLine(m, "2 ^ 20"))
	assert.Nil(typeLine(m, "1 / 0"))

	assert.Len(m.entries, 2)
	assert.Equal("1,048,576", m.entries[0].result)
	assert.NoError(m.entries[0].err)
	assert.ErrorIs(m.entries[1].err, bigint.ErrDivisionByZero)
	assert.Empty(m.input.Value())

	assert.Len(rec.records, 2)
	assert.Equal("2 ^ 20", rec.records[0].Expr)
	assert.Equal("1048576", rec.records[0].Result.BigInteger.String())
	assert.False(rec.records[1].Result.Valid)
	assert.Contains(rec.records[1].Error, "division by zero")

	view := m.View()
	assert.Contains(view, "1,048,576")
	assert.Contains(view, "division by zero")
}

func TestModel_Recall(t *testing.T) {
	assert := require.New(t)

	m := newTestModel(t, Options{})
	typeLine(m, "1 + 1")
	typeLine(m, "2 + 2")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal("2 + 2", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal("1 + 1", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal("1 + 1", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(m.input.Value())
}

func TestModel_Commands(t *testing.T) {
	assert := require.New(t)

	m := newTestModel(t, Options{Keep: 2})
	typeLine(m, "1")
	typeLine(m, "2")
	typeLine(m, "3")
	assert.Len(m.entries, 2)
	assert.Equal("2", m.entries[0].result)

	assert.Nil(typeLine(m, ":clear"))
	assert.Empty(m.entries)

	cmd := typeLine(m, ":quit")
	assert.NotNil(cmd)
	assert.IsType(tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.IsType(tea.QuitMsg{}, cmd())
}

func TestModel_RecorderFailureIsNotFatal(t *testing.T) {
	m := newTestModel(t, Options{Recorder: &memRecorder{err: errors.New("disk full")}})
	typeLine(m, "6 * 7")
	require.Len(t, m.entries, 1)
	require.Equal(t, "42", m.entries[0].result)
}
