package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryClipboard struct {
	initErr  error
	writeErr error
	content  string
}

func (m *memoryClipboard) Init() error { return m.initErr }

func (m *memoryClipboard) Write(text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.content = text
	return nil
}

func TestClipboardService_Copy(t *testing.T) {
	board := &memoryClipboard{}
	service := NewClipboardService(board)
	assert.Equal(t, "clipboard", service.Name())

	assert.Error(t, service.Copy("early"))

	require.NoError(t, service.Initialize())
	assert.True(t, service.Available())
	require.NoError(t, service.Copy("echo hi"))
	assert.Equal(t, "echo hi", board.content)

	assert.Error(t, service.Copy("  "))
}

func TestClipboardService_Unavailable(t *testing.T) {
	service := NewClipboardService(&memoryClipboard{initErr: errors.New("no display")})

	require.NoError(t, service.Initialize())
	assert.False(t, service.Available())

	err := service.Copy("echo hi")
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
}

func TestClipboardService_WriteError(t *testing.T) {
	service := NewClipboardService(&memoryClipboard{writeErr: errors.New("denied")})
	require.NoError(t, service.Initialize())

	err := service.Copy("echo hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write to clipboard")
}
