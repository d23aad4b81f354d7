package preview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockDeliversThroughHandle(t *testing.T) {
	c := NewClock()
	defer c.Close()

	ran := false
	c.AfterFunc(5*time.Millisecond, func() { ran = true })

	msg := c.Wait()()
	require.IsType(t, fireMsg{}, msg)
	assert.False(t, ran, "callbacks only run from Handle")

	next, ok := c.Handle(msg)
	assert.True(t, ok)
	assert.NotNil(t, next)
	assert.True(t, ran)
}

func TestClockStopAfterExpiry(t *testing.T) {
	c := NewClock()
	defer c.Close()

	ran := false
	tm := c.AfterFunc(time.Millisecond, func() { ran = true })
	msg := c.Wait()()

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Handle(msg)
	assert.False(t, ran)
}

func TestClockStopBeforeExpiry(t *testing.T) {
	c := NewClock()
	defer c.Close()

	tm := c.AfterFunc(time.Hour, func() { t.Fatal("stopped timer ran") })
	assert.True(t, tm.Stop())
}

func TestClockIgnoresOtherMessages(t *testing.T) {
	c := NewClock()
	defer c.Close()

	cmd, ok := c.Handle(tea.WindowSizeMsg{})
	assert.False(t, ok)
	assert.Nil(t, cmd)
}

func TestClockClose(t *testing.T) {
	c := NewClock()
	c.AfterFunc(time.Hour, func() {})
	c.Close()
	c.Close()

	assert.Nil(t, c.Wait()())
}
