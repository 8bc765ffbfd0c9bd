package code

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SixDigitsInRange(t *testing.T) {
	g := NewGenerator(time.Hour, 30*24*time.Hour)
	for i := 0; i < 200; i++ {
		c, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, c, 6)
		n, err := strconv.Atoi(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	g := NewGenerator(time.Hour, time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := g.Generate()
		require.NoError(t, err)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestExpiries(t *testing.T) {
	g := NewGenerator(time.Hour, 30*24*time.Hour)
	now := time.Now().UTC()

	codeExp := g.CodeExpiry()
	assert.WithinDuration(t, now.Add(time.Hour), codeExp, 2*time.Second)

	sessExp := g.SessionExpiry()
	assert.WithinDuration(t, now.Add(30*24*time.Hour), sessExp, 2*time.Second)
}

func TestIsExpired(t *testing.T) {
	g := NewGenerator(time.Hour, time.Hour)
	assert.True(t, g.IsExpired(time.Now().Add(-time.Minute).Unix()))
	assert.False(t, g.IsExpired(time.Now().Add(time.Minute).Unix()))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "123-456", Format("123456"))
	assert.Equal(t, "12345", Format("12345"))
	assert.Equal(t, "", Format(""))
}
