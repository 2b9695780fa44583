package market

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,open,high,low,close,volume,rsi
2024-01-02,100,101,99,100.5,1000,
2024-01-03,100.5,102,100,101.2,1100,28.4
2024-01-04,101.2,103,101,102.7,900,33.9
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	s, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, 100.5, s.Bar(0).Close)
	assert.Equal(t, 1100.0, s.Bar(1).Volume)
	assert.Equal(t, "2024-01-04", s.Bar(2).Date.Format("2006-01-02"))

	rsi, ok := s.Indicator("rsi")
	require.True(t, ok)
	assert.True(t, math.IsNaN(rsi[0]))
	assert.InDelta(t, 28.4, rsi[1], 1e-9)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	t.Run("wrong header", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader("time,open,high,low,close,volume\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "date")
	})

	t.Run("short header", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader("date,open,close\n"))
		assert.Error(t, err)
	})

	t.Run("bad price", func(t *testing.T) {
		t.Parallel()
		csv := "date,open,high,low,close,volume\n2024-01-02,abc,101,99,100,1000\n"
		_, err := ReadCSV(strings.NewReader(csv))
		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		t.Parallel()
		csv := "date,open,high,low,close,volume\n01/02/2024,100,101,99,100,1000\n"
		_, err := ReadCSV(strings.NewReader(csv))
		assert.Error(t, err)
	})

	t.Run("out of order bars rejected", func(t *testing.T) {
		t.Parallel()
		csv := "date,open,high,low,close,volume\n" +
			"2024-01-03,100,101,99,100,1000\n" +
			"2024-01-02,100,101,99,100,1000\n"
		_, err := ReadCSV(strings.NewReader(csv))
		assert.Error(t, err)
	})
}
