package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		part, total int64
		expected    string
	}{
		{5, 100, "5.00%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{0, 100, "0.00%"},
		{7, 0, "0.00%"},
		{100, 100, "100.00%"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatPercentage(test.part, test.total), "%d/%d", test.part, test.total)
	}
}

func TestSumInto(t *testing.T) {
	dst := []int64{1, 2}
	assert.NoError(t, SumInto(dst, []int64{3, 4}))
	assert.Equal(t, []int64{4, 6}, dst)

	assert.Error(t, SumInto(dst, []int64{1}))
}

func TestLast(t *testing.T) {
	assert.EqualValues(t, 0, Last(nil))
	assert.EqualValues(t, 9, Last([]int64{1, 5, 9}))
}

func TestToPoints(t *testing.T) {
	assert.Equal(t, []float64{0, 1.5e3}, ToPoints([]int64{0, 1500}))
}
