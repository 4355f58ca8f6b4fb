package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		cols  int
		want  [][]int
	}{
		{"exact rows", []int{1, 2, 3, 4, 5, 6}, 3, [][]int{{1, 2, 3}, {4, 5, 6}}},
		{"short last row", []int{1, 2, 3, 4}, 3, [][]int{{1, 2, 3}, {4}}},
		{"fewer than cols", []int{1, 2}, 5, [][]int{{1, 2}}},
		{"empty", nil, 3, [][]int{}},
		{"zero cols is one column", []int{1, 2}, 0, [][]int{{1}, {2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Layout(tt.items, tt.cols))
		})
	}
}

func TestLayout_RowsDoNotAlias(t *testing.T) {
	items := []int{1, 2, 3, 4}
	rows := Layout(items, 2)
	rows[0] = append(rows[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}
