package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"empty", 0, 4, "  0%"},
		{"half", 0.5, 4, " 50%"},
		{"clamps above one", 1.5, 4, "100%"},
		{"clamps below zero", -1, 4, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.True(t, strings.HasSuffix(got, tt.want), got)
			assert.Contains(t, got, "[")
		})
	}
}

func TestRenderCategoryBar(t *testing.T) {
	got := RenderCategoryBar(domain.CategoryWork, 50, 40, 10)
	assert.True(t, strings.HasPrefix(got, "work "))
	assert.Contains(t, got, " 50%")
	assert.Contains(t, got, "/ 40%")
	assert.Contains(t, got, targetMark)
	assert.Equal(t, 4, strings.Count(got, filledBlock), "five filled cells minus the target marker")
}

func TestRenderBreakdown_CanonicalOrder(t *testing.T) {
	out := RenderBreakdown(domain.Breakdown{domain.CategoryLearning: 100}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, len(domain.Categories))
	for i, c := range domain.Categories {
		assert.True(t, strings.HasPrefix(lines[i], string(c)), lines[i])
	}
	assert.Contains(t, lines[4], "100%")
}
