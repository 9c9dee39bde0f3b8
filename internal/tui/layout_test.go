package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "standard terminal", width: 120, height: 40},
		{name: "wide terminal", width: 200, height: 50},
		{name: "narrow terminal", width: 80, height: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel()
			m.windowWidth = tt.width
			m.windowHeight = tt.height

			layout := m.computeLayout()

			assert.Equal(t, tt.width, layout.width)
			assert.Equal(t, tt.height, layout.height)

			// Left + gap + right should fill the full width.
			assert.Equal(t, tt.width, layout.leftWidth+layout.gapX+layout.rightWidth)

			// Right column splits into refs on top and log below.
			assert.Equal(t, layout.bodyHeight, layout.rightTopHeight+layout.gapY+layout.rightBottomHeight)

			// Minimum constraints.
			assert.GreaterOrEqual(t, layout.leftWidth, minLeftPaneWidth)
			assert.GreaterOrEqual(t, layout.rightTopHeight, 6)
			assert.GreaterOrEqual(t, layout.rightBottomHeight, 4)

			// Inner dimensions should be positive.
			assert.Positive(t, layout.leftInnerWidth)
			assert.Positive(t, layout.rightInnerWidth)
			assert.Positive(t, layout.leftInnerHeight)
			assert.Positive(t, layout.rightTopInnerHeight)
			assert.Positive(t, layout.rightBottomInnerHeight)
		})
	}
}

func TestComputeLayoutDefaultsBeforeFirstResize(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	layout := m.computeLayout()
	assert.Equal(t, 120, layout.width)
	assert.Equal(t, 40, layout.height)
}

func TestComputeLayoutReservesErrorRow(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.windowWidth = 120
	m.windowHeight = 40

	quiet := m.computeLayout()
	assert.Zero(t, quiet.errorHeight)

	m.snap.LastError = errors.New("boom")
	loud := m.computeLayout()
	assert.Equal(t, 1, loud.errorHeight)
	assert.Equal(t, quiet.bodyHeight-1, loud.bodyHeight)
}

func TestComputeLayoutFocusShiftsRatio(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.windowWidth = 160
	m.windowHeight = 40

	m.focusedPane = paneFiles
	filesFocused := m.computeLayout()

	m.focusedPane = paneRefs
	refsFocused := m.computeLayout()

	assert.Greater(t, filesFocused.leftWidth, refsFocused.leftWidth,
		"files pane should widen when focused")
	assert.Greater(t, refsFocused.rightTopHeight, filesFocused.rightTopHeight,
		"refs pane should grow when focused")

	m.focusedPane = paneLog
	logFocused := m.computeLayout()
	assert.Greater(t, logFocused.rightBottomHeight, filesFocused.rightBottomHeight,
		"log pane should grow when focused")
}

func TestUpdateFileColumnsFillsWidthExactly(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	for _, width := range []int{30, 52, 80, 117} {
		m.updateFileColumns(width)

		total := 0
		for _, col := range m.filesTable.Columns() {
			total += col.Width
		}
		// The table inserts 3 spaces between the two columns.
		assert.Equal(t, width, total+3, "width %d", width)
	}
}

func TestUpdateLogColumnsFillsWidthExactly(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	for _, width := range []int{40, 64, 100} {
		m.updateLogColumns(width)

		total := 0
		for _, col := range m.logTable.Columns() {
			total += col.Width
		}
		assert.Equal(t, width, total+6, "width %d", width)
	}
}
