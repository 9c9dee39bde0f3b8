package tui

import (
	"github.com/charmbracelet/bubbles/table"
)

const (
	minLeftPaneWidth  = 28
	minRightPaneWidth = 30
)

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width        int
	height       int
	headerHeight int
	footerHeight int
	errorHeight  int
	bodyHeight   int
	gapX         int
	gapY         int

	leftWidth       int
	rightWidth      int
	leftInnerWidth  int
	rightInnerWidth int
	leftInnerHeight int

	rightTopHeight         int
	rightBottomHeight      int
	rightTopInnerHeight    int
	rightBottomInnerHeight int
}

// setWindowSize updates the window dimensions and applies the layout.
func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.applyLayout(m.computeLayout())
}

// computeLayout calculates the layout dimensions based on window size
// and the focused pane.
func (m *Model) computeLayout() layoutDims {
	width := m.windowWidth
	height := m.windowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	errorHeight := 0
	if m.snap.LastError != nil {
		errorHeight = 1
	}
	gapX := 1
	gapY := 1

	bodyHeight := max(height-headerHeight-footerHeight-errorHeight, 8)

	leftRatio := 0.50
	switch m.focusedPane {
	case paneFiles:
		leftRatio = 0.55
	case paneRefs, paneLog:
		leftRatio = 0.40
	}

	leftWidth := int(float64(width-gapX) * leftRatio)
	rightWidth := width - leftWidth - gapX
	if leftWidth < minLeftPaneWidth {
		leftWidth = minLeftPaneWidth
		rightWidth = width - leftWidth - gapX
	}
	if rightWidth < minRightPaneWidth {
		rightWidth = minRightPaneWidth
		leftWidth = width - rightWidth - gapX
	}
	if leftWidth < minLeftPaneWidth {
		leftWidth = minLeftPaneWidth
	}
	if leftWidth+rightWidth+gapX > width {
		rightWidth = width - leftWidth - gapX
	}
	if rightWidth < 0 {
		rightWidth = 0
	}

	topRatio := 0.55
	switch m.focusedPane {
	case paneRefs:
		topRatio = 0.70
	case paneLog:
		topRatio = 0.35
	}

	rightTopHeight := max(int(float64(bodyHeight-gapY)*topRatio), 6)
	rightBottomHeight := bodyHeight - rightTopHeight - gapY
	if rightBottomHeight < 4 {
		rightBottomHeight = 4
		rightTopHeight = bodyHeight - rightBottomHeight - gapY
	}

	paneFrameX := m.basePaneStyle().GetHorizontalFrameSize()
	paneFrameY := m.basePaneStyle().GetVerticalFrameSize()

	return layoutDims{
		width:        width,
		height:       height,
		headerHeight: headerHeight,
		footerHeight: footerHeight,
		errorHeight:  errorHeight,
		bodyHeight:   bodyHeight,
		gapX:         gapX,
		gapY:         gapY,

		leftWidth:       leftWidth,
		rightWidth:      rightWidth,
		leftInnerWidth:  max(1, leftWidth-paneFrameX),
		rightInnerWidth: max(1, rightWidth-paneFrameX),
		leftInnerHeight: max(1, bodyHeight-paneFrameY),

		rightTopHeight:         rightTopHeight,
		rightBottomHeight:      rightBottomHeight,
		rightTopInnerHeight:    max(1, rightTopHeight-paneFrameY),
		rightBottomInnerHeight: max(1, rightBottomHeight-paneFrameY),
	}
}

// applyLayout applies the computed layout dimensions to the widgets.
func (m *Model) applyLayout(layout layoutDims) {
	titleHeight := 1
	tableHeaderHeight := 1 // bubbles table has its own header

	// Minimum height of 3 prevents viewport slice bounds panics inside
	// the table widget.
	filesHeight := max(3, layout.leftInnerHeight-titleHeight-tableHeaderHeight-2)
	m.filesTable.SetWidth(layout.leftInnerWidth)
	m.filesTable.SetHeight(filesHeight)
	m.updateFileColumns(layout.leftInnerWidth)

	logHeight := max(3, layout.rightBottomInnerHeight-titleHeight-tableHeaderHeight-2)
	m.logTable.SetWidth(layout.rightInnerWidth)
	m.logTable.SetHeight(logHeight)
	m.updateLogColumns(layout.rightInnerWidth)
}

// updateFileColumns sizes the status table columns to the pane width.
func (m *Model) updateFileColumns(totalWidth int) {
	status := 4

	// The table library inserts 3 spaces between columns.
	separatorSpace := 3

	path := max(10, totalWidth-status-separatorSpace)

	actualTotal := status + path + separatorSpace
	if actualTotal < totalWidth {
		path += totalWidth - actualTotal
	} else if actualTotal > totalWidth {
		path = max(10, path-(actualTotal-totalWidth))
	}

	m.filesTable.SetColumns([]table.Column{
		{Title: "St", Width: status},
		{Title: "Path", Width: path},
	})
}

// updateLogColumns sizes the log table columns to the pane width.
func (m *Model) updateLogColumns(totalWidth int) {
	sha := 8
	author := 2

	// 3 columns = 2 separators = 6 spaces
	separatorSpace := 6

	subject := max(10, totalWidth-sha-author-separatorSpace)

	actualTotal := sha + author + subject + separatorSpace
	if actualTotal < totalWidth {
		subject += totalWidth - actualTotal
	} else if actualTotal > totalWidth {
		subject = max(10, subject-(actualTotal-totalWidth))
	}

	m.logTable.SetColumns([]table.Column{
		{Title: "SHA", Width: sha},
		{Title: "Au", Width: author},
		{Title: "Subject", Width: subject},
	})
}
