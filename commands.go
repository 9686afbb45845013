package turtleizer

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// ErrCommandUnavailable is returned by Execute when CanExecute is false.
var ErrCommandUnavailable = errors.New("turtleizer: command not available")

// scrollToDuration is the length of the animated scroll commands, in seconds.
const scrollToDuration = 0.35

// Command is a user-level canvas action, bound to a key and exposed to
// scripts.
type Command uint8

const (
	CmdGotoTurtle   Command = iota // scroll to the selected turtle
	CmdGotoHome                    // scroll to the selected turtle's home
	CmdGotoOrigin                  // scroll to the world origin
	CmdZoomIn                      // zoom in one step
	CmdZoomOut                     // zoom out one step
	CmdZoom100                     // reset zoom to 100%
	CmdZoomBounds                  // zoom to fit the drawing
	CmdShowAll                     // shift the origin so negative coordinates show
	CmdToggleAxes                  // show or hide the axis crosshair
	CmdToggleTurtle                // show or hide the turtle icons
	CmdToggleCoords                // show or hide the pointer readout
	CmdToggleSnap                  // snap to lines or to endpoints
	CmdToggleUpdate                // enable or disable auto-update flushes
	CmdToggleStatus                // show or hide the status overlay
	CmdExportCSV                   // write the segments as CSV
	CmdExportSVG                   // write the drawing as SVG
	CmdExportPNG                   // write the drawing as PNG
	commandCount
)

var commandNames = [commandCount]string{
	CmdGotoTurtle:   "Scroll to turtle position",
	CmdGotoHome:     "Scroll to home position",
	CmdGotoOrigin:   "Scroll to coordinate origin",
	CmdZoomIn:       "Zoom in",
	CmdZoomOut:      "Zoom out",
	CmdZoom100:      "Reset zoom to 100%",
	CmdZoomBounds:   "Zoom to the bounds",
	CmdShowAll:      "Make all drawing visible",
	CmdToggleAxes:   "Show axes of coordinates",
	CmdToggleTurtle: "Show turtle",
	CmdToggleCoords: "Pop up coordinates",
	CmdToggleSnap:   "Snap lines (else: points only)",
	CmdToggleUpdate: "Automatic update",
	CmdToggleStatus: "Show statusbar",
	CmdExportCSV:    "Export drawing items as CSV",
	CmdExportSVG:    "Export drawing as SVG",
	CmdExportPNG:    "Export drawing as PNG",
}

var commandIDs = [commandCount]string{
	CmdGotoTurtle:   "gotoTurtle",
	CmdGotoHome:     "gotoHome",
	CmdGotoOrigin:   "gotoOrigin",
	CmdZoomIn:       "zoomIn",
	CmdZoomOut:      "zoomOut",
	CmdZoom100:      "zoom100",
	CmdZoomBounds:   "zoomBounds",
	CmdShowAll:      "showAll",
	CmdToggleAxes:   "toggleAxes",
	CmdToggleTurtle: "toggleTurtle",
	CmdToggleCoords: "toggleCoords",
	CmdToggleSnap:   "toggleSnap",
	CmdToggleUpdate: "toggleUpdate",
	CmdToggleStatus: "toggleStatus",
	CmdExportCSV:    "exportCSV",
	CmdExportSVG:    "exportSVG",
	CmdExportPNG:    "exportPNG",
}

// String returns the command's menu caption.
func (c Command) String() string {
	if c < commandCount {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ID returns the identifier used for the command in scripts.
func (c Command) ID() string {
	if c < commandCount {
		return commandIDs[c]
	}
	return ""
}

// CommandByID looks up a command by its script identifier.
func CommandByID(id string) (Command, bool) {
	for c := Command(0); c < commandCount; c++ {
		if commandIDs[c] == id {
			return c, true
		}
	}
	return 0, false
}

// keyBinding maps a key plus exact modifier set to a command.
type keyBinding struct {
	key  ebiten.Key
	mods KeyModifiers
	cmd  Command
}

var defaultBindings = []keyBinding{
	{ebiten.KeyEnd, 0, CmdGotoTurtle},
	{ebiten.KeyHome, 0, CmdGotoHome},
	{ebiten.KeyDigit0, 0, CmdGotoOrigin},
	{ebiten.KeyEqual, 0, CmdZoomIn},
	{ebiten.KeyNumpadAdd, 0, CmdZoomIn},
	{ebiten.KeyMinus, 0, CmdZoomOut},
	{ebiten.KeyNumpadSubtract, 0, CmdZoomOut},
	{ebiten.KeyDigit1, 0, CmdZoom100},
	{ebiten.KeyZ, 0, CmdZoomBounds},
	{ebiten.KeyA, 0, CmdShowAll},
	{ebiten.KeyO, 0, CmdToggleAxes},
	{ebiten.KeyT, 0, CmdToggleTurtle},
	{ebiten.KeyC, 0, CmdToggleCoords},
	{ebiten.KeyL, 0, CmdToggleSnap},
	{ebiten.KeyU, 0, CmdToggleUpdate},
	{ebiten.KeyS, 0, CmdToggleStatus},
	{ebiten.KeyX, 0, CmdExportCSV},
	{ebiten.KeyV, 0, CmdExportSVG},
	{ebiten.KeyS, ModCtrl, CmdExportPNG},
}

// CanExecute reports whether cmd would do anything in the current state.
func (s *Scene) CanExecute(cmd Command) bool {
	switch cmd {
	case CmdGotoTurtle, CmdGotoHome:
		return len(s.turtles) > 0
	case CmdGotoOrigin, CmdToggleAxes, CmdToggleTurtle, CmdToggleCoords, CmdToggleSnap, CmdToggleUpdate, CmdToggleStatus:
		return true
	case CmdZoomIn:
		return s.viewport.zoom < MaxZoom
	case CmdZoomOut:
		return s.viewport.zoom > MinZoom
	case CmdZoom100:
		return s.viewport.zoom != 1
	case CmdZoomBounds:
		return len(s.turtles) > 0
	case CmdShowAll:
		return s.viewport.CanShowAll()
	case CmdExportCSV, CmdExportSVG, CmdExportPNG:
		return s.HasSegments()
	}
	return false
}

// Execute runs cmd. Only the export commands can fail.
func (s *Scene) Execute(cmd Command) error {
	if !s.CanExecute(cmd) {
		return fmt.Errorf("%w: %s", ErrCommandUnavailable, cmd)
	}
	vp := s.viewport
	switch cmd {
	case CmdGotoTurtle:
		vp.AnimateScrollTo(s.Selected().pos, scrollToDuration, ease.OutQuad)
	case CmdGotoHome:
		vp.AnimateScrollTo(s.Selected().home, scrollToDuration, ease.OutQuad)
	case CmdGotoOrigin:
		vp.AnimateScrollTo(Vec2{}, scrollToDuration, ease.OutQuad)
	case CmdZoomIn:
		vp.Zoom(true)
	case CmdZoomOut:
		vp.Zoom(false)
	case CmdZoom100:
		vp.ZoomReset()
	case CmdZoomBounds:
		vp.ZoomToFit()
	case CmdShowAll:
		vp.ShowAll()
	case CmdToggleAxes:
		s.showAxes = !s.showAxes
	case CmdToggleTurtle:
		s.showTurtles = !s.showTurtles
	case CmdToggleCoords:
		s.showCoords = !s.showCoords
	case CmdToggleSnap:
		s.measurer.snapLines = !s.measurer.snapLines
	case CmdToggleUpdate:
		s.renderer.autoUpdate = !s.renderer.autoUpdate
	case CmdToggleStatus:
		s.showStatus = !s.showStatus
	case CmdExportCSV:
		_, err := s.ExportFile(ExportCSV, s.ExportDir)
		return err
	case CmdExportSVG:
		_, err := s.ExportFile(ExportSVG, s.ExportDir)
		return err
	case CmdExportPNG:
		_, err := s.ExportFile(ExportPNG, s.ExportDir)
		return err
	}
	return nil
}
