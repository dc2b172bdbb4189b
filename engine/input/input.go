package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/promethium/engine/control"
	"github.com/1siamBot/promethium/engine/techtree"
)

// PlaceKeys arms building placement, in building table order.
var PlaceKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6,
}

// ProduceKeys queue a unit at the selected building, by roster slot.
var ProduceKeys = []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV}

const (
	KeyStop    = ebiten.KeyH
	KeyAbility = ebiten.KeyB
	KeyCancel  = ebiten.KeyEscape
	KeyPause   = ebiten.KeyP
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool
	ScrollY           float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int
	// set on the frame a drag ends
	dragEnded bool
	dragBox   image.Rectangle
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	s.LeftPressed = leftDown
	s.RightPressed = rightDown

	_, s.ScrollY = ebiten.Wheel()

	// Drag tracking
	s.dragEnded = false
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !leftDown && s.Dragging {
		s.dragEnded = true
		s.dragBox = image.Rect(s.DragStartX, s.DragStartY, s.MouseX, s.MouseY)
		s.Dragging = false
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// DragRect returns the selection rectangle if dragging
func (s *InputState) DragRect() (x1, y1, x2, y2 int, active bool) {
	if !s.Dragging {
		return 0, 0, 0, 0, false
	}
	return s.DragStartX, s.DragStartY, s.MouseX, s.MouseY, true
}

// Frame summarises this frame's gestures for the command controller.
func (s *InputState) Frame() control.Frame {
	f := control.Frame{
		MouseX:     s.MouseX,
		MouseY:     s.MouseY,
		LeftClick:  s.LeftJustReleased && !s.dragEnded,
		Box:        s.dragBox,
		BoxDone:    s.dragEnded,
		RightClick: s.RightJustPressed,
		Shift:      ebiten.IsKeyPressed(ebiten.KeyShift),
		Stop:       s.IsKeyJustPressed(KeyStop),
		Ability:    s.IsKeyJustPressed(KeyAbility),
		Cancel:     s.IsKeyJustPressed(KeyCancel),
	}
	for i, k := range PlaceKeys {
		if i < len(techtree.BuildingTypes) && s.IsKeyJustPressed(k) {
			f.Place, f.HasPlace = techtree.BuildingTypes[i], true
		}
	}
	for i, k := range ProduceKeys {
		if s.IsKeyJustPressed(k) {
			f.Produce = i + 1
		}
	}
	return f
}
