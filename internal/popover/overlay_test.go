package popover

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 4, H: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(5, 2))
	assert.False(t, r.Contains(6, 1))
	assert.False(t, r.Contains(2, 3))
	assert.True(t, Rect{}.Empty())
}

func TestOutsideClickDetection(t *testing.T) {
	o := NewOverlay(nil)
	o.DecorateActor(Props{Region: Rect{X: 0, Y: 0, W: 10, H: 1}})
	o.DecorateMenu(Props{Region: Rect{X: 0, Y: 1, W: 10, H: 5}}, 0)

	var clicks int
	o.OnOutsideClick(func(x, y int) { clicks++ })

	// Closed popover never reports outside clicks
	assert.False(t, o.HandleMouse(press(50, 20)))
	assert.Equal(t, 0, clicks)

	o.NotifyOpen()
	require.True(t, o.IsOpen())

	assert.False(t, o.HandleMouse(press(3, 0)), "Click on the actor is inside")
	assert.False(t, o.HandleMouse(press(3, 4)), "Click on the menu is inside")
	assert.True(t, o.HandleMouse(press(50, 20)))
	assert.Equal(t, 1, clicks)

	// Non-press events are ignored
	motion := tea.MouseMsg{X: 50, Y: 20, Action: tea.MouseActionMotion}
	assert.False(t, o.HandleMouse(motion))
	assert.Equal(t, 1, clicks)
}

func TestActorStillClickableWhenClosed(t *testing.T) {
	// With the menu closed, only the actor region counts as inside;
	// but since the popover is closed no notification fires anywhere
	o := NewOverlay(nil)
	o.DecorateActor(Props{Region: Rect{X: 0, Y: 0, W: 5, H: 1}})

	var clicks int
	o.OnOutsideClick(func(x, y int) { clicks++ })
	assert.False(t, o.HandleMouse(press(2, 0)))
	assert.Equal(t, 0, clicks)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	o := NewOverlay(nil)
	o.NotifyOpen()

	var clicks int
	unsub := o.OnOutsideClick(func(x, y int) { clicks++ })

	o.HandleMouse(press(50, 20))
	require.Equal(t, 1, clicks)

	unsub()
	o.HandleMouse(press(50, 20))
	assert.Equal(t, 1, clicks, "Unsubscribed handlers must not fire")
}

func TestDecorationRecordsRegions(t *testing.T) {
	o := NewOverlay(nil)

	p := o.DecorateActor(Props{Region: Rect{X: 1, Y: 2, W: 3, H: 1}})
	assert.Equal(t, RoleActor, p.Role)
	assert.Equal(t, Rect{X: 1, Y: 2, W: 3, H: 1}, o.ActorRegion())

	p = o.DecorateMenu(Props{Region: Rect{X: 1, Y: 3, W: 3, H: 4}}, 42)
	assert.Equal(t, RoleMenu, p.Role)
	assert.Equal(t, 42, p.ItemCount)
	assert.Equal(t, Rect{X: 1, Y: 3, W: 3, H: 4}, o.MenuRegion())
}

func TestComposeOverlaysMenuLines(t *testing.T) {
	o := NewOverlay(nil)
	o.NotifyOpen()
	o.DecorateMenu(Props{Region: Rect{X: 2, Y: 1, W: 5, H: 2}}, 0)

	base := "header\nline one\nline two\nfooter"
	menu := "AAAAA\nBBBBB"

	got := o.Compose(base, menu)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "header", lines[0])
	assert.Equal(t, "  AAAAA", lines[1])
	assert.Equal(t, "  BBBBB", lines[2])
	assert.Equal(t, "footer", lines[3])
}

func TestComposeExtendsShortBase(t *testing.T) {
	o := NewOverlay(nil)
	o.NotifyOpen()
	o.DecorateMenu(Props{Region: Rect{X: 0, Y: 1, W: 3, H: 3}}, 0)

	got := o.Compose("only", "a\nb\nc")
	assert.Equal(t, "only\na\nb\nc", got)
}

func TestComposeClosedReturnsBase(t *testing.T) {
	o := NewOverlay(nil)
	o.DecorateMenu(Props{Region: Rect{X: 0, Y: 1, W: 3, H: 1}}, 0)
	assert.Equal(t, "base", o.Compose("base", "menu"))
}
