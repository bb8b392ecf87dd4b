package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
	"github.com/lixenwraith/liquid-sort/status"
)

// Renderer draws the board from bus events
// Events and Draw run on the game loop goroutine; HitTest may be called from the input poller
type Renderer struct {
	screen    tcell.Screen
	stats     *status.Registry
	trueColor bool
	logger    *zap.Logger
	now       func() time.Time

	level    string
	capacity int
	views    []container.Repaint

	selected core.ContainerID
	targets  map[core.ContainerID]bool
	flash    map[core.ContainerID]time.Time

	message   string
	messageAt time.Time
	sticky    string // Solved or stuck notice, cleared on level load
	paused    bool

	// layout is read by HitTest off the game loop
	layout *atomicLayout
}

// NewRenderer draws onto screen; stats may be nil
func NewRenderer(screen tcell.Screen, stats *status.Registry, trueColor bool, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		screen:    screen,
		stats:     stats,
		trueColor: trueColor,
		logger:    logger,
		now:       time.Now,
		selected:  core.NoContainer,
		targets:   make(map[core.ContainerID]bool),
		flash:     make(map[core.ContainerID]time.Time),
		layout:    newAtomicLayout(),
	}
}

// Attach subscribes the renderer to every event it draws
func (r *Renderer) Attach(bus *event.Bus) []event.Subscription {
	return []event.Subscription{
		bus.Subscribe(event.EventRepaint, r.onRepaint),
		bus.Subscribe(event.EventLevelLoaded, r.onLevelLoaded),
		bus.Subscribe(event.EventSelectionChanged, r.onSelection),
		bus.Subscribe(event.EventPickBusy, r.onPickBusy),
		bus.Subscribe(event.EventPourRejected, r.onRejected),
		bus.Subscribe(event.EventLevelSolved, func(event.GameEvent) { r.sticky = constants.StatusSolved }),
		bus.Subscribe(event.EventLevelStuck, func(event.GameEvent) { r.sticky = constants.StatusStuck }),
		bus.Subscribe(event.EventInputPause, func(event.GameEvent) { r.paused = !r.paused }),
		bus.Subscribe(event.EventInputResize, func(event.GameEvent) { r.screen.Sync() }),
	}
}

// HitTest maps a screen cell to a container using the last drawn layout
func (r *Renderer) HitTest(x, y int) (core.ContainerID, bool) {
	return r.layout.Load().HitTest(x, y)
}

func (r *Renderer) onRepaint(ev event.GameEvent) {
	rep, ok := ev.Payload.(*container.Repaint)
	if !ok || rep.ID < 0 || int(rep.ID) >= constants.MaxContainers {
		return
	}
	for int(rep.ID) >= len(r.views) {
		r.views = append(r.views, container.Repaint{ID: core.ContainerID(len(r.views)), Scale: 1, Toward: core.NoContainer})
	}
	r.views[rep.ID] = *rep
}

func (r *Renderer) onLevelLoaded(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.LevelPayload)
	if !ok {
		return
	}
	r.level = p.Name
	r.capacity = p.Capacity
	if len(r.views) > p.Containers {
		r.views = r.views[:p.Containers]
	}
	r.selected = core.NoContainer
	clear(r.targets)
	clear(r.flash)
	r.sticky = ""
	r.message = ""
	r.logger.Debug("level shown", zap.String("level", p.Name), zap.Int("containers", p.Containers))
}

func (r *Renderer) onSelection(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SelectionPayload)
	if !ok {
		return
	}
	r.selected = p.Selected
	clear(r.targets)
	for _, id := range p.Targets {
		r.targets[id] = true
	}
}

func (r *Renderer) onPickBusy(ev event.GameEvent) {
	if p, ok := ev.Payload.(*event.SelectionPayload); ok {
		r.say(fmt.Sprintf("container %c is still pouring", KeyLabel(p.Picked)))
	}
}

func (r *Renderer) onRejected(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PourPayload)
	if !ok {
		return
	}
	r.flash[p.Destination] = r.now()
	r.say(fmt.Sprintf("%s does not pour onto %c", p.Color, KeyLabel(p.Destination)))
}

func (r *Renderer) say(msg string) {
	r.message = msg
	r.messageAt = r.now()
}

// Draw renders one frame
func (r *Renderer) Draw() {
	r.screen.Clear()
	width, height := r.screen.Size()
	layout := NewLayout(width, len(r.views), r.capacity)
	r.layout.Store(layout)

	r.drawHeader(width)
	for _, v := range r.views {
		r.drawContainer(layout, v)
	}
	r.drawStatus(width, height)

	r.screen.Show()
}

func (r *Renderer) drawHeader(width int) {
	title := "liquid-sort"
	if r.level != "" {
		title += "  " + r.level
	}
	r.text(1, 0, title, StyleTitle, width)
	r.text(1, 1, constants.StatusHelp, StyleHelp, width)
}

func (r *Renderer) drawContainer(l Layout, v container.Repaint) {
	if r.capacity <= 0 {
		return
	}
	x := l.ContainerX(v.ID)
	top := l.RimY

	// Approach: rise, then lean toward the partner
	if v.Offset > 0 {
		top -= int(math.Round(v.Offset * constants.ApproachLift))
		if v.Toward != core.NoContainer {
			dx := int(math.Round(v.Offset * float64(constants.ContainerGap-1)))
			if v.Toward < v.ID {
				dx = -dx
			}
			x += dx
		}
	}

	wall := r.wallStyle(v.ID)
	right := x + constants.ContainerWidth + 1
	bottom := top + r.capacity
	for y := top; y < bottom; y++ {
		r.screen.SetContent(x, y, '│', nil, wall)
		r.screen.SetContent(right, y, '│', nil, wall)
	}
	r.screen.SetContent(x, bottom, '└', nil, wall)
	for i := 1; i <= constants.ContainerWidth; i++ {
		r.screen.SetContent(x+i, bottom, '─', nil, wall)
	}
	r.screen.SetContent(right, bottom, '┘', nil, wall)

	r.drawLiquid(x+1, bottom, v)
	r.drawTilt(x, right, top, v)

	label := KeyLabel(v.ID)
	r.screen.SetContent(x+1+constants.ContainerWidth/2, l.LabelY(), label, nil, wall)
}

// drawLiquid fills rows up from floor; rows past the shown fill are draining
func (r *Renderer) drawLiquid(left, floor int, v container.Repaint) {
	shown := int(math.Round(v.Fill * float64(r.capacity)))
	shown = min(max(shown, 0), r.capacity)
	rows := max(shown, len(v.Colors))
	rows = min(rows, r.capacity)

	for i := 0; i < rows; i++ {
		var color core.Color
		switch {
		case i < len(v.Colors):
			color = v.Colors[i]
		case len(v.Colors) > 0:
			color = v.Colors[len(v.Colors)-1]
		default:
			continue
		}
		ch := '█'
		if i >= shown {
			ch = '░'
		}
		style := r.liquidStyle(color)
		y := floor - 1 - i
		for dx := 0; dx < constants.ContainerWidth; dx++ {
			r.screen.SetContent(left+dx, y, ch, nil, style)
		}
	}
}

// drawTilt marks the rim with the lean direction and a stream once pouring
func (r *Renderer) drawTilt(left, right, top int, v container.Repaint) {
	if v.Angle <= 0 || v.Toward == core.NoContainer {
		return
	}
	lean, edge, step := '╲', right+1, 1
	if v.Toward < v.ID {
		lean, edge, step = '╱', left-1, -1
	}
	r.screen.SetContent(edge, top-1, lean, nil, StyleWall)

	if v.Angle >= constants.PourStreamAngle && len(v.Colors) > 0 {
		style := r.liquidStyle(v.Colors[len(v.Colors)-1])
		for i := 1; i < constants.ContainerGap; i++ {
			r.screen.SetContent(edge+i*step, top-1+i, '▚', nil, style)
		}
	}
}

func (r *Renderer) liquidStyle(c core.Color) tcell.Style {
	if !r.paused {
		return LiquidStyle(c, r.trueColor)
	}
	return tcell.StyleDefault.Foreground(rgbColor(c.RGB().Scale(PausedDim), r.trueColor))
}

func (r *Renderer) wallStyle(id core.ContainerID) tcell.Style {
	if at, ok := r.flash[id]; ok {
		if r.now().Sub(at) < constants.RejectFlashTimeout {
			return StyleReject
		}
		delete(r.flash, id)
	}
	switch {
	case id == r.selected:
		return StyleSelected
	case r.targets[id]:
		return StyleTarget
	default:
		return StyleWall
	}
}

func (r *Renderer) drawStatus(width, height int) {
	if height < 1 {
		return
	}
	y := height - 1
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, StyleStatus)
	}

	msg := r.sticky
	if r.message != "" && r.now().Sub(r.messageAt) < constants.StatusMessageTimeout {
		msg = r.message
	}
	if r.paused {
		msg = constants.StatusPaused
	}
	r.text(1, y, msg, StyleStatus, width)

	if r.stats != nil {
		counters := fmt.Sprintf("moves %d  pours %d",
			r.stats.Ints.Get(status.KeyMoves).Load(),
			r.stats.Ints.Get(status.KeyPoursActive).Load())
		r.text(width-len(counters)-1, y, counters, StyleStatus, width)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style, width int) {
	for _, ch := range s {
		if x >= width {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}
