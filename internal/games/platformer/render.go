package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/mathrun/internal/core"
)

// Visual characters for rendering
const (
	GrassChar     = '▀'
	SoilChar      = '▓'
	PlatformChar  = '▬'
	MovingChar    = '═'
	SpringChar    = '⇑'
	SpikeChar     = '▲'
	CoinChar      = '●'
	PatrollerChar = '▇'
	FlierChar     = 'W'
	PlayerChar    = '█'
	FlagChar      = '▶'
	PoleChar      = '│'
	StarChar      = '·'
)

// themeColors holds the palette of a theme.
type themeColors struct {
	grass, soil, sky core.Color
}

var palettes = map[Theme]themeColors{
	ThemeDay:    {grass: core.ColorBrightGreen, soil: core.ColorBrown, sky: core.ColorBlue},
	ThemeSunset: {grass: core.ColorOrange, soil: core.ColorBrown, sky: core.ColorMagenta},
	ThemeNight:  {grass: core.ColorBlue, soil: core.ColorGray, sky: core.ColorBrightWhite},
}

// viewport maps world units to screen cells below the HUD row.
type viewport struct {
	camera    float64
	sx, sy    float64
	top, rows int
	cols      int
}

func newViewport(s *Session, dst *core.Screen) viewport {
	cc := s.cfg.Camera
	rows := max(dst.Height()-2, 1)
	return viewport{
		camera: s.camera,
		sx:     float64(dst.Width()) / cc.ViewportWidth,
		sy:     float64(rows) / cc.ViewportHeight,
		top:    1,
		rows:   rows,
		cols:   dst.Width(),
	}
}

// cell converts a world point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor((x - v.camera) * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// rect converts a world box to screen cells, at least one cell in each direction.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.cell(b.X, b.Y)
	x1, y1 := v.cell(b.Right(), b.Bottom())
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// clip keeps rows below the HUD and above the hint line.
func (v viewport) clip(r core.Rect) core.Rect {
	bottom := min(r.Bottom(), v.top+v.rows)
	top := max(r.Y, v.top)
	r.H = bottom - top
	r.Y = top
	return r
}

// Render draws the world, the HUD and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		return
	}
	s := g.session
	v := newViewport(s, dst)
	pal, ok := palettes[s.level.Theme]
	if !ok {
		pal = palettes[ThemeDay]
	}

	g.drawSky(dst, v, pal)
	g.drawPlatforms(dst, v, pal)
	g.drawFinish(dst, v)

	for _, h := range s.Hazards() {
		if h.Valid() {
			dst.DrawRect(v.clip(v.rect(h.Box)), SpikeChar, core.ColorBrightRed)
		}
	}
	for _, c := range s.Coins() {
		if !c.Taken {
			x, y := v.cell(c.X, c.Y)
			if y >= v.top && y < v.top+v.rows {
				dst.SetColor(x, y, CoinChar, core.ColorBrightYellow)
			}
		}
	}
	for _, e := range s.Enemies() {
		if e.Dead || !e.Valid() {
			continue
		}
		ch, col := PatrollerChar, core.ColorGreen
		if e.Kind == EnemyFlier {
			ch, col = FlierChar, core.ColorMagenta
		}
		dst.DrawRect(v.clip(v.rect(e.Box)), ch, col)
	}
	g.drawPlayer(dst, v)

	g.drawHUD(dst)

	switch {
	case s.State() == StateDeadPendingQuiz:
		g.drawQuiz(dst)
	case s.Paused():
		drawBanner(dst, []string{"PAUSED", "", "P to resume"}, core.ColorBrightWhite)
	}
}

func (g *Game) drawSky(dst *core.Screen, v viewport, pal themeColors) {
	if g.session.level.Theme != ThemeNight {
		return
	}
	// Stars scroll slower than the world for depth.
	for y := v.top; y < v.top+v.rows/2; y++ {
		for x := 0; x < v.cols; x++ {
			wx := x + int(g.session.camera*v.sx/4)
			if (wx*7+y*13)%53 == 0 {
				dst.SetColor(x, y, StarChar, pal.sky)
			}
		}
	}
}

func (g *Game) drawPlatforms(dst *core.Screen, v viewport, pal themeColors) {
	for _, pl := range g.session.Platforms() {
		if !pl.Valid() {
			continue
		}
		r := v.clip(v.rect(pl.Box))
		if r.H <= 0 {
			continue
		}
		switch pl.Kind {
		case PlatformGround:
			dst.DrawHLine(r.X, r.Y, r.W, GrassChar, pal.grass)
			if r.H > 1 {
				dst.DrawRect(core.NewRect(r.X, r.Y+1, r.W, r.H-1), SoilChar, pal.soil)
			}
		case PlatformStatic:
			dst.DrawRect(r, PlatformChar, core.ColorWhite)
		case PlatformHorizontal, PlatformVertical:
			dst.DrawRect(r, MovingChar, core.ColorCyan)
		case PlatformSpring:
			dst.DrawRect(r, SpringChar, core.ColorBrightMagenta)
		}
	}
}

func (g *Game) drawFinish(dst *core.Screen, v viewport) {
	f := g.session.level.Finish
	if !f.Valid() {
		return
	}
	r := v.clip(v.rect(f))
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColor(r.X, y, PoleChar, core.ColorWhite)
	}
	dst.SetColor(r.X+1, r.Y, FlagChar, core.ColorBrightRed)
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.session.Player()
	// Blink while invulnerable
	if p.Invulnerable > 0 && int(p.Invulnerable*10)%2 == 1 {
		return
	}
	r := v.clip(v.rect(p.Box))
	dst.DrawRect(r, PlayerChar, core.ColorBrightCyan)
	eye := r.X + r.W - 1
	if p.Facing < 0 {
		eye = r.X
	}
	if r.H > 0 {
		dst.SetColor(eye, r.Y, '•', core.ColorBrightWhite)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.session.Stats()
	name := g.runtime.PlayerName
	if name == "" {
		name = "Player"
	}
	hud := fmt.Sprintf(" %s | Level %d/%d | Score %d | ✓ %d  ✗ %d ", name, st.Level, g.Levels(), st.Score, st.Correct, st.Wrong)
	if g.mode == ModePractice {
		hud += "| practice "
	}
	dst.DrawTextColor(0, 0, hud, core.ColorBrightYellow)

	hint := " ←/→ or A/D: run | Space: jump | P: pause | R: restart | Q: quit "
	dst.DrawTextColor(0, dst.Height()-1, hint, core.ColorGray)
}

func (g *Game) drawQuiz(dst *core.Screen) {
	gate := g.gate
	if gate == nil || !gate.IsOpen() {
		drawBanner(dst, []string{"Oops!"}, core.ColorBrightRed)
		return
	}
	q := gate.Question()
	selected, revealing := gate.Selected()

	lines := []string{"Oops! Solve to continue", "", q.Text(), ""}
	var opts []string
	for i, o := range q.Options {
		opts = append(opts, fmt.Sprintf("%d) %d", i+1, o))
	}
	lines = append(lines, strings.Join(opts, "   "), "")

	switch {
	case revealing && q.Correct(selected):
		lines = append(lines, "Correct!")
	case revealing:
		lines = append(lines, fmt.Sprintf("Not quite, it was %d", q.Answer))
	case gate.TimeLimit() > 0:
		lines = append(lines, fmt.Sprintf("Time left: %ds", int(math.Ceil(gate.Remaining()))))
	default:
		lines = append(lines, "Take your time")
	}

	col := core.ColorBrightWhite
	if revealing {
		col = core.ColorBrightRed
		if q.Correct(selected) {
			col = core.ColorBrightGreen
		}
	}
	drawBanner(dst, lines, col)
}

// drawBanner draws a centered box holding lines.
func drawBanner(dst *core.Screen, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW, boxH := w+4, len(lines)+2
	x := (dst.Width() - boxW) / 2
	y := (dst.Height() - boxH) / 2
	r := core.NewRect(x, y, boxW, boxH)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		lx := x + (boxW-len([]rune(l)))/2
		dst.DrawTextColor(lx, y+1+i, l, c)
	}
}
