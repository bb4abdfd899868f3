package sandbox

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/mob"
)

// glyph is how one kind of thing is drawn.
type glyph struct {
	r rune
	c core.Color
}

var blockGlyphs = map[string]glyph{
	"dirt":           {'▓', core.ColorBrown},
	"stone":          {'█', core.ColorGray},
	"wood":           {'║', core.ColorBrown},
	"leaf":           {'♣', core.ColorGreen},
	"honey":          {'▒', core.ColorBrightYellow},
	"hive":           {'#', core.ColorOrange},
	"crafting_table": {'╬', core.ColorOrange},
	"furnace":        {'▣', core.ColorGray},
	"diamond":        {'◆', core.ColorBrightCyan},
}

var mobGlyphs = map[string]glyph{
	"friendly_bird":  {'v', core.ColorCyan},
	"friendly_sheep": {'@', core.ColorBrightWhite},
	"foe_bee":        {'*', core.ColorYellow},
}

var (
	unknownGlyph = glyph{'?', core.ColorMagenta}
	itemGlyph    = glyph{'•', core.ColorPink}
	playerGlyph  = glyph{'☺', core.ColorBrightWhite}
)

// viewport maps world pixels onto a screen area. A block covers two
// columns and one row.
type viewport struct {
	area     core.Rect
	origin   core.Vec2
	pxPerCol float64
	pxPerRow float64
}

func (s *Session) viewport(area core.Rect) viewport {
	bs := s.worldCfg.Grid.BlockSize
	v := viewport{area: area, pxPerCol: bs / 2, pxPerRow: bs}

	worldW, worldH := s.worldCfg.PixelSize()
	visibleW := float64(area.W) * v.pxPerCol
	visibleH := float64(area.H) * v.pxPerRow
	centre := s.player.Position()
	v.origin = core.V(
		core.ClampF(centre.X-visibleW/2, 0, math.Max(worldW-visibleW, 0)),
		core.ClampF(centre.Y-visibleH/2, 0, math.Max(worldH-visibleH, 0)),
	)
	return v
}

// cell returns the screen position of a world point.
func (v viewport) cell(p core.Vec2) (x, y int, ok bool) {
	x = v.area.X + int(math.Floor((p.X-v.origin.X)/v.pxPerCol))
	y = v.area.Y + int(math.Floor((p.Y-v.origin.Y)/v.pxPerRow))
	return x, y, v.area.Contains(x, y)
}

func (v viewport) put(dst *core.Screen, p core.Vec2, g glyph) {
	if x, y, ok := v.cell(p); ok {
		dst.SetColored(x, y, g.r, g.c)
	}
}

// Render draws the world around the player with a one-line HUD on top.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.world == nil || dst.Height() < 2 {
		return
	}

	v := s.viewport(core.NewRect(0, 1, dst.Width(), dst.Height()-1))
	half := s.worldCfg.Grid.BlockSize / 4

	for _, b := range s.world.Blocks() {
		g, ok := blockGlyphs[b.Kind()]
		if !ok {
			g = unknownGlyph
		}
		c := b.Position()
		v.put(dst, core.V(c.X-half, c.Y), g)
		v.put(dst, core.V(c.X+half, c.Y), g)
	}
	for _, d := range s.world.Items() {
		v.put(dst, d.Position(), itemGlyph)
	}
	for _, m := range s.world.Mobs() {
		v.put(dst, m.Position(), mobGlyph(m))
	}

	cursor := glyph{'+', core.ColorMagenta}
	if s.world.Reachable(s.player, s.cursor) {
		cursor.c = core.ColorBrightRed
	}
	v.put(dst, s.cursor, cursor)
	v.put(dst, s.player.Position(), playerGlyph)

	s.drawHUD(dst)

	switch {
	case s.dead:
		s.drawBanner(dst, "YOU DIED", "Press R to restart")
	case s.paused:
		s.drawBanner(dst, "PAUSED", "Press P to resume")
		s.drawInventory(dst)
	}
}

func mobGlyph(m *mob.Mob) glyph {
	if g, ok := mobGlyphs[m.Kind()]; ok {
		return g
	}
	return unknownGlyph
}

func (s *Session) drawHUD(dst *core.Screen) {
	st := s.State()
	dst.DrawTextColored(1, 0, fmt.Sprintf("♥ %4.1f", st.Health), core.ColorBrightRed)
	dst.DrawTextColored(10, 0, fmt.Sprintf("food %4.1f", st.Food), core.ColorOrange)

	held := "-"
	if h, ok := s.Held(); ok {
		held = fmt.Sprintf("%s x%d", h.Item.ID, h.Count)
	}
	right := fmt.Sprintf("[%s]  items %d  kills %d  tick %d", held, s.player.Inventory().Total(), st.MobsKilled, st.Tick)
	dst.DrawText(max(dst.Width()-len([]rune(right))-1, 22), 0, right)
}

func (s *Session) drawBanner(dst *core.Screen, title, subtitle string) {
	_, cy := core.NewRect(0, 0, dst.Width(), dst.Height()).Center()
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	x := (dst.Width() - w) / 2
	dst.DrawHLine(x, cy-2, w, '─')
	dst.DrawTextCentered(cy-1, title)
	dst.DrawTextCentered(cy+1, subtitle)
	dst.DrawHLine(x, cy+2, w, '─')
}

// drawInventory lists the carried stacks under the pause banner.
func (s *Session) drawInventory(dst *core.Screen) {
	_, cy := core.NewRect(0, 0, dst.Width(), dst.Height()).Center()
	lines := s.InventoryLines()
	if len(lines) == 0 {
		lines = []string{"(empty inventory)"}
	}
	for i, line := range lines {
		if y := cy + 4 + i; y < dst.Height() {
			dst.DrawTextCentered(y, line)
		}
	}
}

// InventoryLines lists carried stacks for a side panel.
func (s *Session) InventoryLines() []string {
	if s.player == nil {
		return nil
	}
	var lines []string
	for _, st := range s.player.Inventory().Stacks() {
		lines = append(lines, fmt.Sprintf("%-16s x%d", st.Item.ID, st.Count))
	}
	return lines
}
