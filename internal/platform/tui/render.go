package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/particles"
	"github.com/vovakirdan/dino-island/internal/worldgen"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorSand:         lipgloss.NewStyle().Foreground(lipgloss.Color("186")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

type tileLook struct {
	glyph rune
	day   core.Color
	night core.Color
}

var biomeLooks = map[worldgen.Biome]tileLook{
	worldgen.BiomeWater:   {'~', core.ColorBrightBlue, core.ColorBlue},
	worldgen.BiomeBeach:   {'.', core.ColorSand, core.ColorGray},
	worldgen.BiomeForest:  {'"', core.ColorBrightGreen, core.ColorGreen},
	worldgen.BiomeVolcano: {'^', core.ColorWhite, core.ColorGray},
	worldgen.BiomeMud:     {',', core.ColorBrown, core.ColorBrown},
}

// hudRows is the number of screen rows above the map.
const hudRows = 1

// View is what renderWorld needs from the game host.
type View struct {
	Snap      island.Snapshot
	World     *worldgen.Map
	TileSize  float64
	Particles *particles.Pool
	NextLava  float64
}

// camera returns the world tile drawn at the top-left map cell.
func camera(player core.Vec2, w, h int) (int, int) {
	return int(math.Floor(player.X)) - w/2, int(math.Floor(player.Y)) - h/2
}

// renderWorld draws the map around the player, then hazards, entities and
// particles on top, and the HUD in the first row.
func renderWorld(dst *core.Screen, v View) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()-hudRows
	if w <= 0 || h <= 0 {
		return
	}
	ox, oy := camera(v.Snap.Player.Pos, w, h)
	toScreen := func(p core.Vec2) (int, int) {
		return int(math.Floor(p.X)) - ox, int(math.Floor(p.Y)) - oy + hudRows
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			look := biomeLooks[v.World.At(ox+x, oy+y)]
			c := look.day
			if v.Snap.Night {
				c = look.night
			}
			dst.SetCell(x, y+hudRows, look.glyph, c)
		}
	}

	for _, t := range v.Snap.Hazards {
		// A hazard tile may cover several map cells.
		x0 := int(math.Floor(float64(t.X)*v.TileSize)) - ox
		y0 := int(math.Floor(float64(t.Y)*v.TileSize)) - oy + hudRows
		size := max(1, int(math.Ceil(v.TileSize)))
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				if y0+dy >= hudRows {
					dst.SetCell(x0+dx, y0+dy, '#', core.ColorOrange)
				}
			}
		}
	}

	if v.Snap.Escape != nil {
		if x, y := toScreen(*v.Snap.Escape); y >= hudRows {
			dst.SetCell(x, y, 'B', core.ColorBrightWhite)
		}
	}

	for _, e := range v.Snap.Entities {
		x, y := toScreen(e.Pos)
		if y < hudRows {
			continue
		}
		glyph, c := entityLook(e)
		dst.SetCell(x, y, glyph, c)
	}

	if v.Particles != nil {
		v.Particles.Each(func(pt particles.Particle) {
			if x, y := toScreen(pt.Pos); y >= hudRows {
				dst.SetCell(x, y, particleGlyph(pt), pt.Color)
			}
		})
	}

	px, py := toScreen(v.Snap.Player.Pos)
	pc := core.ColorBrightWhite
	if v.Snap.Player.RepellentRemaining > 0 {
		pc = core.ColorCyan
	}
	dst.SetCell(px, py, '@', pc)

	dst.DrawText(0, 0, hudLine(v), core.ColorBrightWhite)
}

func entityLook(e island.EntityView) (rune, core.Color) {
	switch e.Role {
	case island.RoleItem:
		if e.Kind == island.ItemPotion {
			return '+', core.ColorBrightRed
		}
		return '*', core.ColorCyan
	case island.RoleCreature:
		glyph := 'd'
		if e.FacingLeft {
			glyph = 'b'
		}
		if e.Class == island.ClassAggressive {
			glyph = 'D'
			if e.FacingLeft {
				glyph = 'G'
			}
		}
		switch e.State {
		case island.StateChase:
			return glyph, core.ColorBrightRed
		case island.StateFlee:
			return glyph, core.ColorYellow
		}
		if e.Class == island.ClassAggressive {
			return glyph, core.ColorRed
		}
		return glyph, core.ColorGreen
	}
	return '?', core.ColorMagenta
}

func hudLine(v View) string {
	p := v.Snap.Player
	phase := "day"
	if v.Snap.Night {
		phase = "night"
	}
	line := fmt.Sprintf(" HP %3.0f/%.0f  potions %d  repellents %d  score %d  %s %d  %s",
		math.Ceil(p.Health), p.MaxHealth, p.Potions, p.Repellents, p.Score,
		phase, v.Snap.Cycles+1, clockString(v.Snap.Clock))
	if p.RepellentRemaining > 0 {
		line += fmt.Sprintf("  repellent %.1fs", p.RepellentRemaining)
	}
	if v.Snap.Escape != nil {
		line += "  BOAT!"
	} else if lava := v.NextLava - v.Snap.Clock; lava > 0 {
		line += fmt.Sprintf("  lava in %.0fs", math.Ceil(lava))
	}
	return line
}

func clockString(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// drawOverlay prints a boxed message in the middle of the screen.
func drawOverlay(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2
	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2
	box := core.NewRect(x, y, width, height)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.SetCell(xx, yy, ' ', core.ColorDefault)
		}
	}
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawText(x+(width-len(l))/2, y+1+i, l, c)
	}
}

// emberFade is the life fraction below which a particle is drawn as an ember.
const emberFade = 0.3

func particleGlyph(pt particles.Particle) rune {
	if pt.Fade() < emberFade {
		return '.'
	}
	return pt.Glyph
}
