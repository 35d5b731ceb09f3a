package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/game"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

const (
	cellSize  = 12
	hudHeight = 20
)

var steerKeys = map[ebiten.Key]pathfind.Direction{
	ebiten.KeyArrowLeft:  pathfind.Left,
	ebiten.KeyArrowUp:    pathfind.Up,
	ebiten.KeyArrowRight: pathfind.Right,
	ebiten.KeyArrowDown:  pathfind.Down,
	ebiten.KeyA:          pathfind.Left,
	ebiten.KeyW:          pathfind.Up,
	ebiten.KeyD:          pathfind.Right,
	ebiten.KeyS:          pathfind.Down,
}

// Viewer draws a game as flat rectangles. It is a debugging surface: one
// screen cell per field unit, no sprites.
type Viewer struct {
	game     *game.Game
	player   string
	specName string
	debug    bool
	logger   log.Logger

	pauseUI   *ebitenui.UI
	clipboard bool
	status    string
}

func NewViewer(g *game.Game, player, specName string, debug bool, logger log.Logger) *Viewer {
	v := &Viewer{game: g, player: player, specName: specName, debug: debug, logger: logger}
	v.pauseUI = NewPauseUI(v)
	if err := clipboard.Init(); err != nil {
		_ = level.Warn(logger).Log("msg", "clipboard unavailable", "err", err)
	} else {
		v.clipboard = true
	}
	return v
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.game.SetPaused(!v.game.Paused())
	}
	if v.game.Paused() {
		v.pauseUI.Update()
		return nil
	}
	if !v.game.Running() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			v.restart()
		}
		return nil
	}

	for key, dir := range steerKeys {
		if inpututil.IsKeyJustPressed(key) {
			if _, err := v.game.Steer(v.player, dir); err != nil {
				v.status = err.Error()
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyGrid()
	}

	return v.game.Update()
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	w := v.game.World()

	field, ok := ecs.First(w, component.PlayFieldComponent.Kind())
	if !ok {
		return
	}
	pf, _ := ecs.Get(w, field, component.PlayFieldComponent.Kind())
	fillCells(screen, 0, 0, pf.Width, pf.Height, colornames.Darkslategray)

	ecs.ForEach(w, component.PathfindingComponent.Kind(), func(_ ecs.Entity, p *component.Pathfinding) {
		for _, n := range p.Path {
			fillCells(screen, n.WorldX-pf.X, n.WorldY-pf.Y, 1, 1, color.NRGBA{R: 0x87, G: 0xce, B: 0xfa, A: 0x60})
		}
	})

	drawTagged(screen, w, pf, component.FoodTagComponent.Kind(), colornames.Red)
	drawTagged(screen, w, pf, component.CoinTagComponent.Kind(), colornames.Gold)
	drawTagged(screen, w, pf, component.BombTagComponent.Kind(), colornames.Gray)

	ecs.ForEach(w, component.SnakeComponent.Kind(), func(e ecs.Entity, s *component.Snake) {
		body := colornames.Orange
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			body = colornames.Limegreen
		}
		for i, part := range s.Parts {
			c := body
			if i == 0 {
				c = colornames.White
			}
			fillCells(screen, part.X-pf.X, part.Y-pf.Y, 1, 1, c)
		}
	})

	v.drawHUD(screen, pf)
	if v.game.Paused() {
		v.pauseUI.Draw(screen)
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.screenSize()
}

func (v *Viewer) screenSize() (int, int) {
	f := v.game.Spec().Field
	return int(f.Width) * cellSize, int(f.Height)*cellSize + hudHeight
}

func (v *Viewer) drawHUD(screen *ebiten.Image, pf *component.PlayField) {
	snap := v.game.Snapshot()
	text := fmt.Sprintf("Score: %d  Apples: %d  Coins: %d  Bombs: %d  Time: %ds",
		snap.Score, snap.Apples, snap.Coins, snap.Bombs, snap.Ticks/max(1, v.game.TickRate()))
	if gs, ok := ecs.First(v.game.World(), component.GameStateComponent.Kind()); ok {
		if st, ok := ecs.Get(v.game.World(), gs, component.GameStateComponent.Kind()); ok {
			text += fmt.Sprintf("  Next bomb: %ds", max(0, st.NextBombTick-st.Ticks)/max(1, st.TickRate))
		}
	}
	if !v.game.Running() {
		text += "  GAME OVER (enter restarts)"
	} else if v.status != "" {
		text += "  " + v.status
	}
	ebitenutil.DebugPrintAt(screen, text, 4, int(pf.Height)*cellSize+2)
}

// copyGrid puts the search grid of every computer snake on the clipboard.
func (v *Viewer) copyGrid() {
	if !v.clipboard {
		v.status = "no clipboard"
		return
	}
	var dump []byte
	for _, s := range v.game.Spec().Snakes {
		grid, path, ok := v.game.Debug(s.Name)
		if !ok {
			continue
		}
		dump = fmt.Appendf(dump, "# %s\n%s\n", s.Name, grid.Render(path))
	}
	if len(dump) == 0 {
		v.status = "no grid, run with -debug"
		return
	}
	clipboard.Write(clipboard.FmtText, dump)
	v.status = "grid copied"
}

func (v *Viewer) restart() {
	spec, err := prefabs.LoadGameSpec(v.specName)
	if err != nil {
		_ = level.Error(v.logger).Log("msg", "restart failed", "err", err)
		return
	}
	if !hasSnake(spec, v.player) {
		v.player = addPlayer(spec)
	}
	g, err := game.New(spec, game.WithLogger(v.logger), game.WithDebug(v.debug))
	if err != nil {
		_ = level.Error(v.logger).Log("msg", "restart failed", "err", err)
		return
	}
	v.game = g
	v.status = ""
	ebiten.SetTPS(g.TickRate())
}

func drawTagged[T any](screen *ebiten.Image, w *ecs.World, pf *component.PlayField, kind component.ComponentKind[T], c color.Color) {
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			return
		}
		fillCells(screen, t.X-pf.X, t.Y-pf.Y, col.Width, col.Height, c)
	})
}

func fillCells(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.FillRect(screen, float32(x*cellSize), float32(y*cellSize), float32(w*cellSize), float32(h*cellSize), c, false)
}

func hasSnake(spec *prefabs.GameSpec, name string) bool {
	for _, s := range spec.Snakes {
		if s.Name == name {
			return true
		}
	}
	return false
}

// addPlayer puts a keyboard snake in the middle of the field heading up.
func addPlayer(spec *prefabs.GameSpec) string {
	const name = "player"
	spec.Snakes = append(spec.Snakes, prefabs.SnakeSpec{
		Name:      name,
		Control:   prefabs.ControlPlayer,
		X:         spec.Field.X + float64(int(spec.Field.Width/2)),
		Y:         spec.Field.Y + float64(int(spec.Field.Height/2)),
		Direction: pathfind.Up,
	})
	return name
}
