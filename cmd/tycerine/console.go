package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tycerine/internal/game"
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events/subscribers"
)

const helpText = `Commands:
  place <cell>    place a Pawn, e.g. place 8D
  hop <cell>      select or deselect your Hopper
  move <cell>     move the selected Hopper
  fusion          enter or leave fusion mode
  center <cell>   choose the fusion center
  target <cell>   choose where the fused piece goes
  undo | reset | forfeit
  legal | board | log | stats
  demo [n]        play n random moves (default 10)
  help | quit
`

type consoleOptions struct {
	Color          bool
	ShowLegalCells bool
	LogTail        int
}

// console is the terminal front end. It also answers fusion offers by asking on the same input.
type console struct {
	in   *bufio.Scanner
	out  io.Writer
	opts consoleOptions

	engine  *game.Engine
	gameLog *subscribers.GameLogSubscriber
	rng     *rand.Rand

	// display state, cleared when the next command runs
	highlight core.CellSet
	removed   []core.Coordinate
	selected  *core.Coordinate
}

func newConsole(in *bufio.Scanner, out io.Writer, opts consoleOptions) *console {
	return &console{
		in:   in,
		out:  out,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *console) attach(engine *game.Engine, gameLog *subscribers.GameLogSubscriber) {
	c.engine = engine
	c.gameLog = gameLog
}

// ConfirmFusion implements game.FusionDecider
func (c *console) ConfirmFusion(offer game.FusionOffer) bool {
	fmt.Fprintf(c.out, "%s can fuse a %s at %s. Fuse? [y/N] ", offer.Player, offer.Kind.Product(), offer.Center)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *console) run() error {
	fmt.Fprint(c.out, helpText)
	c.printBoard()

	for {
		fmt.Fprintf(c.out, "%s> ", c.engine.CurrentPlayer())
		if !c.in.Scan() {
			return c.in.Err()
		}
		quit, err := c.execute(c.in.Text())
		if err != nil {
			c.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// execute runs one command line. It reports whether the console should stop.
func (c *console) execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(c.out, helpText)
		return false, nil
	case "board":
		c.printBoard()
		return false, nil
	case "legal":
		fmt.Fprintf(c.out, "Legal cells: %s\n", c.engine.LegalPlacementCells())
		if fc := c.engine.FusionCandidates(); fc.Len() > 0 {
			fmt.Fprintf(c.out, "Fusion centers: %s\n", fc)
		}
		return false, nil
	case "log":
		c.printLog()
		return false, nil
	case "stats":
		c.printStats()
		return false, nil
	case "demo":
		return false, c.demo(args)
	}

	c.clearMarks()
	res, err := c.apply(cmd, args)
	if err != nil {
		return false, err
	}
	c.report(res)
	c.printBoard()
	return false, nil
}

// apply turns a move command into an engine action
func (c *console) apply(cmd string, args []string) (*game.MoveResult, error) {
	var action core.Action
	switch cmd {
	case "undo":
		action = &core.UndoAction{}
	case "reset":
		action = &core.ResetAction{}
	case "forfeit":
		action = &core.ForfeitAction{}
	case "fusion":
		action = &core.ToggleFusionAction{}
	case "place", "hop", "move", "center", "target":
		at, err := cellArg(args)
		if err != nil {
			return nil, err
		}
		action = cellAction(cmd, at)
	default:
		return nil, fmt.Errorf("unknown command %q, type help", cmd)
	}
	return c.engine.Apply(action)
}

func cellArg(args []string) (core.Coordinate, error) {
	if len(args) != 1 {
		return core.Coordinate{}, errors.New("expected one cell, e.g. 5D")
	}
	return core.ParseCoordinate(args[0])
}

func cellAction(cmd string, at core.Coordinate) core.Action {
	switch cmd {
	case "place":
		return &core.PlaceAction{At: at}
	case "hop":
		return &core.SelectHopperAction{At: at}
	case "move":
		return &core.RelocateHopperAction{To: at}
	case "center":
		return &core.SelectFusionCenterAction{Center: at}
	default:
		return &core.ExecuteFusionAction{Target: at}
	}
}

func (c *console) clearMarks() {
	c.highlight = nil
	c.removed = nil
	c.selected = nil
}

// report prints what a move did and remembers what to mark on the next board
func (c *console) report(res *game.MoveResult) {
	c.highlight = res.Highlighted
	switch res.Action {
	case core.ActionSelectHopper, core.ActionSelectFusionCenter:
		if res.Highlighted != nil {
			at := res.At
			c.selected = &at
		}
	}

	if res.FusionDeclined {
		fmt.Fprintln(c.out, "Fusion declined.")
	}
	if res.Fusion != nil {
		fmt.Fprintf(c.out, "%s fusion: new %s at %s\n", res.Fusion.Kind, res.Fusion.Created, res.Fusion.Target)
	}
	if b := res.Battle; b.Occurred {
		fmt.Fprintf(c.out, "Battle at %s: attack %d vs defense %d, %s\n", b.Attacker, b.AttackPower, b.DefensePower, b.Outcome)
		for _, r := range b.Removed {
			c.removed = append(c.removed, r.At)
		}
	}
	if res.GameOver {
		fmt.Fprintf(c.out, "Game over: %s wins (%s)\n", res.Winner, res.Reason)
	}
	c.printLog()
}

func (c *console) printBoard() {
	highlight := c.highlight
	if highlight == nil && c.opts.ShowLegalCells {
		highlight = c.engine.LegalPlacementCells()
	}
	fmt.Fprint(c.out, game.RenderBoard(c.engine.GameState().Board, game.RenderOptions{
		Color:     c.opts.Color,
		Highlight: highlight,
		Removed:   c.removed,
		Selected:  c.selected,
	}))

	gs := c.engine.GameState()
	if gs.Over {
		fmt.Fprintf(c.out, "%s won (%s). Type reset to play again.\n", gs.Winner, gs.EndReason)
		return
	}
	fmt.Fprintf(c.out, "Move %d, %s to play, phase %s\n", gs.MoveNumber+1, gs.Turn.CurrentPlayer, gs.Turn.Phase)
}

func (c *console) printLog() {
	if c.gameLog == nil || c.opts.LogTail <= 0 {
		return
	}
	for _, e := range c.gameLog.Tail(c.opts.LogTail) {
		fmt.Fprintf(c.out, "  [%s] %s\n", e.Category, e.Message)
	}
}

func (c *console) printStats() {
	stats := c.engine.Stats()
	for _, p := range []core.Player{core.PlayerX, core.PlayerO} {
		s := stats[p]
		fmt.Fprintf(c.out, "%s: %d pawns, %d defenders, %d hoppers, fortress %t, ap %d, dp %d, %d legal cells, %d fusion centers\n",
			p, s.Pawns, s.Defenders, s.Hoppers, s.HasFortress, s.TotalAP, s.TotalDP, s.LegalCells, s.FusionCenters)
	}
}

func (c *console) printError(err error) {
	var over *core.GameOverError
	switch {
	case errors.As(err, &over):
		fmt.Fprintf(c.out, "The game is over, %s won. Type reset to play again.\n", over.Winner)
	case core.IsRejection(err):
		fmt.Fprintf(c.out, "Not allowed: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// demo plays random moves for both sides, with fusion offers answered at random
func (c *console) demo(args []string) error {
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("demo: bad move count %q", args[0])
		}
		n = v
	}

	c.engine.SetDecider(game.DeciderFunc(func(game.FusionOffer) bool { return c.rng.Intn(2) == 0 }))
	defer c.engine.SetDecider(c)

	c.clearMarks()
	for played := 0; played < n; {
		action := game.GenerateRandomAction(c.engine, c.rng)
		if action == nil {
			break
		}
		res, err := c.engine.Apply(action)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s: %s\n", res.Player, action.Describe())
		if res.Moved || res.GameOver {
			played++
		}
		if res.Battle.Occurred {
			c.removed = nil
			for _, r := range res.Battle.Removed {
				c.removed = append(c.removed, r.At)
			}
		}
	}

	log.Debug().Int("moves", n).Msg("Demo finished")
	c.highlight = nil
	c.printLog()
	c.printBoard()
	return nil
}

var _ game.FusionDecider = (*console)(nil)
