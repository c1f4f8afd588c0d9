package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/messages"
	"github.com/VTGare/minesweeper/session"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Service is the part of session.Service the UI drives.
type Service interface {
	Game(ctx context.Context, gameID string) (*game.Snapshot, error)
	Reveal(ctx context.Context, gameID string, p game.Position) (*session.Result, error)
	ToggleFlag(ctx context.Context, gameID string, p game.Position) (*session.Result, error)
	ToggleQuestion(ctx context.Context, gameID string, p game.Position) (*session.Result, error)
	Chord(ctx context.Context, gameID string, p game.Position) (*session.Result, error)
	Pause(ctx context.Context, gameID string) (*session.Result, error)
	Resume(ctx context.Context, gameID string) (*session.Result, error)
}

const help = "arrows move • enter reveal • f flag • ? question • c chord • p pause • q quit"

type UI struct {
	ctx    context.Context
	svc    Service
	gameID string
	quote  func(game.Status) string

	app    *tview.Application
	board  *tview.Table
	status *tview.TextView
	events *tview.TextView

	paused bool
	lines  []string
}

// New builds the UI for one game. quote may be nil.
func New(ctx context.Context, svc Service, gameID string, quote func(game.Status) string) *UI {
	ui := &UI{
		ctx:    ctx,
		svc:    svc,
		gameID: gameID,
		quote:  quote,
		app:    tview.NewApplication(),
		board:  tview.NewTable(),
		status: tview.NewTextView().SetDynamicColors(true),
		events: tview.NewTextView().SetDynamicColors(true),
	}

	ui.board.SetSelectable(true, true)
	ui.board.SetBorder(true).SetTitle(" minesweeper ")
	ui.board.SetInputCapture(ui.handle)
	ui.events.SetBorder(true).SetTitle(" " + help + " ")

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.board, 0, 1, true).
		AddItem(ui.status, 1, 0, false).
		AddItem(ui.events, 7, 0, false)

	ui.app.SetRoot(layout, true)
	return ui
}

func (ui *UI) Run() error {
	snapshot, err := ui.svc.Game(ui.ctx, ui.gameID)
	if err != nil {
		return err
	}

	if err := ui.draw(snapshot); err != nil {
		return err
	}

	ui.board.Select(snapshot.Difficulty.Rows/2, snapshot.Difficulty.Columns/2)
	return ui.app.Run()
}

func (ui *UI) Stop() {
	ui.app.Stop()
}

func (ui *UI) handle(event *tcell.EventKey) *tcell.EventKey {
	row, col := ui.board.GetSelection()
	p := game.Pos(row, col)

	var (
		res *session.Result
		err error
	)

	switch {
	case event.Key() == tcell.KeyEnter:
		res, err = ui.svc.Reveal(ui.ctx, ui.gameID, p)
	case event.Key() != tcell.KeyRune:
		return event
	default:
		switch event.Rune() {
		case 'f', 'F':
			res, err = ui.svc.ToggleFlag(ui.ctx, ui.gameID, p)
		case '?':
			res, err = ui.svc.ToggleQuestion(ui.ctx, ui.gameID, p)
		case 'c', 'C':
			res, err = ui.svc.Chord(ui.ctx, ui.gameID, p)
		case 'p', 'P':
			if ui.paused {
				res, err = ui.svc.Resume(ui.ctx, ui.gameID)
			} else {
				res, err = ui.svc.Pause(ui.ctx, ui.gameID)
			}
		case 'q', 'Q':
			ui.Stop()
			return nil
		default:
			return event
		}
	}

	if err != nil {
		ui.print("[red]" + messages.ErrMove(err).Error())
		return nil
	}

	if err := ui.draw(res.Snapshot); err != nil {
		ui.print("[red]" + messages.ErrMove(err).Error())
		return nil
	}

	for _, e := range res.Events {
		ui.print(messages.Event(e))
	}

	if res.Statistics.Status.Over() && ui.quote != nil {
		if q := ui.quote(res.Statistics.Status); q != "" {
			ui.print("[yellow]" + q)
		}
	}

	return nil
}

func (ui *UI) draw(snapshot *game.Snapshot) error {
	g, err := game.Restore(snapshot)
	if err != nil {
		return err
	}

	ui.paused = g.Status() == game.Paused
	g.Board().Each(func(c game.Cell) {
		text, color := cellText(c, ui.paused)
		ui.board.SetCell(c.Position.Row, c.Position.Col,
			tview.NewTableCell(text).
				SetTextColor(color).
				SetAlign(tview.AlignCenter))
	})

	ui.status.SetText(statusLine(g.Statistics()))
	return nil
}

func (ui *UI) print(line string) {
	ui.lines = append(ui.lines, line)
	if len(ui.lines) > 5 {
		ui.lines = ui.lines[len(ui.lines)-5:]
	}

	ui.events.SetText(strings.Join(ui.lines, "\n"))
}

var digits = []tcell.Color{
	tcell.ColorGray,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorWhite,
	tcell.ColorSilver,
}

// cellText returns the glyph for a cell. A paused board hides everything so
// it can't be studied off the clock.
func cellText(c game.Cell, paused bool) (string, tcell.Color) {
	switch {
	case paused:
		return "#", tcell.ColorDarkGray
	case c.Visibility == game.Flagged:
		return "F", tcell.ColorRed
	case c.Visibility == game.Questioned:
		return "?", tcell.ColorYellow
	case c.Visibility == game.Hidden:
		return ".", tcell.ColorWhite
	case c.Mine:
		return "*", tcell.ColorRed
	case c.Adjacent == 0:
		return " ", tcell.ColorGray
	}

	return fmt.Sprint(c.Adjacent), digits[c.Adjacent]
}

func statusLine(s game.Statistics) string {
	color := "white"
	switch s.Status {
	case game.Won:
		color = "green"
	case game.Lost:
		color = "red"
	case game.Paused:
		color = "yellow"
	}

	return fmt.Sprintf("[%v]%v", color, messages.Statistics(s))
}
