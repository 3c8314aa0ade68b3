package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/frontend"
)

const (
	gridX = 2
	gridY = 4
	cellW = 4

	tokenRune = '●'
	emptyRune = '·'
	arrowRune = '▼'
)

const helpText = "1-7 drop  ←/→ enter select  e/m/h new game  r restart  q quit"

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleArrow   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHuman   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBot     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLoss    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDraw    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Actions are the game commands the keyboard can trigger besides dropping a piece.
type Actions struct {
	Reset      func(difficulty entity.Difficulty)
	Difficulty func() entity.Difficulty
}

// View draws the board on a tcell screen.
type View struct {
	screen tcell.Screen

	mu       sync.Mutex
	rows     int
	cols     int
	tokens   [][]int
	selected int
	status   string
	result   *frontend.Result
	onColumn func(col int)

	buttons tcell.ButtonMask
}

var _ frontend.View = (*View)(nil)

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

func (that *View) BuildGrid(rows, cols int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rows, that.cols = rows, cols
	that.tokens = make([][]int, rows)
	for row := range that.tokens {
		that.tokens[row] = make([]int, cols)
	}
	that.selected = cols / 2

	that.draw()
}

func (that *View) BindColumns(onColumn func(col int)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onColumn = onColumn
}

func (that *View) HasToken(row, col int) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.inGrid(row, col) {
		return false
	}

	return that.tokens[row][col] != entity.EmptyCell
}

func (that *View) AddToken(row, col, player int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.inGrid(row, col) {
		return
	}

	that.tokens[row][col] = player
	that.draw()
}

func (that *View) RemoveToken(row, col int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.inGrid(row, col) {
		return
	}

	that.tokens[row][col] = entity.EmptyCell
	that.draw()
}

func (that *View) SetStatus(status string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.status = status
	that.draw()
}

func (that *View) ShowResult(result frontend.Result) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.result = &result
	that.draw()
}

func (that *View) HideResult() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.result = nil
	that.draw()
}

// Run handles input until the player quits or ctx is done. Column picks and resets run in their
// own goroutines so the screen keeps responding while a request is outstanding.
func (that *View) Run(ctx context.Context, actions Actions) error {
	that.screen.EnableMouse()

	that.mu.Lock()
	that.draw()
	that.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := that.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			that.screen.Sync()
			that.mu.Lock()
			that.draw()
			that.mu.Unlock()
		case *tcell.EventKey:
			if that.handleKey(ev, actions) {
				return nil
			}
		case *tcell.EventMouse:
			that.handleMouse(ev)
		}
	}
}

// handleKey reports whether the player asked to quit.
func (that *View) handleKey(ev *tcell.EventKey, actions Actions) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		that.moveSelection(-1)
	case tcell.KeyRight:
		that.moveSelection(1)
	case tcell.KeyEnter, tcell.KeyDown:
		that.dropSelected()
	case tcell.KeyRune:
		return that.handleRune(ev.Rune(), actions)
	}

	return false
}

func (that *View) handleRune(r rune, actions Actions) bool {
	switch r {
	case 'q', 'Q':
		return true
	case ' ':
		that.dropSelected()
	case 'e':
		that.reset(actions, entity.DifficultyEasy)
	case 'm':
		that.reset(actions, entity.DifficultyMedium)
	case 'h':
		that.reset(actions, entity.DifficultyHard)
	case 'r':
		if actions.Difficulty != nil {
			that.reset(actions, actions.Difficulty())
		}
	default:
		if r >= '1' && r <= '9' {
			that.drop(int(r - '1'))
		}
	}

	return false
}

// handleMouse drops only when the left button goes down; motion with it held does nothing.
func (that *View) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()

	that.mu.Lock()
	pressed := ev.Buttons()&tcell.Button1 != 0 && that.buttons&tcell.Button1 == 0
	that.buttons = ev.Buttons()
	col, ok := that.columnAt(x, y)
	that.mu.Unlock()

	if pressed && ok {
		that.drop(col)
	}
}

func (that *View) reset(actions Actions, difficulty entity.Difficulty) {
	if actions.Reset != nil {
		go actions.Reset(difficulty)
	}
}

func (that *View) moveSelection(delta int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.cols == 0 {
		return
	}

	that.selected = (that.selected + delta + that.cols) % that.cols
	that.draw()
}

func (that *View) dropSelected() {
	that.mu.Lock()
	col := that.selected
	that.mu.Unlock()

	that.drop(col)
}

func (that *View) drop(col int) {
	that.mu.Lock()
	if col < 0 || col >= that.cols {
		that.mu.Unlock()
		return
	}

	that.selected = col
	that.draw()
	onColumn := that.onColumn
	that.mu.Unlock()

	if onColumn != nil {
		go onColumn(col)
	}
}

// columnAt maps a screen position over the grid, its header or arrow row to a column.
func (that *View) columnAt(x, y int) (int, bool) {
	if x < gridX || y < gridY-2 || y >= gridY+that.rows {
		return 0, false
	}

	col := (x - gridX) / cellW
	if col >= that.cols {
		return 0, false
	}

	return col, true
}

func (that *View) inGrid(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.cols
}

// draw repaints the whole screen. Caller holds mu.
func (that *View) draw() {
	that.screen.Clear()

	drawText(that.screen, gridX, 1, styleTitle, "Connect Four")

	for col := 0; col < that.cols; col++ {
		x := gridX + col*cellW + cellW/2
		drawText(that.screen, x, gridY-2, styleDefault, fmt.Sprintf("%d", col+1))

		if col == that.selected {
			that.screen.SetContent(x, gridY-1, arrowRune, nil, styleArrow)
		}
	}

	for row := 0; row < that.rows; row++ {
		y := gridY + row
		for col := 0; col < that.cols; col++ {
			x := gridX + col*cellW
			that.screen.SetContent(x, y, '│', nil, styleGrid)
			r, style := tokenCell(that.tokens[row][col])
			that.screen.SetContent(x+cellW/2, y, r, nil, style)
		}
		that.screen.SetContent(gridX+that.cols*cellW, y, '│', nil, styleGrid)
	}

	bottom := gridY + that.rows
	for x := gridX; x <= gridX+that.cols*cellW; x++ {
		that.screen.SetContent(x, bottom, '─', nil, styleGrid)
	}

	drawText(that.screen, gridX, bottom+2, styleDefault, that.status)

	if that.result != nil {
		drawText(that.screen, gridX, bottom+3, resultStyle(that.result.Outcome), that.result.Title)
		drawText(that.screen, gridX, bottom+4, styleDefault, that.result.Message)
	}

	drawText(that.screen, gridX, bottom+6, styleEmpty, helpText)

	that.screen.Show()
}

func tokenCell(player int) (rune, tcell.Style) {
	switch player {
	case entity.PlayerHuman:
		return tokenRune, styleHuman
	case entity.PlayerBot:
		return tokenRune, styleBot
	default:
		return emptyRune, styleEmpty
	}
}

func resultStyle(outcome entity.Outcome) tcell.Style {
	switch outcome {
	case entity.OutcomeWin:
		return styleWin
	case entity.OutcomeLoss:
		return styleLoss
	default:
		return styleDraw
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
