package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/frontend"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	view := NewView(screen)
	view.BuildGrid(entity.Rows, entity.Columns)

	return view, screen
}

func cellAt(screen tcell.SimulationScreen, row, col int) (rune, tcell.Color) {
	r, _, style, _ := screen.GetContent(gridX+col*cellW+cellW/2, gridY+row)
	fg, _, _ := style.Decompose()
	return r, fg
}

func textAt(screen tcell.SimulationScreen, x, y, n int) string {
	runes := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		runes = append(runes, r)
	}
	return string(runes)
}

func TestView_Tokens(t *testing.T) {
	t.Run("Empty grid after BuildGrid", func(t *testing.T) {
		view, screen := newTestView(t)

		for row := 0; row < entity.Rows; row++ {
			for col := 0; col < entity.Columns; col++ {
				assert.False(t, view.HasToken(row, col))
				r, _ := cellAt(screen, row, col)
				assert.Equal(t, emptyRune, r)
			}
		}
	})

	t.Run("Human tokens are red and bot tokens yellow", func(t *testing.T) {
		// Given: an empty grid
		view, screen := newTestView(t)

		// When: one token of each player is added
		view.AddToken(5, 3, entity.PlayerHuman)
		view.AddToken(4, 3, entity.PlayerBot)

		// Then: both are drawn in their colour
		r, fg := cellAt(screen, 5, 3)
		assert.Equal(t, tokenRune, r)
		assert.Equal(t, tcell.ColorRed, fg)

		r, fg = cellAt(screen, 4, 3)
		assert.Equal(t, tokenRune, r)
		assert.Equal(t, tcell.ColorYellow, fg)

		assert.True(t, view.HasToken(5, 3))
		assert.True(t, view.HasToken(4, 3))
	})

	t.Run("RemoveToken clears the cell", func(t *testing.T) {
		view, screen := newTestView(t)
		view.AddToken(5, 0, entity.PlayerHuman)

		view.RemoveToken(5, 0)

		assert.False(t, view.HasToken(5, 0))
		r, _ := cellAt(screen, 5, 0)
		assert.Equal(t, emptyRune, r)
	})

	t.Run("Cells outside the grid are ignored", func(t *testing.T) {
		view, _ := newTestView(t)

		view.AddToken(entity.Rows, 0, entity.PlayerHuman)
		view.AddToken(0, -1, entity.PlayerHuman)

		assert.False(t, view.HasToken(entity.Rows, 0))
		assert.False(t, view.HasToken(0, -1))
	})
}

func TestView_StatusAndResult(t *testing.T) {
	view, screen := newTestView(t)
	bottom := gridY + entity.Rows

	view.SetStatus(frontend.StatusThinking)
	assert.Equal(t, frontend.StatusThinking, textAt(screen, gridX, bottom+2, len(frontend.StatusThinking)))

	result := frontend.ResultFor(entity.OutcomeWin)
	view.ShowResult(result)
	assert.Equal(t, result.Title, textAt(screen, gridX, bottom+3, len(result.Title)))

	view.HideResult()
	r, _, _, _ := screen.GetContent(gridX, bottom+3)
	assert.Equal(t, ' ', r)
}

func TestView_Run(t *testing.T) {
	type fixture struct {
		view    *View
		screen  tcell.SimulationScreen
		columns chan int
		resets  chan entity.Difficulty
		done    chan error
		cancel  context.CancelFunc
	}

	start := func(t *testing.T) *fixture {
		t.Helper()

		view, screen := newTestView(t)
		f := &fixture{
			view:    view,
			screen:  screen,
			columns: make(chan int, 4),
			resets:  make(chan entity.Difficulty, 4),
			done:    make(chan error, 1),
		}

		view.BindColumns(func(col int) { f.columns <- col })

		var ctx context.Context
		ctx, f.cancel = context.WithCancel(context.Background())
		t.Cleanup(f.cancel)

		go func() {
			f.done <- view.Run(ctx, Actions{
				Reset:      func(d entity.Difficulty) { f.resets <- d },
				Difficulty: func() entity.Difficulty { return entity.DifficultyMedium },
			})
		}()

		return f
	}

	receive := func(t *testing.T, ch <-chan int) int {
		t.Helper()
		select {
		case v := <-ch:
			return v
		case <-time.After(time.Second):
			t.Fatal("no column picked")
			return -1
		}
	}

	t.Run("Number keys drop in the column", func(t *testing.T) {
		f := start(t)

		f.screen.InjectKey(tcell.KeyRune, '4', tcell.ModNone)

		assert.Equal(t, 3, receive(t, f.columns))
	})

	t.Run("Arrow keys move the selection and enter drops", func(t *testing.T) {
		// Given: the selection starts on the centre column
		f := start(t)

		// When: moving right twice and left once then pressing enter
		f.screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
		f.screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
		f.screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
		f.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

		// Then: the piece goes into the column right of centre
		assert.Equal(t, entity.Columns/2+1, receive(t, f.columns))
	})

	t.Run("Mouse click drops in the clicked column", func(t *testing.T) {
		f := start(t)

		f.screen.InjectMouse(gridX+cellW*5+1, gridY+2, tcell.Button1, tcell.ModNone)

		assert.Equal(t, 5, receive(t, f.columns))
	})

	t.Run("Dragging with the button held drops once per press", func(t *testing.T) {
		// Given: a running view
		f := start(t)
		at := func(col int) int { return gridX + cellW*col + 1 }

		// When: pressing on column 1, dragging over 2 and 3, releasing, then clicking column 4
		f.screen.InjectMouse(at(1), gridY+1, tcell.Button1, tcell.ModNone)
		f.screen.InjectMouse(at(2), gridY+1, tcell.Button1, tcell.ModNone)
		f.screen.InjectMouse(at(3), gridY+1, tcell.Button1, tcell.ModNone)
		f.screen.InjectMouse(at(3), gridY+1, tcell.ButtonNone, tcell.ModNone)
		f.screen.InjectMouse(at(4), gridY+1, tcell.Button1, tcell.ModNone)

		// Then: only the two presses picked a column
		picked := []int{receive(t, f.columns), receive(t, f.columns)}
		assert.ElementsMatch(t, []int{1, 4}, picked)

		select {
		case col := <-f.columns:
			t.Fatalf("unexpected pick of column %d", col)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Difficulty keys reset the game", func(t *testing.T) {
		f := start(t)

		f.screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
		f.screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)

		got := make([]entity.Difficulty, 0, 2)
		for len(got) < 2 {
			select {
			case d := <-f.resets:
				got = append(got, d)
			case <-time.After(time.Second):
				t.Fatal("no reset")
			}
		}

		// r restarts at the current difficulty
		assert.ElementsMatch(t, []entity.Difficulty{entity.DifficultyHard, entity.DifficultyMedium}, got)
	})

	t.Run("q quits", func(t *testing.T) {
		f := start(t)

		f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

		select {
		case err := <-f.done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Run did not return")
		}
	})

	t.Run("Context cancel stops the loop", func(t *testing.T) {
		f := start(t)

		f.cancel()

		select {
		case err := <-f.done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Run did not return")
		}
	})
}
