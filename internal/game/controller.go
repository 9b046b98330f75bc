package game

import (
	"github.com/evalboard/evalboard/internal/board"
)

// Controller drives the click-to-move interaction as a state machine:
//
//	Idle --(click own piece)--> Selected
//	Selected --(click legal target)--> apply, back to Idle
//	Selected --(pawn reaches last rank)--> AwaitingPromotion
//	AwaitingPromotion --(ResolvePromotion)--> apply, back to Idle
//
// Selection is cleared after every move attempt, successful or not.
// While a promotion choice is pending the controller ignores board
// clicks; the view supplies the choice through ResolvePromotion.
type Controller struct {
	session *Session

	selected board.Square
	targets  []board.Move

	pendingFrom  board.Square
	pendingTo    board.Square
	awaitingProm bool

	// onChange, when set, fires after every state mutation so the view
	// can redraw and refresh the evaluation.
	onChange func()
}

// NewController wraps a session with interaction state.
func NewController(s *Session) *Controller {
	return &Controller{
		session:  s,
		selected: board.NoSquare,
	}
}

// SetChangeListener registers the redraw/evaluation notification.
func (c *Controller) SetChangeListener(fn func()) {
	c.onChange = fn
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// HandleSquareClick feeds one board click into the state machine.
func (c *Controller) HandleSquareClick(sq board.Square) {
	if c.awaitingProm || !sq.IsValid() {
		return
	}

	if c.selected == board.NoSquare {
		c.trySelect(sq)
		return
	}

	from := c.selected
	// Re-clicking another of our own pieces switches the selection
	// instead of attempting a self-capture.
	if piece := c.session.PieceAt(sq); piece != board.NoPiece &&
		piece.Color() == c.session.SideToMove() && sq != from {
		c.trySelect(sq)
		return
	}

	c.attemptMove(from, sq)
}

// trySelect enters Selected when sq holds a piece of the side to move.
func (c *Controller) trySelect(sq board.Square) {
	piece := c.session.PieceAt(sq)
	if piece == board.NoPiece || piece.Color() != c.session.SideToMove() {
		c.clearSelection()
		return
	}
	c.selected = sq
	c.targets = c.session.MovesFrom(sq)
	c.notify()
}

// attemptMove resolves (from, to) against the selected piece's targets.
// A pawn reaching the terminal rank suspends until ResolvePromotion
// supplies the choice; anything else is applied immediately. An illegal
// destination only clears the selection.
func (c *Controller) attemptMove(from, to board.Square) {
	var match board.Move
	for _, m := range c.targets {
		if m.From == from && m.To == to {
			match = m
			break
		}
	}

	if match == board.NoMove {
		c.clearSelection()
		c.notify()
		return
	}

	if match.IsPromotion() {
		c.pendingFrom = from
		c.pendingTo = to
		c.awaitingProm = true
		c.notify()
		return
	}

	c.applyAndClear(match)
}

// ResolvePromotion completes a suspended promotion with one of queen,
// rook, bishop or knight. Any other piece type falls back to queen.
func (c *Controller) ResolvePromotion(pt board.PieceType) {
	if !c.awaitingProm {
		return
	}
	switch pt {
	case board.Queen, board.Rook, board.Bishop, board.Knight:
	default:
		pt = board.Queen
	}
	m := board.NewPromotion(c.pendingFrom, c.pendingTo, pt)
	c.awaitingProm = false
	c.applyAndClear(m)
}

// CancelPromotion abandons a suspended promotion and resets selection.
func (c *Controller) CancelPromotion() {
	if !c.awaitingProm {
		return
	}
	c.awaitingProm = false
	c.clearSelection()
	c.notify()
}

func (c *Controller) applyAndClear(m board.Move) {
	// ErrIllegalMove is recovered locally: selection resets, the
	// position stays untouched.
	_ = c.session.Apply(m)
	c.clearSelection()
	c.notify()
}

// RequestUndo reverts the last move. An empty history is a no-op; the
// selection is cleared either way.
func (c *Controller) RequestUndo() {
	_ = c.session.Undo()
	c.clearSelection()
	c.notify()
}

func (c *Controller) clearSelection() {
	c.selected = board.NoSquare
	c.targets = nil
}

// Selected returns the selected origin square, or NoSquare when Idle.
func (c *Controller) Selected() board.Square {
	return c.selected
}

// Targets returns the legal moves from the selected square.
func (c *Controller) Targets() []board.Move {
	return c.targets
}

// AwaitingPromotion reports whether a promotion choice is pending and,
// if so, for which color.
func (c *Controller) AwaitingPromotion() (board.Color, bool) {
	if !c.awaitingProm {
		return board.White, false
	}
	return c.session.SideToMove(), true
}

// Session returns the underlying session.
func (c *Controller) Session() *Session {
	return c.session
}
