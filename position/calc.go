package position

// Compute derives the mover's absolute top-left coordinates from two
// geometry snapshots and two anchor codes.
//
// Starting at the target's top-left corner, the mover's own dimension is
// subtracted (half for Center, full for End) so the mover's anchor point,
// not its corner, lands on the reference, then the target's dimension is
// added likewise to move the reference from the target's corner to the
// target's anchor point. The mover's margins are subtracted because the
// rendering engine re-adds them when laying out the element; missing or
// "auto" margins must be passed as 0 by the caller.
//
// Offsets are added only when non-zero, so a zero offset cannot perturb
// fractional coordinates. The result is a pure function of the inputs:
// no rounding, no clamping.
func Compute(moverRect, targetRect Rect, moverCode, targetCode Code, offsetX, offsetY, marginLeft, marginTop float64) Result {
	x := targetRect.X
	y := targetRect.Y

	switch moverCode.Horizontal() {
	case Center:
		x -= moverRect.W / 2
	case End:
		x -= moverRect.W
	}
	switch moverCode.Vertical() {
	case Center:
		y -= moverRect.H / 2
	case End:
		y -= moverRect.H
	}

	switch targetCode.Horizontal() {
	case Center:
		x += targetRect.W / 2
	case End:
		x += targetRect.W
	}
	switch targetCode.Vertical() {
	case Center:
		y += targetRect.H / 2
	case End:
		y += targetRect.H
	}

	x -= marginLeft
	y -= marginTop

	if offsetX != 0 {
		x += offsetX
	}
	if offsetY != 0 {
		y += offsetY
	}

	return Result{Left: x, Top: y}
}
