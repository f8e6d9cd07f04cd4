package interaction

// centerAnimTicks is the length of the one-shot centering animation in
// frames.
const centerAnimTicks = 30

type centerAnim struct {
	fromTX, fromTY float64
	tick           int
}

// handleSettle runs on the engine's settle event. The first settle of a
// snapshot with a designated center node animates the translate that puts
// that node at the viewport's geometric center; later settles (after a
// drag, say) leave the transform alone.
func (c *Controller) handleSettle() {
	if c.closed || !c.centerArmed {
		return
	}
	c.centerArmed = false

	if _, ok := c.eng.Position(c.snap.CenterID()); !ok {
		return
	}
	c.anim = &centerAnim{
		fromTX: c.transform.TX,
		fromTY: c.transform.TY,
	}
	c.src.Schedule(c.stepCenterAnim)
}

// stepCenterAnim recomputes the target translate every frame, so a zoom
// or resize during the shot still lands the center node on the viewport
// center.
func (c *Controller) stepCenterAnim() {
	if c.closed || c.anim == nil {
		return
	}
	pos, ok := c.eng.Position(c.snap.CenterID())
	if !ok {
		c.anim = nil
		return
	}
	cx, cy := c.vp.Center()
	toTX := cx - pos.X*c.transform.Scale
	toTY := cy - pos.Y*c.transform.Scale

	a := c.anim
	a.tick++
	if a.tick >= centerAnimTicks {
		c.transform.TX = toTX
		c.transform.TY = toTY
		c.anim = nil
		return
	}
	p := easeInOutCubic(float64(a.tick) / centerAnimTicks)
	c.transform.TX = a.fromTX + (toTX-a.fromTX)*p
	c.transform.TY = a.fromTY + (toTY-a.fromTY)*p
	c.src.Schedule(c.stepCenterAnim)
}

// Animating reports whether the centering animation is in flight; hosts
// keep requesting frames while it is.
func (c *Controller) Animating() bool {
	return c.anim != nil
}

func easeInOutCubic(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := 2*p - 2
	return 1 + q*q*q/2
}
