package simulation

import "math"

// jiggle is the minimum distance substituted for coincident bodies so force
// directions stay defined.
const jiggle = 1e-6

// applyLinkForce pulls linked bodies toward the target link distance. The
// displacement is split between both endpoints, biased by degree so heavily
// connected hubs move less than their leaves.
func (e *Engine) applyLinkForce() {
	for _, l := range e.links {
		s := e.bodies[l.source]
		t := e.bodies[l.target]

		dx := t.x + t.vx - s.x - s.vx
		dy := t.y + t.vy - s.y - s.vy
		dist := math.Hypot(dx, dy)
		if dist < jiggle {
			dist = jiggle
		}

		f := (dist - e.cfg.LinkDistance) / dist * e.alpha * e.cfg.LinkStrength
		fx := dx * f
		fy := dy * f

		bias := float64(e.degree[l.source]) / float64(e.degree[l.source]+e.degree[l.target])
		t.vx -= fx * bias
		t.vy -= fy * bias
		s.vx += fx * (1 - bias)
		s.vy += fy * (1 - bias)
	}
}

// applyChargeForce repels every body pair with inverse-distance decay.
func (e *Engine) applyChargeForce() {
	n := len(e.bodies)
	for i := 0; i < n; i++ {
		bi := e.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := e.bodies[j]

			dx := bj.x - bi.x
			dy := bj.y - bi.y
			distSq := dx*dx + dy*dy
			if distSq < jiggle {
				distSq = jiggle
			}

			// ChargeStrength is negative, so w pushes the pair apart.
			w := e.cfg.ChargeStrength * e.alpha / distSq
			bi.vx += dx * w
			bi.vy += dy * w
			bj.vx -= dx * w
			bj.vy -= dy * w
		}
	}
}

// applyCenterForce pulls every body weakly toward the viewport center on
// both axes.
func (e *Engine) applyCenterForce() {
	k := e.cfg.CenterStrength * e.alpha
	for _, b := range e.bodies {
		b.vx += (e.centerX - b.x) * k
		b.vy += (e.centerY - b.y) * k
	}
}

// applyCollideForce resolves circle overlap by displacing positions
// directly. A pinned body is immovable; its counterpart absorbs the full
// separation.
func (e *Engine) applyCollideForce() {
	n := len(e.bodies)
	for i := 0; i < n; i++ {
		bi := e.bodies[i]
		ri := bi.radius + CollidePadding
		for j := i + 1; j < n; j++ {
			bj := e.bodies[j]
			rj := bj.radius + CollidePadding

			dx := bj.x - bi.x
			dy := bj.y - bi.y
			dist := math.Hypot(dx, dy)
			minDist := ri + rj
			if dist >= minDist {
				continue
			}
			if dist < jiggle {
				// Coincident centers: separate along a fixed axis.
				dx, dy, dist = minDist, 0, minDist
			}

			overlap := (minDist - dist) / dist
			sx := dx * overlap
			sy := dy * overlap

			switch {
			case bi.pinned && bj.pinned:
				// Both immovable; nothing to resolve.
			case bi.pinned:
				bj.x += sx
				bj.y += sy
			case bj.pinned:
				bi.x -= sx
				bi.y -= sy
			default:
				bi.x -= sx / 2
				bi.y -= sy / 2
				bj.x += sx / 2
				bj.y += sy / 2
			}
		}
	}
}
