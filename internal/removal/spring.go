package removal

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	collapseFrequency = 14.0
	collapseDamping   = 1.0
	settleEpsilon     = 0.02
)

// Collapse drives a row's visible fraction from 1 to 0 with a critically
// damped spring.
type Collapse struct {
	spring harmonica.Spring
}

func NewCollapse(fps int) Collapse {
	if fps <= 0 {
		fps = 60
	}
	return Collapse{spring: harmonica.NewSpring(harmonica.FPS(fps), collapseFrequency, collapseDamping)}
}

// Step advances one frame. settled is the transition-end signal.
func (c Collapse) Step(pos, vel float64) (nextPos, nextVel float64, settled bool) {
	nextPos, nextVel = c.spring.Update(pos, vel, 0)
	if nextPos < 0 {
		nextPos = 0
	}
	if math.Abs(nextPos) < settleEpsilon && math.Abs(nextVel) < settleEpsilon*10 {
		return 0, 0, true
	}
	return nextPos, nextVel, false
}
