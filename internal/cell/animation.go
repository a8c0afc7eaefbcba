package cell

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Animation names.
const (
	animationDataChanged = "data-changed"
	animationHighlight   = "highlight"
)

type animPhase uint8

const (
	animIdle animPhase = iota
	animFlashing
	animAnimating
)

// animator runs the two-phase flash: the flash class goes on at once, is
// swapped for the fading animation class after the flash delay, and the
// animation class comes off after the fade delay. Restarting cancels pending
// transitions. Fired callbacks from an earlier run are ignored by
// generation.
type animator struct {
	el    *dom.Element
	sched Scheduler
	opts  *grid.Options

	phase   animPhase
	name    string
	gen     uint64
	cancel  func()
	stopped bool
}

// Animation classes as they appear on the cell element.
const (
	ClassDataChanged          = "cg-cell-" + animationDataChanged
	ClassDataChangedAnimation = "cg-cell-" + animationDataChanged + "-animation"
	ClassHighlight            = "cg-cell-" + animationHighlight
	ClassHighlightAnimation   = "cg-cell-" + animationHighlight + "-animation"
)

func flashClass(name string) string     { return "cg-cell-" + name }
func animationClass(name string) string { return "cg-cell-" + name + "-animation" }

func (a *animator) start(name string) {
	if a.stopped || a.sched == nil {
		return
	}
	a.cancelPending()
	if a.name != "" && a.name != name {
		a.el.RemoveClass(flashClass(a.name))
		a.el.RemoveClass(animationClass(a.name))
	}

	a.gen++
	gen := a.gen
	full, fading := flashClass(name), animationClass(name)
	flashDelay, fadeDelay := a.opts.FlashDelayOrDefault(), a.opts.FadeDelayOrDefault()

	a.el.AddClass(full)
	a.el.RemoveClass(fading)
	a.phase, a.name = animFlashing, name

	a.cancel = a.sched.After(flashDelay, func() {
		if a.stopped || gen != a.gen {
			return
		}
		a.el.RemoveClass(full)
		a.el.AddClass(fading)
		a.phase = animAnimating

		a.cancel = a.sched.After(fadeDelay, func() {
			if a.stopped || gen != a.gen {
				return
			}
			a.el.RemoveClass(fading)
			a.phase, a.name, a.cancel = animIdle, "", nil
		})
	})
}

func (a *animator) stop() {
	a.stopped = true
	a.gen++
	a.cancelPending()
}

func (a *animator) cancelPending() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
