package main

import (
	"math"

	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
)

// Autopilot distances, in tiles.
const (
	dangerRadius    = 8.0
	repellentRadius = 3.0
	itemRadius      = 15.0
	potionBelow     = 0.4 // fraction of max health
)

// autopilot plays for the headless run: head for the boat once it is there,
// otherwise run from hunters and collect nearby items.
func autopilot(snap island.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	p := snap.Player

	if p.Potions > 0 && p.Health < p.MaxHealth*potionBelow {
		in.Set(core.ActionUsePotion)
	}

	if snap.Escape != nil {
		in.Move = snap.Escape.Sub(p.Pos)
		return in
	}

	var threat *island.EntityView
	var item *island.EntityView
	threatDist, itemDist := math.Inf(1), math.Inf(1)
	for i := range snap.Entities {
		e := &snap.Entities[i]
		d := e.Pos.Dist(p.Pos)
		switch {
		case e.Role == island.RoleCreature && e.State == island.StateChase && d < threatDist:
			threat, threatDist = e, d
		case e.Role == island.RoleItem && d < itemDist:
			item, itemDist = e, d
		}
	}

	switch {
	case threat != nil && threatDist < dangerRadius:
		if threatDist < repellentRadius && p.Repellents > 0 && p.RepellentRemaining == 0 {
			in.Set(core.ActionUseRepellent)
		}
		away := p.Pos.Sub(threat.Pos)
		if away.IsZero() {
			away = core.V(1, 0)
		}
		in.Move = away
	case item != nil && itemDist < itemRadius:
		in.Move = item.Pos.Sub(p.Pos)
	}
	return in
}
