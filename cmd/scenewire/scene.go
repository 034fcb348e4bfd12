package main

import (
	"github.com/scenewire/scenewire"
)

// Demo vocabulary: a small battlefield scene exercising every resolution
// path the library has.

type Weapon interface {
	Fire() string
}

type Cannon struct{}

func (c *Cannon) Fire() string { return "boom" }

type Clock interface {
	Tick() int
}

// GameClock is the scene's global service.
type GameClock struct {
	ticks int
}

func (c *GameClock) GlobalService() {}

func (c *GameClock) Tick() int {
	c.ticks++
	return c.ticks
}

// Turret wants the nearest weapon above it and the unique game clock.
type Turret struct {
	Weapon Weapon
	clock  Clock
}

func (t *Turret) InjectionPoints() []scenewire.Point {
	return []scenewire.Point{
		{Member: "Weapon"},
		{Member: "SetClock", Scope: scenewire.ScopeGlobal},
	}
}

func (t *Turret) SetClock(c Clock) { t.clock = c }

// Radar has no weapon anywhere above it, demonstrating the unresolved path.
type Radar struct {
	Weapon Weapon
}

func (r *Radar) InjectionPoints() []scenewire.Point {
	return []scenewire.Point{{Member: "Weapon"}}
}

// buildScene assembles the demo hierarchy:
//
//	battlefield
//	├── clock-tower (GameClock, +1 with --ambiguous)
//	├── tank (Cannon)
//	│   └── turret (Turret)
//	└── outpost
//	    └── radar (Radar)
func buildScene(ambiguous bool) (*scenewire.Hierarchy, scenewire.NodeID, error) {
	h := scenewire.NewHierarchy()

	battlefield, err := h.AddNode(scenewire.NoNode, "battlefield")
	if err != nil {
		return nil, scenewire.NoNode, err
	}

	type attachment struct {
		node     scenewire.NodeID
		behavior any
	}

	clockTower, err := h.AddNode(battlefield, "clock-tower")
	if err != nil {
		return nil, scenewire.NoNode, err
	}
	tank, err := h.AddNode(battlefield, "tank")
	if err != nil {
		return nil, scenewire.NoNode, err
	}
	turret, err := h.AddNode(tank, "turret")
	if err != nil {
		return nil, scenewire.NoNode, err
	}
	outpost, err := h.AddNode(battlefield, "outpost")
	if err != nil {
		return nil, scenewire.NoNode, err
	}
	radar, err := h.AddNode(outpost, "radar")
	if err != nil {
		return nil, scenewire.NoNode, err
	}

	attachments := []attachment{
		{clockTower, &GameClock{}},
		{tank, &Cannon{}},
		{turret, &Turret{}},
		{radar, &Radar{}},
	}
	if ambiguous {
		attachments = append(attachments, attachment{outpost, &GameClock{}})
	}
	for _, a := range attachments {
		if err := h.Attach(a.node, a.behavior); err != nil {
			return nil, scenewire.NoNode, err
		}
	}

	return h, tank, nil
}
