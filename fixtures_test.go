package scenewire

import (
	"errors"
)

// Shared test fixtures: a small game-object vocabulary. Descriptor tables
// are fixed per type because introspection caches per type.

type Weapon interface {
	Fire() string
}

type Cannon struct{}

func (c *Cannon) Fire() string { return "cannon" }

type Laser struct{}

func (l *Laser) Fire() string { return "laser" }

// ServiceCannon is a weapon that is also tagged as a global service.
type ServiceCannon struct{}

func (c *ServiceCannon) Fire() string { return "service cannon" }

func (c *ServiceCannon) GlobalService() {}

type Clock interface {
	Tick() int
}

// GameClock is the canonical global service fixture.
type GameClock struct {
	ticks int
}

func (c *GameClock) GlobalService() {}

func (c *GameClock) Tick() int {
	c.ticks++
	return c.ticks
}

// WeaponMount has a single hierarchy-scoped field member.
type WeaponMount struct {
	Weapon Weapon
}

func (m *WeaponMount) InjectionPoints() []Point {
	return []Point{{Member: "Weapon"}}
}

// ClockDisplay has a single global-scoped setter member.
type ClockDisplay struct {
	clock Clock
}

func (d *ClockDisplay) InjectionPoints() []Point {
	return []Point{{Member: "SetClock", Scope: ScopeGlobal}}
}

func (d *ClockDisplay) SetClock(c Clock) { d.clock = c }

// Turret combines both member shapes on one behavior.
type Turret struct {
	Weapon Weapon
	clock  Clock
}

func (t *Turret) InjectionPoints() []Point {
	return []Point{
		{Member: "Weapon"},
		{Member: "SetClock", Scope: ScopeGlobal},
	}
}

func (t *Turret) SetClock(c Clock) { t.clock = c }

// FussyMount rejects every weapon it is offered.
type FussyMount struct {
	Fallback Weapon
}

func (m *FussyMount) InjectionPoints() []Point {
	return []Point{
		{Member: "SetWeapon"},
		{Member: "Fallback"},
	}
}

func (m *FussyMount) SetWeapon(w Weapon) error { return errors.New("mount jammed") }

// Misconfigured declares a point that names nothing.
type Misconfigured struct{}

func (m *Misconfigured) InjectionPoints() []Point {
	return []Point{{Member: "Nope"}}
}

// mustNode and mustAttach keep tree building terse in tests.
func mustNode(h *Hierarchy, parent NodeID, name string) NodeID {
	id, err := h.AddNode(parent, name)
	if err != nil {
		panic(err)
	}
	return id
}

func mustAttach(h *Hierarchy, id NodeID, behavior any) {
	if err := h.Attach(id, behavior); err != nil {
		panic(err)
	}
}
