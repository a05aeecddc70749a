package ecs

import "strconv"

// Entity is an opaque identifier naming a bundle of components. It carries no data
// and no reference to its registry; every operation on it goes through a Registry.
type Entity int

// ID returns the integer id of the entity.
func (e Entity) ID() int {
	return int(e)
}

func (e Entity) String() string {
	return "entity(" + strconv.Itoa(int(e)) + ")"
}

type entityState uint8

const (
	stateDestroyed entityState = iota
	statePendingAdd
	stateActive
)
