package ecs

import "github.com/rotisserie/eris"

var (
	// ErrTooManyComponentTypes is raised when more distinct component types are
	// referenced than MaxComponentTypes allows.
	ErrTooManyComponentTypes = eris.New("ecs: too many component types")
	// ErrMissingComponent is raised when a component is read from an entity whose
	// signature does not carry it.
	ErrMissingComponent = eris.New("ecs: entity does not have component")
	// ErrEntityNotAlive is raised for component operations on a destroyed or unknown entity.
	ErrEntityNotAlive = eris.New("ecs: entity is not alive")
	// ErrSystemNotRegistered is raised by GetSystem for a system type that was never added.
	ErrSystemNotRegistered = eris.New("ecs: system not registered")
	// ErrSystemExists is raised when a second system of the same type is added.
	ErrSystemExists = eris.New("ecs: system already registered")
	// ErrInterfaceSystemType is raised when AddSystem is instantiated with an
	// interface type, since lookups are keyed by the concrete type.
	ErrInterfaceSystemType = eris.New("ecs: system type parameter must be concrete")

	// ErrTagNotFound is returned by GetEntityByTag when no entity holds the tag.
	ErrTagNotFound = eris.New("ecs: tag not found")
	// ErrTagInUse is returned when a tag is applied while another entity holds it.
	ErrTagInUse = eris.New("ecs: tag already assigned to another entity")
	// ErrEntityAlreadyTagged is returned when tagging an entity that carries a different tag.
	ErrEntityAlreadyTagged = eris.New("ecs: entity already has a different tag")
)
