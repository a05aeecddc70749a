package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

type tagIndex struct {
	entityByTag map[string]Entity
	tagByEntity *intmap.Map[Entity, string]
}

func newTagIndex() *tagIndex {
	return &tagIndex{
		entityByTag: make(map[string]Entity),
		tagByEntity: intmap.New[Entity, string](16),
	}
}

func (t *tagIndex) remove(e Entity) {
	tag, ok := t.tagByEntity.Get(e)
	if !ok {
		return
	}
	t.tagByEntity.Del(e)
	delete(t.entityByTag, tag)
}

type groupIndex struct {
	entitiesByGroup map[string][]Entity
	groupByEntity   *intmap.Map[Entity, string]
}

func newGroupIndex() *groupIndex {
	return &groupIndex{
		entitiesByGroup: make(map[string][]Entity),
		groupByEntity:   intmap.New[Entity, string](64),
	}
}

func (g *groupIndex) remove(e Entity) {
	group, ok := g.groupByEntity.Get(e)
	if !ok {
		return
	}
	g.groupByEntity.Del(e)
	members := g.entitiesByGroup[group]
	if i := slices.Index(members, e); i >= 0 {
		members = slices.Delete(members, i, i+1)
	}
	if len(members) == 0 {
		delete(g.entitiesByGroup, group)
	} else {
		g.entitiesByGroup[group] = members
	}
}

// TagEntity gives e the unique tag. A tag names at most one entity and an entity
// carries at most one tag: reusing a tag held by another entity fails with
// ErrTagInUse, and tagging an entity that already has a different tag fails with
// ErrEntityAlreadyTagged. Re-applying an entity's own tag is a no-op.
func (r *Registry) TagEntity(e Entity, tag string) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "tag %q on %s", tag, e)
	}
	if holder, ok := r.tags.entityByTag[tag]; ok {
		if holder == e {
			return nil
		}
		return eris.Wrapf(ErrTagInUse, "tag %q is held by %s", tag, holder)
	}
	if current, ok := r.tags.tagByEntity.Get(e); ok {
		return eris.Wrapf(ErrEntityAlreadyTagged, "%s is tagged %q", e, current)
	}

	r.tags.entityByTag[tag] = e
	r.tags.tagByEntity.Put(e, tag)
	return nil
}

// EntityTag returns e's tag, if it has one.
func (r *Registry) EntityTag(e Entity) (string, bool) {
	return r.tags.tagByEntity.Get(e)
}

// EntityHasTag reports whether e carries tag.
func (r *Registry) EntityHasTag(e Entity, tag string) bool {
	holder, ok := r.tags.entityByTag[tag]
	return ok && holder == e
}

// GetEntityByTag returns the entity holding tag, or ErrTagNotFound.
func (r *Registry) GetEntityByTag(tag string) (Entity, error) {
	e, ok := r.tags.entityByTag[tag]
	if !ok {
		return 0, eris.Wrapf(ErrTagNotFound, "tag %q", tag)
	}
	return e, nil
}

// RemoveEntityTag drops e's tag, if any.
func (r *Registry) RemoveEntityTag(e Entity) {
	r.tags.remove(e)
}

// GroupEntity places e in group. An entity belongs to at most one group, so
// grouping it again moves it out of its previous group.
func (r *Registry) GroupEntity(e Entity, group string) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "group %q on %s", group, e)
	}
	if current, ok := r.groups.groupByEntity.Get(e); ok {
		if current == group {
			return nil
		}
		r.groups.remove(e)
	}

	r.groups.entitiesByGroup[group] = append(r.groups.entitiesByGroup[group], e)
	r.groups.groupByEntity.Put(e, group)
	return nil
}

// EntityGroup returns e's group, if it has one.
func (r *Registry) EntityGroup(e Entity) (string, bool) {
	return r.groups.groupByEntity.Get(e)
}

// EntityBelongsToGroup reports whether e is a member of group.
func (r *Registry) EntityBelongsToGroup(e Entity, group string) bool {
	current, ok := r.groups.groupByEntity.Get(e)
	return ok && current == group
}

// GetEntitiesByGroup returns a copy of group's members in the order they joined.
func (r *Registry) GetEntitiesByGroup(group string) []Entity {
	return slices.Clone(r.groups.entitiesByGroup[group])
}

// RemoveEntityGroup takes e out of its group, if any.
func (r *Registry) RemoveEntityGroup(e Entity) {
	r.groups.remove(e)
}
