package island

// Store owns the authoritative entity state. Iteration is always in
// ascending id order so that a step replays identically.
type Store struct {
	nextID   EntityID
	entities map[EntityID]*Entity
	order    []EntityID // ascending; ids are assigned monotonically
	player   EntityID
}

func newStore() *Store {
	return &Store{
		nextID:   1,
		entities: make(map[EntityID]*Entity),
	}
}

// add assigns the next id to e and stores it.
func (s *Store) add(e *Entity) EntityID {
	e.ID = s.nextID
	s.nextID++
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	if e.Role == RolePlayer {
		s.player = e.ID
	}
	return e.ID
}

// put stores e under its existing id. Used when restoring state; callers
// must insert in ascending id order.
func (s *Store) put(e *Entity) {
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	if e.Role == RolePlayer {
		s.player = e.ID
	}
}

// remove deletes an entity. The player is never removed.
func (s *Store) remove(id EntityID) bool {
	if id == s.player {
		return false
	}
	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the live entity with the given id.
func (s *Store) Get(id EntityID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Player returns the player entity.
func (s *Store) Player() *Entity {
	return s.entities[s.player]
}

// Len returns the number of live entities including the player.
func (s *Store) Len() int {
	return len(s.order)
}

// Each calls fn for every live entity in ascending id order. fn must not
// add or remove entities.
func (s *Store) Each(fn func(e *Entity)) {
	for _, id := range s.order {
		fn(s.entities[id])
	}
}

// EachRole calls fn for every live entity of the given role in ascending id order.
func (s *Store) EachRole(role Role, fn func(e *Entity)) {
	for _, id := range s.order {
		if e := s.entities[id]; e.Role == role {
			fn(e)
		}
	}
}

// Count returns the number of live entities with the given role.
func (s *Store) Count(role Role) int {
	n := 0
	for _, id := range s.order {
		if s.entities[id].Role == role {
			n++
		}
	}
	return n
}
