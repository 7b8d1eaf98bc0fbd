package model

import "sync"

// Actor: объект сцены (игрок или NPC) с позицией и точкой, на которую он смотрит.
// Позиция защищена мьютексом: хост может читать и писать её из разных горутин,
// поэтому тик работает по схеме snapshot-then-apply.
type Actor struct {
	objectID uint32
	name     string

	mu        sync.RWMutex
	position  Vec3
	facing    Vec3
	hasFacing bool
}

// NewActor создаёт объект сцены в заданной позиции.
func NewActor(objectID uint32, name string, pos Vec3) *Actor {
	return &Actor{
		objectID: objectID,
		name:     name,
		position: pos,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (a *Actor) ObjectID() uint32 {
	return a.objectID
}

// Name возвращает имя объекта.
func (a *Actor) Name() string {
	return a.name
}

// Position возвращает копию позиции (value type).
func (a *Actor) Position() Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

// SetPosition устанавливает новую позицию.
func (a *Actor) SetPosition(pos Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = pos
}

// Facing возвращает точку, на которую смотрит объект, если она задана.
func (a *Actor) Facing() (Vec3, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.facing, a.hasFacing
}

// LookAt поворачивает объект к точке target.
func (a *Actor) LookAt(target Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.facing = target
	a.hasFacing = true
}
