package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which connections belong to which workspace room.
// A connection is in at most one room at a time; joining a new room
// leaves the previous one first.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[uuid.UUID]map[*Client]struct{}
	current map[*Client]uuid.UUID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[uuid.UUID]map[*Client]struct{}),
		current: make(map[*Client]uuid.UUID),
	}
}

// Join adds the client to a workspace room, leaving its previous room if any
func (r *Registry) Join(client *Client, workspaceID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leaveLocked(client)

	if r.rooms[workspaceID] == nil {
		r.rooms[workspaceID] = make(map[*Client]struct{})
	}
	r.rooms[workspaceID][client] = struct{}{}
	r.current[client] = workspaceID
}

// Leave removes the client from its current room, if it is in one
func (r *Registry) Leave(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(client)
}

// Drop removes the client entirely. Used when the connection closes.
func (r *Registry) Drop(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(client)
}

func (r *Registry) leaveLocked(client *Client) {
	workspaceID, ok := r.current[client]
	if !ok {
		return
	}
	delete(r.current, client)
	if members := r.rooms[workspaceID]; members != nil {
		delete(members, client)
		if len(members) == 0 {
			delete(r.rooms, workspaceID)
		}
	}
}

// MembersOf returns a snapshot of the clients in a workspace room
func (r *Registry) MembersOf(workspaceID uuid.UUID) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*Client, 0, len(r.rooms[workspaceID]))
	for client := range r.rooms[workspaceID] {
		members = append(members, client)
	}
	return members
}

// Count returns the number of clients in a workspace room
func (r *Registry) Count(workspaceID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[workspaceID])
}

// Room returns the workspace the client is currently in
func (r *Registry) Room(client *Client) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.current[client]
	return id, ok
}
