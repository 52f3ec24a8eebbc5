package relay

import (
	"errors"
	"log"
	"sync"
)

// ErrAlreadyJoined is returned when a connection tries to join a room
// while still a member of another one
var ErrAlreadyJoined = errors.New("connection already joined to a room")

// Registry tracks which connections collaborate on which document. A single
// mutex guards both the room table and the connection index, so an empty
// room is removed under the same lock a racing join would take: the join
// either finds the room alive or recreates it, never loses the connection.
//
// Broadcast also runs under the lock. Conn.Send never blocks on the
// network, so holding the lock during delivery is cheap and gives
// per-room arrival ordering for free.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]map[string]Conn // document id -> conn id -> conn
	joined map[string]string          // conn id -> document id
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]map[string]Conn),
		joined: make(map[string]string),
	}
}

// Join adds the connection to the room for docID, creating the room if
// needed. A connection can be in at most one room; callers switching
// documents must Leave first.
func (r *Registry) Join(conn Conn, docID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.joined[conn.ID()]; ok {
		return ErrAlreadyJoined
	}

	room, ok := r.rooms[docID]
	if !ok {
		room = make(map[string]Conn)
		r.rooms[docID] = room
	}
	room[conn.ID()] = conn
	r.joined[conn.ID()] = docID

	log.Printf("client %s joined room %s (%d members)", conn.ID(), docID, len(room))
	return nil
}

// Leave removes the connection from whatever room it is in. Calling it for
// a connection that never joined is a no-op.
func (r *Registry) Leave(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(conn.ID())
}

func (r *Registry) removeLocked(connID string) {
	docID, ok := r.joined[connID]
	if !ok {
		return
	}
	delete(r.joined, connID)

	room, ok := r.rooms[docID]
	if !ok {
		return
	}
	delete(room, connID)

	if len(room) == 0 {
		delete(r.rooms, docID)
		log.Printf("room %s removed", docID)
		return
	}
	log.Printf("client %s left room %s (%d members)", connID, docID, len(room))
}

// Broadcast delivers data to every member of the room except exclude.
// Members whose send queue is gone are dropped from the room on the spot.
func (r *Registry) Broadcast(docID string, exclude Conn, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[docID]
	if !ok {
		return
	}

	var dead []Conn
	for id, conn := range room {
		if exclude != nil && id == exclude.ID() {
			continue
		}
		if err := conn.Send(data); err != nil {
			log.Printf("dropping unresponsive client %s from room %s: %v", id, docID, err)
			dead = append(dead, conn)
		}
	}

	for _, conn := range dead {
		r.removeLocked(conn.ID())
		go conn.Close()
	}
}

// RoomSize reports the current number of members in a room, zero when the
// room does not exist.
func (r *Registry) RoomSize(docID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[docID])
}

// Stats returns the number of active rooms and connected members
func (r *Registry) Stats() (rooms, clients int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms = len(r.rooms)
	clients = len(r.joined)
	return rooms, clients
}
