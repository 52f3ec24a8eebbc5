package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"interview-prep-server/internal/document"
	"interview-prep-server/internal/worker"
)

// DefaultPayload seeds documents created on first access
const DefaultPayload = ""

const storeTimeout = 5 * time.Second

// State is the lifecycle position of one connection
type State int

const (
	StateConnected State = iota
	StateAuthenticated
	StateJoined
	StateClosed
)

type session struct {
	state State
	docID string
}

// Engine relays edit events between members of a document room and
// persists snapshots on client save signals. Deltas pass through
// untouched: the engine provides delivery, not conflict resolution.
type Engine struct {
	registry *Registry
	store    document.Store
	pool     *worker.WorkerPool

	mu       sync.Mutex
	sessions map[string]*session
}

func NewEngine(registry *Registry, store document.Store, pool *worker.WorkerPool) *Engine {
	return &Engine{
		registry: registry,
		store:    store,
		pool:     pool,
		sessions: make(map[string]*session),
	}
}

// Connect registers a fresh connection with the engine. Authenticated
// connections may request documents straight away.
func (e *Engine) Connect(conn Conn, authenticated bool) {
	state := StateConnected
	if authenticated {
		state = StateAuthenticated
	}

	e.mu.Lock()
	e.sessions[conn.ID()] = &session{state: state}
	e.mu.Unlock()
}

// Disconnect tears down the connection's session and removes it from any
// room it joined. Other members only notice the membership shrink.
func (e *Engine) Disconnect(conn Conn) {
	e.mu.Lock()
	sess, ok := e.sessions[conn.ID()]
	if ok {
		sess.state = StateClosed
		delete(e.sessions, conn.ID())
	}
	e.mu.Unlock()

	e.registry.Leave(conn)
}

// Handle processes one inbound message from the connection. Events arriving
// in the wrong state are dropped without side effects, a failure handling
// one connection's event never disturbs the rest of the room.
func (e *Engine) Handle(conn Conn, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("client %s sent invalid message: %v", conn.ID(), err)
		return
	}

	switch msg.Event {
	case EventGetDocument:
		e.handleGetDocument(conn, msg.DocumentID)
	case EventSendChanges:
		e.handleSendChanges(conn, msg.Delta)
	case EventSaveDocument:
		e.handleSaveDocument(conn, msg.Content)
	default:
		log.Printf("client %s sent unknown event %q", conn.ID(), msg.Event)
	}
}

func (e *Engine) handleGetDocument(conn Conn, docID string) {
	if docID == "" {
		return
	}

	e.mu.Lock()
	sess, ok := e.sessions[conn.ID()]
	if !ok || sess.state == StateConnected || sess.state == StateClosed {
		e.mu.Unlock()
		return
	}
	wasJoined := sess.state == StateJoined
	e.mu.Unlock()

	// switching documents leaves the old room first
	if wasJoined {
		e.registry.Leave(conn)
		e.setSession(conn, StateAuthenticated, "")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	doc, err := e.store.CreateIfAbsent(ctx, docID, DefaultPayload)
	if err != nil {
		log.Printf("loading document %s for client %s failed: %v", docID, conn.ID(), err)
		return
	}

	if err := e.registry.Join(conn, docID); err != nil {
		log.Printf("client %s could not join room %s: %v", conn.ID(), docID, err)
		return
	}
	e.setSession(conn, StateJoined, docID)

	reply, err := json.Marshal(Message{
		Event:      EventLoadDocument,
		DocumentID: docID,
		Content:    doc.Data,
	})
	if err != nil {
		log.Printf("marshal load-document for %s failed: %v", docID, err)
		return
	}
	if err := conn.Send(reply); err != nil {
		log.Printf("sending document %s to client %s failed: %v", docID, conn.ID(), err)
	}
}

func (e *Engine) handleSendChanges(conn Conn, delta json.RawMessage) {
	sess, joined := e.joinedSession(conn)
	if !joined {
		return
	}

	out, err := json.Marshal(Message{
		Event: EventReceiveChanges,
		Delta: delta,
	})
	if err != nil {
		log.Printf("marshal receive-changes from client %s failed: %v", conn.ID(), err)
		return
	}

	e.registry.Broadcast(sess.docID, conn, out)
}

func (e *Engine) handleSaveDocument(conn Conn, content string) {
	sess, joined := e.joinedSession(conn)
	if !joined {
		return
	}

	docID := sess.docID
	e.pool.Submit(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		// a failed persist is logged by the pool; the room keeps running
		return e.store.Persist(ctx, docID, content)
	})
}

func (e *Engine) joinedSession(conn Conn) (session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, ok := e.sessions[conn.ID()]
	if !ok || sess.state != StateJoined {
		return session{}, false
	}
	return *sess, true
}

func (e *Engine) setSession(conn Conn, state State, docID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, ok := e.sessions[conn.ID()]
	if !ok {
		return
	}
	sess.state = state
	sess.docID = docID
}
