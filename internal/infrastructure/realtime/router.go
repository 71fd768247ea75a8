package realtime

import (
	"sync"
)

// Router coordinates websocket sessions and logical story rooms. It keeps
// track of which connections are attached to which story so the server can
// fan an update out to everyone writing on that story.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	rooms        map[string]map[string]*Connection // story title -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of story titles
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection and starts its read/write loops.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	r.sessionRooms[conn.ID] = make(map[string]struct{})
	r.mu.Unlock()

	conn.Start()
}

// Detach removes a connection and any room memberships it still holds.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// Join adds the connection to the story room.
func (r *Router) Join(title string, conn *Connection) {
	r.mu.Lock()
	if _, ok := r.sessions[conn.ID]; !ok {
		r.mu.Unlock()
		return
	}

	room := r.rooms[title]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[title] = room
	}
	room[conn.ID] = conn
	r.sessionRooms[conn.ID][title] = struct{}{}
	r.mu.Unlock()
}

// Leave removes the connection from the story room.
func (r *Router) Leave(title string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(title, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to all members of the story room except the
// excluded session. Delivery is independent per recipient: a dead or slow
// connection is skipped and never aborts the loop or surfaces to the caller.
// Returns the number of successful deliveries.
func (r *Router) Broadcast(title string, payload []byte, excludeSessionID string) int {
	r.mu.RLock()
	room := r.rooms[title]
	conns := make([]*Connection, 0, len(room))
	for _, conn := range room {
		if conn.ID == excludeSessionID {
			continue
		}
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.rooms = make(map[string]map[string]*Connection)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	if _, ok := r.sessions[sessionID]; !ok {
		return
	}
	delete(r.sessions, sessionID)

	for title := range r.sessionRooms[sessionID] {
		r.leaveLocked(title, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(title string, sessionID string) {
	room := r.rooms[title]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, title)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, title)
	}
}
