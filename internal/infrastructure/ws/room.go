package ws

import "sync"

// RoomManager maps trip codes to the connections currently in them. The hub
// goroutine is the only writer.
type RoomManager struct {
	rooms map[string]map[string]*Client // tripCode → connectionID → client
	mu    sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]map[string]*Client),
	}
}

// Join reports false when the client was already in the room.
func (rm *RoomManager) Join(tripCode string, cl *Client) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[tripCode]
	if !ok {
		room = make(map[string]*Client)
		rm.rooms[tripCode] = room
	}

	if _, exists := room[cl.ID]; exists {
		return false
	}
	room[cl.ID] = cl
	return true
}

// Leave removes the client and drops the room once it is empty.
func (rm *RoomManager) Leave(tripCode string, cl *Client) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[tripCode]
	if !ok {
		return false
	}
	if _, exists := room[cl.ID]; !exists {
		return false
	}

	delete(room, cl.ID)
	if len(room) == 0 {
		delete(rm.rooms, tripCode)
	}
	return true
}

// Members returns a snapshot of the room excluding the given connection.
func (rm *RoomManager) Members(tripCode, excludeConnectionID string) []*Client {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room := rm.rooms[tripCode]
	out := make([]*Client, 0, len(room))
	for id, cl := range room {
		if id == excludeConnectionID {
			continue
		}
		out = append(out, cl)
	}
	return out
}

func (rm *RoomManager) Count(tripCode string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms[tripCode])
}

func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
