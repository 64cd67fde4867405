package realtime

import "github.com/rs/zerolog"

// Hub manages WebSocket clients and routes stale-view notices by view path.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// view path -> set of subscribed clients
	subscriptions map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	subscribe  chan subscribeMsg
	broadcast  chan broadcastMsg

	logger zerolog.Logger
}

type subscribeMsg struct {
	client *Client
	path   string
}

type broadcastMsg struct {
	path    string
	payload []byte
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan subscribeMsg),
		broadcast:     make(chan broadcastMsg, 256),
		logger:        logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Int("clients", len(h.clients)).Msg("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.Debug().Int("clients", len(h.clients)).Msg("Client unregistered")
			}

		case msg := <-h.subscribe:
			if _, ok := h.clients[msg.client]; !ok {
				continue
			}
			if _, ok := h.subscriptions[msg.path]; !ok {
				h.subscriptions[msg.path] = make(map[*Client]bool)
			}
			h.subscriptions[msg.path][msg.client] = true
			h.logger.Debug().Str("path", msg.path).Int("subscribers", len(h.subscriptions[msg.path])).Msg("Client subscribed")

		case msg := <-h.broadcast:
			for client := range h.subscriptions[msg.path] {
				select {
				case client.send <- msg.payload:
				default:
					// Client buffer full, remove it
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	for path, subs := range h.subscriptions {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, path)
		}
	}
}

// Publish queues a notice for every subscriber of path.
func (h *Hub) Publish(path string, payload []byte) {
	h.broadcast <- broadcastMsg{path: path, payload: payload}
}
