package realtime

import (
	"net/http"

	"jobsite/pkg"

	"github.com/gorilla/websocket"
)

// ServeWS upgrades the connection. A "token" query parameter is optional; a
// present but invalid token is rejected.
func ServeWS(hub *Hub, cfg Config, w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if token := r.URL.Query().Get("token"); token != "" {
		if _, err := pkg.ValidateToken(token, cfg.JWTSecret); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		authenticated = true
	}

	upgrader := websocket.Upgrader{CheckOrigin: cfg.CheckOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := NewClient(hub, conn, authenticated)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
