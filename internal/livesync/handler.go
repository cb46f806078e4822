package livesync

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades connections to WebSocket and runs them as hub clients.
// It sits behind the auth middleware, so only signed-in users connect.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // same-host portal pages only
		})
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err)
			return
		}

		client := newClient(hub, conn)
		client.run(r.Context())
	}
}
