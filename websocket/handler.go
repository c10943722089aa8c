package websocket

import (
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Upgrade rejects plain HTTP requests on the websocket route.
func Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Handler serves a websocket whose first message must be
// {"type":"auth","token":"<jwt>"}. Afterwards the socket only receives events.
func Handler(hub *Hub, secret string, log *zap.Logger) fiber.Handler {
	log = log.Named("ws")
	return websocket.New(func(c *websocket.Conn) {
		var auth authMessage
		if err := c.ReadJSON(&auth); err != nil || auth.Type != "auth" {
			log.Debug("websocket auth failed, missing auth message", zap.Error(err))
			_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
			_ = c.Close()
			return
		}
		claims, err := middleware.ParseToken(secret, auth.Token)
		if err != nil {
			log.Debug("websocket auth failed, invalid token", zap.Error(err))
			_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
			_ = c.Close()
			return
		}

		client := &Client{UserID: claims.UserID, Conn: c}
		hub.Register(client)
		defer func() {
			hub.Unregister(client)
			_ = c.Close()
		}()
		_ = c.WriteJSON(fiber.Map{"type": "ready"})

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug("websocket read error", zap.String("user_id", claims.UserID.String()), zap.Error(err))
				}
				return
			}
		}
	})
}
