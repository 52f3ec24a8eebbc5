package ws

import (
	"log"
	"net/http"

	"interview-prep-server/auth"
	"interview-prep-server/internal/relay"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway accepts websocket connections and hands them to the relay engine.
//
// Document access over the socket is not gated by the REST bearer token:
// connections without a token are accepted as-is. A token supplied via the
// `token` query parameter is still verified, so a client that does present
// credentials cannot present bad ones.
type Gateway struct {
	engine *relay.Engine
}

func NewGateway(engine *relay.Engine) *Gateway {
	return &Gateway{engine: engine}
}

// Handle upgrades the request and starts the connection pumps
func (g *Gateway) Handle(c *gin.Context) {
	token := c.Query("token")
	if token != "" {
		if _, err := auth.VerifyJWT(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
	}

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	conn := NewConn(uuid.NewString(), wsConn, g.engine)
	conn.Start(true)
}
