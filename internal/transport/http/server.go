package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/config"
	"github.com/huddlechat/huddle-server/internal/core"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomResponse is one directory entry in API responses.
type RoomResponse struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
	Private bool   `json:"private"`
}

// NewServer builds the HTTP server: health check, room directory and the
// websocket endpoint.
func NewServer(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/api/rooms", listRoomsHandler(hub))
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// listRoomsHandler reports the live room directory.
// GET /api/rooms
func listRoomsHandler(hub *core.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := hub.Rooms()
		response := make([]RoomResponse, 0, len(rooms))
		for _, room := range rooms {
			response = append(response, RoomResponse{
				ID:      room.ID,
				Members: room.Members,
				Private: room.Private,
			})
		}
		c.JSON(stdhttp.StatusOK, response)
	}
}
