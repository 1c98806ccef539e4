package controllers

import (
	"net/http"

	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RealtimeController struct {
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewRealtimeController принимает только соединения с разрешённых origin (те же, что для CORS).
func NewRealtimeController(hub *appwebsocket.Hub, allowedOrigins []string, logger *zap.Logger) *RealtimeController {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &RealtimeController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// Serve держит соединение до его закрытия. Пользователь уже проверен AuthMiddleware.
func (c *RealtimeController) Serve(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("WebSocket: не удалось установить соединение", zap.Uint64("userID", userID), zap.Error(err))
		return nil
	}
	c.hub.Serve(conn, userID)
	return nil
}
