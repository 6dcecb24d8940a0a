package notification

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"hoteldash/internal/middleware"
	"hoteldash/internal/pkg/response"
	"hoteldash/internal/pkg/validator"
	"hoteldash/internal/source"
)

const pongWait = 60 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Subscribers authenticate with the token query parameter.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	cache   SummaryCache
	hub     *Hub
}

func NewHandler(service *Service, cache SummaryCache, hub *Hub) *Handler {
	return &Handler{service: service, cache: cache, hub: hub}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.GET("/summary", h.GetSummary)
	}
	protected.GET("/ws/notifications", h.Subscribe)
}

func (h *Handler) GetNotifications(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid query parameters")
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			"type must be one of: all, checkins, checkouts, housekeeping, maintenance, payments", errs)
		return
	}
	filter, err := ParseFilter(q.Type)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		return
	}

	sess, _ := middleware.CurrentSession(c)
	res, err := h.service.List(c.Request.Context(), sess, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	badge, err := h.cache.Get(ctx)
	if err == nil {
		response.Success(c, http.StatusOK, badge)
		return
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Warn().Err(err).Msg("read notification badge cache")
	}

	sess, _ := middleware.CurrentSession(c)
	badge, err = h.service.Badge(ctx, sess)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.cache.Set(ctx, badge); err != nil {
		log.Warn().Err(err).Msg("store notification badge")
	}

	response.Success(c, http.StatusOK, badge)
}

// Subscribe upgrades to a websocket that receives every polled badge.
func (h *Handler) Subscribe(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.Register(sess.ID, ws)
	log.Debug().Str("username", sess.Username).Msg("notification subscriber connected")
	defer func() {
		h.hub.Unregister(sess.ID, ws)
		log.Debug().Str("username", sess.Username).Msg("notification subscriber disconnected")
	}()

	if badge, err := h.cache.Get(c.Request.Context()); err == nil {
		h.hub.Send(sess.ID, wsMessage{Event: "notifications.summary", Data: badge})
	}

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pongWait / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if !h.hub.ping(sess.ID) {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("notification websocket closed")
			}
			return
		}
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, source.ErrUnauthorized) {
		_ = c.Error(err)
		response.Error(c, http.StatusUnauthorized, response.CodeSessionExpired, "Backend session expired, please sign in again")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to derive notifications")
}
