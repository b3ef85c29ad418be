package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/service"
)

type ConnectionHandler struct {
	connections   *service.ConnectionService
	currentUserID string
}

func NewConnectionHandler(connections *service.ConnectionService, currentUserID string) *ConnectionHandler {
	return &ConnectionHandler{connections: connections, currentUserID: currentUserID}
}

func (h *ConnectionHandler) Dashboard(c *gin.Context) {
	d, err := h.connections.Dashboard(c.Request.Context(), h.currentUserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
