package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/domain"
	"agriconnect/service"
)

type LoanRequestHandler struct {
	requests *service.LoanRequestService
}

func NewLoanRequestHandler(requests *service.LoanRequestService) *LoanRequestHandler {
	return &LoanRequestHandler{requests: requests}
}

func (h *LoanRequestHandler) List(c *gin.Context) {
	list, err := h.requests.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

func (h *LoanRequestHandler) Submit(c *gin.Context) {
	var input domain.LoanRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.requests.Submit(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *LoanRequestHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

func (h *LoanRequestHandler) Decline(c *gin.Context) {
	h.respond(c, false)
}

func (h *LoanRequestHandler) respond(c *gin.Context, accept bool) {
	req, err := h.requests.Respond(c.Request.Context(), c.Param("id"), accept)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
