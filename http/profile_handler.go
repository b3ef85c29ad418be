package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/domain"
	"agriconnect/service"
)

type ProfileHandler struct {
	directory   *service.DirectoryService
	connections *service.ConnectionService
}

func NewProfileHandler(directory *service.DirectoryService, connections *service.ConnectionService) *ProfileHandler {
	return &ProfileHandler{directory: directory, connections: connections}
}

type profileView struct {
	Kind            domain.BorrowerKind `json:"kind"`
	TrustTier       domain.TrustTier    `json:"trustTier"`
	RepaymentRate   float64             `json:"repaymentRate"`
	Profile         domain.Borrower     `json:"profile"`
	CanGeneratePlan *bool               `json:"canGeneratePlan,omitempty"`
}

func newProfileView(b domain.Borrower) profileView {
	p := b.Details()
	return profileView{
		Kind:          b.Kind(),
		TrustTier:     domain.TrustTierFor(p.TrustScore),
		RepaymentRate: p.RepaymentHistory.RepaymentRate(),
		Profile:       b,
	}
}

func (h *ProfileHandler) List(c *gin.Context) {
	var q service.DirectoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	list, err := h.directory.List(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]profileView, 0, len(list))
	for _, b := range list {
		views = append(views, newProfileView(b))
	}
	c.JSON(http.StatusOK, gin.H{"profiles": views})
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	b, err := h.directory.Get(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	owes, err := h.connections.OwesActive(ctx, h.directory.CurrentUserID(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	view := newProfileView(b)
	view.CanGeneratePlan = &owes
	c.JSON(http.StatusOK, view)
}
