package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/domain"
	"agriconnect/service"
)

type RepaymentPlanHandler struct {
	plans *service.RepaymentPlanService
}

func NewRepaymentPlanHandler(plans *service.RepaymentPlanService) *RepaymentPlanHandler {
	return &RepaymentPlanHandler{plans: plans}
}

type planView struct {
	Status    domain.PlanStatus    `json:"status"`
	ProfileID string               `json:"profileId,omitempty"`
	Plan      domain.RepaymentPlan `json:"plan,omitempty"`
	Total     float64              `json:"total,omitempty"`
	Error     string               `json:"error,omitempty"`
	ErrorKind service.ErrorKind    `json:"errorKind,omitempty"`
}

func newPlanView(st domain.PlanState) planView {
	v := planView{Status: st.Status, ProfileID: st.ProfileID}
	switch st.Status {
	case domain.PlanSuccess:
		v.Plan = st.Plan
		v.Total = st.Plan.Total()
	case domain.PlanFailed:
		v.Error = service.UserMessage(st.Err)
		v.ErrorKind = service.KindOf(st.Err)
	}
	return v
}

// Start begins generating a plan for the profile and answers with the
// Loading state; clients poll Get for the outcome.
func (h *RepaymentPlanHandler) Start(c *gin.Context) {
	st, err := h.plans.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, newPlanView(st))
}

func (h *RepaymentPlanHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, newPlanView(h.plans.State()))
}

func (h *RepaymentPlanHandler) Close(c *gin.Context) {
	h.plans.Close()
	c.JSON(http.StatusOK, newPlanView(h.plans.State()))
}
