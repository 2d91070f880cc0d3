package routes

import (
	"adas_workorders/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWorkOrders = "/workorders"
)

func addWorkOrderRoutes(rg *gin.RouterGroup, h *handlers.WorkOrderHandler) {
	workOrders := rg.Group(PathWorkOrders)
	{
		workOrders.GET("/actions", h.ListActions)
		workOrders.POST("/actions/:action", h.ApplyAction)
		workOrders.GET("", h.LocateWorkOrder)
		workOrders.GET("/:id", h.GetWorkOrder)
	}
}
