package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "adas_workorders/internal/adapter/http/dto/request"
	response "adas_workorders/internal/adapter/http/dto/response"
	"adas_workorders/internal/usecase"
	"adas_workorders/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidActionPayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid action payload", http.StatusBadRequest)
	errMissingLookupKey     = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "vin or reference query parameter is required", http.StatusBadRequest)
)

// WorkOrderHandler translates transport payloads into engine commands and
// engine results into status codes.
type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
	logger  *zap.Logger
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase, logger *zap.Logger) *WorkOrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkOrderHandler{usecase: uc, logger: logger}
}

// ApplyAction godoc
// @Summary      Apply an inbound work-order update
// @Description  Normalizes the payload, locates or creates the work order and merges the update.
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        action   path      string  true  "action name, e.g. shop_submit"
// @Param        payload  body      object  true  "flat field map, or {actor, fields}"
// @Success      200      {object}  response.ActionResponse
// @Success      201      {object}  response.ActionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /workorders/actions/{action} [post]
func (h *WorkOrderHandler) ApplyAction(c *gin.Context) {
	var payload request.ActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidActionPayload.HTTPStatus, errInvalidActionPayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand(c.Param("action"))
	if err != nil {
		appErr := errInvalidActionPayload.WithMessage(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res := h.usecase.Apply(c.Request.Context(), cmd)
	if !res.Success {
		appErr := mapWorkOrderError(res.Err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			h.logger.Error("[workorder][handler] action failed",
				zap.String("action", string(cmd.Action)), zap.Error(res.Err))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response.FromResult(res, cmd.Dropped))
}

// GetWorkOrder godoc
// @Summary      Get a work order by id
// @Tags         workorders
// @Produce      json
// @Param        id   path      string  true  "work order id"
// @Success      200  {object}  response.WorkOrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /workorders/{id} [get]
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	wo, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

// LocateWorkOrder godoc
// @Summary      Locate a work order by VIN and/or reference number
// @Tags         workorders
// @Produce      json
// @Param        vin        query     string  false  "vehicle identification number"
// @Param        reference  query     string  false  "shop reference number"
// @Success      200        {object}  response.WorkOrderResponse
// @Failure      400        {object}  pkg.HTTPError
// @Failure      404        {object}  pkg.HTTPError
// @Router       /workorders [get]
func (h *WorkOrderHandler) LocateWorkOrder(c *gin.Context) {
	vin := strings.TrimSpace(c.Query("vin"))
	ref := strings.TrimSpace(c.Query("reference"))
	if vin == "" && ref == "" {
		c.JSON(errMissingLookupKey.HTTPStatus, errMissingLookupKey.ToHTTPError())
		return
	}
	wo, err := h.usecase.Locate(c.Request.Context(), vin, ref)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

// ListActions returns the supported action names.
func (h *WorkOrderHandler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": usecase.Actions()})
}

func mapWorkOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrUnknownAction):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainError("WORK_ORDER_NOT_FOUND", "Work order not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainError("CONFLICT", err.Error(), err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
