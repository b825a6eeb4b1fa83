package handler

import (
	"net/http"

	"updatepos/internal/apierror"
	"updatepos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ResumenDiario godoc
// @Summary      Resumen de ventas del día
// @Description  Totales vendidos, costo, ganancia y desglose por método de pago, calculados sobre las cifras congeladas de cada venta.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {object} dto.ResumenDiarioResponse
// @Router       /v1/reportes/resumen-diario [get]
func (h *ReportesHandler) ResumenDiario(c *gin.Context) {
	resp, err := h.svc.ResumenDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
