package handler

import (
	"net/http"
	"strconv"

	"updatepos/internal/apierror"
	"updatepos/internal/dto"
	"updatepos/internal/repository"
	"updatepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogoHandler serves the three product families: intake, listings and
// manual stock adjustments.
type CatalogoHandler struct {
	catalogo service.CatalogoService
	stock    service.StockService
}

func NewCatalogoHandler(catalogo service.CatalogoService, stock service.StockService) *CatalogoHandler {
	return &CatalogoHandler{catalogo: catalogo, stock: stock}
}

// ── Computadoras ─────────────────────────────────────────────────────────────

// CrearComputadora godoc
// @Summary      Alta de computadora
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearComputadoraRequest true "Datos del equipo"
// @Success      201 {object} dto.ComputadoraResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/computadoras [post]
func (h *CatalogoHandler) CrearComputadora(c *gin.Context) {
	var req dto.CrearComputadoraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearComputadora(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarComputadoras godoc
// @Summary      Listado de computadoras
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Param        q          query string false "Búsqueda por modelo o serial"
// @Param        sucursal   query string false "la_plata | mitre"
// @Param        disponible query string false "false = vendidas, all = todas"
// @Success      200 {array} dto.ComputadoraResponse
// @Router       /v1/computadoras [get]
func (h *CatalogoHandler) ListarComputadoras(c *gin.Context) {
	var filter dto.CatalogoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.stock.ListarComputadoras(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar computadoras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ObtenerComputadora(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.catalogo.ObtenerComputadora(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Computadora no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Celulares ────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearCelular(c *gin.Context) {
	var req dto.CrearCelularRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearCelular(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarCelulares(c *gin.Context) {
	var filter dto.CatalogoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.stock.ListarCelulares(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar celulares"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ObtenerCelular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.catalogo.ObtenerCelular(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Celular no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Otros ────────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearOtro(c *gin.Context) {
	var req dto.CrearOtroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearOtro(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarOtros(c *gin.Context) {
	var filter dto.CatalogoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.stock.ListarOtros(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ObtenerOtro(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.catalogo.ObtenerOtro(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStockOtro godoc
// @Summary      Ajuste manual de stock
// @Description  Suma o resta unidades en una sucursal y registra el movimiento con su motivo.
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID del producto"
// @Param        body body dto.AjustarStockOtroRequest true "Sucursal, delta y motivo"
// @Success      200  {object} dto.OtroResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/otros/{id}/stock [post]
func (h *CatalogoHandler) AjustarStockOtro(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockOtroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.AjustarStockOtro(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Movimientos de stock ─────────────────────────────────────────────────────

func (h *CatalogoHandler) ListarMovimientos(c *gin.Context) {
	filter := repository.MovimientoStockFilter{
		TipoProducto: c.Query("tipo_producto"),
		Tipo:         c.Query("tipo"),
	}
	if pid := c.Query("producto_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		filter.ProductoID = &id
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	}
	movimientos, total, err := h.stock.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movimientos, "total": total})
}
