package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/application/export"
	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/pkg/logger"
)

// SupplyHandler maneja las peticiones HTTP de insumos de la sede del token (protegido).
type SupplyHandler struct {
	supplies  *inventory.SupplyUseCase
	orderList *inventory.OrderListUseCase
	exporter  *export.OrderListExportUseCase
	log       *logger.Logger
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(
	supplies *inventory.SupplyUseCase,
	orderList *inventory.OrderListUseCase,
	exporter *export.OrderListExportUseCase,
	log *logger.Logger,
) *SupplyHandler {
	return &SupplyHandler{supplies: supplies, orderList: orderList, exporter: exporter, log: log}
}

// List godoc
// @Summary      Listar insumos de la sede
// @Description  Filtra por nombre (subcadena sin mayúsculas) y categoría; ordena por categoría y nombre.
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Texto a buscar en el nombre"
// @Param        category  query  string  false  "Categoría o 'All categories'"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	out, err := h.supplies.List(c.UserContext(), GetSiteID(c), c.Query("search"), c.Query("category"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear insumo
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.SupplyMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.supplies.Create(c.UserContext(), GetSiteID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos de un insumo
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateSupplyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SupplyMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [put]
func (h *SupplyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.supplies.Update(c.UserContext(), GetSiteID(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock (incremento / decremento)
// @Description  El stock resultante nunca baja de cero; low_stock se recalcula en la misma escritura.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.AdjustStockRequest  true  "delta"
// @Success      200   {object}  dto.SupplyMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id}/stock [patch]
func (h *SupplyHandler) AdjustStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.supplies.Adjust(c.UserContext(), GetSiteID(c), id, in.Delta)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar insumo (solo admin)
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.SupplyMutationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.supplies.Delete(c.UserContext(), GetSiteID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("site_id", GetSiteID(c)).Str("user_id", GetUserID(c)).Str("supply_id", id).Msg("supply deleted")
	return c.JSON(out)
}

// Scan godoc
// @Summary      Escanear insumo (entrada / salida)
// @Description  Sin coincidencia responde 200 con outcome "not_found" y un borrador para crear el insumo.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "key, mode (in|out), field (upc|name)"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/supplies/scan [post]
func (h *SupplyHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.supplies.Scan(c.UserContext(), GetSiteID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de la sede
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummary
// @Router       /api/supplies/summary [get]
func (h *SupplyHandler) Summary(c *fiber.Ctx) error {
	out, err := h.supplies.Summary(c.UserContext(), GetSiteID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// OrderList godoc
// @Summary      Lista de pedido (insumos en stock bajo)
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/supplies/order-list [get]
func (h *SupplyHandler) OrderList(c *fiber.Ctx) error {
	out, err := h.orderList.Generate(c.UserContext(), GetSiteID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// OrderListPDF godoc
// @Summary      Descargar lista de pedido en PDF
// @Tags         supplies
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/supplies/order-list/pdf [get]
func (h *SupplyHandler) OrderListPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.exporter.PDF(c.UserContext(), GetSiteID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// OrderListPrint godoc
// @Summary      Lista de pedido imprimible (texto plano)
// @Tags         supplies
// @Security     Bearer
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/supplies/order-list/print [get]
func (h *SupplyHandler) OrderListPrint(c *fiber.Ctx) error {
	out, err := h.exporter.Text(c.UserContext(), GetSiteID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(out)
}
