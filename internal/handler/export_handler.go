package handler

import (
	"net/http"
	"time"

	"github.com/noahjmorrison/onnaflips/internal/service"
	"github.com/noahjmorrison/onnaflips/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	export := router.Group("/api/tax-export")
	{
		export.GET("", h.TaxReportPDF)
		export.GET("/xlsx", h.TaxReportXLSX)
	}
}

// @Summary      Export tax report PDF
// @Description  Generates the tax report for a sale-date range as a PDF download
// @Tags         export
// @Produce      application/pdf
// @Param        start_date      query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date        query  string  false  "End date (YYYY-MM-DD)"
// @Param        include_listed  query  string  false  "Set to 1 to append unsold inventory"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Router       /api/tax-export [get]
func (h *ExportHandler) TaxReportPDF(c *gin.Context) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.TaxReportPDF(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary      Export tax report spreadsheet
// @Description  Generates the tax report for a sale-date range as an xlsx download
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date      query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date        query  string  false  "End date (YYYY-MM-DD)"
// @Param        include_listed  query  string  false  "Set to 1 to append unsold inventory"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Router       /api/tax-export/xlsx [get]
func (h *ExportHandler) TaxReportXLSX(c *gin.Context) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.TaxReportXLSX(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) parseOptions(c *gin.Context) (service.TaxReportOptions, bool) {
	opts := service.TaxReportOptions{
		IncludeListed: c.Query("include_listed") == "1",
	}
	for query, dest := range map[string]**time.Time{
		"start_date": &opts.Start,
		"end_date":   &opts.End,
	} {
		val := c.Query(query)
		if val == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", val)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid "+query+", expected YYYY-MM-DD"))
			return opts, false
		}
		*dest = &t
	}
	return opts, true
}
