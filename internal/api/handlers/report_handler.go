// internal/api/handlers/report_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/report"
	"techpartner-api-server/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	Store *store.Store
}

// AssetReport xuất danh sách tài sản ra file Excel.
func (h *ReportHandler) AssetReport(c *gin.Context) {
	h.serve(c, "aset.xlsx", report.GenerateAssetReport)
}

// WorkOrderReport xuất danh sách phiếu công việc ra file Excel.
func (h *ReportHandler) WorkOrderReport(c *gin.Context) {
	h.serve(c, "work-order.xlsx", report.GenerateWorkOrderReport)
}

// FinanceReport xuất danh sách chi tiêu ra file Excel.
func (h *ReportHandler) FinanceReport(c *gin.Context) {
	h.serve(c, "pengeluaran.xlsx", report.GenerateFinanceReport)
}

func (h *ReportHandler) serve(c *gin.Context, filename string, generate func(models.Document) ([]byte, error)) {
	raw, err := generate(h.Store.Snapshot())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, raw)
}
