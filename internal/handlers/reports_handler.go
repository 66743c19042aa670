package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func sendAttachment(c *gin.Context, buf *bytes.Buffer, contentType, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// GET /api/reports/export/tasks  (admin; ?format=pdf for the PDF rendition)
func (h *ReportHandler) ExportTasks(c *gin.Context) {
	if c.Query("format") == "pdf" {
		buf, err := h.service.TasksReportPDF(c.Request.Context())
		if err != nil {
			log.Printf("[report][tasks][pdf][err] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating tasks report"})
			return
		}
		sendAttachment(c, buf, "application/pdf", "Tasks_Report.pdf")
		return
	}

	buf, err := h.service.TasksReportXLSX(c.Request.Context())
	if err != nil {
		log.Printf("[report][tasks][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating tasks report"})
		return
	}
	sendAttachment(c, buf, xlsxContentType, "Tasks_Report.xlsx")
}

// GET /api/reports/export/users  (admin)
func (h *ReportHandler) ExportUsers(c *gin.Context) {
	buf, err := h.service.UsersReportXLSX(c.Request.Context())
	if err != nil {
		log.Printf("[report][users][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating user report"})
		return
	}
	sendAttachment(c, buf, xlsxContentType, "User_Task_Report.xlsx")
}
