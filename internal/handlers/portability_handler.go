package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/export"
	"spendlog/internal/models"
	"spendlog/internal/services"
)

// MaxBackupSize is the largest accepted restore upload.
const MaxBackupSize = 5 << 20

// BackupField is the multipart field carrying the restore upload.
const BackupField = "backup_file"

// PortabilityHandler serves exports, backups and restores
type PortabilityHandler struct {
	portabilityService services.PortabilityServicer
	auditService       services.AuditServicer
}

// NewPortabilityHandler creates a new PortabilityHandler
func NewPortabilityHandler(portabilityService services.PortabilityServicer, auditService services.AuditServicer) *PortabilityHandler {
	return &PortabilityHandler{portabilityService: portabilityService, auditService: auditService}
}

// download encodes into a buffer first so that a failure can still be
// reported as an error page instead of a truncated file.
func (h *PortabilityHandler) download(c *gin.Context, contentType, filename string, write func(userID uint, w io.Writer) error) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := write(userID, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ExportCSV downloads the caller's expenses as CSV
// @Summary     Export CSV
// @Tags        export
// @Produce     text/csv
// @Success     200 {file} file "expenses.csv"
// @Router      /export_csv [get]
func (h *PortabilityHandler) ExportCSV(c *gin.Context) {
	h.download(c, export.CSVContentType, export.CSVFilename, h.portabilityService.ExportCSV)
}

// ExportXLSX downloads the caller's expenses as an Excel workbook
// @Summary     Export spreadsheet
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} file "expenses.xlsx"
// @Router      /export_xlsx [get]
func (h *PortabilityHandler) ExportXLSX(c *gin.Context) {
	h.download(c, export.XLSXContentType, export.XLSXFilename, h.portabilityService.ExportXLSX)
}

// BackupJSON downloads every field of the caller's expenses as JSON
// @Summary     Download JSON backup
// @Tags        export
// @Produce     json
// @Success     200 {array} export.BackupRecord
// @Router      /backup_json [get]
func (h *PortabilityHandler) BackupJSON(c *gin.Context) {
	h.download(c, export.BackupContentType, export.BackupFilename, h.portabilityService.Backup)
}

// ShowRestore renders the restore upload form
// @Summary     Restore form
// @Tags        export
// @Produce     html
// @Success     200 {string} string "HTML page"
// @Router      /restore_json [get]
func (h *PortabilityHandler) ShowRestore(c *gin.Context) {
	render(c, http.StatusOK, "restore.html", gin.H{"Title": "Restore"})
}

// RestoreJSON upserts the uploaded backup into the caller's expenses
// @Summary     Restore a JSON backup
// @Description All items are validated before anything is written; an invalid file changes nothing.
// @Tags        export
// @Accept      multipart/form-data
// @Produce     html
// @Param       backup_file formData file true "Backup produced by /backup_json"
// @Success     200 {string} string "Form re-rendered with created/updated counts"
// @Failure     400 {string} string "Form re-rendered with an error"
// @Router      /restore_json [post]
func (h *PortabilityHandler) RestoreJSON(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBackupSize+1<<10)
	header, err := c.FormFile(BackupField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderRestoreError(c, apperrors.WithMessage(apperrors.ErrInvalidBackup, "Backup file is larger than 5 MiB."))
			return
		}
		h.renderRestoreError(c, apperrors.WithMessage(apperrors.ErrInvalidBackup, "Choose a backup file to upload."))
		return
	}
	if header.Size > MaxBackupSize {
		h.renderRestoreError(c, apperrors.WithMessage(apperrors.ErrInvalidBackup, "Backup file is larger than 5 MiB."))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.renderRestoreError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	result, err := h.portabilityService.Restore(userID, file)
	if err != nil {
		h.renderRestoreError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditActionRestore, services.AuditResourceExpense, 0, c.ClientIP(),
		map[string]interface{}{"created": result.Created, "updated": result.Updated})

	render(c, http.StatusOK, "restore.html", gin.H{
		"Title":  "Restore",
		"Result": result,
	})
}

func (h *PortabilityHandler) renderRestoreError(c *gin.Context, err error) {
	status, message := errorStatus(c, err)
	render(c, status, "restore.html", gin.H{
		"Title": "Restore",
		"Error": message,
	})
}
