// Package exports produces CSV exports of the lead pipeline for the admin
// dashboard.
package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"meteory_backend/internal/leads/transport"
	"meteory_backend/internal/storage"
	"meteory_backend/platform/httpkit"
	"meteory_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02 15:04"

// Column order matches the dashboard's own "Export CSV" button, so the two
// downloads are interchangeable.
var csvHeaders = []string{"Date", "Name", "Email", "Phone", "App", "Facility Type", "Area (m2)", "Hazard Level", "Total Units", "Status"}

// LeadLister provides the rows to export.
type LeadLister interface {
	ListLeads(ctx context.Context) ([]transport.LeadResponse, error)
}

// ObjectStore uploads the export and returns a download link. Nil disables
// upload and the CSV streams inline instead.
type ObjectStore interface {
	UploadObject(ctx context.Context, bucket, fileKey, contentType string, content []byte) (*storage.PresignedURL, error)
}

// Handler handles export requests.
type Handler struct {
	leads  LeadLister
	store  ObjectStore
	bucket string
	log    *logger.Logger
}

// NewHandler creates an export handler. store may be nil.
func NewHandler(leads LeadLister, store ObjectStore, bucket string, log *logger.Logger) *Handler {
	return &Handler{leads: leads, store: store, bucket: bucket, log: log}
}

// Export handles GET /api/leads/export
func (h *Handler) Export(c *gin.Context) {
	items, err := h.leads.ListLeads(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	content, err := renderCSV(items)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render export")
		return
	}

	fileName := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format("20060102-150405"))

	if h.store != nil {
		link, err := h.store.UploadObject(c.Request.Context(), h.bucket, fileName, "text/csv", content)
		if err == nil {
			httpkit.OK(c, link)
			return
		}
		// Fall through to inline delivery so the admin still gets their file.
		h.log.Error("export upload failed, serving inline", "error", err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

func renderCSV(items []transport.LeadResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			item.CreatedAt.UTC().Format(dateLayout),
			item.Name,
			item.Email,
			strOrEmpty(item.Phone),
			strOrEmpty(item.AppName),
			strOrEmpty(item.FacilityType),
			floatOrEmpty(item.Area),
			strOrEmpty(item.HazardLevel),
			intOrEmpty(item.TotalUnits),
			item.Status,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
