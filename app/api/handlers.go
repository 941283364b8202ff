package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func NewHandler(snapshots SnapshotSource) *Handler {
	return &Handler{
		snapshots: snapshots,
	}
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	data := h.snapshots.Snapshot()
	if len(data) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Digest not built yet"})
		return
	}

	envelope := h.snapshots.Envelope()

	c.Header("X-Digest-Items", strconv.Itoa(len(envelope.Items)))
	c.Header("X-Generated-At", envelope.GeneratedAt)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	envelope := h.snapshots.Envelope()

	status := "ok"
	if len(h.snapshots.Snapshot()) == 0 {
		status = "empty"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"generated_at": envelope.GeneratedAt,
		"items":        len(envelope.Items),
		"sources":      len(envelope.Sources),
	})
}
