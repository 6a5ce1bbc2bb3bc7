package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomcast/roomcast/internal/blob"
	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/proto"
)

// APIHandlers serves the read-only snapshot endpoints and attachment
// uploads.
type APIHandlers struct {
	hub            *core.Hub
	blobs          blob.Store
	maxUploadBytes int64
	log            *zerolog.Logger
}

// NewAPIHandlers creates the REST handler set.
func NewAPIHandlers(hub *core.Hub, blobs blob.Store, maxUploadBytes int64, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:            hub,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		log:            logger,
	}
}

// ErrorResponse is the REST error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse points at a stored attachment.
type UploadResponse struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// History returns the recent message window for late-joining clients.
func (h *APIHandlers) History(c *gin.Context) {
	snap, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "snapshot unavailable"})
		return
	}
	messages := make([]proto.EventMessageData, 0, len(snap.Messages))
	for _, msg := range snap.Messages {
		messages = append(messages, messageData(msg))
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Users returns the presence list in join order.
func (h *APIHandlers) Users(c *gin.Context) {
	snap, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "snapshot unavailable"})
		return
	}
	users := make([]proto.UserInfo, 0, len(snap.Users))
	for _, u := range snap.Users {
		users = append(users, proto.UserInfo{ID: u.ConnID, Username: u.Username})
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Upload stores a multipart file in the blob store and returns the
// reference the client attaches to a later sendMessage.
func (h *APIHandlers) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read file"})
		return
	}
	defer src.Close()

	obj, err := h.blobs.Save(header.Filename, src)
	if err != nil {
		h.log.Error().Err(err).Str("file", header.Filename).Msg("store upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		URL:      obj.URL,
		Name:     obj.Name,
		MimeType: obj.MimeType,
	})
}
