package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
)

var allowedCVExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

type CVHandler struct {
	svc      services.CVService
	maxBytes int64
}

func NewCVHandler(svc services.CVService, maxBytes int64) *CVHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &CVHandler{svc: svc, maxBytes: maxBytes}
}

// Upload accepts multipart field "cv" and/or "text_content", or a JSON body
// with "text_content".
func (h *CVHandler) Upload(c *gin.Context) {
	const op = "CVHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// leave headroom for the other multipart fields
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	var sub services.Submission
	switch c.ContentType() {
	case "multipart/form-data":
		fh, err := c.FormFile("cv")
		switch {
		case err == nil:
			f, err := h.readUpload(op, fh)
			if err != nil {
				writeError(c, err)
				return
			}
			sub.File = f
		case errors.Is(err, http.ErrMissingFile):
		default:
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid multipart body", err))
			return
		}
		sub.Text = c.PostForm("text_content")
	case "application/x-www-form-urlencoded":
		sub.Text = c.PostForm("text_content")
	default:
		var body struct {
			TextContent string `json:"text_content"`
		}
		if c.Request.ContentLength != 0 && !bindJSON(c, op, &body) {
			return
		}
		sub.Text = body.TextContent
	}

	cv, err := h.svc.Ingest(c.Request.Context(), userID, sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cv)
}

func (h *CVHandler) readUpload(op string, fh *multipart.FileHeader) (*services.UploadedFile, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(allowedCVExtensions, ext) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cv must be a pdf, doc, docx or txt file", nil)
	}
	if fh.Size > h.maxBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cv file is too large", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to read upload", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cv file is too large", nil)
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return &services.UploadedFile{Filename: filepath.Base(fh.Filename), ContentType: ct, Data: data}, nil
}

func (h *CVHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.List(c.Request.Context(), userID, queryLimit(c, 20, 100))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *CVHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	cv, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) FileURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	url, err := h.svc.FileURL(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *CVHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.History(c.Request.Context(), userID, queryLimit(c, 20, 100))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
