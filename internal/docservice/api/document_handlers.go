package api

import (
	"io"
	"net/http"
	"strconv"

	"docuhub/internal/docservice/service"
	"docuhub/internal/docservice/store"

	"github.com/gin-gonic/gin"
)

// UploadHandler accepts a multipart file upload, converts it and
// enqueues processing. Content that converts but fails validation
// still creates the document and comes back as 422 with the reason.
func (a *API) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}

	result, err := a.service.Upload(c.Request.Context(), orgID(c), service.UploadInput{
		FileName:    fileHeader.Filename,
		Data:        data,
		Path:        c.PostForm("path"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DocType:     c.PostForm("type"),
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	if !result.Validation.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"document":   result.Document,
			"validation": result.Validation,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"document":   result.Document,
		"jobId":      result.Job.ID,
		"validation": result.Validation,
	})
}

type createDocumentRequest struct {
	Path        string                 `json:"path" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Content     string                 `json:"content" binding:"required"`
	DocType     string                 `json:"docType"`
	Frontmatter map[string]interface{} `json:"frontmatter"`
}

// CreateDocumentHandler creates a Markdown document from a JSON body.
func (a *API) CreateDocumentHandler(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	doc, job, err := a.service.Create(c.Request.Context(), orgID(c), service.CreateInput{
		Path:        req.Path,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		DocType:     req.DocType,
		Frontmatter: req.Frontmatter,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc, "jobId": job.ID})
}

// GetDocumentHandler returns one document.
func (a *API) GetDocumentHandler(c *gin.Context) {
	doc, err := a.service.Get(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListDocumentsHandler lists documents with optional type, glob and
// vectorization filters.
func (a *API) ListDocumentsHandler(c *gin.Context) {
	filter := store.ListFilter{
		DocType:  c.Query("type"),
		PathGlob: c.Query("pathGlob"),
	}
	if v := c.Query("vectorized"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			filter.Vectorized = &parsed
		}
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, err := a.service.List(c.Request.Context(), orgID(c), filter)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

type updateDocumentRequest struct {
	Path        *string `json:"path"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	DocType     *string `json:"docType"`
}

// UpdateDocumentHandler edits a document. A content change triggers
// reprocessing; the response carries the new job id when one started.
func (a *API) UpdateDocumentHandler(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	doc, job, err := a.service.Update(c.Request.Context(), orgID(c), c.Param("id"), service.UpdateInput{
		Path:        req.Path,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		DocType:     req.DocType,
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	resp := gin.H{"document": doc}
	if job != nil {
		resp["jobId"] = job.ID
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDocumentHandler removes a document and everything derived
// from it.
func (a *API) DeleteDocumentHandler(c *gin.Context) {
	if err := a.service.Delete(c.Request.Context(), orgID(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListChunksHandler returns a document's stored chunks in order.
func (a *API) ListChunksHandler(c *gin.Context) {
	chunks, err := a.service.Chunks(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chunks": chunks, "count": len(chunks)})
}
