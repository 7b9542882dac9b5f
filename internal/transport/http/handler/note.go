package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/app"
	"studyprep-api/internal/pkg/pdfextract"
	"studyprep-api/internal/transport/http/response"
)

const maxPDFSize = 10 << 20 // 10 MB

type NoteHandler struct {
	noteService *app.NoteService
}

type CreateNoteRequest struct {
	Title               string          `json:"title" binding:"required,max=256"`
	Body                string          `json:"body" binding:"required"`
	StructuredQuestions json.RawMessage `json:"structured_questions"`
	PageCount           int             `json:"page_count" binding:"min=0"`
}

func NewNoteHandler(noteService *app.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) Create(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), app.CreateNoteInput{
		Owner:               id,
		Title:               req.Title,
		Body:                req.Body,
		StructuredQuestions: req.StructuredQuestions,
		PageCount:           req.PageCount,
	})
	if err != nil {
		writeServiceError(c, err, "create note failed")
		return
	}

	response.Created(c, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "list notes failed")
		return
	}

	response.OK(c, notes)
}

// Upload accepts a multipart form with "file" (PDF) and optional "title" and
// "structured_questions", and stores the extracted text as a note.
func (h *NoteHandler) Upload(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file (form field 'file')")
		return
	}
	if file.Size > maxPDFSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only .pdf files are supported")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to read file")
		return
	}
	defer f.Close()

	doc, err := pdfextract.Extract(f)
	if err != nil {
		if errors.Is(err, pdfextract.ErrEmptyDocument) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to parse pdf")
		return
	}
	if doc.Text == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "pdf has no extractable text")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), app.CreateNoteInput{
		Owner:               id,
		Title:               title,
		Body:                doc.Text,
		StructuredQuestions: json.RawMessage(c.PostForm("structured_questions")),
		PageCount:           doc.PageCount,
	})
	if err != nil {
		writeServiceError(c, err, "create note failed")
		return
	}

	response.Created(c, note)
}
