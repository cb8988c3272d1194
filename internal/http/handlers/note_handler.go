// Note HTTP handlers.
//
// This file exposes REST endpoints for notes:
//   - GET    /notes/{id}      (read one)
//   - GET    /notes?ids=1,2   (read many)
//   - POST   /notes           (create)
//   - PUT    /notes/{id}      (update, optimistic)
//
// Empty note text means "no note": creating one is a no-op and updating to it
// deletes the note. Both answer 204.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/domain"
	"github.com/tbourn/go-saas-core/internal/utils"
)

// NoteService defines the note operations consumed by HTTP handlers.
type NoteService interface {
	FindNoteByID(ctx context.Context, id int64) (string, bool, error)
	FindAllNotesByID(ctx context.Context, ids []int64) (map[int64]string, error)
	Save(ctx context.Context, note string, id *int64, version *int) (*domain.Note, error)
}

// NoteDTO is the wire form of a stored note.
type NoteDTO struct {
	ID      int64  `json:"id"      example:"7"`
	Note    string `json:"note"    example:"call back after 5pm"`
	Version int    `json:"version" example:"2"`
}

// NoteTextDTO is a note id with its text.
type NoteTextDTO struct {
	ID   int64  `json:"id"   example:"7"`
	Note string `json:"note" example:"call back after 5pm"`
}

func noteDTO(n *domain.Note) NoteDTO {
	return NoteDTO{ID: n.ID, Note: n.Note, Version: n.Version}
}

// NotesResponse maps note ids to their text.
type NotesResponse struct {
	Notes map[string]string `json:"notes"`
}

// CreateNoteRequest is the JSON payload for creating a note. ID must be
// absent; it exists so clients sending one get a clear rejection.
type CreateNoteRequest struct {
	ID   *int64 `json:"id,omitempty" swaggerignore:"true"`
	Note string `json:"note" example:"call back after 5pm"`
}

// UpdateNoteRequest is the JSON payload for updating a note.
type UpdateNoteRequest struct {
	Note    string `json:"note"    example:"call back tomorrow"`
	Version *int   `json:"version" binding:"required,gte=0" example:"2"`
}

// NoteHandlers groups the note endpoints.
type NoteHandlers struct {
	svc NoteService
}

// NewNoteHandlers binds the note endpoints to svc.
func NewNoteHandlers(svc NoteService) *NoteHandlers {
	return &NoteHandlers{svc: svc}
}

// GetNote godoc
// @ID          getNote
// @Summary     Get a note
// @Tags        Notes
// @Produce     json
// @Param       id   path     int  true  "Note ID"  minimum(1)
// @Success     200  {object} handlers.NoteTextDTO
// @Failure     400  {object} problem.Body "Malformed id"
// @Failure     404  {object} problem.Body "Note not found"
// @Router      /notes/{id} [get]
func (h *NoteHandlers) GetNote(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	text, found, err := h.svc.FindNoteByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	if !found {
		abort(c, &apperr.NotFound{Resource: "note", ID: id})
		return
	}
	ok(c, http.StatusOK, NoteTextDTO{ID: id, Note: text})
}

// ListNotes godoc
// @ID          listNotes
// @Summary     Get several notes
// @Description Unknown ids are left out of the result.
// @Tags        Notes
// @Produce     json
// @Param       ids  query    string  true  "Comma-separated note ids"  example(1,2,3)
// @Success     200  {object} handlers.NotesResponse
// @Failure     400  {object} problem.Body "Malformed id"
// @Router      /notes [get]
func (h *NoteHandlers) ListNotes(c *gin.Context) {
	ids, err := utils.ParseIDs("ids", c.Query("ids"))
	if err != nil {
		abort(c, err)
		return
	}
	found, err := h.svc.FindAllNotesByID(c.Request.Context(), ids)
	if err != nil {
		abort(c, err)
		return
	}
	out := NotesResponse{Notes: make(map[string]string, len(found))}
	for id, text := range found {
		out.Notes[strconv.FormatInt(id, 10)] = text
	}
	ok(c, http.StatusOK, out)
}

// CreateNote godoc
// @ID          createNote
// @Summary     Create a note
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body     handlers.CreateNoteRequest  true  "Note payload"
// @Success     201  {object} handlers.NoteDTO
// @Success     204  {string} string "Empty note, nothing stored"
// @Failure     400  {object} problem.Body "Malformed body"
// @Failure     422  {object} problem.Body "Rejected note"
// @Router      /notes [post]
func (h *NoteHandlers) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperr.FromBinding(err))
		return
	}
	if req.ID != nil {
		abort(c, &apperr.BadRequestAlert{Entity: "note", Key: "idexists", Message: "A new note cannot already have an ID"})
		return
	}
	n, err := h.svc.Save(c.Request.Context(), req.Note, nil, nil)
	if err != nil {
		abort(c, err)
		return
	}
	if n == nil {
		noContent(c)
		return
	}
	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(n.ID, 10))
	ok(c, http.StatusCreated, noteDTO(n))
}

// UpdateNote godoc
// @ID          updateNote
// @Summary     Update or clear a note
// @Description Version must match the stored one. An empty note deletes it.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       id   path     int  true  "Note ID"  minimum(1)
// @Param       body body     handlers.UpdateNoteRequest  true  "Note payload"
// @Success     200  {object} handlers.NoteDTO
// @Success     204  {string} string "Note deleted"
// @Failure     400  {object} problem.Body "Malformed id or body"
// @Failure     404  {object} problem.Body "Note not found"
// @Failure     409  {object} problem.Body "Stale version"
// @Failure     422  {object} problem.Body "Rejected note"
// @Router      /notes/{id} [put]
func (h *NoteHandlers) UpdateNote(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperr.FromBinding(err))
		return
	}
	n, err := h.svc.Save(c.Request.Context(), req.Note, &id, req.Version)
	if err != nil {
		abort(c, err)
		return
	}
	if n == nil {
		noContent(c)
		return
	}
	ok(c, http.StatusOK, noteDTO(n))
}
