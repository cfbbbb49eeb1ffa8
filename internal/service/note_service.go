package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/response"
)

// NoteService defines the interface for research note business logic
type NoteService interface {
	CreateNote(ctx context.Context, actor Actor, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	ListNotesByBook(ctx context.Context, googleID string, limit, offset int) ([]*dto.NoteResponse, error)
	UpdateNote(ctx context.Context, actor Actor, noteID uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, actor Actor, noteID uuid.UUID) error
}

// noteServiceImpl is the implementation of NoteService
type noteServiceImpl struct {
	noteRepo    repository.NoteRepository
	broadcaster realtime.Broadcaster
	logger      *zap.Logger
}

// NewNoteService creates a new instance of NoteService
func NewNoteService(noteRepo repository.NoteRepository, broadcaster realtime.Broadcaster, logger *zap.Logger) NoteService {
	return &noteServiceImpl{
		noteRepo:    noteRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreateNote persists a research note. Notes attached to a workspace are
// announced to that workspace's room; free-standing notes are not.
func (s *noteServiceImpl) CreateNote(ctx context.Context, actor Actor, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note := &domain.ResearchNote{
		GoogleBooksID: req.GoogleBooksID,
		WorkspaceID:   req.WorkspaceID,
		AuthorID:      actor.ID,
		AuthorName:    actor.Name,
		ChapterID:     req.ChapterID,
		PageNumber:    req.PageNumber,
		Content:       req.Content,
	}
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, response.NewValidationError("Invalid tags", err.Error())
		}
		note.Tags = raw
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create note", err.Error())
	}

	resp := dto.ToNoteResponse(note)
	s.announce(note, realtime.EventNoteCreated, realtime.NoteNotice{
		Note:      resp,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info("Note created",
		zap.String("noteId", note.ID.String()),
		zap.String("googleBooksId", note.GoogleBooksID),
		zap.String("authorId", actor.ID.String()),
	)
	return resp, nil
}

// ListNotesByBook lists the notes for a catalog book, newest first
func (s *noteServiceImpl) ListNotesByBook(ctx context.Context, googleID string, limit, offset int) ([]*dto.NoteResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notes, err := s.noteRepo.FindByBook(ctx, googleID, limit, offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list notes", err.Error())
	}

	responses := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = dto.ToNoteResponse(note)
	}
	return responses, nil
}

// UpdateNote applies a partial update to a note. Only the author may edit.
func (s *noteServiceImpl) UpdateNote(ctx context.Context, actor Actor, noteID uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := s.findAuthored(ctx, actor, noteID)
	if err != nil {
		return nil, err
	}

	if req.Content != "" {
		note.Content = req.Content
	}
	if req.ChapterID != "" {
		note.ChapterID = req.ChapterID
	}
	if req.PageNumber != nil {
		note.PageNumber = *req.PageNumber
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}
	if req.Tags != nil {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, response.NewValidationError("Invalid tags", err.Error())
		}
		note.Tags = raw
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update note", err.Error())
	}

	resp := dto.ToNoteResponse(note)
	s.announce(note, realtime.EventNoteUpdated, realtime.NoteNotice{
		Note:      resp,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info("Note updated", zap.String("noteId", noteID.String()))
	return resp, nil
}

// DeleteNote removes a note. Only the author may delete.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, actor Actor, noteID uuid.UUID) error {
	note, err := s.findAuthored(ctx, actor, noteID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete note", err.Error())
	}

	s.announce(note, realtime.EventNoteDeleted, realtime.NoteNotice{
		NoteID:    noteID.String(),
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info("Note deleted", zap.String("noteId", noteID.String()))
	return nil
}

// findAuthored loads a note and enforces authorship
func (s *noteServiceImpl) findAuthored(ctx context.Context, actor Actor, noteID uuid.UUID) (*domain.ResearchNote, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Note not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch note", err.Error())
	}
	if note.AuthorID != actor.ID {
		return nil, response.NewForbiddenError("Not the note author", "")
	}
	return note, nil
}

// announce broadcasts a note event to the note's workspace room, if any
func (s *noteServiceImpl) announce(note *domain.ResearchNote, event string, notice realtime.NoteNotice) {
	if note.WorkspaceID == nil {
		return
	}
	s.broadcaster.BroadcastNote(*note.WorkspaceID, event, notice)
}
