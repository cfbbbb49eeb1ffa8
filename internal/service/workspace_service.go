package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-board-api/internal/board"
	"workspace-board-api/internal/client"
	"workspace-board-api/internal/config"
	"workspace-board-api/internal/domain"
	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/metrics"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/response"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	ID   uuid.UUID
	Name string
}

// WorkspaceService defines the interface for workspace business logic
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, actor Actor, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	ListWorkspaces(ctx context.Context, actor Actor) ([]*dto.WorkspaceSummaryResponse, error)
	GetWorkspace(ctx context.Context, actor Actor, workspaceID uuid.UUID) (*dto.WorkspaceResponse, error)
	DeleteWorkspace(ctx context.Context, actor Actor, workspaceID uuid.UUID) error
	AddCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, req *dto.AddCardRequest) (*dto.AddCardResponse, error)
	MoveCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, req *dto.MoveCardRequest) (*dto.WorkspaceResponse, error)
	DeleteCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, columnID, cardID string) (*dto.WorkspaceResponse, error)
	Snapshot(ctx context.Context, workspaceID uuid.UUID) (*dto.WorkspaceResponse, error)
}

// workspaceServiceImpl is the implementation of WorkspaceService
type workspaceServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	bookService   BookService
	activityRepo  repository.ActivityRepository
	broadcaster   realtime.Broadcaster
	columns       []config.ColumnConfig
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	bookService BookService,
	activityRepo repository.ActivityRepository,
	broadcaster realtime.Broadcaster,
	columns []config.ColumnConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) WorkspaceService {
	return &workspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		bookService:   bookService,
		activityRepo:  activityRepo,
		broadcaster:   broadcaster,
		columns:       columns,
		logger:        logger,
		metrics:       m,
	}
}

// CreateWorkspace creates a workspace stamped with the configured column set
func (s *workspaceServiceImpl) CreateWorkspace(ctx context.Context, actor Actor, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	columns := make([]domain.Column, len(s.columns))
	for i, col := range s.columns {
		columns[i] = domain.Column{ID: col.ID, Title: col.Title, Cards: []domain.Card{}}
	}

	workspace := &domain.Workspace{
		OwnerID:     actor.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := workspace.SetColumnSet(columns); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to build column document", err.Error())
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create workspace", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementWorkspaceCreated()
	}
	s.recordActivity(ctx, workspace.ID, actor, domain.ActivityWorkspaceCreated, "", workspace.Name)

	s.logger.Info("Workspace created",
		zap.String("workspaceId", workspace.ID.String()),
		zap.String("ownerId", actor.ID.String()),
	)

	resp, err := dto.ToWorkspaceResponse(workspace)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}
	return resp, nil
}

// ListWorkspaces lists the workspaces owned by the actor
func (s *workspaceServiceImpl) ListWorkspaces(ctx context.Context, actor Actor) ([]*dto.WorkspaceSummaryResponse, error) {
	workspaces, err := s.workspaceRepo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list workspaces", err.Error())
	}

	responses := make([]*dto.WorkspaceSummaryResponse, len(workspaces))
	for i, workspace := range workspaces {
		responses[i] = dto.ToWorkspaceSummaryResponse(workspace)
	}
	return responses, nil
}

// GetWorkspace returns a workspace with its full column document.
// Only the owner may read a workspace through the REST surface.
func (s *workspaceServiceImpl) GetWorkspace(ctx context.Context, actor Actor, workspaceID uuid.UUID) (*dto.WorkspaceResponse, error) {
	workspace, err := s.findOwned(ctx, actor, workspaceID)
	if err != nil {
		return nil, err
	}

	resp, err := dto.ToWorkspaceResponse(workspace)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}
	return resp, nil
}

// DeleteWorkspace removes a workspace and cascades its activity feed.
// Feed entries reference the workspace only, so they go with it.
func (s *workspaceServiceImpl) DeleteWorkspace(ctx context.Context, actor Actor, workspaceID uuid.UUID) error {
	if _, err := s.findOwned(ctx, actor, workspaceID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete workspace", err.Error())
	}

	if err := s.activityRepo.DeleteByWorkspace(ctx, workspaceID); err != nil {
		s.logger.Warn("Failed to delete activity entries",
			zap.String("workspaceId", workspaceID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Workspace deleted",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("ownerId", actor.ID.String()),
	)
	return nil
}

// AddCard adds a book card to a column. The book reference is resolved to a
// canonical id first; if a card with the same resolved reference already
// exists anywhere on the board, the add is a success no-op.
func (s *workspaceServiceImpl) AddCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, req *dto.AddCardRequest) (*dto.AddCardResponse, error) {
	card, err := s.buildCard(ctx, req)
	if err != nil {
		return nil, err
	}

	duplicate := false
	updated, err := s.workspaceRepo.UpdateColumns(ctx, workspaceID, func(columns []domain.Column) ([]domain.Column, error) {
		if _, exists := domain.FindCardByBookID(columns, card.BookID); exists {
			duplicate = true
			return columns, nil
		}

		target := -1
		for i := range columns {
			if columns[i].ID == req.ColumnID {
				target = i
				break
			}
		}
		if target < 0 {
			return nil, board.ErrInvalidColumn
		}

		columns[target].Cards = append(columns[target].Cards, *card)
		return columns, nil
	})
	if err != nil {
		return nil, s.mapMutationError(err, "Failed to add card")
	}

	resp, err := dto.ToWorkspaceResponse(updated)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}

	if duplicate {
		s.logger.Info("Duplicate card add ignored",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("bookId", card.BookID),
		)
		return &dto.AddCardResponse{Workspace: resp, Duplicate: true}, nil
	}

	if s.metrics != nil {
		s.metrics.IncrementCardAdded()
	}
	s.recordActivity(ctx, workspaceID, actor, domain.ActivityCardAdded, card.Title, req.ColumnID)

	s.broadcaster.BroadcastWorkspace(workspaceID, resp.Columns)
	s.broadcaster.BroadcastBookAdded(workspaceID, realtime.BookAddedNotice{
		Book:      card,
		UserID:    actor.ID.String(),
		UserName:  actor.Name,
		Message:   fmt.Sprintf("%s added %q to the shelf", actor.Name, card.Title),
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info("Card added",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("cardId", card.ID),
		zap.String("columnId", req.ColumnID),
	)

	return &dto.AddCardResponse{Workspace: resp, Card: card, Duplicate: false}, nil
}

// MoveCard re-arranges the board via the move planner and persists the result
func (s *workspaceServiceImpl) MoveCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, req *dto.MoveCardRequest) (*dto.WorkspaceResponse, error) {
	var movedTitle string
	updated, err := s.workspaceRepo.UpdateColumns(ctx, workspaceID, func(columns []domain.Column) ([]domain.Column, error) {
		next, err := board.Plan(columns, req.FromColumnID, req.ToColumnID, *req.FromIndex, *req.ToIndex)
		if err != nil {
			return nil, err
		}
		for i := range columns {
			if columns[i].ID == req.FromColumnID && *req.FromIndex < len(columns[i].Cards) {
				movedTitle = columns[i].Cards[*req.FromIndex].Title
			}
		}
		return next, nil
	})
	if err != nil {
		return nil, s.mapMutationError(err, "Failed to move card")
	}

	resp, err := dto.ToWorkspaceResponse(updated)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardMoved()
	}
	s.recordActivity(ctx, workspaceID, actor, domain.ActivityCardMoved, movedTitle,
		fmt.Sprintf("%s -> %s", req.FromColumnID, req.ToColumnID))

	s.broadcaster.BroadcastWorkspace(workspaceID, resp.Columns)

	s.logger.Info("Card moved",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("fromColumnId", req.FromColumnID),
		zap.String("toColumnId", req.ToColumnID),
	)

	return resp, nil
}

// DeleteCard removes a card from a column by id
func (s *workspaceServiceImpl) DeleteCard(ctx context.Context, actor Actor, workspaceID uuid.UUID, columnID, cardID string) (*dto.WorkspaceResponse, error) {
	var deletedTitle string
	updated, err := s.workspaceRepo.UpdateColumns(ctx, workspaceID, func(columns []domain.Column) ([]domain.Column, error) {
		target := -1
		for i := range columns {
			if columns[i].ID == columnID {
				target = i
				break
			}
		}
		if target < 0 {
			// Deleting from a column that does not exist is a lookup
			// failure, not a malformed request
			return nil, gorm.ErrRecordNotFound
		}

		for i, card := range columns[target].Cards {
			if card.ID == cardID {
				deletedTitle = card.Title
				columns[target].Cards = append(columns[target].Cards[:i], columns[target].Cards[i+1:]...)
				return columns, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	})
	if err != nil {
		return nil, s.mapMutationError(err, "Failed to delete card")
	}

	resp, err := dto.ToWorkspaceResponse(updated)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardDeleted()
	}
	s.recordActivity(ctx, workspaceID, actor, domain.ActivityCardDeleted, deletedTitle, columnID)

	s.broadcaster.BroadcastWorkspace(workspaceID, resp.Columns)

	s.logger.Info("Card deleted",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("cardId", cardID),
		zap.String("columnId", columnID),
	)

	return resp, nil
}

// Snapshot returns the current board state without an ownership check.
// Room members receive snapshots over the realtime channel regardless of
// ownership, so the gateway reads through this path.
func (s *workspaceServiceImpl) Snapshot(ctx context.Context, workspaceID uuid.UUID) (*dto.WorkspaceResponse, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Workspace not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workspace", err.Error())
	}

	resp, err := dto.ToWorkspaceResponse(workspace)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode workspace", err.Error())
	}
	return resp, nil
}

// buildCard resolves the request's book reference and assembles the card.
// Catalog enrichment failures degrade to the request's own fields.
func (s *workspaceServiceImpl) buildCard(ctx context.Context, req *dto.AddCardRequest) (*domain.Card, error) {
	ref := domain.ParseBookRef(req.BookID)

	card := &domain.Card{
		ID:      domain.NewCardID(),
		BookID:  ref.Value,
		Title:   req.Title,
		Author:  req.Author,
		Cover:   req.Cover,
		Preview: req.Preview,
		Excerpt: req.Excerpt,
	}

	switch ref.Kind {
	case domain.BookRefManual:
		if card.Title == "" {
			return nil, response.NewValidationError("Title is required for manual books", "")
		}
		return card, nil

	case domain.BookRefStorage:
		storageID, err := ref.StorageID()
		if err != nil {
			return nil, response.NewValidationError("Invalid book reference", err.Error())
		}
		saved, err := s.bookService.FindSaved(ctx, storageID)
		if err != nil {
			return nil, err
		}
		// Cards always carry the canonical catalog id, never the row id
		card.BookID = saved.GoogleBooksID
		if card.Title == "" {
			card.Title = saved.Title
		}
		if card.Cover == "" {
			card.Cover = saved.CoverURL
		}
		if card.Preview == "" {
			card.Preview = saved.PreviewURL
		}
		if card.Author == "" && len(saved.Authors) > 0 {
			card.Author = saved.Authors[0]
		}
		return card, nil

	default:
		resolved, err := s.bookService.Resolve(ctx, ref.Value)
		if err != nil {
			var appErr *response.AppError
			if errors.As(err, &appErr) && appErr.Code == response.ErrCodeNotFound {
				return nil, err
			}
			// Degrade to the client's fields when the catalog is unavailable
			s.logger.Warn("Catalog enrichment failed, using request fields",
				zap.String("bookId", ref.Value),
				zap.Error(err),
			)
			if card.Title == "" {
				return nil, response.NewValidationError("Title is required when the catalog is unavailable", "")
			}
			return card, nil
		}
		if card.Title == "" {
			card.Title = resolved.Title
		}
		if card.Cover == "" {
			card.Cover = resolved.CoverURL
		}
		if card.Preview == "" {
			card.Preview = resolved.PreviewURL
		}
		if card.Author == "" && len(resolved.Authors) > 0 {
			card.Author = resolved.Authors[0]
		}
		return card, nil
	}
}

// findOwned loads a workspace and enforces ownership
func (s *workspaceServiceImpl) findOwned(ctx context.Context, actor Actor, workspaceID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Workspace not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workspace", err.Error())
	}
	if workspace.OwnerID != actor.ID {
		return nil, response.NewForbiddenError("Not the workspace owner", "")
	}
	return workspace, nil
}

// mapMutationError converts repository and planner errors to AppErrors
func (s *workspaceServiceImpl) mapMutationError(err error, message string) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NewNotFoundError("Workspace or card not found", "")
	case errors.Is(err, board.ErrInvalidColumn):
		return response.NewAppError(response.ErrCodeInvalidColumn, "Unknown column id", "")
	case errors.Is(err, board.ErrIndexOutOfRange):
		return response.NewAppError(response.ErrCodeIndexOutOfRange, "Card index out of range", "")
	default:
		return response.NewAppError(response.ErrCodeInternal, message, err.Error())
	}
}

// recordActivity writes an activity entry, logging failures without
// propagating them
func (s *workspaceServiceImpl) recordActivity(ctx context.Context, workspaceID uuid.UUID, actor Actor, action domain.ActivityAction, cardTitle, detail string) {
	entry := &domain.ActivityLog{
		WorkspaceID: workspaceID,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		Action:      action,
		CardTitle:   cardTitle,
		Detail:      detail,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to record activity",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
