package usecase

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/converter"
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ClientUsecase interface {
	Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetAll(ctx context.Context, search string, page, limit int) (*dto.ClientListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clientRepo   repository.ClientRepository
	auditService service.AuditService
}

func NewClientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	auditService service.AuditService,
) ClientUsecase {
	return &clientUsecase{
		db:           db,
		log:          log,
		clientRepo:   clientRepo,
		auditService: auditService,
	}
}

func (u *clientUsecase) Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client := &entity.Client{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		WhatsApp: req.WhatsApp,
		Notes:    req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.clientRepo.Create(ctx, tx, client); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create client: %+v", err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionClientCreate, "client", client.ID.String(), client)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) GetAll(ctx context.Context, search string, page, limit int) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	clients, total, err := u.clientRepo.FindAll(ctx, u.db, search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find clients: %+v", err)
		return nil, err
	}

	return &dto.ClientListResponse{
		Clients: converter.ClientsToResponses(clients),
		Total:   total,
	}, nil
}

func (u *clientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := u.clientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", id, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := u.clientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	old := *client

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.WhatsApp != "" {
		client.WhatsApp = req.WhatsApp
	}
	if req.AvatarURL != "" {
		client.AvatarURL = req.AvatarURL
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.clientRepo.Update(ctx, tx, client); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update client %s: %+v", id, err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionClientUpdate, "client", id.String(), old, client)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := u.clientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.clientRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete client %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}

	userID := actorFromContext(ctx)
	u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionClientDelete, "client", id.String(), client)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
