package postgres

import (
	"context"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session. A token collision trips the unique
// constraint and is reported loudly; an existing session is never replaced.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)
	if sessionM.ID == uuid.Nil {
		sessionM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("session token collision")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("unknown session owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByToken retrieves a session by exact token match.
func (repo *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toSessionDomain(&sessionM), nil
}

// FindByOwner retrieves all sessions for an account, ordered by creation time.
func (repo *sessionRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*entity.Session, error) {
	var sessionModels []*model.SessionModel
	if err := repo.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at ASC").
		Find(&sessionModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	sessions := make([]*entity.Session, 0, len(sessionModels))
	for _, sessionM := range sessionModels {
		sessions = append(sessions, toSessionDomain(sessionM))
	}

	return sessions, nil
}

// Touch stamps the session's last-used time.
func (repo *sessionRepository) Touch(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ?", id).
		Update("last_used_at", usedAt)

	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}

	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// Delete removes one session scoped to its owner.
// The owner filter makes the operation self-authorizing; deleting a missing
// or foreign session affects zero rows and is a no-op.
func (repo *sessionRepository) Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("owner_email = ? AND id = ?", ownerEmail, id).
		Delete(&model.SessionModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteByOwner removes all sessions for an account.
func (repo *sessionRepository) DeleteByOwner(ctx context.Context, ownerEmail string) error {
	if err := repo.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Delete(&model.SessionModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// CountByOwner returns the number of sessions for an account.
func (repo *sessionRepository) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("owner_email = ?", ownerEmail).
		Count(&count).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return int(count), nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:         data.ID,
		OwnerEmail: data.OwnerEmail,
		Token:      data.Token,
		CreatedAt:  data.CreatedAt,
		LastUsedAt: data.LastUsedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:         data.ID,
		OwnerEmail: data.OwnerEmail,
		Token:      data.Token,
		CreatedAt:  data.CreatedAt,
		LastUsedAt: data.LastUsedAt,
	}
}
