package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"taskhub/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// GetRefs resolves ids to display projections, preserving the order
	// of the incoming id list.
	GetRefs(ctx context.Context, ids []int64) ([]models.UserRef, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role,
       COALESCE(profile_image_url,''), COALESCE(telegram_chat_id,0), created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, profile_image_url, telegram_chat_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,0),NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		user.Name, user.Email, user.PasswordHash, user.Role, user.ProfileImageURL, user.TelegramChatID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func scanUser(scan func(dest ...interface{}) error) (*models.User, error) {
	u := &models.User{}
	err := scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.ProfileImageURL, &u.TelegramChatID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users
		SET name=$1, email=$2, password_hash=$3, role=$4,
		    profile_image_url=NULLIF($5,''), telegram_chat_id=NULLIF($6,0), updated_at=NOW()
		WHERE id=$7`
	_, err := r.db.ExecContext(ctx, q,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.ProfileImageURL, user.TelegramChatID, user.ID,
	)
	return err
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *userRepository) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, role)
}

func (r *userRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetRefs(ctx context.Context, ids []int64) ([]models.UserRef, error) {
	if len(ids) == 0 {
		return []models.UserRef{}, nil
	}
	const q = `
		SELECT id, name, email, COALESCE(profile_image_url,'')
		FROM users
		WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[int64]models.UserRef{}
	for rows.Next() {
		var ref models.UserRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email, &ref.ProfileImageURL); err != nil {
			return nil, err
		}
		byID[ref.ID] = ref
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// keep the caller's ordering; unknown ids are dropped
	out := make([]models.UserRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := byID[id]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}
