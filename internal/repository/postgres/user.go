package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type userRepository struct {
	q dbtx
}

func (r *userRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (first_name, last_name, date_of_birth, phone_number, address, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	p.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, p.FirstName, p.LastName, p.DateOfBirth, p.PhoneNumber, p.Address, p.CreatedAt).Scan(&p.ID)
	return mapError(err)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, role, sub_role, password_hash, has_password, code, profile_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := r.q.QueryRowContext(ctx, query, u.Email, u.Role, u.SubRole, u.PasswordHash, u.HasPassword, u.Code, u.ProfileID, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	return mapError(err)
}

const userColumns = `id, email, role, COALESCE(sub_role, ''), password_hash, has_password, code, profile_id, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Role, &u.SubRole, &u.PasswordHash, &u.HasPassword, &u.Code, &u.ProfileID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.q.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Role, &u.SubRole, &u.PasswordHash, &u.HasPassword, &u.Code, &u.ProfileID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int32, passwordHash string, hasPassword bool) error {
	query := `UPDATE users SET password_hash = $1, has_password = $2, updated_at = $3 WHERE id = $4`
	_, err := r.q.ExecContext(ctx, query, passwordHash, hasPassword, time.Now(), userID)
	return mapError(err)
}

func (r *userRepository) AddAcademyAdmin(ctx context.Context, userID, academyID int32) error {
	query := `INSERT INTO academy_admins (user_id, academy_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.ExecContext(ctx, query, userID, academyID, time.Now())
	return mapError(err)
}

func (r *userRepository) IsAcademyAdmin(ctx context.Context, userID, academyID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM academy_admins WHERE user_id = $1 AND academy_id = $2)`
	err := r.q.QueryRowContext(ctx, query, userID, academyID).Scan(&exists)
	return exists, mapError(err)
}

func (r *userRepository) AddBatchCoach(ctx context.Context, userID, batchID int32) error {
	query := `INSERT INTO batch_coaches (user_id, batch_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.ExecContext(ctx, query, userID, batchID, time.Now())
	return mapError(err)
}

func (r *userRepository) AddBatchStudent(ctx context.Context, userID, batchID int32) error {
	query := `INSERT INTO batch_students (user_id, batch_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.ExecContext(ctx, query, userID, batchID, time.Now())
	return mapError(err)
}

func (r *userRepository) ListByBatch(ctx context.Context, batchID int32, role domain.Role) ([]domain.User, error) {
	link := "batch_students"
	if role == domain.RoleCoach {
		link = "batch_coaches"
	}
	query := `SELECT u.id, u.email, u.role, COALESCE(u.sub_role, ''), u.password_hash, u.has_password, u.code, u.profile_id, u.created_at, u.updated_at
	          FROM users u JOIN ` + link + ` l ON l.user_id = u.id
	          WHERE l.batch_id = $1 ORDER BY u.id`
	rows, err := r.q.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.SubRole, &u.PasswordHash, &u.HasPassword, &u.Code, &u.ProfileID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) CountBatchStudents(ctx context.Context, batchID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM batch_students WHERE batch_id = $1`
	err := r.q.QueryRowContext(ctx, query, batchID).Scan(&count)
	return count, mapError(err)
}
