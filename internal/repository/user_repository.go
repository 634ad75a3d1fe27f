package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/mindful/internal/model"
)

const userColumns = "id,name,email,password_hash,age,gender,bio,join_date,profile_complete"

// UserRepo is the credential store.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail lower-cases and trims an address so lookups and the UNIQUE
// index agree on what "the same email" means.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a user with an already-hashed password.  There is no
// existence pre-check: a duplicate email is detected from the UNIQUE index
// violation and reported as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (model.User, error) {
	u := model.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		JoinDate:     time.Now().UTC().Truncate(time.Second),
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, join_date) VALUES (?,?,?,?)",
		u.Name, u.Email, u.PasswordHash, u.JoinDate)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("insert user id: %w", err)
	}
	u.ID = uint64(id)
	return u, nil
}

// FindByEmail fetches a user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", NormalizeEmail(email))
	return scanUser(row)
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// UpdateProfile rewrites the editable profile fields and marks the profile
// complete.  The password hash and email are never touched here.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p model.ProfileUpdate) (model.User, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, age=?, gender=?, bio=?, profile_complete=TRUE WHERE id=?",
		strings.TrimSpace(p.Name), p.Age, p.Gender, p.Bio, id)
	if err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	// MySQL reports 0 affected rows for a no-op update, so existence is
	// decided by the read-back instead.
	return r.FindByID(ctx, id)
}

// ListMembers returns every other user who has completed a profile.
func (r *UserRepo) ListMembers(ctx context.Context, excludeID uint64) ([]model.Member, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,age,gender,bio,join_date FROM users WHERE id<>? AND profile_complete=TRUE ORDER BY join_date DESC",
		excludeID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	out := []model.Member{}
	for rows.Next() {
		var (
			m      model.Member
			age    sql.NullInt64
			gender sql.NullString
			bio    sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Name, &age, &gender, &bio, &m.JoinDate); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Age, m.Gender, m.Bio = intPtr(age), strPtr(gender), strPtr(bio)
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		age    sql.NullInt64
		gender sql.NullString
		bio    sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &age, &gender, &bio, &u.JoinDate, &u.ProfileComplete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.Age, u.Gender, u.Bio = intPtr(age), strPtr(gender), strPtr(bio)
	return u, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
