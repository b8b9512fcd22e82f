package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ceidigital/backoffice/internal/domain"
)

// UserRepo provides typed Postgres operations for the users table and the
// user/role/permission joins.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, password_hash, active, company_id, created_at, updated_at`

// GetByEmail looks up a user by normalized email with roles and their
// permissions eagerly loaded.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	norm := strings.ToLower(strings.TrimSpace(email))
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, norm)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", norm, domain.ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range users {
		if err := r.loadRoles(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Create inserts the user and assigns the named roles. Unknown role names
// are skipped silently.
func (r *UserRepo) Create(ctx context.Context, u *domain.User, roleNames []string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, active, company_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Active, u.CompanyID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", u.Email, domain.ErrConflict)
		}
		return err
	}
	for _, name := range roleNames {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id)
			 SELECT $1, id FROM roles WHERE name = $2
			 ON CONFLICT DO NOTHING`, u.ID, name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update applies the non-nil fields and, when roleNames is non-nil,
// replaces the user's role assignments.
func (r *UserRepo) Update(ctx context.Context, id int64, name *string, active *bool, roleNames []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx,
		`UPDATE users SET
			name   = COALESCE($2, name),
			active = COALESCE($3, active),
			updated_at = now()
		 WHERE id = $1`, id, name, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if roleNames != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
			return err
		}
		for _, rn := range roleNames {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_roles (user_id, role_id)
				 SELECT $1, id FROM roles WHERE name = $2
				 ON CONFLICT DO NOTHING`, id, rn); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

// AssignRole adds a role by name to a user, keeping existing assignments.
func (r *UserRepo) AssignRole(ctx context.Context, userID int64, roleName string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2
		 ON CONFLICT DO NOTHING`, userID, roleName)
	return err
}

// SetCompany links the user to a company.
func (r *UserRepo) SetCompany(ctx context.Context, userID, companyID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET company_id = $2, updated_at = now() WHERE id = $1`, userID, companyID)
	return err
}

func (r *UserRepo) loadRoles(ctx context.Context, u *domain.User) error {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.name, r.description,
		        p.id, p.name, p.description, p.route
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 LEFT JOIN role_permissions rp ON rp.role_id = r.id
		 LEFT JOIN permissions p ON p.id = rp.permission_id
		 WHERE ur.user_id = $1
		 ORDER BY r.id, p.id`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	u.Roles = nil
	var cur *domain.Role
	for rows.Next() {
		var (
			role     domain.Role
			permID   *int64
			permName, permDesc, permRoute *string
		)
		if err := rows.Scan(&role.ID, &role.Name, &role.Description,
			&permID, &permName, &permDesc, &permRoute); err != nil {
			return err
		}
		if cur == nil || cur.ID != role.ID {
			u.Roles = append(u.Roles, role)
			cur = &u.Roles[len(u.Roles)-1]
		}
		if permID != nil {
			cur.Permissions = append(cur.Permissions, domain.Permission{
				ID:          *permID,
				Name:        deref(permName),
				Description: deref(permDesc),
				Route:       deref(permRoute),
			})
		}
	}
	return rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active,
		&u.CompanyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
