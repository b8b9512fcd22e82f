package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ceidigital/backoffice/internal/domain"
)

// RoleRepo provides typed Postgres operations for roles and permissions.
type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM roles WHERE name = $1`, name)
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("role %s: %w", name, domain.ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadPermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range roles {
		if err := r.loadPermissions(ctx, &roles[i]); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// EnsureRole creates the role when missing and returns it either way.
func (r *RoleRepo) EnsureRole(ctx context.Context, name, description string) (*domain.Role, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING`, name, description)
	if err != nil {
		return nil, err
	}
	return r.GetByName(ctx, name)
}

// EnsurePermission creates the permission when missing and returns its id.
func (r *RoleRepo) EnsurePermission(ctx context.Context, name, description, route string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (name, description, route) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name, description, route).Scan(&id)
	return id, err
}

// AttachPermission grants a permission to a role, both referenced by name.
func (r *RoleRepo) AttachPermission(ctx context.Context, roleName, permName string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id)
		 SELECT r.id, p.id FROM roles r, permissions p
		 WHERE r.name = $1 AND p.name = $2
		 ON CONFLICT DO NOTHING`, roleName, permName)
	return err
}

func (r *RoleRepo) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, route FROM permissions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Route); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *RoleRepo) loadPermissions(ctx context.Context, role *domain.Role) error {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.description, p.route
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id = $1
		 ORDER BY p.id`, role.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	role.Permissions = nil
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Route); err != nil {
			return err
		}
		role.Permissions = append(role.Permissions, p)
	}
	return rows.Err()
}
