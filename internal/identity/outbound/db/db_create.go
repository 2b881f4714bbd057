package db

import (
	"context"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO users (id, full_name, email, phone, password, role, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.FullName, user.Email, user.Phone, user.Password,
		string(user.Role.Ensure()), user.ProfileImage, user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	err = s.mapError(err)
	return err
}
