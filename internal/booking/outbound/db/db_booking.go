package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

func (s *DB) CreateBooking(ctx context.Context, b entity.Booking) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBooking")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.UserID, b.FullName, b.Email, b.Phone, b.Address, b.AreaSize,
		string(b.ServiceType), string(b.FlooringType), b.PreferredDate, string(b.PreferredTime),
		b.Notes, string(b.Status), b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	return err
}

func (s *DB) GetBookingByID(ctx context.Context, id int64) (_ *entity.Booking, err error) {
	ctx, span := s.startSpan(ctx, "GetBookingByID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	b, err := pgx.CollectExactlyOneRow(rows, scanBooking)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &b, nil
}

func (s *DB) ListBookingsByUser(ctx context.Context, userID int64) (_ []entity.Booking, err error) {
	ctx, span := s.startSpan(ctx, "ListBookingsByUser")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanBooking)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *DB) ListBookings(ctx context.Context, f entity.ListFilter) (_ []entity.Booking, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListBookings")
	defer func() { s.endSpan(span, err) }()

	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		p := "$" + strconv.Itoa(len(args))
		where = append(where, "(phone ILIKE "+p+" OR email ILIKE "+p+" OR full_name ILIKE "+p+")")
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := s.conn.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`+cond+
		` ORDER BY created_at DESC, id DESC LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}

	items, err := pgx.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *DB) UpdateBookingStatus(ctx context.Context, id int64, status entity.Status) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateBookingStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) DeleteBooking(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteBooking")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}
