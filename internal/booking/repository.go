package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts a WAITING booking. The overlap check against approved
	// bookings is re-run inside the same serializable transaction as the
	// insert, so two concurrent requests cannot both claim the slot.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// HasApprovedOverlap checks whether any APPROVED booking of the item
	// overlaps [start, end). WAITING and REJECTED bookings never block.
	HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error)

	// SetStatus performs the WAITING -> APPROVED/REJECTED transition as a
	// compare-and-set: the update only applies while the row is WAITING.
	SetStatus(ctx context.Context, id string, status Status) error

	FindLastApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	FindNextApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	FindApprovedByBookerAndItem(ctx context.Context, bookerID, itemID string) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := overlapExistsQuery(b.ItemID, b.Start, b.End)
	if err != nil {
		return err
	}

	var conflict bool
	if err := tx.QueryRow(ctx, sql, args...).Scan(&conflict); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if conflict {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert, insertArgs, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insert, insertArgs...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		// A serialization failure means a concurrent request won the slot.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure {
			return ErrTimeConflict
		}
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(scanTargets(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")

	if filter.BookerID != "" {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Temporal bounds per the listing state. StartBefore is inclusive so
	// that CURRENT captures start <= now < end.
	if filter.StartBefore != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": *filter.StartBefore})
	}
	if filter.StartAfter != nil {
		query = query.Where(squirrel.Gt{"b.start_time": *filter.StartAfter})
	}
	if filter.EndBefore != nil {
		query = query.Where(squirrel.Lt{"b.end_time": *filter.EndBefore})
	}
	if filter.EndAfter != nil {
		query = query.Where(squirrel.Gt{"b.end_time": *filter.EndAfter})
	}

	query = query.OrderBy("b.start_time DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	sql, args, err := overlapExistsQuery(itemID, start, end)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": StatusWaiting}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set booking status failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// No row moved: either the booking is gone or it already left WAITING.
	existsSQL, existsArgs, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build booking exists query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+existsSQL+")", existsArgs...).Scan(&exists); err != nil {
		return fmt.Errorf("check booking exists failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrAlreadyProcessed
}

func (r *pgxRepository) FindLastApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.findOneApproved(ctx, itemID,
		squirrel.LtOrEq{"b.start_time": now}, "b.start_time DESC")
}

func (r *pgxRepository) FindNextApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.findOneApproved(ctx, itemID,
		squirrel.Gt{"b.start_time": now}, "b.start_time ASC")
}

func (r *pgxRepository) FindApprovedByBookerAndItem(ctx context.Context, bookerID, itemID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find approved bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) findOneApproved(ctx context.Context, itemID string, timeCond squirrel.Sqlizer, order string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		Where(timeCond).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find approved booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(scanTargets(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find approved booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, sql string, args []interface{}) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(scanTargets(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

// overlapExistsQuery builds the disjointness test against APPROVED bookings:
// [start, end) conflicts with b unless b.end <= start or b.start >= end.
func overlapExistsQuery(itemID string, start, end time.Time) (string, []interface{}, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build check overlap query failed: %w", err)
	}
	return "SELECT EXISTS (" + sub + ")", args, nil
}

func bookingColumns() []string {
	return []string{
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	}
}

func scanTargets(b *Booking) []interface{} {
	return []interface{}{
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	}
}
