package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

// PostgreSQL error codes the store translates.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// PostgresStore is the pgx-backed Store. Money crosses the wire as text and
// dates as DATE columns.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// mapError converts driver errors into the domain sentinels.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", utils.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s: %s", utils.ErrConflict, what, pgErr.ConstraintName)
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s overlaps an active booking", utils.ErrRoomUnavailable, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing record", utils.ErrNotFound, what)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", utils.ErrInvalidInput, what, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s: %s", utils.ErrInvalidInput, what, pgErr.Message)
		}
	}
	logger.ErrorLogger.Errorf("Database error on %s: %v", what, err)
	return fmt.Errorf("%s: %w", what, err)
}

func dateValue(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric %q from database: %w", s, err)
	}
	return d, nil
}

// where accumulates positional predicates.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// --- rooms ---

func (s *PostgresStore) CreateRoomType(ctx context.Context, rt *room_models.RoomType) error {
	logger.DebugLogger.Debugf("Inserting room type %s", rt.Name)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO room_types (id, name, description, base_price, capacity, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		rt.ID, rt.Name, rt.Description, rt.BasePrice.String(), rt.Capacity, rt.CreatedAt)
	return mapError(err, "room type "+rt.Name)
}

const roomTypeColumns = `id, name, description, base_price::text, capacity, created_at`

func scanRoomType(row pgx.Row) (*room_models.RoomType, error) {
	var rt room_models.RoomType
	var price string
	if err := row.Scan(&rt.ID, &rt.Name, &rt.Description, &price, &rt.Capacity, &rt.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if rt.BasePrice, err = parseMoney(price); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *PostgresStore) GetRoomType(ctx context.Context, id uuid.UUID) (*room_models.RoomType, error) {
	rt, err := scanRoomType(s.pool.QueryRow(ctx, `SELECT `+roomTypeColumns+` FROM room_types WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "room type "+id.String())
	}
	return rt, nil
}

func (s *PostgresStore) ListRoomTypes(ctx context.Context) ([]room_models.RoomType, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+roomTypeColumns+` FROM room_types ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "room types")
	}
	defer rows.Close()

	out := make([]room_models.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, mapError(err, "room types")
		}
		out = append(out, *rt)
	}
	return out, mapError(rows.Err(), "room types")
}

func (s *PostgresStore) CreateRoom(ctx context.Context, room *room_models.Room) error {
	logger.DebugLogger.Debugf("Inserting room %s", room.Number)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO rooms (id, number, room_type_id, created_at) VALUES ($1, $2, $3, $4)`,
		room.ID, room.Number, room.RoomTypeID, room.CreatedAt)
	return mapError(err, "room "+room.Number)
}

func (s *PostgresStore) GetRoom(ctx context.Context, id uuid.UUID) (*room_models.Room, error) {
	var room room_models.Room
	err := s.pool.QueryRow(ctx,
		`SELECT id, number, room_type_id, created_at FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.Number, &room.RoomTypeID, &room.CreatedAt)
	if err != nil {
		return nil, mapError(err, "room "+id.String())
	}
	return &room, nil
}

func (s *PostgresStore) ListRooms(ctx context.Context, filter room_models.RoomFilter) ([]room_models.Room, error) {
	var w where
	if filter.RoomTypeID != nil {
		w.add("room_type_id = ?", *filter.RoomTypeID)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, number, room_type_id, created_at FROM rooms`+w.String()+` ORDER BY number`, w.args...)
	if err != nil {
		return nil, mapError(err, "rooms")
	}
	defer rows.Close()

	out := make([]room_models.Room, 0)
	for rows.Next() {
		var room room_models.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.RoomTypeID, &room.CreatedAt); err != nil {
			return nil, mapError(err, "rooms")
		}
		out = append(out, room)
	}
	return out, mapError(rows.Err(), "rooms")
}

// --- guests ---

func (s *PostgresStore) UpsertGuest(ctx context.Context, g *guest_models.Guest) (*guest_models.Guest, error) {
	var out guest_models.Guest
	err := s.pool.QueryRow(ctx,
		`INSERT INTO guests (id, first_name, last_name, email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (email) DO UPDATE
		   SET first_name = EXCLUDED.first_name,
		       last_name = EXCLUDED.last_name,
		       phone = EXCLUDED.phone,
		       updated_at = EXCLUDED.updated_at
		 RETURNING id, first_name, last_name, email, phone, created_at, updated_at`,
		g.ID, g.FirstName, g.LastName, g.Email, g.Phone, g.CreatedAt, g.UpdatedAt,
	).Scan(&out.ID, &out.FirstName, &out.LastName, &out.Email, &out.Phone, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "guest "+g.Email)
	}
	return &out, nil
}

func (s *PostgresStore) GetGuest(ctx context.Context, id uuid.UUID) (*guest_models.Guest, error) {
	var g guest_models.Guest
	err := s.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone, created_at, updated_at FROM guests WHERE id = $1`, id,
	).Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "guest "+id.String())
	}
	return &g, nil
}

// --- bookings ---

const bookingColumns = `id, guest_id, room_id, check_in, check_out, status, adults, children,
	special_requests, total_amount::text, created_at, updated_at`

func scanBooking(row pgx.Row) (*booking_models.Booking, error) {
	var b booking_models.Booking
	var checkIn, checkOut time.Time
	var status, total string
	if err := row.Scan(&b.ID, &b.GuestID, &b.RoomID, &checkIn, &checkOut, &status, &b.Adults, &b.Children,
		&b.SpecialRequests, &total, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CheckIn = civil.DateOf(checkIn)
	b.CheckOut = civil.DateOf(checkOut)
	b.Status = booking_models.BookingStatus(status)
	var err error
	if b.TotalAmount, err = parseMoney(total); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStore) InsertBooking(ctx context.Context, b *booking_models.Booking) error {
	logger.DebugLogger.Debugf("Inserting booking %s for room %s", b.ID, b.RoomID)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bookings (id, guest_id, room_id, check_in, check_out, status, adults, children,
		                       special_requests, total_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12)`,
		b.ID, b.GuestID, b.RoomID, dateValue(b.CheckIn), dateValue(b.CheckOut), string(b.Status),
		b.Adults, b.Children, b.SpecialRequests, b.TotalAmount.String(), b.CreatedAt, b.UpdatedAt)
	return mapError(err, "booking "+b.ID.String())
}

func (s *PostgresStore) UpdateBooking(ctx context.Context, b *booking_models.Booking) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE bookings
		    SET room_id = $2, check_in = $3, check_out = $4, status = $5, adults = $6, children = $7,
		        special_requests = $8, total_amount = $9::numeric, updated_at = $10
		  WHERE id = $1`,
		b.ID, b.RoomID, dateValue(b.CheckIn), dateValue(b.CheckOut), string(b.Status), b.Adults, b.Children,
		b.SpecialRequests, b.TotalAmount.String(), b.UpdatedAt)
	if err != nil {
		return mapError(err, "booking "+b.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return notFound("booking", b.ID)
	}
	return nil
}

func (s *PostgresStore) GetBooking(ctx context.Context, id uuid.UUID) (*booking_models.Booking, error) {
	b, err := scanBooking(s.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "booking "+id.String())
	}
	return b, nil
}

func (s *PostgresStore) ListBookings(ctx context.Context, filter booking_models.BookingFilter) ([]booking_models.Booking, error) {
	var w where
	if filter.RoomID != nil {
		w.add("room_id = ?", *filter.RoomID)
	}
	if filter.GuestID != nil {
		w.add("guest_id = ?", *filter.GuestID)
	}
	if filter.ExcludeID != nil {
		w.add("id <> ?", *filter.ExcludeID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		w.add("status = ANY(?)", statuses)
	}
	if filter.CheckInFrom != nil {
		w.add("check_in >= ?", dateValue(*filter.CheckInFrom))
	}
	if filter.CheckInTo != nil {
		w.add("check_in <= ?", dateValue(*filter.CheckInTo))
	}
	if filter.Overlapping != nil {
		w.add("check_in < ? AND ? < check_out", dateValue(filter.Overlapping.End), dateValue(filter.Overlapping.Start))
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings`+w.String()+` ORDER BY check_in, created_at, id`, w.args...)
	if err != nil {
		return nil, mapError(err, "bookings")
	}
	defer rows.Close()

	out := make([]booking_models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, mapError(err, "bookings")
		}
		out = append(out, *b)
	}
	return out, mapError(rows.Err(), "bookings")
}

// --- payments ---

const paymentColumns = `id, booking_id, amount::text, method, status, transaction_id, created_at, updated_at`

func scanPayment(row pgx.Row) (*payment_models.Payment, error) {
	var p payment_models.Payment
	var amount, method, status string
	if err := row.Scan(&p.ID, &p.BookingID, &amount, &method, &status, &p.TransactionID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Method = payment_models.PaymentMethod(method)
	p.Status = payment_models.PaymentStatus(status)
	var err error
	if p.Amount, err = parseMoney(amount); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) InsertPayment(ctx context.Context, p *payment_models.Payment) error {
	logger.DebugLogger.Debugf("Inserting payment %s for booking %s", p.ID, p.BookingID)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO payments (id, booking_id, amount, method, status, transaction_id, created_at, updated_at)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)`,
		p.ID, p.BookingID, p.Amount.String(), string(p.Method), string(p.Status), p.TransactionID, p.CreatedAt, p.UpdatedAt)
	return mapError(err, "payment "+p.ID.String())
}

func (s *PostgresStore) UpdatePayment(ctx context.Context, p *payment_models.Payment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE payments SET status = $2, transaction_id = $3, updated_at = $4 WHERE id = $1`,
		p.ID, string(p.Status), p.TransactionID, p.UpdatedAt)
	if err != nil {
		return mapError(err, "payment "+p.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return notFound("payment", p.ID)
	}
	return nil
}

func (s *PostgresStore) GetPayment(ctx context.Context, id uuid.UUID) (*payment_models.Payment, error) {
	p, err := scanPayment(s.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "payment "+id.String())
	}
	return p, nil
}

func (s *PostgresStore) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]payment_models.Payment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1 ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, mapError(err, "payments")
	}
	defer rows.Close()

	out := make([]payment_models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, mapError(err, "payments")
		}
		out = append(out, *p)
	}
	return out, mapError(rows.Err(), "payments")
}

// --- housekeeping ---

const housekeepingColumns = `id, room_id, status, notes, assigned_to, created_at, updated_at`

func scanHousekeeping(row pgx.Row) (*housekeeping_models.HousekeepingTask, error) {
	var t housekeeping_models.HousekeepingTask
	var status string
	if err := row.Scan(&t.ID, &t.RoomID, &status, &t.Notes, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = housekeeping_models.HousekeepingStatus(status)
	return &t, nil
}

func (s *PostgresStore) InsertHousekeeping(ctx context.Context, t *housekeeping_models.HousekeepingTask) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO housekeeping_tasks (id, room_id, status, notes, assigned_to, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.RoomID, string(t.Status), t.Notes, t.AssignedTo, t.CreatedAt, t.UpdatedAt)
	return mapError(err, "housekeeping task "+t.ID.String())
}

func (s *PostgresStore) UpdateHousekeeping(ctx context.Context, t *housekeeping_models.HousekeepingTask) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE housekeeping_tasks SET status = $2, notes = $3, assigned_to = $4, updated_at = $5 WHERE id = $1`,
		t.ID, string(t.Status), t.Notes, t.AssignedTo, t.UpdatedAt)
	if err != nil {
		return mapError(err, "housekeeping task "+t.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return notFound("housekeeping task", t.ID)
	}
	return nil
}

func (s *PostgresStore) GetHousekeeping(ctx context.Context, id uuid.UUID) (*housekeeping_models.HousekeepingTask, error) {
	t, err := scanHousekeeping(s.pool.QueryRow(ctx, `SELECT `+housekeepingColumns+` FROM housekeeping_tasks WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "housekeeping task "+id.String())
	}
	return t, nil
}

func (s *PostgresStore) ListHousekeeping(ctx context.Context, filter housekeeping_models.HousekeepingFilter) ([]housekeeping_models.HousekeepingTask, error) {
	var w where
	if filter.RoomID != nil {
		w.add("room_id = ?", *filter.RoomID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.CreatedFrom != nil {
		w.add("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		w.add("created_at < ?", *filter.CreatedBefore)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+housekeepingColumns+` FROM housekeeping_tasks`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, mapError(err, "housekeeping tasks")
	}
	defer rows.Close()

	out := make([]housekeeping_models.HousekeepingTask, 0)
	for rows.Next() {
		t, err := scanHousekeeping(rows)
		if err != nil {
			return nil, mapError(err, "housekeeping tasks")
		}
		out = append(out, *t)
	}
	return out, mapError(rows.Err(), "housekeeping tasks")
}

// --- maintenance ---

const maintenanceColumns = `id, room_id, type, description, status, assigned_to, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*maintenance_models.MaintenanceTask, error) {
	var t maintenance_models.MaintenanceTask
	var taskType, status string
	if err := row.Scan(&t.ID, &t.RoomID, &taskType, &t.Description, &status, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Type = maintenance_models.MaintenanceType(taskType)
	t.Status = maintenance_models.MaintenanceStatus(status)
	return &t, nil
}

func (s *PostgresStore) InsertMaintenance(ctx context.Context, t *maintenance_models.MaintenanceTask) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO maintenance_tasks (id, room_id, type, description, status, assigned_to, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.RoomID, string(t.Type), t.Description, string(t.Status), t.AssignedTo, t.CreatedAt, t.UpdatedAt)
	return mapError(err, "maintenance task "+t.ID.String())
}

func (s *PostgresStore) UpdateMaintenance(ctx context.Context, t *maintenance_models.MaintenanceTask) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE maintenance_tasks SET status = $2, description = $3, assigned_to = $4, updated_at = $5 WHERE id = $1`,
		t.ID, string(t.Status), t.Description, t.AssignedTo, t.UpdatedAt)
	if err != nil {
		return mapError(err, "maintenance task "+t.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return notFound("maintenance task", t.ID)
	}
	return nil
}

func (s *PostgresStore) GetMaintenance(ctx context.Context, id uuid.UUID) (*maintenance_models.MaintenanceTask, error) {
	t, err := scanMaintenance(s.pool.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_tasks WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "maintenance task "+id.String())
	}
	return t, nil
}

func (s *PostgresStore) ListMaintenance(ctx context.Context, filter maintenance_models.MaintenanceFilter) ([]maintenance_models.MaintenanceTask, error) {
	var w where
	if filter.RoomID != nil {
		w.add("room_id = ?", *filter.RoomID)
	}
	if filter.Type != "" {
		w.add("type = ?", string(filter.Type))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		w.add("status = ANY(?)", statuses)
	}
	if filter.CreatedFrom != nil {
		w.add("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		w.add("created_at < ?", *filter.CreatedBefore)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_tasks`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, mapError(err, "maintenance tasks")
	}
	defer rows.Close()

	out := make([]maintenance_models.MaintenanceTask, 0)
	for rows.Next() {
		t, err := scanMaintenance(rows)
		if err != nil {
			return nil, mapError(err, "maintenance tasks")
		}
		out = append(out, *t)
	}
	return out, mapError(rows.Err(), "maintenance tasks")
}
