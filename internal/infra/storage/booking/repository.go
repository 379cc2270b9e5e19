package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVC-BookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"booking_reference",
	"owner_nic",
	"station_id",
	"charging_point_number",
	"booking_date",
	"time_slot",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"qr_code_data",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование и генерирует уникальный booking reference.
// Эксклюзивность слота гарантируется частичным уникальным индексом
// (station_id, charging_point_number, booking_date, time_slot) WHERE status <> 'Cancelled':
// при конкурентной вставке в ту же ячейку вторая вставка получает ErrSlotTaken.
// Если в контексте передана активная транзакция (через context.Value), использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.BookingReference = generateReference(time.Now().UTC())

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_reference",
			"owner_nic",
			"station_id",
			"charging_point_number",
			"booking_date",
			"time_slot",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
		).
		Values(
			booking.BookingReference,
			booking.OwnerNIC,
			booking.StationID,
			booking.ChargingPointNumber,
			booking.BookingDate,
			booking.TimeSlot,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetBySlot получает бронирование, занимающее указанную ячейку слота
// Учитываются только активные бронирования (status <> 'Cancelled')
func (r *Repository) GetBySlot(ctx context.Context, stationID int64, pointNumber int, date time.Time, timeSlot int) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"station_id":            stationID,
			"charging_point_number": pointNumber,
			"booking_date":          domain.NormalizeDate(date),
			"time_slot":             timeSlot,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	// Внутри транзакции блокируем строку - ячейка проверяется перед вставкой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetBySlot")
}

// GetByOwnerNIC получает список бронирований владельца
// Опционально фильтрует по статусу
func (r *Repository) GetByOwnerNIC(ctx context.Context, nic string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_nic": nic}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.queryBookings(ctx, selectBuilder, "GetByOwnerNIC")
}

// GetUpcomingByOwnerNIC получает предстоящие бронирования владельца
// (Pending или Approved, время начала не раньше now)
func (r *Repository) GetUpcomingByOwnerNIC(ctx context.Context, nic string, now time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_nic": nic}).
		Where(squirrel.GtOrEq{"start_time": now}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusApproved)}}).
		OrderBy("start_time ASC")

	return r.queryBookings(ctx, selectBuilder, "GetUpcomingByOwnerNIC")
}

// GetHistoryByOwnerNIC получает историю бронирований владельца
// (прошедшие по времени либо в терминальном статусе)
func (r *Repository) GetHistoryByOwnerNIC(ctx context.Context, nic string, now time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_nic": nic}).
		Where(squirrel.Or{
			squirrel.Lt{"start_time": now},
			squirrel.Eq{"status": []string{string(domain.StatusCompleted), string(domain.StatusCancelled)}},
		}).
		OrderBy("start_time DESC")

	return r.queryBookings(ctx, selectBuilder, "GetHistoryByOwnerNIC")
}

// CountByOwnerAndStatus подсчитывает бронирования владельца в указанном статусе
func (r *Repository) CountByOwnerAndStatus(ctx context.Context, nic string, status domain.BookingStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"owner_nic": nic, "status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByOwnerAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByOwnerAndStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByStationWithFilter получает бронирования станции с фильтрацией
// по дате, статусу и активности
func (r *Repository) GetByStationWithFilter(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"station_id": filter.StationID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": domain.NormalizeDate(*filter.Date)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	// Для конкретной даты сортируем по ячейкам сетки, иначе - сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("charging_point_number ASC, time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, time_slot DESC")
	}

	return r.queryBookings(ctx, selectBuilder, "GetByStationWithFilter")
}

// HasActiveByStation проверяет, есть ли у станции активные бронирования
// (Pending или Approved). Используется перед деактивацией станции.
func (r *Repository) HasActiveByStation(ctx context.Context, stationID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"station_id": stationID,
			"status":     []string{string(domain.StatusPending), string(domain.StatusApproved)},
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByStation - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByStation - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update обновляет изменяемые поля бронирования (не статус)
// и пересчитанные временные поля
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("station_id", booking.StationID).
		Set("charging_point_number", booking.ChargingPointNumber).
		Set("booking_date", booking.BookingDate).
		Set("time_slot", booking.TimeSlot).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("duration_minutes", booking.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "Update")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "UpdateStatus")
}

// Cancel выполняет мягкую отмену бронирования с указанием причины
// Запись сохраняется для истории, слот освобождается (status = 'Cancelled')
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "Cancel")
}

// SetQRCode сохраняет выпущенный QR токен бронирования
func (r *Repository) SetQRCode(ctx context.Context, id int64, qrData string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("qr_code_data", qrData).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetQRCode - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetQRCode - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "SetQRCode")
}

// generateReference генерирует человекочитаемый reference бронирования
// Формат: EVB<yyyyMMddHHmmss><8 символов uuid> - уникален для каждого создания
func generateReference(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%s%s", domain.BookingReferencePrefix, now.Format("20060102150405"), suffix)
}

func (r *Repository) checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *Repository) queryBookings(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingReference,
		&booking.OwnerNIC,
		&booking.StationID,
		&booking.ChargingPointNumber,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.QRCodeData,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows, "scanBookings")
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
