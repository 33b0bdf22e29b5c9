package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"logishare/models"
)

// Postgres is the durable Storage backed by a pgx pool. Decimal columns are
// read back with ::text so amounts round-trip as the strings the UI expects.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Storage = (*Postgres)(nil)

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const driverCols = `id, name, email, phone, rating::text, total_deliveries, completion_rate::text, is_online, created_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Rating,
		&d.TotalDeliveries, &d.CompletionRate, &d.IsOnline, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (p *Postgres) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	d, err := scanDriver(p.pool.QueryRow(ctx,
		`SELECT `+driverCols+` FROM drivers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (p *Postgres) GetDriverByEmail(ctx context.Context, email string) (*models.Driver, error) {
	d, err := scanDriver(p.pool.QueryRow(ctx,
		`SELECT `+driverCols+` FROM drivers WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (p *Postgres) CreateDriver(ctx context.Context, in models.NewDriver) (*models.Driver, error) {
	d, err := scanDriver(p.pool.QueryRow(ctx, `
		INSERT INTO drivers (id, name, email, phone, rating, total_deliveries, completion_rate, is_online, created_at)
		VALUES ($1, $2, $3, $4,
		        COALESCE($5::numeric, 0.00),
		        COALESCE($6::int, 0),
		        COALESCE($7::numeric, 0.00),
		        COALESCE($8::boolean, false),
		        now())
		RETURNING `+driverCols,
		uuid.NewString(), in.Name, in.Email, in.Phone,
		in.Rating, in.TotalDeliveries, in.CompletionRate, in.IsOnline,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("driver email %q: %w", in.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return d, nil
}

func (p *Postgres) UpdateDriver(ctx context.Context, id string, upd models.DriverUpdate) (*models.Driver, error) {
	d, err := scanDriver(p.pool.QueryRow(ctx, `
		UPDATE drivers SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			rating = COALESCE($5::numeric, rating),
			total_deliveries = COALESCE($6::int, total_deliveries),
			completion_rate = COALESCE($7::numeric, completion_rate),
			is_online = COALESCE($8::boolean, is_online)
		WHERE id = $1
		RETURNING `+driverCols,
		id, upd.Name, upd.Email, upd.Phone,
		upd.Rating, upd.TotalDeliveries, upd.CompletionRate, upd.IsOnline,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("driver %s: %w", id, ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("driver %s: %w", id, ErrDuplicate)
		}
		return nil, fmt.Errorf("update driver: %w", err)
	}
	return d, nil
}

func (p *Postgres) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	driver, err := p.GetDriver(ctx, driverID)
	if err != nil || driver == nil {
		return nil, err
	}
	vehicle, err := p.GetVehicleByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	license, err := p.GetLicenseByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return &models.DriverProfile{Driver: *driver, Vehicle: vehicle, License: license}, nil
}

const vehicleCols = `id, driver_id, license_plate, model, capacity, insurance_expiry`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.DriverID, &v.LicensePlate, &v.Model, &v.Capacity, &v.InsuranceExpiry)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (p *Postgres) GetVehicleByDriverID(ctx context.Context, driverID string) (*models.Vehicle, error) {
	v, err := scanVehicle(p.pool.QueryRow(ctx,
		`SELECT `+vehicleCols+` FROM vehicles WHERE driver_id = $1 LIMIT 1`, driverID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

func (p *Postgres) CreateVehicle(ctx context.Context, in models.NewVehicle) (*models.Vehicle, error) {
	v, err := scanVehicle(p.pool.QueryRow(ctx, `
		INSERT INTO vehicles (id, driver_id, license_plate, model, capacity, insurance_expiry)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+vehicleCols,
		uuid.NewString(), in.DriverID, in.LicensePlate, in.Model, in.Capacity, in.InsuranceExpiry,
	))
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return v, nil
}

func (p *Postgres) UpdateVehicle(ctx context.Context, id string, upd models.VehicleUpdate) (*models.Vehicle, error) {
	v, err := scanVehicle(p.pool.QueryRow(ctx, `
		UPDATE vehicles SET
			driver_id = COALESCE($2, driver_id),
			license_plate = COALESCE($3, license_plate),
			model = COALESCE($4, model),
			capacity = COALESCE($5, capacity),
			insurance_expiry = COALESCE($6, insurance_expiry)
		WHERE id = $1
		RETURNING `+vehicleCols,
		id, upd.DriverID, upd.LicensePlate, upd.Model, upd.Capacity, upd.InsuranceExpiry,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return v, nil
}

const licenseCols = `id, driver_id, license_type, license_number, issue_date, renewal_date`

func scanLicense(row pgx.Row) (*models.License, error) {
	var l models.License
	err := row.Scan(&l.ID, &l.DriverID, &l.LicenseType, &l.LicenseNumber, &l.IssueDate, &l.RenewalDate)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *Postgres) GetLicenseByDriverID(ctx context.Context, driverID string) (*models.License, error) {
	l, err := scanLicense(p.pool.QueryRow(ctx,
		`SELECT `+licenseCols+` FROM licenses WHERE driver_id = $1 LIMIT 1`, driverID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (p *Postgres) CreateLicense(ctx context.Context, in models.NewLicense) (*models.License, error) {
	l, err := scanLicense(p.pool.QueryRow(ctx, `
		INSERT INTO licenses (id, driver_id, license_type, license_number, issue_date, renewal_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+licenseCols,
		uuid.NewString(), in.DriverID, in.LicenseType, in.LicenseNumber, in.IssueDate, in.RenewalDate,
	))
	if err != nil {
		return nil, fmt.Errorf("create license: %w", err)
	}
	return l, nil
}

func (p *Postgres) UpdateLicense(ctx context.Context, id string, upd models.LicenseUpdate) (*models.License, error) {
	l, err := scanLicense(p.pool.QueryRow(ctx, `
		UPDATE licenses SET
			driver_id = COALESCE($2, driver_id),
			license_type = COALESCE($3, license_type),
			license_number = COALESCE($4, license_number),
			issue_date = COALESCE($5, issue_date),
			renewal_date = COALESCE($6, renewal_date)
		WHERE id = $1
		RETURNING `+licenseCols,
		id, upd.DriverID, upd.LicenseType, upd.LicenseNumber, upd.IssueDate, upd.RenewalDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("license %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update license: %w", err)
	}
	return l, nil
}

const orderCols = `id, order_number, driver_id, pickup_location, delivery_location, status,
	estimated_time, distance::text, fee::text, photo_url, created_at, completed_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.DriverID, &o.PickupLocation, &o.DeliveryLocation,
		&o.Status, &o.EstimatedTime, &o.Distance, &o.Fee, &o.PhotoURL, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (p *Postgres) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(p.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (p *Postgres) GetPendingOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderCols+` FROM orders WHERE status = $1`, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// GetOrdersByDriverID loads the driver's orders and attaches the first
// earning found per order id. The two reads are independent, not a snapshot.
func (p *Postgres) GetOrdersByDriverID(ctx context.Context, driverID string) ([]models.OrderWithEarnings, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderCols+` FROM orders WHERE driver_id = $1`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []models.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	earnRows, err := p.pool.Query(ctx,
		`SELECT `+earningCols+` FROM earnings WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer earnRows.Close()
	byOrder := make(map[string]models.Earning)
	for earnRows.Next() {
		e, err := scanEarning(earnRows)
		if err != nil {
			return nil, err
		}
		if _, ok := byOrder[e.OrderID]; !ok {
			byOrder[e.OrderID] = *e
		}
	}
	if err := earnRows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.OrderWithEarnings, 0, len(orders))
	for _, o := range orders {
		owe := models.OrderWithEarnings{Order: o}
		if e, ok := byOrder[o.ID]; ok {
			earning := e
			owe.Earnings = &earning
		}
		out = append(out, owe)
	}
	return out, nil
}

func (p *Postgres) CreateOrder(ctx context.Context, in models.NewOrder) (*models.Order, error) {
	status := models.OrderStatusPending
	if in.Status != nil {
		status = *in.Status
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}
	o, err := scanOrder(p.pool.QueryRow(ctx, `
		INSERT INTO orders (id, order_number, driver_id, pickup_location, delivery_location,
		                    status, estimated_time, distance, fee, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::int, $8::numeric, $9::numeric, $10, now())
		RETURNING `+orderCols,
		uuid.NewString(), in.OrderNumber, in.DriverID, in.PickupLocation, in.DeliveryLocation,
		status, in.EstimatedTime, in.Distance, in.Fee, in.PhotoURL,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("order number %q: %w", in.OrderNumber, ErrDuplicate)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// UpdateOrder merges supplied fields. The CASE on status stamps completed_at
// with now() whenever the update sets "delivered"; any completed_at sent by
// the caller is ignored, and other statuses leave the column untouched.
func (p *Postgres) UpdateOrder(ctx context.Context, id string, upd models.OrderUpdate) (*models.Order, error) {
	if upd.Status != nil && !models.ValidOrderStatus(*upd.Status) {
		return nil, fmt.Errorf("status %q: %w", *upd.Status, ErrInvalidStatus)
	}
	o, err := scanOrder(p.pool.QueryRow(ctx, `
		UPDATE orders SET
			order_number = COALESCE($2, order_number),
			driver_id = COALESCE($3, driver_id),
			pickup_location = COALESCE($4, pickup_location),
			delivery_location = COALESCE($5, delivery_location),
			status = COALESCE($6, status),
			estimated_time = COALESCE($7::int, estimated_time),
			distance = COALESCE($8::numeric, distance),
			fee = COALESCE($9::numeric, fee),
			photo_url = COALESCE($10, photo_url),
			completed_at = CASE WHEN $6::text = $11 THEN now() ELSE completed_at END
		WHERE id = $1
		RETURNING `+orderCols,
		id, upd.OrderNumber, upd.DriverID, upd.PickupLocation, upd.DeliveryLocation,
		upd.Status, upd.EstimatedTime, upd.Distance, upd.Fee, upd.PhotoURL,
		models.OrderStatusDelivered,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("order %s: %w", id, ErrDuplicate)
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// AcceptOrder assigns the driver and sets status "accepted" in one
// conditional UPDATE. The WHERE driver_id IS NULL guard makes the operation
// atomic in PostgreSQL: when two drivers race, the second sees zero rows.
func (p *Postgres) AcceptOrder(ctx context.Context, orderID, driverID string) (*models.Order, error) {
	o, err := scanOrder(p.pool.QueryRow(ctx, `
		UPDATE orders SET driver_id = $2, status = $3
		WHERE id = $1 AND driver_id IS NULL
		RETURNING `+orderCols,
		orderID, driverID, models.OrderStatusAccepted,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		checkErr := p.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
		if checkErr == nil && exists {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderTaken)
		}
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("accept order: %w", err)
	}
	return o, nil
}

const earningCols = `id, driver_id, order_id, amount::text, date`

func scanEarning(row pgx.Row) (*models.Earning, error) {
	var e models.Earning
	err := row.Scan(&e.ID, &e.DriverID, &e.OrderID, &e.Amount, &e.Date)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *Postgres) queryEarnings(ctx context.Context, query string, args ...any) ([]models.Earning, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Earning
	for rows.Next() {
		e, err := scanEarning(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (p *Postgres) GetEarningsByDriverID(ctx context.Context, driverID string) ([]models.Earning, error) {
	return p.queryEarnings(ctx,
		`SELECT `+earningCols+` FROM earnings WHERE driver_id = $1`, driverID)
}

func (p *Postgres) CreateEarning(ctx context.Context, in models.NewEarning) (*models.Earning, error) {
	e, err := scanEarning(p.pool.QueryRow(ctx, `
		INSERT INTO earnings (id, driver_id, order_id, amount, date)
		VALUES ($1, $2, $3, $4::numeric, COALESCE($5::timestamptz, now()))
		RETURNING `+earningCols,
		uuid.NewString(), in.DriverID, in.OrderID, in.Amount, in.Date,
	))
	if err != nil {
		return nil, fmt.Errorf("create earning: %w", err)
	}
	return e, nil
}

// GetDailyEarnings matches the half-open window [midnight, midnight+24h) in
// the day's own timezone, same as the in-memory store.
func (p *Postgres) GetDailyEarnings(ctx context.Context, driverID string, day time.Time) ([]models.Earning, error) {
	start := DayStart(day)
	end := start.AddDate(0, 0, 1)
	return p.queryEarnings(ctx, `
		SELECT `+earningCols+` FROM earnings
		WHERE driver_id = $1 AND date >= $2 AND date < $3`,
		driverID, start, end)
}

func (p *Postgres) GetWeeklyEarnings(ctx context.Context, driverID string) ([]models.Earning, error) {
	return p.queryEarnings(ctx, `
		SELECT `+earningCols+` FROM earnings
		WHERE driver_id = $1 AND date >= now() - interval '7 days'`,
		driverID)
}
