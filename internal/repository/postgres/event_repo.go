package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"joiny/internal/domain"
)

var eventColumnNames = []string{
	"id", "name", "description", "date", "location_name", "latitude", "longitude", "place_id",
	"theme", "food_description", "host_name", "host_id", "fee", "invite_code", "max_members", "created_at",
}

// eventColumns returns the select list, optionally qualified with a table alias.
func eventColumns(alias string) string {
	if alias == "" {
		return strings.Join(eventColumnNames, ", ")
	}
	cols := make([]string, len(eventColumnNames))
	for i, c := range eventColumnNames {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var desc, locName, placeID, food sql.NullString
	var lat, lng sql.NullFloat64
	var hostID sql.NullInt64
	err := s.Scan(
		&e.ID, &e.Name, &desc, &e.Date, &locName, &lat, &lng, &placeID,
		&e.Theme, &food, &e.HostName, &hostID, &e.Fee, &e.InviteCode, &e.MaxMembers, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = nullString(desc)
	e.LocationName = nullString(locName)
	e.Latitude = nullFloat(lat)
	e.Longitude = nullFloat(lng)
	e.PlaceID = nullString(placeID)
	e.FoodDescription = nullString(food)
	e.HostID = nullInt64(hostID)
	return e, nil
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, date, location_name, latitude, longitude, place_id,
			theme, food_description, host_name, host_id, fee, invite_code, max_members)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Date, e.LocationName, e.Latitude, e.Longitude, e.PlaceID,
		e.Theme, e.FoodDescription, e.HostName, e.HostID, e.Fee, e.InviteCode, e.MaxMembers,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns("") + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns("") + ` FROM events WHERE invite_code = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(code))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns("") + ` FROM events ORDER BY date DESC, id DESC`
	args := []any{}
	if limit := page.Limit(); limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, page.Offset())
	}
	events, err := r.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListJoinedByUser(ctx context.Context, userID int64) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns("e") + `
		FROM events e
		JOIN participants p ON p.event_id = e.id
		WHERE p.user_id = $1
		ORDER BY e.date DESC, e.id DESC
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var nullableEventColumns = map[domain.EventField]string{
	domain.EventDescription:     "description",
	domain.EventLocationName:    "location_name",
	domain.EventLatitude:        "latitude",
	domain.EventLongitude:       "longitude",
	domain.EventPlaceID:         "place_id",
	domain.EventFoodDescription: "food_description",
}

func (r *eventRepository) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	setClauses := []string{}
	args := []any{}
	set := func(col string, v any) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.LocationName != nil {
		set("location_name", *patch.LocationName)
	}
	if patch.Latitude != nil {
		set("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		set("longitude", *patch.Longitude)
	}
	if patch.PlaceID != nil {
		set("place_id", *patch.PlaceID)
	}
	if patch.Theme != nil {
		set("theme", *patch.Theme)
	}
	if patch.FoodDescription != nil {
		set("food_description", *patch.FoodDescription)
	}
	if patch.HostName != nil {
		set("host_name", *patch.HostName)
	}
	if patch.Fee != nil {
		set("fee", *patch.Fee)
	}
	if patch.MaxMembers != nil {
		set("max_members", *patch.MaxMembers)
	}
	for _, field := range patch.Clear {
		col, ok := nullableEventColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s cannot be cleared", domain.ErrInvalidInput, field)
		}
		set(col, nil)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), eventColumns(""))
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
