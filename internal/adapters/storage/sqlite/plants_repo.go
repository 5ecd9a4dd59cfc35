package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/wickenico/plantos/internal/domain/plants"
)

// Convenciones de almacenamiento:
// - fechas calendario (last_watered/last_repotted): TEXT "YYYY-MM-DD"
// - timestamps (created_at/updated_at): INTEGER unix nanos, UTC al leer
// - reference_links: JSON en TEXT
// Todo explícito para no depender del mapeo de time.Time del driver.

var _ plants.Repository = (*PlantsRepo)(nil)

type PlantsRepo struct {
	db *sql.DB
}

func NewPlantsRepo(db *sql.DB) *PlantsRepo {
	return &PlantsRepo{db: db}
}

const plantColumns = `
	id, owner_user_id,
	name, category, nickname, species, pot_size, location,
	sunlight, humidity_needs, soil_type, fertilizer_type, origin,
	height, water_cycle, last_watered, last_repotted,
	reference_links, notes, description, image_url,
	is_favorite, is_dead,
	created_at, updated_at`

func (r *PlantsRepo) Create(ctx context.Context, p plants.Plant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plants (`+plantColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, insertArgs(p)...)
	return err
}

func (r *PlantsRepo) Update(ctx context.Context, p plants.Plant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plants
		SET
			owner_user_id = ?,
			name = ?,
			category = ?,
			nickname = ?,
			species = ?,
			pot_size = ?,
			location = ?,
			sunlight = ?,
			humidity_needs = ?,
			soil_type = ?,
			fertilizer_type = ?,
			origin = ?,
			height = ?,
			water_cycle = ?,
			last_watered = ?,
			last_repotted = ?,
			reference_links = ?,
			notes = ?,
			description = ?,
			image_url = ?,
			is_favorite = ?,
			is_dead = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.OwnerUserID,
		p.Name,
		p.Category,
		p.Nickname,
		p.Species,
		p.PotSize,
		p.Location,
		p.Sunlight,
		p.HumidityNeeds,
		p.SoilType,
		p.FertilizerType,
		p.Origin,
		toNullFloat(p.Height),
		toNullInt(p.WaterCycle),
		dateToText(p.LastWatered),
		dateToText(p.LastRepotted),
		linksToJSON(p.ReferenceLinks),
		p.Notes,
		p.Description,
		p.ImageURL,
		p.IsFavorite,
		p.IsDead,
		p.UpdatedAt.UnixNano(),
		p.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return plants.ErrNotFound
	}
	return nil
}

func (r *PlantsRepo) GetByID(ctx context.Context, id string) (plants.Plant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return plants.Plant{}, plants.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE id = ?
	`, id)

	p, err := scanPlant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return plants.Plant{}, plants.ErrNotFound
		}
		return plants.Plant{}, err
	}
	return p, nil
}

func (r *PlantsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]plants.Plant, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE owner_user_id = ?
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]plants.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PlantsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return plants.ErrNotFound
	}
	return nil
}

func insertArgs(p plants.Plant) []any {
	return []any{
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Category,
		p.Nickname,
		p.Species,
		p.PotSize,
		p.Location,
		p.Sunlight,
		p.HumidityNeeds,
		p.SoilType,
		p.FertilizerType,
		p.Origin,
		toNullFloat(p.Height),
		toNullInt(p.WaterCycle),
		dateToText(p.LastWatered),
		dateToText(p.LastRepotted),
		linksToJSON(p.ReferenceLinks),
		p.Notes,
		p.Description,
		p.ImageURL,
		p.IsFavorite,
		p.IsDead,
		p.CreatedAt.UnixNano(),
		p.UpdatedAt.UnixNano(),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(s scanner) (plants.Plant, error) {
	var (
		p         plants.Plant
		h         sql.NullFloat64
		wc        sql.NullInt64
		lw        sql.NullString
		lr        sql.NullString
		links     sql.NullString
		createdAt int64
		updatedAt int64
	)

	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Category,
		&p.Nickname,
		&p.Species,
		&p.PotSize,
		&p.Location,
		&p.Sunlight,
		&p.HumidityNeeds,
		&p.SoilType,
		&p.FertilizerType,
		&p.Origin,
		&h,
		&wc,
		&lw,
		&lr,
		&links,
		&p.Notes,
		&p.Description,
		&p.ImageURL,
		&p.IsFavorite,
		&p.IsDead,
		&createdAt,
		&updatedAt,
	); err != nil {
		return plants.Plant{}, err
	}

	if h.Valid {
		v := h.Float64
		p.Height = &v
	}
	if wc.Valid {
		v := int(wc.Int64)
		p.WaterCycle = &v
	}
	p.LastWatered = dateFromText(lw)
	p.LastRepotted = dateFromText(lr)
	p.ReferenceLinks = linksFromJSON(links)
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	p.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return p, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func dateToText(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
}

func dateFromText(s sql.NullString) *time.Time {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return nil
	}
	return &t
}

func linksToJSON(links []string) sql.NullString {
	if len(links) == 0 {
		return sql.NullString{}
	}
	b, _ := json.Marshal(links)
	return sql.NullString{String: string(b), Valid: true}
}

func linksFromJSON(s sql.NullString) []string {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil
	}
	return out
}
