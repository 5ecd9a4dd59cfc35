package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/wickenico/plantos/internal/domain/plants"
)

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
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
	`,
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
		toNullDate(p.LastWatered),
		toNullDate(p.LastRepotted),
		linksToJSON(p.ReferenceLinks),
		p.Notes,
		p.Description,
		p.ImageURL,
		p.IsFavorite,
		p.IsDead,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PlantsRepo) Update(ctx context.Context, p plants.Plant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plants
		SET
			owner_user_id = $2,
			name = $3,
			category = $4,
			nickname = $5,
			species = $6,
			pot_size = $7,
			location = $8,
			sunlight = $9,
			humidity_needs = $10,
			soil_type = $11,
			fertilizer_type = $12,
			origin = $13,
			height = $14,
			water_cycle = $15,
			last_watered = $16,
			last_repotted = $17,
			reference_links = $18,
			notes = $19,
			description = $20,
			image_url = $21,
			is_favorite = $22,
			is_dead = $23,
			updated_at = $24
		WHERE id = $1
	`,
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
		toNullDate(p.LastWatered),
		toNullDate(p.LastRepotted),
		linksToJSON(p.ReferenceLinks),
		p.Notes,
		p.Description,
		p.ImageURL,
		p.IsFavorite,
		p.IsDead,
		p.UpdatedAt,
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
		WHERE id = $1
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
		WHERE owner_user_id = $1
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return plants.ErrNotFound
	}
	return nil
}

// scanner cubre *sql.Row y *sql.Rows para no duplicar el Scan de 25 columnas.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(s scanner) (plants.Plant, error) {
	var (
		p     plants.Plant
		h     sql.NullFloat64
		wc    sql.NullInt64
		lw    sql.NullTime
		lr    sql.NullTime
		links sql.NullString
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
		&p.CreatedAt,
		&p.UpdatedAt,
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
	if lw.Valid {
		t := lw.Time
		// last_watered es DATE; pgx lo mapea a time.Time midnight UTC
		p.LastWatered = &t
	}
	if lr.Valid {
		t := lr.Time
		p.LastRepotted = &t
	}
	p.ReferenceLinks = linksFromJSON(links)

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

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// reference_links va como JSON en una columna TEXT: es una lista chica,
// ordenada y nunca se consulta por elemento, así que no amerita tabla hija.
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
