package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the imported address table with its text and spatial indexes.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS enderecos (
		id BIGSERIAL PRIMARY KEY,
		logradouro VARCHAR(255) NOT NULL DEFAULT '',
		numero VARCHAR(32) NOT NULL DEFAULT '',
		bairro VARCHAR(255) NOT NULL DEFAULT '',
		cidade VARCHAR(255) NOT NULL DEFAULT '',
		uf CHAR(2) NOT NULL DEFAULT '',
		cep CHAR(8) NOT NULL DEFAULT '',
		endereco_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('portuguese', logradouro || ' ' || bairro || ' ' || cidade || ' ' || uf)
		) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS enderecos_geom_idx ON enderecos USING GIST (geom);
	CREATE INDEX IF NOT EXISTS enderecos_tsvector_idx ON enderecos USING GIN (endereco_tsvector);
`

// Repository implements the address store on PostgreSQL/PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SearchAddressesByText performs a full-text search on the enderecos table
func (r *Repository) SearchAddressesByText(ctx context.Context, query string, limit int) ([]models.StoredAddress, error) {
	sql := `
		SELECT
			id,
			logradouro,
			numero,
			bairro,
			cidade,
			uf,
			cep,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM enderecos
		WHERE endereco_tsvector @@ plainto_tsquery('portuguese', $1)
		ORDER BY ts_rank(endereco_tsvector, plainto_tsquery('portuguese', $1)) DESC, id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	addresses := []models.StoredAddress{}
	for rows.Next() {
		var a models.StoredAddress
		if err := rows.Scan(
			&a.ID,
			&a.Logradouro,
			&a.Numero,
			&a.Bairro,
			&a.Cidade,
			&a.UF,
			&a.CEP,
			&a.Latitude,
			&a.Longitude,
		); err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

// FindNearestAddress returns the closest stored address within 10km, or nil when there is none.
func (r *Repository) FindNearestAddress(ctx context.Context, lat, lon float64) (*models.StoredAddress, error) {
	sql := `
		SELECT
			id,
			logradouro,
			numero,
			bairro,
			cidade,
			uf,
			cep,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM enderecos
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 10000)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	var a models.StoredAddress
	err := r.db.QueryRow(ctx, sql, lat, lon).Scan(
		&a.ID,
		&a.Logradouro,
		&a.Numero,
		&a.Bairro,
		&a.Cidade,
		&a.UF,
		&a.CEP,
		&a.Latitude,
		&a.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	return &a, nil
}
