package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Mit0lenda/obra-nav-sub000/internal/config"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
	"github.com/Mit0lenda/obra-nav-sub000/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AddressRecord is one CSV row: logradouro,numero,bairro,cidade,uf,cep,lat,lon
type AddressRecord struct {
	Logradouro string
	Numero     string
	Bairro     string
	Cidade     string
	UF         string
	CEP        string
	Lat        float64
	Lon        float64
}

const columns = 8

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	records, err := parseCSV(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}

	log.Info().Int("records", len(records)).Msg("parsed")

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required for the import")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		log.Fatal().Err(err).Msg("cannot create table")
	}

	inserted, err := insertRecords(ctx, conn, records)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	if err := verifyImport(ctx, conn, inserted); err != nil {
		log.Fatal().Err(err).Msg("import verification failed")
	}

	log.Info().Int64("records", inserted).Msg("import finished")
}

func parseCSV(filePath string) ([]AddressRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRecords(file)
}

func readRecords(r io.Reader) ([]AddressRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []AddressRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string) (AddressRecord, error) {
	if len(row) < columns {
		return AddressRecord{}, fmt.Errorf("invalid record length: %d, expected at least %d columns", len(row), columns)
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	uf := strings.ToUpper(row[4])
	if !models.IsRegionCode(uf) {
		return AddressRecord{}, fmt.Errorf("invalid uf: %q", row[4])
	}

	cep := ""
	if row[5] != "" {
		digits, ok := models.NormalizeCEP(row[5])
		if !ok {
			return AddressRecord{}, fmt.Errorf("invalid cep: %q", row[5])
		}
		cep = digits
	}

	lat, err := strconv.ParseFloat(row[6], 64)
	if err != nil || lat < -90 || lat > 90 {
		return AddressRecord{}, fmt.Errorf("invalid latitude: %s", row[6])
	}

	lon, err := strconv.ParseFloat(row[7], 64)
	if err != nil || lon < -180 || lon > 180 {
		return AddressRecord{}, fmt.Errorf("invalid longitude: %s", row[7])
	}

	return AddressRecord{
		Logradouro: row[0],
		Numero:     row[1],
		Bairro:     row[2],
		Cidade:     row[3],
		UF:         uf,
		CEP:        cep,
		Lat:        lat,
		Lon:        lon,
	}, nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []AddressRecord) (int64, error) {
	// Use CopyFrom for bulk insert
	return conn.CopyFrom(
		ctx,
		pgx.Identifier{"enderecos"},
		[]string{"logradouro", "numero", "bairro", "cidade", "uf", "cep", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Lon, r.Lat) // PostGIS format: lon lat
			return []any{r.Logradouro, r.Numero, r.Bairro, r.Cidade, r.UF, r.CEP, geom}, nil
		}),
	)
}

func verifyImport(ctx context.Context, conn *pgx.Conn, inserted int64) error {
	var count int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM enderecos").Scan(&count); err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count < inserted {
		return fmt.Errorf("record count mismatch: inserted %d, table has %d", inserted, count)
	}

	var geom string
	if err := conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM enderecos ORDER BY id DESC LIMIT 1").Scan(&geom); err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	log.Info().Int64("total", count).Str("sample_geom", geom).Msg("import verified")
	return nil
}
