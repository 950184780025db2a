package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// PostgresStore persists verdicts in a Postgres/Timescale table. The ts
// column is filled with the server's now() so client clock skew never leaks
// into the ordering key.
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, tableName: table}
}

func (p *PostgresStore) Name() string { return "postgres" }

func (p *PostgresStore) Append(ctx context.Context, v *domain.Verdict) (*domain.Verdict, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	features, err := json.Marshal(v.Features)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (ts, fault_label, location, confidence, description, source_file, features) VALUES (now(),$1,$2,$3,$4,$5,$6) RETURNING id, ts",
		p.tableName,
	)

	stored := v.Clone()
	err = p.db.QueryRowContext(ctx, query,
		v.FaultLabel,
		nullable(v.Location),
		v.Confidence,
		nullable(v.Description),
		v.SourceFile,
		features,
	).Scan(&stored.ID, &stored.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("append verdict: %w", err)
	}
	return stored, nil
}

func (p *PostgresStore) QueryDescending(ctx context.Context) ([]*domain.Verdict, error) {
	query := fmt.Sprintf(
		"SELECT id, ts, fault_label, location, confidence, description, source_file, features FROM %s ORDER BY ts DESC",
		p.tableName,
	)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	verdicts := make([]*domain.Verdict, 0, 64)
	for rows.Next() {
		var (
			v           domain.Verdict
			location    sql.NullString
			description sql.NullString
			features    []byte
		)
		if err := rows.Scan(&v.ID, &v.Timestamp, &v.FaultLabel, &location, &v.Confidence, &description, &v.SourceFile, &features); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Location = location.String
		v.Description = description.String
		if len(features) > 0 {
			if err := json.Unmarshal(features, &v.Features); err != nil {
				return nil, fmt.Errorf("unmarshal features of %s: %w", v.ID, err)
			}
		}
		verdicts = append(verdicts, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ ports.VerdictStore = (*PostgresStore)(nil)
