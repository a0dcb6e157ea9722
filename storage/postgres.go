package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onsia-realty/auction-crawler/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// =============================================================================
// Auction cases
// =============================================================================

// UpsertCase writes the root row keyed on (court_code, case_no) and scans
// the canonical row id back into c.ID, so re-crawls keep the original id.
func (s *PostgresStore) UpsertCase(ctx context.Context, c *models.AuctionCase) error {
	query := `
		INSERT INTO auction_cases (
			id, court_code, case_no, court_name, case_type, status, department,
			creditor, debtor, claim_amount, registered_at,
			region, sub_region, neighborhood, address, road_address,
			property_type, land_area, building_area, exclusive_area,
			appraisal_price, min_price, deposit, sale_at, sale_location,
			failed_count, has_risk, risk_note, properties, photos, remarks,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33
		)
		ON CONFLICT (court_code, case_no) DO UPDATE SET
			court_name = EXCLUDED.court_name,
			case_type = EXCLUDED.case_type,
			status = EXCLUDED.status,
			department = EXCLUDED.department,
			creditor = EXCLUDED.creditor,
			debtor = EXCLUDED.debtor,
			claim_amount = COALESCE(EXCLUDED.claim_amount, auction_cases.claim_amount),
			registered_at = COALESCE(EXCLUDED.registered_at, auction_cases.registered_at),
			region = EXCLUDED.region,
			sub_region = EXCLUDED.sub_region,
			neighborhood = EXCLUDED.neighborhood,
			address = EXCLUDED.address,
			road_address = EXCLUDED.road_address,
			property_type = EXCLUDED.property_type,
			land_area = COALESCE(EXCLUDED.land_area, auction_cases.land_area),
			building_area = COALESCE(EXCLUDED.building_area, auction_cases.building_area),
			exclusive_area = COALESCE(EXCLUDED.exclusive_area, auction_cases.exclusive_area),
			appraisal_price = COALESCE(EXCLUDED.appraisal_price, auction_cases.appraisal_price),
			min_price = COALESCE(EXCLUDED.min_price, auction_cases.min_price),
			deposit = COALESCE(EXCLUDED.deposit, auction_cases.deposit),
			sale_at = COALESCE(EXCLUDED.sale_at, auction_cases.sale_at),
			sale_location = EXCLUDED.sale_location,
			failed_count = EXCLUDED.failed_count,
			has_risk = EXCLUDED.has_risk,
			risk_note = EXCLUDED.risk_note,
			properties = EXCLUDED.properties,
			photos = EXCLUDED.photos,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING id`

	return s.pool.QueryRow(ctx, query,
		c.ID, c.CourtCode, c.CaseNo, c.CourtName, c.CaseType, c.Status, c.Department,
		c.Creditor, c.Debtor, c.ClaimAmount, c.RegisteredAt,
		c.Region, c.SubRegion, c.Neighborhood, c.Address, c.RoadAddress,
		c.PropertyType, c.LandArea, c.BuildingArea, c.ExclusiveArea,
		c.AppraisalPrice, c.MinPrice, c.Deposit, c.SaleAt, c.SaleLocation,
		c.FailedCount, c.HasRisk, c.RiskNote, c.Properties, c.Photos, c.Remarks,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (s *PostgresStore) GetCase(ctx context.Context, courtCode, caseNo string) (*models.AuctionCase, error) {
	query := `
		SELECT id, court_code, case_no, court_name, case_type, status, department,
			creditor, debtor, claim_amount, registered_at,
			region, sub_region, neighborhood, address, road_address,
			property_type, land_area, building_area, exclusive_area,
			appraisal_price, min_price, deposit, sale_at, sale_location,
			failed_count, has_risk, risk_note, properties, photos, remarks,
			created_at, updated_at
		FROM auction_cases WHERE court_code = $1 AND case_no = $2`

	var c models.AuctionCase
	err := s.pool.QueryRow(ctx, query, courtCode, caseNo).Scan(
		&c.ID, &c.CourtCode, &c.CaseNo, &c.CourtName, &c.CaseType, &c.Status, &c.Department,
		&c.Creditor, &c.Debtor, &c.ClaimAmount, &c.RegisteredAt,
		&c.Region, &c.SubRegion, &c.Neighborhood, &c.Address, &c.RoadAddress,
		&c.PropertyType, &c.LandArea, &c.BuildingArea, &c.ExclusiveArea,
		&c.AppraisalPrice, &c.MinPrice, &c.Deposit, &c.SaleAt, &c.SaleLocation,
		&c.FailedCount, &c.HasRisk, &c.RiskNote, &c.Properties, &c.Photos, &c.Remarks,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// =============================================================================
// Child tables (replace-on-write)
// =============================================================================

// ReplaceSchedules swaps the full round history of a case inside a single
// transaction. Older rounds carry no identity worth preserving.
func (s *PostgresStore) ReplaceSchedules(ctx context.Context, caseID uuid.UUID, entries []models.CaseSchedule) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM case_schedules WHERE case_id = $1`, caseID); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}

	query := `
		INSERT INTO case_schedules (
			case_id, round_no, sale_at, kind, location, min_price, result, winning_bid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, query,
			caseID, e.RoundNo, e.SaleAt, e.Kind, e.Location, e.MinPrice, e.Result, e.WinningBid,
		); err != nil {
			return fmt.Errorf("insert schedule round %d: %w", e.RoundNo, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) ReplaceRights(ctx context.Context, caseID uuid.UUID, entries []models.CaseRight) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM case_rights WHERE case_id = $1`, caseID); err != nil {
		return fmt.Errorf("delete rights: %w", err)
	}

	query := `
		INSERT INTO case_rights (
			case_id, section, seq_no, receipt_date, purpose, holder,
			claim_amount, is_reference, will_expire
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, query,
			caseID, e.Section, e.SeqNo, e.ReceiptDate, e.Purpose, e.Holder,
			e.ClaimAmount, e.IsReference, e.WillExpire,
		); err != nil {
			return fmt.Errorf("insert right %s/%d: %w", e.Section, e.SeqNo, err)
		}
	}

	return tx.Commit(ctx)
}

// =============================================================================
// Analysis
// =============================================================================

func (s *PostgresStore) UpsertAnalysis(ctx context.Context, a *models.CaseAnalysis) error {
	query := `
		INSERT INTO case_analyses (case_id, has_risk, note, tenants, analyzed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (case_id) DO UPDATE SET
			has_risk = EXCLUDED.has_risk,
			note = EXCLUDED.note,
			tenants = EXCLUDED.tenants,
			analyzed_at = EXCLUDED.analyzed_at`

	_, err := s.pool.Exec(ctx, query, a.CaseID, a.HasRisk, a.Note, a.Tenants, a.AnalyzedAt)
	return err
}

// =============================================================================
// Photos
// =============================================================================

// EnqueuePhotos queues photo URLs for archival. Already-known URLs are
// left untouched so their upload state survives re-crawls.
func (s *PostgresStore) EnqueuePhotos(ctx context.Context, caseID uuid.UUID, urls []string) error {
	query := `
		INSERT INTO case_photos (id, case_id, original_url, position, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, NOW())
		ON CONFLICT (original_url) DO NOTHING`

	for i, u := range urls {
		if _, err := s.pool.Exec(ctx, query, uuid.New(), caseID, u, i, models.PhotoStatusPending); err != nil {
			return fmt.Errorf("enqueue photo %d: %w", i, err)
		}
	}
	return nil
}

func (s *PostgresStore) GetPendingPhotos(ctx context.Context, limit int) ([]models.CasePhoto, error) {
	query := `
		SELECT id, case_id, original_url, position, s3_key, content_hash, status, attempts, created_at
		FROM case_photos
		WHERE status = $1 AND attempts < 3
		ORDER BY created_at
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, models.PhotoStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.CasePhoto
	for rows.Next() {
		var p models.CasePhoto
		var hash *string
		if err := rows.Scan(&p.ID, &p.CaseID, &p.OriginalURL, &p.Position, &p.S3Key, &hash, &p.Status, &p.Attempts, &p.CreatedAt); err != nil {
			return nil, err
		}
		if hash != nil {
			p.ContentHash = *hash
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *PostgresStore) MarkPhotoUploaded(ctx context.Context, id uuid.UUID, s3Key, archiveURL, contentHash string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE case_photos
		SET status = $1, s3_key = $2, archive_url = NULLIF($3, ''), content_hash = $4
		WHERE id = $5`,
		models.PhotoStatusUploaded, s3Key, archiveURL, contentHash, id)
	return err
}

func (s *PostgresStore) MarkPhotoFailed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE case_photos
		SET attempts = attempts + 1,
		    status = CASE WHEN attempts + 1 >= 3 THEN $1 ELSE status END
		WHERE id = $2`,
		models.PhotoStatusFailed, id)
	return err
}
