package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"scentbase/database"
	"scentbase/models"
)

const perfumeColumns = `id, article, unique_key, brand, name, full_title, factory, factory_detailed,
	price, price_formatted, currency, gender, fragrance_group, quality_level, url, is_active, created_at, updated_at`

// PerfumeRepository persists catalog records. Writes go through a mutex so
// concurrent pipeline workers never race the check-then-write in Upsert;
// the read path is served from the catalog cache when it is warm.
type PerfumeRepository struct {
	mu    sync.Mutex
	cache *CatalogCache
}

// NewPerfumeRepository creates a repository backed by the shared database
// pool and the given cache.
func NewPerfumeRepository(cache *CatalogCache) *PerfumeRepository {
	return &PerfumeRepository{cache: cache}
}

// Upsert inserts a record or updates the existing row with the same
// unique_key. It reports whether a new row was created, and purges the
// catalog cache either way.
func (r *PerfumeRepository) Upsert(record *models.PerfumeRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existingID int
	err := database.DB.QueryRow(`SELECT id FROM perfumes WHERE unique_key = $1`, record.UniqueKey).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if err := r.insert(record); err != nil {
			return false, err
		}
		r.cache.Purge()
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up perfume: %v", err)
	default:
		if err := r.update(existingID, record); err != nil {
			return false, err
		}
		r.cache.Purge()
		return false, nil
	}
}

func (r *PerfumeRepository) insert(record *models.PerfumeRecord) error {
	query := `
		INSERT INTO perfumes (article, unique_key, brand, name, full_title, factory, factory_detailed,
			price, price_formatted, currency, gender, fragrance_group, quality_level, url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id, created_at, updated_at
	`

	err := database.DB.QueryRow(query,
		record.Article, record.UniqueKey, record.Brand, record.Name, record.FullTitle,
		record.Factory, record.FactoryDetailed, record.Price, record.PriceFormatted, record.Currency,
		record.Gender, record.FragranceGroup, record.QualityLevel, record.URL, record.IsActive, time.Now(),
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert perfume: %v", err)
	}
	return nil
}

// update refreshes every mutable field; created_at is left untouched.
func (r *PerfumeRepository) update(id int, record *models.PerfumeRecord) error {
	query := `
		UPDATE perfumes
		SET article = $2, brand = $3, name = $4, full_title = $5, factory = $6, factory_detailed = $7,
			price = $8, price_formatted = $9, currency = $10, gender = $11, fragrance_group = $12,
			quality_level = $13, url = $14, is_active = $15, updated_at = $16
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := database.DB.QueryRow(query, id,
		record.Article, record.Brand, record.Name, record.FullTitle,
		record.Factory, record.FactoryDetailed, record.Price, record.PriceFormatted, record.Currency,
		record.Gender, record.FragranceGroup, record.QualityLevel, record.URL, record.IsActive, time.Now(),
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update perfume: %v", err)
	}
	record.ID = id
	return nil
}

// GetAll returns every active record, newest first. The result is served
// from the cache when warm and cached after a database read otherwise.
func (r *PerfumeRepository) GetAll() ([]models.PerfumeRecord, error) {
	if records, ok := r.cache.GetCatalog(); ok {
		return records, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE is_active = true
		ORDER BY created_at DESC, id DESC
	`, perfumeColumns)

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %v", err)
	}
	defer rows.Close()

	records, err := scanPerfumes(rows)
	if err != nil {
		return nil, err
	}

	r.cache.SetCatalog(records)
	return records, nil
}

// GetByArticle returns one record by its article code, case-insensitively.
// It always reads the database so single-record lookups never go stale.
func (r *PerfumeRepository) GetByArticle(article string) (*models.PerfumeRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE UPPER(article) = $1 AND is_active = true
	`, perfumeColumns)

	var record models.PerfumeRecord
	err := database.DB.QueryRow(query, strings.ToUpper(strings.TrimSpace(article))).Scan(perfumeFields(&record)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("perfume not found")
		}
		return nil, fmt.Errorf("failed to get perfume: %v", err)
	}

	return &record, nil
}

// Count returns the number of active records.
func (r *PerfumeRepository) Count() (int, error) {
	var count int
	err := database.DB.QueryRow(`SELECT COUNT(*) FROM perfumes WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count perfumes: %v", err)
	}
	return count, nil
}

func scanPerfumes(rows *sql.Rows) ([]models.PerfumeRecord, error) {
	var records []models.PerfumeRecord
	for rows.Next() {
		var record models.PerfumeRecord
		if err := rows.Scan(perfumeFields(&record)...); err != nil {
			return nil, fmt.Errorf("failed to scan perfume: %v", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read perfumes: %v", err)
	}
	return records, nil
}

// perfumeFields returns scan targets in perfumeColumns order.
func perfumeFields(record *models.PerfumeRecord) []interface{} {
	return []interface{}{
		&record.ID, &record.Article, &record.UniqueKey, &record.Brand, &record.Name,
		&record.FullTitle, &record.Factory, &record.FactoryDetailed,
		&record.Price, &record.PriceFormatted, &record.Currency,
		&record.Gender, &record.FragranceGroup, &record.QualityLevel,
		&record.URL, &record.IsActive, &record.CreatedAt, &record.UpdatedAt,
	}
}
