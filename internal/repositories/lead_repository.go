package repositories

import (
	"database/sql"
	"fmt"

	"assekura/internal/models"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (reference, name, email, phone, insurance_type, message, language, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		lead.Reference, lead.Name, lead.Email, lead.Phone, lead.InsuranceType, lead.Message, lead.Language, lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) UpdateStatus(id int, status string) error {
	if _, err := r.DB.Exec(`UPDATE leads SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	return nil
}

func (r *LeadRepository) ListPaginated(limit, offset int) ([]*models.Lead, error) {
	const q = `
		SELECT id, reference, name, email, phone, insurance_type, message, language, status, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.ID, &l.Reference, &l.Name, &l.Email, &l.Phone, &l.InsuranceType, &l.Message, &l.Language, &l.Status, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, &l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) GetByReference(reference string) (*models.Lead, error) {
	const q = `
		SELECT id, reference, name, email, phone, insurance_type, message, language, status, created_at
		FROM leads
		WHERE reference = $1
	`
	row := r.DB.QueryRow(q, reference)

	var l models.Lead
	if err := row.Scan(
		&l.ID, &l.Reference, &l.Name, &l.Email, &l.Phone, &l.InsuranceType, &l.Message, &l.Language, &l.Status, &l.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by reference: %w", err)
	}
	return &l, nil
}
