package repositories

import (
	"database/sql"
	"fmt"

	"assekura/internal/models"
)

type VerificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

func (r *VerificationRepository) GetByPhone(phone string) (*models.PhoneVerification, error) {
	const q = `
		SELECT phone_number, code, expires_at, attempts, verified, verified_at, created_at, updated_at
		FROM phone_verifications
		WHERE phone_number = $1
	`
	row := r.DB.QueryRow(q, phone)

	var v models.PhoneVerification
	var verifiedAt sql.NullTime
	if err := row.Scan(
		&v.PhoneNumber, &v.Code, &v.ExpiresAt, &v.Attempts, &v.Verified, &verifiedAt, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get phone verification: %w", err)
	}
	if verifiedAt.Valid {
		v.VerifiedAt = verifiedAt.Time
	}
	return &v, nil
}

// Upsert issues a fresh code for the number: insert if absent, else
// overwrite code/expiry and reset attempts. The verified columns are
// deliberately untouched here.
func (r *VerificationRepository) Upsert(v *models.PhoneVerification) error {
	const q = `
		INSERT INTO phone_verifications (phone_number, code, expires_at, attempts, verified, created_at, updated_at)
		VALUES ($1, $2, $3, 0, FALSE, NOW(), NOW())
		ON CONFLICT (phone_number) DO UPDATE
		SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, attempts = 0, updated_at = NOW()
	`
	if _, err := r.DB.Exec(q, v.PhoneNumber, v.Code, v.ExpiresAt); err != nil {
		return fmt.Errorf("upsert phone verification: %w", err)
	}
	return nil
}

// IncrementAttempts does an atomic +1 and returns the new counter value.
func (r *VerificationRepository) IncrementAttempts(phone string) (int, error) {
	const q = `
		UPDATE phone_verifications
		SET attempts = attempts + 1, updated_at = NOW()
		WHERE phone_number = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, phone).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("increment verification attempts: %w", err)
	}
	return attempts, nil
}

func (r *VerificationRepository) MarkVerified(phone string) error {
	const q = `
		UPDATE phone_verifications
		SET verified = TRUE, verified_at = NOW(), updated_at = NOW()
		WHERE phone_number = $1
	`
	if _, err := r.DB.Exec(q, phone); err != nil {
		return fmt.Errorf("mark phone verified: %w", err)
	}
	return nil
}
