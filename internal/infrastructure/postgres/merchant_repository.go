package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

var _ repository.MerchantRepository = (*MerchantRepo)(nil)

// MerchantRepo implementación del puerto MerchantRepository sobre PostgreSQL
// (usable con pool o tx).
type MerchantRepo struct {
	q Querier
}

// NewMerchantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMerchantRepository(q Querier) *MerchantRepo {
	return &MerchantRepo{q: q}
}

const merchantColumns = `id, name, email, phone, address, logo, email_notifications, whatsapp_notifications, auto_approve_customers, active, created_at, updated_at`

// Create persiste un nuevo comercio.
func (r *MerchantRepo) Create(m *entity.Merchant) error {
	query := `
		INSERT INTO merchants (` + merchantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Email, m.Phone, m.Address, m.Logo,
		m.EmailNotifications, m.WhatsAppNotifications, m.AutoApproveCustomers,
		m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMerchantEmailExists
		}
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID obtiene un comercio activo por ID.
func (r *MerchantRepo) GetByID(id string) (*entity.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get merchant by id")
}

// GetByEmail obtiene un comercio activo por email.
func (r *MerchantRepo) GetByEmail(email string) (*entity.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE email = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get merchant by email")
}

// Update actualiza un comercio.
func (r *MerchantRepo) Update(m *entity.Merchant) error {
	query := `
		UPDATE merchants
		SET name = $2, email = $3, phone = $4, address = $5, logo = $6,
		    email_notifications = $7, whatsapp_notifications = $8,
		    auto_approve_customers = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Email, m.Phone, m.Address, m.Logo,
		m.EmailNotifications, m.WhatsAppNotifications, m.AutoApproveCustomers, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMerchantEmailExists
		}
		return fmt.Errorf("update merchant: %w", err)
	}
	return nil
}

// List lista comercios activos ordenados por nombre.
func (r *MerchantRepo) List(limit, offset int) ([]*entity.Merchant, error) {
	query := `
		SELECT ` + merchantColumns + ` FROM merchants
		WHERE active = TRUE ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Merchant
	for rows.Next() {
		var m entity.Merchant
		if err := scanMerchant(rows, &m); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Deactivate soft delete del comercio.
func (r *MerchantRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE merchants SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate merchant: %w", err)
	}
	return nil
}

func (r *MerchantRepo) scanOne(row pgx.Row, op string) (*entity.Merchant, error) {
	var m entity.Merchant
	if err := scanMerchant(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func scanMerchant(row pgx.Row, m *entity.Merchant) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Logo,
		&m.EmailNotifications, &m.WhatsAppNotifications, &m.AutoApproveCustomers,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
}
