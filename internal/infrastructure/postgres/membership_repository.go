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

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

const membershipColumns = `id, user_id, merchant_id, first_name, last_name, email, phone, address, tax_id,
	status, origin, approved_at, approved_by, alias, merchant_notes, active, created_at, updated_at`

// Create persiste una nueva vinculación cliente-comercio.
func (r *MembershipRepo) Create(m *entity.Membership) error {
	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.UserID, m.MerchantID, m.FirstName, m.LastName, m.Email, m.Phone, m.Address, m.TaxID,
		m.Status, m.Origin, m.ApprovedAt, m.ApprovedBy, m.Alias, m.MerchantNotes,
		m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMembership
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// GetByID obtiene una vinculación por ID. Con includeInactive=true devuelve
// también las dadas de baja.
func (r *MembershipRepo) GetByID(id string, includeInactive bool) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`
	if !includeInactive {
		query += ` AND active = TRUE`
	}
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get membership by id")
}

// GetByIDForUpdate obtiene la vinculación bloqueando la fila. Usar dentro de
// una transacción para transiciones de estado.
func (r *MembershipRepo) GetByIDForUpdate(id string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1 AND active = TRUE FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get membership for update")
}

// GetByUserAndMerchant obtiene la vinculación activa de un usuario con un comercio.
func (r *MembershipRepo) GetByUserAndMerchant(userID, merchantID string) (*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + ` FROM memberships
		WHERE user_id = $1 AND merchant_id = $2 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, merchantID), "get membership by user and merchant")
}

// ListByMerchant lista las vinculaciones de un comercio, opcionalmente
// filtradas por estado.
func (r *MembershipRepo) ListByMerchant(merchantID string, status *int, limit, offset int) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE merchant_id = $1 AND active = TRUE`
	args := []any{merchantID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list memberships by merchant: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

// ListByUser lista las vinculaciones activas de un usuario con todos sus comercios.
func (r *MembershipRepo) ListByUser(userID string) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + ` FROM memberships
		WHERE user_id = $1 AND active = TRUE ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

// Update actualiza datos de contacto, estado y notas de la vinculación.
func (r *MembershipRepo) Update(m *entity.Membership) error {
	query := `
		UPDATE memberships
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6, tax_id = $7,
		    status = $8, approved_at = $9, approved_by = $10, alias = $11, merchant_notes = $12,
		    updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.FirstName, m.LastName, m.Email, m.Phone, m.Address, m.TaxID,
		m.Status, m.ApprovedAt, m.ApprovedBy, m.Alias, m.MerchantNotes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	return nil
}

// Deactivate soft delete de la vinculación.
func (r *MembershipRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE memberships SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate membership: %w", err)
	}
	return nil
}

func (r *MembershipRepo) scanOne(row pgx.Row, op string) (*entity.Membership, error) {
	var m entity.Membership
	if err := scanMembership(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *MembershipRepo) scanList(rows pgx.Rows) ([]*entity.Membership, error) {
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := scanMembership(rows, &m); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMembership(row pgx.Row, m *entity.Membership) error {
	return row.Scan(
		&m.ID, &m.UserID, &m.MerchantID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Address, &m.TaxID,
		&m.Status, &m.Origin, &m.ApprovedAt, &m.ApprovedBy, &m.Alias, &m.MerchantNotes,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
}
