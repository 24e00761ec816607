// Package repotest provee implementaciones en memoria de los puertos de
// persistencia para los tests de casos de uso. Sin transacciones reales:
// el TxRunner invoca la función con los mismos stores compartidos.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// Stores agrupa todos los stores en memoria de una fixture.
type Stores struct {
	Merchants   *MerchantStore
	Users       *UserStore
	Memberships *MembershipStore
	Accounts    *AccountStore
	Movements   *MovementStore
}

// NewStores construye una fixture vacía.
func NewStores() *Stores {
	return &Stores{
		Merchants:   &MerchantStore{byID: map[string]*entity.Merchant{}},
		Users:       &UserStore{byID: map[string]*entity.User{}},
		Memberships: &MembershipStore{byID: map[string]*entity.Membership{}},
		Accounts:    &AccountStore{byID: map[string]*entity.Account{}},
		Movements:   &MovementStore{byID: map[string]*entity.Movement{}},
	}
}

// TxRunner implementa los TxRunner de los casos de uso (auth, customers,
// accounts) pasando los stores compartidos. No hay atomicidad real, pero las
// transacciones corren serializadas bajo un mutex, el equivalente en memoria
// del bloqueo de fila (SELECT ... FOR UPDATE) del adaptador real.
type TxRunner struct {
	S *Stores

	mu sync.Mutex
}

func (t *TxRunner) Run(_ context.Context, fn func(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.S.Users, t.S.Memberships, t.S.Accounts)
}

func (t *TxRunner) RunLedger(_ context.Context, fn func(
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.S.Memberships, t.S.Accounts, t.S.Movements)
}

func (t *TxRunner) RunAuth(_ context.Context, fn func(
	merchantRepo repository.MerchantRepository,
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.S.Merchants, t.S.Users, t.S.Memberships, t.S.Accounts)
}

// ── MerchantStore ─────────────────────────────────────────────────────────────

type MerchantStore struct {
	byID map[string]*entity.Merchant
}

var _ repository.MerchantRepository = (*MerchantStore)(nil)

func (s *MerchantStore) Create(m *entity.Merchant) error {
	cp := *m
	s.byID[m.ID] = &cp
	return nil
}

func (s *MerchantStore) GetByID(id string) (*entity.Merchant, error) {
	m, ok := s.byID[id]
	if !ok || !m.Active {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *MerchantStore) GetByEmail(email string) (*entity.Merchant, error) {
	for _, m := range s.byID {
		if m.Active && strings.EqualFold(m.Email, email) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MerchantStore) Update(m *entity.Merchant) error {
	cp := *m
	s.byID[m.ID] = &cp
	return nil
}

func (s *MerchantStore) List(limit, offset int) ([]*entity.Merchant, error) {
	var out []*entity.Merchant
	for _, m := range s.byID {
		if m.Active {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (s *MerchantStore) Deactivate(id string) error {
	if m, ok := s.byID[id]; ok {
		m.Active = false
	}
	return nil
}

// ── UserStore ─────────────────────────────────────────────────────────────────

type UserStore struct {
	byID map[string]*entity.User
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(u *entity.User) error {
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *UserStore) GetByID(id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok || !u.Active {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByEmail(email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Active && strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Update(u *entity.User) error {
	existing, ok := s.byID[u.ID]
	if !ok {
		cp := *u
		s.byID[u.ID] = &cp
		return nil
	}
	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.Name = u.Name
	existing.UpdatedAt = u.UpdatedAt
	return nil
}

func (s *UserStore) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := s.byID[id]; ok {
		u.LastLoginAt = &at
		u.UpdatedAt = at
	}
	return nil
}

func (s *UserStore) Deactivate(id string) error {
	if u, ok := s.byID[id]; ok {
		u.Active = false
	}
	return nil
}

// ── MembershipStore ───────────────────────────────────────────────────────────

type MembershipStore struct {
	byID map[string]*entity.Membership
}

var _ repository.MembershipRepository = (*MembershipStore)(nil)

func (s *MembershipStore) Create(m *entity.Membership) error {
	cp := *m
	s.byID[m.ID] = &cp
	return nil
}

func (s *MembershipStore) GetByID(id string, includeInactive bool) (*entity.Membership, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	if !m.Active && !includeInactive {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *MembershipStore) GetByIDForUpdate(id string) (*entity.Membership, error) {
	return s.GetByID(id, false)
}

func (s *MembershipStore) GetByUserAndMerchant(userID, merchantID string) (*entity.Membership, error) {
	for _, m := range s.byID {
		if m.Active && m.UserID == userID && m.MerchantID == merchantID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MembershipStore) ListByMerchant(merchantID string, status *int, limit, offset int) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range s.byID {
		if !m.Active || m.MerchantID != merchantID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (s *MembershipStore) ListByUser(userID string) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range s.byID {
		if m.Active && m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MembershipStore) Update(m *entity.Membership) error {
	cp := *m
	s.byID[m.ID] = &cp
	return nil
}

func (s *MembershipStore) Deactivate(id string) error {
	if m, ok := s.byID[id]; ok {
		m.Active = false
	}
	return nil
}

// ── AccountStore ──────────────────────────────────────────────────────────────

type AccountStore struct {
	byID map[string]*entity.Account
}

var _ repository.AccountRepository = (*AccountStore)(nil)

func (s *AccountStore) Create(a *entity.Account) error {
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *AccountStore) GetByID(id string) (*entity.Account, error) {
	a, ok := s.byID[id]
	if !ok || !a.Active {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *AccountStore) GetByMembership(membershipID string) (*entity.Account, error) {
	for _, a := range s.byID {
		if a.Active && a.MembershipID == membershipID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// CountByMembership cuenta filas de cuenta (vivas o no) de una vinculación;
// para asertar que los caminos idempotentes no duplican cuentas.
func (s *AccountStore) CountByMembership(membershipID string) int {
	n := 0
	for _, a := range s.byID {
		if a.MembershipID == membershipID {
			n++
		}
	}
	return n
}

func (s *AccountStore) Update(a *entity.Account) error {
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *AccountStore) Deactivate(id string) error {
	if a, ok := s.byID[id]; ok {
		a.Active = false
	}
	return nil
}

// ── MovementStore ─────────────────────────────────────────────────────────────

type MovementStore struct {
	byID map[string]*entity.Movement
	seq  int
}

var _ repository.MovementRepository = (*MovementStore)(nil)

func (s *MovementStore) Create(m *entity.Movement) error {
	cp := *m
	s.seq++
	// CreatedAt idéntico entre asientos rompería el orden del log en memoria;
	// el secuencial desempata.
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(s.seq) * time.Microsecond)
	s.byID[m.ID] = &cp
	return nil
}

func (s *MovementStore) GetByID(id string) (*entity.Movement, error) {
	m, ok := s.byID[id]
	if !ok || !m.Active {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *MovementStore) GetByIDForUpdate(id string) (*entity.Movement, error) {
	return s.GetByID(id)
}

func (s *MovementStore) ListByAccount(accountID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range s.byID {
		if m.Active && m.AccountID == accountID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MovementStore) UpdatePayment(m *entity.Movement) error {
	existing, ok := s.byID[m.ID]
	if !ok {
		return nil
	}
	existing.Paid = m.Paid
	existing.PaidAt = m.PaidAt
	existing.PaymentNotes = m.PaymentNotes
	existing.UpdatedAt = m.UpdatedAt
	return nil
}

func paginate[T any](in []*T, limit, offset int) []*T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
