package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/ledger"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// AccountUseCase opera la cuenta corriente: apertura, saldo, límite de
// crédito, bloqueo, alta de movimientos y marca de pago. La cuenta es un
// registro pasivo; las políticas (cuenta bloqueada rechaza débitos nuevos)
// se aplican acá, en el façade, no dentro de la entidad.
type AccountUseCase struct {
	txRunner       TxRunner
	accountRepo    repository.AccountRepository
	membershipRepo repository.MembershipRepository
	movementRepo   repository.MovementRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	txRunner TxRunner,
	accountRepo repository.AccountRepository,
	membershipRepo repository.MembershipRepository,
	movementRepo repository.MovementRepository,
) *AccountUseCase {
	return &AccountUseCase{
		txRunner:       txRunner,
		accountRepo:    accountRepo,
		membershipRepo: membershipRepo,
		movementRepo:   movementRepo,
	}
}

// Open crea la cuenta corriente de una vinculación del comercio que la pide.
// Idempotente: si ya existe devuelve la existente sin error y sin duplicar
// filas. Rechaza vinculaciones no Activas: este es el punto que ata el ciclo
// de vida de la cuenta al estado de la vinculación.
func (uc *AccountUseCase) Open(ctx context.Context, membershipID, merchantID string) (*entity.Account, error) {
	var out *entity.Account
	err := uc.txRunner.RunLedger(ctx, func(
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
		_ repository.MovementRepository,
	) error {
		m, err := membershipRepo.GetByIDForUpdate(membershipID)
		if err != nil {
			return err
		}
		if m == nil || !m.Active {
			return domain.ErrNotFound
		}
		if merchantID != "" && m.MerchantID != merchantID {
			return domain.ErrForbidden
		}
		if m.Status != entity.StatusActive {
			return domain.ErrMembershipNotActive
		}
		existing, err := accountRepo.GetByMembership(membershipID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}
		now := time.Now()
		acc := &entity.Account{
			ID:           uuid.New().String(),
			MembershipID: membershipID,
			CreditLimit:  decimal.Zero,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := accountRepo.Create(acc); err != nil {
			return err
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetBalance saldo y crédito disponible, recalculados desde el log completo.
// merchantID o userID (uno u otro) autorizan el acceso según quién consulta.
func (uc *AccountUseCase) GetBalance(_ context.Context, accountID, merchantID, userID string) (*dto.AccountBalanceResponse, error) {
	acc, _, err := uc.authorize(accountID, merchantID, userID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByAccount(acc.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.Balance(movements)
	return &dto.AccountBalanceResponse{
		AccountID:        acc.ID,
		Balance:          balance,
		AvailableCredit:  ledger.Available(acc.CreditLimit, balance),
		CreditLimit:      acc.CreditLimit,
		Blocked:          acc.Blocked,
		FormattedBalance: dto.FormatBalance(balance),
		BalanceStatus:    dto.BalanceStatus(balance),
	}, nil
}

// SetCreditLimit actualiza el límite de crédito de la cuenta.
func (uc *AccountUseCase) SetCreditLimit(_ context.Context, accountID, merchantID string, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return domain.ErrInvalidInput
	}
	acc, _, err := uc.authorize(accountID, merchantID, "")
	if err != nil {
		return err
	}
	acc.CreditLimit = limit
	acc.UpdatedAt = time.Now()
	return uc.accountRepo.Update(acc)
}

// Block bloquea la cuenta: los débitos nuevos se rechazan, las lecturas
// históricas siguen funcionando.
func (uc *AccountUseCase) Block(ctx context.Context, accountID, merchantID string) error {
	return uc.setBlocked(accountID, merchantID, true)
}

// Unblock desbloquea la cuenta.
func (uc *AccountUseCase) Unblock(ctx context.Context, accountID, merchantID string) error {
	return uc.setBlocked(accountID, merchantID, false)
}

func (uc *AccountUseCase) setBlocked(accountID, merchantID string, blocked bool) error {
	acc, _, err := uc.authorize(accountID, merchantID, "")
	if err != nil {
		return err
	}
	acc.Blocked = blocked
	acc.UpdatedAt = time.Now()
	return uc.accountRepo.Update(acc)
}

// RegisterMovement asienta un movimiento en el log. Importe siempre > 0 (el
// signo lo lleva el tipo), detalle obligatorio. Sobre cuenta bloqueada solo se
// admiten haberes (pagos); los débitos nuevos se rechazan.
func (uc *AccountUseCase) RegisterMovement(ctx context.Context, accountID, merchantID, createdBy string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.Type != entity.MovementTypeDebit && in.Type != entity.MovementTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Details == "" {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Movement
	err := uc.txRunner.RunLedger(ctx, func(
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
	) error {
		acc, err := accountRepo.GetByID(accountID)
		if err != nil {
			return err
		}
		if acc == nil || !acc.Active {
			return domain.ErrNotFound
		}
		m, err := membershipRepo.GetByID(acc.MembershipID, false)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if merchantID != "" && m.MerchantID != merchantID {
			return domain.ErrForbidden
		}
		if acc.Blocked && in.Type == entity.MovementTypeDebit {
			return domain.ErrAccountBlocked
		}

		now := time.Now()
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			AccountID: acc.ID,
			Type:      in.Type,
			Amount:    in.Amount,
			Details:   in.Details,
			DueDate:   in.DueDate,
			CreatedBy: createdBy,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if in.Receipt != "" {
			mov.Receipt = &in.Receipt
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// MarkPaid marca un movimiento como pagado. Única mutación permitida sobre un
// asiento; sobre uno ya pagado devuelve ErrAlreadyPaid y no toca nada. La
// lectura se hace con bloqueo de fila para serializar pagos concurrentes.
func (uc *AccountUseCase) MarkPaid(ctx context.Context, movementID, merchantID string, in dto.MarkPaidRequest) (*dto.MovementResponse, error) {
	var updated *entity.Movement
	err := uc.txRunner.RunLedger(ctx, func(
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
	) error {
		mov, err := movementRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil || !mov.Active {
			return domain.ErrNotFound
		}
		if merchantID != "" {
			acc, err := accountRepo.GetByID(mov.AccountID)
			if err != nil {
				return err
			}
			if acc == nil {
				return domain.ErrNotFound
			}
			m, err := membershipRepo.GetByID(acc.MembershipID, false)
			if err != nil {
				return err
			}
			if m == nil || m.MerchantID != merchantID {
				return domain.ErrForbidden
			}
		}
		if mov.Paid {
			return domain.ErrAlreadyPaid
		}

		now := time.Now()
		mov.Paid = true
		mov.PaidAt = &now
		if in.Notes != "" {
			mov.PaymentNotes = &in.Notes
		}
		mov.UpdatedAt = now
		if err := movementRepo.UpdatePayment(mov); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// ListMovements historial completo de la cuenta, del más antiguo al más nuevo.
func (uc *AccountUseCase) ListMovements(_ context.Context, accountID, merchantID, userID string) ([]*dto.MovementResponse, error) {
	acc, _, err := uc.authorize(accountID, merchantID, userID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByAccount(acc.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		out = append(out, toMovementResponse(mov))
	}
	return out, nil
}

// authorize resuelve cuenta + vinculación y verifica que quien consulta sea
// el comercio dueño (merchantID) o el cliente titular (userID).
func (uc *AccountUseCase) authorize(accountID, merchantID, userID string) (*entity.Account, *entity.Membership, error) {
	acc, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, nil, err
	}
	if acc == nil || !acc.Active {
		return nil, nil, domain.ErrNotFound
	}
	m, err := uc.membershipRepo.GetByID(acc.MembershipID, false)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, domain.ErrNotFound
	}
	if merchantID != "" && m.MerchantID != merchantID {
		return nil, nil, domain.ErrForbidden
	}
	if userID != "" && m.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	return acc, m, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	typeName := "Debe"
	if m.Type == entity.MovementTypeCredit {
		typeName = "Haber"
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Type:         m.Type,
		TypeName:     typeName,
		Amount:       m.Amount,
		Details:      m.Details,
		Receipt:      m.Receipt,
		DueDate:      m.DueDate,
		Paid:         m.Paid,
		PaidAt:       m.PaidAt,
		PaymentNotes: m.PaymentNotes,
		CreatedAt:    m.CreatedAt,
	}
}
