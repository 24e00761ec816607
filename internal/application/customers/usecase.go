package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/ledger"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// MembershipUseCase gobierna el ciclo de vida de la vinculación cliente-comercio:
// alta por administración, aprobación, rechazo y listados.
// Toda transición de estado corre dentro de una transacción con bloqueo de fila,
// la única manera de que dos approve concurrentes den exactamente un éxito.
type MembershipUseCase struct {
	txRunner       TxRunner
	membershipRepo repository.MembershipRepository
	merchantRepo   repository.MerchantRepository
	userRepo       repository.UserRepository
	accountRepo    repository.AccountRepository
	movementRepo   repository.MovementRepository
}

// NewMembershipUseCase construye el caso de uso.
func NewMembershipUseCase(
	txRunner TxRunner,
	membershipRepo repository.MembershipRepository,
	merchantRepo repository.MerchantRepository,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
) *MembershipUseCase {
	return &MembershipUseCase{
		txRunner:       txRunner,
		membershipRepo: membershipRepo,
		merchantRepo:   merchantRepo,
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
	}
}

// CreateByMerchant alta de cliente desde la administración del comercio.
// La vinculación nace Activa (origen administración implica confianza inmediata)
// y la cuenta corriente se crea en la misma transacción. Si el email no
// corresponde a un usuario existente se crea uno con el DNI como contraseña
// inicial; al no tener último acceso, el login le exigirá cambiarla.
func (uc *MembershipUseCase) CreateByMerchant(ctx context.Context, merchantID, adminUserID string, in dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	merchant, err := uc.merchantRepo.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}

	var membershipID string
	err = uc.txRunner.Run(ctx, func(
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error {
		user, err := userRepo.GetByEmail(in.Email)
		if err != nil {
			return err
		}
		now := time.Now()
		if user == nil {
			// Contraseña inicial = DNI; el cambio se fuerza en el primer login.
			hash, err := bcrypt.GenerateFromPassword([]byte(in.TaxID), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user = &entity.User{
				ID:           uuid.New().String(),
				Email:        in.Email,
				PasswordHash: string(hash),
				Name:         in.FirstName + " " + in.LastName,
				Role:         entity.RoleCustomer,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := userRepo.Create(user); err != nil {
				return err
			}
		} else if user.Role != entity.RoleCustomer {
			// El email pertenece a un admin/staff: no puede ser cliente.
			return domain.ErrUserEmailExists
		}

		existing, err := membershipRepo.GetByUserAndMerchant(user.ID, merchantID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateMembership
		}

		membership := &entity.Membership{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			MerchantID: merchantID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			Phone:      in.Phone,
			Address:    in.Address,
			TaxID:      in.TaxID,
			Status:     entity.StatusActive,
			Origin:     entity.OriginAdmin,
			ApprovedAt: &now,
			ApprovedBy: &adminUserID,
			Alias:      in.Alias,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := membershipRepo.Create(membership); err != nil {
			return err
		}
		membershipID = membership.ID

		return createAccountIfMissing(accountRepo, membership.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, membershipID, merchantID)
}

// Approve transición Pendiente → Activo. Estampa fecha y aprobador y crea la
// cuenta corriente (único camino por el que un autogestionado obtiene cuenta).
// Lectura y escritura del estado ocurren bajo la misma fila bloqueada: de dos
// approve concurrentes uno gana y el otro recibe ErrAlreadyApproved sin escribir.
func (uc *MembershipUseCase) Approve(ctx context.Context, membershipID, merchantID, approverID string) (*dto.MembershipResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error {
		m, err := membershipRepo.GetByIDForUpdate(membershipID)
		if err != nil {
			return err
		}
		if m == nil || !m.Active {
			return domain.ErrNotFound
		}
		if m.MerchantID != merchantID {
			return domain.ErrForbidden
		}
		switch m.Status {
		case entity.StatusActive:
			return domain.ErrAlreadyApproved
		case entity.StatusRejected:
			// Sin transición definida desde Rechazado (re-registro = vinculación nueva).
			return domain.ErrMembershipRejected
		}

		now := time.Now()
		m.Status = entity.StatusActive
		m.ApprovedAt = &now
		m.ApprovedBy = &approverID
		m.UpdatedAt = now
		if err := membershipRepo.Update(m); err != nil {
			return err
		}
		return createAccountIfMissing(accountRepo, m.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, membershipID, merchantID)
}

// Reject cualquier estado no-Activo → Rechazado. Estampa quién rechazó.
// Jamás crea cuenta corriente.
func (uc *MembershipUseCase) Reject(ctx context.Context, membershipID, merchantID, rejecterID string) (*dto.MembershipResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		_ repository.AccountRepository,
	) error {
		m, err := membershipRepo.GetByIDForUpdate(membershipID)
		if err != nil {
			return err
		}
		if m == nil || !m.Active {
			return domain.ErrNotFound
		}
		if m.MerchantID != merchantID {
			return domain.ErrForbidden
		}
		if m.Status == entity.StatusActive {
			return domain.ErrAlreadyApproved
		}

		now := time.Now()
		m.Status = entity.StatusRejected
		m.ApprovedBy = &rejecterID
		m.UpdatedAt = now
		return membershipRepo.Update(m)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, membershipID, merchantID)
}

// Update actualiza el snapshot de contacto de la vinculación.
func (uc *MembershipUseCase) Update(ctx context.Context, membershipID, merchantID string, in dto.UpdateMembershipRequest) (*dto.MembershipResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.membershipRepo.GetByID(membershipID, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.MerchantID != merchantID {
		return nil, domain.ErrForbidden
	}

	m.FirstName = in.FirstName
	m.LastName = in.LastName
	m.Email = in.Email
	m.Phone = in.Phone
	m.Address = in.Address
	m.TaxID = in.TaxID
	m.Alias = in.Alias
	m.MerchantNotes = in.MerchantNotes
	m.UpdatedAt = time.Now()
	if err := uc.membershipRepo.Update(m); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, membershipID, merchantID)
}

// Delete soft delete de la vinculación y de su cuenta corriente (si existe).
// Los movimientos quedan: la historia contable nunca se pierde.
func (uc *MembershipUseCase) Delete(ctx context.Context, membershipID, merchantID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error {
		m, err := membershipRepo.GetByIDForUpdate(membershipID)
		if err != nil {
			return err
		}
		if m == nil || !m.Active {
			return domain.ErrNotFound
		}
		if m.MerchantID != merchantID {
			return domain.ErrForbidden
		}
		if err := membershipRepo.Deactivate(m.ID); err != nil {
			return err
		}
		acc, err := accountRepo.GetByMembership(m.ID)
		if err != nil {
			return err
		}
		if acc != nil {
			return accountRepo.Deactivate(acc.ID)
		}
		return nil
	})
}

// GetByID obtiene la vinculación con su cuenta y saldo derivado.
func (uc *MembershipUseCase) GetByID(_ context.Context, membershipID, merchantID string) (*dto.MembershipResponse, error) {
	m, err := uc.membershipRepo.GetByID(membershipID, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if merchantID != "" && m.MerchantID != merchantID {
		return nil, domain.ErrForbidden
	}
	summary, err := uc.accountSummary(m.ID)
	if err != nil {
		return nil, err
	}
	return toMembershipResponse(m, summary), nil
}

// ListByMerchant lista vinculaciones del comercio, filtrables por estado
// (status=1 alimenta la cola de "pendientes de aprobación"), con saldo.
func (uc *MembershipUseCase) ListByMerchant(_ context.Context, merchantID string, status *int, page dto.PageRequest) ([]*dto.MembershipResponse, error) {
	page.DefaultPage()
	memberships, err := uc.membershipRepo.ListByMerchant(merchantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		summary, err := uc.accountSummary(m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toMembershipResponse(m, summary))
	}
	return out, nil
}

// ListByUser lista las vinculaciones de un usuario en todos sus comercios
// (dashboard del cliente), cada una con nombre del comercio y saldo.
func (uc *MembershipUseCase) ListByUser(_ context.Context, userID string) ([]*dto.MembershipForUserResponse, error) {
	memberships, err := uc.membershipRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MembershipForUserResponse, 0, len(memberships))
	for _, m := range memberships {
		merchant, err := uc.merchantRepo.GetByID(m.MerchantID)
		if err != nil {
			return nil, err
		}
		merchantName := ""
		if merchant != nil {
			merchantName = merchant.Name
		}
		summary, err := uc.accountSummary(m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.MembershipForUserResponse{
			MembershipID: m.ID,
			MerchantID:   m.MerchantID,
			MerchantName: merchantName,
			Status:       m.Status,
			StatusName:   m.StatusName(),
			Account:      summary,
		})
	}
	return out, nil
}

// accountSummary arma el resumen de cuenta con saldo derivado del log, o nil
// si la vinculación todavía no tiene cuenta (pendiente de aprobación).
func (uc *MembershipUseCase) accountSummary(membershipID string) (*dto.AccountSummary, error) {
	acc, err := uc.accountRepo.GetByMembership(membershipID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	movements, err := uc.movementRepo.ListByAccount(acc.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.Balance(movements)
	return &dto.AccountSummary{
		ID:               acc.ID,
		CreditLimit:      acc.CreditLimit,
		Blocked:          acc.Blocked,
		Balance:          balance,
		AvailableCredit:  ledger.Available(acc.CreditLimit, balance),
		FormattedBalance: dto.FormatBalance(balance),
		BalanceStatus:    dto.BalanceStatus(balance),
	}, nil
}

// createAccountIfMissing crea la cuenta corriente si la vinculación aún no la
// tiene. Idempotente: si ya existe, la deja intacta.
func createAccountIfMissing(accountRepo repository.AccountRepository, membershipID string, now time.Time) error {
	acc, err := accountRepo.GetByMembership(membershipID)
	if err != nil {
		return err
	}
	if acc != nil {
		return nil
	}
	return accountRepo.Create(&entity.Account{
		ID:           uuid.New().String(),
		MembershipID: membershipID,
		CreditLimit:  decimal.Zero,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func toMembershipResponse(m *entity.Membership, account *dto.AccountSummary) *dto.MembershipResponse {
	originName := "Administración"
	if m.Origin == entity.OriginSelf {
		originName = "Autogestión"
	}
	return &dto.MembershipResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		MerchantID: m.MerchantID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		FullName:   m.FullName(),
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		TaxID:      m.TaxID,
		Alias:      m.Alias,
		Status:     m.Status,
		StatusName: m.StatusName(),
		Origin:     m.Origin,
		OriginName: originName,
		ApprovedAt: m.ApprovedAt,
		ApprovedBy: m.ApprovedBy,
		Account:    account,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
