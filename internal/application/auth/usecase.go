package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
	"github.com/jhoicas/CuentaCorriente-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens. Se inyecta al construir
// el caso de uso; nunca se lee configuración ambiente dentro del núcleo.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro de comercio,
// registro de cliente por autogestión y cambio de contraseña.
type AuthUseCase struct {
	txRunner       TxRunner
	userRepo       repository.UserRepository
	merchantRepo   repository.MerchantRepository
	membershipRepo repository.MembershipRepository
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	merchantRepo repository.MerchantRepository,
	membershipRepo repository.MembershipRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:       txRunner,
		userRepo:       userRepo,
		merchantRepo:   merchantRepo,
		membershipRepo: membershipRepo,
		jwtCfg:         jwtCfg,
	}
}

// RegisterMerchant alta de comercio + usuario administrador en una transacción.
// Falla con ErrMerchantEmailExists / ErrUserEmailExists antes de cualquier
// escritura si alguno de los emails ya está tomado.
func (uc *AuthUseCase) RegisterMerchant(ctx context.Context, in dto.RegisterMerchantRequest) (*dto.RegisterMerchantResponse, error) {
	if in.MerchantName == "" || in.MerchantEmail == "" || in.AdminName == "" || in.AdminEmail == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	var merchantID string
	var admin *entity.User
	err := uc.txRunner.RunAuth(ctx, func(
		merchantRepo repository.MerchantRepository,
		userRepo repository.UserRepository,
		_ repository.MembershipRepository,
		_ repository.AccountRepository,
	) error {
		existingMerchant, err := merchantRepo.GetByEmail(in.MerchantEmail)
		if err != nil {
			return err
		}
		if existingMerchant != nil {
			return domain.ErrMerchantEmailExists
		}
		existingUser, err := userRepo.GetByEmail(in.AdminEmail)
		if err != nil {
			return err
		}
		if existingUser != nil {
			return domain.ErrUserEmailExists
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		now := time.Now()
		merchant := &entity.Merchant{
			ID:                 uuid.New().String(),
			Name:               in.MerchantName,
			Email:              in.MerchantEmail,
			Phone:              in.MerchantPhone,
			Address:            in.MerchantAddress,
			EmailNotifications: true,
			Active:             true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := merchantRepo.Create(merchant); err != nil {
			return err
		}

		admin = &entity.User{
			ID:           uuid.New().String(),
			MerchantID:   &merchant.ID,
			Email:        in.AdminEmail,
			PasswordHash: string(hash),
			Name:         in.AdminName,
			Role:         entity.RoleAdmin,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			return err
		}
		merchantID = merchant.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
		admin.ID, admin.Email, admin.Name, admin.Role, merchantID, nil)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMerchantResponse{MerchantID: merchantID, Token: token}, nil
}

// RegisterCustomer autogestión de un cliente contra un comercio. Resuelve o
// crea el usuario, verifica que no exista ya el vínculo y deja la vinculación
// Pendiente (sin cuenta corriente y sin token: primero aprueba el comercio).
// Si el comercio no exige aprobación, la vinculación nace Activa y la cuenta
// corriente se abre en la misma transacción, espejo del alta por administración.
func (uc *AuthUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterCustomerRequest) (*dto.RegisterCustomerResponse, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.MerchantID == "" {
		return nil, domain.ErrInvalidInput
	}
	merchant, err := uc.merchantRepo.GetByID(in.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}

	var out dto.RegisterCustomerResponse
	err = uc.txRunner.RunAuth(ctx, func(
		_ repository.MerchantRepository,
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error {
		user, err := userRepo.GetByEmail(in.Email)
		if err != nil {
			return err
		}
		now := time.Now()
		if user != nil {
			// Usuario existente: la contraseña debe coincidir con la suya.
			if user.Role != entity.RoleCustomer {
				return domain.ErrUserEmailExists
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
				return domain.ErrInvalidCredentials
			}
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
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
		}

		existing, err := membershipRepo.GetByUserAndMerchant(user.ID, in.MerchantID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateMembership
		}

		membership := &entity.Membership{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			MerchantID: in.MerchantID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			Phone:      in.Phone,
			Address:    in.Address,
			TaxID:      in.TaxID,
			Status:     entity.StatusPending,
			Origin:     entity.OriginSelf,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if merchant.AutoApproveCustomers {
			membership.Status = entity.StatusActive
			membership.ApprovedAt = &now
		}
		if err := membershipRepo.Create(membership); err != nil {
			return err
		}

		if membership.Status == entity.StatusActive {
			if err := accountRepo.Create(&entity.Account{
				ID:           uuid.New().String(),
				MembershipID: membership.ID,
				CreditLimit:  decimal.Zero,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return err
			}
		}

		out = dto.RegisterCustomerResponse{
			MembershipID: membership.ID,
			Pending:      membership.Status == entity.StatusPending,
			Message:      "Registro exitoso. Tu cuenta está pendiente de aprobación por el comercio.",
		}
		if !out.Pending {
			out.Message = "Registro exitoso."
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login verifica credenciales y arma el contexto del rol. Distingue
// "contraseña incorrecta" (ErrInvalidCredentials) de "todavía no puede entrar"
// (ErrAccountPending / ErrAccountDeactivated). Para un customer el token lleva
// la lista de comercios con vinculación activa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrAccountDeactivated
	}

	resp := &dto.LoginResponse{Role: user.Role, UserName: user.Name}
	var merchantIDs []string

	if user.Role == entity.RoleCustomer {
		memberships, err := uc.membershipRepo.ListByUser(user.ID)
		if err != nil {
			return nil, err
		}
		var active, pending []*entity.Membership
		for _, m := range memberships {
			switch m.Status {
			case entity.StatusActive:
				active = append(active, m)
			case entity.StatusPending:
				pending = append(pending, m)
			}
		}
		if len(active) == 0 {
			if len(pending) > 0 {
				return nil, domain.ErrAccountPending
			}
			return nil, domain.ErrAccountDeactivated
		}

		// Nunca inició sesión y al menos un comercio lo dio de alta desde
		// administración: la contraseña sembrada (DNI) debe cambiarse.
		if user.LastLoginAt == nil {
			for _, m := range active {
				if m.Origin == entity.OriginAdmin {
					resp.RequiresPasswordChange = true
					break
				}
			}
		}

		for _, m := range active {
			merchantIDs = append(merchantIDs, m.MerchantID)
			merchant, err := uc.merchantRepo.GetByID(m.MerchantID)
			if err != nil {
				return nil, err
			}
			name := ""
			if merchant != nil {
				name = merchant.Name
			}
			resp.Merchants = append(resp.Merchants, dto.MerchantInfo{ID: m.MerchantID, Name: name})
		}
	} else if user.MerchantID != nil {
		resp.MerchantID = *user.MerchantID
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
		user.ID, user.Email, user.Name, user.Role, resp.MerchantID, merchantIDs)
	if err != nil {
		return nil, err
	}
	resp.Token = token

	// El último acceso se estampa recién después del cambio de contraseña
	// pendiente; así el flag sobrevive a logins repetidos sin cambiar.
	if !resp.RequiresPasswordChange {
		if err := uc.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ChangePassword valida la contraseña actual, guarda la nueva y estampa el
// último acceso (lo que apaga el requisito de cambio para el próximo login).
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if in.NewPassword != in.ConfirmPassword {
		return domain.ErrInvalidInput
	}
	if len(in.NewPassword) < 6 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hash)
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	return uc.userRepo.UpdateLastLogin(user.ID, now)
}
