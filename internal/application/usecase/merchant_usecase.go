package usecase

import (
	"time"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// MerchantUseCase aplica reglas de negocio para comercios: perfil público
// (selector de registro de clientes) y preferencias de notificación.
type MerchantUseCase struct {
	repo repository.MerchantRepository
}

// NewMerchantUseCase construye el caso de uso con el puerto de persistencia.
func NewMerchantUseCase(repo repository.MerchantRepository) *MerchantUseCase {
	return &MerchantUseCase{repo: repo}
}

// GetByID obtiene un comercio por ID.
func (uc *MerchantUseCase) GetByID(id string) (*dto.MerchantResponse, error) {
	merchant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	return toMerchantResponse(merchant), nil
}

// List lista comercios activos con paginación.
func (uc *MerchantUseCase) List(page dto.PageRequest) ([]*dto.MerchantResponse, error) {
	page.DefaultPage()
	merchants, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MerchantResponse, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, toMerchantResponse(m))
	}
	return out, nil
}

// Update actualiza contacto, preferencias de notificación y política de
// aprobación de autogestión del comercio.
func (uc *MerchantUseCase) Update(id string, in dto.UpdateMerchantRequest) (*dto.MerchantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	merchant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	merchant.Name = in.Name
	merchant.Phone = in.Phone
	merchant.Address = in.Address
	merchant.Logo = in.Logo
	merchant.EmailNotifications = in.EmailNotifications
	merchant.WhatsAppNotifications = in.WhatsAppNotifications
	merchant.AutoApproveCustomers = in.AutoApproveCustomers
	merchant.UpdatedAt = time.Now()
	if err := uc.repo.Update(merchant); err != nil {
		return nil, err
	}
	return toMerchantResponse(merchant), nil
}

func toMerchantResponse(m *entity.Merchant) *dto.MerchantResponse {
	return &dto.MerchantResponse{
		ID:                    m.ID,
		Name:                  m.Name,
		Email:                 m.Email,
		Phone:                 m.Phone,
		Address:               m.Address,
		Logo:                  m.Logo,
		EmailNotifications:    m.EmailNotifications,
		WhatsAppNotifications: m.WhatsAppNotifications,
		AutoApproveCustomers:  m.AutoApproveCustomers,
		CreatedAt:             m.CreatedAt,
	}
}
