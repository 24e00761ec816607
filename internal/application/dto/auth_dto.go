package dto

// RegisterMerchantRequest alta de comercio + usuario administrador (una sola operación).
type RegisterMerchantRequest struct {
	MerchantName    string `json:"merchant_name" validate:"required,min=1,max=200"`
	MerchantEmail   string `json:"merchant_email" validate:"required,email"`
	MerchantPhone   string `json:"merchant_phone" validate:"omitempty,max=50"`
	MerchantAddress string `json:"merchant_address" validate:"omitempty,max=300"`
	AdminName       string `json:"admin_name" validate:"required,min=1,max=200"`
	AdminEmail      string `json:"admin_email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
}

// RegisterMerchantResponse salida del alta de comercio.
type RegisterMerchantResponse struct {
	MerchantID string `json:"merchant_id"`
	Token      string `json:"token"`
}

// RegisterCustomerRequest autogestión: un cliente se registra contra un comercio.
type RegisterCustomerRequest struct {
	MerchantID string `json:"merchant_id" validate:"required,uuid"`
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	TaxID      string `json:"tax_id" validate:"omitempty,max=20"`
}

// RegisterCustomerResponse salida del registro de cliente. No lleva token:
// la vinculación queda pendiente de aprobación por el comercio.
type RegisterCustomerResponse struct {
	MembershipID string `json:"membership_id"`
	Pending      bool   `json:"pending"`
	Message      string `json:"message"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MerchantInfo comercio al que un customer está vinculado (para el selector post-login).
type MerchantInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LoginResponse salida con token JWT y contexto del usuario.
type LoginResponse struct {
	Token                  string         `json:"token"`
	Role                   string         `json:"role"`
	UserName               string         `json:"user_name"`
	MerchantID             string         `json:"merchant_id,omitempty"` // admin/staff
	Merchants              []MerchantInfo `json:"merchants,omitempty"`   // customer multi-comercio
	RequiresPasswordChange bool           `json:"requires_password_change"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
