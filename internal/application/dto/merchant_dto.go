package dto

import "time"

// MerchantResponse salida pública de un comercio (selector de registro).
type MerchantResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Logo    string `json:"logo,omitempty"`

	EmailNotifications    bool `json:"email_notifications"`
	WhatsAppNotifications bool `json:"whatsapp_notifications"`
	AutoApproveCustomers  bool `json:"auto_approve_customers"`

	CreatedAt time.Time `json:"created_at"`
}

// UpdateMerchantRequest actualización de contacto y preferencias de notificación.
type UpdateMerchantRequest struct {
	Name                  string `json:"name" validate:"required,min=1,max=200"`
	Phone                 string `json:"phone" validate:"omitempty,max=50"`
	Address               string `json:"address" validate:"omitempty,max=300"`
	Logo                  string `json:"logo" validate:"omitempty,max=500"`
	EmailNotifications    bool   `json:"email_notifications"`
	WhatsAppNotifications bool   `json:"whatsapp_notifications"`
	AutoApproveCustomers  bool   `json:"auto_approve_customers"`
}
