package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/auth"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository/repotest"
	pkgjwt "github.com/jhoicas/CuentaCorriente-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "ctacte-test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(stores *repotest.Stores) *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		&repotest.TxRunner{S: stores},
		stores.Users, stores.Merchants, stores.Memberships,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer},
	)
}

func registerMerchantRequest() dto.RegisterMerchantRequest {
	return dto.RegisterMerchantRequest{
		MerchantName:  "Almacén Demo",
		MerchantEmail: "demo@almacen.test",
		AdminName:     "Armando Pérez",
		AdminEmail:    "admin@almacen.test",
		Password:      "admin1234",
	}
}

// seedCustomer crea un usuario cliente con contraseña conocida.
func seedCustomer(t *testing.T, stores *repotest.Stores, id, email, password string, lastLogin *time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, stores.Users.Create(&entity.User{
		ID: id, Email: email, PasswordHash: string(hash), Name: "Cliente Test",
		Role: entity.RoleCustomer, LastLoginAt: lastLogin,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

// seedMembership vincula al usuario con un comercio en el estado/origen dados.
func seedMembership(t *testing.T, stores *repotest.Stores, id, userID, merchantID string, status, origin int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, stores.Memberships.Create(&entity.Membership{
		ID: id, UserID: userID, MerchantID: merchantID,
		FirstName: "Cliente", LastName: "Test", Email: userID + "@example.test",
		Status: status, Origin: origin,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func seedMerchant(t *testing.T, stores *repotest.Stores, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, stores.Merchants.Create(&entity.Merchant{
		ID: id, Name: name, Email: id + "@almacen.test",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de comercio
// ──────────────────────────────────────────────────────────────────────────────

// El alta crea comercio + admin y devuelve un token utilizable.
func TestRegisterMerchant_CreaComercioYAdmin(t *testing.T) {
	stores := repotest.NewStores()
	uc := newUseCase(stores)

	out, err := uc.RegisterMerchant(context.Background(), registerMerchantRequest())
	require.NoError(t, err)
	require.NotEmpty(t, out.MerchantID)
	require.NotEmpty(t, out.Token)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, out.MerchantID, claims.MerchantID)

	admin, err := stores.Users.GetByEmail("admin@almacen.test")
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.NotNil(t, admin.MerchantID)
	assert.Equal(t, out.MerchantID, *admin.MerchantID)
}

// Email de comercio repetido → conflicto antes de escribir nada.
func TestRegisterMerchant_EmailComercioDuplicado(t *testing.T) {
	stores := repotest.NewStores()
	uc := newUseCase(stores)
	ctx := context.Background()

	_, err := uc.RegisterMerchant(ctx, registerMerchantRequest())
	require.NoError(t, err)

	in := registerMerchantRequest()
	in.AdminEmail = "otro-admin@almacen.test"
	_, err = uc.RegisterMerchant(ctx, in)
	assert.ErrorIs(t, err, domain.ErrMerchantEmailExists)
}

// Email de admin ya tomado por otra persona → conflicto.
func TestRegisterMerchant_EmailAdminDuplicado(t *testing.T) {
	stores := repotest.NewStores()
	uc := newUseCase(stores)
	ctx := context.Background()

	_, err := uc.RegisterMerchant(ctx, registerMerchantRequest())
	require.NoError(t, err)

	in := registerMerchantRequest()
	in.MerchantEmail = "otro@almacen.test"
	_, err = uc.RegisterMerchant(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUserEmailExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de cliente (autogestión)
// ──────────────────────────────────────────────────────────────────────────────

// La autogestión deja la vinculación pendiente y no entrega token.
func TestRegisterCustomer_QuedaPendiente(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Demo")
	uc := newUseCase(stores)

	out, err := uc.RegisterCustomer(context.Background(), dto.RegisterCustomerRequest{
		MerchantID: "merchant-1",
		FirstName:  "Juana", LastName: "Gómez",
		Email: "juana@example.test", Password: "secreta1",
	})
	require.NoError(t, err)

	assert.True(t, out.Pending)
	require.NotEmpty(t, out.MembershipID)

	m, err := stores.Memberships.GetByID(out.MembershipID, false)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.StatusPending, m.Status)
	assert.Equal(t, entity.OriginSelf, m.Origin)

	acc, err := stores.Accounts.GetByMembership(out.MembershipID)
	require.NoError(t, err)
	assert.Nil(t, acc, "sin cuenta corriente hasta la aprobación")
}

// Un cliente existente se registra contra un segundo comercio reusando su
// usuario, siempre que la contraseña coincida.
func TestRegisterCustomer_SegundoComercioReusaUsuario(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Uno")
	seedMerchant(t, stores, "merchant-2", "Almacén Dos")
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", nil)
	seedMembership(t, stores, "memb-1", "user-1", "merchant-1", entity.StatusActive, entity.OriginSelf)
	uc := newUseCase(stores)
	ctx := context.Background()

	// Contraseña incorrecta: no se vincula.
	_, err := uc.RegisterCustomer(ctx, dto.RegisterCustomerRequest{
		MerchantID: "merchant-2",
		FirstName:  "Juana", LastName: "Gómez",
		Email: "juana@example.test", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Contraseña correcta: nueva vinculación pendiente, mismo usuario.
	out, err := uc.RegisterCustomer(ctx, dto.RegisterCustomerRequest{
		MerchantID: "merchant-2",
		FirstName:  "Juana", LastName: "Gómez",
		Email: "juana@example.test", Password: "secreta1",
	})
	require.NoError(t, err)

	m, err := stores.Memberships.GetByID(out.MembershipID, false)
	require.NoError(t, err)
	assert.Equal(t, "user-1", m.UserID)
}

// Repetir el registro contra el mismo comercio → conflicto.
func TestRegisterCustomer_VinculacionDuplicada(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Demo")
	uc := newUseCase(stores)
	ctx := context.Background()

	in := dto.RegisterCustomerRequest{
		MerchantID: "merchant-1",
		FirstName:  "Juana", LastName: "Gómez",
		Email: "juana@example.test", Password: "secreta1",
	}
	_, err := uc.RegisterCustomer(ctx, in)
	require.NoError(t, err)

	_, err = uc.RegisterCustomer(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateMembership)
}

// Comercio que no exige aprobación: la autogestión nace Activa con cuenta
// corriente abierta en la misma operación, espejo del alta por administración.
func TestRegisterCustomer_ComercioSinAprobacion(t *testing.T) {
	stores := repotest.NewStores()
	now := time.Now()
	require.NoError(t, stores.Merchants.Create(&entity.Merchant{
		ID: "merchant-1", Name: "Almacén Abierto", Email: "abierto@almacen.test",
		AutoApproveCustomers: true,
		Active:               true, CreatedAt: now, UpdatedAt: now,
	}))
	uc := newUseCase(stores)

	out, err := uc.RegisterCustomer(context.Background(), dto.RegisterCustomerRequest{
		MerchantID: "merchant-1",
		FirstName:  "Juana", LastName: "Gómez",
		Email: "juana@example.test", Password: "secreta1",
	})
	require.NoError(t, err)

	assert.False(t, out.Pending)

	m, err := stores.Memberships.GetByID(out.MembershipID, false)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.StatusActive, m.Status)
	assert.Equal(t, entity.OriginSelf, m.Origin)
	require.NotNil(t, m.ApprovedAt)

	acc, err := stores.Accounts.GetByMembership(out.MembershipID)
	require.NoError(t, err)
	require.NotNil(t, acc, "la cuenta se abre junto con la vinculación")
	assert.True(t, acc.CreditLimit.IsZero())

	// Con la vinculación ya activa, el login entra directo.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "juana@example.test", Password: "secreta1",
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	stores := repotest.NewStores()
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", nil)
	uc := newUseCase(stores)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.test", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "juana@example.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Cliente con todas sus vinculaciones pendientes: credenciales correctas pero
// todavía no puede entrar.
func TestLogin_ClientePendiente(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Demo")
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", nil)
	seedMembership(t, stores, "memb-1", "user-1", "merchant-1", entity.StatusPending, entity.OriginSelf)
	uc := newUseCase(stores)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "juana@example.test", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

// Cliente sin ninguna vinculación viva (p.ej. todas rechazadas): cuenta desactivada.
func TestLogin_ClienteSinVinculacionActiva(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Demo")
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", nil)
	seedMembership(t, stores, "memb-1", "user-1", "merchant-1", entity.StatusRejected, entity.OriginSelf)
	uc := newUseCase(stores)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "juana@example.test", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrAccountDeactivated)
}

// Primer login de un cliente dado de alta por el comercio: debe cambiar la
// contraseña sembrada, y el último acceso NO se estampa hasta que lo haga.
func TestLogin_PrimerIngresoExigeCambioDeContrasena(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Demo")
	seedCustomer(t, stores, "user-1", "juana@example.test", "30123456", nil)
	seedMembership(t, stores, "memb-1", "user-1", "merchant-1", entity.StatusActive, entity.OriginAdmin)
	uc := newUseCase(stores)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "juana@example.test", Password: "30123456"})
	require.NoError(t, err)
	assert.True(t, out.RequiresPasswordChange)

	// El flag sobrevive a logins repetidos mientras no cambie la contraseña.
	out2, err := uc.Login(ctx, dto.LoginRequest{Email: "juana@example.test", Password: "30123456"})
	require.NoError(t, err)
	assert.True(t, out2.RequiresPasswordChange)

	// Cambia la contraseña: el próximo login ya no exige cambio.
	err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "30123456",
		NewPassword:     "nueva-clave",
		ConfirmPassword: "nueva-clave",
	})
	require.NoError(t, err)

	out3, err := uc.Login(ctx, dto.LoginRequest{Email: "juana@example.test", Password: "nueva-clave"})
	require.NoError(t, err)
	assert.False(t, out3.RequiresPasswordChange)
}

// El token del cliente lleva la lista de comercios con vinculación activa.
func TestLogin_ClienteMultiComercio(t *testing.T) {
	stores := repotest.NewStores()
	seedMerchant(t, stores, "merchant-1", "Almacén Uno")
	seedMerchant(t, stores, "merchant-2", "Almacén Dos")
	seedMerchant(t, stores, "merchant-3", "Almacén Tres")
	yesterday := time.Now().Add(-24 * time.Hour)
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", &yesterday)
	seedMembership(t, stores, "memb-1", "user-1", "merchant-1", entity.StatusActive, entity.OriginSelf)
	seedMembership(t, stores, "memb-2", "user-1", "merchant-2", entity.StatusActive, entity.OriginSelf)
	seedMembership(t, stores, "memb-3", "user-1", "merchant-3", entity.StatusPending, entity.OriginSelf)
	uc := newUseCase(stores)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "juana@example.test", Password: "secreta1"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCustomer, out.Role)
	assert.Len(t, out.Merchants, 2, "solo los comercios con vinculación activa")

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"merchant-1", "merchant-2"}, claims.MerchantIDs)
	assert.Empty(t, claims.MerchantID)
}

// Login de admin: token con su comercio, sin lista de comercios.
func TestLogin_AdminConComercio(t *testing.T) {
	stores := repotest.NewStores()
	uc := newUseCase(stores)
	ctx := context.Background()

	reg, err := uc.RegisterMerchant(ctx, registerMerchantRequest())
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@almacen.test", Password: "admin1234"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, reg.MerchantID, out.MerchantID)
	assert.False(t, out.RequiresPasswordChange, "el cambio forzado es solo para clientes sembrados")
	assert.Empty(t, out.Merchants)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_Validaciones(t *testing.T) {
	stores := repotest.NewStores()
	seedCustomer(t, stores, "user-1", "juana@example.test", "secreta1", nil)
	uc := newUseCase(stores)
	ctx := context.Background()

	// Confirmación que no coincide.
	err := uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "secreta1", NewPassword: "nueva-clave", ConfirmPassword: "otra-cosa",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nueva demasiado corta.
	err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "secreta1", NewPassword: "abc", ConfirmPassword: "abc",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Contraseña actual incorrecta.
	err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta", NewPassword: "nueva-clave", ConfirmPassword: "nueva-clave",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
