package customers_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/customers"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository/repotest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc         *customers.MembershipUseCase
	stores     *repotest.Stores
	merchantID string
	adminID    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := repotest.NewStores()
	now := time.Now()
	merchant := &entity.Merchant{
		ID:        "merchant-1",
		Name:      "Almacén Demo",
		Email:     "demo@almacen.test",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, stores.Merchants.Create(merchant))

	mid := merchant.ID
	admin := &entity.User{
		ID:         "admin-1",
		MerchantID: &mid,
		Email:      "admin@almacen.test",
		Name:       "Admin Demo",
		Role:       entity.RoleAdmin,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, stores.Users.Create(admin))

	uc := customers.NewMembershipUseCase(
		&repotest.TxRunner{S: stores},
		stores.Memberships, stores.Merchants, stores.Users, stores.Accounts, stores.Movements,
	)
	return &fixture{uc: uc, stores: stores, merchantID: merchant.ID, adminID: admin.ID}
}

func createRequest() dto.CreateMembershipRequest {
	return dto.CreateMembershipRequest{
		FirstName: "Juana",
		LastName:  "Gómez",
		Email:     "juana@example.test",
		Phone:     "+54 11 5555-1234",
		TaxID:     "30123456",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta por administración
// ──────────────────────────────────────────────────────────────────────────────

// El alta desde el comercio nace Activa, con cuenta corriente y usuario cuya
// contraseña inicial es el DNI.
func TestCreateByMerchant_NaceActivaConCuenta(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.CreateByMerchant(context.Background(), f.merchantID, f.adminID, createRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, out.Status)
	assert.Equal(t, entity.OriginAdmin, out.Origin)
	assert.NotNil(t, out.ApprovedAt, "el alta por administración queda aprobada de entrada")
	require.NotNil(t, out.Account, "debe crearse la cuenta corriente en la misma operación")
	assert.True(t, out.Account.Balance.IsZero())

	// Usuario creado con el DNI como contraseña sembrada.
	user, err := f.stores.Users.GetByEmail("juana@example.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Nil(t, user.LastLoginAt, "nunca inició sesión: el login exigirá cambio de contraseña")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("30123456")))
}

// Segundo alta del mismo cliente en el mismo comercio → conflicto.
func TestCreateByMerchant_VinculacionDuplicada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateByMerchant(context.Background(), f.merchantID, f.adminID, createRequest())
	require.NoError(t, err)

	_, err = f.uc.CreateByMerchant(context.Background(), f.merchantID, f.adminID, createRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicateMembership)
}

// El email de un admin/staff no puede reutilizarse como cliente.
func TestCreateByMerchant_EmailDeStaffRechazado(t *testing.T) {
	f := newFixture(t)
	in := createRequest()
	in.Email = "admin@almacen.test"

	_, err := f.uc.CreateByMerchant(context.Background(), f.merchantID, f.adminID, in)
	assert.ErrorIs(t, err, domain.ErrUserEmailExists)
}

func TestCreateByMerchant_CamposObligatorios(t *testing.T) {
	f := newFixture(t)
	in := createRequest()
	in.TaxID = ""

	_, err := f.uc.CreateByMerchant(context.Background(), f.merchantID, f.adminID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación / rechazo
// ──────────────────────────────────────────────────────────────────────────────

// seedPending crea una vinculación pendiente por autogestión.
func seedPending(t *testing.T, f *fixture, userID string) string {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		ID: userID, Email: userID + "@example.test", Name: "Cliente " + userID,
		Role: entity.RoleCustomer, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.stores.Users.Create(user))
	m := &entity.Membership{
		ID: "memb-" + userID, UserID: userID, MerchantID: f.merchantID,
		FirstName: "Cliente", LastName: userID, Email: user.Email,
		Status: entity.StatusPending, Origin: entity.OriginSelf,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.stores.Memberships.Create(m))
	return m.ID
}

// Pendiente → Activo estampa aprobador y crea la cuenta corriente.
func TestApprove_CreaCuentaYEstampa(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	out, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, out.Status)
	require.NotNil(t, out.ApprovedAt)
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, f.adminID, *out.ApprovedBy)
	require.NotNil(t, out.Account, "la aprobación es el único camino a la cuenta del autogestionado")
}

// Aprobar dos veces: el segundo intento devuelve ErrAlreadyApproved y no toca nada.
func TestApprove_SegundaVezConflicto(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	first, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), membershipID, f.merchantID, "otro-admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	// El aprobador original no cambia.
	after, err := f.uc.GetByID(context.Background(), membershipID, f.merchantID)
	require.NoError(t, err)
	assert.Equal(t, *first.ApprovedBy, *after.ApprovedBy)
}

// Aprobaciones simultáneas de la misma vinculación: exactamente una gana, las
// demás reciben el conflicto sin escribir, y queda una sola cuenta corriente.
func TestApprove_ConcurrentesUnSoloGanador(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	const intentos = 4
	start := make(chan struct{})
	errs := make(chan error, intentos)
	var wg sync.WaitGroup
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	aprobadas, conflictos := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			aprobadas++
		case errors.Is(err, domain.ErrAlreadyApproved):
			conflictos++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, aprobadas)
	assert.Equal(t, intentos-1, conflictos)
	assert.Equal(t, 1, f.stores.Accounts.CountByMembership(membershipID),
		"una sola fila de cuenta por vinculación")
}

// Una vinculación rechazada no puede aprobarse (re-registro = vinculación nueva).
func TestApprove_RechazadaNoSeAprueba(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	_, err := f.uc.Reject(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	assert.ErrorIs(t, err, domain.ErrMembershipRejected)
}

// El rechazo jamás crea cuenta corriente.
func TestReject_NoCreaCuenta(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	out, err := f.uc.Reject(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, out.Status)
	assert.Nil(t, out.Account)

	acc, err := f.stores.Accounts.GetByMembership(membershipID)
	require.NoError(t, err)
	assert.Nil(t, acc)
}

// No se puede rechazar una vinculación ya activa.
func TestReject_ActivaConflicto(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	_, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	_, err = f.uc.Reject(context.Background(), membershipID, f.merchantID, f.adminID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
}

// Otro comercio no puede aprobar una vinculación ajena.
func TestApprove_ComercioAjenoProhibido(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")

	_, err := f.uc.Approve(context.Background(), membershipID, "otro-comercio", f.adminID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

// El filtro status=1 alimenta la cola de pendientes de aprobación.
func TestListByMerchant_FiltroPendientes(t *testing.T) {
	f := newFixture(t)
	pendingID := seedPending(t, f, "user-a")
	approvedID := seedPending(t, f, "user-b")
	_, err := f.uc.Approve(context.Background(), approvedID, f.merchantID, f.adminID)
	require.NoError(t, err)

	pending := entity.StatusPending
	out, err := f.uc.ListByMerchant(context.Background(), f.merchantID, &pending, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, pendingID, out[0].ID)
	assert.Equal(t, entity.StatusPending, out[0].Status)
}

// Dashboard del cliente: nombre de comercio y saldo derivado por vinculación.
func TestListByUser_ConNombreYSaldo(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")
	_, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	acc, err := f.stores.Accounts.GetByMembership(membershipID)
	require.NoError(t, err)
	require.NotNil(t, acc)
	now := time.Now()
	require.NoError(t, f.stores.Movements.Create(&entity.Movement{
		ID: "mov-1", AccountID: acc.ID, Type: entity.MovementTypeDebit,
		Amount: decimal.RequireFromString("150.50"), Details: "Fiado",
		CreatedBy: f.adminID, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	out, err := f.uc.ListByUser(context.Background(), "user-a")
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "Almacén Demo", out[0].MerchantName)
	require.NotNil(t, out[0].Account)
	assert.True(t, out[0].Account.Balance.Equal(decimal.RequireFromString("-150.50")))
	assert.Equal(t, "Debe", out[0].Account.BalanceStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja
// ──────────────────────────────────────────────────────────────────────────────

// La baja apaga vinculación y cuenta pero conserva los movimientos.
func TestDelete_SoftDeleteConservaMovimientos(t *testing.T) {
	f := newFixture(t)
	membershipID := seedPending(t, f, "user-a")
	_, err := f.uc.Approve(context.Background(), membershipID, f.merchantID, f.adminID)
	require.NoError(t, err)

	acc, err := f.stores.Accounts.GetByMembership(membershipID)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, f.stores.Movements.Create(&entity.Movement{
		ID: "mov-1", AccountID: acc.ID, Type: entity.MovementTypeDebit,
		Amount: decimal.NewFromInt(100), Details: "Fiado",
		CreatedBy: f.adminID, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, f.uc.Delete(context.Background(), membershipID, f.merchantID))

	_, err = f.uc.GetByID(context.Background(), membershipID, f.merchantID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gone, err := f.stores.Accounts.GetByID(acc.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la cuenta también se da de baja")

	movs, err := f.stores.Movements.ListByAccount(acc.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "la historia contable nunca se pierde")
}
