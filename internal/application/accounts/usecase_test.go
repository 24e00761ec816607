package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository/repotest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	merchantID = "merchant-1"
	customerID = "user-1"
	adminID    = "admin-1"
)

type fixture struct {
	uc     *accounts.AccountUseCase
	stores *repotest.Stores
}

// newFixture arma un comercio con una vinculación en el estado dado.
func newFixture(t *testing.T, status int) (*fixture, string) {
	t.Helper()
	stores := repotest.NewStores()
	now := time.Now()
	require.NoError(t, stores.Merchants.Create(&entity.Merchant{
		ID: merchantID, Name: "Almacén Demo", Email: "demo@almacen.test",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	m := &entity.Membership{
		ID: "memb-1", UserID: customerID, MerchantID: merchantID,
		FirstName: "Juana", LastName: "Gómez", Email: "juana@example.test",
		Status: status, Origin: entity.OriginSelf,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, stores.Memberships.Create(m))

	uc := accounts.NewAccountUseCase(
		&repotest.TxRunner{S: stores},
		stores.Accounts, stores.Memberships, stores.Movements,
	)
	return &fixture{uc: uc, stores: stores}, m.ID
}

// openAccount abre la cuenta de la vinculación (debe estar activa).
func openAccount(t *testing.T, f *fixture, membershipID string) *entity.Account {
	t.Helper()
	acc, err := f.uc.Open(context.Background(), membershipID, merchantID)
	require.NoError(t, err)
	require.NotNil(t, acc)
	return acc
}

func debitRequest(amount string) dto.RegisterMovementRequest {
	return dto.RegisterMovementRequest{
		Type:    entity.MovementTypeDebit,
		Amount:  decimal.RequireFromString(amount),
		Details: "Compra de almacén",
		DueDate: time.Now().AddDate(0, 0, 30),
	}
}

func creditRequest(amount string) dto.RegisterMovementRequest {
	return dto.RegisterMovementRequest{
		Type:    entity.MovementTypeCredit,
		Amount:  decimal.RequireFromString(amount),
		Details: "Pago en efectivo",
		DueDate: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura
// ──────────────────────────────────────────────────────────────────────────────

// Abrir dos veces devuelve la misma cuenta sin duplicar filas.
func TestOpen_Idempotente(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)

	first := openAccount(t, f, membershipID)
	second := openAccount(t, f, membershipID)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CreditLimit.IsZero(), "la cuenta nace con límite cero")
}

// Una vinculación pendiente no tiene cuenta: primero aprueba el comercio.
func TestOpen_VinculacionPendienteRechazada(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusPending)

	_, err := f.uc.Open(context.Background(), membershipID, merchantID)
	assert.ErrorIs(t, err, domain.ErrMembershipNotActive)
}

func TestOpen_VinculacionRechazadaRechazada(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusRejected)

	_, err := f.uc.Open(context.Background(), membershipID, merchantID)
	assert.ErrorIs(t, err, domain.ErrMembershipNotActive)
}

// Otro comercio no abre (ni espía, vía la devolución idempotente) la cuenta
// de una vinculación ajena.
func TestOpen_ComercioAjenoProhibido(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	openAccount(t, f, membershipID)

	_, err := f.uc.Open(context.Background(), membershipID, "otro-comercio")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y saldo
// ──────────────────────────────────────────────────────────────────────────────

// Dos fiados y un pago: el saldo y el disponible salen del log, no de una columna.
func TestRegisterMovement_SaldoDerivado(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	require.NoError(t, f.uc.SetCreditLimit(context.Background(), acc.ID, merchantID, decimal.NewFromInt(1000)))

	ctx := context.Background()
	_, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("150.50"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("50.00"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, creditRequest("100.00"))
	require.NoError(t, err)

	out, err := f.uc.GetBalance(ctx, acc.ID, merchantID, "")
	require.NoError(t, err)

	assert.True(t, out.Balance.Equal(decimal.RequireFromString("-100.50")))
	assert.True(t, out.AvailableCredit.Equal(decimal.RequireFromString("899.50")))
	assert.Equal(t, "Debe", out.BalanceStatus)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	// Importe cero o negativo.
	in := debitRequest("0")
	_, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tipo desconocido.
	in = debitRequest("10")
	in.Type = 7
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Detalle vacío.
	in = debitRequest("10")
	in.Details = ""
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cuenta bloqueada: rechaza fiados nuevos pero acepta pagos.
func TestRegisterMovement_CuentaBloqueada(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()
	require.NoError(t, f.uc.Block(ctx, acc.ID, merchantID))

	_, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("10.00"))
	assert.ErrorIs(t, err, domain.ErrAccountBlocked)

	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, creditRequest("10.00"))
	assert.NoError(t, err, "los pagos se aceptan aun con la cuenta bloqueada")

	// Desbloqueada, vuelve a aceptar débitos.
	require.NoError(t, f.uc.Unblock(ctx, acc.ID, merchantID))
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("10.00"))
	assert.NoError(t, err)
}

// Otro comercio no asienta en una cuenta ajena.
func TestRegisterMovement_ComercioAjenoProhibido(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)

	_, err := f.uc.RegisterMovement(context.Background(), acc.ID, "otro-comercio", adminID, debitRequest("10.00"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El historial sale en orden cronológico ascendente.
func TestListMovements_OrdenCronologico(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("1.00"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("2.00"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, creditRequest("3.00"))
	require.NoError(t, err)

	out, err := f.uc.ListMovements(ctx, acc.ID, merchantID, "")
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.True(t, out[0].Amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, out[2].Amount.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "Debe", out[0].TypeName)
	assert.Equal(t, "Haber", out[2].TypeName)
}

// El cliente titular consulta su propio saldo; un extraño no.
func TestGetBalance_AutorizacionPorTitular(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	_, err := f.uc.GetBalance(ctx, acc.ID, "", customerID)
	assert.NoError(t, err)

	_, err = f.uc.GetBalance(ctx, acc.ID, "", "otro-usuario")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Límite de crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestSetCreditLimit_NegativoRechazado(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)

	err := f.uc.SetCreditLimit(context.Background(), acc.ID, merchantID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Marca de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkPaid_EstampaYConflictoEnSegundaVez(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("150.50"))
	require.NoError(t, err)
	assert.False(t, mov.Paid)

	paid, err := f.uc.MarkPaid(ctx, mov.ID, merchantID, dto.MarkPaidRequest{Notes: "pagó en efectivo"})
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)
	require.NotNil(t, paid.PaymentNotes)
	assert.Equal(t, "pagó en efectivo", *paid.PaymentNotes)

	// Segunda marca: conflicto, y el asiento original queda intacto.
	_, err = f.uc.MarkPaid(ctx, mov.ID, merchantID, dto.MarkPaidRequest{Notes: "otra nota"})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	after, err := f.stores.Movements.GetByID(mov.ID)
	require.NoError(t, err)
	assert.Equal(t, *paid.PaidAt, *after.PaidAt, "la fecha de pago original no cambia")
	assert.Equal(t, "pagó en efectivo", *after.PaymentNotes)
}

// Marcar pago no altera el saldo: el pago real es un asiento de haber.
func TestMarkPaid_NoAlteraSaldo(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("100.00"))
	require.NoError(t, err)

	before, err := f.uc.GetBalance(ctx, acc.ID, merchantID, "")
	require.NoError(t, err)

	_, err = f.uc.MarkPaid(ctx, mov.ID, merchantID, dto.MarkPaidRequest{})
	require.NoError(t, err)

	after, err := f.uc.GetBalance(ctx, acc.ID, merchantID, "")
	require.NoError(t, err)
	assert.True(t, before.Balance.Equal(after.Balance))
}

func TestMarkPaid_ComercioAjenoProhibido(t *testing.T) {
	f, membershipID := newFixture(t, entity.StatusActive)
	acc := openAccount(t, f, membershipID)
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, acc.ID, merchantID, adminID, debitRequest("10.00"))
	require.NoError(t, err)

	_, err = f.uc.MarkPaid(ctx, mov.ID, "otro-comercio", dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
