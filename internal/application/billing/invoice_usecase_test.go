package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/billing"
	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	payments map[string][]*entity.Payment

	// failCreateItemAt hace fallar la N-ésima llamada a CreateItem (0 = nunca).
	failCreateItemAt int
	createItemCalls  int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string][]*entity.InvoiceItem{},
		payments: map[string][]*entity.Payment{},
	}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	f.createItemCalls++
	if f.failCreateItemAt > 0 && f.createItemCalls == f.failCreateItemAt {
		return errors.New("insert línea: connection reset")
	}
	cp := *item
	f.items[item.InvoiceID] = append(f.items[item.InvoiceID], &cp)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return f.items[invoiceID], nil
}

func (f *fakeInvoiceRepo) ListByCompany(companyID, customerID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if customerID != "" && inv.CustomerID != customerID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) CreatePayment(p *entity.Payment) error {
	cp := *p
	f.payments[p.InvoiceID] = append(f.payments[p.InvoiceID], &cp)
	return nil
}

func (f *fakeInvoiceRepo) GetPaymentsByInvoiceID(invoiceID string) ([]*entity.Payment, error) {
	return f.payments[invoiceID], nil
}

func (f *fakeInvoiceRepo) copyState() (map[string]*entity.Invoice, map[string][]*entity.InvoiceItem, map[string][]*entity.Payment) {
	invoices := make(map[string]*entity.Invoice, len(f.invoices))
	for k, v := range f.invoices {
		cp := *v
		invoices[k] = &cp
	}
	items := make(map[string][]*entity.InvoiceItem, len(f.items))
	for k, v := range f.items {
		items[k] = append([]*entity.InvoiceItem(nil), v...)
	}
	payments := make(map[string][]*entity.Payment, len(f.payments))
	for k, v := range f.payments {
		payments[k] = append([]*entity.Payment(nil), v...)
	}
	return invoices, items, payments
}

// fakeBillingTx simula la transacción: toma una instantánea del estado y la
// restaura si fn falla (rollback).
type fakeBillingTx struct {
	repo *fakeInvoiceRepo
}

func (f *fakeBillingTx) RunBilling(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	invoices, items, payments := f.repo.copyState()
	if err := fn(f.repo); err != nil {
		f.repo.invoices, f.repo.items, f.repo.payments = invoices, items, payments
		return err
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error      { delete(f.users, id); return nil }
func (f *fakeUserRepo) ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error                    { f.companies[c.ID] = c; return nil }

type fakePDF struct{}

func (fakePDF) Generate(company *entity.Company, customer *entity.User, invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// fakeMailer registra los envíos; con fail=true simula un SMTP caído.
type fakeMailer struct {
	fail  bool
	sends []sentMail
}

type sentMail struct {
	to             string
	subject        string
	attachmentName string
}

func (f *fakeMailer) Send(to, subject, body string, attachmentName string, attachment []byte) error {
	if f.fail {
		return errors.New("dial tcp: connection refused")
	}
	f.sends = append(f.sends, sentMail{to: to, subject: subject, attachmentName: attachmentName})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque común
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID  = "co-1"
	customerID = "cust-1"
)

func setupBilling(t *testing.T) (*billing.InvoiceUseCase, *fakeInvoiceRepo, *fakeMailer) {
	t.Helper()
	invoiceRepo := newFakeInvoiceRepo()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		customerID: {
			ID:        customerID,
			CompanyID: companyID,
			Role:      entity.RoleCustomer,
			Email:     "cuenta@cliente.com",
			BillEmail: "pagos@cliente.com",
			FirstName: "María",
			LastName:  "Gómez",
		},
	}}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		companyID: {ID: companyID, Name: "PestOps LLC", TaxRate: "0.081"},
	}}
	mailer := &fakeMailer{}
	tx := &fakeBillingTx{repo: invoiceRepo}
	uc := billing.NewInvoiceUseCase(tx, invoiceRepo, userRepo, companyRepo, fakePDF{}, mailer)
	return uc, invoiceRepo, mailer
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create — totales calculados en servidor
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_RedondeoHalfUp(t *testing.T) {
	uc, _, _ := setupBilling(t)

	// subtotal 10.00, tasa 0.0825 → impuesto exacto 0.825 → Round(2) = 0.83
	rate := dec("0.0825")
	resp, err := uc.Create(context.Background(), companyID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Number:     "INV-1001",
		TaxRate:    &rate,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Servicio general", Quantity: dec("1"), UnitPrice: dec("10.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("10.00")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(dec("0.83")), "impuesto half-up: %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(dec("10.83")), "total: %s", resp.Total)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status, "toda factura nace en draft")
	assert.Equal(t, "María Gómez", resp.CustomerName)
}

func TestInvoiceCreate_TasaDeLaEmpresaPorDefecto(t *testing.T) {
	uc, _, _ := setupBilling(t)

	// Sin tasa en el request → se usa la de la empresa (0.081).
	resp, err := uc.Create(context.Background(), companyID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Number:     "INV-1002",
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Trampa roedores", Quantity: dec("3"), UnitPrice: dec("19.99")},
			{Description: "Cebo", Quantity: dec("1"), UnitPrice: dec("5.00")},
		},
	})
	require.NoError(t, err)

	// subtotal = 3*19.99 + 5.00 = 64.97; impuesto = 64.97*0.081 = 5.26257 → 5.26
	assert.True(t, resp.Subtotal.Equal(dec("64.97")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TaxRate.Equal(dec("0.081")))
	assert.True(t, resp.TaxAmount.Equal(dec("5.26")), "impuesto: %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(dec("70.23")), "total: %s", resp.Total)
	assert.Len(t, resp.Items, 2)
}

func TestInvoiceCreate_ClienteDeOtraEmpresa_NotFound(t *testing.T) {
	uc, _, _ := setupBilling(t)

	_, err := uc.Create(context.Background(), "otra-empresa", dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "x", Quantity: dec("1"), UnitPrice: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un cliente de otra empresa no debe ser visible")
}

func TestInvoiceCreate_SinLineas_InvalidInput(t *testing.T) {
	uc, _, _ := setupBilling(t)

	_, err := uc.Create(context.Background(), companyID, dto.CreateInvoiceRequest{CustomerID: customerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceCreate_FalloEnLineas_NoDejaCabecera(t *testing.T) {
	uc, repo, _ := setupBilling(t)
	repo.failCreateItemAt = 2

	_, err := uc.Create(context.Background(), companyID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Number:     "INV-1003",
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Fumigación", Quantity: dec("1"), UnitPrice: dec("80.00")},
			{Description: "Sellado de accesos", Quantity: dec("1"), UnitPrice: dec("45.00")},
		},
	})
	require.Error(t, err)

	// Cabecera y líneas se insertan en la misma transacción: si una línea
	// falla no debe quedar ninguna factura huérfana.
	assert.Empty(t, repo.invoices)
	assert.Empty(t, repo.items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordPayment / Void
// ──────────────────────────────────────────────────────────────────────────────

func createDraftInvoice(t *testing.T, uc *billing.InvoiceUseCase, total string) string {
	t.Helper()
	rate := decimal.Zero
	resp, err := uc.Create(context.Background(), companyID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Number:     "INV-2001",
		TaxRate:    &rate,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Servicio", Quantity: dec("1"), UnitPrice: dec(total)},
		},
	})
	require.NoError(t, err)
	return resp.ID
}

func TestRecordPayment_ParcialNoCambiaEstado(t *testing.T) {
	uc, _, _ := setupBilling(t)
	id := createDraftInvoice(t, uc, "100.00")

	resp, err := uc.RecordPayment(context.Background(), companyID, id, dto.RecordPaymentRequest{
		Amount: dec("40.00"), Method: "check", Reference: "chk-881",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status,
		"un pago parcial no debe marcar la factura como pagada")
	assert.Len(t, resp.Payments, 1)
}

func TestRecordPayment_CubreTotal_PasaAPaid(t *testing.T) {
	uc, _, _ := setupBilling(t)
	id := createDraftInvoice(t, uc, "100.00")

	_, err := uc.RecordPayment(context.Background(), companyID, id, dto.RecordPaymentRequest{Amount: dec("40.00"), Method: "check"})
	require.NoError(t, err)
	resp, err := uc.RecordPayment(context.Background(), companyID, id, dto.RecordPaymentRequest{Amount: dec("60.00"), Method: "card"})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status,
		"la suma de pagos alcanza el total → paid")
}

func TestRecordPayment_FacturaAnulada_Conflict(t *testing.T) {
	uc, _, _ := setupBilling(t)
	id := createDraftInvoice(t, uc, "50.00")

	_, err := uc.Void(companyID, id)
	require.NoError(t, err)

	_, err = uc.RecordPayment(context.Background(), companyID, id, dto.RecordPaymentRequest{Amount: dec("50.00"), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una factura anulada no acepta pagos")
}

func TestRecordPayment_MontoNoPositivo_InvalidInput(t *testing.T) {
	uc, _, _ := setupBilling(t)
	id := createDraftInvoice(t, uc, "50.00")

	_, err := uc.RecordPayment(context.Background(), companyID, id, dto.RecordPaymentRequest{Amount: dec("-5.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests EmailInvoice — transición draft -> sent
// ──────────────────────────────────────────────────────────────────────────────

func TestEmailInvoice_PrimerEnvioMarcaSent(t *testing.T) {
	uc, repo, mailer := setupBilling(t)
	id := createDraftInvoice(t, uc, "75.00")

	resp, err := uc.EmailInvoice(companyID, id, dto.EmailInvoiceRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusSent, resp.Status)
	require.NotNil(t, resp.SentAt, "el primer envío debe fijar sent_at")

	require.Len(t, mailer.sends, 1)
	assert.Equal(t, "pagos@cliente.com", mailer.sends[0].to,
		"sin destinatario explícito se usa el bill_email del cliente")
	assert.Equal(t, "invoice_INV-2001.pdf", mailer.sends[0].attachmentName)

	stored, _ := repo.GetByID(id)
	assert.Equal(t, entity.InvoiceStatusSent, stored.Status, "el cambio debe persistirse")
}

func TestEmailInvoice_ReenvioNoTocaSentAt(t *testing.T) {
	uc, _, mailer := setupBilling(t)
	id := createDraftInvoice(t, uc, "75.00")

	first, err := uc.EmailInvoice(companyID, id, dto.EmailInvoiceRequest{})
	require.NoError(t, err)
	firstSentAt := *first.SentAt

	time.Sleep(5 * time.Millisecond)
	second, err := uc.EmailInvoice(companyID, id, dto.EmailInvoiceRequest{To: "otro@cliente.com"})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusSent, second.Status)
	assert.True(t, second.SentAt.Equal(firstSentAt),
		"reenvíos no deben mover sent_at")
	require.Len(t, mailer.sends, 2)
	assert.Equal(t, "otro@cliente.com", mailer.sends[1].to,
		"el 'to' del request tiene prioridad")
}

func TestEmailInvoice_SMTPCaido_DeliveryFailed(t *testing.T) {
	uc, repo, mailer := setupBilling(t)
	id := createDraftInvoice(t, uc, "75.00")
	mailer.fail = true

	_, err := uc.EmailInvoice(companyID, id, dto.EmailInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)

	stored, _ := repo.GetByID(id)
	assert.Equal(t, entity.InvoiceStatusDraft, stored.Status,
		"si el envío falla la factura queda como estaba")
	assert.Nil(t, stored.SentAt)
}

func TestGeneratePDF_NombreDeArchivo(t *testing.T) {
	uc, _, _ := setupBilling(t)
	id := createDraftInvoice(t, uc, "75.00")

	data, filename, err := uc.GeneratePDF(companyID, id)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "invoice_INV-2001.pdf", filename)
}
