package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otienog1/invoice/internal/domain/customer"
	"github.com/otienog1/invoice/internal/domain/invoice"
	"github.com/otienog1/invoice/internal/domain/user"
)

// fakeInvoiceRepo guarda faturas em memória
type fakeInvoiceRepo struct {
	invoices map[string]*invoice.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*invoice.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, i *invoice.Invoice) error {
	r.invoices[i.ID] = i
	return nil
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, tenantID, id string) (*invoice.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok || i.TenantID != tenantID {
		return nil, invoice.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ string, _ invoice.Status, _, _ int) ([]*invoice.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) CountByTenant(_ context.Context, _ string, _ invoice.Status) (int, error) {
	return 0, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, i *invoice.Invoice, _ bool) error {
	r.invoices[i.ID] = i
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, i *invoice.Invoice) error {
	stored, ok := r.invoices[i.ID]
	if !ok {
		return invoice.ErrNotFound
	}
	stored.Status = i.Status
	stored.PaidAmount = i.PaidAmount
	stored.PaymentDate = i.PaymentDate
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, _, id string) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) CountByCustomer(_ context.Context, _, _ string) (int, error) {
	return 0, nil
}

// fakeCustomerRepo guarda clientes em memória
type fakeCustomerRepo struct {
	customers map[string]*customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*customer.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, tenantID, id string) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, errors.New("cliente não encontrado")
	}
	return c, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _, _ string, _, _ int) ([]*customer.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) CountByTenant(_ context.Context, _, _ string) (int, error) {
	return 0, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, _, id string) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) Exists(_ context.Context, tenantID, id string) (bool, error) {
	c, ok := r.customers[id]
	return ok && c.TenantID == tenantID, nil
}

// fakeUserRepo guarda usuários em memória
type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("usuário não encontrado")
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, errors.New("usuário não encontrado")
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// fakeRenderer registra a última projeção renderizada
type fakeRenderer struct {
	lastView invoice.View
	err      error
}

func (f *fakeRenderer) Render(v invoice.View) ([]byte, error) {
	f.lastView = v
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

// fakeSender registra o último envio
type fakeSender struct {
	err        error
	sent       bool
	to         string
	subject    string
	attachment []byte
}

func (f *fakeSender) Send(_ context.Context, to, subject, _ string, _ string, attachment []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = true
	f.to = to
	f.subject = subject
	f.attachment = attachment
	return nil
}

type fixture struct {
	svc      *InvoiceService
	invoices *fakeInvoiceRepo
	renderer *fakeRenderer
	sender   *fakeSender
	inv      *invoice.Invoice
}

func newFixture(t *testing.T, customerEmail string) *fixture {
	t.Helper()

	invoices := newFakeInvoiceRepo()
	customers := newFakeCustomerRepo()
	users := newFakeUserRepo()
	renderer := &fakeRenderer{}
	sender := &fakeSender{}

	u, err := user.NewUser("emissor", "emissor@example.com", "Emissor", "s3nh4-f0rte")
	require.NoError(t, err)
	u.CompanyName = "Emissora LTDA"
	require.NoError(t, users.Create(context.Background(), u))

	c, err := customer.NewCustomer("tenant-1", u.ID, "Cliente A")
	require.NoError(t, err)
	c.Email = customerEmail
	require.NoError(t, customers.Create(context.Background(), c))

	inv := invoice.NewInvoice("tenant-1", u.ID, c.ID)
	qty, _ := decimal.NewFromString("2")
	rate, _ := decimal.NewFromString("50")
	inv.SetItems([]invoice.InvoiceItem{invoice.NewItem("Serviço", qty, rate)})
	require.NoError(t, invoices.Create(context.Background(), inv))

	svc := NewInvoiceService(invoices, customers, users, renderer, sender, noopLogger{})

	return &fixture{svc: svc, invoices: invoices, renderer: renderer, sender: sender, inv: inv}
}

// noopLogger descarta os logs nos testes
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func TestSendInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("sucesso marca como enviada", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")

		sent, err := f.svc.SendInvoice(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)

		assert.Equal(t, invoice.StatusSent, sent.Status)
		assert.True(t, f.sender.sent)
		assert.Equal(t, "cliente@example.com", f.sender.to)
		assert.Contains(t, f.sender.subject, sent.InvoiceNumber)
		assert.Equal(t, []byte("%PDF-fake"), f.sender.attachment)

		stored, err := f.invoices.FindByID(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusSent, stored.Status)
	})

	t.Run("cliente sem email mantém rascunho", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := f.svc.SendInvoice(ctx, "tenant-1", f.inv.ID)
		assert.ErrorIs(t, err, ErrMissingRecipient)
		assert.False(t, f.sender.sent)

		stored, err := f.invoices.FindByID(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDraft, stored.Status)
	})

	t.Run("falha no envio mantém rascunho", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")
		f.sender.err = errors.New("conexão recusada")

		_, err := f.svc.SendInvoice(ctx, "tenant-1", f.inv.ID)
		require.Error(t, err)

		stored, err := f.invoices.FindByID(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDraft, stored.Status)
	})

	t.Run("timeout do envio mantém rascunho", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")
		f.sender.err = ErrDeliveryTimeout

		_, err := f.svc.SendInvoice(ctx, "tenant-1", f.inv.ID)
		assert.ErrorIs(t, err, ErrDeliveryTimeout)

		stored, err := f.invoices.FindByID(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDraft, stored.Status)
	})

	t.Run("transporte ausente responde não configurado", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")
		f.svc.sender = nil

		_, err := f.svc.SendInvoice(ctx, "tenant-1", f.inv.ID)
		assert.ErrorIs(t, err, ErrEmailNotConfigured)
	})

	t.Run("fatura de outro tenant não é encontrada", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")

		_, err := f.svc.SendInvoice(ctx, "tenant-2", f.inv.ID)
		assert.ErrorIs(t, err, invoice.ErrNotFound)
	})
}

func TestGeneratePDF(t *testing.T) {
	ctx := context.Background()

	t.Run("retorna bytes e nome do arquivo", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")

		pdf, filename, err := f.svc.GeneratePDF(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)

		assert.Equal(t, []byte("%PDF-fake"), pdf)
		assert.Equal(t, f.inv.InvoiceNumber+".pdf", filename)

		// Download e envio usam a mesma projeção
		assert.Equal(t, f.inv.InvoiceNumber, f.renderer.lastView.Number)
		assert.Equal(t, "Emissora LTDA", f.renderer.lastView.Sender.CompanyName)
	})

	t.Run("download não altera o status", func(t *testing.T) {
		f := newFixture(t, "cliente@example.com")

		_, _, err := f.svc.GeneratePDF(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)

		stored, err := f.invoices.FindByID(ctx, "tenant-1", f.inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDraft, stored.Status)
	})
}
