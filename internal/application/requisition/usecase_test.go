package requisition_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
	rules "github.com/duarteol2000/sisreq/internal/domain/requisition"
	"github.com/duarteol2000/sisreq/internal/infrastructure/memory"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

var (
	scope = entity.Scope{PrefeituraID: "pref-1", SecretariaID: "sec-1"}
	other = entity.Scope{PrefeituraID: "pref-1", SecretariaID: "sec-2"}

	admin    = entity.Actor{UserID: "admin-1", Matricula: "A001", Role: entity.RoleAdmin}
	employee = entity.Actor{UserID: "func-1", Matricula: "F042", Role: entity.RoleEmployee}
)

type fixture struct {
	store *memory.Store
	uc    *requisition.UseCase
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		clock: time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
	}
	f.store.PutUnit(entity.Unit{Scope: scope, CodigoIBGE: " 2304400 ", SiglaSecretaria: "sead"})
	f.store.PutUnit(entity.Unit{Scope: other, CodigoIBGE: "2304400", SiglaSecretaria: "SME"})
	f.uc = requisition.NewUseCase(f.store, f.store.Units(), f.store.Requisitions(), f.store.Receipts(), logger.Nop()).
		WithClock(func() time.Time {
			f.clock = f.clock.Add(time.Second)
			return f.clock
		})
	return f
}

func (f *fixture) material(t *testing.T, s entity.Scope, code string, onHand int, active bool) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:             uuid.New().String(),
		Scope:          s,
		Code:           code,
		Name:           "Material " + code,
		Unit:           entity.UnitPiece,
		QuantityOnHand: onHand,
		Active:         active,
	}
	require.NoError(t, f.store.Materials().Create(context.Background(), m))
	return m
}

func (f *fixture) onHand(t *testing.T, id string) int {
	t.Helper()
	m, err := f.store.Materials().GetByID(context.Background(), scope, id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.QuantityOnHand
}

func line(id string, qty int) requisition.CartLine {
	return requisition.CartLine{MaterialID: id, Quantity: strconv.Itoa(qty)}
}

func (f *fixture) create(t *testing.T, actor entity.Actor, lines ...requisition.CartLine) *entity.Requisition {
	t.Helper()
	req, err := f.uc.Create(context.Background(), requisition.CreateInput{Scope: scope, Requester: actor, Lines: lines})
	require.NoError(t, err)
	return req
}

func releaseAll(req *entity.Requisition) []rules.Decision {
	out := make([]rules.Decision, 0, len(req.Items))
	for _, it := range req.Items {
		out = append(out, rules.Decision{ItemID: it.ID, ReleaseAll: true})
	}
	return out
}

func (f *fixture) analyze(t *testing.T, req *entity.Requisition, decisions []rules.Decision) *entity.Requisition {
	t.Helper()
	out, err := f.uc.Analyze(context.Background(), requisition.AnalyzeInput{
		Scope: scope, RequisitionID: req.ID, Decisions: decisions, Approver: admin,
	})
	require.NoError(t, err)
	return out
}

func TestCreate_FiltraCarrinho(t *testing.T) {
	f := newFixture(t)
	papel := f.material(t, scope, "P1", 10, true)
	semSaldo := f.material(t, scope, "P2", 0, true)
	inativo := f.material(t, scope, "P3", 5, false)
	outraUnidade := f.material(t, other, "P4", 5, true)

	req := f.create(t, employee,
		line(papel.ID, 15), // acima do saldo: mantido, sem pré-checagem
		line(semSaldo.ID, 1),
		line(inativo.ID, 1),
		line(outraUnidade.ID, 1),
		line("nao-e-uuid", 3),
		line(papel.ID, 0),
		requisition.CartLine{MaterialID: papel.ID, Quantity: "dez"},
		requisition.CartLine{},
	)

	require.Len(t, req.Items, 1)
	assert.Equal(t, papel.ID, req.Items[0].MaterialID)
	assert.Equal(t, 15, req.Items[0].QuantityRequested)
	assert.Equal(t, 0, req.Items[0].QuantityReleased)
	assert.Equal(t, entity.StatusPending, req.Status)
	assert.Equal(t, "2304400-SEAD-20240305093001-F042", req.Number)
	assert.Equal(t, 10, f.onHand(t, papel.ID), "criação não mexe no estoque")
}

func TestCreate_CarrinhoSemItensValidosNaoPersiste(t *testing.T) {
	f := newFixture(t)
	semSaldo := f.material(t, scope, "P1", 0, true)
	outraUnidade := f.material(t, other, "P2", 8, true)
	ctx := context.Background()

	cases := map[string][]requisition.CartLine{
		"vazio":                  nil,
		"só linhas malformadas":  {line("x", 2), {MaterialID: uuid.New().String(), Quantity: "-1"}},
		"só materiais filtrados": {line(semSaldo.ID, 2), line(outraUnidade.ID, 1)},
		"material inexistente":   {line(uuid.New().String(), 1)},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, requisition.CreateInput{Scope: scope, Requester: employee, Lines: lines})
			assert.ErrorIs(t, err, domain.ErrEmptyCart)
		})
	}

	list, err := f.uc.List(ctx, scope, repository.RequisitionFilter{}, admin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_SetorPadraoDoSolicitante(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "P1", 3, true)
	setor := "setor-7"
	actor := employee
	actor.SetorID = &setor

	req := f.create(t, actor, line(m.ID, 1))
	require.NotNil(t, req.SetorID)
	assert.Equal(t, setor, *req.SetorID)
}

func TestAnalyze_LimitaLiberacaoEDerivaStatus(t *testing.T) {
	f := newFixture(t)
	a := f.material(t, scope, "A", 50, true)
	b := f.material(t, scope, "B", 50, true)
	n := func(v int) *int { return &v }

	cases := []struct {
		name      string
		decisions func(items []entity.RequisitionItem) []rules.Decision
		released  []int
		status    entity.RequisitionStatus
	}{
		{
			name: "liberar tudo aprova",
			decisions: func(it []entity.RequisitionItem) []rules.Decision {
				return []rules.Decision{{ItemID: it[0].ID, ReleaseAll: true}, {ItemID: it[1].ID, ReleaseAll: true}}
			},
			released: []int{5, 3},
			status:   entity.StatusApproved,
		},
		{
			name: "manual acima do solicitado é limitado",
			decisions: func(it []entity.RequisitionItem) []rules.Decision {
				return []rules.Decision{{ItemID: it[0].ID, ManualQuantity: n(99)}, {ItemID: it[1].ID, ManualQuantity: n(-2)}}
			},
			released: []int{5, 0},
			status:   entity.StatusPartiallyApproved,
		},
		{
			name: "sem quantidade nega",
			decisions: func(it []entity.RequisitionItem) []rules.Decision {
				return []rules.Decision{{ItemID: it[0].ID}, {ItemID: it[1].ID}}
			},
			released: []int{0, 0},
			status:   entity.StatusDenied,
		},
		{
			name: "item desconhecido é ignorado",
			decisions: func(it []entity.RequisitionItem) []rules.Decision {
				return []rules.Decision{{ItemID: "inexistente", ReleaseAll: true}, {ItemID: it[0].ID, ManualQuantity: n(2)}}
			},
			released: []int{2, 0},
			status:   entity.StatusPartiallyApproved,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.create(t, employee, line(a.ID, 5), line(b.ID, 3))
			out := f.analyze(t, req, tc.decisions(req.Items))

			assert.Equal(t, tc.status, out.Status)
			stored, err := f.uc.Get(context.Background(), scope, req.ID)
			require.NoError(t, err)
			require.Len(t, stored.Items, 2)
			for i, it := range stored.Items {
				assert.Equal(t, tc.released[i], it.QuantityReleased)
				assert.GreaterOrEqual(t, it.QuantityReleased, 0)
				assert.LessOrEqual(t, it.QuantityReleased, it.QuantityRequested)
			}
			require.NotNil(t, stored.ApproverID)
			assert.Equal(t, admin.UserID, *stored.ApproverID)
			assert.NotNil(t, stored.ApprovedAt)
		})
	}
}

func TestAnalyze_ReanaliseRecarimbaAprovacao(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "A", 10, true)
	req := f.create(t, employee, line(m.ID, 4))

	first := f.analyze(t, req, []rules.Decision{{ItemID: req.Items[0].ID}})
	assert.Equal(t, entity.StatusDenied, first.Status)
	firstAt := *first.ApprovedAt

	second := f.analyze(t, req, releaseAll(req))
	assert.Equal(t, entity.StatusApproved, second.Status)
	assert.True(t, second.ApprovedAt.After(firstAt))
}

func TestAnalyze_SomenteAdministrador(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "A", 10, true)
	req := f.create(t, employee, line(m.ID, 4))

	_, err := f.uc.Analyze(context.Background(), requisition.AnalyzeInput{
		Scope: scope, RequisitionID: req.ID, Decisions: releaseAll(req), Approver: employee,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConfirmDelivery_LimitaAoSaldoVivo(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	req := f.create(t, employee, line(m.ID, 15))
	analyzed := f.analyze(t, req, releaseAll(req))
	require.Equal(t, entity.StatusApproved, analyzed.Status)
	require.Equal(t, 15, analyzed.Items[0].QuantityReleased)

	receipt, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Equal(t, 0, f.onHand(t, m.ID))
	stored, err := f.uc.Get(ctx, scope, req.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Items[0].QuantityReleased, "liberação reconciliada com o saldo")
	assert.Equal(t, entity.StatusApproved, stored.Status, "a entrega não altera o status")
	assert.NotNil(t, stored.DeliveredAt)
	assert.Equal(t, req.ID, receipt.RequisitionID)
	assert.Equal(t, admin.UserID, receipt.IssuedBy)
}

func TestConfirmDelivery_SaldoZeroZeraLiberacao(t *testing.T) {
	f := newFixture(t)
	a := f.material(t, scope, "A", 3, true)
	b := f.material(t, scope, "B", 20, true)
	ctx := context.Background()

	req := f.create(t, employee, line(a.ID, 3), line(b.ID, 6))
	f.analyze(t, req, releaseAll(req))

	// outro caminho zera o saldo de A entre a análise e a entrega
	require.NoError(t, f.store.Materials().UpdateQuantity(ctx, a.ID, 0))

	_, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	stored, err := f.uc.Get(ctx, scope, req.ID)
	require.NoError(t, err)
	byMaterial := map[string]int{}
	for _, it := range stored.Items {
		byMaterial[it.MaterialID] = it.QuantityReleased
	}
	assert.Equal(t, 0, byMaterial[a.ID])
	assert.Equal(t, 6, byMaterial[b.ID])
	assert.Equal(t, 0, f.onHand(t, a.ID))
	assert.Equal(t, 14, f.onHand(t, b.ID))
}

func TestConfirmDelivery_Idempotente(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	req := f.create(t, employee, line(m.ID, 4))
	f.analyze(t, req, releaseAll(req))

	first, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)
	delivered, err := f.uc.Get(ctx, scope, req.ID)
	require.NoError(t, err)

	otherAdmin := entity.Actor{UserID: "admin-2", Role: entity.RoleAdmin}
	second, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, otherAdmin)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)
	assert.Equal(t, admin.UserID, second.IssuedBy, "emissor não é trocado")
	assert.Equal(t, 6, f.onHand(t, m.ID), "sem segunda baixa")

	again, err := f.uc.Get(ctx, scope, req.ID)
	require.NoError(t, err)
	assert.Equal(t, *delivered.DeliveredAt, *again.DeliveredAt)
}

func TestConfirmDelivery_SomenteAdministrador(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	req := f.create(t, employee, line(m.ID, 4))

	_, err := f.uc.ConfirmDelivery(context.Background(), scope, req.ID, employee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, f.onHand(t, m.ID))
}

func TestConfirmDelivery_ForaDaUnidade(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	req := f.create(t, employee, line(m.ID, 4))

	_, err := f.uc.ConfirmDelivery(context.Background(), other, req.ID, admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkDelivered(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	req := f.create(t, employee, line(m.ID, 4))
	f.analyze(t, req, releaseAll(req))

	_, err := f.uc.MarkDelivered(ctx, scope, req.ID, admin)
	assert.ErrorIs(t, err, domain.ErrConflict, "entrega ainda não confirmada")

	_, err = f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	closed, err := f.uc.MarkDelivered(ctx, scope, req.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, closed.Status)

	_, err = f.uc.MarkDelivered(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	// ENTREGUE é terminal: reanálise não reabre
	out := f.analyze(t, req, []rules.Decision{{ItemID: req.Items[0].ID}})
	assert.Equal(t, entity.StatusDelivered, out.Status)
}

func TestList_FuncionarioVeSomenteAsProprias(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	mine := f.create(t, employee, line(m.ID, 1))
	f.create(t, admin, line(m.ID, 2))

	list, err := f.uc.List(ctx, scope, repository.RequisitionFilter{}, employee)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	all, err := f.uc.List(ctx, scope, repository.RequisitionFilter{Status: "INVALIDO"}, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2, "status desconhecido é ignorado")

	found, err := f.uc.List(ctx, scope, repository.RequisitionFilter{Search: "a001"}, admin)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, admin.UserID, found[0].RequesterID)

	none, err := f.uc.List(ctx, other, repository.RequisitionFilter{}, admin)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeliveryReport(t *testing.T) {
	f := newFixture(t)
	a := f.material(t, scope, "A", 10, true)
	b := f.material(t, scope, "B", 2, true)
	ctx := context.Background()

	req := f.create(t, employee, line(a.ID, 4), line(b.ID, 5))
	f.analyze(t, req, releaseAll(req))

	report, err := f.uc.DeliveryReport(ctx, scope, req.ID)
	require.NoError(t, err)
	assert.Nil(t, report.Receipt)
	assert.Equal(t, 9, report.TotalConsumed)

	receipt, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	report, err = f.uc.DeliveryReport(ctx, scope, req.ID)
	require.NoError(t, err)
	require.NotNil(t, report.Receipt)
	assert.Equal(t, receipt.ID, report.Receipt.ID)
	assert.Equal(t, 6, report.TotalConsumed, "4 de A + 2 de B após a reconciliação")

	_, err = f.uc.DeliveryReport(ctx, other, req.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmDelivery_ConcorrenteNaoNegativaSaldo(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	const n = 8
	reqs := make([]*entity.Requisition, n)
	for i := range reqs {
		reqs[i] = f.create(t, employee, line(m.ID, 3))
		f.analyze(t, reqs[i], releaseAll(reqs[i]))
	}

	uc := requisition.NewUseCase(f.store, f.store.Units(), f.store.Requisitions(), f.store.Receipts(), logger.Nop())
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ConfirmDelivery(ctx, scope, reqs[i].ID, admin)
		}(i)
	}
	wg.Wait()

	total := 0
	for i, req := range reqs {
		require.NoError(t, errs[i])
		stored, err := f.uc.Get(ctx, scope, req.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.DeliveredAt)
		for _, it := range stored.Items {
			assert.GreaterOrEqual(t, it.QuantityReleased, 0)
			total += it.QuantityReleased
		}
	}
	assert.Equal(t, 0, f.onHand(t, m.ID))
	assert.Equal(t, 10, total, "liberado soma exatamente o saldo inicial")
}

func TestAnalyze_AposEntregaNaoAlteraLiberacao(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 5, true)
	ctx := context.Background()

	// duas linhas do mesmo material: a entrega limita a segunda ao que sobrou
	req := f.create(t, employee, line(m.ID, 4), line(m.ID, 4))
	f.analyze(t, req, releaseAll(req))
	_, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	delivered, err := f.uc.DeliveryReport(ctx, scope, req.ID)
	require.NoError(t, err)
	require.Equal(t, 5, delivered.TotalConsumed)
	assert.Equal(t, 0, f.onHand(t, m.ID))

	out, err := f.uc.Analyze(ctx, requisition.AnalyzeInput{
		Scope: scope, RequisitionID: req.ID, Decisions: releaseAll(req), AdminNote: "revisado", Approver: admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "revisado", out.AdminNote)

	report, err := f.uc.DeliveryReport(ctx, scope, req.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalConsumed, "consumo continua igual ao que saiu do estoque")
	released := []int{}
	for _, it := range report.Requisition.Items {
		released = append(released, it.QuantityReleased)
	}
	assert.ElementsMatch(t, []int{4, 1}, released)
	assert.Equal(t, 0, f.onHand(t, m.ID))
}

func TestReceipt_FuncionarioSoVeRecibosProprios(t *testing.T) {
	f := newFixture(t)
	m := f.material(t, scope, "M", 10, true)
	ctx := context.Background()

	req := f.create(t, employee, line(m.ID, 2))
	f.analyze(t, req, releaseAll(req))
	issued, err := f.uc.ConfirmDelivery(ctx, scope, req.ID, admin)
	require.NoError(t, err)

	receipts := requisition.NewReceiptUseCase(f.store.Receipts(), f.store.Requisitions(), f.store.Units(), nil)

	got, err := receipts.Get(ctx, scope, issued.ID, employee)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)

	_, err = receipts.Get(ctx, scope, issued.ID, admin)
	require.NoError(t, err)

	stranger := entity.Actor{UserID: "func-2", Role: entity.RoleEmployee}
	_, err = receipts.Get(ctx, scope, issued.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = receipts.Get(ctx, other, issued.ID, admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
