package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/infrastructure/excel"
	"github.com/duarteol2000/sisreq/internal/infrastructure/memory"
	"github.com/duarteol2000/sisreq/internal/infrastructure/pdf"
	apphttp "github.com/duarteol2000/sisreq/internal/interfaces/http"
	"github.com/duarteol2000/sisreq/pkg/logger"
	pkgjwt "github.com/duarteol2000/sisreq/pkg/jwt"
)

// Materiais semeados por memory.SeedDemo.
const (
	paperID = "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e01" // 120 em estoque
	penID   = "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e02" // 15 em estoque, mínimo 20
	tapeID  = "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e03" // sem estoque
)

type apiFixture struct {
	app      *fiber.App
	admin    string
	employee string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.SeedDemo(context.Background(), store))
	log := logger.Nop()

	deps := apphttp.RouterDeps{
		Requisitions:     requisition.NewUseCase(store, store.Units(), store.Requisitions(), store.Receipts(), log),
		Receipts:         requisition.NewReceiptUseCase(store.Receipts(), store.Requisitions(), store.Units(), pdf.NewMarotoPDFGenerator()),
		Materials:        inventory.NewMaterialUseCase(store.Materials(), store.Movements(), store.Units(), excel.NewStockSheetGenerator()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, log),
		Replenishment:    inventory.NewReplenishmentUseCase(store.Materials()),
		JWTSecret:        testJWTSecret,
	}
	token := func(userID, role string) string {
		tok, err := pkgjwt.Generate(testJWTSecret, subject(userID, role), testIssuer, testExpMin)
		require.NoError(t, err)
		return "Bearer " + tok
	}
	return &apiFixture{
		app:      apphttp.NewApp(apphttp.AppConfig{Name: "sisreq-test"}, deps),
		admin:    token("admin-1", entity.RoleAdmin),
		employee: token("func-1", entity.RoleEmployee),
	}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) createRequisition(t *testing.T, items ...map[string]any) dto.RequisitionResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/requisitions", f.employee, map[string]any{"items": items})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.RequisitionResponse](t, resp)
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_FluxoCompletoDaRequisicao(t *testing.T) {
	f := newAPI(t)

	req := f.createRequisition(t,
		map[string]any{"material_id": paperID, "quantity": "10"},
		map[string]any{"material_id": tapeID, "quantity": 5},
		map[string]any{"material_id": "nao-e-uuid", "quantity": 1},
		map[string]any{"material_id": penID, "quantity": "abc"},
	)
	require.Len(t, req.Items, 1)
	assert.Equal(t, string(entity.StatusPending), req.Status)
	assert.Equal(t, "Pendente", req.StatusLabel)
	assert.True(t, strings.HasPrefix(req.Number, "2304400-SEAD-"), req.Number)
	assert.True(t, strings.HasSuffix(req.Number, "-F042"), req.Number)

	analysis := map[string]any{"decisions": []map[string]any{{"item_id": req.Items[0].ID, "release_all": true}}}
	resp := f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/analysis", f.employee, analysis)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "funcionário não analisa")

	resp = f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/analysis", f.admin, analysis)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	analyzed := decode[dto.RequisitionResponse](t, resp)
	assert.Equal(t, string(entity.StatusApproved), analyzed.Status)
	assert.Equal(t, 10, analyzed.Items[0].QuantityReleased)

	resp = f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/delivery", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	receipt := decode[dto.ReceiptResponse](t, resp)
	assert.True(t, strings.HasPrefix(receipt.Number, "REC-"))
	assert.Equal(t, req.ID, receipt.RequisitionID)

	resp = f.do(t, http.MethodGet, "/api/requisitions/"+req.ID+"/delivery-report", f.employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.DeliveryReportResponse](t, resp)
	assert.Equal(t, 10, report.TotalConsumed)
	require.NotNil(t, report.Receipt)
	assert.Equal(t, receipt.ID, report.Receipt.ID)

	resp = f.do(t, http.MethodGet, "/api/receipts/"+receipt.ID+"/pdf", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	resp = f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/close", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	closed := decode[dto.RequisitionResponse](t, resp)
	assert.Equal(t, string(entity.StatusDelivered), closed.Status)

	resp = f.do(t, http.MethodGet, "/api/materials", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MaterialListResponse](t, resp)
	for _, m := range list.Items {
		if m.ID == paperID {
			assert.Equal(t, 110, m.QuantityOnHand)
		}
	}
}

func TestAPI_CarrinhoVazio(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/requisitions", f.employee, map[string]any{
		"items": []map[string]any{{"material_id": tapeID, "quantity": 3}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMPTY_CART", body.Code)
}

func TestAPI_IDInvalidoRetorna404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/requisitions/123", f.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestAPI_FuncionarioNaoVeRequisicaoDeOutro(t *testing.T) {
	f := newAPI(t)
	req := f.createRequisition(t, map[string]any{"material_id": paperID, "quantity": 1})

	other, err := pkgjwt.Generate(testJWTSecret, subject("func-2", entity.RoleEmployee), testIssuer, testExpMin)
	require.NoError(t, err)

	resp := f.do(t, http.MethodGet, "/api/requisitions/"+req.ID, "Bearer "+other, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/requisitions", "Bearer "+other, nil)
	list := decode[dto.RequisitionListResponse](t, resp)
	assert.Empty(t, list.Items)

	resp = f.do(t, http.MethodGet, "/api/requisitions?status=pendente", f.admin, nil)
	list = decode[dto.RequisitionListResponse](t, resp)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 50, list.Page.Limit)
}

func TestAPI_FuncionarioNaoVeReciboDeOutro(t *testing.T) {
	f := newAPI(t)
	req := f.createRequisition(t, map[string]any{"material_id": paperID, "quantity": 2})

	analysis := map[string]any{"decisions": []map[string]any{{"item_id": req.Items[0].ID, "release_all": true}}}
	resp := f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/analysis", f.admin, analysis)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = f.do(t, http.MethodPost, "/api/requisitions/"+req.ID+"/delivery", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	receipt := decode[dto.ReceiptResponse](t, resp)

	resp = f.do(t, http.MethodGet, "/api/receipts/"+receipt.ID, f.employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	own := decode[dto.ReceiptResponse](t, resp)
	assert.Equal(t, receipt.Number, own.Number)

	other, err := pkgjwt.Generate(testJWTSecret, subject("func-2", entity.RoleEmployee), testIssuer, testExpMin)
	require.NoError(t, err)
	resp = f.do(t, http.MethodGet, "/api/receipts/"+receipt.ID, "Bearer "+other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestAPI_MovimentoDeEstoque(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/stock/movements", f.employee, map[string]any{
		"material_id": penID, "type": "AJUSTE_POSITIVO", "quantity": 1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/stock/movements", f.admin, map[string]any{
		"material_id": penID, "type": "ajuste_negativo", "quantity": 16,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NEGATIVE_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/stock/movements", f.admin, map[string]any{
		"material_id": penID, "type": "AJUSTE_POSITIVO", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NON_POSITIVE_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/stock/movements", f.admin, map[string]any{
		"material_id": penID, "type": "AJUSTE_POSITIVO", "quantity": 5, "note": "contagem",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "AJUSTE", mov.BusinessReason)

	resp = f.do(t, http.MethodGet, "/api/stock/movements?material_id="+penID, f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, mov.ID, list.Items[0].ID)
}

func TestAPI_ValidacaoDoCorpo(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/stock/movements", f.admin, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)

	rules := map[string]string{}
	for _, fe := range body.Fields {
		rules[fe.Field] = fe.Rule
	}
	assert.Equal(t, "required", rules["RegisterMovementRequest.material_id"])
	assert.Equal(t, "required", rules["RegisterMovementRequest.type"])
}

func TestAPI_EntradaPorCompra(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/stock/purchase-entries", f.admin, map[string]any{
		"document_type":   "nf",
		"document_number": "NF-77",
		"issue_date":      "2024-03-01",
		"description":     "Compra de expediente",
		"lines": []map[string]any{
			{"material_id": tapeID, "quantity": "20", "unit_value": "3,75"},
			{"material_id": penID, "quantity": 0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.PurchaseEntryResponse](t, resp)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, 1, out.Dropped)
	assert.Equal(t, "SUPRIMENTO_FUNDO", out.Movements[0].BusinessReason)

	resp = f.do(t, http.MethodPost, "/api/stock/purchase-entries", f.admin, map[string]any{
		"document_type": "NF", "issue_date": "01/03/2024",
		"lines": []map[string]any{{"material_id": tapeID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ReposicaoEExportacao(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/materials/replenishment", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}](t, resp)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, tapeID, body.Replenishments[0].MaterialID)
	assert.Equal(t, penID, body.Replenishments[1].MaterialID)

	resp = f.do(t, http.MethodGet, "/api/materials/export", f.employee, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/materials/export", f.admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	resp2 := f.do(t, http.MethodGet, "/api/materials/available", f.employee, nil)
	available := decode[dto.MaterialListResponse](t, resp2)
	assert.Len(t, available.Items, 2, "material sem saldo não aparece")
}
