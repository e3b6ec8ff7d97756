package http

import (
	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

func toRequisitionResponse(r *entity.Requisition) dto.RequisitionResponse {
	resp := dto.RequisitionResponse{
		ID:            r.ID,
		Number:        r.Number,
		PrefeituraID:  r.PrefeituraID,
		SecretariaID:  r.SecretariaID,
		RequesterID:   r.RequesterID,
		SetorID:       r.SetorID,
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		RequesterNote: r.RequesterNote,
		AdminNote:     r.AdminNote,
		ApproverID:    r.ApproverID,
		CreatedAt:     r.CreatedAt,
		ApprovedAt:    r.ApprovedAt,
		DeliveredAt:   r.DeliveredAt,
		Items:         make([]dto.RequisitionItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		item := dto.RequisitionItemResponse{
			ID:                it.ID,
			MaterialID:        it.MaterialID,
			QuantityRequested: it.QuantityRequested,
			QuantityReleased:  it.QuantityReleased,
		}
		if it.Material != nil {
			item.MaterialCode = it.Material.Code
			item.MaterialName = it.Material.Name
			item.Unit = it.Material.Unit
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	return &dto.ReceiptResponse{
		ID:            r.ID,
		Number:        r.Number,
		RequisitionID: r.RequisitionID,
		IssuedBy:      r.IssuedBy,
		IssuedAt:      r.IssuedAt,
		Note:          r.Note,
	}
}

func toDeliveryReportResponse(r *requisition.DeliveryReport) dto.DeliveryReportResponse {
	return dto.DeliveryReportResponse{
		Requisition:   toRequisitionResponse(r.Requisition),
		Receipt:       toReceiptResponse(r.Receipt),
		TotalConsumed: r.TotalConsumed,
		PrintedAt:     r.PrintedAt,
	}
}
