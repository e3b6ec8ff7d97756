package memory

import (
	"context"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// DemoScope unidade de demonstração semeada por SeedDemo.
var DemoScope = entity.Scope{
	PrefeituraID: "7d1c2f0e-3b7a-4a59-9a8e-0f6b1c2d3e01",
	SecretariaID: "7d1c2f0e-3b7a-4a59-9a8e-0f6b1c2d3e02",
}

// SeedDemo cadastra uma unidade e alguns materiais para uso local com STORAGE_DRIVER=memory.
func SeedDemo(ctx context.Context, s *Store) error {
	s.PutUnit(entity.Unit{
		Scope:           DemoScope,
		NomePrefeitura:  "Prefeitura Municipal de Demonstração",
		CodigoIBGE:      "2304400",
		NomeSecretaria:  "Secretaria de Administração",
		SiglaSecretaria: "SEAD",
	})
	now := time.Now()
	materials := []entity.Material{
		{ID: "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e01", Code: "MAT-001", Name: "Papel A4", Unit: entity.UnitPackage, QuantityOnHand: 120, MinimumQuantity: 40},
		{ID: "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e02", Code: "MAT-002", Name: "Caneta esferográfica azul", Unit: entity.UnitBox, QuantityOnHand: 15, MinimumQuantity: 20},
		{ID: "0b9e1d7a-5c3f-4e21-8d6a-1a2b3c4d5e03", Code: "MAT-003", Name: "Fita adesiva", Unit: entity.UnitRoll, QuantityOnHand: 0, MinimumQuantity: 10},
	}
	repo := s.Materials()
	for i := range materials {
		m := &materials[i]
		m.Scope = DemoScope
		m.Active = true
		m.CreatedAt, m.UpdatedAt = now, now
		if err := repo.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
