// devtoken emite um JWT para uso local (não há login neste serviço; a sessão é externa).
//
// Uso: go run ./cmd/devtoken -user admin-1 -role ADMINISTRADOR -matricula F001
// Sem -prefeitura/-secretaria usa a unidade de demonstração do armazenamento em memória.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/infrastructure/memory"
	"github.com/duarteol2000/sisreq/pkg/config"
	"github.com/duarteol2000/sisreq/pkg/jwt"
)

func main() {
	user := flag.String("user", "admin-1", "ID do usuário")
	role := flag.String("role", entity.RoleAdmin, "ADMINISTRADOR ou FUNCIONARIO")
	matricula := flag.String("matricula", "F001", "matrícula usada no número da requisição")
	setor := flag.String("setor", "", "setor padrão do usuário")
	prefeitura := flag.String("prefeitura", memory.DemoScope.PrefeituraID, "UUID da prefeitura")
	secretaria := flag.String("secretaria", memory.DemoScope.SecretariaID, "UUID da secretaria")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}
	r := strings.ToUpper(*role)
	if r != entity.RoleAdmin && r != entity.RoleEmployee {
		fmt.Fprintf(os.Stderr, "perfil inválido %q\n", *role)
		os.Exit(2)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Subject{
		UserID:       *user,
		PrefeituraID: *prefeitura,
		SecretariaID: *secretaria,
		SetorID:      *setor,
		Matricula:    *matricula,
		Role:         r,
	}, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gerar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
