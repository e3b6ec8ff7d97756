package requisition

import (
	"fmt"
	"strings"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// Number gera o número legível da requisição: <ibge>-<SIGLA>-<YYYYMMDDHHMMSS>-<matricula>.
func Number(unit entity.Unit, requester entity.Actor, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		strings.TrimSpace(unit.CodigoIBGE),
		strings.ToUpper(strings.TrimSpace(unit.SiglaSecretaria)),
		now.Format("20060102150405"),
		strings.TrimSpace(requester.Matricula),
	)
}
