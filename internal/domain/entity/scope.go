package entity

// Scope partição de tenant (prefeitura + secretaria) que isola visibilidade e mutação.
// É resolvida fora do núcleo (login/sessão) e passada explicitamente em toda chamada.
type Scope struct {
	PrefeituraID string
	SecretariaID string
}

// Valid indica se os dois componentes da unidade foram informados.
func (s Scope) Valid() bool {
	return s.PrefeituraID != "" && s.SecretariaID != ""
}

// Unit dados cadastrais da unidade usados na numeração das requisições.
type Unit struct {
	Scope
	NomePrefeitura  string
	CodigoIBGE      string
	NomeSecretaria  string
	SiglaSecretaria string
}

// Perfis de usuário.
const (
	RoleAdmin    = "ADMINISTRADOR"
	RoleEmployee = "FUNCIONARIO"
)

// Actor usuário autenticado que executa a operação.
type Actor struct {
	UserID    string
	Matricula string // identificador funcional usado no número da requisição
	SetorID   *string
	Role      string
}

// IsAdmin indica se o ator tem perfil de administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
