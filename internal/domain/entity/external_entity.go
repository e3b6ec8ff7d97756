package entity

// externalEntities órgãos municipais externos à secretaria (empréstimos e devoluções).
var externalEntities = map[string]string{
	"CONTROLADORIA_GERAL":             "Controladoria Geral do Município",
	"FMS_HOSPITAL_MUNICIPAL_JEH":      "FMS - HOSPITAL MUNICIPAL JOAO ELISIO DE HOLANDA",
	"FCDS":                            "Fundação de Cultura e Desenvolvimento Social – FCDS",
	"FMAS":                            "FUNDO MUNICIPAL DE ASSISTENCIA SOCIAL",
	"GABINETE_PREFEITO":               "Gabinete do Prefeito",
	"GABINETE_VICE_PREFEITO":          "Gabinete do Vice-Prefeito",
	"HOSPITAL_MUNICIPAL_JEH":          "Hospital Municipal João Elísio de Holanda",
	"OUVIDORIA_GERAL":                 "Ouvidoria Geral do Município",
	"PROCURADORIA_GERAL":              "Procuradoria Geral do Município",
	"SEC_AGRICULTURA_FAMILIAR":        "Secretaria de Agricultura Familiar",
	"SEC_ASSISTENCIA_SOCIAL":          "Secretaria de Assistência Social e Segurança Alimentar",
	"SEC_CIENCIA_TECNOLOGIA":          "Secretaria de Ciência, Tecnologia, Inovação e Formação Tecnológica",
	"SEC_COMUNICACAO":                 "Secretaria de Comunicação",
	"SEC_DESENVOLVIMENTO_ECONOMICO":   "Secretaria de Desenvolvimento Econômico",
	"SEC_EDUCACAO":                    "Secretaria de Educação",
	"SEC_ESPORTE":                     "Secretaria de Esporte",
	"SEC_GESTAO_ORCAMENTO_FINANCAS":   "Secretaria de Gestão, Orçamento e Finanças",
	"SEC_GOVERNO":                     "Secretaria de Governo",
	"SEC_INCLUSAO_CIDADANIA":          "Secretaria de Inclusão e Cidadania",
	"SEC_INFRAESTRUTURA":              "Secretaria de Infraestrutura, Mobilidade e Controle Urbano",
	"SEC_JUVENTUDE_LAZER":             "Secretaria de Juventude e Lazer",
	"SEC_RECURSOS_HUMANOS":            "Secretaria de Recursos Humanos e Patrimoniais",
	"SEC_SAUDE":                       "Secretaria de Saúde",
	"SEC_SEGURANCA_URBANA":            "Secretaria de Segurança Urbana",
	"SEC_BEM_ESTAR_ANIMAL":            "Secretaria do Bem-Estar Animal",
	"SEC_MEIO_AMBIENTE":               "Secretaria do Meio Ambiente",
	"SEC_TRABALHO_EMPREGO":            "Secretaria do Trabalho, Emprego e Empreendedorismo",
	"SEC_POVOS_ORIGINARIOS":           "Secretaria dos Povos Originários",
	"SEC_ESP_FAMILIA":                 "Secretaria Especial da Família",
	"SEC_ESP_MULHER_DH":               "Secretaria Especial de Empoderamento da Mulher e dos Direitos Humanos",
	"SEC_ESP_INTEGRACAO_POLITICAS":    "Secretaria Especial de Integração de Políticas Sociais",
	"SEC_ESP_PARCEIRAS_CONCESSOES":    "Secretaria Especial de Parcerias e Concessões",
	"SEC_ESP_RELACOES_INSTITUCIONAIS": "Secretaria Especial de Relações Institucionais",
}

// KnownExternalEntity indica se o código pertence à tabela de órgãos externos.
func KnownExternalEntity(code string) bool {
	_, ok := externalEntities[code]
	return ok
}

// ExternalEntityName nome de exibição do órgão.
func ExternalEntityName(code string) string {
	return externalEntities[code]
}
