package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	// Page titles
	message.SetString(lang, "title.signup", "%s | Criar Conta")
	message.SetString(lang, "title.login", "%s | Entrar")
	message.SetString(lang, "title.dashboard", "%s | Painel")
	message.SetString(lang, "title.commitment_new", "%s | Novo Compromisso")
	message.SetString(lang, "title.commitment_resolve", "%s | Resolver Compromisso")

	// Shared navigation
	message.SetString(lang, "nav.dashboard", "Painel")
	message.SetString(lang, "nav.new_commitment", "Novo compromisso")
	message.SetString(lang, "nav.logout", "Sair")
	message.SetString(lang, "nav.signed_in_as", "Conectado como %s")
	message.SetString(lang, "nav.lang_en", "EN")
	message.SetString(lang, "nav.lang_pt_br", "PT-BR")

	// Sign-up page
	message.SetString(lang, "signup.heading", "Crie sua conta")
	message.SetString(lang, "signup.username", "Nome de usuário")
	message.SetString(lang, "signup.password", "Senha")
	message.SetString(lang, "signup.submit", "Criar conta")
	message.SetString(lang, "signup.have_account", "Já tem uma conta?")
	message.SetString(lang, "signup.login_link", "Entrar")

	// Log-in page
	message.SetString(lang, "login.heading", "Bem-vindo de volta")
	message.SetString(lang, "login.username", "Nome de usuário")
	message.SetString(lang, "login.password", "Senha")
	message.SetString(lang, "login.submit", "Entrar")
	message.SetString(lang, "login.no_account", "Ainda não tem conta?")
	message.SetString(lang, "login.signup_link", "Criar conta")

	// Dashboard
	message.SetString(lang, "dashboard.heading", "Seus compromissos")
	message.SetString(lang, "dashboard.empty", "Nenhum compromisso ainda. Declare o primeiro.")
	message.SetString(lang, "dashboard.declare", "Declarar um compromisso")
	message.SetString(lang, "dashboard.deadline", "Prazo")
	message.SetString(lang, "dashboard.confidence", "Confiança")
	message.SetString(lang, "dashboard.notes", "Notas")
	message.SetString(lang, "dashboard.overdue", "Atrasado")
	message.SetString(lang, "dashboard.resolve", "Resolver")
	message.SetString(lang, "dashboard.status.open", "Aberto")
	message.SetString(lang, "dashboard.status.completed", "Concluído")
	message.SetString(lang, "dashboard.status.failed", "Não cumprido")

	// Calibration panel
	message.SetString(lang, "stats.heading", "Calibração")
	message.SetString(lang, "stats.open", "Abertos")
	message.SetString(lang, "stats.completed", "Concluídos")
	message.SetString(lang, "stats.failed", "Não cumpridos")
	message.SetString(lang, "stats.kept_rate", "Taxa de cumprimento")
	message.SetString(lang, "stats.avg_confidence", "Confiança média declarada")
	message.SetString(lang, "stats.avg_confidence_completed", "Confiança média quando concluído")
	message.SetString(lang, "stats.avg_confidence_failed", "Confiança média quando não cumprido")
	message.SetString(lang, "stats.resolved_none", "Nada resolvido ainda.")

	// New commitment page
	message.SetString(lang, "commitment_new.heading", "Declarar um compromisso")
	message.SetString(lang, "commitment_new.text", "O que você vai fazer?")
	message.SetString(lang, "commitment_new.confidence", "Quão confiante você está? (0-100)")
	message.SetString(lang, "commitment_new.deadline", "Prazo")
	message.SetString(lang, "commitment_new.submit", "Declarar")
	message.SetString(lang, "commitment_new.back", "Voltar ao painel")

	// Resolve page
	message.SetString(lang, "commitment_resolve.heading", "Resolver compromisso")
	message.SetString(lang, "commitment_resolve.declared_confidence", "Você declarou %d%% de confiança.")
	message.SetString(lang, "commitment_resolve.deadline", "Prazo: %s")
	message.SetString(lang, "commitment_resolve.outcome", "Resultado")
	message.SetString(lang, "commitment_resolve.completed", "Concluído")
	message.SetString(lang, "commitment_resolve.failed", "Não cumprido")
	message.SetString(lang, "commitment_resolve.notes", "Notas do resultado (opcional)")
	message.SetString(lang, "commitment_resolve.submit", "Registrar resultado")
	message.SetString(lang, "commitment_resolve.back", "Voltar ao painel")

	// Form and request errors
	message.SetString(lang, "error.credentials_required", "Nome de usuário e senha são obrigatórios.")
	message.SetString(lang, "error.username_invalid", "O nome de usuário deve ter de 3 a 32 caracteres: letras minúsculas, dígitos, ponto, hífen ou sublinhado.")
	message.SetString(lang, "error.password_too_short", "A senha deve ter pelo menos 8 caracteres.")
	message.SetString(lang, "error.username_exists", "Nome de usuário já existe.")
	message.SetString(lang, "error.invalid_credentials", "Credenciais inválidas.")
	message.SetString(lang, "error.commitment_text_required", "O texto do compromisso é obrigatório.")
	message.SetString(lang, "error.invalid_deadline", "Formato de prazo inválido.")
	message.SetString(lang, "error.not_open", "Apenas compromissos abertos podem ser resolvidos.")
	message.SetString(lang, "error.invalid_status", "Status selecionado inválido.")
	message.SetString(lang, "error.internal", "Algo deu errado. Tente novamente.")

	// Flash notices
	message.SetString(lang, "flash.welcome", "Bem-vindo ao Troth! Sua conta está pronta.")
	message.SetString(lang, "flash.welcome_back", "Bem-vindo de volta.")
	message.SetString(lang, "flash.commitment_declared", "Compromisso declarado.")
	message.SetString(lang, "flash.commitment_resolved", "Compromisso resolvido.")
	message.SetString(lang, "flash.logged_out", "Você saiu.")
}
