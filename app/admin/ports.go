package admin

// Notifier shows transient, toast-style messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(msg string) bool
}

// Alerter shows a blocking alert.
type Alerter interface {
	Alert(msg string)
}

// Navigator moves the user to another page. The target view is always
// built from scratch, even when it matches the current one.
type Navigator interface {
	Navigate(path string)
}

// User-facing messages.
const (
	msgSuccess        = "Solicitação processada com sucesso!"
	msgRequestFailed  = "Ocorreu um erro ao processar a sua solicitação!"
	msgServerFailure  = "Falha na comunicação com o servidor. Por favor, tente mais tarde."
	msgLoadFailed     = "Ocorreu um erro no servidor, tente mais tarde!"
	msgConfirmDelete  = "Deseja realmente excluir este item?"
	titleNewCategory  = "Cadastro de Nova Categoria"
	titleEditCategory = "Editando Categoria: "
)
