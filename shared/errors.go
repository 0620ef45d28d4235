package shared

import "errors"

// Erros sentinela do núcleo do marketplace. Os handlers os traduzem para
// códigos HTTP; os services os propagam com errors.Is.
var (
	// genéricos
	ErrNotFound   = errors.New("registro não encontrado")
	ErrValidation = errors.New("entrada inválida")

	// autenticação / autorização
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
	ErrInvalidToken       = errors.New("token inválido")
	ErrNotOwner           = errors.New("usuário não é o dono do recurso")
	ErrSelfPurchase       = errors.New("vendedor não pode comprar a própria listagem")

	// listagens
	ErrInvalidPrice       = errors.New("preço abaixo do mínimo permitido")
	ErrAlreadyListed      = errors.New("cor já possui uma listagem ativa")
	ErrAlreadyClosed      = errors.New("listagem já foi encerrada")
	ErrListingUnavailable = errors.New("listagem inexistente ou inativa")
	ErrListingAlreadySold = errors.New("listagem já foi vendida a outro comprador")

	// pagamento
	ErrPaymentNotCompleted = errors.New("pagamento não foi concluído no PayPal")
	// Pagamento capturado mas a compra não se concretizou: o valor segue
	// para reconciliação/estorno e o comprador precisa saber disso.
	ErrOrderFailedAfterCapture = errors.New("pagamento capturado, mas o pedido não foi concluído")

	// registro de usuários
	ErrDuplicateUser      = errors.New("username ou email já cadastrado")
	ErrColorPoolExhausted = errors.New("não há cores livres para atribuir")
)
