package deal

// Contratos e transações compartilham a mesma máquina de estados de
// negócio; só os conjuntos de status diferem.

type TransactionStatus string

const (
	TransactionPendente  TransactionStatus = "pendente"
	TransactionConcluido TransactionStatus = "concluido"
	TransactionCancelado TransactionStatus = "cancelado"
)

type ContractStatus string

const (
	ContractPendente   ContractStatus = "pendente"
	ContractAssinado   ContractStatus = "assinado"
	ContractCancelado  ContractStatus = "cancelado"
	ContractFinalizado ContractStatus = "finalizado"
)

func ValidTransactionStatus(s string) bool {
	switch TransactionStatus(s) {
	case TransactionPendente, TransactionConcluido, TransactionCancelado:
		return true
	}
	return false
}

func ValidContractStatus(s string) bool {
	switch ContractStatus(s) {
	case ContractPendente, ContractAssinado, ContractCancelado, ContractFinalizado:
		return true
	}
	return false
}
