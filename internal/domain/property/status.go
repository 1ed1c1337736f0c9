package property

// ===============================
// Property Status / Finalidade
// ===============================

type Status string

const (
	StatusDisponivel Status = "disponivel"
	StatusVendido    Status = "vendido"
	StatusAlugado    Status = "alugado"
	StatusReservado  Status = "reservado"
)

type Finalidade string

const (
	FinalidadeVenda   Finalidade = "venda"
	FinalidadeAluguel Finalidade = "aluguel"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusDisponivel, StatusVendido, StatusAlugado, StatusReservado:
		return true
	}
	return false
}

func ValidFinalidade(f string) bool {
	switch Finalidade(f) {
	case FinalidadeVenda, FinalidadeAluguel:
		return true
	}
	return false
}

// StatusAfterDeal é o status do imóvel depois de fechar negócio:
// venda → vendido, aluguel → alugado.
func StatusAfterDeal(tipo string) Status {
	if Finalidade(tipo) == FinalidadeVenda {
		return StatusVendido
	}
	return StatusAlugado
}
