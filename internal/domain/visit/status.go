package visit

// ===============================
// Visit Status
// ===============================

type Status string

const (
	StatusPendente   Status = "pendente"
	StatusConfirmado Status = "confirmado"
	StatusCancelado  Status = "cancelado"
	StatusRealizado  Status = "realizado"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPendente, StatusConfirmado, StatusCancelado, StatusRealizado:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPendente
}
