package enum

// PaymentMethod is how a client paid a receipt
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "efectivo"
	PaymentMethodTransfer PaymentMethod = "transferencia"
	PaymentMethodSinpe    PaymentMethod = "sinpe"
	PaymentMethodCheck    PaymentMethod = "cheque"
	PaymentMethodOther    PaymentMethod = "otro"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodTransfer,
	PaymentMethodSinpe,
	PaymentMethodCheck,
	PaymentMethodOther,
}

func (m PaymentMethod) IsValid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodTransfer:
		return "Transferencia bancaria"
	case PaymentMethodSinpe:
		return "SINPE Móvil"
	case PaymentMethodCheck:
		return "Cheque"
	case PaymentMethodOther:
		return "Otro"
	}
	return string(m)
}
