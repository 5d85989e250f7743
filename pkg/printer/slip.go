package printer

// PaymentSlip is the short paper version of a receipt handed over at the counter.
type PaymentSlip struct {
	StoreName     string
	StorePhone    string
	StoreLegalID  string
	Number        string
	Date          string
	QuoteNumber   string
	ClientName    string
	PaymentMethod string
	Concept       string
	Amount        string
	QuoteTotal    string
	Balance       string
}

// BuildPaymentSlip lays out slip for a printer with the given line width.
func BuildPaymentSlip(slip PaymentSlip, charWidth int) []byte {
	d := NewDocument(charWidth)

	d.SetAlign(AlignCenter).SetBold(true).SetFontSize(FontTall).Text(slip.StoreName)
	d.SetFontSize(FontNormal).SetBold(false)
	if slip.StoreLegalID != "" {
		d.Text("Céd. " + slip.StoreLegalID)
	}
	if slip.StorePhone != "" {
		d.Text("Tel. " + slip.StorePhone)
	}
	d.FeedLines(1).SetBold(true).Text("RECIBO DE PAGO").Text(slip.Number).SetBold(false)

	d.SetAlign(AlignLeft).Separator('-')
	d.KeyValue("Fecha:", slip.Date)
	d.KeyValue("Cotización:", slip.QuoteNumber)
	d.Text("Cliente: " + slip.ClientName)
	d.KeyValue("Forma de pago:", slip.PaymentMethod)
	d.Separator('-')
	d.Text(slip.Concept)
	d.Separator('-')

	d.SetBold(true).KeyValue("MONTO:", slip.Amount).SetBold(false)
	d.KeyValue("Total cotización:", slip.QuoteTotal)
	d.KeyValue("Saldo pendiente:", slip.Balance)
	d.Separator('=')

	d.SetAlign(AlignCenter).Text("¡Gracias por su pago!")
	return d.FeedLines(4).PartialCut().Bytes()
}
