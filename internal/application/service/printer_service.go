package service

import (
	"context"
	"fmt"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/assistec/assistec-api/pkg/printer"
	"github.com/google/uuid"
)

// PrinterService composes receipts from sales and service orders and renders
// them to the configured coupon printer.
type PrinterService struct {
	device      printer.Printer
	charWidth   int
	saleRepo    repository.SaleRepository
	orderRepo   repository.OrderRepository
	companyRepo repository.CompanyRepository
}

// NewPrinterService creates a new printer service
func NewPrinterService(device printer.Printer, charWidth int, saleRepo repository.SaleRepository, orderRepo repository.OrderRepository, companyRepo repository.CompanyRepository) *PrinterService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &PrinterService{
		device:      device,
		charWidth:   charWidth,
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
	}
}

// Status reports whether the coupon printer is reachable
func (s *PrinterService) Status() bool {
	return s.device.IsConnected()
}

func (s *PrinterService) header(ctx context.Context) entity.ReceiptHeader {
	header := entity.ReceiptHeader{StoreName: "Assistec"}

	profile, err := s.companyRepo.Get(ctx)
	if err != nil || profile == nil {
		return header
	}

	header.StoreName = profile.Name
	if profile.Address != nil {
		header.Address = *profile.Address
	}
	if profile.Phone != nil {
		header.Phone = *profile.Phone
	}
	if profile.CNPJ != nil {
		header.TaxID = *profile.CNPJ
	}
	return header
}

// BuildSaleReceipt composes a printable coupon from a sale
func (s *PrinterService) BuildSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	items := make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}

	return &entity.Receipt{
		Header:        s.header(ctx),
		Title:         "CUPOM DE VENDA",
		DocumentNo:    sale.SaleNo,
		Date:          sale.CreatedAt.Format("02/01/2006 15:04"),
		Customer:      sale.CustomerName,
		PaymentMethod: sale.PaymentMethod.String(),
		Items:         items,
		SubTotal:      float64(sale.SubTotal) / 100,
		Shipping:      float64(sale.ShippingCost) / 100,
		Total:         float64(sale.Total) / 100,
		Footer:        "Obrigado pela preferência!",
	}, nil
}

// BuildOrderReceipt composes a printable coupon from a service order
func (s *PrinterService) BuildOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}

	items := make([]entity.ReceiptItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  1,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.UnitPrice) / 100,
		})
	}

	receipt := &entity.Receipt{
		Header:     s.header(ctx),
		Title:      "ORDEM DE SERVIÇO",
		DocumentNo: fmt.Sprintf("OS #%d", order.Number),
		Date:       order.CreatedAt.Format("02/01/2006 15:04"),
		Customer:   order.CustomerName,
		Items:      items,
		SubTotal:   float64(order.Total) / 100,
		Total:      float64(order.Total) / 100,
		Footer:     "Guarde este comprovante para a retirada.",
	}
	if order.PaymentMethod != nil {
		receipt.PaymentMethod = order.PaymentMethod.String()
	}
	return receipt, nil
}

// PrintSaleReceipt prints a sale coupon
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildSaleReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.print(receipt); err != nil {
		return nil, apperror.NewAppError(503, "Printer is not available")
	}
	return receipt, nil
}

// PrintOrderReceipt prints a service order coupon
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildOrderReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.print(receipt); err != nil {
		return nil, apperror.NewAppError(503, "Printer is not available")
	}
	return receipt, nil
}

// print renders the receipt to ESC/POS and sends it to the device
func (s *PrinterService) print(receipt *entity.Receipt) error {
	doc := printer.NewDocument(s.charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(receipt.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if receipt.Header.Address != "" {
		doc.Text(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		doc.Text(receipt.Header.Phone)
	}
	if receipt.Header.TaxID != "" {
		doc.TextF("CNPJ: %s", receipt.Header.TaxID)
	}

	doc.Separator('=').
		SetBold(true).
		Text(receipt.Title).
		SetBold(false).
		Text(receipt.DocumentNo).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Data", receipt.Date)
	if receipt.Customer != "" {
		doc.KeyValue("Cliente", receipt.Customer)
	}
	if receipt.Operator != "" {
		doc.KeyValue("Atendente", receipt.Operator)
	}
	doc.Separator('-')

	for _, item := range receipt.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
	}

	doc.Separator('-')
	doc.KeyValue("Subtotal", fmt.Sprintf("%.2f", receipt.SubTotal))
	if receipt.Shipping > 0 {
		doc.KeyValue("Entrega", fmt.Sprintf("%.2f", receipt.Shipping))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", fmt.Sprintf("%.2f", receipt.Total)).
		SetBold(false)

	if receipt.PaymentMethod != "" {
		doc.KeyValue("Pagamento", receipt.PaymentMethod)
	}

	if receipt.Footer != "" {
		doc.Separator('-').
			SetAlign(printer.AlignCenter).
			Text(receipt.Footer)
	}

	doc.FeedLines(4).Cut()

	return s.device.Print(doc.Bytes())
}
