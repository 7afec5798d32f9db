package services

import (
	"context"
	"fmt"
	"log"

	"revendapro/internal/adapters/gateway/wppconnect"
	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/core/domain"
)

// NotificationService pushes WhatsApp texts to customers when their
// financing proposal changes status. Delivery is best-effort: no paired
// session or a gateway failure only logs, it never propagates.
type NotificationService struct {
	whatsapp *WhatsAppService
}

// NewNotificationService creates a new notification service
func NewNotificationService(whatsapp *WhatsAppService) *NotificationService {
	return &NotificationService{whatsapp: whatsapp}
}

// NotifyStatusChange sends the customer a text about the new status
func (s *NotificationService) NotifyStatusChange(ctx context.Context, proposal *models.FinancingProposal, from, to domain.FinancingStatus) {
	if proposal.Customer == nil || proposal.Customer.Phone == "" {
		return
	}

	conn := s.whatsapp.FindConnectedSession(ctx)
	if conn == nil {
		log.Printf("⚠️ No connected WhatsApp session, skipping notification for proposal #%d", proposal.ID)
		return
	}
	if !conn.CanSendToday() {
		log.Printf("⚠️ Daily quota exhausted on %s, skipping notification for proposal #%d", conn.Phone, proposal.ID)
		return
	}

	phone := wppconnect.NormalizePhone(proposal.Customer.Phone)
	text := statusMessage(proposal, to)

	result, err := s.whatsapp.SendMessage(ctx, conn.ID, &SendMessageRequest{Phone: phone, Text: text})
	if err != nil || !result.Delivered {
		log.Printf("⚠️ Status notification for proposal #%d not delivered", proposal.ID)
		return
	}
	log.Printf("✅ Status notification sent for proposal #%d (%s -> %s)", proposal.ID, from, to)
}

func statusMessage(proposal *models.FinancingProposal, to domain.FinancingStatus) string {
	name := ""
	if proposal.Customer != nil {
		name = proposal.Customer.Name
	}

	switch to {
	case domain.FinancingApproved:
		return fmt.Sprintf("Olá %s! Seu financiamento foi APROVADO. Em breve entraremos em contato para os próximos passos.", name)
	case domain.FinancingPaid:
		return fmt.Sprintf("Olá %s! O pagamento do seu financiamento foi confirmado. Obrigado pela preferência!", name)
	case domain.FinancingRejected:
		return fmt.Sprintf("Olá %s. Infelizmente seu financiamento não foi aprovado desta vez. Fale conosco para avaliar outras opções.", name)
	default:
		return fmt.Sprintf("Olá %s! Seu financiamento está em análise (%s). Avisaremos assim que houver novidades.", name, to.Label())
	}
}
