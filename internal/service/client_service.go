package service

import (
	"context"
	"fmt"
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/client"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// Parâmetros da segmentação de clientes
const (
	vipSpentThreshold = 1500.0 // gasto acumulado mínimo para VIP
	vipVisitThreshold = 5      // visitas mínimas para VIP
	newClientDays     = 90     // janela de cliente novo
	atRiskDays        = 90     // dias sem visita para risco
	lostDays          = 180    // dias sem visita para perdido
)

// SegmentationResult reporta o resultado de uma recomputação de segmentos
type SegmentationResult struct {
	ClientsProcessed int `json:"clients_processed"`
	SegmentsChanged  int `json:"segments_changed"`
}

// ClientService concentra a segmentação de clientes e os acumulados de
// valor vitalício (LTV) derivados dos atendimentos pagos
type ClientService struct {
	clientRepo     client.Repository
	attendanceRepo attendance.Repository
	logger         logger.Logger
}

// NewClientService cria uma nova instância de ClientService
func NewClientService(clientRepo client.Repository, attendanceRepo attendance.Repository, logger logger.Logger) *ClientService {
	return &ClientService{
		clientRepo:     clientRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// RecomputeSegments recalcula os acumulados e o segmento de todos os
// clientes ativos do usuário a partir dos atendimentos pagos
func (s *ClientService) RecomputeSegments(ctx context.Context, userID string) (*SegmentationResult, error) {
	clients, err := s.clientRepo.FindAllActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar clientes para segmentação: %w", err)
	}

	paid, err := s.attendanceRepo.FindAll(ctx, userID, attendance.Filter{
		PaymentStatus: attendance.StatusPaid,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar atendimentos para segmentação: %w", err)
	}

	type rollup struct {
		totalSpent  float64
		totalVisits int
		lastVisit   *time.Time
	}
	rollups := make(map[string]*rollup)
	for _, a := range paid {
		r, ok := rollups[a.ClientID]
		if !ok {
			r = &rollup{}
			rollups[a.ClientID] = r
		}
		r.totalSpent += a.NetValue()
		r.totalVisits++
		if r.lastVisit == nil || a.Date.After(*r.lastVisit) {
			visit := a.Date
			r.lastVisit = &visit
		}
	}

	now := time.Now()
	result := &SegmentationResult{ClientsProcessed: len(clients)}

	for _, c := range clients {
		r := rollups[c.ID]
		if r == nil {
			r = &rollup{}
		}
		c.ApplyRollup(r.totalSpent, r.totalVisits, r.lastVisit)

		segment := classify(c, now)
		if segment != c.Segment {
			result.SegmentsChanged++
		}
		if err := c.SetSegment(segment); err != nil {
			return nil, err
		}

		if err := s.clientRepo.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("erro ao atualizar cliente na segmentação: %w", err)
		}
	}

	s.logger.Info("segmentação de clientes recalculada",
		"user_id", userID,
		"processed", result.ClientsProcessed,
		"changed", result.SegmentsChanged)

	return result, nil
}

// classify deriva o segmento do cliente a partir dos acumulados.
// Precedência: perdido, em risco, vip, novo, regular.
func classify(c *client.Client, now time.Time) client.Segment {
	if c.LastVisitAt == nil {
		// Nunca visitou: novo dentro da janela de cadastro, perdido depois
		if now.Sub(c.CreatedAt) <= time.Duration(newClientDays)*24*time.Hour {
			return client.SegmentNew
		}
		return client.SegmentLost
	}

	daysSinceVisit := now.Sub(*c.LastVisitAt).Hours() / 24
	switch {
	case daysSinceVisit > lostDays:
		return client.SegmentLost
	case daysSinceVisit > atRiskDays:
		return client.SegmentAtRisk
	case c.TotalSpent >= vipSpentThreshold && c.TotalVisits >= vipVisitThreshold:
		return client.SegmentVIP
	case c.TotalVisits < 3 && now.Sub(c.CreatedAt) <= time.Duration(newClientDays)*24*time.Hour:
		return client.SegmentNew
	}
	return client.SegmentRegular
}
