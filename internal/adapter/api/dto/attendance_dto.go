package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
)

// AttendanceRequest representa a requisição de atendimento
type AttendanceRequest struct {
	ClientID           string    `json:"client_id" binding:"required"`
	ProcedureID        string    `json:"procedure_id" binding:"required"`
	Date               time.Time `json:"date" binding:"required"`
	Value              float64   `json:"value" binding:"min=0"`
	Discount           float64   `json:"discount" binding:"min=0"`
	ProductCost        float64   `json:"product_cost" binding:"min=0"`
	PaymentMethod      string    `json:"payment_method" binding:"required"`
	PaymentStatus      string    `json:"payment_status"`
	Notes              string    `json:"notes"`
	SatisfactionRating *int      `json:"satisfaction_rating"`
}

// AttendanceStatusRequest representa a atualização do status de pagamento
type AttendanceStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// AttendanceResponse representa a resposta de atendimento
type AttendanceResponse struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"`
	ClientName         string    `json:"client_name,omitempty"`
	ProcedureID        string    `json:"procedure_id"`
	ProcedureName      string    `json:"procedure_name,omitempty"`
	Date               time.Time `json:"date"`
	Value              float64   `json:"value"`
	Discount           float64   `json:"discount"`
	NetValue           float64   `json:"net_value"`
	ProductCost        float64   `json:"product_cost"`
	Profit             float64   `json:"profit"`
	PaymentMethod      string    `json:"payment_method"`
	PaymentStatus      string    `json:"payment_status"`
	Notes              string    `json:"notes"`
	SatisfactionRating *int      `json:"satisfaction_rating"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AttendanceListResponse representa a resposta de lista de atendimentos
type AttendanceListResponse struct {
	Items      []AttendanceResponse `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
	TotalPages int                  `json:"total_pages"`
}

// ToAttendanceResponse converte um atendimento do domínio para DTO
func ToAttendanceResponse(a *attendance.Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		ProcedureID:        a.ProcedureID,
		Date:               a.Date,
		Value:              a.Value,
		Discount:           a.Discount,
		NetValue:           a.NetValue(),
		ProductCost:        a.ProductCost,
		Profit:             a.Profit(),
		PaymentMethod:      string(a.PaymentMethod),
		PaymentStatus:      string(a.PaymentStatus),
		Notes:              a.Notes,
		SatisfactionRating: a.SatisfactionRating,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ToAttendanceDetailResponse converte um atendimento com detalhes para DTO
func ToAttendanceDetailResponse(a *attendance.WithDetails) *AttendanceResponse {
	resp := ToAttendanceResponse(&a.Attendance)
	resp.ClientName = a.ClientName
	resp.ProcedureName = a.ProcedureName
	return resp
}

// ToAttendanceListResponse converte uma lista de atendimentos com detalhes
// para DTO
func ToAttendanceListResponse(rows []*attendance.WithDetails, total, page, size int) *AttendanceListResponse {
	items := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		items[i] = *ToAttendanceDetailResponse(a)
	}

	return &AttendanceListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}
