package converter

import (
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/compat"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type SelectionDTO struct {
	SessionID  string                   `json:"session_id"`
	Slots      map[string]*ComponentDTO `json:"slots"`
	TotalCents int64                    `json:"total_cents"`
	TotalPrice string                   `json:"total_price"`
}

type CheckResultDTO struct {
	Compatible bool   `json:"compatible"`
	Reason     string `json:"reason,omitempty"`
}

type CartLineDTO struct {
	ComponentID    string `json:"component_id"`
	Name           string `json:"name"`
	Slot           string `json:"slot"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type BuildExportDTO struct {
	SessionID  string        `json:"session_id"`
	Lines      []CartLineDTO `json:"lines"`
	TotalCents int64         `json:"total_cents"`
	TotalPrice string        `json:"total_price"`
}

func SelectionToDTO(m *model.BuildSelection) *SelectionDTO {
	if m == nil {
		return nil
	}

	slots := make(map[string]*ComponentDTO, len(m.Slots))
	for slot, c := range m.Slots {
		if c != nil {
			slots[string(slot)] = ComponentToDTO(c)
		}
	}

	total := m.TotalCents()

	return &SelectionDTO{
		SessionID:  m.SessionID.String(),
		Slots:      slots,
		TotalCents: total,
		TotalPrice: FormatCents(total),
	}
}

func CheckResultToDTO(res compat.Result) *CheckResultDTO {
	return &CheckResultDTO{
		Compatible: res.Compatible,
		Reason:     res.Reason,
	}
}

func BuildExportToDTO(m *model.BuildExport) *BuildExportDTO {
	if m == nil {
		return nil
	}

	lines := make([]CartLineDTO, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, CartLineDTO{
			ComponentID:    l.ComponentID,
			Name:           l.Name,
			Slot:           string(l.Slot),
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}

	return &BuildExportDTO{
		SessionID:  m.SessionID.String(),
		Lines:      lines,
		TotalCents: m.TotalCents,
		TotalPrice: FormatCents(m.TotalCents),
	}
}
