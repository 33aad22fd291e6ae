package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, components []*model.Component) error
}

// ComponentsBootstrap seeds the catalog with a starter set of parts so a
// fresh deployment has something to sell. Prices are in satang.
func ComponentsBootstrap(ctx context.Context, c BatchCreator) error {
	now := time.Now()

	components := []*model.Component{
		{
			ID:            uuid.NewString(),
			Name:          "AMD Ryzen 7 7700X",
			Slot:          model.SlotCPU,
			PriceCents:    1290000,
			StockQuantity: 24,
			Attributes: map[string]any{
				model.AttrSocket: "AM5",
				"cores":          8,
				"threads":        16,
				"base_clock_ghz": 4.5,
			},
			Tags:      []string{"cpu", "amd", "am5", "ryzen"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Intel Core i5-14600K",
			Slot:          model.SlotCPU,
			PriceCents:    1150000,
			StockQuantity: 18,
			Attributes: map[string]any{
				model.AttrSocket: "LGA1700",
				"cores":          14,
				"threads":        20,
				"base_clock_ghz": 3.5,
			},
			Tags:      []string{"cpu", "intel", "lga1700"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "ASUS TUF Gaming B650-Plus WiFi",
			Slot:          model.SlotMotherboard,
			PriceCents:    719000,
			StockQuantity: 15,
			Attributes: map[string]any{
				model.AttrSocket:      "AM5",
				model.AttrMemoryTypes: []string{"DDR5"},
				model.AttrFormFactor:  "ATX",
			},
			Tags:      []string{"motherboard", "asus", "am5", "atx"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "MSI PRO Z790-P WiFi",
			Slot:          model.SlotMotherboard,
			PriceCents:    829000,
			StockQuantity: 11,
			Attributes: map[string]any{
				model.AttrSocket:      "LGA1700",
				model.AttrMemoryTypes: []string{"DDR5", "DDR4"},
				model.AttrFormFactor:  "ATX",
			},
			Tags:      []string{"motherboard", "msi", "lga1700", "atx"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Kingston Fury Beast 32GB (2x16) DDR5-6000",
			Slot:          model.SlotRAM,
			PriceCents:    429000,
			StockQuantity: 40,
			Attributes: map[string]any{
				model.AttrMemoryType: "DDR5",
				"capacity_gb":        32,
				"speed_mts":          6000,
			},
			Tags:      []string{"ram", "kingston", "ddr5"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Corsair Vengeance LPX 32GB (2x16) DDR4-3600",
			Slot:          model.SlotRAM,
			PriceCents:    289000,
			StockQuantity: 33,
			Attributes: map[string]any{
				model.AttrMemoryType: "DDR4",
				"capacity_gb":        32,
				"speed_mts":          3600,
			},
			Tags:      []string{"ram", "corsair", "ddr4"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "NVIDIA GeForce RTX 4070 SUPER 12GB",
			Slot:          model.SlotGPU,
			PriceCents:    2390000,
			StockQuantity: 9,
			Attributes: map[string]any{
				"vram_gb":         12,
				"length_mm":       304,
				model.AttrWattage: 220,
			},
			Tags:      []string{"gpu", "nvidia", "rtx"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "WD Black SN850X 1TB NVMe",
			Slot:          model.SlotStorage,
			PriceCents:    359000,
			StockQuantity: 50,
			Attributes: map[string]any{
				"capacity_gb": 1000,
				"interface":   "PCIe 4.0 x4",
			},
			Tags:      []string{"storage", "nvme", "wd"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Corsair RM850e 850W 80+ Gold",
			Slot:          model.SlotPSU,
			PriceCents:    399000,
			StockQuantity: 21,
			Attributes: map[string]any{
				model.AttrWattage: 850,
				"efficiency":      "80+ Gold",
				"modular":         true,
			},
			Tags:      []string{"psu", "corsair", "gold"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Lian Li Lancool 216",
			Slot:          model.SlotCase,
			PriceCents:    329000,
			StockQuantity: 14,
			Attributes: map[string]any{
				model.AttrFormFactor: "ATX",
				"max_gpu_length_mm":  392,
			},
			Tags:      []string{"case", "lianli", "atx"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
		{
			ID:            uuid.NewString(),
			Name:          "Deepcool AK620 Digital",
			Slot:          model.SlotCooler,
			PriceCents:    259000,
			StockQuantity: 27,
			Attributes: map[string]any{
				"type":      "air",
				"height_mm": 162,
			},
			Tags:      []string{"cooler", "deepcool", "air"},
			CreatedAt: lo.ToPtr(now),
			UpdatedAt: lo.ToPtr(now),
		},
	}

	return c.CreateBatch(ctx, components)
}
