package model

import "time"

type Slot string

const (
	SlotCPU         Slot = "CPU"
	SlotMotherboard Slot = "MOTHERBOARD"
	SlotRAM         Slot = "RAM"
	SlotGPU         Slot = "GPU"
	SlotStorage     Slot = "STORAGE"
	SlotPSU         Slot = "PSU"
	SlotCase        Slot = "CASE"
	SlotCooler      Slot = "COOLER"
)

// AllSlots fixes the iteration order for snapshots and cart exports.
var AllSlots = []Slot{
	SlotCPU,
	SlotMotherboard,
	SlotRAM,
	SlotGPU,
	SlotStorage,
	SlotPSU,
	SlotCase,
	SlotCooler,
}

var validSlots = map[Slot]bool{
	SlotCPU:         true,
	SlotMotherboard: true,
	SlotRAM:         true,
	SlotGPU:         true,
	SlotStorage:     true,
	SlotPSU:         true,
	SlotCase:        true,
	SlotCooler:      true,
}

func ValidSlot(s Slot) bool { return validSlots[s] }

// Well-known attribute keys. Which keys are present varies by slot.
const (
	AttrSocket      = "socket"
	AttrMemoryType  = "memoryType"
	AttrMemoryTypes = "memoryTypes"
	AttrFormFactor  = "formFactor"
	AttrWattage     = "wattage"
)

type Component struct {
	// Globally unique identifier of the component.
	ID string
	// Human-readable component name.
	Name string
	// Functional slot the component occupies in a build.
	Slot Slot
	// Unit price of the component.
	PriceCents int64
	// Quantity currently available in stock.
	StockQuantity int64
	// Flexible key/value specs associated with the component.
	// Each entry can store a string, number, boolean or a list of strings.
	Attributes map[string]any
	// Free-form tags used for quick search and classification.
	Tags      []string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// StringAttr returns the named attribute as a string, "" when absent or
// not a string.
func (c *Component) StringAttr(key string) string {
	if c == nil || c.Attributes == nil {
		return ""
	}
	v, ok := c.Attributes[key].(string)
	if !ok {
		return ""
	}
	return v
}

// StringListAttr returns the named attribute as a list of strings. A plain
// string value is treated as a single-element list, so a motherboard may
// declare one supported memory type or a set.
func (c *Component) StringListAttr(key string) []string {
	if c == nil || c.Attributes == nil {
		return nil
	}
	switch v := c.Attributes[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

type ComponentsFilter struct {
	IDs   []string
	Slots []Slot
	Tags  []string
}

func (f ComponentsFilter) Empty() bool {
	return len(f.IDs) == 0 && len(f.Slots) == 0 && len(f.Tags) == 0
}
