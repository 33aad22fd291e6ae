// Package compat decides whether a candidate component may join a build
// selection. All checks are pure: no state, no mutation, safe to call
// speculatively for every catalog item while rendering a picker.
package compat

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type Result struct {
	Compatible bool
	// Reason names the conflicting attribute and the already-selected
	// component; empty when Compatible.
	Reason string
}

func ok() Result { return Result{Compatible: true} }

func fail(reason string) Result { return Result{Reason: reason} }

// Rule constrains which attribute values may coexist across two slots. A
// rule is declared once per slot pair and evaluated in both directions: when
// either side changes, the occupant of the other side is checked against it.
type Rule struct {
	Name string
	A    model.Slot
	B    model.Slot
	// Check receives the components in declaration order (a occupies A,
	// b occupies B); both are non-nil.
	Check func(a, b *model.Component) Result
}

// RuleSet evaluates every rule that touches a candidate's slot.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Default returns the rule set the storefront ships with. Adding a slot
// pair here is the only step needed to enforce a new constraint.
func Default() *RuleSet {
	return NewRuleSet(
		SocketMatch(),
		MemoryTypeSupported(),
	)
}

// Check reports whether adding candidate to its slot keeps the selection
// internally consistent. Evaluation short-circuits on the first failing
// rule and reports that single reason. Slots with no declared rules are
// always compatible, as is any rule whose opposite slot is empty.
func (rs *RuleSet) Check(candidate *model.Component, sel *model.BuildSelection) Result {
	if candidate == nil {
		return ok()
	}

	for _, r := range rs.rules {
		var other *model.Component
		switch candidate.Slot {
		case r.A:
			other = sel.Occupant(r.B)
		case r.B:
			other = sel.Occupant(r.A)
		default:
			continue
		}
		if other == nil {
			continue
		}

		var res Result
		if candidate.Slot == r.A {
			res = r.Check(candidate, other)
		} else {
			res = r.Check(other, candidate)
		}
		if !res.Compatible {
			return res
		}
	}

	return ok()
}

// SocketMatch requires the CPU socket to equal the motherboard socket.
func SocketMatch() Rule {
	return Rule{
		Name: "cpu-motherboard-socket",
		A:    model.SlotCPU,
		B:    model.SlotMotherboard,
		Check: func(cpu, mb *model.Component) Result {
			cpuSocket := cpu.StringAttr(model.AttrSocket)
			mbSocket := mb.StringAttr(model.AttrSocket)
			if cpuSocket == "" || mbSocket == "" {
				return ok()
			}
			if cpuSocket != mbSocket {
				return fail(fmt.Sprintf(
					"socket mismatch: %q requires socket %s, %q has socket %s",
					cpu.Name, cpuSocket, mb.Name, mbSocket,
				))
			}
			return ok()
		},
	}
}

// MemoryTypeSupported requires the RAM memory type to be one of the types
// the motherboard declares support for. A board may declare a single type
// or a small set.
func MemoryTypeSupported() Rule {
	return Rule{
		Name: "ram-motherboard-memory-type",
		A:    model.SlotRAM,
		B:    model.SlotMotherboard,
		Check: func(ram, mb *model.Component) Result {
			memType := ram.StringAttr(model.AttrMemoryType)
			supported := mb.StringListAttr(model.AttrMemoryTypes)
			if memType == "" || len(supported) == 0 {
				return ok()
			}
			if !lo.Contains(supported, memType) {
				return fail(fmt.Sprintf(
					"memory type mismatch: %q is %s, %q supports %v",
					ram.Name, memType, mb.Name, supported,
				))
			}
			return ok()
		},
	}
}
