package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
)

// BatchEligibleStatus is the status every batch strategy reads from when
// selecting candidate members.
const BatchEligibleStatus = order.Validated

// Per-extra-order time savings in minutes for each strategy.
const (
	regionSavingsPerOrder  = 2.0
	urgencySavingsPerOrder = 3.0
	productSavingsPerOrder = 1.5
)

// minGroupSize is the smallest partition worth proposing as a batch.
const minGroupSize = 2

// Urgency age bucket boundaries relative to the planning time.
const (
	urgencyOldAge = 6 * time.Hour
	urgencyMidAge = 3 * time.Hour
)

// SavingsFor returns the estimated handling time saved, in minutes, by
// batching memberCount orders under the given strategy.
func SavingsFor(strategy batch.Strategy, memberCount int) float64 {
	if memberCount < minGroupSize {
		return 0
	}

	var perOrder float64
	switch strategy {
	case batch.StrategyRegion:
		perOrder = regionSavingsPerOrder
	case batch.StrategyUrgency:
		perOrder = urgencySavingsPerOrder
	case batch.StrategyProduct:
		perOrder = productSavingsPerOrder
	default:
		return 0
	}
	return perOrder * float64(memberCount-1)
}

// Proposal is a suggested grouping of eligible orders. Proposals are
// read-only: nothing is persisted and no order is mutated until a proposal is
// explicitly turned into a batch.
type Proposal struct {
	Name           string
	Description    string
	Strategy       batch.Strategy
	EligibleStatus order.Status
	MemberOrderIDs []kernel.UUID
	SavingsMinutes float64
}

// BatchPlanner is a domain service that groups eligible orders into
// non-overlapping batch proposals with savings estimates. All grouping is
// deterministic: the same order pool and planning time always produce the
// same proposals in the same sequence.
//
// Strategies:
//   - region: partition by (state, city); one proposal per partition of at
//     least two orders, savings scaling with group size
//   - urgency: partition by age bucket (>6h, 3-6h, <3h); older buckets
//     surface first
//   - product: partition by each order's most common SKU, ties broken by the
//     lexicographically smallest SKU
type BatchPlanner struct{}

// NewBatchPlanner creates a BatchPlanner instance.
func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

// Suggest produces the ordered proposal sequence for one strategy over the
// given pool of eligible orders. The pool is expected to hold orders in
// BatchEligibleStatus; others are ignored. Read-only.
func (p BatchPlanner) Suggest(strategy batch.Strategy, orders []*order.Order, now time.Time) ([]Proposal, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	eligible := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() == BatchEligibleStatus {
			eligible = append(eligible, o)
		}
	}
	sortOrdersStable(eligible)

	switch strategy {
	case batch.StrategyRegion:
		return p.suggestByRegion(eligible), nil
	case batch.StrategyUrgency:
		return p.suggestByUrgency(eligible, now), nil
	case batch.StrategyProduct:
		return p.suggestByProduct(eligible), nil
	default:
		return nil, strategy.Validate()
	}
}

func (p BatchPlanner) suggestByRegion(orders []*order.Order) []Proposal {
	partitions := make(map[string][]*order.Order)
	for _, o := range orders {
		addr := o.Customer().Address()
		if addr.State() == "" {
			continue
		}
		key := addr.State() + "|" + addr.City()
		partitions[key] = append(partitions[key], o)
	}

	proposals := make([]Proposal, 0, len(partitions))
	for key, members := range partitions {
		if len(members) < minGroupSize {
			continue
		}
		state, city, _ := strings.Cut(key, "|")
		place := state
		if city != "" {
			place = city + ", " + state
		}
		proposals = append(proposals, Proposal{
			Name:           fmt.Sprintf("%s orders", place),
			Description:    fmt.Sprintf("%d orders to %s", len(members), place),
			Strategy:       batch.StrategyRegion,
			EligibleStatus: BatchEligibleStatus,
			MemberOrderIDs: orderIDs(members),
			SavingsMinutes: SavingsFor(batch.StrategyRegion, len(members)),
		})
	}

	sortProposals(proposals)
	return proposals
}

func (p BatchPlanner) suggestByUrgency(orders []*order.Order, now time.Time) []Proposal {
	buckets := []struct {
		name        string
		description string
		includes    func(age time.Duration) bool
	}{
		{
			name:        "urgent orders (over 6h)",
			description: "orders waiting more than 6 hours",
			includes:    func(age time.Duration) bool { return age >= urgencyOldAge },
		},
		{
			name:        "aging orders (3-6h)",
			description: "orders waiting between 3 and 6 hours",
			includes:    func(age time.Duration) bool { return age >= urgencyMidAge && age < urgencyOldAge },
		},
		{
			name:        "fresh orders (under 3h)",
			description: "orders waiting less than 3 hours",
			includes:    func(age time.Duration) bool { return age < urgencyMidAge },
		},
	}

	// Older buckets surface first; no savings re-sort on purpose.
	proposals := make([]Proposal, 0, len(buckets))
	for _, bucket := range buckets {
		var members []*order.Order
		for _, o := range orders {
			if bucket.includes(now.Sub(o.CreatedAt())) {
				members = append(members, o)
			}
		}
		if len(members) < minGroupSize {
			continue
		}
		proposals = append(proposals, Proposal{
			Name:           bucket.name,
			Description:    fmt.Sprintf("%s (%d orders)", bucket.description, len(members)),
			Strategy:       batch.StrategyUrgency,
			EligibleStatus: BatchEligibleStatus,
			MemberOrderIDs: orderIDs(members),
			SavingsMinutes: SavingsFor(batch.StrategyUrgency, len(members)),
		})
	}

	return proposals
}

func (p BatchPlanner) suggestByProduct(orders []*order.Order) []Proposal {
	partitions := make(map[string][]*order.Order)
	names := make(map[string]string)
	for _, o := range orders {
		sku, name := dominantSKU(o)
		if sku == "" {
			continue
		}
		partitions[sku] = append(partitions[sku], o)
		if _, ok := names[sku]; !ok {
			names[sku] = name
		}
	}

	proposals := make([]Proposal, 0, len(partitions))
	for sku, members := range partitions {
		if len(members) < minGroupSize {
			continue
		}
		product := names[sku]
		if product == "" {
			product = sku
		}
		proposals = append(proposals, Proposal{
			Name:           fmt.Sprintf("%s orders", product),
			Description:    fmt.Sprintf("%d orders containing %s", len(members), product),
			Strategy:       batch.StrategyProduct,
			EligibleStatus: BatchEligibleStatus,
			MemberOrderIDs: orderIDs(members),
			SavingsMinutes: SavingsFor(batch.StrategyProduct, len(members)),
		})
	}

	sortProposals(proposals)
	return proposals
}

// dominantSKU returns the order's most common SKU by summed quantity,
// breaking ties toward the lexicographically smallest identifier, along with
// that SKU's product name.
func dominantSKU(o *order.Order) (string, string) {
	quantities := make(map[string]int)
	names := make(map[string]string)
	for _, item := range o.Items() {
		quantities[item.SKU()] += item.Quantity()
		if _, ok := names[item.SKU()]; !ok {
			names[item.SKU()] = item.Name()
		}
	}

	var best string
	bestQty := -1
	for sku, qty := range quantities {
		if qty > bestQty || (qty == bestQty && sku < best) {
			best = sku
			bestQty = qty
		}
	}
	return best, names[best]
}

// sortOrdersStable fixes the member sequence: oldest first, id as tiebreaker.
func sortOrdersStable(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt().Equal(orders[j].CreatedAt()) {
			return orders[i].CreatedAt().Before(orders[j].CreatedAt())
		}
		return orders[i].ID().String() < orders[j].ID().String()
	})
}

// sortProposals fixes the proposal sequence: highest savings first, name as
// tiebreaker.
func sortProposals(proposals []Proposal) {
	sort.Slice(proposals, func(i, j int) bool {
		if proposals[i].SavingsMinutes != proposals[j].SavingsMinutes {
			return proposals[i].SavingsMinutes > proposals[j].SavingsMinutes
		}
		return proposals[i].Name < proposals[j].Name
	})
}

func orderIDs(orders []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}
