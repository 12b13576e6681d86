package engine

import (
	"fmt"

	"github.com/tatianab/researcher-life/internal/models"
)

// PurchaseReceipt confirms a purchase.
type PurchaseReceipt struct {
	Item  models.Item
	Paid  int
	Owned int
}

func (r PurchaseReceipt) String() string {
	return fmt.Sprintf("Bought %s for %s (owned: %d)", r.Item.Name, models.FormatMoney(r.Paid), r.Owned)
}

// Purchase debits the price of itemID and adds one instance to the inventory.
func (e *Engine) Purchase(s models.GameState, itemID string) (models.GameState, PurchaseReceipt, error) {
	item, ok := e.catalog.Item(itemID)
	if !ok {
		return s, PurchaseReceipt{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if s.Money < item.Price {
		e.log.Debug("purchase rejected", "session", s.SessionID, "item", itemID, "money", s.Money, "price", item.Price)
		return s, PurchaseReceipt{}, ErrInsufficientFunds
	}
	next := s.Clone()
	next.Money -= item.Price
	next.Inventory = next.Inventory.Add(item.ID)

	receipt := PurchaseReceipt{Item: item, Paid: item.Price, Owned: next.Inventory.Count(item.ID)}
	e.log.Debug("item purchased", "session", s.SessionID, "item", itemID, "money", next.Money)
	return next, receipt, nil
}

// UseReceipt confirms an item use.
type UseReceipt struct {
	Item      models.Item
	Effect    string
	Remaining int
}

func (r UseReceipt) String() string {
	if r.Effect == "" {
		return fmt.Sprintf("Used %s", r.Item.Name)
	}
	return fmt.Sprintf("Used %s: %s", r.Item.Name, r.Effect)
}

// softStats are written as one batch when an item touches any of them.
var softStats = []models.Stat{models.Research, models.Insight, models.Collaboration, models.English, models.Communication}

// UseEffect is the part of an item's effect that using it applies: stamina,
// money and the soft stats. Other skills on the item are not applied.
func UseEffect(item models.Item) models.Effect {
	var out models.Effect
	for _, d := range item.Effect {
		if d.Key == models.Stamina || d.Key == models.Money {
			out = append(out, d)
		}
	}
	if item.Effect.Has(softStats...) {
		for _, st := range softStats {
			out = append(out, models.Delta[models.Stat]{Key: st, Amount: item.Effect.Get(st)})
		}
	}
	return out
}

// Use consumes one owned instance of itemID and applies its effect once.
func (e *Engine) Use(s models.GameState, itemID string) (models.GameState, UseReceipt, error) {
	item, ok := e.catalog.Item(itemID)
	if !ok {
		return s, UseReceipt{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	inv, ok := s.Inventory.Remove(item.ID)
	if !ok {
		return s, UseReceipt{}, ErrItemNotOwned
	}
	effect := UseEffect(item)
	next := s.Apply(effect)
	next.Inventory = inv

	receipt := UseReceipt{Item: item, Effect: effect.String(), Remaining: inv.Count(item.ID)}
	e.log.Debug("item used", "session", s.SessionID, "item", itemID, "stamina", next.Stamina, "money", next.Money)
	return next, receipt, nil
}
