package entity

// Stack is a quantity of one item.
type Stack struct {
	Item  Item
	Count int
}

// Inventory is a bounded list of item stacks.
type Inventory struct {
	stacks    []Stack
	capacity  int
	stackSize int
}

// NewInventory creates an inventory holding up to capacity stacks.
func NewInventory(capacity, stackSize int) *Inventory {
	if stackSize <= 0 {
		stackSize = 1
	}
	return &Inventory{capacity: capacity, stackSize: stackSize}
}

// Add puts one item into the first stack with room, opening a new stack if
// needed. Returns false when the inventory is full.
func (inv *Inventory) Add(item Item) bool {
	for i := range inv.stacks {
		s := &inv.stacks[i]
		if s.Item.ID == item.ID && s.Count < inv.stackSize {
			s.Count++
			return true
		}
	}
	if len(inv.stacks) >= inv.capacity {
		return false
	}
	inv.stacks = append(inv.stacks, Stack{Item: item, Count: 1})
	return true
}

// Remove takes one item with the given id out of the last stack holding
// it. Empty stacks are dropped. Returns false when none is carried.
func (inv *Inventory) Remove(id string) bool {
	for i := len(inv.stacks) - 1; i >= 0; i-- {
		s := &inv.stacks[i]
		if s.Item.ID != id {
			continue
		}
		s.Count--
		if s.Count == 0 {
			inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
		}
		return true
	}
	return false
}

// Find returns the item with the given id if one is carried.
func (inv *Inventory) Find(id string) (Item, bool) {
	for _, s := range inv.stacks {
		if s.Item.ID == id {
			return s.Item, true
		}
	}
	return Item{}, false
}

// Count returns how many items with the given id are carried.
func (inv *Inventory) Count(id string) int {
	n := 0
	for _, s := range inv.stacks {
		if s.Item.ID == id {
			n += s.Count
		}
	}
	return n
}

// Total returns the number of items carried.
func (inv *Inventory) Total() int {
	n := 0
	for _, s := range inv.stacks {
		n += s.Count
	}
	return n
}

// Stacks returns a copy of the carried stacks in pickup order.
func (inv *Inventory) Stacks() []Stack {
	out := make([]Stack, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}
