package split

// Assignments maps an item ID to the IDs of the people sharing that item.
// An item missing from the map, or mapped to an empty list, is unassigned
// and contributes nothing to anyone's total.
type Assignments map[string][]string

// Assignees returns the people assigned to the item.
func (a Assignments) Assignees(itemID string) []string {
	return a[itemID]
}

// Assigned reports whether the person is assigned to the item.
func (a Assignments) Assigned(itemID, personID string) bool {
	for _, id := range a[itemID] {
		if id == personID {
			return true
		}
	}
	return false
}

// Toggle adds the person to the item's assignee set, or removes them if
// already present.
func (a Assignments) Toggle(itemID, personID string) {
	ids := a[itemID]
	for i, id := range ids {
		if id == personID {
			a[itemID] = append(ids[:i:i], ids[i+1:]...)
			if len(a[itemID]) == 0 {
				delete(a, itemID)
			}
			return
		}
	}
	a[itemID] = append(ids, personID)
}

// Clone returns a deep copy of the assignment map.
func (a Assignments) Clone() Assignments {
	out := make(Assignments, len(a))
	for itemID, ids := range a {
		out[itemID] = append([]string(nil), ids...)
	}
	return out
}

// IsComplete reports whether every item has at least one assignee. A person
// with no assigned items is allowed; an item with no assignees is not.
func IsComplete(items []MenuItem, assignments Assignments) bool {
	for _, item := range items {
		if len(assignments.Assignees(item.ID)) == 0 {
			return false
		}
	}
	return true
}

// Allocate converts the assignment map into per-person item shares and
// running subtotals. Only ID and Name are read from the incoming people;
// Items and Total are built fresh. An item assigned to k people splits its
// full cost into k equal shares by exact division; rounding is deferred to
// display formatting so repeated recomputation does not compound error.
//
// Unassigned items are excluded entirely. They vanish from the split and
// are surfaced by ValidateAssignments instead.
func Allocate(items []MenuItem, assignments Assignments, people []Person) []Person {
	out := make([]Person, len(people))
	index := make(map[string]*Person, len(people))
	for i, p := range people {
		out[i] = Person{ID: p.ID, Name: p.Name}
		index[p.ID] = &out[i]
	}

	for _, item := range items {
		assignees := assignments.Assignees(item.ID)
		if len(assignees) == 0 {
			continue
		}

		n := float64(len(assignees))
		share := MenuItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Cost() / n,
			Quantity: item.Quantity / n,
		}
		for _, personID := range assignees {
			p, ok := index[personID]
			if !ok {
				continue
			}
			p.Items = append(p.Items, share)
			p.Total += share.Price
		}
	}

	return out
}
