package inventory

import (
	"iter"
	"strings"
)

// NoDisplayName is the display name meaning "use the inventory key".
const NoDisplayName = "-"

// Item is a decoded inventory record: a cleaned uri (path with an optional
// #fragment) and the display name.
type Item struct {
	URI         string
	DisplayName string
}

// Path returns the file component of the uri.
func (it Item) Path() string {
	path, _, _ := strings.Cut(it.URI, "#")
	return path
}

// Role holds every item of one domain-qualified role such as "py:class", in
// the order the keys first appeared in the inventory.
type Role struct {
	Name  string
	keys  []string
	items map[string]Item
}

func newRole(name string) *Role {
	return &Role{Name: name, items: make(map[string]Item)}
}

func (r *Role) set(key string, item Item) {
	if _, ok := r.items[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.items[key] = item
}

// Get returns the item stored under key.
func (r *Role) Get(key string) (Item, bool) {
	item, ok := r.items[key]
	return item, ok
}

// Len reports the number of keys in the role.
func (r *Role) Len() int { return len(r.keys) }

// All yields (key, item) pairs in inventory order.
func (r *Role) All() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		for _, key := range r.keys {
			if !yield(key, r.items[key]) {
				return
			}
		}
	}
}

// Inventory maps roles to their items. It is built once by Decode and is
// read-only afterwards.
type Inventory struct {
	Header Header

	roles  []*Role
	byName map[string]*Role
}

func newInventory(h Header) *Inventory {
	return &Inventory{Header: h, byName: make(map[string]*Role)}
}

func (inv *Inventory) add(role, key string, item Item) {
	r, ok := inv.byName[role]
	if !ok {
		r = newRole(role)
		inv.byName[role] = r
		inv.roles = append(inv.roles, r)
	}
	r.set(key, item)
}

// Roles returns the roles in the order they first appeared.
func (inv *Inventory) Roles() []*Role {
	out := make([]*Role, len(inv.roles))
	copy(out, inv.roles)
	return out
}

// Role looks up a role by its full name.
func (inv *Inventory) Role(name string) (*Role, bool) {
	r, ok := inv.byName[name]
	return r, ok
}

// Len reports the total number of items across all roles.
func (inv *Inventory) Len() int {
	n := 0
	for _, r := range inv.roles {
		n += r.Len()
	}
	return n
}

// Map flattens the inventory into role -> key -> item.
func (inv *Inventory) Map() map[string]map[string]Item {
	out := make(map[string]map[string]Item, len(inv.roles))
	for _, r := range inv.roles {
		items := make(map[string]Item, len(r.items))
		for key, item := range r.items {
			items[key] = item
		}
		out[r.Name] = items
	}
	return out
}
