package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterUnsetFieldsMatchEverything(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsZero())
	assert.True(t, f.matches(searchable{Name: "Vios Taxi", Make: "Toyota"}))
}

func TestFilterEqualityConstraintsAreConjunctive(t *testing.T) {
	f := Filter{Make: "Toyota", Status: "In Stock"}

	assert.True(t, f.matches(searchable{Name: "Vios", Make: "Toyota", Status: "In Stock"}))
	assert.False(t, f.matches(searchable{Name: "Vios", Make: "Toyota", Status: "Low Stock"}))
	assert.False(t, f.matches(searchable{Name: "Vios", Make: "Nissan", Status: "In Stock"}))
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := Filter{Search: "vio"}
	assert.True(t, f.matches(searchable{Name: "VIOS Taxi", Make: "Toyota"}))

	f = Filter{Search: "toyo"}
	assert.True(t, f.matches(searchable{Name: "City Cab", Make: "Toyota"}), "search also hits the make")

	f = Filter{Search: "bmw"}
	assert.False(t, f.matches(searchable{Name: "City Cab", Make: "Toyota"}))
}

func TestFilterSearchCombinesWithEquality(t *testing.T) {
	f := Filter{Search: "cab", Supplier: "AutoPro Supply"}
	assert.True(t, f.matches(searchable{Name: "City Cab Mat", Supplier: "AutoPro Supply"}))
	assert.False(t, f.matches(searchable{Name: "City Cab Mat", Supplier: "Primo Works"}))
}
