package elev

import (
	"fmt"
	"log/slog"

	"github.com/tiendc/go-deepcopy"
)

// NewFleet creates n idle cars at floor 0, ordered by ID.
func NewFleet(n int) *Fleet {
	fleet := &Fleet{cars: make([]Car, n)}
	for i := range fleet.cars {
		fleet.cars[i] = newCar(i)
	}
	slog.Debug("Fleet initialized", "cars", n)
	return fleet
}

func (fleet *Fleet) Len() int {
	return len(fleet.cars)
}

// Car returns the live car with the given id, or nil if there is none.
func (fleet *Fleet) Car(id int) *Car {
	if id < 0 || id >= len(fleet.cars) {
		return nil
	}
	return &fleet.cars[id]
}

// ForEach visits the cars in fleet order.
func (fleet *Fleet) ForEach(action func(car *Car)) {
	for i := range fleet.cars {
		action(&fleet.cars[i])
	}
}

// Snapshot returns a deep copy of the cars, safe to hand to observers.
func (fleet *Fleet) Snapshot() ([]Car, error) {
	var clone []Car
	if err := deepcopy.Copy(&clone, fleet.cars); err != nil {
		return nil, fmt.Errorf("copying fleet: %w", err)
	}
	return clone, nil
}
