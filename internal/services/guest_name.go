package services

import (
	"fmt"
	"math/rand/v2"
)

var guestAnimals = []string{"Falcon", "Wolf", "Tiger", "Hawk", "Eagle", "Lion"}

// GuestName returns a throwaway driver name like "Guest-Falcon-417".
// A nil rng uses the global source.
func GuestName(rng *rand.Rand) string {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	return fmt.Sprintf("Guest-%s-%d", guestAnimals[intN(len(guestAnimals))], intN(1000))
}
