package donation

import "benigna-backend/entities"

// transitions lists the statuses each status may move to. Delivered and
// cancelled are terminal.
var transitions = map[string][]string{
	entities.DonationStatusPending:   {entities.DonationStatusScheduled, entities.DonationStatusCancelled},
	entities.DonationStatusScheduled: {entities.DonationStatusDelivered, entities.DonationStatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}
