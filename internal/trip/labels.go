package trip

import (
	"fmt"

	"example.com/travel-genie/backend/internal/models"
)

var reservationTypeLabels = map[models.Language]map[models.ReservationType]string{
	models.LanguageEnglish: {
		models.ReservationTypeHotel:     "Hotel",
		models.ReservationTypeActivity:  "Activity",
		models.ReservationTypeFood:      "Food",
		models.ReservationTypeTransport: "Transport",
		models.ReservationTypeSpa:       "Spa",
	},
	models.LanguageItalian: {
		models.ReservationTypeHotel:     "Hotel",
		models.ReservationTypeActivity:  "Attività",
		models.ReservationTypeFood:      "Cibo",
		models.ReservationTypeTransport: "Trasporto",
		models.ReservationTypeSpa:       "Terme",
	},
}

// ReservationTypeLabel returns the display label of a booking kind in the
// trip's language, falling back to the raw type for unknown values.
func ReservationTypeLabel(lang models.Language, resType models.ReservationType) string {
	labels, ok := reservationTypeLabels[lang]
	if !ok {
		labels = reservationTypeLabels[models.LanguageEnglish]
	}
	if label, ok := labels[resType]; ok {
		return label
	}
	return string(resType)
}

// DefaultTravelerName synthesizes the auto-generated label for the n-th
// traveler ("Traveler 3" / "Viaggiatore 3").
func DefaultTravelerName(lang models.Language, n int) string {
	if lang == models.LanguageItalian {
		return fmt.Sprintf("Viaggiatore %d", n)
	}
	return fmt.Sprintf("Traveler %d", n)
}
